package memory

import (
	"context"
	"sort"
	"strings"

	"parking_reservation/internal/domain"
	"parking_reservation/internal/repository"

	"gopkg.in/guregu/null.v4"
)

type reservationRepository struct {
	store *Store
}

func NewReservationRepository(store *Store) repository.ReservationRepository {
	return &reservationRepository{store: store}
}

func (r *reservationRepository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextReservationID++
	res.ID = s.nextReservationID
	res.CreatedAt = now()
	res.UpdatedAt = res.CreatedAt

	stored := *res
	stored.Space = nil
	s.reservations[res.ID] = &stored
	return res, nil
}

func (r *reservationRepository) FindByID(ctx context.Context, id int) (*domain.Reservation, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	res, ok := s.reservations[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := *res
	return &out, nil
}

func sortByStart(reservations []domain.Reservation) {
	sort.Slice(reservations, func(i, j int) bool {
		if reservations[i].Date != reservations[j].Date {
			return reservations[i].Date < reservations[j].Date
		}
		return reservations[i].StartTime < reservations[j].StartTime
	})
}

func (r *reservationRepository) FindActiveBySpaceAndDate(ctx context.Context, spaceID int, date string) ([]domain.Reservation, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Reservation
	for _, res := range s.reservations {
		if res.SpaceID == spaceID && res.Date == date && res.Status == domain.ReservationActive {
			out = append(out, *res)
		}
	}
	sortByStart(out)
	return out, nil
}

func (r *reservationRepository) FindActiveByPlateAndDate(ctx context.Context, plate, date string) ([]domain.Reservation, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Reservation
	for _, res := range s.reservations {
		if strings.EqualFold(res.Plate, plate) && res.Date == date && res.Status == domain.ReservationActive {
			out = append(out, *res)
		}
	}
	sortByStart(out)
	return out, nil
}

func (r *reservationRepository) FindByOwner(ctx context.Context, ownerID int, onlyActive bool) ([]domain.Reservation, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Reservation
	for _, res := range s.reservations {
		if res.OwnerID != ownerID {
			continue
		}
		if onlyActive && res.Status != domain.ReservationActive {
			continue
		}
		out = append(out, *res)
	}
	sortByStart(out)
	return out, nil
}

func (r *reservationRepository) FindInProgressByDate(ctx context.Context, date string) ([]domain.Reservation, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Reservation
	for _, res := range s.reservations {
		if res.Date == date && res.EntryTime.Valid && !res.ExitTime.Valid {
			out = append(out, *res)
		}
	}
	sortByStart(out)
	return out, nil
}

func (r *reservationRepository) FindActiveWithoutEntry(ctx context.Context) ([]domain.Reservation, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Reservation
	for _, res := range s.reservations {
		if res.Status == domain.ReservationActive && !res.EntryTime.Valid {
			out = append(out, *res)
		}
	}
	sortByStart(out)
	return out, nil
}

func (r *reservationRepository) UpdateStatus(ctx context.Context, id int, status domain.ReservationStatus) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	res, ok := s.reservations[id]
	if !ok {
		return repository.ErrNotFound
	}
	res.Status = status
	res.UpdatedAt = now()
	return nil
}

func (r *reservationRepository) SetEntryTime(ctx context.Context, id int, entry null.Time) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	res, ok := s.reservations[id]
	if !ok {
		return repository.ErrNotFound
	}
	res.EntryTime = entry
	res.UpdatedAt = now()
	return nil
}

func (r *reservationRepository) SetExit(ctx context.Context, id int, exit null.Time, status domain.ReservationStatus) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	res, ok := s.reservations[id]
	if !ok {
		return repository.ErrNotFound
	}
	res.ExitTime = exit
	res.Status = status
	res.UpdatedAt = now()
	return nil
}
