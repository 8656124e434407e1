package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"parking_reservation/internal/domain"
	"parking_reservation/internal/repository"

	log "github.com/sirupsen/logrus"
)

// SchedulerService validates, creates, cancels and expires reservations.
// Each (space, date) pair is an independent timeline: two ACTIVE
// reservations on the same timeline must never overlap under half-open
// semantics, and back-to-back windows are allowed.
type SchedulerService struct {
	spaceRepo repository.SpaceRepository
	resRepo   repository.ReservationRepository
	tx        repository.TxManager
	clock     Clock
	notifier  StatusNotifier

	// Serializes check-and-insert per (space, date) so two concurrent
	// bookings for overlapping windows cannot both pass the overlap check.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewSchedulerService(
	spaceRepo repository.SpaceRepository,
	resRepo repository.ReservationRepository,
	tx repository.TxManager,
	clock Clock,
	notifier StatusNotifier,
) *SchedulerService {
	if notifier == nil {
		notifier = NewNoopNotifier()
	}
	return &SchedulerService{
		spaceRepo: spaceRepo,
		resRepo:   resRepo,
		tx:        tx,
		clock:     clock,
		notifier:  notifier,
		locks:     make(map[string]*sync.Mutex),
	}
}

func (s *SchedulerService) timelineLock(spaceID int, date string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := fmt.Sprintf("%d|%s", spaceID, date)
	l, ok := s.locks[key]
	if !ok {
		l = &sync.Mutex{}
		s.locks[key] = l
	}
	return l
}

func (s *SchedulerService) notifySpace(space *domain.ParkingSpace, status domain.SpaceStatus) {
	s.notifier.SpaceStatusChanged(domain.SpaceStatusNotification{
		SpaceID:   space.ID,
		Number:    space.Number,
		Status:    status,
		Timestamp: s.clock.Now(),
	})
}

// Book creates an ACTIVE reservation and marks the space RESERVED, as one
// atomic unit. It fails whole: no partial booking is ever left behind.
func (s *SchedulerService) Book(ctx context.Context, ownerID int, dto domain.BookingDTO) (*domain.Reservation, error) {
	startMin, err := domain.ParseTimeOfDay(dto.StartTime)
	if err != nil {
		return nil, ErrInvalidRange
	}
	endMin, err := domain.ParseTimeOfDay(dto.EndTime)
	if err != nil {
		return nil, ErrInvalidRange
	}
	if startMin >= endMin {
		return nil, ErrInvalidRange
	}
	if _, err := domain.ParseDate(dto.Date); err != nil {
		return nil, ErrInvalidRange
	}
	category := domain.VehicleCategory(dto.VehicleCategory)
	if !domain.ValidVehicleCategory(category) {
		return nil, fmt.Errorf("invalid vehicle category: %s", dto.VehicleCategory)
	}

	space, err := s.spaceRepo.FindByID(ctx, dto.SpaceID)
	if err != nil {
		return nil, err
	}

	lock := s.timelineLock(space.ID, dto.Date)
	lock.Lock()
	defer lock.Unlock()

	existing, err := s.resRepo.FindActiveBySpaceAndDate(ctx, space.ID, dto.Date)
	if err != nil {
		return nil, fmt.Errorf("checking existing reservations: %w", err)
	}
	for _, other := range existing {
		otherStart, err := domain.ParseTimeOfDay(other.StartTime)
		if err != nil {
			return nil, fmt.Errorf("stored reservation %d has bad start time: %w", other.ID, err)
		}
		otherEnd, err := domain.ParseTimeOfDay(other.EndTime)
		if err != nil {
			return nil, fmt.Errorf("stored reservation %d has bad end time: %w", other.ID, err)
		}
		if domain.Overlaps(startMin, endMin, otherStart, otherEnd) {
			return nil, ErrOverlap
		}
	}

	res := &domain.Reservation{
		OwnerID:         ownerID,
		SpaceID:         space.ID,
		Date:            dto.Date,
		StartTime:       dto.StartTime,
		EndTime:         dto.EndTime,
		VehicleCategory: category,
		Plate:           dto.Plate,
		Status:          domain.ReservationActive,
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.resRepo.Create(ctx, res); err != nil {
			return err
		}
		return s.spaceRepo.UpdateStatus(ctx, space.ID, domain.SpaceReserved)
	})
	if err != nil {
		return nil, fmt.Errorf("creating reservation: %w", err)
	}

	log.WithFields(log.Fields{
		"reservation": res.ID,
		"space":       space.Number,
		"date":        res.Date,
		"window":      res.StartTime + "-" + res.EndTime,
	}).Info("reservation booked")

	s.notifySpace(space, domain.SpaceReserved)
	res.Space = space
	return res, nil
}

// Cancel marks a not-yet-started reservation CANCELLED and frees its space.
// Only the owner may cancel. Freeing is safe even when other reservations
// exist for the same space: FREE only means nobody is due right now.
func (s *SchedulerService) Cancel(ctx context.Context, reservationID, requesterID int) error {
	res, err := s.resRepo.FindByID(ctx, reservationID)
	if err != nil {
		return err
	}
	if res.OwnerID != requesterID {
		return ErrForbidden
	}
	if res.Status != domain.ReservationActive {
		return ErrAlreadyCompleted
	}

	now := s.clock.Now()
	startAt, err := domain.CombineDateTime(res.Date, res.StartTime, now.Location())
	if err != nil {
		return fmt.Errorf("stored reservation %d has bad date/time: %w", res.ID, err)
	}
	if !now.Before(startAt) {
		return ErrTooLate
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.resRepo.UpdateStatus(ctx, res.ID, domain.ReservationCancelled); err != nil {
			return err
		}
		return s.spaceRepo.UpdateStatus(ctx, res.SpaceID, domain.SpaceFree)
	})
	if err != nil {
		return fmt.Errorf("cancelling reservation: %w", err)
	}

	log.WithFields(log.Fields{"reservation": res.ID, "space": res.SpaceID}).Info("reservation cancelled")

	if space, err := s.spaceRepo.FindByID(ctx, res.SpaceID); err == nil {
		s.notifySpace(space, domain.SpaceFree)
	}
	return nil
}

// FindActiveForPlate returns the first ACTIVE reservation whose plate
// matches case-insensitively and whose window contains "now" with both ends
// inclusive. The inclusive end differs from the exclusive end used when
// booking; both behaviors are deliberate and pinned by tests.
func (s *SchedulerService) FindActiveForPlate(ctx context.Context, plate string) (*domain.Reservation, error) {
	now := s.clock.Now()
	date := now.Format(domain.DateLayout)
	nowMin := domain.MinutesOfDay(now)

	candidates, err := s.resRepo.FindActiveByPlateAndDate(ctx, plate, date)
	if err != nil {
		return nil, fmt.Errorf("looking up plate %q: %w", plate, err)
	}

	for i := range candidates {
		res := &candidates[i]
		startMin, err := domain.ParseTimeOfDay(res.StartTime)
		if err != nil {
			continue
		}
		endMin, err := domain.ParseTimeOfDay(res.EndTime)
		if err != nil {
			continue
		}
		if startMin <= nowMin && nowMin <= endMin {
			if space, err := s.spaceRepo.FindByID(ctx, res.SpaceID); err == nil {
				res.Space = space
			}
			return res, nil
		}
	}
	return nil, repository.ErrNoActiveReservation
}

// ListForOwner returns a user's reservations, either the ACTIVE ones in
// chronological order or the full history newest first.
func (s *SchedulerService) ListForOwner(ctx context.Context, ownerID int, onlyActive bool) ([]domain.Reservation, error) {
	return s.resRepo.FindByOwner(ctx, ownerID, onlyActive)
}

// ExpireElapsed transitions ACTIVE reservations whose window fully elapsed
// without a recorded entry to EXPIRED, freeing spaces still held RESERVED.
// It returns the number of reservations expired.
func (s *SchedulerService) ExpireElapsed(ctx context.Context) (int, error) {
	now := s.clock.Now()
	candidates, err := s.resRepo.FindActiveWithoutEntry(ctx)
	if err != nil {
		return 0, fmt.Errorf("listing expiry candidates: %w", err)
	}

	expired := 0
	for _, res := range candidates {
		endAt, err := domain.CombineDateTime(res.Date, res.EndTime, now.Location())
		if err != nil {
			log.WithFields(log.Fields{"reservation": res.ID}).Warnf("bad stored date/time: %v", err)
			continue
		}
		if now.Before(endAt) {
			continue
		}

		res := res
		err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
			if err := s.resRepo.UpdateStatus(ctx, res.ID, domain.ReservationExpired); err != nil {
				return err
			}
			space, err := s.spaceRepo.FindByID(ctx, res.SpaceID)
			if err != nil {
				return err
			}
			if space.Status == domain.SpaceReserved {
				if err := s.spaceRepo.UpdateStatus(ctx, space.ID, domain.SpaceFree); err != nil {
					return err
				}
				s.notifySpace(space, domain.SpaceFree)
			}
			return nil
		})
		if err != nil {
			log.WithFields(log.Fields{"reservation": res.ID}).Errorf("expiring reservation: %v", err)
			continue
		}
		expired++
	}
	return expired, nil
}

// StartExpiryWorker runs ExpireElapsed on a fixed interval until ctx is
// cancelled.
func (s *SchedulerService) StartExpiryWorker(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				count, err := s.ExpireElapsed(ctx)
				if err != nil {
					log.Errorf("expiry sweep: %v", err)
				} else if count > 0 {
					log.Infof("expiry sweep: %d reservation(s) expired", count)
				}
			}
		}
	}()
}
