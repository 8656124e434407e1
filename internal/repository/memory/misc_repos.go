package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"parking_reservation/internal/domain"
	"parking_reservation/internal/repository"
)

type vehicleRepository struct {
	store *Store
}

func NewVehicleRepository(store *Store) repository.VehicleRepository {
	return &vehicleRepository{store: store}
}

func (r *vehicleRepository) Create(ctx context.Context, vehicle *domain.Vehicle) (*domain.Vehicle, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.vehicles {
		if strings.EqualFold(existing.Plate, vehicle.Plate) {
			return nil, fmt.Errorf("%w: plate %q already registered", repository.ErrDuplicateEntry, vehicle.Plate)
		}
	}

	s.nextVehicleID++
	vehicle.ID = s.nextVehicleID
	vehicle.CreatedAt = now()
	vehicle.UpdatedAt = vehicle.CreatedAt

	stored := *vehicle
	s.vehicles[vehicle.ID] = &stored
	return vehicle, nil
}

func (r *vehicleRepository) FindByID(ctx context.Context, id int) (*domain.Vehicle, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	vehicle, ok := s.vehicles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := *vehicle
	return &out, nil
}

func (r *vehicleRepository) FindByOwner(ctx context.Context, ownerID int) ([]domain.Vehicle, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Vehicle
	for _, vehicle := range s.vehicles {
		if vehicle.OwnerID == ownerID {
			out = append(out, *vehicle)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Plate < out[j].Plate })
	return out, nil
}

func (r *vehicleRepository) Delete(ctx context.Context, id int) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.vehicles[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.vehicles, id)
	return nil
}

type incidentRepository struct {
	store *Store
}

func NewIncidentRepository(store *Store) repository.IncidentRepository {
	return &incidentRepository{store: store}
}

func (r *incidentRepository) Create(ctx context.Context, incident *domain.Incident) (*domain.Incident, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextIncidentID++
	incident.ID = s.nextIncidentID

	stored := *incident
	s.incidents = append(s.incidents, &stored)
	return incident, nil
}

func (r *incidentRepository) FindAll(ctx context.Context) ([]domain.Incident, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Incident, 0, len(s.incidents))
	for _, incident := range s.incidents {
		out = append(out, *incident)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ReportedAt.After(out[j].ReportedAt) })
	return out, nil
}

type userRepository struct {
	store *Store
}

func NewUserRepository(store *Store) repository.UserRepository {
	return &userRepository{store: store}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Username == user.Username {
			return nil, fmt.Errorf("%w: username %q already taken", repository.ErrDuplicateEntry, user.Username)
		}
	}

	s.nextUserID++
	user.ID = s.nextUserID
	user.CreatedAt = now()
	user.UpdatedAt = user.CreatedAt

	stored := *user
	s.users[user.ID] = &stored
	return user, nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.Username == username {
			out := *user
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *userRepository) FindByID(ctx context.Context, id int) (*domain.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := *user
	return &out, nil
}
