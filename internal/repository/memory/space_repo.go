package memory

import (
	"context"
	"fmt"
	"sort"

	"parking_reservation/internal/domain"
	"parking_reservation/internal/repository"
)

type spaceRepository struct {
	store *Store
}

func NewSpaceRepository(store *Store) repository.SpaceRepository {
	return &spaceRepository{store: store}
}

func (r *spaceRepository) Create(ctx context.Context, space *domain.ParkingSpace) (*domain.ParkingSpace, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.spaces {
		if existing.Number == space.Number {
			return nil, fmt.Errorf("%w: space number %d already exists", repository.ErrDuplicateEntry, space.Number)
		}
	}

	s.nextSpaceID++
	space.ID = s.nextSpaceID
	space.CreatedAt = now()
	space.UpdatedAt = space.CreatedAt

	stored := *space
	s.spaces[space.ID] = &stored
	return space, nil
}

func (r *spaceRepository) FindByID(ctx context.Context, id int) (*domain.ParkingSpace, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	space, ok := s.spaces[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := *space
	return &out, nil
}

func (r *spaceRepository) FindByNumber(ctx context.Context, number int) (*domain.ParkingSpace, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, space := range s.spaces {
		if space.Number == number {
			out := *space
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *spaceRepository) FindAll(ctx context.Context) ([]domain.ParkingSpace, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	spaces := make([]domain.ParkingSpace, 0, len(s.spaces))
	for _, space := range s.spaces {
		spaces = append(spaces, *space)
	}
	sort.Slice(spaces, func(i, j int) bool { return spaces[i].Number < spaces[j].Number })
	return spaces, nil
}

func (r *spaceRepository) UpdateStatus(ctx context.Context, id int, status domain.SpaceStatus) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	space, ok := s.spaces[id]
	if !ok {
		return repository.ErrNotFound
	}
	space.Status = status
	space.UpdatedAt = now()
	return nil
}
