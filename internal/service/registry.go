package service

import (
	"context"
	"errors"
	"fmt"

	"parking_reservation/internal/domain"
	"parking_reservation/internal/repository"

	log "github.com/sirupsen/logrus"
)

// RegistryService manages the space inventory. It performs no transition
// policy on status: that belongs to the scheduler and tracker.
type RegistryService struct {
	spaceRepo repository.SpaceRepository
	notifier  StatusNotifier
}

func NewRegistryService(spaceRepo repository.SpaceRepository, notifier StatusNotifier) *RegistryService {
	if notifier == nil {
		notifier = NewNoopNotifier()
	}
	return &RegistryService{spaceRepo: spaceRepo, notifier: notifier}
}

func (s *RegistryService) CreateSpace(ctx context.Context, dto domain.ParkingSpaceDTO) (*domain.ParkingSpace, error) {
	category := domain.SpaceCategory(dto.Category)
	if !domain.ValidSpaceCategory(category) {
		return nil, fmt.Errorf("invalid space category: %s", dto.Category)
	}

	space := &domain.ParkingSpace{
		Number:   dto.Number,
		Category: category,
		Status:   domain.SpaceFree,
	}
	return s.spaceRepo.Create(ctx, space)
}

func (s *RegistryService) GetSpace(ctx context.Context, id int) (*domain.ParkingSpace, error) {
	return s.spaceRepo.FindByID(ctx, id)
}

func (s *RegistryService) ListSpaces(ctx context.Context) ([]domain.ParkingSpace, error) {
	return s.spaceRepo.FindAll(ctx)
}

// SetSpaceStatus overwrites the status of a space. Exposed for
// administrative use (BLOCKED for maintenance, back to FREE).
func (s *RegistryService) SetSpaceStatus(ctx context.Context, id int, status domain.SpaceStatus) (*domain.ParkingSpace, error) {
	if !domain.ValidSpaceStatus(status) {
		return nil, fmt.Errorf("invalid space status: %s", status)
	}
	if err := s.spaceRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	space, err := s.spaceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.notifier.SpaceStatusChanged(domain.SpaceStatusNotification{
		SpaceID: space.ID,
		Number:  space.Number,
		Status:  space.Status,
	})
	return space, nil
}

// SeedDefaultSpaces creates the initial inventory: spaces 1-10 for cars and
// 11-20 for motorcycles. Existing numbers are skipped, so reruns are safe.
func (s *RegistryService) SeedDefaultSpaces(ctx context.Context) (int, error) {
	created := 0
	seed := func(number int, category domain.SpaceCategory) error {
		if _, err := s.spaceRepo.FindByNumber(ctx, number); err == nil {
			return nil
		} else if !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		_, err := s.spaceRepo.Create(ctx, &domain.ParkingSpace{
			Number:   number,
			Category: category,
			Status:   domain.SpaceFree,
		})
		if err != nil {
			if errors.Is(err, repository.ErrDuplicateEntry) {
				return nil
			}
			return err
		}
		created++
		return nil
	}

	for i := 1; i <= 10; i++ {
		if err := seed(i, domain.CategoryVehicle); err != nil {
			return created, fmt.Errorf("seeding space %d: %w", i, err)
		}
	}
	for i := 11; i <= 20; i++ {
		if err := seed(i, domain.CategoryMotorcycle); err != nil {
			return created, fmt.Errorf("seeding space %d: %w", i, err)
		}
	}

	log.Infof("space seeding done, %d created", created)
	return created, nil
}
