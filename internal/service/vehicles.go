package service

import (
	"context"
	"fmt"

	"parking_reservation/internal/domain"
	"parking_reservation/internal/repository"
)

// VehicleService manages each user's registered vehicles. Plates are
// globally unique across owners.
type VehicleService struct {
	vehicleRepo repository.VehicleRepository
}

func NewVehicleService(vehicleRepo repository.VehicleRepository) *VehicleService {
	return &VehicleService{vehicleRepo: vehicleRepo}
}

func (s *VehicleService) Register(ctx context.Context, ownerID int, dto domain.VehicleDTO) (*domain.Vehicle, error) {
	category := domain.VehicleCategory(dto.Category)
	if !domain.ValidVehicleCategory(category) {
		return nil, fmt.Errorf("invalid vehicle category: %s", dto.Category)
	}

	vehicle := &domain.Vehicle{
		OwnerID:     ownerID,
		Plate:       dto.Plate,
		Category:    category,
		Description: dto.Description,
	}
	return s.vehicleRepo.Create(ctx, vehicle)
}

func (s *VehicleService) ListForOwner(ctx context.Context, ownerID int) ([]domain.Vehicle, error) {
	return s.vehicleRepo.FindByOwner(ctx, ownerID)
}

// Delete removes a vehicle; only its owner may do so.
func (s *VehicleService) Delete(ctx context.Context, vehicleID, requesterID int) error {
	vehicle, err := s.vehicleRepo.FindByID(ctx, vehicleID)
	if err != nil {
		return err
	}
	if vehicle.OwnerID != requesterID {
		return ErrForbidden
	}
	return s.vehicleRepo.Delete(ctx, vehicleID)
}
