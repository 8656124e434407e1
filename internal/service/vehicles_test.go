package service

import (
	"context"
	"testing"

	"parking_reservation/internal/domain"
	"parking_reservation/internal/repository"
	"parking_reservation/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newVehicleService() *VehicleService {
	store := memory.NewStore()
	return NewVehicleService(memory.NewVehicleRepository(store))
}

func TestVehicleRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("registers a vehicle for its owner", func(t *testing.T) {
		svc := newVehicleService()
		vehicle, err := svc.Register(ctx, 7, domain.VehicleDTO{Plate: "ABC-123", Category: "CAR"})
		require.NoError(t, err)
		assert.Equal(t, 7, vehicle.OwnerID)
		assert.NotZero(t, vehicle.ID)
	})

	t.Run("duplicate plate is rejected across owners", func(t *testing.T) {
		svc := newVehicleService()
		_, err := svc.Register(ctx, 7, domain.VehicleDTO{Plate: "ABC-123", Category: "CAR"})
		require.NoError(t, err)

		_, err = svc.Register(ctx, 8, domain.VehicleDTO{Plate: "abc-123", Category: "CAR"})
		assert.ErrorIs(t, err, repository.ErrDuplicateEntry)
	})

	t.Run("unknown category is rejected", func(t *testing.T) {
		svc := newVehicleService()
		_, err := svc.Register(ctx, 7, domain.VehicleDTO{Plate: "ABC-123", Category: "TRACTOR"})
		assert.Error(t, err)
	})
}

func TestVehicleListForOwner(t *testing.T) {
	ctx := context.Background()
	svc := newVehicleService()

	_, err := svc.Register(ctx, 7, domain.VehicleDTO{Plate: "AAA-111", Category: "CAR"})
	require.NoError(t, err)
	_, err = svc.Register(ctx, 7, domain.VehicleDTO{Plate: "BBB-222", Category: "MOTORCYCLE"})
	require.NoError(t, err)
	_, err = svc.Register(ctx, 8, domain.VehicleDTO{Plate: "CCC-333", Category: "CAR"})
	require.NoError(t, err)

	mine, err := svc.ListForOwner(ctx, 7)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "AAA-111", mine[0].Plate)
	assert.Equal(t, "BBB-222", mine[1].Plate)
}

func TestVehicleDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("owner deletes their vehicle", func(t *testing.T) {
		svc := newVehicleService()
		vehicle, err := svc.Register(ctx, 7, domain.VehicleDTO{Plate: "ABC-123", Category: "CAR"})
		require.NoError(t, err)

		require.NoError(t, svc.Delete(ctx, vehicle.ID, 7))

		mine, err := svc.ListForOwner(ctx, 7)
		require.NoError(t, err)
		assert.Empty(t, mine)
	})

	t.Run("non owner is rejected", func(t *testing.T) {
		svc := newVehicleService()
		vehicle, err := svc.Register(ctx, 7, domain.VehicleDTO{Plate: "ABC-123", Category: "CAR"})
		require.NoError(t, err)

		assert.ErrorIs(t, svc.Delete(ctx, vehicle.ID, 99), ErrForbidden)
	})

	t.Run("unknown vehicle", func(t *testing.T) {
		svc := newVehicleService()
		assert.ErrorIs(t, svc.Delete(ctx, 42, 7), repository.ErrNotFound)
	})
}
