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

func newRegistryService() *RegistryService {
	store := memory.NewStore()
	return NewRegistryService(memory.NewSpaceRepository(store), nil)
}

func TestCreateSpace(t *testing.T) {
	ctx := context.Background()

	t.Run("new spaces start free", func(t *testing.T) {
		registry := newRegistryService()
		space, err := registry.CreateSpace(ctx, domain.ParkingSpaceDTO{Number: 1, Category: "VEHICLE"})
		require.NoError(t, err)
		assert.Equal(t, domain.SpaceFree, space.Status)
		assert.Equal(t, domain.CategoryVehicle, space.Category)
	})

	t.Run("duplicate number is rejected", func(t *testing.T) {
		registry := newRegistryService()
		_, err := registry.CreateSpace(ctx, domain.ParkingSpaceDTO{Number: 1, Category: "VEHICLE"})
		require.NoError(t, err)

		_, err = registry.CreateSpace(ctx, domain.ParkingSpaceDTO{Number: 1, Category: "MOTORCYCLE"})
		assert.ErrorIs(t, err, repository.ErrDuplicateEntry)
	})

	t.Run("unknown category is rejected", func(t *testing.T) {
		registry := newRegistryService()
		_, err := registry.CreateSpace(ctx, domain.ParkingSpaceDTO{Number: 1, Category: "BOAT"})
		assert.Error(t, err)
	})
}

func TestListSpacesOrder(t *testing.T) {
	ctx := context.Background()
	registry := newRegistryService()

	for _, n := range []int{3, 1, 2} {
		_, err := registry.CreateSpace(ctx, domain.ParkingSpaceDTO{Number: n, Category: "VEHICLE"})
		require.NoError(t, err)
	}

	spaces, err := registry.ListSpaces(ctx)
	require.NoError(t, err)
	require.Len(t, spaces, 3)
	for i, space := range spaces {
		assert.Equal(t, i+1, space.Number)
	}
}

func TestSetSpaceStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("admin can block and unblock", func(t *testing.T) {
		registry := newRegistryService()
		space, err := registry.CreateSpace(ctx, domain.ParkingSpaceDTO{Number: 1, Category: "VEHICLE"})
		require.NoError(t, err)

		blocked, err := registry.SetSpaceStatus(ctx, space.ID, domain.SpaceBlocked)
		require.NoError(t, err)
		assert.Equal(t, domain.SpaceBlocked, blocked.Status)

		freed, err := registry.SetSpaceStatus(ctx, space.ID, domain.SpaceFree)
		require.NoError(t, err)
		assert.Equal(t, domain.SpaceFree, freed.Status)
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		registry := newRegistryService()
		space, err := registry.CreateSpace(ctx, domain.ParkingSpaceDTO{Number: 1, Category: "VEHICLE"})
		require.NoError(t, err)

		_, err = registry.SetSpaceStatus(ctx, space.ID, domain.SpaceStatus("PAINTED"))
		assert.Error(t, err)
	})

	t.Run("unknown space", func(t *testing.T) {
		registry := newRegistryService()
		_, err := registry.SetSpaceStatus(ctx, 42, domain.SpaceFree)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestSeedDefaultSpaces(t *testing.T) {
	ctx := context.Background()
	registry := newRegistryService()

	created, err := registry.SeedDefaultSpaces(ctx)
	require.NoError(t, err)
	assert.Equal(t, 20, created)

	spaces, err := registry.ListSpaces(ctx)
	require.NoError(t, err)
	require.Len(t, spaces, 20)
	for _, space := range spaces {
		if space.Number <= 10 {
			assert.Equal(t, domain.CategoryVehicle, space.Category, "space %d", space.Number)
		} else {
			assert.Equal(t, domain.CategoryMotorcycle, space.Category, "space %d", space.Number)
		}
	}

	// Rerun skips everything that already exists.
	created, err = registry.SeedDefaultSpaces(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, created)
}
