package service

import (
	"context"
	"testing"
	"time"

	"parking_reservation/internal/domain"
	"parking_reservation/internal/repository"
	"parking_reservation/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIncidentFixture(t *testing.T) (*IncidentService, *domain.ParkingSpace) {
	t.Helper()
	store := memory.NewStore()
	spaceRepo := memory.NewSpaceRepository(store)
	clock := newFakeClock(time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC))
	svc := NewIncidentService(memory.NewIncidentRepository(store), spaceRepo, clock)

	space, err := spaceRepo.Create(context.Background(), &domain.ParkingSpace{
		Number:   1,
		Category: domain.CategoryVehicle,
		Status:   domain.SpaceFree,
	})
	require.NoError(t, err)
	return svc, space
}

func TestIncidentReport(t *testing.T) {
	ctx := context.Background()

	t.Run("records a report against a space", func(t *testing.T) {
		svc, space := newIncidentFixture(t)

		incident, err := svc.Report(ctx, 3, domain.IncidentDTO{
			Category:    "IMPROPER_OCCUPANCY",
			SpaceID:     &space.ID,
			Description: "car without reservation in space 1",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, incident.Reference)
		assert.Equal(t, 3, incident.ReportedBy)
		assert.Equal(t, time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC), incident.ReportedAt)
		require.True(t, incident.SpaceID.Valid)
		assert.Equal(t, int64(space.ID), incident.SpaceID.Int64)
	})

	t.Run("space reference is optional", func(t *testing.T) {
		svc, _ := newIncidentFixture(t)

		incident, err := svc.Report(ctx, 3, domain.IncidentDTO{
			Category:    "OTHER",
			Description: "broken light near the entrance",
		})
		require.NoError(t, err)
		assert.False(t, incident.SpaceID.Valid)
	})

	t.Run("unknown space is rejected", func(t *testing.T) {
		svc, _ := newIncidentFixture(t)
		missing := 42

		_, err := svc.Report(ctx, 3, domain.IncidentDTO{
			Category:    "SPACE_DAMAGE",
			SpaceID:     &missing,
			Description: "paint worn off",
		})
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("unknown category is rejected", func(t *testing.T) {
		svc, _ := newIncidentFixture(t)

		_, err := svc.Report(ctx, 3, domain.IncidentDTO{
			Category:    "UFO",
			Description: "unidentified",
		})
		assert.Error(t, err)
	})
}

func TestIncidentList(t *testing.T) {
	ctx := context.Background()
	svc, space := newIncidentFixture(t)

	_, err := svc.Report(ctx, 3, domain.IncidentDTO{
		Category:    "NO_RESERVATION",
		SpaceID:     &space.ID,
		Description: "walked in without booking",
	})
	require.NoError(t, err)
	_, err = svc.Report(ctx, 4, domain.IncidentDTO{
		Category:    "OTHER",
		Description: "gate stuck",
	})
	require.NoError(t, err)

	incidents, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, incidents, 2)
}
