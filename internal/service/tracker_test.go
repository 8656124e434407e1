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

type trackerFixture struct {
	scheduler *SchedulerService
	tracker   *TrackerService
	spaces    repository.SpaceRepository
	clock     *fakeClock
}

func newTrackerFixture(t *testing.T) *trackerFixture {
	t.Helper()
	store := memory.NewStore()
	spaceRepo := memory.NewSpaceRepository(store)
	resRepo := memory.NewReservationRepository(store)
	clock := newFakeClock(time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC))
	return &trackerFixture{
		scheduler: NewSchedulerService(spaceRepo, resRepo, store, clock, nil),
		tracker:   NewTrackerService(spaceRepo, resRepo, store, clock, nil),
		spaces:    spaceRepo,
		clock:     clock,
	}
}

func (f *trackerFixture) book(t *testing.T, number int, start, end string) *domain.Reservation {
	t.Helper()
	space, err := f.spaces.Create(context.Background(), &domain.ParkingSpace{
		Number:   number,
		Category: domain.CategoryVehicle,
		Status:   domain.SpaceFree,
	})
	require.NoError(t, err)

	res, err := f.scheduler.Book(context.Background(), 7, domain.BookingDTO{
		SpaceID:         space.ID,
		Date:            "2026-03-14",
		StartTime:       start,
		EndTime:         end,
		VehicleCategory: string(domain.VehicleCar),
		Plate:           "ABC-123",
	})
	require.NoError(t, err)
	return res
}

func TestRecordEntry(t *testing.T) {
	ctx := context.Background()

	t.Run("stamps entry and occupies the space", func(t *testing.T) {
		f := newTrackerFixture(t)
		res := f.book(t, 1, "10:00", "11:00")

		f.clock.Set(time.Date(2026, 3, 14, 10, 5, 0, 0, time.UTC))
		entered, err := f.tracker.RecordEntry(ctx, res.ID)
		require.NoError(t, err)
		assert.True(t, entered.EntryTime.Valid)
		assert.Equal(t, domain.ReservationActive, entered.Status)

		space, err := f.spaces.FindByID(ctx, res.SpaceID)
		require.NoError(t, err)
		assert.Equal(t, domain.SpaceOccupied, space.Status)
	})

	t.Run("entry is accepted outside the booked window", func(t *testing.T) {
		f := newTrackerFixture(t)
		res := f.book(t, 1, "10:00", "11:00")

		// Arriving well before the window starts still registers.
		f.clock.Set(time.Date(2026, 3, 14, 8, 30, 0, 0, time.UTC))
		entered, err := f.tracker.RecordEntry(ctx, res.ID)
		require.NoError(t, err)
		assert.True(t, entered.EntryTime.Valid)
	})

	t.Run("unknown reservation", func(t *testing.T) {
		f := newTrackerFixture(t)
		_, err := f.tracker.RecordEntry(ctx, 42)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestRecordExit(t *testing.T) {
	ctx := context.Background()

	t.Run("completes the reservation and frees the space", func(t *testing.T) {
		f := newTrackerFixture(t)
		res := f.book(t, 1, "10:00", "11:00")

		f.clock.Set(time.Date(2026, 3, 14, 10, 5, 0, 0, time.UTC))
		_, err := f.tracker.RecordEntry(ctx, res.ID)
		require.NoError(t, err)

		f.clock.Set(time.Date(2026, 3, 14, 10, 55, 0, 0, time.UTC))
		exited, err := f.tracker.RecordExit(ctx, res.ID)
		require.NoError(t, err)
		assert.True(t, exited.ExitTime.Valid)
		assert.Equal(t, domain.ReservationCompleted, exited.Status)

		space, err := f.spaces.FindByID(ctx, res.SpaceID)
		require.NoError(t, err)
		assert.Equal(t, domain.SpaceFree, space.Status)
	})

	t.Run("second exit is rejected", func(t *testing.T) {
		f := newTrackerFixture(t)
		res := f.book(t, 1, "10:00", "11:00")

		_, err := f.tracker.RecordEntry(ctx, res.ID)
		require.NoError(t, err)
		_, err = f.tracker.RecordExit(ctx, res.ID)
		require.NoError(t, err)

		_, err = f.tracker.RecordExit(ctx, res.ID)
		assert.ErrorIs(t, err, ErrAlreadyCompleted)
	})

	t.Run("unknown reservation", func(t *testing.T) {
		f := newTrackerFixture(t)
		_, err := f.tracker.RecordExit(ctx, 42)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestSpaceStatusLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newTrackerFixture(t)
	res := f.book(t, 1, "10:00", "11:00")

	statusOf := func() domain.SpaceStatus {
		space, err := f.spaces.FindByID(ctx, res.SpaceID)
		require.NoError(t, err)
		return space.Status
	}

	assert.Equal(t, domain.SpaceReserved, statusOf())

	_, err := f.tracker.RecordEntry(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SpaceOccupied, statusOf())

	_, err = f.tracker.RecordExit(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SpaceFree, statusOf())
}

func TestListInProgress(t *testing.T) {
	ctx := context.Background()
	f := newTrackerFixture(t)

	inProgress := f.book(t, 1, "10:00", "11:00")
	done := f.book(t, 2, "10:00", "11:00")
	f.book(t, 3, "10:00", "11:00") // never entered

	_, err := f.tracker.RecordEntry(ctx, inProgress.ID)
	require.NoError(t, err)
	_, err = f.tracker.RecordEntry(ctx, done.ID)
	require.NoError(t, err)
	_, err = f.tracker.RecordExit(ctx, done.ID)
	require.NoError(t, err)

	list, err := f.tracker.ListInProgress(ctx, "2026-03-14")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, inProgress.ID, list[0].ID)

	_, err = f.tracker.ListInProgress(ctx, "not-a-date")
	assert.ErrorIs(t, err, ErrInvalidRange)
}
