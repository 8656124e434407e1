package service

import (
	"context"
	"fmt"

	"parking_reservation/internal/domain"
	"parking_reservation/internal/repository"

	log "github.com/sirupsen/logrus"
	"gopkg.in/guregu/null.v4"
)

// TrackerService records physical entry and exit events against a
// reservation. The occupancy session runs on its own timeline: entry is
// accepted whenever the reservation exists, with no check that "now" falls
// inside the booked window.
type TrackerService struct {
	spaceRepo repository.SpaceRepository
	resRepo   repository.ReservationRepository
	tx        repository.TxManager
	clock     Clock
	notifier  StatusNotifier
}

func NewTrackerService(
	spaceRepo repository.SpaceRepository,
	resRepo repository.ReservationRepository,
	tx repository.TxManager,
	clock Clock,
	notifier StatusNotifier,
) *TrackerService {
	if notifier == nil {
		notifier = NewNoopNotifier()
	}
	return &TrackerService{
		spaceRepo: spaceRepo,
		resRepo:   resRepo,
		tx:        tx,
		clock:     clock,
		notifier:  notifier,
	}
}

func (t *TrackerService) notifySpace(spaceID int, status domain.SpaceStatus) {
	space, err := t.spaceRepo.FindByID(context.Background(), spaceID)
	if err != nil {
		return
	}
	t.notifier.SpaceStatusChanged(domain.SpaceStatusNotification{
		SpaceID:   space.ID,
		Number:    space.Number,
		Status:    status,
		Timestamp: t.clock.Now(),
	})
}

// RecordEntry stamps the entry time and marks the space OCCUPIED. The
// reservation stays ACTIVE.
func (t *TrackerService) RecordEntry(ctx context.Context, reservationID int) (*domain.Reservation, error) {
	res, err := t.resRepo.FindByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	entry := null.TimeFrom(t.clock.Now())
	err = t.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := t.resRepo.SetEntryTime(ctx, res.ID, entry); err != nil {
			return err
		}
		return t.spaceRepo.UpdateStatus(ctx, res.SpaceID, domain.SpaceOccupied)
	})
	if err != nil {
		return nil, fmt.Errorf("recording entry: %w", err)
	}

	log.WithFields(log.Fields{"reservation": res.ID, "plate": res.Plate}).Info("entry recorded")
	t.notifySpace(res.SpaceID, domain.SpaceOccupied)

	res.EntryTime = entry
	return res, nil
}

// RecordExit stamps the exit time, completes the reservation and frees the
// space. A reservation can be exited once; a second call fails instead of
// silently re-freeing an already-free space.
func (t *TrackerService) RecordExit(ctx context.Context, reservationID int) (*domain.Reservation, error) {
	res, err := t.resRepo.FindByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if res.ExitTime.Valid || res.Status == domain.ReservationCompleted {
		return nil, ErrAlreadyCompleted
	}

	exit := null.TimeFrom(t.clock.Now())
	err = t.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := t.resRepo.SetExit(ctx, res.ID, exit, domain.ReservationCompleted); err != nil {
			return err
		}
		return t.spaceRepo.UpdateStatus(ctx, res.SpaceID, domain.SpaceFree)
	})
	if err != nil {
		return nil, fmt.Errorf("recording exit: %w", err)
	}

	log.WithFields(log.Fields{"reservation": res.ID, "plate": res.Plate}).Info("exit recorded")
	t.notifySpace(res.SpaceID, domain.SpaceFree)

	res.ExitTime = exit
	res.Status = domain.ReservationCompleted
	return res, nil
}

// ListInProgress returns the reservations with a recorded entry and no exit
// for the given date ("2006-01-02").
func (t *TrackerService) ListInProgress(ctx context.Context, date string) ([]domain.Reservation, error) {
	if _, err := domain.ParseDate(date); err != nil {
		return nil, ErrInvalidRange
	}
	return t.resRepo.FindInProgressByDate(ctx, date)
}
