package repository

import (
	"context"
	"errors"

	"parking_reservation/internal/domain"

	"gopkg.in/guregu/null.v4"
)

var ErrNotFound = errors.New("record not found")
var ErrDuplicateEntry = errors.New("record already exists")
var ErrNoActiveReservation = errors.New("no active reservation for the given details")

// TxManager runs fn inside one atomic unit of work. Writes issued through
// the repositories with the context passed to fn either all commit or all
// roll back. The scheduler uses it for the reservation-insert + space-status
// write pair.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id int) (*domain.User, error)
}

type SpaceRepository interface {
	Create(ctx context.Context, space *domain.ParkingSpace) (*domain.ParkingSpace, error)
	FindByID(ctx context.Context, id int) (*domain.ParkingSpace, error)
	FindByNumber(ctx context.Context, number int) (*domain.ParkingSpace, error)
	// FindAll returns every space in ascending number order.
	FindAll(ctx context.Context) ([]domain.ParkingSpace, error)
	// UpdateStatus overwrites the status without checking transition
	// legality; callers own that policy.
	UpdateStatus(ctx context.Context, id int, status domain.SpaceStatus) error
}

type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
	FindByID(ctx context.Context, id int) (*domain.Reservation, error)
	// FindActiveBySpaceAndDate returns the ACTIVE reservations sharing one
	// (space, date) timeline, ordered by start time.
	FindActiveBySpaceAndDate(ctx context.Context, spaceID int, date string) ([]domain.Reservation, error)
	// FindActiveByPlateAndDate matches the plate case-insensitively.
	FindActiveByPlateAndDate(ctx context.Context, plate, date string) ([]domain.Reservation, error)
	FindByOwner(ctx context.Context, ownerID int, onlyActive bool) ([]domain.Reservation, error)
	// FindInProgressByDate returns reservations with an entry recorded but
	// no exit yet, restricted to the given date.
	FindInProgressByDate(ctx context.Context, date string) ([]domain.Reservation, error)
	// FindActiveWithoutEntry feeds the expiry sweep.
	FindActiveWithoutEntry(ctx context.Context) ([]domain.Reservation, error)
	UpdateStatus(ctx context.Context, id int, status domain.ReservationStatus) error
	SetEntryTime(ctx context.Context, id int, entry null.Time) error
	SetExit(ctx context.Context, id int, exit null.Time, status domain.ReservationStatus) error
}

type VehicleRepository interface {
	Create(ctx context.Context, vehicle *domain.Vehicle) (*domain.Vehicle, error)
	FindByID(ctx context.Context, id int) (*domain.Vehicle, error)
	FindByOwner(ctx context.Context, ownerID int) ([]domain.Vehicle, error)
	Delete(ctx context.Context, id int) error
}

type IncidentRepository interface {
	Create(ctx context.Context, incident *domain.Incident) (*domain.Incident, error)
	// FindAll returns incidents newest first.
	FindAll(ctx context.Context) ([]domain.Incident, error)
}
