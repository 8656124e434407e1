// Package memory provides map-backed implementations of the repository
// interfaces. They keep the scheduler test suite hermetic and back the demo
// mode; production runs on the postgresql package.
package memory

import (
	"context"
	"sync"
	"time"

	"parking_reservation/internal/domain"
)

type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex

	nextSpaceID       int
	nextReservationID int
	nextVehicleID     int
	nextIncidentID    int
	nextUserID        int

	spaces       map[int]*domain.ParkingSpace
	reservations map[int]*domain.Reservation
	vehicles     map[int]*domain.Vehicle
	incidents    []*domain.Incident
	users        map[int]*domain.User
}

func NewStore() *Store {
	return &Store{
		spaces:       make(map[int]*domain.ParkingSpace),
		reservations: make(map[int]*domain.Reservation),
		vehicles:     make(map[int]*domain.Vehicle),
		users:        make(map[int]*domain.User),
	}
}

// WithinTx serializes transactional sections against each other. Individual
// repository calls are atomic on their own, so running fn under a dedicated
// mutex gives the same all-or-nothing observable behavior as a database
// transaction for this single-process store.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	return fn(ctx)
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}
