package service

import "parking_reservation/internal/domain"

// StatusNotifier receives space status changes for fan-out to subscribers
// (the websocket availability board). Implementations must not block.
type StatusNotifier interface {
	SpaceStatusChanged(notification domain.SpaceStatusNotification)
}

type noopNotifier struct{}

func (noopNotifier) SpaceStatusChanged(domain.SpaceStatusNotification) {}

// NewNoopNotifier is used where no push feed is wired (seeding, tests).
func NewNoopNotifier() StatusNotifier { return noopNotifier{} }
