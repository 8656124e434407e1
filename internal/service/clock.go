package service

import "time"

// Clock is the time source injected into the scheduler and tracker so tests
// can pin "now".
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func NewRealClock() Clock { return realClock{} }
