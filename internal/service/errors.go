package service

import "errors"

var (
	// ErrInvalidRange: the booking window is malformed (start >= end or
	// unparseable date/time).
	ErrInvalidRange = errors.New("start time must be before end time")
	// ErrOverlap: an ACTIVE reservation already claims part of the window.
	ErrOverlap = errors.New("space already reserved in that time window")
	// ErrTooLate: cancellation attempted at or after the window start.
	ErrTooLate = errors.New("reservation already started or passed")
	// ErrForbidden: the acting user does not own the target record.
	ErrForbidden = errors.New("not allowed to act on this record")
	// ErrAlreadyCompleted: the reservation has already been finalized.
	ErrAlreadyCompleted = errors.New("reservation already finalized")
)
