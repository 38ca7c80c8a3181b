package entity

import "errors"

var (
	// ErrDuplicate is returned when a booking targets an already-booked room.
	ErrDuplicate = errors.New("duplicate booking")
	// ErrNotFound is returned when an operation targets a booking that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrTransport is returned when an outbound call to the provider fails.
	ErrTransport = errors.New("transport failure")
)
