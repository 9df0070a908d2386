package app

import "errors"

// Errors returned synchronously by the services. Remote failures never show
// up here: they are reverted and reported through the Notifier port.
var (
	// ErrInvalid marks a validation failure (empty required field, bad index).
	ErrInvalid = errors.New("invalid request")
	// ErrNotFound marks a reference to an entity absent from the snapshot.
	ErrNotFound = errors.New("not found")
	// ErrClosed is returned when submitting to a torn-down engine.
	ErrClosed = errors.New("engine closed")
)
