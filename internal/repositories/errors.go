package repositories

import "errors"

var (
	// ErrNotFound is returned by any repository lookup that matches no record.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when an insert violates a unique constraint.
	ErrDuplicate = errors.New("duplicate record")
)
