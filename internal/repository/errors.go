package repository

import "errors"

var (
	// ErrNotFound is returned when an id lookup matches no row.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidInput is returned when a create or update is missing
	// required fields.
	ErrInvalidInput = errors.New("invalid input")
)
