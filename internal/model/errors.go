package model

import "errors"

var (
	// ErrNotFound is returned by stores when no row matches the query.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned by stores on a unique-constraint violation,
	// i.e. a concurrent insert won the race for the same email.
	ErrConflict = errors.New("already exists")
)
