package model

import (
	"context"
)

// UserStore defines persistence operations for users.
// Implementations are authoritative: a user exists iff the store says so.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	Create(ctx context.Context, user User) (User, error)
	ListAll(ctx context.Context) ([]User, error)
}

// UserCache defines the best-effort cache in front of the store.
// Get returns (zero, false, nil) on a miss. Errors from any method mean
// "cache unavailable for this call" and must never fail the request.
type UserCache interface {
	Get(ctx context.Context, email string) (User, bool, error)
	Set(ctx context.Context, user User) error
	Close(ctx context.Context) error
}

// User represents a stored directory entry. Email is the identity key;
// ID is a store-generated surrogate.
type User struct {
	ID    int64
	Name  string
	Email string
}
