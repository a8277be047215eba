package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dtroode/userdir/internal/logger"
	"github.com/dtroode/userdir/internal/model"
)

// User coordinates the authoritative user store with the best-effort
// cache. Reads go cache-first and repopulate on a miss; writes go to the
// store and opportunistically update the cache. A failing cache degrades
// latency only: every cache error is logged and the store answers alone.
type User struct {
	store  model.UserStore
	cache  model.UserCache
	logger *logger.Logger
}

func NewUser(store model.UserStore, cache model.UserCache, logger *logger.Logger) *User {
	return &User{
		store:  store,
		cache:  cache,
		logger: logger,
	}
}

// Create persists a new user unless one with the same email already
// exists. The returned bool reports whether a row was created. Creating
// an existing email returns the stored record unchanged, so the call is
// idempotent with respect to email.
func (s *User) Create(ctx context.Context, name, email string) (model.User, bool, error) {
	existing, err := s.store.GetByEmail(ctx, email)
	if err == nil {
		s.logger.Info("User service: user already exists",
			"email", email)
		// Existing record found during create: returned as-is, not
		// written to the cache. The caller did not author new state.
		return existing, false, nil
	}
	if !errors.Is(err, model.ErrNotFound) {
		return model.User{}, false, fmt.Errorf("failed to get user by email: %w", err)
	}

	user, err := s.store.Create(ctx, model.User{Name: name, Email: email})
	if errors.Is(err, model.ErrConflict) {
		// Lost a race with a concurrent create for the same email.
		// The winner's row is the record of truth; fetch and return it.
		s.logger.Info("User service: concurrent create for same email",
			"email", email)
		existing, err := s.store.GetByEmail(ctx, email)
		if err != nil {
			return model.User{}, false, fmt.Errorf("failed to get user after conflict: %w", err)
		}
		return existing, false, nil
	}
	if err != nil {
		return model.User{}, false, fmt.Errorf("failed to create user: %w", err)
	}

	s.cachePut(ctx, user)

	s.logger.Info("User service: user created",
		"email", user.Email)

	return user, true, nil
}

// Get returns the user for the given email, consulting the cache first.
// A cache hit answers without touching the store; a miss falls through to
// the store and repopulates the cache. Not-found results are never cached.
func (s *User) Get(ctx context.Context, email string) (model.User, error) {
	cached, ok, err := s.cache.Get(ctx, email)
	if err != nil {
		s.logger.Warn("User service: cache read failed, falling back to store",
			"email", email,
			"error", err.Error())
	}
	if ok {
		s.logger.Debug("User service: cache hit",
			"email", email)
		return cached, nil
	}

	user, err := s.store.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, model.ErrNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	s.cachePut(ctx, user)

	return user, nil
}

// List returns all users straight from the store. Listings bypass the
// cache entirely, so stale per-user entries never affect the result.
func (s *User) List(ctx context.Context) ([]model.User, error) {
	users, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return users, nil
}

// cachePut writes a user to the cache, swallowing any failure. Cache
// writes are best-effort and must never fail the request.
func (s *User) cachePut(ctx context.Context, user model.User) {
	if err := s.cache.Set(ctx, user); err != nil {
		s.logger.Warn("User service: cache write failed",
			"email", user.Email,
			"error", err.Error())
	}
}
