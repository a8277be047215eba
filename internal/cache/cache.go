// Package cache holds the degraded-mode variant of the user cache.
package cache

import (
	"context"

	"github.com/dtroode/userdir/internal/model"
)

var _ model.UserCache = Disabled{}

// Disabled is the cache variant used when no cache connection exists.
// Every lookup is a miss and every write is a no-op, so callers follow
// the same code path whether or not a cache is configured.
type Disabled struct{}

func (Disabled) Get(_ context.Context, _ string) (model.User, bool, error) {
	return model.User{}, false, nil
}

func (Disabled) Set(_ context.Context, _ model.User) error {
	return nil
}

func (Disabled) Close(_ context.Context) error {
	return nil
}
