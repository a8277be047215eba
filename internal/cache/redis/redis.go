// Package redis implements the user cache on top of a redis key-value
// store. Entries live under "user:{email}" with a bounded TTL; values are
// msgpack-encoded snapshots of the stored user.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/dtroode/userdir/internal/model"
)

var _ model.UserCache = (*Cache)(nil)

const keyPrefix = "user:"

// Config contains cache client parameters.
type Config struct {
	Addr string
	DB   int
	TTL  time.Duration
}

// Cache is a connected redis-backed user cache.
type Cache struct {
	rdb *goredis.Client
	ttl time.Duration
}

// entry is the wire form of a cached user. The surrogate ID is not
// cached: email is the identity key and the value only needs to round-trip
// name and email.
type entry struct {
	Name  string `msgpack:"name"`
	Email string `msgpack:"email"`
}

// New creates a redis client and verifies the connection with a ping.
// A ping failure is returned to the caller, who decides whether to run
// without a cache.
func New(ctx context.Context, cfg Config) (*Cache, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr: cfg.Addr,
		DB:   cfg.DB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return &Cache{
		rdb: rdb,
		ttl: cfg.TTL,
	}, nil
}

func (c *Cache) Get(ctx context.Context, email string) (model.User, bool, error) {
	b, err := c.rdb.Get(ctx, key(email)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return model.User{}, false, nil
	}
	if err != nil {
		return model.User{}, false, fmt.Errorf("failed to get cache entry: %w", err)
	}

	var e entry
	if err := msgpack.Unmarshal(b, &e); err != nil {
		return model.User{}, false, fmt.Errorf("failed to decode cache entry: %w", err)
	}

	return model.User{Name: e.Name, Email: e.Email}, true, nil
}

func (c *Cache) Set(ctx context.Context, user model.User) error {
	b, err := msgpack.Marshal(entry{Name: user.Name, Email: user.Email})
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}

	if err := c.rdb.Set(ctx, key(user.Email), b, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set cache entry: %w", err)
	}

	return nil
}

// Close releases the underlying client. Safe to call more than once.
func (c *Cache) Close(context.Context) error {
	if err := c.rdb.Close(); err != nil && !errors.Is(err, goredis.ErrClosed) {
		return fmt.Errorf("failed to close redis client: %w", err)
	}
	return nil
}

func key(email string) string {
	return keyPrefix + email
}
