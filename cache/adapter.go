// Package cache provides the small key-value surface the cooldown ledger
// stores its last-grant timestamps in. The local backend is the default;
// the Redis backend lets several game nodes share one cooldown ledger.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/kasuganosora/battlerewards/cache/local"
	cacheredis "github.com/kasuganosora/battlerewards/cache/redis"
)

// Store is a string KV store with per-key expiry.
type Store interface {
	// Get returns the value for key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)
	// Set writes key=value. ttl <= 0 means no expiry.
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	Close() error
}

// ErrNotFound is returned by Get when a key does not exist.
var ErrNotFound = local.ErrNotFound

// Config selects and configures a Store backend.
type Config struct {
	Mode          string        `mapstructure:"mode"` // local | redis
	RedisAddr     string        `mapstructure:"redis_addr"`
	RedisPassword string        `mapstructure:"redis_password"`
	RedisDB       int           `mapstructure:"redis_db"`
	GCInterval    time.Duration `mapstructure:"gc_interval"`
}

// New creates a Store for the configured backend.
func New(cfg Config) (Store, error) {
	switch cfg.Mode {
	case "", "local":
		return local.New(local.Config{GCInterval: cfg.GCInterval})
	case "redis":
		return cacheredis.New(cacheredis.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
	default:
		return nil, fmt.Errorf("cache: unknown mode %q", cfg.Mode)
	}
}
