package redis

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	client   *redis.Client
	clientMu sync.RWMutex
)

// ErrNotConfigured is returned when no REDIS_URL was provided.
var ErrNotConfigured = errors.New("redis: REDIS_URL not configured")

// Config holds Redis connection configuration
type Config struct {
	URL      string // redis://host:port/db or rediss:// for TLS
	Password string // overrides the password embedded in URL
}

// Client returns the shared client, or nil when Redis is not configured or unreachable.
// Callers must handle nil and fall back.
func Client() *redis.Client {
	clientMu.RLock()
	defer clientMu.RUnlock()
	return client
}

// SetClient replaces the shared client. Used by Initialize and by tests.
func SetClient(c *redis.Client) {
	clientMu.Lock()
	defer clientMu.Unlock()
	client = c
}

// Initialize connects the shared client. On failure the client stays nil so that
// dependent features degrade instead of failing requests.
func Initialize(ctx context.Context, cfg Config) error {
	if cfg.URL == "" {
		return ErrNotConfigured
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return fmt.Errorf("redis: invalid URL: %w", err)
	}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second
	opts.PoolSize = 10
	opts.MinIdleConns = 2

	c := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := c.Ping(pingCtx).Err(); err != nil {
		_ = c.Close()
		return fmt.Errorf("redis: connection failed: %w", err)
	}

	SetClient(c)
	return nil
}

// Close closes the shared client if one is open.
func Close() error {
	clientMu.Lock()
	defer clientMu.Unlock()
	if client == nil {
		return nil
	}
	err := client.Close()
	client = nil
	return err
}

// HealthCheck pings Redis. It returns ErrNotConfigured when no client is set.
func HealthCheck(ctx context.Context) error {
	c := Client()
	if c == nil {
		return ErrNotConfigured
	}
	return c.Ping(ctx).Err()
}
