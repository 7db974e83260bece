package blob

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Backend names the substrate Open selected.
type Backend string

const (
	BackendMemory   Backend = "memory"
	BackendRedis    Backend = "redis"
	BackendPostgres Backend = "postgres"
)

type Options struct {
	DatabaseURL   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// Open picks Postgres when a database URL is given, then Redis, then
// memory. An unreachable Postgres is an error; an unreachable Redis
// degrades to memory. The returned closers must be called on shutdown.
func Open(ctx context.Context, opts Options, logger *zap.Logger) (Store, Backend, []func() error, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if opts.DatabaseURL != "" {
		pg, err := NewPostgres(ctx, opts.DatabaseURL)
		if err != nil {
			return nil, "", nil, fmt.Errorf("postgres unavailable and DATABASE_URL is set: %w", err)
		}
		return pg, BackendPostgres, []func() error{pg.Close}, nil
	}

	if opts.RedisAddr != "" {
		rdb := NewRedis(opts.RedisAddr, opts.RedisPassword, opts.RedisDB)
		if err := rdb.Ping(ctx); err != nil {
			logger.Warn("redis unavailable, using in-memory store", zap.Error(err))
			_ = rdb.Close()
			return NewMemory(), BackendMemory, nil, nil
		}
		return rdb, BackendRedis, []func() error{rdb.Close}, nil
	}

	return NewMemory(), BackendMemory, nil, nil
}
