package store

import (
	"context"
	"fmt"
)

// Options selects and configures a backend for NewStore.
type Options struct {
	Kind string // memory|mem|file|redis|postgres|mongo

	Dir string // file

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string

	DatabaseURL   string
	PostgresTable string

	MongoURI        string
	MongoDB         string
	MongoCollection string
}

// NewStore constructs a BlobStore by kind. Network backends are pinged before returning.
func NewStore(ctx context.Context, opts Options) (BlobStore, error) {
	switch opts.Kind {
	case "memory", "mem":
		return NewInMemoryStore(), nil
	case "file":
		if opts.Dir == "" {
			return nil, fmt.Errorf("directory required for file store")
		}
		return NewFileStore(opts.Dir)
	case "redis":
		if opts.RedisAddr == "" {
			return nil, fmt.Errorf("redis address required for redis store")
		}
		rs := NewRedisStore(opts.RedisAddr, opts.RedisPassword, opts.RedisDB, opts.RedisPrefix)
		if err := rs.Ping(ctx); err != nil {
			_ = rs.Close()
			return nil, fmt.Errorf("redis unavailable: %w", err)
		}
		return rs, nil
	case "postgres":
		if opts.DatabaseURL == "" {
			return nil, fmt.Errorf("database url required for postgres store")
		}
		return NewPostgresStore(ctx, opts.DatabaseURL, opts.PostgresTable)
	case "mongo":
		if opts.MongoURI == "" || opts.MongoDB == "" {
			return nil, fmt.Errorf("mongo uri and database required for mongo store")
		}
		return NewMongoStore(ctx, opts.MongoURI, opts.MongoDB, opts.MongoCollection)
	default:
		return nil, fmt.Errorf("unknown store kind: %s", opts.Kind)
	}
}
