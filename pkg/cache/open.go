package cache

import (
	"context"
	"time"

	errs "github.com/matzehuels/obst/pkg/errors"
)

// Backend names accepted by [Open].
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
	BackendNone  = "none"
)

// Backends lists the names accepted by [Open].
var Backends = []string{BackendFile, BackendRedis, BackendMongo, BackendNone}

// Options selects and configures a backend for [Open].
type Options struct {
	Backend string

	// Dir is the FileCache directory.
	Dir string

	RedisURL string
	// RedisPrefix is prepended to every Redis key.
	RedisPrefix string

	MongoURI        string
	MongoDatabase   string
	MongoCollection string

	// MaxTTL caps every entry's lifetime. Zero keeps the per-stage TTLs.
	MaxTTL time.Duration
}

// Open creates the backend named by opts.Backend. An empty backend means
// [BackendFile] when Dir is set and [BackendNone] otherwise.
func Open(ctx context.Context, opts Options) (Cache, error) {
	c, err := open(ctx, opts)
	if err != nil {
		return nil, err
	}
	if opts.MaxTTL > 0 {
		return WithMaxTTL(c, opts.MaxTTL), nil
	}
	return c, nil
}

func open(ctx context.Context, opts Options) (Cache, error) {
	backend := opts.Backend
	if backend == "" {
		backend = BackendNone
		if opts.Dir != "" {
			backend = BackendFile
		}
	}

	switch backend {
	case BackendNone:
		return NewNullCache(), nil
	case BackendFile:
		if opts.Dir == "" {
			return nil, errs.New(errs.ErrCodeInvalidInput, "file cache needs a directory")
		}
		c, err := NewFileCache(opts.Dir)
		if err != nil {
			return nil, err
		}
		return c, nil
	case BackendRedis:
		c, err := NewRedisCache(ctx, RedisOptions{URL: opts.RedisURL, Prefix: opts.RedisPrefix})
		if err != nil {
			return nil, err
		}
		return c, nil
	case BackendMongo:
		c, err := NewMongoCache(ctx, MongoOptions{
			URI:        opts.MongoURI,
			Database:   opts.MongoDatabase,
			Collection: opts.MongoCollection,
		})
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, errs.New(errs.ErrCodeInvalidInput, "unknown cache backend %q", opts.Backend)
	}
}

// WithMaxTTL wraps c so no entry outlives max. Entries stored without
// expiry get max as well.
func WithMaxTTL(c Cache, max time.Duration) Cache {
	return maxTTLCache{Cache: c, max: max}
}

type maxTTLCache struct {
	Cache
	max time.Duration
}

func (c maxTTLCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if ttl <= 0 || ttl > c.max {
		ttl = c.max
	}
	return c.Cache.Set(ctx, key, data, ttl)
}
