package cache

import (
	"context"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

// KeyPrefix namespaces keys in shared backends.
const KeyPrefix = "ledwall:"

// Open returns the cache selected by url:
//
//	""  or "file"         FileCache in dir
//	"none"                NullCache
//	"redis://host:6379/0" RedisCache
//	"mongodb://host"      MongoCache (also mongodb+srv://)
func Open(ctx context.Context, url, dir string) (Cache, error) {
	switch {
	case url == "" || url == "file":
		fc, err := NewFileCache(dir)
		if err != nil {
			return nil, err
		}
		return fc, nil
	case url == "none":
		return NewNullCache(), nil
	case strings.HasPrefix(url, "redis://"), strings.HasPrefix(url, "rediss://"):
		ro, err := redis.ParseURL(url)
		if err != nil {
			return nil, fmt.Errorf("cache url: %w", err)
		}
		rc, err := NewRedisCache(ctx, RedisOptions{
			Addr:      ro.Addr,
			Password:  ro.Password,
			DB:        ro.DB,
			TLSConfig: ro.TLSConfig,
			Prefix:    KeyPrefix,
		})
		if err != nil {
			return nil, err
		}
		return rc, nil
	case strings.HasPrefix(url, "mongodb://"), strings.HasPrefix(url, "mongodb+srv://"):
		mc, err := NewMongoCache(ctx, MongoOptions{URI: url})
		if err != nil {
			return nil, err
		}
		return mc, nil
	default:
		return nil, fmt.Errorf("cache url: unsupported backend %q", url)
	}
}
