package repositories

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	apperrors "refurb-tracker/pkg/errors"
)

// MemoryCacheRepository - кэш в памяти процесса для запуска без Redis.
type MemoryCacheRepository struct {
	cache *gocache.Cache
}

func NewMemoryCacheRepository(defaultTTL, cleanupInterval time.Duration) CacheRepositoryInterface {
	return &MemoryCacheRepository{cache: gocache.New(defaultTTL, cleanupInterval)}
}

func (r *MemoryCacheRepository) Get(_ context.Context, key string) (string, error) {
	val, ok := r.cache.Get(key)
	if !ok {
		return "", apperrors.ErrCacheMiss
	}
	return val.(string), nil
}

// Set хранит значение строкой, как Redis.
func (r *MemoryCacheRepository) Set(_ context.Context, key string, value interface{}, expiration time.Duration) error {
	var s string
	switch v := value.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		s = fmt.Sprint(v)
	}
	if expiration <= 0 {
		expiration = gocache.DefaultExpiration
	}
	r.cache.Set(key, s, expiration)
	return nil
}

func (r *MemoryCacheRepository) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		r.cache.Delete(k)
	}
	return nil
}
