package repositories

import (
	"context"
	"time"
)

// CacheRepositoryInterface - кэш строковых значений. Промах возвращает apperrors.ErrCacheMiss.
type CacheRepositoryInterface interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}
