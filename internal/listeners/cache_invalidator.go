package listeners

import (
	"context"

	"go.uber.org/zap"

	"refurb-tracker/internal/events"
	"refurb-tracker/internal/repositories"
	"refurb-tracker/pkg/eventbus"
)

// CacheInvalidator сбрасывает агрегаты в кэше при любом изменении данных.
type CacheInvalidator struct {
	cache  repositories.CacheRepositoryInterface
	keys   []string
	before []func()
	logger *zap.Logger
}

func NewCacheInvalidator(cache repositories.CacheRepositoryInterface, logger *zap.Logger, keys ...string) *CacheInvalidator {
	return &CacheInvalidator{cache: cache, keys: keys, logger: logger}
}

// OnInvalidate добавляет вызов, который выполняется до удаления ключей.
func (c *CacheInvalidator) OnInvalidate(fn func()) *CacheInvalidator {
	c.before = append(c.before, fn)
	return c
}

func (c *CacheInvalidator) Register(bus *eventbus.Bus) {
	bus.Subscribe(events.TableChangedName, c.handle)
}

func (c *CacheInvalidator) handle(ctx context.Context, e eventbus.Event) error {
	for _, fn := range c.before {
		fn()
	}
	if len(c.keys) == 0 {
		return nil
	}
	if err := c.cache.Del(ctx, c.keys...); err != nil {
		c.logger.Warn("не удалось сбросить кэш", zap.Strings("keys", c.keys), zap.Error(err))
		return err
	}
	return nil
}
