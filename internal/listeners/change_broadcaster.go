package listeners

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"refurb-tracker/internal/events"
	"refurb-tracker/pkg/eventbus"
	"refurb-tracker/pkg/websocket"
)

// ChangeObserver - счётчик событий, обычно метрики Prometheus.
type ChangeObserver interface {
	ChangeEvent(table, action string)
}

type broadcastTarget interface {
	BroadcastChange(payload websocket.ChangePayload) error
}

// ChangeBroadcaster рассылает изменения таблиц по websocket.
// Одно изменение приходит дважды, от сервиса и от триггера. Событие отбрасывается,
// только если в пределах окна есть ещё не сопоставленная копия от другого источника.
type ChangeBroadcaster struct {
	hub      broadcastTarget
	observer ChangeObserver
	logger   *zap.Logger
	window   time.Duration
	now      func() time.Time

	mu      sync.Mutex
	pending map[changeKey][]pendingChange
}

type changeKey struct {
	Table  string
	Action string
	ID     uint64
}

// pendingChange - разосланное событие, копия которого от другого источника ещё не пришла.
type pendingChange struct {
	source string
	at     time.Time
}

func NewChangeBroadcaster(hub broadcastTarget, observer ChangeObserver, logger *zap.Logger) *ChangeBroadcaster {
	return &ChangeBroadcaster{
		hub:      hub,
		observer: observer,
		logger:   logger,
		window:   time.Second,
		now:      time.Now,
		pending:  make(map[changeKey][]pendingChange),
	}
}

func (b *ChangeBroadcaster) Register(bus *eventbus.Bus) {
	bus.Subscribe(events.TableChangedName, b.handle)
	b.logger.Info("ChangeBroadcaster подписан на событие", zap.String("event", events.TableChangedName))
}

func (b *ChangeBroadcaster) handle(_ context.Context, e eventbus.Event) error {
	change, ok := e.(events.TableChanged)
	if !ok {
		return fmt.Errorf("неожиданный тип события %T", e)
	}
	if b.seen(change) {
		return nil
	}
	if b.observer != nil {
		b.observer.ChangeEvent(change.Table, change.Action)
	}
	return b.hub.BroadcastChange(websocket.ChangePayload{
		Table:  change.Table,
		Action: change.Action,
		ID:     change.ID,
	})
}

func (b *ChangeBroadcaster) seen(change events.TableChanged) bool {
	// без источника сопоставить не с чем
	if change.Source == "" {
		return false
	}
	key := changeKey{Table: change.Table, Action: change.Action, ID: change.ID}
	now := b.now()

	b.mu.Lock()
	defer b.mu.Unlock()

	b.expire(now)

	queue := b.pending[key]
	for i, p := range queue {
		if p.source != change.Source {
			b.pending[key] = append(queue[:i:i], queue[i+1:]...)
			if len(b.pending[key]) == 0 {
				delete(b.pending, key)
			}
			return true
		}
	}
	b.pending[key] = append(queue, pendingChange{source: change.Source, at: now})
	return false
}

func (b *ChangeBroadcaster) expire(now time.Time) {
	for k, queue := range b.pending {
		kept := queue[:0]
		for _, p := range queue {
			if now.Sub(p.at) <= b.window {
				kept = append(kept, p)
			}
		}
		if len(kept) == 0 {
			delete(b.pending, k)
		} else {
			b.pending[k] = kept
		}
	}
}
