package eventbus

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

type testEvent struct{ name string }

func (e testEvent) Name() string { return e.name }

func TestBus_PublishToSubscribers(t *testing.T) {
	defer goleak.VerifyNone(t)

	bus := New(zap.NewNop())
	var calls atomic.Int32
	bus.Subscribe("a", func(ctx context.Context, event Event) error {
		calls.Add(1)
		return nil
	})
	bus.Subscribe("a", func(ctx context.Context, event Event) error {
		calls.Add(1)
		return errors.New("слушатель упал")
	})
	bus.Subscribe("b", func(ctx context.Context, event Event) error {
		calls.Add(100)
		return nil
	})

	bus.Publish(context.Background(), testEvent{name: "a"})
	bus.Wait()

	assert.Equal(t, int32(2), calls.Load())
}

func TestBus_ListenerGetsLiveContextAfterCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	bus := New(zap.NewNop())
	var ctxErr atomic.Value
	bus.Subscribe("a", func(ctx context.Context, event Event) error {
		ctxErr.Store(ctx.Err() == nil)
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	bus.Publish(ctx, testEvent{name: "a"})
	bus.Wait()

	assert.Equal(t, true, ctxErr.Load())
}

func TestBus_NoSubscribers(t *testing.T) {
	bus := New(zap.NewNop())
	bus.Publish(context.Background(), testEvent{name: "nobody"})
	bus.Wait()
}
