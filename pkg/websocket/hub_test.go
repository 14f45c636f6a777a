package websocket

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func startHub(t *testing.T, onCount func(int)) (*Hub, context.CancelFunc, chan struct{}) {
	t.Helper()
	hub := NewHub(zap.NewNop())
	if onCount != nil {
		hub.OnClientCountChange(onCount)
	}
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()
	return hub, cancel, stopped
}

func receive(t *testing.T, c *Client) Envelope {
	t.Helper()
	select {
	case raw, ok := <-c.Send:
		require.True(t, ok, "канал клиента закрыт")
		var env Envelope
		require.NoError(t, json.Unmarshal(raw, &env))
		return env
	case <-time.After(time.Second):
		t.Fatal("сообщение не получено")
	}
	return Envelope{}
}

func TestHub_BroadcastRespectsTableSubscriptions(t *testing.T) {
	defer goleak.VerifyNone(t)
	hub, cancel, stopped := startHub(t, nil)

	devices := NewClient(hub, nil, 1, []string{"devices"})
	all := NewClient(hub, nil, 2, nil)
	hub.Register(devices)
	hub.Register(all)

	require.NoError(t, hub.BroadcastChange(ChangePayload{Table: "clients", Action: "UPDATE", ID: 3}))
	require.NoError(t, hub.BroadcastChange(ChangePayload{Table: "devices", Action: "INSERT", ID: 9}))

	env := receive(t, all)
	assert.Equal(t, MessageTypeChange, env.Type)
	assert.Equal(t, "clients", env.Payload.(map[string]interface{})["table"])
	env = receive(t, all)
	assert.Equal(t, "devices", env.Payload.(map[string]interface{})["table"])

	env = receive(t, devices)
	assert.Equal(t, float64(9), env.Payload.(map[string]interface{})["id"])
	assert.Empty(t, devices.Send)

	cancel()
	<-stopped
}

func TestHub_UnregisterAndStop(t *testing.T) {
	defer goleak.VerifyNone(t)
	countCh := make(chan int, 10)
	hub, cancel, stopped := startHub(t, func(n int) { countCh <- n })

	var counts []int

	c := NewClient(hub, nil, 1, nil)
	hub.Register(c)
	counts = append(counts, <-countCh)
	hub.Unregister(c)
	counts = append(counts, <-countCh)
	assert.Equal(t, []int{1, 0}, counts)

	_, ok := <-c.Send
	assert.False(t, ok, "канал должен быть закрыт после отключения")

	cancel()
	<-stopped

	// После остановки вызовы не блокируются.
	hub.Unregister(c)
	assert.NoError(t, hub.BroadcastChange(ChangePayload{Table: "devices"}))
}

func TestClient_Wants(t *testing.T) {
	c := NewClient(nil, nil, 1, []string{"devices", ""})
	assert.True(t, c.Wants("devices"))
	assert.False(t, c.Wants("clients"))
	assert.Equal(t, []string{"devices"}, c.Tables())
	assert.True(t, NewClient(nil, nil, 1, nil).Wants("anything"))
}
