package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"
)

type outgoing struct {
	table string
	data  []byte
}

// Hub управляет клиентами и рассылает им уведомления об изменениях таблиц.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan outgoing
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mu         sync.RWMutex
	logger     *zap.Logger

	onCountChange func(n int)
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan outgoing, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// OnClientCountChange вызывается из цикла Run при каждом изменении числа клиентов.
func (h *Hub) OnClientCountChange(fn func(n int)) {
	h.onCountChange = fn
}

// Run обслуживает регистрацию и рассылку до отмены ctx.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for client := range h.clients {
				close(client.Send)
				delete(h.clients, client)
			}
			h.mu.Unlock()
			h.countChanged()
			return
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.logger.Debug("WebSocket: клиент зарегистрирован", zap.Uint64("operatorID", client.OperatorID), zap.Strings("tables", client.Tables()))
			h.countChanged()
		case client := <-h.unregister:
			h.remove(client)
		case msg := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				if !client.Wants(msg.table) {
					continue
				}
				select {
				case client.Send <- msg.data:
				default:
					// Медленный клиент: отключаем, чтобы не блокировать рассылку.
					close(client.Send)
					delete(h.clients, client)
					h.logger.Warn("WebSocket: буфер клиента переполнен, соединение закрыто", zap.Uint64("operatorID", client.OperatorID))
				}
			}
			h.mu.Unlock()
			h.countChanged()
		}
	}
}

func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.Send)
		h.logger.Debug("WebSocket: клиент отсоединен", zap.Uint64("operatorID", client.OperatorID))
	}
	h.mu.Unlock()
	h.countChanged()
}

func (h *Hub) countChanged() {
	if h.onCountChange != nil {
		h.onCountChange(h.ClientCount())
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Register и Unregister не блокируются после остановки Run.
func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
		close(client.Send)
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// BroadcastChange отправляет уведомление всем подписчикам таблицы.
func (h *Hub) BroadcastChange(payload ChangePayload) error {
	envelope := Envelope{
		Type:      MessageTypeChange,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}

	messageBytes, err := json.Marshal(envelope)
	if err != nil {
		h.logger.Error("Ошибка сериализации сообщения для WebSocket", zap.Error(err))
		return err
	}

	select {
	case h.broadcast <- outgoing{table: payload.Table, data: messageBytes}:
	case <-h.done:
	}
	return nil
}
