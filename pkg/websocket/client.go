package websocket

import (
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// Client - одно WebSocket-соединение оператора.
type Client struct {
	Hub        *Hub
	Conn       *websocket.Conn
	Send       chan []byte
	OperatorID uint64

	tables map[string]bool // пусто - подписка на все таблицы
}

func NewClient(hub *Hub, conn *websocket.Conn, operatorID uint64, tables []string) *Client {
	c := &Client{
		Hub:        hub,
		Conn:       conn,
		Send:       make(chan []byte, 256),
		OperatorID: operatorID,
		tables:     make(map[string]bool, len(tables)),
	}
	for _, t := range tables {
		if t != "" {
			c.tables[t] = true
		}
	}
	return c
}

func (c *Client) Wants(table string) bool {
	return len(c.tables) == 0 || c.tables[table]
}

func (c *Client) Tables() []string {
	out := make([]string, 0, len(c.tables))
	for t := range c.tables {
		out = append(out, t)
	}
	return out
}

// ReadPump читает только служебные кадры; входящие сообщения игнорируются.
func (c *Client) ReadPump() {
	defer func() {
		c.Hub.Unregister(c)
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(maxMessageSize)
	_ = c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error { _ = c.Conn.SetReadDeadline(time.Now().Add(pongWait)); return nil })
	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.Hub.logger.Warn("WebSocket: неожиданное закрытие соединения", zap.Error(err))
			}
			break
		}
	}
}

func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.Send:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
