package websocket

import "time"

const MessageTypeChange = "change"

// Envelope - "конверт" исходящего сообщения.
type Envelope struct {
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

// ChangePayload - уведомление об изменении строки таблицы.
// Фронтенд по нему перечитывает список.
type ChangePayload struct {
	Table  string `json:"table"`
	Action string `json:"action"`
	ID     uint64 `json:"id"`
}
