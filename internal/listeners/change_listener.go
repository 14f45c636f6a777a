package listeners

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"refurb-tracker/internal/events"
	"refurb-tracker/pkg/eventbus"
)

// ChangeChannel - канал pg_notify, в который пишут триггеры таблиц.
const ChangeChannel = "table_changes"

// ChangeListener держит одно соединение из пула в LISTEN и переводит уведомления в события шины.
type ChangeListener struct {
	pool           *pgxpool.Pool
	bus            *eventbus.Bus
	logger         *zap.Logger
	reconnectDelay time.Duration
}

func NewChangeListener(pool *pgxpool.Pool, bus *eventbus.Bus, logger *zap.Logger) *ChangeListener {
	return &ChangeListener{
		pool:           pool,
		bus:            bus,
		logger:         logger,
		reconnectDelay: 2 * time.Second,
	}
}

// Run слушает до отмены ctx. Обрыв соединения не фатален: через паузу подписка восстанавливается.
func (l *ChangeListener) Run(ctx context.Context) {
	for {
		err := l.listen(ctx)
		if ctx.Err() != nil {
			l.logger.Info("ChangeListener остановлен")
			return
		}
		l.logger.Warn("соединение LISTEN потеряно, переподключаемся", zap.Error(err), zap.Duration("delay", l.reconnectDelay))

		select {
		case <-ctx.Done():
			return
		case <-time.After(l.reconnectDelay):
		}
	}
}

func (l *ChangeListener) listen(ctx context.Context) error {
	conn, err := l.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("не удалось получить соединение: %w", err)
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{ChangeChannel}.Sanitize()); err != nil {
		return fmt.Errorf("не удалось подписаться на %s: %w", ChangeChannel, err)
	}
	l.logger.Info("ChangeListener подписан на канал", zap.String("channel", ChangeChannel))

	for {
		notification, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			return err
		}
		event, err := ParseChangePayload(notification.Payload)
		if err != nil {
			l.logger.Warn("некорректное уведомление", zap.String("payload", notification.Payload), zap.Error(err))
			continue
		}
		l.bus.Publish(ctx, event)
	}
}

// ParseChangePayload разбирает JSON вида {"table":"devices","action":"update","id":7}.
func ParseChangePayload(payload string) (events.TableChanged, error) {
	var event events.TableChanged
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		return events.TableChanged{}, err
	}
	if event.Table == "" {
		return events.TableChanged{}, errors.New("пустое имя таблицы")
	}
	switch event.Action {
	case events.ActionInsert, events.ActionUpdate, events.ActionDelete:
	default:
		return events.TableChanged{}, fmt.Errorf("неизвестное действие %q", event.Action)
	}
	event.Source = events.SourceDatabase
	return event, nil
}
