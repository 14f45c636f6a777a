package services

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"

	"refurb-tracker/internal/events"
	"refurb-tracker/pkg/eventbus"
)

// EventPublisher - шина событий; *eventbus.Bus удовлетворяет интерфейсу.
type EventPublisher interface {
	Publish(ctx context.Context, event eventbus.Event)
}

// Validator - то же, что echo.Validator.
type Validator interface {
	Validate(i interface{}) error
}

// now подменяется в тестах.
var now = time.Now

// changeNotifier публикует events.TableChanged после успешной записи.
type changeNotifier struct {
	bus    EventPublisher
	logger *zap.Logger
}

func (n changeNotifier) changed(ctx context.Context, table, action string, id uint64) {
	if n.bus == nil {
		return
	}
	n.bus.Publish(ctx, events.TableChanged{Table: table, Action: action, ID: id, Source: events.SourceService})
}

func formatDateTime(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}

func formatDateTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatDateTime(*t)
	return &s
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// roundCents округляет до двух знаков, половину от нуля.
func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// parseDate разбирает дату "2006-01-02"; пустая строка даёт nil.
func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
