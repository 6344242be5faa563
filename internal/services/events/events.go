// Package services публикует доменные события заказов в брокер сообщений.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/coderr/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/coderr/internal/models"
)

// Типы событий совпадают с ключами маршрутизации.
const (
	OrderCreated       = rabbitmq.RoutingOrderCreated
	OrderStatusChanged = rabbitmq.RoutingOrderStatusChanged
)

// Broker публикует сообщение с ключом маршрутизации.
type Broker interface {
	Publish(routingKey string, message any) error
}

// EventPublisher превращает изменения заказов в события. Без брокера ничего не отправляет.
type EventPublisher struct {
	broker Broker
	log    *slog.Logger
	now    func() time.Time
}

// NewEventPublisher создаёт EventPublisher. broker может быть nil.
func NewEventPublisher(broker Broker, log *slog.Logger) *EventPublisher {
	return &EventPublisher{broker: broker, log: log, now: time.Now}
}

// OrderEvent публикует событие eventType для заказа.
func (p *EventPublisher) OrderEvent(ctx context.Context, eventType string, order models.Order) error {
	const op = "services.events.OrderEvent"
	if p.broker == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	ev := models.OrderEvent{
		EventID:      uuid.NewString(),
		Type:         eventType,
		OrderID:      order.ID,
		CustomerUser: order.CustomerUser,
		BusinessUser: order.BusinessUser,
		Status:       order.Status,
		OccurredAt:   p.now().UTC(),
	}
	if err := p.broker.Publish(eventType, ev); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	p.log.Debug("order event published",
		slog.String("event_id", ev.EventID),
		slog.String("type", eventType),
		slog.Int64("order_id", order.ID),
	)
	return nil
}
