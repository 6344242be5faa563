package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/coderr/internal/models"
)

type BrokerMock struct {
	mock.Mock
}

func (m *BrokerMock) Publish(routingKey string, message any) error {
	return m.Called(routingKey, message).Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestEventPublisher_NoBroker(t *testing.T) {
	p := NewEventPublisher(nil, newNoopLogger())
	assert.NoError(t, p.OrderEvent(context.Background(), OrderCreated, models.Order{ID: 1}))
}

func TestEventPublisher_OrderEvent(t *testing.T) {
	broker := new(BrokerMock)
	p := NewEventPublisher(broker, newNoopLogger())

	var sent models.OrderEvent
	broker.On("Publish", OrderStatusChanged, mock.AnythingOfType("models.OrderEvent")).
		Run(func(args mock.Arguments) { sent = args.Get(1).(models.OrderEvent) }).
		Return(nil).Once()

	err := p.OrderEvent(context.Background(), OrderStatusChanged, models.Order{
		ID: 4, CustomerUser: 2, BusinessUser: 1, Status: models.OrderCompleted,
	})
	require.NoError(t, err)
	broker.AssertExpectations(t)

	_, err = uuid.Parse(sent.EventID)
	assert.NoError(t, err)
	assert.Equal(t, int64(4), sent.OrderID)
	assert.Equal(t, models.OrderCompleted, sent.Status)
	assert.False(t, sent.OccurredAt.IsZero())
}

func TestEventPublisher_BrokerError(t *testing.T) {
	broker := new(BrokerMock)
	p := NewEventPublisher(broker, newNoopLogger())
	broker.On("Publish", OrderCreated, mock.Anything).Return(errors.New("channel closed")).Once()

	err := p.OrderEvent(context.Background(), OrderCreated, models.Order{ID: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "services.events.OrderEvent")
}
