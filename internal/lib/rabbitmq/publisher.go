package rabbitmq

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/streadway/amqp"
)

// PublishMessage сериализует message в JSON и публикует его в exchange.
func PublishMessage(ch *amqp.Channel, exchange string, routingKey string, message any) error {
	const op = "rabbitmq.PublishMessage"
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = ch.Publish(
		exchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Publisher публикует сообщения в один обменник. amqp.Channel не потокобезопасен,
// поэтому публикации сериализуются мьютексом.
type Publisher struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
}

// NewPublisher подключается к брокеру и готовит обменник с очередями заказов.
func NewPublisher(url, exchange string, retries int) (*Publisher, error) {
	const op = "rabbitmq.NewPublisher"
	conn, err := Connect(url, retries, 2*time.Second)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	ch, err := SetupChannel(conn, exchange, GetOrderQueues())
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Publisher{conn: conn, ch: ch, exchange: exchange}, nil
}

// Publish отправляет message с ключом routingKey.
func (p *Publisher) Publish(routingKey string, message any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return PublishMessage(p.ch, p.exchange, routingKey, message)
}

// Close закрывает канал и соединение.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.ch.Close(); err != nil {
		_ = p.conn.Close()
		return err
	}
	return p.conn.Close()
}
