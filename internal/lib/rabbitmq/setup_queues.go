package rabbitmq

// Ключи маршрутизации событий заказов.
const (
	RoutingOrderCreated       = "order.created"
	RoutingOrderStatusChanged = "order.status_changed"
)

// QueueConfig связывает очередь с ключом маршрутизации.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// GetOrderQueues возвращает очереди, которые слушают потребители событий заказов.
func GetOrderQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: "orders.created", RoutingKey: RoutingOrderCreated},
		{QueueName: "orders.status_changed", RoutingKey: RoutingOrderStatusChanged},
	}
}
