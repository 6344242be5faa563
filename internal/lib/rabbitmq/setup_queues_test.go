package rabbitmq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrderQueues(t *testing.T) {
	queues := GetOrderQueues()

	require.Len(t, queues, 2)
	assert.Equal(t, RoutingOrderCreated, queues[0].RoutingKey)
	assert.Equal(t, RoutingOrderStatusChanged, queues[1].RoutingKey)

	seen := map[string]bool{}
	for _, q := range queues {
		assert.Falsef(t, seen[q.QueueName], "duplicate queue name: %s", q.QueueName)
		seen[q.QueueName] = true
	}
}
