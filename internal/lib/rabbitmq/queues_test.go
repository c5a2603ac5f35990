package rabbitmq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenewalQueues(t *testing.T) {
	queues := RenewalQueues()

	require.NotEmpty(t, queues)
	assert.Equal(t, "subscriptions.renewal.upcoming", queues[0].QueueName)
	assert.Equal(t, RoutingKeyRenewalUpcoming, queues[0].RoutingKey)

	seen := map[string]bool{}
	for _, q := range queues {
		assert.Falsef(t, seen[q.QueueName], "duplicate queue name: %s", q.QueueName)
		seen[q.QueueName] = true
	}
}
