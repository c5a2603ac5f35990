package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockChannel struct {
	mock.Mock
}

func (m *MockChannel) Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	args := m.Called(exchange, key, mandatory, immediate, msg)
	return args.Error(0)
}

type testMsg struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func TestPublishMessage(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		ch := new(MockChannel)
		ch.On("Publish", ExchangeSubscriptions, RoutingKeyRenewalUpcoming, false, false,
			mock.MatchedBy(func(p amqp.Publishing) bool {
				var got testMsg
				if err := json.Unmarshal(p.Body, &got); err != nil {
					return false
				}
				return got == testMsg{ID: 1, Name: "Hello"} &&
					p.ContentType == "application/json" &&
					p.DeliveryMode == amqp.Persistent
			})).Return(nil).Once()

		err := PublishMessage(ch, ExchangeSubscriptions, RoutingKeyRenewalUpcoming, testMsg{ID: 1, Name: "Hello"})
		require.NoError(t, err)
		ch.AssertExpectations(t)
	})

	t.Run("marshal error", func(t *testing.T) {
		ch := new(MockChannel)
		badMsg := struct {
			Ch chan int `json:"ch"`
		}{Ch: make(chan int)}

		err := PublishMessage(ch, "", "q", badMsg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "rabbitmq.PublishMessage")
		ch.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("publish error", func(t *testing.T) {
		ch := new(MockChannel)
		ch.On("Publish", mock.Anything, mock.Anything, false, false, mock.Anything).
			Return(errors.New("channel closed")).Once()

		err := PublishMessage(ch, "", "q", testMsg{ID: 2})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "channel closed")
	})
}

func TestPublisher_Publish(t *testing.T) {
	ch := new(MockChannel)
	ch.On("Publish", ExchangeSubscriptions, RoutingKeyRenewalUpcoming, false, false, mock.Anything).Return(nil).Once()

	p := NewPublisher(ch, ExchangeSubscriptions)
	require.NoError(t, p.Publish(context.Background(), RoutingKeyRenewalUpcoming, testMsg{ID: 3}))
	ch.AssertExpectations(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := p.Publish(ctx, RoutingKeyRenewalUpcoming, testMsg{ID: 4})
	assert.ErrorIs(t, err, context.Canceled)
	ch.AssertNumberOfCalls(t, "Publish", 1)
}
