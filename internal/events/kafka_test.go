package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKafkaPublisherSendsJSONEvent(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		assert.Equal(t, "user.events", msg.Topic)
		key, err := msg.Key.Encode()
		require.NoError(t, err)
		assert.Equal(t, "12", string(key))

		raw, err := msg.Value.Encode()
		require.NoError(t, err)
		var decoded map[string]any
		require.NoError(t, json.Unmarshal(raw, &decoded))
		assert.Equal(t, TypeUserCreated, decoded["event_type"])
		assert.EqualValues(t, 12, decoded["user_id"])
		return nil
	})

	pub := NewKafkaPublisherWithProducer(producer, "user.events")
	err := pub.Publish(context.Background(), Event{Type: TypeUserCreated, UserID: 12, OccurredAt: time.Now()})
	require.NoError(t, err)
	require.NoError(t, pub.Close())
}

func TestKafkaPublisherSurfacesSendFailure(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	pub := NewKafkaPublisherWithProducer(producer, "user.events")
	err := pub.Publish(context.Background(), Event{Type: TypePlatformsUpdated, UserID: 3})
	require.Error(t, err)
	assert.True(t, errors.Is(err, sarama.ErrOutOfBrokers))
	require.NoError(t, pub.Close())
}

func TestKafkaPublisherHonoursCancelledContext(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	pub := NewKafkaPublisherWithProducer(producer, "user.events")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := pub.Publish(ctx, Event{Type: TypeUserCreated, UserID: 1})
	assert.ErrorIs(t, err, context.Canceled)
	require.NoError(t, pub.Close())
}
