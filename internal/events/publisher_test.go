package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"budget-app-go/pkg/logger"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMessage struct {
	exchange string
	key      string
	msg      amqp.Publishing
	deadline bool
}

type fakeChannel struct {
	sent   []sentMessage
	err    error
	closed bool
}

func (c *fakeChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	_, hasDeadline := ctx.Deadline()
	c.sent = append(c.sent, sentMessage{exchange: exchange, key: key, msg: msg, deadline: hasDeadline})
	return c.err
}

func (c *fakeChannel) Close() error {
	c.closed = true
	return nil
}

func TestPublishSendsPersistentJSON(t *testing.T) {
	ch := &fakeChannel{}
	publisher := newPublisher(ch, "budget.events", logger.Discard())
	publisher.now = func() time.Time { return time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC) }

	payload := map[string]any{"transaction_id": "t-1", "amount_cents": 1250}
	require.NoError(t, publisher.Publish(context.Background(), "transaction.created", payload))

	require.Len(t, ch.sent, 1)
	sent := ch.sent[0]
	assert.Equal(t, "budget.events", sent.exchange)
	assert.Equal(t, "transaction.created", sent.key)
	assert.True(t, sent.deadline)
	assert.Equal(t, "application/json", sent.msg.ContentType)
	assert.Equal(t, amqp.Persistent, sent.msg.DeliveryMode)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(sent.msg.Body, &decoded))
	assert.Equal(t, "t-1", decoded["transaction_id"])
	assert.EqualValues(t, 1250, decoded["amount_cents"])
}

func TestPublishWrapsChannelError(t *testing.T) {
	ch := &fakeChannel{err: errors.New("channel closed")}
	publisher := newPublisher(ch, "budget.events", logger.Discard())

	err := publisher.Publish(context.Background(), "transaction.deleted", struct{}{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "transaction.deleted")

	require.NoError(t, publisher.Close())
	assert.True(t, ch.closed)
}

func TestPublishRejectsUnmarshalablePayload(t *testing.T) {
	ch := &fakeChannel{}
	publisher := newPublisher(ch, "budget.events", logger.Discard())

	err := publisher.Publish(context.Background(), "transaction.created", make(chan int))
	assert.Error(t, err)
	assert.Empty(t, ch.sent)
}

func TestNewWithoutURLIsNoop(t *testing.T) {
	publisher, err := New("", "budget.events", logger.Discard())
	require.NoError(t, err)
	assert.IsType(t, Noop{}, publisher)
	assert.NoError(t, publisher.Publish(context.Background(), "transaction.created", nil))
	assert.NoError(t, publisher.Close())
}
