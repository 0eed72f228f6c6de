package eventbus

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChannel struct {
	exchange string
	key      string
	msg      amqp.Publishing
	err      error
	closed   bool
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	f.exchange, f.key, f.msg = exchange, key, msg
	return f.err
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func TestPublisher_Publish(t *testing.T) {
	ch := &fakeChannel{}
	p := &Publisher{ch: ch, exchange: "ev-charging.reservations"}

	event := ReservationEvent{
		Type:          "reservation.created",
		ReservationID: 42,
		UserID:        1,
		SlotID:        10,
		StartTime:     time.Date(2026, 10, 20, 10, 0, 0, 0, time.UTC),
		EndTime:       time.Date(2026, 10, 20, 11, 0, 0, 0, time.UTC),
	}
	require.NoError(t, p.Publish(context.Background(), event))

	assert.Equal(t, "ev-charging.reservations", ch.exchange)
	assert.Equal(t, "reservation.created", ch.key)
	assert.Equal(t, amqp.Persistent, ch.msg.DeliveryMode)
	assert.Equal(t, "application/json", ch.msg.ContentType)

	var decoded ReservationEvent
	require.NoError(t, json.Unmarshal(ch.msg.Body, &decoded))
	assert.Equal(t, int64(42), decoded.ReservationID)

	require.NoError(t, p.Close())
	assert.True(t, ch.closed)
}

func TestPublisher_PublishError(t *testing.T) {
	p := &Publisher{ch: &fakeChannel{err: errors.New("channel closed")}, exchange: "x"}

	err := p.Publish(context.Background(), ReservationEvent{Type: "reservation.paid"})
	assert.ErrorIs(t, err, ErrPublish)
}

func TestNoopPublisher(t *testing.T) {
	var p NoopPublisher
	assert.NoError(t, p.Publish(context.Background(), ReservationEvent{}))
	assert.NoError(t, p.Close())
}
