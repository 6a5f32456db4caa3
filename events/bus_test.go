package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusDeliversToEverySubscriber(t *testing.T) {
	bus := NewBus(4)
	a, unsubA := bus.Subscribe()
	defer unsubA()
	b, unsubB := bus.Subscribe()
	defer unsubB()

	evt := Event{Type: PaperSubmitted, EntityID: "p1"}
	require.NoError(t, bus.Publish(context.Background(), evt))

	assert.Equal(t, evt, <-a)
	assert.Equal(t, evt, <-b)
	assert.Equal(t, 2, bus.Subscribers())
}

func TestBusDropsWhenSubscriberIsFull(t *testing.T) {
	bus := NewBus(1)
	ch, unsubscribe := bus.Subscribe()
	defer unsubscribe()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 5; i++ {
			_ = bus.Publish(context.Background(), Event{Type: MessageReceived})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a full subscriber")
	}
	assert.Len(t, ch, 1)
}

func TestUnsubscribeClosesChannelOnce(t *testing.T) {
	bus := NewBus(1)
	ch, unsubscribe := bus.Subscribe()

	unsubscribe()
	unsubscribe()

	_, open := <-ch
	assert.False(t, open)
	assert.Equal(t, 0, bus.Subscribers())
	require.NoError(t, bus.Publish(context.Background(), Event{Type: MessageRead}))
}

type failingPublisher struct{ err error }

func (f failingPublisher) Publish(context.Context, Event) error { return f.err }

func TestFanoutTriesEveryPublisher(t *testing.T) {
	bus := NewBus(1)
	ch, unsubscribe := bus.Subscribe()
	defer unsubscribe()

	boom := errors.New("broker down")
	fan := Fanout{failingPublisher{err: boom}, nil, bus}

	err := fan.Publish(context.Background(), Event{Type: PaymentRecorded, EntityID: "pay1"})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "pay1", (<-ch).EntityID)
}

type recordingWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

func TestKafkaPublisherWritesTopicPerEventType(t *testing.T) {
	w := &recordingWriter{}
	p := &KafkaPublisher{w: w}
	at := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

	err := p.Publish(context.Background(), Event{
		Type:       PaperReviewed,
		EntityID:   "p1",
		ActorID:    "admin",
		OccurredAt: at,
		Payload:    map[string]any{"status": "accepted"},
	})
	require.NoError(t, err)
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, PaperReviewed, msg.Topic)
	assert.Equal(t, []byte("p1"), msg.Key)
	assert.True(t, msg.Time.Equal(at))

	var decoded Event
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, "admin", decoded.ActorID)
	assert.Equal(t, "accepted", decoded.Payload["status"])

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestKafkaPublisherWrapsWriteErrors(t *testing.T) {
	boom := errors.New("leader not available")
	p := &KafkaPublisher{w: &recordingWriter{err: boom}}

	err := p.Publish(context.Background(), Event{Type: MessageResponded, EntityID: "m1"})
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), MessageResponded)
}
