package kafka

import (
	"context"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *recordingWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
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

func TestPublishBatch_EncodesJSON(t *testing.T) {
	w := &recordingWriter{}
	p := NewProducerWithWriter(w, "events")

	err := p.PublishBatch(context.Background(), []Event{
		{Key: "q1", Value: map[string]int{"hits": 2}},
		{Key: "q2", Value: []int{1, 3}},
	})
	require.NoError(t, err)

	require.Len(t, w.msgs, 2)
	assert.Equal(t, "q1", string(w.msgs[0].Key))
	assert.JSONEq(t, `{"hits":2}`, string(w.msgs[0].Value))
	assert.JSONEq(t, `[1,3]`, string(w.msgs[1].Value))

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestPublishBatch_Empty(t *testing.T) {
	w := &recordingWriter{err: errors.New("should not be called")}
	p := NewProducerWithWriter(w, "events")

	assert.NoError(t, p.PublishBatch(context.Background(), nil))
}

func TestPublishBatch_WriterError(t *testing.T) {
	boom := errors.New("broker down")
	p := NewProducerWithWriter(&recordingWriter{err: boom}, "events")

	err := p.PublishBatch(context.Background(), []Event{{Key: "k", Value: 1}})
	assert.ErrorIs(t, err, boom)
}

func TestPublishBatch_MarshalError(t *testing.T) {
	p := NewProducerWithWriter(&recordingWriter{}, "events")

	err := p.PublishBatch(context.Background(), []Event{{Key: "k", Value: make(chan int)}})
	assert.ErrorContains(t, err, "marshaling event value")
}
