package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *captureWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *captureWriter) Close() error {
	w.closed = true
	return nil
}

func TestKafkaPublisher_Publish(t *testing.T) {
	w := &captureWriter{}
	p := &KafkaPublisher{writer: w}

	ev := New("category_created", map[string]any{"id": 3, "name": "Tools"})
	require.NoError(t, p.Publish(context.Background(), TopicCatalog, "3", ev))

	require.Len(t, w.msgs, 1)
	msg := w.msgs[0]
	assert.Equal(t, TopicCatalog, msg.Topic)
	assert.Equal(t, []byte("3"), msg.Key)

	var got Event
	require.NoError(t, json.Unmarshal(msg.Value, &got))
	assert.Equal(t, ev.ID, got.ID)
	assert.Equal(t, "category_created", got.Type)

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestKafkaPublisher_WriteFailure(t *testing.T) {
	p := &KafkaPublisher{writer: &captureWriter{err: errors.New("broker down")}}

	err := p.Publish(context.Background(), TopicUsers, "1", New("user_registered", nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), TopicUsers)
}

func TestKafkaPublisher_UnencodablePayload(t *testing.T) {
	p := &KafkaPublisher{writer: &captureWriter{}}

	err := p.Publish(context.Background(), TopicUsers, "1", New("bad", make(chan int)))
	require.Error(t, err)
}

func TestNewKafkaPublisher_WriterConfig(t *testing.T) {
	p := NewKafkaPublisher("k1:9092,k2:9092")
	w, ok := p.writer.(*kafka.Writer)
	require.True(t, ok)
	assert.NotNil(t, w.Addr)
	assert.IsType(t, &kafka.LeastBytes{}, w.Balancer)
	require.NoError(t, p.Close())
}
