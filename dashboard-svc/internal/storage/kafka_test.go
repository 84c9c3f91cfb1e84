package storage

import (
	"context"
	"encoding/json"
	"testing"

	"restodash/dashboard-svc/internal/domain"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	messages []kafka.Message
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.messages = append(w.messages, msgs...)
	return nil
}

func TestKafkaPublisher_PublishChange(t *testing.T) {
	writer := &recordingWriter{}
	publisher := NewKafkaPublisher(writer)

	event := domain.ChangeEvent{
		Type:           domain.EventUpdated,
		OrganizationID: 7,
		Resource:       "table",
		Prefixes:       []string{"q:org:7:restaurant:1:tables"},
	}
	require.NoError(t, publisher.PublishChange(context.Background(), event))

	require.Len(t, writer.messages, 1)
	assert.Equal(t, "7", string(writer.messages[0].Key))

	var decoded domain.ChangeEvent
	require.NoError(t, json.Unmarshal(writer.messages[0].Value, &decoded))
	assert.Equal(t, event.Prefixes, decoded.Prefixes)
}
