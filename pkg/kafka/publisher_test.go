package kafka

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"
)

func TestNewPublisherConfiguresWriter(t *testing.T) {
	p := NewPublisher(Config{
		Brokers:  []string{"broker-1:9092", "broker-2:9092"},
		Topic:    "commerce.affiliation.volcado",
		ClientID: "capture-cli",
		Username: "user",
		Password: "secret",
		TLS:      true,
	})
	t.Cleanup(func() { _ = p.Close() })

	wp, ok := p.(*writerPublisher)
	require.True(t, ok)

	assert.Equal(t, "commerce.affiliation.volcado", wp.writer.Topic)
	assert.Equal(t, kafkago.RequireAll, wp.writer.RequiredAcks)

	transport, ok := wp.writer.Transport.(*kafkago.Transport)
	require.True(t, ok)
	assert.NotNil(t, transport.TLS)

	mech, ok := transport.SASL.(plain.Mechanism)
	require.True(t, ok)
	assert.Equal(t, "user", mech.Username)
}

func TestNewPublisherWithoutAuth(t *testing.T) {
	p := NewPublisher(Config{
		Brokers: []string{"localhost:9092"},
		Topic:   "test.topic",
	})
	t.Cleanup(func() { _ = p.Close() })

	wp := p.(*writerPublisher)
	transport := wp.writer.Transport.(*kafkago.Transport)
	assert.Nil(t, transport.SASL)
	assert.Nil(t, transport.TLS)
}
