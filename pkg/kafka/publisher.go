// Package kafka publishes keyed JSON payloads to a topic.
package kafka

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Publisher delivers a keyed JSON payload to a named topic.
type Publisher interface {
	Publish(ctx context.Context, key string, payload any) error
	Close() error
}

// Config holds broker and auth settings for the producer.
type Config struct {
	Brokers  []string
	Topic    string
	ClientID string
	Username string
	Password string
	TLS      bool
}

type writerPublisher struct {
	writer *kafkago.Writer
	topic  string
}

// NewPublisher creates a synchronous producer for the configured topic.
// Delivery is acknowledged by all in-sync replicas before Publish returns.
func NewPublisher(cfg Config) Publisher {
	transport := &kafkago.Transport{
		ClientID:    cfg.ClientID,
		DialTimeout: 10 * time.Second,
	}
	if cfg.Username != "" {
		transport.SASL = plain.Mechanism{
			Username: cfg.Username,
			Password: cfg.Password,
		}
	}
	if cfg.TLS {
		transport.TLS = &tls.Config{MinVersion: tls.VersionTLS12}
	}

	writer := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
		Transport:    transport,
	}

	zap.L().Info("kafka producer inicializado con éxito",
		zap.Strings("brokers", cfg.Brokers),
		zap.String("topic", cfg.Topic),
	)
	return &writerPublisher{writer: writer, topic: cfg.Topic}
}

func (p *writerPublisher) Publish(ctx context.Context, key string, payload any) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return eris.Wrap(err, "kafka: marshal payload")
	}

	msg := kafkago.Message{
		Key:   []byte(key),
		Value: value,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return eris.Wrapf(err, "kafka: publish to %s", p.topic)
	}

	zap.L().Info("mensaje entregado con éxito",
		zap.String("topic", p.topic),
		zap.String("key", key),
		zap.Int("bytes", len(value)),
	)
	return nil
}

func (p *writerPublisher) Close() error {
	if err := p.writer.Close(); err != nil {
		return eris.Wrap(err, "kafka: close writer")
	}
	return nil
}
