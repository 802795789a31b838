package kafka

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"

	"internship-service/internal/application"
	"internship-service/internal/metrics"

	"github.com/IBM/sarama"
)

const driverName = "kafka"

// Producer publishes application events to a Kafka topic, keyed by internship
// so events for one posting stay ordered.
type Producer struct {
	producer sarama.SyncProducer
	topic    string
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

func NewProducer(brokers []string, topic string, m *metrics.Metrics, logger *slog.Logger) (*Producer, error) {
	config := sarama.NewConfig()
	config.ClientID = "internship-service"
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5
	config.Producer.Return.Successes = true

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, err
	}

	logger.Info("kafka producer initialized", "brokers", brokers, "topic", topic)

	return NewProducerWithClient(producer, topic, m, logger), nil
}

func NewProducerWithClient(producer sarama.SyncProducer, topic string, m *metrics.Metrics, logger *slog.Logger) *Producer {
	return &Producer{
		producer: producer,
		topic:    topic,
		metrics:  m,
		logger:   logger,
	}
}

func (p *Producer) Publish(ctx context.Context, event application.SubmittedEvent) error {
	err := p.send(ctx, strconv.Itoa(event.InternshipID), event)
	p.metrics.RecordEventPublished(ctx, driverName, err)
	return err
}

func (p *Producer) send(ctx context.Context, key string, value interface{}) error {
	valueBytes, err := json.Marshal(value)
	if err != nil {
		p.logger.ErrorContext(ctx, "failed to marshal message", "error", err)
		return err
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(valueBytes),
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		p.logger.ErrorContext(ctx, "failed to send message to kafka", "error", err)
		return err
	}

	p.logger.InfoContext(ctx, "message sent to kafka", "topic", p.topic, "partition", partition, "offset", offset, "key", key)
	return nil
}

func (p *Producer) Close() error {
	return p.producer.Close()
}
