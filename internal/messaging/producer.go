package messaging

import (
	"context"
	"encoding/json"
	"log/slog"

	"internship-service/internal/application"
	"internship-service/internal/metrics"

	"github.com/nats-io/nats.go"
)

const driverName = "nats"

// Producer publishes application events to a NATS subject.
type Producer struct {
	conn    *nats.Conn
	subject string
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func NewProducer(url string, subject string, m *metrics.Metrics, logger *slog.Logger) (*Producer, error) {
	nc, err := nats.Connect(url, nats.Name("internship-service"))
	if err != nil {
		return nil, err
	}

	logger.Info("NATS producer initialized", "url", url, "subject", subject)

	return NewProducerWithConn(nc, subject, m, logger), nil
}

func NewProducerWithConn(nc *nats.Conn, subject string, m *metrics.Metrics, logger *slog.Logger) *Producer {
	return &Producer{
		conn:    nc,
		subject: subject,
		metrics: m,
		logger:  logger,
	}
}

func (p *Producer) Publish(ctx context.Context, event application.SubmittedEvent) error {
	err := p.send(ctx, event)
	p.metrics.RecordEventPublished(ctx, driverName, err)
	return err
}

func (p *Producer) send(ctx context.Context, event application.SubmittedEvent) error {
	valueBytes, err := json.Marshal(event)
	if err != nil {
		p.logger.ErrorContext(ctx, "failed to marshal message", "error", err)
		return err
	}

	if err := p.conn.Publish(p.subject, valueBytes); err != nil {
		p.logger.ErrorContext(ctx, "failed to send message to NATS", "error", err)
		return err
	}

	p.logger.InfoContext(ctx, "message sent to NATS", "subject", p.subject, "application_id", event.ApplicationID)
	return nil
}

func (p *Producer) Close() error {
	return p.conn.Drain()
}
