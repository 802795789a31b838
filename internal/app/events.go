package app

import (
	"log/slog"

	"internship-service/internal/config"
	"internship-service/internal/kafka"
	"internship-service/internal/messaging"
	"internship-service/internal/metrics"
	"internship-service/internal/quiz"
)

type publisher interface {
	quiz.Publisher
	Close() error
}

// newPublisher picks the application event driver. It returns nil when events
// are disabled or the broker is unreachable; submissions still succeed.
func newPublisher(cfg config.EventsConfig, m *metrics.Metrics, logger *slog.Logger) publisher {
	switch cfg.Driver {
	case "nats":
		producer, err := messaging.NewProducer(cfg.NATS.URL, cfg.NATS.Subject, m, logger)
		if err != nil {
			logger.Warn("failed to initialize NATS producer", "error", err)
			return nil
		}
		return producer
	case "kafka":
		producer, err := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, m, logger)
		if err != nil {
			logger.Warn("failed to initialize kafka producer", "error", err)
			return nil
		}
		return producer
	default:
		logger.Info("application events disabled", "driver", cfg.Driver)
		return nil
	}
}
