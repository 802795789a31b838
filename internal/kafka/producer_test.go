package kafka_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"internship-service/internal/application"
	"internship-service/internal/kafka"
	"internship-service/internal/logger"
	"internship-service/internal/metrics"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProducer_Publish(t *testing.T) {
	event := application.SubmittedEvent{ApplicationID: 5, StudentID: 7, InternshipID: 3, QuizScore: 88, QuizPassed: true}

	t.Run("sends JSON value", func(t *testing.T) {
		config := sarama.NewConfig()
		config.Producer.Return.Successes = true
		mock := mocks.NewSyncProducer(t, config)
		mock.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
			var got application.SubmittedEvent
			if err := json.Unmarshal(val, &got); err != nil {
				return err
			}
			if got.ApplicationID != 5 || got.InternshipID != 3 {
				return errors.New("unexpected event payload")
			}
			return nil
		})

		producer := kafka.NewProducerWithClient(mock, "internship-applications", metrics.NewMock(), logger.Discard())
		defer producer.Close()

		require.NoError(t, producer.Publish(context.Background(), event))
	})

	t.Run("returns broker errors", func(t *testing.T) {
		config := sarama.NewConfig()
		config.Producer.Return.Successes = true
		mock := mocks.NewSyncProducer(t, config)
		mock.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

		producer := kafka.NewProducerWithClient(mock, "internship-applications", metrics.NewMock(), logger.Discard())
		defer producer.Close()

		err := producer.Publish(context.Background(), event)
		assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	})
}
