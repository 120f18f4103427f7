package app

import (
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/oms-admin/internal/domain"
	"github.com/vladislavdragonenkov/oms-admin/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/oms-admin/internal/service/outbox"
	"github.com/vladislavdragonenkov/oms-admin/internal/version"
)

// initKafkaProducer создаёт Kafka producer, если брокеры заданы.
// Возвращает nil, nil при пустом списке брокеров.
func initKafkaProducer(brokers []string, logger *log.Entry) (*kafka.Producer, error) {
	if len(brokers) == 0 {
		return nil, nil
	}

	producer, err := kafka.NewProducer(brokers, kafka.WithClientID("oms-admin-"+version.GetVersion()))
	if err != nil {
		logger.WithError(err).Warn("failed to create kafka producer, falling back to log publisher")
		return nil, err
	}

	logger.WithField("brokers", brokers).Info("kafka producer initialized")
	return producer, nil
}

// newOutboxPublisher выбирает Kafka или лог как приёмник событий outbox.
func newOutboxPublisher(producer *kafka.Producer, topic string, logger *log.Entry) domain.OutboxPublisher {
	if producer == nil {
		return outbox.NewLogPublisher(logger.WithField("component", "outbox-log-publisher"))
	}
	return kafka.NewOutboxPublisher(producer, topic)
}

// closeKafka закрывает Kafka producer если он не nil.
func closeKafka(producer *kafka.Producer, logger *log.Entry) {
	if producer == nil {
		return
	}

	if err := producer.Close(); err != nil {
		logger.WithError(err).Warn("failed to close kafka producer")
	} else {
		logger.Info("kafka producer closed")
	}
}
