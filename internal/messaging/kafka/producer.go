package kafka

import (
	"fmt"
	"sort"
	"time"

	"github.com/IBM/sarama"
	log "github.com/sirupsen/logrus"
)

const defaultClientID = "oms-admin"

// Record — одно сообщение для отправки в Kafka.
type Record struct {
	Topic   string
	Key     string
	Value   []byte
	Headers map[string]string
}

// ProducerOption настраивает sarama-конфиг producer.
type ProducerOption func(*sarama.Config)

// WithClientID переопределяет client.id.
func WithClientID(id string) ProducerOption {
	return func(cfg *sarama.Config) {
		if id != "" {
			cfg.ClientID = id
		}
	}
}

// Producer отправляет события статусов заказов в Kafka.
type Producer struct {
	producer sarama.SyncProducer
	logger   *log.Entry
}

// NewProducer создаёт синхронный идемпотентный producer.
func NewProducer(brokers []string, opts ...ProducerOption) (*Producer, error) {
	config := sarama.NewConfig()
	config.ClientID = defaultClientID
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5
	config.Producer.Return.Successes = true
	config.Producer.Compression = sarama.CompressionSnappy
	config.Producer.Idempotent = true
	config.Net.MaxOpenRequests = 1
	for _, opt := range opts {
		opt(config)
	}

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}

	return newProducer(producer), nil
}

func newProducer(producer sarama.SyncProducer) *Producer {
	return &Producer{
		producer: producer,
		logger:   log.WithField("component", "kafka-producer"),
	}
}

// Send синхронно отправляет запись и ждёт подтверждения всех реплик.
func (p *Producer) Send(record Record) error {
	msg := &sarama.ProducerMessage{
		Topic:     record.Topic,
		Key:       sarama.StringEncoder(record.Key),
		Value:     sarama.ByteEncoder(record.Value),
		Headers:   recordHeaders(record.Headers),
		Timestamp: time.Now(),
	}

	logger := p.logger.WithFields(log.Fields{
		"topic": record.Topic,
		"key":   record.Key,
	})

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		logger.WithError(err).Error("failed to send message to kafka")
		return fmt.Errorf("failed to send message: %w", err)
	}

	logger.WithFields(log.Fields{
		"partition": partition,
		"offset":    offset,
	}).Debug("message sent to kafka")
	return nil
}

// recordHeaders сортирует заголовки по ключу, чтобы порядок был стабильным.
func recordHeaders(headers map[string]string) []sarama.RecordHeader {
	if len(headers) == 0 {
		return nil
	}
	keys := make([]string, 0, len(headers))
	for k := range headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	result := make([]sarama.RecordHeader, 0, len(keys))
	for _, k := range keys {
		result = append(result, sarama.RecordHeader{Key: []byte(k), Value: []byte(headers[k])})
	}
	return result
}

// Close закрывает producer
func (p *Producer) Close() error {
	if err := p.producer.Close(); err != nil {
		return fmt.Errorf("failed to close kafka producer: %w", err)
	}
	return nil
}
