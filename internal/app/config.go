package app

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/oms-admin/internal/messaging/kafka"
)

// EnvPrefix добавляется ко всем переменным окружения админки.
const EnvPrefix = "OMS_ADMIN_"

// Config описывает настройки запуска приложения.
type Config struct {
	HTTPAddr    string
	GRPCAddr    string
	MetricsAddr string

	// SeedFile указывает YAML с начальными заказами, по умолчанию берётся демо-набор.
	SeedFile string
	LogLevel log.Level

	KafkaBrokers []string
	KafkaTopic   string

	OutboxPollInterval time.Duration
	OutboxBatchSize    int
	OutboxMaxAttempts  int
	OutboxRetryDelay   time.Duration
	// OutboxMaxPending — порог backlog, выше которого health отдаёт degraded.
	OutboxMaxPending int
}

// DefaultConfig возвращает значения по умолчанию.
func DefaultConfig() Config {
	return Config{
		HTTPAddr:           ":8080",
		GRPCAddr:           ":50051",
		MetricsAddr:        ":9090",
		LogLevel:           log.InfoLevel,
		KafkaTopic:         kafka.TopicOrderEvents,
		OutboxPollInterval: time.Second,
		OutboxBatchSize:    100,
		OutboxMaxAttempts:  3,
		OutboxRetryDelay:   50 * time.Millisecond,
		OutboxMaxPending:   1000,
	}
}

// LoadConfigFromEnv читает конфигурацию из окружения процесса.
func LoadConfigFromEnv() (Config, error) {
	return LoadConfig(os.LookupEnv)
}

// LoadConfig накладывает переменные OMS_ADMIN_* на DefaultConfig.
func LoadConfig(lookup func(string) (string, bool)) (Config, error) {
	cfg := DefaultConfig()
	env := envReader{lookup: lookup}

	env.str("HTTP_ADDR", &cfg.HTTPAddr)
	env.str("GRPC_ADDR", &cfg.GRPCAddr)
	env.str("METRICS_ADDR", &cfg.MetricsAddr)
	env.str("SEED_FILE", &cfg.SeedFile)
	env.str("KAFKA_TOPIC", &cfg.KafkaTopic)

	if raw, ok := env.get("KAFKA_BROKERS"); ok {
		cfg.KafkaBrokers = splitBrokers(raw)
	}
	if raw, ok := env.get("LOG_LEVEL"); ok {
		level, err := log.ParseLevel(raw)
		if err != nil {
			return Config{}, fmt.Errorf("%sLOG_LEVEL: %w", EnvPrefix, err)
		}
		cfg.LogLevel = level
	}

	env.duration("OUTBOX_POLL_INTERVAL", &cfg.OutboxPollInterval)
	env.duration("OUTBOX_RETRY_DELAY", &cfg.OutboxRetryDelay)
	env.positiveInt("OUTBOX_BATCH_SIZE", &cfg.OutboxBatchSize)
	env.positiveInt("OUTBOX_MAX_ATTEMPTS", &cfg.OutboxMaxAttempts)
	env.positiveInt("OUTBOX_MAX_PENDING", &cfg.OutboxMaxPending)

	if env.err != nil {
		return Config{}, env.err
	}
	return cfg, nil
}

// KafkaEnabled сообщает, настроены ли брокеры.
func (c Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

type envReader struct {
	lookup func(string) (string, bool)
	err    error
}

func (r *envReader) get(name string) (string, bool) {
	if r.lookup == nil {
		return "", false
	}
	raw, ok := r.lookup(EnvPrefix + name)
	raw = strings.TrimSpace(raw)
	return raw, ok && raw != ""
}

func (r *envReader) str(name string, dst *string) {
	if raw, ok := r.get(name); ok {
		*dst = raw
	}
}

func (r *envReader) duration(name string, dst *time.Duration) {
	raw, ok := r.get(name)
	if !ok || r.err != nil {
		return
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		r.err = fmt.Errorf("%s%s: %w", EnvPrefix, name, err)
		return
	}
	if value <= 0 {
		r.err = fmt.Errorf("%s%s: must be > 0, got %s", EnvPrefix, name, raw)
		return
	}
	*dst = value
}

func (r *envReader) positiveInt(name string, dst *int) {
	raw, ok := r.get(name)
	if !ok || r.err != nil {
		return
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		r.err = fmt.Errorf("%s%s: %w", EnvPrefix, name, err)
		return
	}
	if value <= 0 {
		r.err = fmt.Errorf("%s%s: must be > 0, got %d", EnvPrefix, name, value)
		return
	}
	*dst = value
}

func splitBrokers(raw string) []string {
	parts := strings.Split(raw, ",")
	brokers := make([]string, 0, len(parts))
	for _, part := range parts {
		if broker := strings.TrimSpace(part); broker != "" {
			brokers = append(brokers, broker)
		}
	}
	return brokers
}
