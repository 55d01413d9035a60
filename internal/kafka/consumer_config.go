package kafka

import (
	"errors"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

// Значения по умолчанию для незаданных полей.
const (
	defaultProcessTimeout = 10 * time.Second
	defaultRetryInitial   = 1 * time.Second
	defaultRetryMax       = 30 * time.Second
	// Пачка может содержать тысячи строк - поднимаем лимит выборки относительно дефолта kafka-go (1 MiB).
	defaultMaxBytes = 10 << 20
)

// ConsumerConfig - параметры live-инжеста.
type ConsumerConfig struct {
	Brokers     []string
	Topic       string
	GroupID     string
	StartOffset string // first | last

	ProcessTimeout time.Duration // таймаут обработки одной пачки
	RetryInitial   time.Duration // первая пауза после ошибки FetchMessage
	RetryMax       time.Duration // потолок экспоненциального backoff
	MaxBytes       int
}

// Validate - обязательные поля заданы.
func (c *ConsumerConfig) Validate() error {
	var errs []error
	if len(c.Brokers) == 0 {
		errs = append(errs, errors.New("kafka: brokers are empty"))
	}
	if strings.TrimSpace(c.Topic) == "" {
		errs = append(errs, errors.New("kafka: topic is empty"))
	}
	if strings.TrimSpace(c.GroupID) == "" {
		errs = append(errs, errors.New("kafka: group id is empty"))
	}
	return errors.Join(errs...)
}

// ReaderConfig - конфигурация kafka.Reader с ручным коммитом оффсетов.
// StartOffset сравнивается без учёта регистра и пробелов; всё, кроме "first", читается с конца.
func (c *ConsumerConfig) ReaderConfig() kafka.ReaderConfig {
	maxBytes := c.MaxBytes
	if maxBytes <= 0 {
		maxBytes = defaultMaxBytes
	}

	rc := kafka.ReaderConfig{
		Brokers:        c.Brokers,
		GroupID:        c.GroupID,
		Topic:          c.Topic,
		MaxBytes:       maxBytes,
		CommitInterval: 0,
	}

	switch strings.ToLower(strings.TrimSpace(c.StartOffset)) {
	case "first":
		rc.StartOffset = kafka.FirstOffset
	default:
		rc.StartOffset = kafka.LastOffset
	}
	return rc
}

func durationOr(v, def time.Duration) time.Duration {
	if v <= 0 {
		return def
	}
	return v
}
