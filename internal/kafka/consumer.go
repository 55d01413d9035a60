package kafka

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/SahuH/Data-Analytics-Assistant/internal/ports"
	"github.com/SahuH/Data-Analytics-Assistant/pkg/ctxmeta"
	"github.com/SahuH/Data-Analytics-Assistant/pkg/metrics"
)

// Проверка, что Consumer удовлетворяет порту приложения.
var _ ports.MessageConsumer = (*Consumer)(nil)

// reader - то, что нужно от kafka.Reader; подменяется моками в тестах.
type reader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Config() kafka.ReaderConfig
	Close() error
}

// batchIngester - приём одной пачки строк (usecase.IngestService).
type batchIngester interface {
	SaveFromMessage(ctx context.Context, raw []byte) error
}

// Consumer - читает пачки набора данных из топика и передаёт их в ingest.
// Доставка at-least-once: оффсет коммитится только после успешной записи
// или если пачка признана невалидной.
type Consumer struct {
	reader         reader
	ingest         batchIngester
	log            ports.Logger
	processTimeout time.Duration
	retryInitial   time.Duration
	retryMax       time.Duration
	jitter         *rand.Rand
	closeOnce      sync.Once
}

// NewConsumer - конструктор поверх kafka.Reader.
func NewConsumer(cfg *ConsumerConfig, ingest batchIngester, log ports.Logger) *Consumer {
	seed := uint64(time.Now().UnixNano())
	return &Consumer{
		reader:         kafka.NewReader(cfg.ReaderConfig()),
		ingest:         ingest,
		log:            log,
		processTimeout: durationOr(cfg.ProcessTimeout, defaultProcessTimeout),
		retryInitial:   durationOr(cfg.RetryInitial, defaultRetryInitial),
		retryMax:       durationOr(cfg.RetryMax, defaultRetryMax),
		jitter:         rand.New(rand.NewPCG(seed, seed>>1)),
	}
}

// Run - цикл чтения до отмены контекста.
//   - ошибка FetchMessage: пауза с экспоненциальным backoff и повтор;
//   - пачка сохранена или невалидна: коммит оффсета;
//   - временная ошибка записи: без коммита, пачка придёт снова.
func (c *Consumer) Run(ctx context.Context) error {
	rc := c.reader.Config()
	c.log.Infof(ctx, "ingest consumer started topic=%s group_id=%s brokers=%v", rc.Topic, rc.GroupID, rc.Brokers)

	retry := c.retryInitial
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			sleep := c.withJitterEqual(retry)
			c.log.Warnf(ctx, "fetch failed: %v (will retry in %s)", err, sleep)
			if !c.sleepWithBackoff(ctx, sleep) {
				return ctx.Err()
			}
			retry = c.nextBackoff(retry)
			continue
		}

		retry = c.retryInitial
		metrics.KafkaMessagesConsumed.WithLabelValues(rc.Topic).Inc()

		msgCtx := ctxmeta.WithRequestID(ctx, messageID(&msg))
		if c.handleMessage(msgCtx, rc.Topic, &msg) {
			c.commitSafely(msgCtx, &msg)
			continue
		}
		// разносим повторы, чтобы не долбить упавшее хранилище
		_ = c.sleepWithBackoff(ctx, c.withJitterEqual(minDuration(c.retryInitial, 500*time.Millisecond)))
	}
}

// Close - закрывает reader; повторные вызовы ничего не делают.
func (c *Consumer) Close() (retErr error) {
	c.closeOnce.Do(func() {
		retErr = c.reader.Close()
	})
	return retErr
}

// messageID - "topic/partition/offset", идёт в логи как request_id.
func messageID(msg *kafka.Message) string {
	return fmt.Sprintf("%s/%d/%d", msg.Topic, msg.Partition, msg.Offset)
}
