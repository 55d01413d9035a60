package kafka

import (
	"context"
	"errors"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/SahuH/Data-Analytics-Assistant/internal/domain"
	"github.com/SahuH/Data-Analytics-Assistant/pkg/metrics"
)

// handleMessage - передаёт пачку в ingest; true - оффсет можно коммитить.
func (c *Consumer) handleMessage(ctx context.Context, topic string, msg *kafka.Message) bool {
	procCtx, cancel := context.WithTimeout(ctx, c.processTimeout)
	err := c.ingest.SaveFromMessage(procCtx, msg.Value)
	cancel()

	switch {
	case err == nil:
		metrics.KafkaMessagesProcessed.WithLabelValues(topic).Inc()
		return true
	case errors.Is(err, domain.ErrInvalidDataset):
		// мусор не ретраим: коммитим и идём дальше
		metrics.KafkaMessagesFailed.WithLabelValues(topic).Inc()
		c.log.Warnf(ctx, "invalid batch offset=%d size=%d: %v (skipped)", msg.Offset, len(msg.Value), err)
		return true
	default:
		metrics.KafkaMessagesFailed.WithLabelValues(topic).Inc()
		c.log.Warnf(ctx, "ingest failed offset=%d: %v (will retry without commit)", msg.Offset, err)
		return false
	}
}

func (c *Consumer) commitSafely(ctx context.Context, msg *kafka.Message) {
	if err := c.reader.CommitMessages(ctx, *msg); err != nil {
		c.log.Warnf(ctx, "commit failed offset=%d: %v", msg.Offset, err)
	}
}

// sleepWithBackoff - false, если контекст отменён раньше.
func (c *Consumer) sleepWithBackoff(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func (c *Consumer) nextBackoff(current time.Duration) time.Duration {
	current *= 2
	if current > c.retryMax {
		return c.retryMax
	}
	return current
}

// withJitterEqual - половина задержки фиксирована, вторая половина случайна.
func (c *Consumer) withJitterEqual(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	half := d / 2
	return half + time.Duration(c.jitter.Int64N(int64(d-half)+1))
}

func minDuration(a, b time.Duration) time.Duration {
	if a < b {
		return a
	}
	return b
}
