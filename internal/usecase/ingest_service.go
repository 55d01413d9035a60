package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/SahuH/Data-Analytics-Assistant/internal/domain"
	"github.com/SahuH/Data-Analytics-Assistant/internal/ports"
	"github.com/SahuH/Data-Analytics-Assistant/pkg/metrics"
)

// IngestService - приём пачек данных из Kafka (без знаний о транспорте).
type IngestService struct {
	store     ports.DatasetStore     // upsert в хранилище
	log       ports.Logger           // логгер
	validator ports.DatasetValidator // инварианты пачки
}

// NewIngestService - DI-конструктор.
func NewIngestService(
	store ports.DatasetStore,
	log ports.Logger,
	validator ports.DatasetValidator,
) *IngestService {
	return &IngestService{
		store:     store,
		log:       log,
		validator: validator,
	}
}

// SaveFromMessage - сохранить пачку, пришедшую из Kafka (raw JSON).
// Шаги:
//  1. строгий парсинг JSON (DisallowUnknownFields);
//  2. пересчёт производных полей (profit_margin, total_price);
//  3. валидация инвариантов (ошибки оборачивают domain.ErrInvalidDataset - такие сообщения не ретраятся);
//  4. идемпотентный upsert в хранилище.
func (s *IngestService) SaveFromMessage(ctx context.Context, raw []byte) error {
	var ds domain.Dataset
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&ds); err != nil {
		s.log.Warnf(ctx, "invalid json err=%v", err)
		return fmt.Errorf("%w: invalid json: %v", domain.ErrInvalidDataset, err)
	}

	// Убеждаемся, что после объекта нет лишних данных.
	if err := dec.Decode(new(struct{})); err != io.EOF {
		s.log.Warnf(ctx, "invalid json: trailing data")
		return fmt.Errorf("%w: invalid json: trailing data", domain.ErrInvalidDataset)
	}

	if ds.Empty() {
		s.log.Warnf(ctx, "empty batch skipped")
		return nil
	}

	ds.Normalize()

	if err := s.validator.Validate(ctx, &ds); err != nil {
		s.log.Warnf(ctx, "validation failed rows=%v err=%v", ds.Counts(), err)
		return fmt.Errorf("validation failed: %w", err)
	}

	if err := s.store.Append(ctx, &ds); err != nil {
		s.log.Errorf(ctx, "store.Append failed rows=%v err=%v", ds.Counts(), err)
		return fmt.Errorf("failed to save batch: %w", err)
	}

	for table, n := range ds.Counts() {
		metrics.IngestRows.WithLabelValues(table).Add(float64(n))
	}
	s.log.Infof(ctx, "batch saved rows=%v", ds.Counts())
	return nil
}
