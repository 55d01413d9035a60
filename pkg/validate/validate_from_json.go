package validate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/SahuH/Data-Analytics-Assistant/internal/domain"
	"github.com/SahuH/Data-Analytics-Assistant/internal/ports"
)

// ValidateDatasetFromJSON - строгий разбор пачки из JSON, пересчёт производных полей и валидация.
func ValidateDatasetFromJSON(ctx context.Context, validator ports.DatasetValidator, raw []byte) (*domain.Dataset, error) {
	var ds domain.Dataset
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&ds); err != nil {
		return nil, fmt.Errorf("%w: invalid json: %v", ErrInvalidDataset, err)
	}
	// гарантируем отсутствие данных после объекта
	if err := dec.Decode(new(struct{})); err != io.EOF {
		return nil, fmt.Errorf("%w: invalid json: trailing data", ErrInvalidDataset)
	}
	ds.Normalize()
	if err := validator.Validate(ctx, &ds); err != nil {
		return nil, err
	}
	return &ds, nil
}
