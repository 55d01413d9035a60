package ports

import (
	"context"

	"github.com/SahuH/Data-Analytics-Assistant/internal/domain"
)

// DatasetValidator - проверка инвариантов набора данных (ссылочная целостность, enum-ы, знаки сумм).
type DatasetValidator interface {
	Validate(ctx context.Context, ds *domain.Dataset) error
}
