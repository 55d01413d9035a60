package ports

import (
	"context"
	"time"

	"github.com/SahuH/Data-Analytics-Assistant/internal/domain"
)

// SQLDialect - различия SQL-диалектов, которые нужны каталогу запросов.
// Все методы возвращают фрагменты SQL, аргументы - имена колонок/выражения.
type SQLDialect interface {
	Name() string
	// Rebind - переводит плейсхолдеры '?' в формат диалекта.
	Rebind(query string) string
	// TimeArg - значение для сравнения с order_date.
	TimeArg(t time.Time) any
	// MonthKey - 'YYYY-MM'.
	MonthKey(col string) string
	// MonthNumber - номер месяца 1..12.
	MonthNumber(col string) string
	// WeekdayNumber - день недели 0 (воскресенье) .. 6 (суббота).
	WeekdayNumber(col string) string
	// DaysBetween - разница в днях (дробная) между двумя метками времени.
	DaysBetween(later, earlier string) string
	// Round2 - округление выражения до 2 знаков.
	Round2(expr string) string
}

// QuerySession - соединение на время одного вызова инструмента.
type QuerySession interface {
	Query(ctx context.Context, query string, args ...any) ([]domain.Row, error)
	Close() error
}

// AnalyticsStore - реляционное хранилище для аналитических запросов.
// Open открывает сессию на один вызов; сессия закрывается до ответа клиенту.
type AnalyticsStore interface {
	Dialect() SQLDialect
	Open(ctx context.Context) (QuerySession, error)
}

// DatasetStore - массовая загрузка четырёх таблиц.
type DatasetStore interface {
	// Populated - в хранилище уже есть заказы.
	Populated(ctx context.Context) (bool, error)
	// Replace - полностью заменяет содержимое таблиц.
	Replace(ctx context.Context, ds *domain.Dataset) error
	// Append - upsert строк (путь live-инжеста).
	Append(ctx context.Context, ds *domain.Dataset) error
}

// DatasetSource - откуда берутся строки при первичном наполнении.
type DatasetSource interface {
	Load(ctx context.Context) (*domain.Dataset, error)
}
