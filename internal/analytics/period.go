package analytics

import (
	"time"
)

// Символические диапазоны дат для sales_overview.
const (
	RangeAll        = "all"
	RangeLast30Days = "last_30_days"
	RangeThisMonth  = "this_month"
	RangeThisYear   = "this_year"
)

// DateRanges - распознаваемые токены в порядке схемы.
var DateRanges = []string{RangeAll, RangeLast30Days, RangeThisMonth, RangeThisYear}

// DateFilter - предикат по orders.order_date.
// Пустой Clause означает "без ограничения".
type DateFilter struct {
	Clause string
	Args   []time.Time
}

// BuildDateFilter - токен диапазона в предикат относительно now.
// Неизвестный токен молча трактуется как "all".
func BuildDateFilter(token string, now time.Time) DateFilter {
	now = now.UTC()

	switch token {
	case RangeLast30Days:
		return DateFilter{
			Clause: "order_date >= ?",
			Args:   []time.Time{now.AddDate(0, 0, -30)},
		}
	case RangeThisMonth:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		return DateFilter{
			Clause: "order_date >= ? AND order_date < ?",
			Args:   []time.Time{start, start.AddDate(0, 1, 0)},
		}
	case RangeThisYear:
		start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		return DateFilter{
			Clause: "order_date >= ? AND order_date < ?",
			Args:   []time.Time{start, start.AddDate(1, 0, 0)},
		}
	default:
		return DateFilter{}
	}
}

// Empty - фильтр ничего не ограничивает.
func (f DateFilter) Empty() bool { return f.Clause == "" }

// And - фрагмент для добавления к существующему WHERE.
func (f DateFilter) And() string {
	if f.Empty() {
		return ""
	}
	return " AND " + f.Clause
}

// Where - фрагмент для запроса без WHERE.
func (f DateFilter) Where() string {
	if f.Empty() {
		return ""
	}
	return " WHERE " + f.Clause
}

// Bind - аргументы фильтра, приведённые диалектом.
func (f DateFilter) Bind(timeArg func(time.Time) any) []any {
	out := make([]any, 0, len(f.Args))
	for _, t := range f.Args {
		out = append(out, timeArg(t))
	}
	return out
}

