package sqlite

import (
	"fmt"
	"time"

	"github.com/SahuH/Data-Analytics-Assistant/internal/ports"
)

var _ ports.SQLDialect = Dialect{}

// Dialect - SQL-фрагменты SQLite. Даты хранятся текстом "YYYY-MM-DD HH:MM:SS" в UTC.
type Dialect struct{}

func (Dialect) Name() string { return "sqlite" }

// Rebind - SQLite понимает '?' как есть.
func (Dialect) Rebind(query string) string { return query }

func (Dialect) TimeArg(t time.Time) any { return formatTime(t) }

func (Dialect) MonthKey(col string) string {
	return fmt.Sprintf("strftime('%%Y-%%m', %s)", col)
}

func (Dialect) MonthNumber(col string) string {
	return fmt.Sprintf("CAST(strftime('%%m', %s) AS INTEGER)", col)
}

func (Dialect) WeekdayNumber(col string) string {
	return fmt.Sprintf("CAST(strftime('%%w', %s) AS INTEGER)", col)
}

func (Dialect) DaysBetween(later, earlier string) string {
	return fmt.Sprintf("(julianday(%s) - julianday(%s))", later, earlier)
}

func (Dialect) Round2(expr string) string {
	return fmt.Sprintf("ROUND(%s, 2)", expr)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.DateTime)
}
