package postgres

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/SahuH/Data-Analytics-Assistant/internal/ports"
)

var _ ports.SQLDialect = Dialect{}

// Dialect - SQL-фрагменты Postgres. order_date хранится как TIMESTAMP (UTC).
type Dialect struct{}

func (Dialect) Name() string { return "postgres" }

// Rebind - '?' -> $1, $2, ...; содержимое строковых литералов не трогаем.
func (Dialect) Rebind(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)

	n := 0
	inString := false
	for i := 0; i < len(query); i++ {
		c := query[i]
		switch {
		case c == '\'':
			inString = !inString
			b.WriteByte(c)
		case c == '?' && !inString:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func (Dialect) TimeArg(t time.Time) any { return t.UTC() }

func (Dialect) MonthKey(col string) string {
	return fmt.Sprintf("to_char(%s, 'YYYY-MM')", col)
}

func (Dialect) MonthNumber(col string) string {
	return fmt.Sprintf("CAST(EXTRACT(MONTH FROM %s) AS INTEGER)", col)
}

func (Dialect) WeekdayNumber(col string) string {
	return fmt.Sprintf("CAST(EXTRACT(DOW FROM %s) AS INTEGER)", col)
}

func (Dialect) DaysBetween(later, earlier string) string {
	return fmt.Sprintf("(EXTRACT(EPOCH FROM (%s - %s)) / 86400.0)", later, earlier)
}

func (Dialect) Round2(expr string) string {
	return fmt.Sprintf("ROUND(CAST(%s AS NUMERIC), 2)", expr)
}
