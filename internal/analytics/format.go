package analytics

import (
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Money - "$1,234.56": два знака и разделитель тысяч.
func Money(v float64) string {
	return printer.Sprintf("$%.2f", v)
}

// Dollars - "$1234.56" без разделителя тысяч.
func Dollars(v float64) string {
	return "$" + strconv.FormatFloat(v, 'f', 2, 64)
}

// Percent1 - "12.3": один знак после запятой.
func Percent1(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// ShortFloat - кратчайшее представление с минимум одним знаком: 50 -> "50.0", 12.34 -> "12.34".
func ShortFloat(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatFloat(v, 'f', 1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
