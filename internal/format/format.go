package format

import (
	"fmt"
	"math"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.Indonesian)

var weekdayNames = [...]string{
	"Minggu", "Senin", "Selasa", "Rabu", "Kamis", "Jumat", "Sabtu",
}

var monthNames = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// Currency renders an amount as Indonesian rupiah: "Rp " prefix, '.' as
// thousands separator, no decimal places.
func Currency(v float64) string {
	return "Rp " + Number(v)
}

// Number renders a value with id-ID grouping and no decimal places.
func Number(v float64) string {
	return printer.Sprintf("%v", number.Decimal(math.Round(v), number.MaxFractionDigits(0)))
}

// Percentage renders a value with exactly one decimal digit, ',' as the
// decimal separator and no whitespace before the '%' sign.
func Percentage(v float64) string {
	s := fmt.Sprintf("%.1f", v)
	return strings.Replace(s, ".", ",", 1) + "%"
}

// LongDate renders a date the way id-ID long form does, e.g.
// "Senin, 31 Agustus 2026".
func LongDate(t time.Time) string {
	return fmt.Sprintf("%s, %d %s %d", weekdayNames[t.Weekday()], t.Day(), monthNames[t.Month()-1], t.Year())
}
