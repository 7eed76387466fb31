package tracker

import (
	"ar-viewfinder.klederson.com/internal/geo"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// RangeFormatter renders distances with two decimals in a given locale.
type RangeFormatter struct {
	printer *message.Printer
}

// NewRangeFormatter creates a formatter for a BCP 47 locale such as "de" or "en-US".
// Unknown locales fall back to English.
func NewRangeFormatter(locale string) *RangeFormatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return &RangeFormatter{printer: message.NewPrinter(tag)}
}

// Format returns e.g. "1,25 km" for German. Thousands are not grouped.
func (f *RangeFormatter) Format(dist float64, unit geo.Unit) string {
	return f.printer.Sprint(number.Decimal(dist, number.Scale(2), number.NoSeparator())) + " " + unit.String()
}
