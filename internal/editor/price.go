package editor

import (
	"regexp"
	"strconv"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DefaultLocale drives the grouped price rendering (1.234,56).
const DefaultLocale = "de-DE"

var nonDigits = regexp.MustCompile(`\D`)

// ParsePriceInput interprets raw text as minor units: every non-digit is
// stripped and the remaining digits are divided by 100, so "1234" becomes
// 12.34. Input with no usable digits becomes 0.
func ParsePriceInput(raw string) decimal.Decimal {
	digits := nonDigits.ReplaceAllString(raw, "")
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return decimal.Zero
	}
	return decimal.New(n, -2)
}

// PriceFormatter renders prices with exactly two fraction digits and
// locale-grouped thousands separators.
type PriceFormatter struct {
	printer *message.Printer
}

// NewPriceFormatter builds a formatter for a BCP 47 locale; an unknown
// locale falls back to the default.
func NewPriceFormatter(locale string) PriceFormatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.MustParse(DefaultLocale)
	}
	return PriceFormatter{printer: message.NewPrinter(tag)}
}

// Format is a pure projection: the stored decimal never changes.
// The zero value renders as a zero amount.
func (f PriceFormatter) Format(price decimal.Decimal) string {
	v, _ := price.Float64()
	return f.printer.Sprint(number.Decimal(v,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))
}
