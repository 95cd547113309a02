package locale

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ErrNumberFormat is returned when a field cannot be read as a number.
var ErrNumberFormat = errors.New("invalid number")

// ParseNumber reads a pt-BR formatted number ("1.234,56"). Every "." is a
// thousands separator and the first "," is the decimal separator. Blank input
// is zero. Exponent notation is not accepted, and neither is a value outside
// the float64 range. On failure it returns 0 and an error wrapping
// ErrNumberFormat.
func ParseNumber(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, nil
	}
	if strings.ContainsAny(s, "eE") {
		return 0, fmt.Errorf("%w: %q", ErrNumberFormat, raw)
	}
	s = strings.ReplaceAll(s, ".", "")
	s = strings.Replace(s, ",", ".", 1)

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNumberFormat, raw)
	}
	f, _ := d.Float64()
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, fmt.Errorf("%w: %q out of range", ErrNumberFormat, raw)
	}
	return f, nil
}

var brl = message.NewPrinter(language.BrazilianPortuguese)

// FormatCurrency renders v as Brazilian reais, e.g. "R$ 1.234,56" or
// "-R$ 10,00". NaN and infinities render as zero.
func FormatCurrency(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	cents := math.Round(v * 100)
	if cents == 0 {
		return "R$ 0,00"
	}
	s := brl.Sprintf("%.2f", math.Abs(cents)/100)
	if cents < 0 {
		return "-R$ " + s
	}
	return "R$ " + s
}

// FormatDecimal renders v with two decimals and a comma separator and no
// grouping ("1234,56"), the shape SPED and spreadsheet imports expect.
func FormatDecimal(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	return strings.Replace(decimal.NewFromFloat(v).StringFixed(2), ".", ",", 1)
}
