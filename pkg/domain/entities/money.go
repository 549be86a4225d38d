package entities

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is a monetary value carried in currency cents, the unit the
// back-office API uses on the wire.
type Amount int64

// Decimal returns the amount as a decimal in currency units.
func (a Amount) Decimal() decimal.Decimal {
	return decimal.New(int64(a), -2)
}

// Add returns the sum of two amounts.
func (a Amount) Add(b Amount) Amount {
	return a + b
}

// AmountFromDecimal converts a decimal currency value to cents, rounding to
// the nearest cent.
func AmountFromDecimal(d decimal.Decimal) Amount {
	return Amount(d.Shift(2).Round(0).IntPart())
}

// AmountFromFloat converts a float currency value to cents. Non-finite inputs
// (NaN, ±Inf) collapse to zero rather than propagating garbage into totals.
func AmountFromFloat(f float64) Amount {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return AmountFromDecimal(decimal.NewFromFloat(f))
}

// AmountFromFloatPtr converts an optional wire value to cents, treating an
// absent value as zero.
func AmountFromFloatPtr(f *float64) Amount {
	if f == nil {
		return 0
	}
	return AmountFromFloat(*f)
}

// Locale selects the currency rendering convention for the rich formatter.
type Locale int

const (
	LocaleFR Locale = iota
	LocaleEN
)

// String method for Locale enum
func (l Locale) String() string {
	switch l {
	case LocaleFR:
		return "fr"
	case LocaleEN:
		return "en"
	default:
		return "unknown"
	}
}

// ParseLocale maps a configuration string to a Locale, defaulting to French.
func ParseLocale(s string) Locale {
	if strings.EqualFold(strings.TrimSpace(s), "en") {
		return LocaleEN
	}
	return LocaleFR
}

// FormatCompact renders an amount for the dense table views: the cent value
// divided by the currency scale, fixed two decimal places, no symbol.
func FormatCompact(a Amount) string {
	return a.Decimal().StringFixed(2)
}

// FormatCurrency renders an amount for summary and detail panels with
// grouping and a currency symbol following the locale convention.
func FormatCurrency(a Amount, loc Locale) string {
	d := a.Decimal()
	negative := d.IsNegative()
	fixed := d.Abs().StringFixed(2)

	parts := strings.SplitN(fixed, ".", 2)
	intPart, fracPart := parts[0], parts[1]

	var sep string
	switch loc {
	case LocaleEN:
		sep = ","
	default:
		sep = " " // non-breaking space
	}
	grouped := groupThousands(intPart, sep)

	var out string
	switch loc {
	case LocaleEN:
		out = fmt.Sprintf("€%s.%s", grouped, fracPart)
	default:
		out = fmt.Sprintf("%s,%s €", grouped, fracPart)
	}
	if negative {
		out = "-" + out
	}
	return out
}

// groupThousands inserts the separator every three digits from the right.
func groupThousands(digits string, sep string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}
	var b strings.Builder
	first := n % 3
	if first > 0 {
		b.WriteString(digits[:first])
	}
	for i := first; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
