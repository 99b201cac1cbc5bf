// Package amount coerces free-text form input into money and quantity values.
package amount

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DisplayPrecision is the number of fraction digits every amount is shown with.
const DisplayPrecision = 2

// Bounds on accepted input. Larger values are treated as invalid entry.
const (
	maxExponent = 20
	maxDigits   = 30
)

// ParseAmount parses raw as a decimal number.
// Empty, unparsable, non-finite, negative and out-of-range input all yield zero; no error is ever reported.
// Example: " 12.5 " returns 12.5, "abc" returns 0, "-3" returns 0
func ParseAmount(raw string) decimal.Decimal {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() || !inRange(d) {
		return decimal.Zero
	}
	return d
}

func inRange(d decimal.Decimal) bool {
	exp := d.Exponent()
	if exp > maxExponent || exp < -maxExponent {
		return false
	}
	return d.NumDigits() <= maxDigits
}

// ParseOptionalAmount is ParseAmount for fields where blank means "not set" rather than zero.
func ParseOptionalAmount(raw string) decimal.NullDecimal {
	if strings.TrimSpace(raw) == "" {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(ParseAmount(raw))
}

// Round rounds d to display precision, half away from zero.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(DisplayPrecision)
}

// Format renders d with exactly two fraction digits.
// Example: 30 returns "30.00", 16.505 returns "16.51"
func Format(d decimal.Decimal) string {
	return d.StringFixed(DisplayPrecision)
}

// FormatOptional renders a blank string for an unset value.
func FormatOptional(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return Format(d.Decimal)
}
