package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// RequiredField pairs a field name with its raw value.
type RequiredField struct {
	Name  string
	Value string
}

// ValidateRequired returns ErrValidation naming the first empty field.
func ValidateRequired(fields ...RequiredField) error {
	for _, f := range fields {
		if strings.TrimSpace(f.Value) == "" {
			return fmt.Errorf("%w: %s is required", ErrValidation, f.Name)
		}
	}

	return nil
}

// ParseDecimalField parses a decimal string supplied by a caller.
// Sign and magnitude are not checked: zero and negative values are accepted.
func ParseDecimalField(name, value string) (decimal.Decimal, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return decimal.Zero, fmt.Errorf("%w: %s is required", ErrValidation, name)
	}

	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrInvalidDecimal, name)
	}

	return d, nil
}

// FormatDecimal renders d with the scale it was parsed at, so "1.00" stays
// "1.00". Values without a fractional part print as plain integers.
func FormatDecimal(d decimal.Decimal) string {
	if exp := d.Exponent(); exp < 0 {
		return d.StringFixed(-exp)
	}
	return d.String()
}

// SameAddress compares two opaque account identifiers case-insensitively.
func SameAddress(a, b string) bool {
	return strings.EqualFold(a, b)
}

// NormalizeAddress returns the canonical (lower-case) form used for distinct counts.
func NormalizeAddress(addr string) string {
	return strings.ToLower(addr)
}
