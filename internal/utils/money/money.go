// Package money provides the fixed-point monetary amount type used across
// the ledger. Amounts are exact decimals at scale 4 (ten-thousandths);
// arithmetic never rounds because every accepted input already fits the
// scale and is padded with trailing zeros on output.
package money

import (
	"regexp"

	"github.com/shopspring/decimal"

	"github.com/tallyledger/tally_ledger_app/internal/apperrors"
)

// Scale is the number of fractional digits carried by every amount.
const Scale = 4

var (
	signedPattern   = regexp.MustCompile(`^-?\d+(\.\d{1,4})?$`)
	unsignedPattern = regexp.MustCompile(`^\d+(\.\d{1,4})?$`)
)

// Money is an exact decimal monetary amount at scale 4. The zero value is
// 0.0000 and ready to use.
type Money struct {
	dec decimal.Decimal
}

// Zero returns the zero amount.
func Zero() Money {
	return Money{}
}

// Parse accepts a signed decimal string with at most four fractional digits.
func Parse(value string) (Money, error) {
	if !signedPattern.MatchString(value) {
		return Money{}, apperrors.NewInvalidAmountFormat(value)
	}
	dec, err := decimal.NewFromString(value)
	if err != nil {
		return Money{}, apperrors.NewInvalidAmountFormat(value)
	}
	return Money{dec: dec}, nil
}

// ParseUnsigned accepts only non-negative decimal strings; journal line
// amounts use this variant.
func ParseUnsigned(value string) (Money, error) {
	if !unsignedPattern.MatchString(value) {
		return Money{}, apperrors.NewInvalidAmountFormat(value)
	}
	dec, err := decimal.NewFromString(value)
	if err != nil {
		return Money{}, apperrors.NewInvalidAmountFormat(value)
	}
	return Money{dec: dec}, nil
}

// FromDecimal wraps a decimal already known to fit scale 4, e.g. a value
// scanned from a numeric(20,4) column.
func FromDecimal(dec decimal.Decimal) Money {
	return Money{dec: dec}
}

// Decimal exposes the underlying decimal for persistence.
func (m Money) Decimal() decimal.Decimal {
	return m.dec
}

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return Money{dec: m.dec.Add(other.dec)}
}

// Sub returns m - other.
func (m Money) Sub(other Money) Money {
	return Money{dec: m.dec.Sub(other.dec)}
}

// Abs returns the absolute value.
func (m Money) Abs() Money {
	return Money{dec: m.dec.Abs()}
}

// Neg returns the negated amount.
func (m Money) Neg() Money {
	return Money{dec: m.dec.Neg()}
}

// Cmp compares two amounts: -1 if m < other, 0 if equal, +1 if m > other.
func (m Money) Cmp(other Money) int {
	return m.dec.Cmp(other.dec)
}

// Equal reports exact equality at scale 4.
func (m Money) Equal(other Money) bool {
	return m.dec.Equal(other.dec)
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.dec.IsZero()
}

// IsPositive reports whether the amount is strictly greater than zero.
func (m Money) IsPositive() bool {
	return m.dec.IsPositive()
}

// IsNegative reports whether the amount is strictly less than zero.
func (m Money) IsNegative() bool {
	return m.dec.IsNegative()
}

// String formats the amount with exactly four fractional digits.
func (m Money) String() string {
	return m.dec.StringFixed(Scale)
}

// MarshalJSON emits the amount as a fixed four-digit decimal string.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

// UnmarshalJSON accepts a signed decimal string at scale <= 4.
func (m *Money) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
