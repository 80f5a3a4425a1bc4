package money_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallyledger/tally_ledger_app/internal/apperrors"
	"github.com/tallyledger/tally_ledger_app/internal/utils/money"
)

func TestParse_ValidAmounts(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"0", "0.0000"},
		{"1", "1.0000"},
		{"10.5", "10.5000"},
		{"10.50", "10.5000"},
		{"0.0001", "0.0001"},
		{"-25.99", "-25.9900"},
		{"12345678901234.9999", "12345678901234.9999"},
	}

	for _, tc := range cases {
		m, err := money.Parse(tc.input)
		require.NoError(t, err, "input %q", tc.input)
		assert.Equal(t, tc.want, m.String(), "input %q", tc.input)
	}
}

func TestParse_InvalidAmounts(t *testing.T) {
	cases := []string{
		"",
		"abc",
		"1.23456",  // five fractional digits
		"1.",       // trailing dot
		".5",       // missing integer part
		"1,000.00", // thousands separator
		"1e3",      // scientific notation
		"+1.00",    // explicit plus sign
		" 1.00",    // leading space
	}

	for _, input := range cases {
		_, err := money.Parse(input)
		require.Error(t, err, "input %q", input)
		assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidAmountFormat), "input %q", input)
	}
}

func TestParseUnsigned_RejectsNegative(t *testing.T) {
	_, err := money.ParseUnsigned("-5.00")
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidAmountFormat))

	m, err := money.ParseUnsigned("5.00")
	require.NoError(t, err)
	assert.Equal(t, "5.0000", m.String())
}

func TestArithmetic(t *testing.T) {
	a, err := money.Parse("10.25")
	require.NoError(t, err)
	b, err := money.Parse("0.75")
	require.NoError(t, err)

	assert.Equal(t, "11.0000", a.Add(b).String())
	assert.Equal(t, "9.5000", a.Sub(b).String())
	assert.Equal(t, "-10.2500", a.Neg().String())
	assert.Equal(t, "10.2500", a.Neg().Abs().String())
	assert.Equal(t, 1, a.Cmp(b))
	assert.Equal(t, -1, b.Cmp(a))
	assert.True(t, a.Equal(a))
	assert.False(t, a.Equal(b))
}

func TestAdd_NoFloatDrift(t *testing.T) {
	// 0.1 + 0.2 must be exactly 0.3 at scale 4.
	a, err := money.Parse("0.1")
	require.NoError(t, err)
	b, err := money.Parse("0.2")
	require.NoError(t, err)
	want, err := money.Parse("0.3")
	require.NoError(t, err)

	assert.True(t, a.Add(b).Equal(want))
}

func TestPredicates(t *testing.T) {
	zero := money.Zero()
	assert.True(t, zero.IsZero())
	assert.False(t, zero.IsPositive())
	assert.False(t, zero.IsNegative())

	pos, err := money.Parse("0.0001")
	require.NoError(t, err)
	assert.True(t, pos.IsPositive())

	neg := pos.Neg()
	assert.True(t, neg.IsNegative())
}

func TestFromDecimal_RoundTrip(t *testing.T) {
	dec := decimal.RequireFromString("42.4200")
	m := money.FromDecimal(dec)
	assert.Equal(t, "42.4200", m.String())
	assert.True(t, dec.Equal(m.Decimal()))
}

func TestJSONRoundTrip(t *testing.T) {
	m, err := money.Parse("99.99")
	require.NoError(t, err)

	encoded, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, `"99.9900"`, string(encoded))

	var decoded money.Money
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	assert.True(t, m.Equal(decoded))
}

func TestUnmarshalJSON_InvalidFormat(t *testing.T) {
	var m money.Money
	err := json.Unmarshal([]byte(`"1.23456"`), &m)
	require.Error(t, err)
}
