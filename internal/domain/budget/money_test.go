package budget

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"0", 0},
		{"12", 1200},
		{"12.3", 1230},
		{"12.34", 1234},
		{"12,34", 1234},
		{" .5 ", 50},
		{"99999999.99", MaxAmountCents},
		{"00012.01", 1201},
		{"12.30", 1230},
		{"0.01", 1},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if assert.NoError(t, err, tc.in) {
			assert.Equal(t, tc.want, got, tc.in)
		}
	}
}

func TestParseAmountRejects(t *testing.T) {
	for _, in := range []string{"", "-1", "+1", "abc", "1.2.3", "12.345", "12.", "100000000", "1e5", "1 000", ".", "1.230", "0.001", "-0", "1_000"} {
		_, err := ParseAmount(in)
		assert.ErrorIs(t, err, ErrInvalidAmount, in)
	}
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "0.00", FormatAmount(0))
	assert.Equal(t, "0.05", FormatAmount(5))
	assert.Equal(t, "1234.50", FormatAmount(123450))
	assert.Equal(t, "-1.10", FormatAmount(-110))
	assert.Equal(t, "99999999.99", FormatAmount(MaxAmountCents))
}

func TestFormatAmountParsesBack(t *testing.T) {
	for _, cents := range []int64{0, 7, 1230, 123456, MaxAmountCents} {
		got, err := ParseAmount(FormatAmount(cents))
		if assert.NoError(t, err) {
			assert.Equal(t, cents, got)
		}
	}
}
