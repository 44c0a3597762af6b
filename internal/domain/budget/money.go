package budget

import (
	"strings"

	"github.com/shopspring/decimal"
)

// MaxAmountCents is 99 999 999.99, the largest amount with eight integer digits.
const MaxAmountCents int64 = 9_999_999_999

var maxAmount = decimal.New(MaxAmountCents, -2)

// ParseAmount converts a non-negative decimal with at most two fraction
// digits to cents. Both "12.34" and "12,34" are accepted.
func ParseAmount(value string) (int64, error) {
	s := strings.ReplaceAll(strings.TrimSpace(value), ",", ".")
	// decimal also takes signs, exponents and a bare trailing point.
	if s == "" || strings.HasSuffix(s, ".") || strings.IndexFunc(s, notAmountRune) >= 0 {
		return 0, ErrInvalidAmount
	}

	amount, err := decimal.NewFromString(s)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	if amount.Exponent() < -2 || amount.IsNegative() || amount.Cmp(maxAmount) > 0 {
		return 0, ErrInvalidAmount
	}
	return amount.Shift(2).IntPart(), nil
}

// FormatAmount renders cents as a plain decimal, e.g. 123450 -> "1234.50".
func FormatAmount(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}

func notAmountRune(r rune) bool {
	return r != '.' && (r < '0' || r > '9')
}
