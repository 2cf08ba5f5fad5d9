package utils

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatMXN formats an amount in centavos as a string like "$1,250.50".
// Always two decimals, comma as thousands separator (es-MX).
func FormatMXN(cents int64) string {
	neg := cents < 0
	if neg {
		cents = -cents
	}

	whole := strconv.FormatInt(cents/100, 10)
	frac := cents % 100

	var b strings.Builder
	// Pre-allocate: digits + separators + $ + decimals
	b.Grow(len(whole) + len(whole)/3 + 5)
	if neg {
		b.WriteString("-$")
	} else {
		b.WriteString("$")
	}

	// Insert separators from the left.
	rem := len(whole) % 3
	if rem == 0 {
		rem = 3
	}
	b.WriteString(whole[:rem])
	for i := rem; i < len(whole); i += 3 {
		b.WriteByte(',')
		b.WriteString(whole[i : i+3])
	}
	fmt.Fprintf(&b, ".%02d", frac)

	return b.String()
}

// ParseMoney parses a decimal amount ("65", "72.5", "$1,250.50") into centavos.
// Empty input returns 0. Amounts with more than two decimals or negative amounts are rejected.
func ParseMoney(s string) (int64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, nil
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("invalid amount %q: must not be negative", s)
	}

	cents := d.Shift(2)
	if !cents.Equal(cents.Truncate(0)) {
		return 0, fmt.Errorf("invalid amount %q: at most two decimals allowed", s)
	}
	return cents.IntPart(), nil
}

// MustParseMoney is ParseMoney for literals known to be valid
func MustParseMoney(s string) int64 {
	cents, err := ParseMoney(s)
	if err != nil {
		panic(err)
	}
	return cents
}

// CentsToDecimal renders centavos as a NUMERIC literal ("65.00") for storage
func CentsToDecimal(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}
