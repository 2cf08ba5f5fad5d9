package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatMXN(t *testing.T) {
	cases := map[int64]string{
		0:         "$0.00",
		5:         "$0.05",
		18000:     "$180.00",
		4550:      "$45.50",
		125050:    "$1,250.50",
		123456789: "$1,234,567.89",
		-1500:     "-$15.00",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatMXN(in), "FormatMXN(%d)", in)
	}
}

func TestParseMoney(t *testing.T) {
	cases := map[string]int64{
		"":          0,
		"65":        6500,
		"72.5":      7250,
		"72.50":     7250,
		" $1,250.5": 125050,
		"0.01":      1,
	}
	for in, want := range cases {
		got, err := ParseMoney(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, bad := range []string{"abc", "-5", "1.005"} {
		_, err := ParseMoney(bad)
		assert.Error(t, err, bad)
	}
}

func TestCentsToDecimal(t *testing.T) {
	assert.Equal(t, "65.00", CentsToDecimal(6500))
	assert.Equal(t, "0.05", CentsToDecimal(5))
	assert.Equal(t, "1250.50", CentsToDecimal(125050))
}
