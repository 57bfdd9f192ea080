package linkedin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSalaryDollarRange(t *testing.T) {
	comp := parseSalary("$1,234.50 - $2,000")
	require.NotNil(t, comp)
	assert.Equal(t, 1234.50, comp.MinAmount)
	assert.Equal(t, 2000.00, comp.MaxAmount)
	assert.Equal(t, "USD", comp.Currency)
}

func TestParseSalaryEuroThousandsDot(t *testing.T) {
	comp := parseSalary("€40.000 - €55.000")
	require.NotNil(t, comp)
	assert.Equal(t, 40000.0, comp.MinAmount)
	assert.Equal(t, 55000.0, comp.MaxAmount)
	assert.Equal(t, "€", comp.Currency)
}

func TestParseSalaryCommaDecimal(t *testing.T) {
	comp := parseSalary("€1.234,56 - €2.000,00")
	require.NotNil(t, comp)
	assert.Equal(t, 1234.56, comp.MinAmount)
	assert.Equal(t, 2000.00, comp.MaxAmount)
}

func TestParseSalaryDegradesToNil(t *testing.T) {
	cases := []string{
		"",
		"   ",
		"$90,000",         // no range
		"competitive pay", // no numbers at all
	}
	for _, c := range cases {
		assert.Nil(t, parseSalary(c), "input %q", c)
	}
}

func TestParseSalarySwapsInvertedRange(t *testing.T) {
	comp := parseSalary("$2,000 - $1,000")
	require.NotNil(t, comp)
	assert.LessOrEqual(t, comp.MinAmount, comp.MaxAmount)
}
