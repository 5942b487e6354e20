package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "0", FormatAmount(0))
	assert.Equal(t, "5", FormatAmount(5))
	assert.Equal(t, "999", FormatAmount(999))
	assert.Equal(t, "1,000", FormatAmount(1000))
	assert.Equal(t, "35,000", FormatAmount(35000))
	assert.Equal(t, "1,234,567", FormatAmount(1234567))
	assert.Equal(t, "-1,234,567", FormatAmount(-1234567))
}

func TestParseAmount(t *testing.T) {
	n, err := ParseAmount("1,234,567")
	require.NoError(t, err)
	assert.Equal(t, int64(1234567), n)

	n, err = ParseAmount("5.000")
	require.NoError(t, err)
	assert.Equal(t, int64(5000), n)

	n, err = ParseAmount("  12000 ")
	require.NoError(t, err)
	assert.Equal(t, int64(12000), n)

	_, err = ParseAmount("")
	assert.Error(t, err)

	_, err = ParseAmount("abc")
	assert.Error(t, err)
}

func TestAmountRoundTrip(t *testing.T) {
	for _, n := range []int64{0, 7, 999, 1000, 35000, 1234567, 987654321} {
		got, err := ParseAmount(FormatAmount(n))
		require.NoError(t, err)
		assert.Equal(t, n, got)
	}
}

func TestLineItemSubtotal(t *testing.T) {
	li := LineItem{Price: 10000, Quantity: 2}
	assert.Equal(t, int64(20000), li.Subtotal())
}
