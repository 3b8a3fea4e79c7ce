package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		amount float64
		code   string
		want   string
	}{
		{15000, "IDR", "Rp15.000"},      // whole: no fraction digits
		{1500000, "idr", "Rp1.500.000"}, // case-insensitive code
		{25, "USD", "$25"},
		{10.5, "USD", "$10.50"}, // fractional: always two digits
		{1234.56, "USD", "$1,234.56"},
		{99.9, "MYR", "RM99.90"},
	}

	for _, tt := range tests {
		got := FormatAmount(tt.amount, tt.code)
		assert.Equal(t, tt.want, got, "%v %s", tt.amount, tt.code)
		// Round-trip-stable display: a second call yields the same string.
		assert.Equal(t, got, FormatAmount(tt.amount, tt.code))
	}
}

func TestFormatAmountUnknownCode(t *testing.T) {
	// A valid ISO code without a dedicated symbol keeps the code prefix.
	assert.Equal(t, "JPY 500", FormatAmount(500, "JPY"))

	// Garbage codes degrade to the raw prefix rather than failing.
	assert.Equal(t, "WAT 12", FormatAmount(12, "WAT"))
}
