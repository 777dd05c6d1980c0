package render

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		name     string
		value    *big.Int
		decimals int32
		want     string
	}{
		{"nil", nil, 6, "-"},
		{"whole", big.NewInt(10_500_000_000), 6, "10,500.00"},
		{"cents truncate", big.NewInt(1_999_999), 6, "1.99"},
		{"zero", big.NewInt(0), 6, "0.00"},
		{"negative", big.NewInt(-2_500_000), 6, "-2.50"},
		{"no decimals", big.NewInt(1234567), 0, "1,234,567.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatAmount(tt.value, tt.decimals))
		})
	}
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Rejected By User", Title("REJECTED_BY_USER"))
	assert.Equal(t, "Confirmed", Title("CONFIRMED"))
}

func TestStructured(t *testing.T) {
	v := map[string]int{"lots": 5}

	var buf bytes.Buffer
	handled, err := Structured(&buf, "json", v)
	require.NoError(t, err)
	assert.True(t, handled)
	assert.JSONEq(t, `{"lots":5}`, buf.String())

	buf.Reset()
	handled, err = Structured(&buf, "yaml", v)
	require.NoError(t, err)
	assert.True(t, handled)
	assert.Equal(t, "lots: 5\n", buf.String())

	handled, err = Structured(&buf, "text", v)
	require.NoError(t, err)
	assert.False(t, handled)

	_, err = Structured(&buf, "xml", v)
	assert.Error(t, err)
}
