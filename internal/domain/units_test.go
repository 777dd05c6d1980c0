package domain

import (
	"math/big"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToMinorUnits(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		decimals int32
		want     string
		wantErr  bool
	}{
		{name: "whole price", amount: "10500", decimals: 6, want: "10500000000"},
		{name: "two places", amount: "105.00", decimals: 6, want: "105000000"},
		{name: "exact at exponent", amount: "1.234567", decimals: 6, want: "1234567"},
		{name: "excess precision truncates", amount: "1.2345679", decimals: 6, want: "1234567"},
		{name: "below one minor unit", amount: "0.0000009", decimals: 6, want: "0"},
		{name: "surrounding spaces", amount: " 42.5 ", decimals: 6, want: "42500000"},
		{name: "zero exponent", amount: "7.9", decimals: 0, want: "7"},
		{name: "eighteen decimals", amount: "0.000000000000000001", decimals: 18, want: "1"},
		{name: "negative passes conversion", amount: "-2.5", decimals: 6, want: "-2500000"},
		{name: "empty", amount: "", decimals: 6, wantErr: true},
		{name: "not a number", amount: "ten", decimals: 6, wantErr: true},
		{name: "two dots", amount: "1.2.3", decimals: 6, wantErr: true},
		{name: "negative exponent", amount: "1", decimals: -1, wantErr: true},
		{name: "scientific notation", amount: "1.05e4", decimals: 6, want: "10500000000"},
		{name: "largest uint256", amount: "115792089237316195423570985008687907853269984665640564039457.584007913129639935", decimals: 18, want: "115792089237316195423570985008687907853269984665640564039457584007913129639935"},
		{name: "one past uint256", amount: "115792089237316195423570985008687907853269984665640564039457.584007913129639936", decimals: 18, wantErr: true},
		{name: "above uint256 digits", amount: "1e80", decimals: 6, wantErr: true},
		{name: "huge exponent", amount: "1e50000000", decimals: 6, wantErr: true},
		{name: "tiny exponent truncates to zero", amount: "1e-50000000", decimals: 6, want: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToMinorUnits(tt.amount, tt.decimals)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidAmount)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestFormatMinorUnits(t *testing.T) {
	assert.Equal(t, "105.00", FormatMinorUnits(big.NewInt(105000000), 6, 2))
	assert.Equal(t, "1.23", FormatMinorUnits(big.NewInt(1239999), 6, 2))
	assert.Equal(t, "0.000001", FormatMinorUnits(big.NewInt(1), 6, 6))
	assert.Equal(t, "0.00", FormatMinorUnits(nil, 6, 2))
}

func TestMinorUnitsRoundTrip(t *testing.T) {
	for _, amount := range []string{"0.01", "105.00", "10500.00", "999999.99"} {
		v, err := ToMinorUnits(amount, DefaultCurrencyDecimals)
		require.NoError(t, err)
		assert.Equal(t, amount, FormatMinorUnits(v, DefaultCurrencyDecimals, 2), amount)
	}
}

func TestDecimalToMinorUnits_Bounds(t *testing.T) {
	max := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), MaxUint256Bits), big.NewInt(1))

	got, err := DecimalToMinorUnits(decimal.NewFromBigInt(max, 0), 0)
	require.NoError(t, err)
	assert.Equal(t, max, got)

	_, err = DecimalToMinorUnits(decimal.NewFromBigInt(new(big.Int).Add(max, big.NewInt(1)), 0), 0)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	got, err = DecimalToMinorUnits(decimal.Zero, 6)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Sign())
}
