package domain

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultCurrencyDecimals is the decimal exponent of the settlement currency (USDC)
const DefaultCurrencyDecimals int32 = 6

const (
	// MaxUint256Bits is the width of every on-chain integer argument
	MaxUint256Bits = 256

	// maxIntegerDigits is the decimal width of 2^256-1
	maxIntegerDigits = 78

	// maxCoefficientDigits bounds the significant digits accepted in an amount
	maxCoefficientDigits = 512
)

// ToMinorUnits converts a decimal currency amount such as "10500.00" into
// integer minor units at the given exponent. Digits beyond the exponent are
// truncated toward zero: "1.2345679" at 6 decimals is 1234567.
func ToMinorUnits(amount string, decimals int32) (*big.Int, error) {
	amount = strings.TrimSpace(amount)
	if amount == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidAmount)
	}
	if decimals < 0 {
		return nil, fmt.Errorf("%w: negative exponent %d", ErrInvalidAmount, decimals)
	}

	d, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, amount)
	}

	return DecimalToMinorUnits(d, decimals)
}

// DecimalToMinorUnits converts a decimal amount into minor units, truncating
// toward zero. Amounts whose magnitude does not fit in a uint256 fail with
// ErrInvalidAmount before any large power of ten is built.
func DecimalToMinorUnits(d decimal.Decimal, decimals int32) (*big.Int, error) {
	if decimals < 0 {
		return nil, fmt.Errorf("%w: negative exponent %d", ErrInvalidAmount, decimals)
	}
	if d.IsZero() {
		return new(big.Int), nil
	}

	digits := d.NumDigits()
	if digits > maxCoefficientDigits {
		return nil, fmt.Errorf("%w: %d significant digits", ErrInvalidAmount, digits)
	}

	// Number of digits left of the point after shifting by decimals.
	integerDigits := int64(digits) + int64(d.Exponent()) + int64(decimals)
	if integerDigits <= 0 {
		return new(big.Int), nil
	}
	if integerDigits > maxIntegerDigits {
		return nil, fmt.Errorf("%w: out of range", ErrInvalidAmount)
	}

	v := d.Shift(decimals).Truncate(0).BigInt()
	if v.BitLen() > MaxUint256Bits {
		return nil, fmt.Errorf("%w: out of range", ErrInvalidAmount)
	}
	return v, nil
}

// FromMinorUnits converts minor units back into a decimal amount
func FromMinorUnits(v *big.Int, decimals int32) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(v, -decimals)
}

// FormatMinorUnits renders minor units with a fixed number of places.
// Places below the exponent truncate, they never round up.
func FormatMinorUnits(v *big.Int, decimals int32, places int32) string {
	return FromMinorUnits(v, decimals).Truncate(places).StringFixed(places)
}
