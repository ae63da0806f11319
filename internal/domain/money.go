package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// Upper bounds for stored amounts (minor units) and line quantities. Any order
// total built from values within them fits in an int64.
const (
	MaxAmount   int64 = 1_000_000_000_000
	MaxQuantity       = 10_000
)

// CheckAmount rejects non-positive amounts and amounts above MaxAmount.
func CheckAmount(amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if amount > MaxAmount {
		return fmt.Errorf("%w: %d", ErrAmountTooLarge, amount)
	}
	return nil
}

// LineTotal multiplies a unit price by a quantity without overflowing.
func LineTotal(unitPrice int64, qty int) (int64, error) {
	if qty <= 0 || qty > MaxQuantity {
		return 0, fmt.Errorf("%w: %d", ErrInvalidQuantity, qty)
	}
	if unitPrice < 0 {
		return 0, ErrInvalidAmount
	}
	if unitPrice > MaxAmount/int64(qty) {
		return 0, fmt.Errorf("%w: %d x %d", ErrAmountTooLarge, unitPrice, qty)
	}
	return unitPrice * int64(qty), nil
}

// ExchangeRate is the number of Currency units per one unit of the base currency.
type ExchangeRate struct {
	Currency  string
	Rate      decimal.Decimal
	UpdatedAt time.Time
}

// Money is an amount in minor units of Currency.
type Money struct {
	Amount   int64
	Currency string
}

// NormalizeCurrency validates an ISO 4217 code and returns it upper-cased.
func NormalizeCurrency(code string) (string, error) {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return "", ErrUnknownCurrency
	}
	return unit.String(), nil
}

// MinorUnits returns the number of decimal places used by code (2 for USD, 0 for JPY).
func MinorUnits(code string) (int32, error) {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return 0, ErrUnknownCurrency
	}
	scale, _ := currency.Standard.Rounding(unit)
	return int32(scale), nil
}

// ToMajor turns minor units into a decimal amount, e.g. 1250 USD -> 12.50.
func ToMajor(amount int64, code string) (decimal.Decimal, error) {
	scale, err := MinorUnits(code)
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.New(amount, -scale), nil
}

// ToMinor rounds a decimal amount half away from zero to the minor units of code.
func ToMinor(amount decimal.Decimal, code string) (int64, error) {
	scale, err := MinorUnits(code)
	if err != nil {
		return 0, err
	}
	return amount.Round(scale).Shift(scale).IntPart(), nil
}

// Convert applies rate to an amount in base currency and returns minor units of target.
func Convert(amount int64, base string, rate ExchangeRate) (Money, error) {
	if rate.Currency == base {
		return Money{Amount: amount, Currency: base}, nil
	}
	if !rate.Rate.IsPositive() {
		return Money{}, ErrUnknownCurrency
	}
	major, err := ToMajor(amount, base)
	if err != nil {
		return Money{}, err
	}
	out, err := ToMinor(major.Mul(rate.Rate), rate.Currency)
	if err != nil {
		return Money{}, err
	}
	return Money{Amount: out, Currency: rate.Currency}, nil
}

// Format renders m with the currency's decimal places, e.g. "12.50".
func (m Money) Format() string {
	major, err := ToMajor(m.Amount, m.Currency)
	if err != nil {
		return decimal.NewFromInt(m.Amount).String()
	}
	scale, _ := MinorUnits(m.Currency)
	return major.StringFixed(scale)
}
