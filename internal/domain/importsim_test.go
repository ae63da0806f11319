package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultRates() ImportRates {
	return ImportRates{
		FreightPerKg:  decimal.RequireFromString("12.50"),
		InsuranceRate: decimal.RequireFromString("0.02"),
		DutyRate:      decimal.RequireFromString("0.10"),
		VATRate:       decimal.RequireFromString("0.13"),
		HandlingFee:   decimal.RequireFromString("5.00"),
	}
}

func TestSimulateImport(t *testing.T) {
	b, err := SimulateImport(ImportInput{
		UnitPrice: decimal.RequireFromString("100"),
		WeightKg:  decimal.RequireFromString("1.5"),
		Quantity:  2,
		Rates:     defaultRates(),
	})
	require.NoError(t, err)

	assert.Equal(t, "200.00", b.Goods.StringFixed(2))
	assert.Equal(t, "37.50", b.Freight.StringFixed(2))
	assert.Equal(t, "4.00", b.Insurance.StringFixed(2))
	assert.Equal(t, "241.50", b.CIF.StringFixed(2))
	assert.Equal(t, "24.15", b.Duty.StringFixed(2))
	assert.Equal(t, "34.53", b.VAT.StringFixed(2))
	assert.Equal(t, "5.00", b.Handling.StringFixed(2))
	assert.Equal(t, "305.18", b.Total.StringFixed(2))
	assert.Equal(t, "152.59", b.PerUnit.StringFixed(2))
}

func TestSimulateImport_InvalidInput(t *testing.T) {
	base := ImportInput{UnitPrice: decimal.NewFromInt(10), WeightKg: decimal.NewFromInt(1), Quantity: 1, Rates: defaultRates()}

	bad := base
	bad.Quantity = 0
	_, err := SimulateImport(bad)
	assert.ErrorIs(t, err, ErrInvalidImport)

	bad = base
	bad.WeightKg = decimal.NewFromInt(-1)
	_, err = SimulateImport(bad)
	assert.ErrorIs(t, err, ErrInvalidImport)

	bad = base
	bad.Rates.DutyRate = decimal.RequireFromString("-0.5")
	_, err = SimulateImport(bad)
	assert.ErrorIs(t, err, ErrInvalidImport)
}
