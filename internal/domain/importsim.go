package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ImportRates are the cost parameters of an import simulation. Rates are fractions (0.13 = 13%).
type ImportRates struct {
	FreightPerKg  decimal.Decimal `json:"freight_per_kg"`
	InsuranceRate decimal.Decimal `json:"insurance_rate"`
	DutyRate      decimal.Decimal `json:"duty_rate"`
	VATRate       decimal.Decimal `json:"vat_rate"`
	HandlingFee   decimal.Decimal `json:"handling_fee"`
}

type ImportInput struct {
	UnitPrice decimal.Decimal
	WeightKg  decimal.Decimal
	Quantity  int64
	Rates     ImportRates
}

// ImportBreakdown is the landed cost in base currency, each line rounded to cents.
type ImportBreakdown struct {
	Goods     decimal.Decimal `json:"goods"`
	Freight   decimal.Decimal `json:"freight"`
	Insurance decimal.Decimal `json:"insurance"`
	CIF       decimal.Decimal `json:"cif"`
	Duty      decimal.Decimal `json:"duty"`
	VAT       decimal.Decimal `json:"vat"`
	Handling  decimal.Decimal `json:"handling"`
	Total     decimal.Decimal `json:"total"`
	PerUnit   decimal.Decimal `json:"per_unit"`
}

// ImportSimulation is a stored simulation run by a signed-in user.
type ImportSimulation struct {
	ID        int64
	UserID    int64
	ProductID *int64
	Quantity  int64
	Rates     ImportRates
	Breakdown ImportBreakdown
	CreatedAt time.Time
}

const importScale = 2

// SimulateImport computes goods, freight and insurance into a CIF value, then duty on CIF,
// VAT on CIF plus duty, and a flat handling fee.
func SimulateImport(in ImportInput) (ImportBreakdown, error) {
	if in.Quantity <= 0 || in.UnitPrice.IsNegative() || in.WeightKg.IsNegative() {
		return ImportBreakdown{}, ErrInvalidImport
	}
	r := in.Rates
	if r.FreightPerKg.IsNegative() || r.InsuranceRate.IsNegative() || r.DutyRate.IsNegative() ||
		r.VATRate.IsNegative() || r.HandlingFee.IsNegative() {
		return ImportBreakdown{}, ErrInvalidImport
	}
	qty := decimal.NewFromInt(in.Quantity)

	var b ImportBreakdown
	b.Goods = in.UnitPrice.Mul(qty).Round(importScale)
	b.Freight = r.FreightPerKg.Mul(in.WeightKg).Mul(qty).Round(importScale)
	b.Insurance = b.Goods.Mul(r.InsuranceRate).Round(importScale)
	b.CIF = b.Goods.Add(b.Freight).Add(b.Insurance)
	b.Duty = b.CIF.Mul(r.DutyRate).Round(importScale)
	b.VAT = b.CIF.Add(b.Duty).Mul(r.VATRate).Round(importScale)
	b.Handling = r.HandlingFee.Round(importScale)
	b.Total = b.CIF.Add(b.Duty).Add(b.VAT).Add(b.Handling)
	b.PerUnit = b.Total.Div(qty).Round(importScale)
	return b, nil
}
