package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ImportSimulationRequest accepts numbers or decimal strings for every amount.
type ImportSimulationRequest struct {
	ProductID *int64           `json:"product_id"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
	WeightKg  *decimal.Decimal `json:"weight_kg"`
	Quantity  int64            `json:"quantity" binding:"required,min=1,max=10000"`
	Currency  string           `json:"currency" binding:"omitempty,len=3"`

	FreightPerKg  *decimal.Decimal `json:"freight_per_kg"`
	InsuranceRate *decimal.Decimal `json:"insurance_rate"`
	DutyRate      *decimal.Decimal `json:"duty_rate"`
	VATRate       *decimal.Decimal `json:"vat_rate"`
	HandlingFee   *decimal.Decimal `json:"handling_fee"`
}

type ImportRatesResponse struct {
	FreightPerKg  string `json:"freight_per_kg"`
	InsuranceRate string `json:"insurance_rate"`
	DutyRate      string `json:"duty_rate"`
	VATRate       string `json:"vat_rate"`
	HandlingFee   string `json:"handling_fee"`
}

type ImportBreakdownResponse struct {
	Goods     string `json:"goods"`
	Freight   string `json:"freight"`
	Insurance string `json:"insurance"`
	CIF       string `json:"cif"`
	Duty      string `json:"duty"`
	VAT       string `json:"vat"`
	Handling  string `json:"handling"`
	Total     string `json:"total"`
	PerUnit   string `json:"per_unit"`
}

type ImportSimulationResponse struct {
	ID        int64                   `json:"id,omitempty"`
	ProductID *int64                  `json:"product_id,omitempty"`
	Quantity  int64                   `json:"quantity"`
	Currency  string                  `json:"currency"`
	Rates     ImportRatesResponse     `json:"rates"`
	Breakdown ImportBreakdownResponse `json:"breakdown"`
	Converted *MoneyResponse          `json:"converted_total,omitempty"`
	CreatedAt *time.Time              `json:"created_at,omitempty"`
}

type ListImportSimulationsResponse struct {
	Items []ImportSimulationResponse `json:"items"`
}
