package dto

// MoneyResponse is an amount in minor units plus its formatted major-unit string.
type MoneyResponse struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Display  string `json:"display"`
}

type RateResponse struct {
	Currency  string `json:"currency"`
	Rate      string `json:"rate"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

type ListRatesResponse struct {
	Base  string         `json:"base"`
	Items []RateResponse `json:"items"`
}

// SetRateRequest carries the rate as a decimal string, e.g. "0.9215".
type SetRateRequest struct {
	Rate string `json:"rate" binding:"required"`
}

type ConvertResponse struct {
	From MoneyResponse `json:"from"`
	To   MoneyResponse `json:"to"`
}
