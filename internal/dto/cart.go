package dto

type AddCartItemRequest struct {
	ProductID int64 `json:"product_id" binding:"required,min=1"`
	Quantity  int   `json:"quantity" binding:"required,min=1,max=10000"`
}

// SetCartQuantityRequest sets a line quantity; 0 removes the line.
type SetCartQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required,min=0,max=10000"`
}

type CheckoutRequest struct {
	Notes string `json:"notes" binding:"max=1000"`
}

type CartLineResponse struct {
	ProductID int64         `json:"product_id"`
	Kind      string        `json:"kind"`
	Name      string        `json:"name"`
	UnitPrice MoneyResponse `json:"unit_price"`
	Quantity  int           `json:"quantity"`
	LineTotal MoneyResponse `json:"line_total"`
	Available bool          `json:"available"`
}

type CartResponse struct {
	Items []CartLineResponse `json:"items"`
	Total MoneyResponse      `json:"total"`
}
