package dto

import "time"

type CreateQuoteRequest struct {
	ProductID int64  `json:"product_id" binding:"required,min=1"`
	Quantity  int    `json:"quantity" binding:"required,min=1,max=10000"`
	Message   string `json:"message" binding:"required,max=4000"`
}

type QuoteMessageRequest struct {
	Body string `json:"body" binding:"required,max=4000"`
}

type OfferQuoteRequest struct {
	UnitPrice int64     `json:"unit_price" binding:"required,min=1,max=1000000000000"`
	ExpiresAt Timestamp `json:"expires_at"`
}

type QuoteMessageResponse struct {
	ID        int64     `json:"id"`
	AuthorID  int64     `json:"author_id"`
	FromAdmin bool      `json:"from_admin"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

type QuoteResponse struct {
	ID               int64                  `json:"id"`
	CustomerID       int64                  `json:"customer_id"`
	ProductID        int64                  `json:"product_id"`
	ProductName      string                 `json:"product_name"`
	Quantity         int                    `json:"quantity"`
	Status           string                 `json:"status"`
	OfferedUnitPrice *MoneyResponse         `json:"offered_unit_price,omitempty"`
	OfferTotal       *MoneyResponse         `json:"offer_total,omitempty"`
	OfferExpiresAt   *time.Time             `json:"offer_expires_at,omitempty"`
	OrderID          *int64                 `json:"order_id,omitempty"`
	Messages         []QuoteMessageResponse `json:"messages,omitempty"`
	CreatedAt        time.Time              `json:"created_at"`
	UpdatedAt        time.Time              `json:"updated_at"`
}

type ListQuotesResponse struct {
	Items []QuoteResponse `json:"items"`
}

type AcceptQuoteResponse struct {
	Quote QuoteResponse `json:"quote"`
	Order OrderResponse `json:"order"`
}
