package dto

import "time"

type OrderItemRequest struct {
	ProductID int64 `json:"product_id" binding:"required,min=1"`
	Quantity  int   `json:"quantity" binding:"required,min=1,max=10000"`
}

// CreateOrderRequest is an admin-entered order for a customer.
type CreateOrderRequest struct {
	CustomerID int64              `json:"customer_id" binding:"required,min=1"`
	Items      []OrderItemRequest `json:"items" binding:"required,min=1,max=100,dive"`
	Notes      string             `json:"notes" binding:"max=1000"`
}

type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Note   string `json:"note" binding:"max=1000"`
}

type RecordPaymentRequest struct {
	Amount    int64  `json:"amount" binding:"required,min=1,max=1000000000000"`
	Method    string `json:"method" binding:"required,oneof=cash transfer card qr"`
	Status    string `json:"status" binding:"omitempty,oneof=pending completed"`
	Reference string `json:"reference" binding:"max=200"`
}

type ConfirmPaymentRequest struct {
	Status string `json:"status" binding:"required,oneof=completed failed"`
}

type OrderItemResponse struct {
	ProductID int64         `json:"product_id"`
	Name      string        `json:"name"`
	UnitPrice MoneyResponse `json:"unit_price"`
	Quantity  int           `json:"quantity"`
	LineTotal MoneyResponse `json:"line_total"`
}

type OrderResponse struct {
	ID         int64               `json:"id"`
	Reference  string              `json:"reference"`
	CustomerID int64               `json:"customer_id"`
	Status     string              `json:"status"`
	Total      MoneyResponse       `json:"total"`
	Notes      string              `json:"notes"`
	Items      []OrderItemResponse `json:"items,omitempty"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
}

type PaymentResponse struct {
	ID         int64         `json:"id"`
	OrderID    int64         `json:"order_id"`
	Amount     MoneyResponse `json:"amount"`
	Method     string        `json:"method"`
	Status     string        `json:"status"`
	Reference  string        `json:"reference"`
	RecordedBy *int64        `json:"recorded_by"`
	CreatedAt  time.Time     `json:"created_at"`
}

type StatusChangeResponse struct {
	From      string    `json:"from"`
	To        string    `json:"to"`
	ChangedBy *int64    `json:"changed_by"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"created_at"`
}

type OrderDetailResponse struct {
	OrderResponse
	Paid     MoneyResponse          `json:"paid"`
	Balance  MoneyResponse          `json:"balance"`
	Payments []PaymentResponse      `json:"payments"`
	History  []StatusChangeResponse `json:"history"`
}

type ListOrdersResponse struct {
	Items []OrderResponse `json:"items"`
}

// PaymentResultResponse is returned after recording or confirming a payment.
type PaymentResultResponse struct {
	Order   OrderResponse   `json:"order"`
	Payment PaymentResponse `json:"payment"`
}
