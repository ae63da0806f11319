package dto

import "time"

type CreateReturnRequest struct {
	OrderID int64  `json:"order_id" binding:"required,min=1"`
	Reason  string `json:"reason" binding:"required,max=2000"`
}

type ResolveReturnRequest struct {
	Approve *bool  `json:"approve" binding:"required"`
	Note    string `json:"note" binding:"max=2000"`
}

type ReturnResponse struct {
	ID         int64      `json:"id"`
	OrderID    int64      `json:"order_id"`
	CustomerID int64      `json:"customer_id"`
	Reason     string     `json:"reason"`
	Status     string     `json:"status"`
	AdminNote  string     `json:"admin_note"`
	CreatedAt  time.Time  `json:"created_at"`
	ResolvedAt *time.Time `json:"resolved_at"`
}

type ListReturnsResponse struct {
	Items []ReturnResponse `json:"items"`
}
