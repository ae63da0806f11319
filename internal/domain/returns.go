package domain

import "time"

type ReturnStatus string

const (
	ReturnRequested ReturnStatus = "requested"
	ReturnApproved  ReturnStatus = "approved"
	ReturnRejected  ReturnStatus = "rejected"
)

type ReturnRequest struct {
	ID         int64
	OrderID    int64
	CustomerID int64
	Reason     string
	Status     ReturnStatus
	AdminNote  string
	CreatedAt  time.Time
	ResolvedAt *time.Time
}

// CanRequestReturn reports whether customerID may ask to return o.
func CanRequestReturn(o Order, customerID int64) error {
	if o.CustomerID != customerID || o.Status != OrderDelivered {
		return ErrReturnNotAllowed
	}
	return nil
}
