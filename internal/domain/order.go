package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderPending       OrderStatus = "pending"
	OrderPartiallyPaid OrderStatus = "partially_paid"
	OrderPaid          OrderStatus = "paid"
	OrderProcessing    OrderStatus = "processing"
	OrderShipped       OrderStatus = "shipped"
	OrderDelivered     OrderStatus = "delivered"
	OrderCancelled     OrderStatus = "cancelled"
	OrderRefunded      OrderStatus = "refunded"
)

var orderStatuses = map[OrderStatus]bool{
	OrderPending: true, OrderPartiallyPaid: true, OrderPaid: true, OrderProcessing: true,
	OrderShipped: true, OrderDelivered: true, OrderCancelled: true, OrderRefunded: true,
}

func (s OrderStatus) Valid() bool { return orderStatuses[s] }

// Closed orders accept no payments and no further transitions.
func (s OrderStatus) Closed() bool { return s == OrderCancelled || s == OrderRefunded }

// AwaitingPayment reports whether payments still move the order forward.
func (s OrderStatus) AwaitingPayment() bool { return s == OrderPending || s == OrderPartiallyPaid }

// manualTransitions lists the changes an admin may request directly.
// partially_paid and paid are reached only by recording payments.
var manualTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:       {OrderCancelled},
	OrderPartiallyPaid: {OrderCancelled},
	OrderPaid:          {OrderProcessing, OrderCancelled, OrderRefunded},
	OrderProcessing:    {OrderShipped, OrderCancelled, OrderRefunded},
	OrderShipped:       {OrderDelivered},
	OrderDelivered:     {OrderRefunded},
}

// CanTransition reports whether an admin may move an order from one status to another.
func CanTransition(from, to OrderStatus) bool {
	for _, next := range manualTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidateTransition returns ErrInvalidTransition wrapped with both statuses.
func ValidateTransition(from, to OrderStatus) error {
	if !CanTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return nil
}

type Order struct {
	ID         int64
	Reference  uuid.UUID
	CustomerID int64
	Status     OrderStatus
	Total      int64
	Currency   string
	Notes      string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Items []OrderItem
}

type OrderItem struct {
	ID        int64
	OrderID   int64
	ProductID int64
	Name      string
	UnitPrice int64
	Quantity  int
}

func (i OrderItem) Total() int64 { return i.UnitPrice * int64(i.Quantity) }

// CheckItems validates every line and that the order total stays within MaxAmount.
func CheckItems(items []OrderItem) error {
	var total int64
	for _, it := range items {
		line, err := LineTotal(it.UnitPrice, it.Quantity)
		if err != nil {
			return fmt.Errorf("%s: %w", it.Name, err)
		}
		if line > MaxAmount-total {
			return fmt.Errorf("%w: order total", ErrAmountTooLarge)
		}
		total += line
	}
	return nil
}

// OrderTotal sums item totals. Callers validate items with CheckItems first.
func OrderTotal(items []OrderItem) int64 {
	var total int64
	for _, it := range items {
		total += it.Total()
	}
	return total
}

// OrderFilter narrows admin order listings.
type OrderFilter struct {
	Status     OrderStatus
	CustomerID int64
	Limit      int
	Offset     int
}

// StatusChange is one row of an order's status history.
type StatusChange struct {
	ID        int64
	OrderID   int64
	From      OrderStatus
	To        OrderStatus
	ChangedBy *int64
	Note      string
	CreatedAt time.Time
}

// NewOrder builds a pending order with a fresh public reference.
func NewOrder(customerID int64, currency string, items []OrderItem, notes string) Order {
	return Order{
		Reference:  uuid.New(),
		CustomerID: customerID,
		Status:     OrderPending,
		Total:      OrderTotal(items),
		Currency:   currency,
		Notes:      notes,
		Items:      items,
	}
}
