package domain

import (
	"fmt"
	"time"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

func (s PaymentStatus) Valid() bool {
	return s == PaymentPending || s == PaymentCompleted || s == PaymentFailed
}

type PaymentMethod string

const (
	MethodCash     PaymentMethod = "cash"
	MethodTransfer PaymentMethod = "transfer"
	MethodCard     PaymentMethod = "card"
	MethodQR       PaymentMethod = "qr"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodCash, MethodTransfer, MethodCard, MethodQR:
		return true
	}
	return false
}

type Payment struct {
	ID         int64
	OrderID    int64
	Amount     int64
	Method     PaymentMethod
	Status     PaymentStatus
	Reference  string
	RecordedBy *int64
	CreatedAt  time.Time
}

// CheckPayment validates a new payment against the order and the sum of its
// completed payments. Completed payments may never push the sum past the total.
func CheckPayment(o Order, completedSum int64, p Payment) error {
	if o.Status.Closed() {
		return fmt.Errorf("%w: %s", ErrOrderClosed, o.Status)
	}
	if err := CheckAmount(p.Amount); err != nil {
		return err
	}
	if p.Status == PaymentCompleted && p.Amount > o.Total-completedSum {
		return fmt.Errorf("%w: outstanding %d, got %d", ErrOverpayment, o.Total-completedSum, p.Amount)
	}
	return nil
}

// CheckConfirmation validates settling a pending payment as completed or failed.
func CheckConfirmation(o Order, completedSum int64, p Payment, to PaymentStatus) error {
	if p.Status != PaymentPending || (to != PaymentCompleted && to != PaymentFailed) {
		return fmt.Errorf("%w: payment %s -> %s", ErrInvalidTransition, p.Status, to)
	}
	if to == PaymentFailed {
		return nil
	}
	p.Status = to
	return CheckPayment(o, completedSum, p)
}

// StatusAfterPayments returns the order status implied by the completed sum.
// Only pending and partially_paid orders move; every other status is kept.
func StatusAfterPayments(current OrderStatus, completedSum, total int64) OrderStatus {
	if !current.AwaitingPayment() {
		return current
	}
	switch {
	case completedSum >= total && total > 0:
		return OrderPaid
	case completedSum > 0:
		return OrderPartiallyPaid
	default:
		return current
	}
}
