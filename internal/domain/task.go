package domain

import "time"

type TaskKind string

const (
	TaskSubscriptionExpiring TaskKind = "subscription_expiring"
	TaskPaymentOverdue       TaskKind = "payment_overdue"
	TaskQuoteUnanswered      TaskKind = "quote_unanswered"
	TaskAuctionEnded         TaskKind = "auction_ended"
)

type TaskStatus string

const (
	TaskOpen TaskStatus = "open"
	TaskDone TaskStatus = "done"
)

// Task is an internally generated follow-up reminder. At most one open task
// exists per (Kind, RefID).
type Task struct {
	ID          int64
	Kind        TaskKind
	RefID       int64
	Title       string
	Status      TaskStatus
	DueAt       *time.Time
	CreatedAt   time.Time
	CompletedAt *time.Time
}

type TaskFilter struct {
	Kind   TaskKind
	Status TaskStatus
	Limit  int
	Offset int
}
