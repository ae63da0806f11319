package domain

import "time"

// Message belongs to the support thread of UserID; FromAdmin marks back-office replies.
type Message struct {
	ID        int64
	UserID    int64
	FromAdmin bool
	Body      string
	CreatedAt time.Time
	ReadAt    *time.Time
}
