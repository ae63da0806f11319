package domain

import "time"

type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionExpired   SubscriptionStatus = "expired"
	SubscriptionCancelled SubscriptionStatus = "cancelled"
)

// Subscription is a streaming-platform account resold profile by profile.
type Subscription struct {
	ID           int64
	Platform     string
	AccountEmail string
	MaxProfiles  int
	ExpiresAt    time.Time
	Status       SubscriptionStatus
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	ProfileCount int
	Profiles     []AccountProfile
}

// AccountProfile is one seat of a subscription assigned to a customer.
type AccountProfile struct {
	ID             int64
	SubscriptionID int64
	CustomerID     int64
	Name           string
	PIN            string
	AssignedAt     time.Time

	// Filled for customer listings.
	Platform  string
	ExpiresAt time.Time
}

// CanAssign reports whether one more profile fits given the assigned count.
func (s Subscription) CanAssign(assigned int, now time.Time) error {
	if s.Status != SubscriptionActive || !now.Before(s.ExpiresAt) {
		return ErrSubscriptionClosed
	}
	if assigned >= s.MaxProfiles {
		return ErrSubscriptionFull
	}
	return nil
}

// FreeProfiles is the number of unassigned seats, never negative.
func (s Subscription) FreeProfiles() int {
	if n := s.MaxProfiles - s.ProfileCount; n > 0 {
		return n
	}
	return 0
}
