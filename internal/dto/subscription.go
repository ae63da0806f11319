package dto

import "time"

type CreateSubscriptionRequest struct {
	Platform     string    `json:"platform" binding:"required,max=100"`
	AccountEmail string    `json:"account_email" binding:"required,email"`
	MaxProfiles  int       `json:"max_profiles" binding:"required,min=1,max=20"`
	ExpiresAt    Timestamp `json:"expires_at"`
	Notes        string    `json:"notes" binding:"max=1000"`
}

type RenewSubscriptionRequest struct {
	ExpiresAt Timestamp `json:"expires_at"`
}

type AssignProfileRequest struct {
	CustomerID int64  `json:"customer_id" binding:"required,min=1"`
	Name       string `json:"name" binding:"required,max=60"`
	PIN        string `json:"pin" binding:"omitempty,numeric,max=8"`
}

type ProfileResponse struct {
	ID             int64      `json:"id"`
	SubscriptionID int64      `json:"subscription_id"`
	CustomerID     int64      `json:"customer_id"`
	Name           string     `json:"name"`
	PIN            string     `json:"pin,omitempty"`
	AssignedAt     time.Time  `json:"assigned_at"`
	Platform       string     `json:"platform,omitempty"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
}

type SubscriptionResponse struct {
	ID           int64             `json:"id"`
	Platform     string            `json:"platform"`
	AccountEmail string            `json:"account_email"`
	MaxProfiles  int               `json:"max_profiles"`
	FreeProfiles int               `json:"free_profiles"`
	ExpiresAt    time.Time         `json:"expires_at"`
	Status       string            `json:"status"`
	Notes        string            `json:"notes"`
	Profiles     []ProfileResponse `json:"profiles,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

type ListSubscriptionsResponse struct {
	Items []SubscriptionResponse `json:"items"`
}

type ListProfilesResponse struct {
	Items []ProfileResponse `json:"items"`
}
