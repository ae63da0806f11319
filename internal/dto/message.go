package dto

import "time"

type PostMessageRequest struct {
	Body string `json:"body" binding:"required,max=4000"`
}

type MessageResponse struct {
	ID        int64      `json:"id"`
	FromAdmin bool       `json:"from_admin"`
	Body      string     `json:"body"`
	CreatedAt time.Time  `json:"created_at"`
	ReadAt    *time.Time `json:"read_at"`
}

type ListMessagesResponse struct {
	Items []MessageResponse `json:"items"`
}
