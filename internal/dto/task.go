package dto

import "time"

type TaskResponse struct {
	ID          int64      `json:"id"`
	Kind        string     `json:"kind"`
	RefID       int64      `json:"ref_id"`
	Title       string     `json:"title"`
	Status      string     `json:"status"`
	DueAt       *time.Time `json:"due_at"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at"`
}

type ListTasksResponse struct {
	Items []TaskResponse `json:"items"`
}

type TaskCounts struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

// GenerateTasksResponse reports per-rule counts of one generator run.
type GenerateTasksResponse struct {
	Rules map[string]TaskCounts `json:"rules"`
	Total TaskCounts            `json:"total"`
}
