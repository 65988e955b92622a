package schoolwork

import "time"

type CreateRequest struct {
	Title       string    `json:"title" binding:"required" example:"Titration write-up"`
	Subject     string    `json:"subject" example:"Chemistry"`
	Description string    `json:"description"`
	Due         time.Time `json:"due" binding:"required" example:"2026-10-20T09:00:00Z"`
}

type UpdateRequest struct {
	Completed *bool `json:"completed" binding:"required"`
}

type Item struct {
	ID          int        `json:"schoolwork_id"`
	Title       string     `json:"title"`
	Subject     string     `json:"subject"`
	Description string     `json:"description,omitempty"`
	Due         time.Time  `json:"due"`
	CompletedAt *time.Time `json:"completed_at"`
}

// Overview is a student's schoolwork split by urgency.
type Overview struct {
	Overdue         []Item  `json:"overdue"`
	Today           []Item  `json:"today"`
	ThisWeek        []Item  `json:"this_week"`
	Later           []Item  `json:"later"`
	Completed       []Item  `json:"completed"`
	CompletionRatio float64 `json:"completion_ratio"`
}
