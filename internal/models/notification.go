package models

import "time"

// Notification content is immutable; only IsRead is ever flipped.
type Notification struct {
	ID          int64     `json:"id"`
	RecipientID int64     `json:"user_id"`
	Message     string    `json:"message"`
	TaskID      *int64    `json:"task_id,omitempty"`
	IsRead      bool      `json:"is_read"`
	CreatedAt   time.Time `json:"created_at"`
}
