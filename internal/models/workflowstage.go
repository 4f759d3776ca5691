package models

import "time"

const DefaultStageColor = "#3b82f6"

// WorkflowStage is a named, ordered bucket a task occupies. Order values
// form a dense 1..N sequence after any create/delete/reorder.
type WorkflowStage struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Order     int       `json:"order"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
}
