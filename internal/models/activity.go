package models

import "time"

// Activity action tags.
const (
	ActionTaskCreated    = "TASK_CREATED"
	ActionTaskCreatedNLP = "TASK_CREATED_NLP"
	ActionTaskUpdated    = "TASK_UPDATED"
	ActionTaskDeleted    = "TASK_DELETED"
	ActionStatusChanged  = "STATUS_CHANGED"
	ActionTaskAssigned   = "TASK_ASSIGNED"
	ActionCommentAdded   = "COMMENT_ADDED"
	ActionCommentUpdated = "COMMENT_UPDATED"
	ActionCommentDeleted = "COMMENT_DELETED"
)

// Activity is an append-only audit record. Entries referencing a deleted
// task are retained with a dangling task id.
type Activity struct {
	ID        int64     `json:"id"`
	Action    string    `json:"action"`
	ActorID   int64     `json:"user_id"`
	TaskID    *int64    `json:"task_id,omitempty"`
	Details   string    `json:"details"`
	CreatedAt time.Time `json:"created_at"`

	Actor     *UserRef `json:"actor,omitempty"`
	TaskTitle string   `json:"task_title,omitempty"`
}
