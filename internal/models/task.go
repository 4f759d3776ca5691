package models

import "time"

// TaskStatus is derived from the task's workflow stage, never set directly.
type TaskStatus string

const (
	StatusBacklog    TaskStatus = "backlog"
	StatusTodo       TaskStatus = "todo"
	StatusInProgress TaskStatus = "in_progress"
	StatusCompleted  TaskStatus = "completed"
)

type TaskPriority string

const (
	PriorityLow      TaskPriority = "Low"
	PriorityMedium   TaskPriority = "Medium"
	PriorityHigh     TaskPriority = "High"
	PriorityCritical TaskPriority = "Critical"
)

func IsValidPriority(p TaskPriority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// Task represents a board task. Subtasks are owned exclusively by the task
// and have no independent lifecycle.
type Task struct {
	ID          int64        `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Priority    TaskPriority `json:"priority"`
	Status      TaskStatus   `json:"status"`
	CreatorID   int64        `json:"created_by"`
	AssigneeID  int64        `json:"assigned_to"`
	DueDate     *time.Time   `json:"due_date,omitempty"`
	StageID     int64        `json:"workflow_stage"`
	Subtasks    []Subtask    `json:"subtasks"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`

	// joined display fields, filled on read paths
	Creator  *UserRef       `json:"creator,omitempty"`
	Assignee *UserRef       `json:"assignee,omitempty"`
	Stage    *WorkflowStage `json:"stage,omitempty"`
}

type Subtask struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	IsDone    bool      `json:"is_done"`
	CreatedAt time.Time `json:"created_at"`
}

// TaskFilter defines the available parameters for filtering tasks.
// Fields are ANDed; TitleContains is a case-insensitive substring match.
type TaskFilter struct {
	Status        *TaskStatus
	Priority      *TaskPriority
	AssigneeID    *int64
	CreatorID     *int64
	StageID       *int64
	TitleContains *string
}

// TaskPatch is the restricted merge applied by the generic update operation.
// Status and stage are deliberately absent: stage moves go through the
// change-stage operation so the derived status cannot be overwritten.
type TaskPatch struct {
	Title       *string
	Description *string
	Priority    *TaskPriority
	AssigneeID  *int64
	DueDate     *time.Time
	ClearDue    bool
}
