package model

import "time"

// Subtask is a checklist entry within a task. Its lifecycle is bound to
// the parent task (cascade delete). Task progress is derived from the
// completed/total ratio of its subtasks.
type Subtask struct {
	ID            string     `json:"id" db:"id"`
	TaskID        string     `json:"task_id" db:"task_id"`
	Title         string     `json:"title" db:"title"`
	IsCompleted   bool       `json:"is_completed" db:"is_completed"`
	CompletedAt   *time.Time `json:"completed_at,omitempty" db:"completed_at"`
	CompletedByID *string    `json:"completed_by_id,omitempty" db:"completed_by_id"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
}
