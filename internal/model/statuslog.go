package model

import "time"

// TaskStatusLog is one immutable entry in a task's transition history.
// Entries are appended in the same transaction as the status update and
// are never modified afterwards; they disappear only when the parent
// task is deleted.
type TaskStatusLog struct {
	ID          string    `json:"id" db:"id"`
	TaskID      string    `json:"task_id" db:"task_id"`
	OldStatus   Status    `json:"old_status" db:"old_status"`
	NewStatus   Status    `json:"new_status" db:"new_status"`
	ChangedByID string    `json:"changed_by_id" db:"changed_by_id"`
	Note        string    `json:"note,omitempty" db:"note"`
	ChangedAt   time.Time `json:"changed_at" db:"changed_at"`
}
