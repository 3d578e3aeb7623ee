package model

import "time"

// Status is the workflow state of a task. Tasks move through the four
// states below under the transition rules in the perm package.
type Status string

const (
	StatusQueued     Status = "QUEUED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusInReview   Status = "IN_REVIEW"
	StatusDone       Status = "DONE"
)

// AllStatuses lists every valid status in pipeline order.
var AllStatuses = []Status{StatusQueued, StatusInProgress, StatusInReview, StatusDone}

// Valid reports whether s is one of the four defined states.
func (s Status) Valid() bool {
	switch s {
	case StatusQueued, StatusInProgress, StatusInReview, StatusDone:
		return true
	}
	return false
}

// Priority is the urgency level of a task.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

// Valid reports whether p is one of the defined priority levels.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Task is a unit of work tracked through the accounting pipeline.
type Task struct {
	// ID is the unique identifier for this task.
	ID string `json:"id" db:"id"`

	// Title is the human-readable summary of the work.
	Title string `json:"title" db:"title"`

	// Description is the full body text.
	Description string `json:"description" db:"description"`

	// CategoryID references the category this task belongs to.
	CategoryID string `json:"category_id" db:"category_id"`

	// ClientID references the client the work is performed for.
	ClientID string `json:"client_id" db:"client_id"`

	// PeriodMonth and PeriodYear identify the accounting period
	// (month 1-12), when the task is period-bound.
	PeriodMonth *int `json:"period_month,omitempty" db:"period_month"`
	PeriodYear  *int `json:"period_year,omitempty" db:"period_year"`

	// Priority is the urgency level (use Priority* constants).
	Priority Priority `json:"priority" db:"priority"`

	// Status is the current workflow state (use Status* constants).
	// It is mutated only through the transition engine.
	Status Status `json:"status" db:"status"`

	// DueDate is the optional deadline.
	DueDate *time.Time `json:"due_date,omitempty" db:"due_date"`

	// CreatedByID references the user who created the task.
	CreatedByID string `json:"created_by_id" db:"created_by_id"`

	// CreatedAt is when the task was created.
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// StartTime is when work began. Captured opportunistically on the
	// QUEUED -> IN_PROGRESS transition.
	StartTime *time.Time `json:"start_time,omitempty" db:"start_time"`

	// EndTime is when work finished. Captured opportunistically on the
	// IN_PROGRESS -> IN_REVIEW transition. Never earlier than StartTime.
	EndTime *time.Time `json:"end_time,omitempty" db:"end_time"`
}
