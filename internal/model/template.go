package model

import "time"

// TaskTemplate is a reusable blueprint for recurring kinds of work.
// Expanding a template produces a task plus one subtask per entry in
// Subtasks.
type TaskTemplate struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	CategoryID  string    `json:"category_id" db:"category_id"`
	Priority    Priority  `json:"priority" db:"priority"`
	Subtasks    []string  `json:"subtasks" db:"-"`
	CreatedByID string    `json:"created_by_id" db:"created_by_id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// RecurrenceFrequency is how often a recurring task definition fires.
type RecurrenceFrequency string

const (
	FrequencyDaily   RecurrenceFrequency = "DAILY"
	FrequencyWeekly  RecurrenceFrequency = "WEEKLY"
	FrequencyMonthly RecurrenceFrequency = "MONTHLY"
	FrequencyYearly  RecurrenceFrequency = "YEARLY"
)

// RecurringTask is a stored definition of work that repeats on a
// schedule. Only the definition is managed here; firing it is left to
// an external scheduler.
type RecurringTask struct {
	ID          string              `json:"id" db:"id"`
	TemplateID  *string             `json:"template_id,omitempty" db:"template_id"`
	Title       string              `json:"title" db:"title"`
	Description string              `json:"description" db:"description"`
	CategoryID  string              `json:"category_id" db:"category_id"`
	ClientID    string              `json:"client_id" db:"client_id"`
	Priority    Priority            `json:"priority" db:"priority"`
	Frequency   RecurrenceFrequency `json:"frequency" db:"frequency"`
	DayOfMonth  *int                `json:"day_of_month,omitempty" db:"day_of_month"`
	DayOfWeek   *int                `json:"day_of_week,omitempty" db:"day_of_week"`
	NextRunDate time.Time           `json:"next_run_date" db:"next_run_date"`
	IsActive    bool                `json:"is_active" db:"is_active"`
	AssigneeIDs []string            `json:"assignee_ids" db:"-"`
	CreatedByID string              `json:"created_by_id" db:"created_by_id"`
	CreatedAt   time.Time           `json:"created_at" db:"created_at"`
}
