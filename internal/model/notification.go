package model

import "time"

// NotificationType identifies the event that produced a notification.
type NotificationType string

const (
	NotifyTaskAssigned     NotificationType = "TASK_ASSIGNED"
	NotifyStatusChanged    NotificationType = "STATUS_CHANGED"
	NotifyCommentAdded     NotificationType = "COMMENT_ADDED"
	NotifyDueDateNear      NotificationType = "DUE_DATE_NEAR"
	NotifyTaskOverdue      NotificationType = "TASK_OVERDUE"
	NotifySubtaskCompleted NotificationType = "SUBTASK_COMPLETED"
)

// Notification is an in-app alert surfaced to a single recipient about
// activity on a task.
type Notification struct {
	// ID is the unique identifier for this notification.
	ID string `json:"id" db:"id"`

	// UserID is the recipient.
	UserID string `json:"user_id" db:"user_id"`

	// Type identifies the originating event (use Notify* constants).
	Type NotificationType `json:"type" db:"type"`

	// Title is the short headline.
	Title string `json:"title" db:"title"`

	// Message is the human-readable notification text.
	Message string `json:"message" db:"message"`

	// TaskID links the notification to a task, when one applies.
	TaskID string `json:"task_id,omitempty" db:"task_id"`

	// IsRead indicates whether the recipient has seen it.
	IsRead bool `json:"is_read" db:"is_read"`

	// CreatedAt is when the notification was generated.
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
