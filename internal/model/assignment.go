package model

// TaskAssignment links a task to a user working on it. The (task, user)
// pair is unique. The owner flag marks the primary assignee; callers are
// expected to flag the first assignee of a task as owner.
type TaskAssignment struct {
	TaskID  string `json:"task_id" db:"task_id"`
	UserID  string `json:"user_id" db:"user_id"`
	IsOwner bool   `json:"is_owner" db:"is_owner"`
}
