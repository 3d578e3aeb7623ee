package store

import (
	"context"
	"errors"
	"time"

	"github.com/eliman/taskdesk/internal/model"
)

// Typed failures the persistence layer reports. Callers match them with
// errors.Is; anything else is a StoreError-class failure.
var (
	// ErrNotFound means the referenced record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict means an atomic update lost a race: the task's status
	// changed between the caller's read and the commit.
	ErrConflict = errors.New("conflict: task status changed concurrently")

	// ErrDuplicate means a uniqueness constraint was violated
	// (e.g. a repeated (task, user) assignment).
	ErrDuplicate = errors.New("duplicate record")
)

// TaskFilter controls filtering, sorting, and pagination for task queries.
type TaskFilter struct {
	Status       *model.Status
	Priority     *model.Priority
	CategoryID   *string
	ClientID     *string
	CreatedByID  *string
	AssignedToID *string // only tasks the given user is assigned to
	PeriodMonth  *int
	PeriodYear   *int
	Query        *string // search title + description
	SortBy       string  // "created_at", "due_date", "priority", "status", "title"
	SortDesc     bool
	Limit        int
	Offset       int
}

// Transition is the atomic status-change request applied by
// ApplyTransition. From is the status the caller validated against; the
// update commits only if the row still carries it.
type Transition struct {
	TaskID    string
	From      model.Status
	To        model.Status
	StartTime *time.Time // persisted only when non-nil (QUEUED -> IN_PROGRESS capture)
	EndTime   *time.Time // persisted only when non-nil (IN_PROGRESS -> IN_REVIEW capture)
}

// Store defines the persistence interface for the workflow tracker.
type Store interface {
	// === Users ===

	CreateUser(ctx context.Context, u model.User) error
	UpdateUser(ctx context.Context, u model.User) error
	DeleteUser(ctx context.Context, id string) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	GetUsers(ctx context.Context) ([]model.User, error)

	// === Categories and clients ===

	CreateCategory(ctx context.Context, c model.Category) error
	UpdateCategory(ctx context.Context, c model.Category) error
	DeleteCategory(ctx context.Context, id string) error
	GetCategories(ctx context.Context) ([]model.Category, error)
	CreateClient(ctx context.Context, c model.Client) error
	UpdateClient(ctx context.Context, c model.Client) error
	DeleteClient(ctx context.Context, id string) error
	GetClients(ctx context.Context) ([]model.Client, error)

	// === Tasks ===

	// CreateTask inserts the task together with its initial assignments
	// and subtask titles in one transaction.
	CreateTask(ctx context.Context, t model.Task, assignments []model.TaskAssignment, subtaskTitles []string) (*model.Task, error)
	UpdateTaskFields(ctx context.Context, t model.Task) error
	DeleteTask(ctx context.Context, id string) error
	GetTaskByID(ctx context.Context, id string) (*model.Task, error)
	GetTasks(ctx context.Context, filter TaskFilter) ([]model.Task, error)

	// ApplyTransition updates the task's status and appends the log
	// entry atomically. It fails with ErrConflict if the task's status
	// no longer equals tr.From, and ErrNotFound if the task is gone.
	ApplyTransition(ctx context.Context, tr Transition, entry model.TaskStatusLog) (*model.Task, error)

	// === Status logs ===

	GetLogsForTask(ctx context.Context, taskID string) ([]model.TaskStatusLog, error)
	GetStatusLogs(ctx context.Context) ([]model.TaskStatusLog, error)

	// === Assignments ===

	AddAssignment(ctx context.Context, a model.TaskAssignment) error
	RemoveAssignment(ctx context.Context, taskID, userID string) error
	GetAssignments(ctx context.Context, taskID string) ([]model.TaskAssignment, error)
	GetAssigneeIDs(ctx context.Context, taskID string) ([]string, error)
	GetTaskIDsForUser(ctx context.Context, userID string) ([]string, error)

	// === Subtasks ===

	AddSubtask(ctx context.Context, s model.Subtask) (*model.Subtask, error)
	GetSubtaskByID(ctx context.Context, id string) (*model.Subtask, error)
	GetSubtasks(ctx context.Context, taskID string) ([]model.Subtask, error)
	SetSubtaskCompletion(ctx context.Context, id string, completed bool, completedByID *string, at *time.Time) (*model.Subtask, error)
	DeleteSubtask(ctx context.Context, id string) error
	CountSubtasks(ctx context.Context, taskID string) (total, completed int, err error)

	// === Notifications ===

	CreateNotification(ctx context.Context, n model.Notification) error
	GetNotificationsForUser(ctx context.Context, userID string) ([]model.Notification, error)
	CountUnreadNotifications(ctx context.Context, userID string) (int, error)
	MarkNotificationRead(ctx context.Context, id, userID string) error
	MarkAllNotificationsRead(ctx context.Context, userID string) error
	DeleteNotification(ctx context.Context, id, userID string) error

	// === Comments ===

	CreateComment(ctx context.Context, c model.Comment) (*model.Comment, error)
	UpdateComment(ctx context.Context, id, content string, at time.Time) (*model.Comment, error)
	DeleteComment(ctx context.Context, id string) error
	GetCommentsForTask(ctx context.Context, taskID string) ([]model.Comment, error)

	// === Templates and recurring tasks ===

	CreateTemplate(ctx context.Context, t model.TaskTemplate) error
	UpdateTemplate(ctx context.Context, t model.TaskTemplate) error
	DeleteTemplate(ctx context.Context, id string) error
	GetTemplateByID(ctx context.Context, id string) (*model.TaskTemplate, error)
	GetTemplates(ctx context.Context) ([]model.TaskTemplate, error)

	CreateRecurringTask(ctx context.Context, r model.RecurringTask) error
	UpdateRecurringTask(ctx context.Context, r model.RecurringTask) error
	DeleteRecurringTask(ctx context.Context, id string) error
	GetRecurringTasks(ctx context.Context) ([]model.RecurringTask, error)
}
