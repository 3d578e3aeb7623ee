package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/eliman/taskdesk/internal/model"
)

// CreateTask inserts a new task together with its initial assignments
// and subtask titles in a single transaction. Generates a UUID if the
// task ID is empty. The task always starts in QUEUED.
func (s *SQLiteStore) CreateTask(
	ctx context.Context,
	t model.Task,
	assignments []model.TaskAssignment,
	subtaskTitles []string,
) (*model.Task, error) {
	if strings.TrimSpace(t.Title) == "" {
		return nil, fmt.Errorf("task title must not be empty")
	}
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	t.Status = model.StatusQueued
	if !t.Priority.Valid() {
		t.Priority = model.PriorityMedium
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO tasks (
			id, title, description, category_id, client_id,
			period_month, period_year, priority, status,
			due_date, created_by_id, created_at, start_time, end_time
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NULL, NULL)`,
		t.ID, t.Title, t.Description, t.CategoryID, t.ClientID,
		t.PeriodMonth, t.PeriodYear, t.Priority, t.Status,
		t.DueDate, t.CreatedByID, t.CreatedAt.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("creating task: %w", err)
	}

	for _, a := range assignments {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO task_assignments (task_id, user_id, is_owner)
			VALUES (?, ?, ?)`,
			t.ID, a.UserID, boolToInt(a.IsOwner),
		)
		if err != nil {
			return nil, fmt.Errorf("assigning task %s to %s: %w", t.ID, a.UserID, err)
		}
	}

	for _, title := range subtaskTitles {
		if strings.TrimSpace(title) == "" {
			continue
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO subtasks (id, task_id, title, is_completed, created_at)
			VALUES (?, ?, ?, 0, ?)`,
			uuid.New().String(), t.ID, title, t.CreatedAt.UTC(),
		)
		if err != nil {
			return nil, fmt.Errorf("creating subtask for task %s: %w", t.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing task creation: %w", err)
	}
	return &t, nil
}

// UpdateTaskFields updates a task's metadata. Status and work
// timestamps are deliberately excluded; those change only through
// ApplyTransition.
func (s *SQLiteStore) UpdateTaskFields(ctx context.Context, t model.Task) error {
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("task title must not be empty")
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE tasks SET
			title = ?, description = ?, category_id = ?, client_id = ?,
			period_month = ?, period_year = ?, priority = ?, due_date = ?
		WHERE id = ?`,
		t.Title, t.Description, t.CategoryID, t.ClientID,
		t.PeriodMonth, t.PeriodYear, t.Priority, t.DueDate,
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating task %s: %w", t.ID, err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("task %s: %w", t.ID, ErrNotFound)
	}
	return nil
}

// DeleteTask removes a task by ID. Assignments, status logs, subtasks,
// and comments cascade with it.
func (s *SQLiteStore) DeleteTask(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting task %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("task %s: %w", id, ErrNotFound)
	}
	return nil
}

// GetTaskByID retrieves a single task by its ID.
func (s *SQLiteStore) GetTaskByID(ctx context.Context, id string) (*model.Task, error) {
	var t model.Task
	err := s.db.GetContext(ctx, &t, "SELECT * FROM tasks WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("task %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting task %s: %w", id, err)
	}
	return &t, nil
}

// GetTasks retrieves tasks matching the provided filter options.
func (s *SQLiteStore) GetTasks(ctx context.Context, filter TaskFilter) ([]model.Task, error) {
	var conditions []string
	var args []interface{}

	if filter.Status != nil {
		conditions = append(conditions, "status = ?")
		args = append(args, *filter.Status)
	}
	if filter.Priority != nil {
		conditions = append(conditions, "priority = ?")
		args = append(args, *filter.Priority)
	}
	if filter.CategoryID != nil {
		conditions = append(conditions, "category_id = ?")
		args = append(args, *filter.CategoryID)
	}
	if filter.ClientID != nil {
		conditions = append(conditions, "client_id = ?")
		args = append(args, *filter.ClientID)
	}
	if filter.CreatedByID != nil {
		conditions = append(conditions, "created_by_id = ?")
		args = append(args, *filter.CreatedByID)
	}
	if filter.AssignedToID != nil {
		conditions = append(conditions,
			"id IN (SELECT task_id FROM task_assignments WHERE user_id = ?)")
		args = append(args, *filter.AssignedToID)
	}
	if filter.PeriodMonth != nil {
		conditions = append(conditions, "period_month = ?")
		args = append(args, *filter.PeriodMonth)
	}
	if filter.PeriodYear != nil {
		conditions = append(conditions, "period_year = ?")
		args = append(args, *filter.PeriodYear)
	}
	if filter.Query != nil && *filter.Query != "" {
		conditions = append(conditions, "(title LIKE ? OR description LIKE ?)")
		q := "%" + *filter.Query + "%"
		args = append(args, q, q)
	}

	query := "SELECT * FROM tasks"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	sortBy := "created_at"
	if filter.SortBy != "" {
		allowedSorts := map[string]bool{
			"title":      true,
			"status":     true,
			"priority":   true,
			"due_date":   true,
			"created_at": true,
		}
		if allowedSorts[filter.SortBy] {
			sortBy = filter.SortBy
		}
	}

	direction := "ASC"
	if filter.SortDesc {
		direction = "DESC"
	}
	query += fmt.Sprintf(" ORDER BY %s %s", sortBy, direction)

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", filter.Offset)
	}

	var tasks []model.Task
	if err := s.db.SelectContext(ctx, &tasks, query, args...); err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}
	return tasks, nil
}

// ApplyTransition commits a status change and its log entry as one
// transaction. The UPDATE is guarded by the expected current status, so
// a concurrent transition that got there first makes this one fail with
// ErrConflict instead of overwriting it. Work timestamps are written
// only when supplied.
func (s *SQLiteStore) ApplyTransition(
	ctx context.Context,
	tr Transition,
	entry model.TaskStatusLog,
) (*model.Task, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		UPDATE tasks SET
			status = ?,
			start_time = COALESCE(?, start_time),
			end_time = COALESCE(?, end_time)
		WHERE id = ? AND status = ?`,
		tr.To, tr.StartTime, tr.EndTime, tr.TaskID, tr.From,
	)
	if err != nil {
		return nil, fmt.Errorf("updating task %s status: %w", tr.TaskID, err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		// Either the task is gone or its status moved out from under us.
		var current model.Status
		err := tx.GetContext(ctx, &current, "SELECT status FROM tasks WHERE id = ?", tr.TaskID)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("task %s: %w", tr.TaskID, ErrNotFound)
		}
		if err != nil {
			return nil, fmt.Errorf("re-reading task %s: %w", tr.TaskID, err)
		}
		return nil, fmt.Errorf("task %s is %s, expected %s: %w",
			tr.TaskID, current, tr.From, ErrConflict)
	}

	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO task_status_logs (
			id, task_id, old_status, new_status, changed_by_id, note, changed_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.TaskID, entry.OldStatus, entry.NewStatus,
		entry.ChangedByID, entry.Note, entry.ChangedAt.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("appending status log for task %s: %w", tr.TaskID, err)
	}

	var updated model.Task
	if err := tx.GetContext(ctx, &updated, "SELECT * FROM tasks WHERE id = ?", tr.TaskID); err != nil {
		return nil, fmt.Errorf("reading updated task %s: %w", tr.TaskID, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transition for task %s: %w", tr.TaskID, err)
	}
	return &updated, nil
}
