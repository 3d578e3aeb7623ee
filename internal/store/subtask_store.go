package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/eliman/taskdesk/internal/model"
)

// AddSubtask inserts a new subtask for a task. Generates a UUID if the
// ID is empty; new subtasks always start incomplete.
func (s *SQLiteStore) AddSubtask(ctx context.Context, sub model.Subtask) (*model.Subtask, error) {
	if strings.TrimSpace(sub.Title) == "" {
		return nil, fmt.Errorf("subtask title must not be empty")
	}
	if sub.ID == "" {
		sub.ID = uuid.New().String()
	}
	sub.IsCompleted = false
	sub.CompletedAt = nil
	sub.CompletedByID = nil

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO subtasks (id, task_id, title, is_completed, created_at)
		VALUES (?, ?, ?, 0, ?)`,
		sub.ID, sub.TaskID, sub.Title, sub.CreatedAt.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("creating subtask: %w", err)
	}
	return &sub, nil
}

// GetSubtaskByID retrieves a single subtask.
func (s *SQLiteStore) GetSubtaskByID(ctx context.Context, id string) (*model.Subtask, error) {
	var sub model.Subtask
	err := s.db.GetContext(ctx, &sub, "SELECT * FROM subtasks WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("subtask %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting subtask %s: %w", id, err)
	}
	return &sub, nil
}

// GetSubtasks retrieves all subtasks of a task in creation order.
func (s *SQLiteStore) GetSubtasks(ctx context.Context, taskID string) ([]model.Subtask, error) {
	var subs []model.Subtask
	err := s.db.SelectContext(ctx, &subs,
		"SELECT * FROM subtasks WHERE task_id = ? ORDER BY created_at, id",
		taskID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying subtasks for task %s: %w", taskID, err)
	}
	return subs, nil
}

// SetSubtaskCompletion flips a subtask's completion state. Completing
// stamps the time and user; un-completing clears both.
func (s *SQLiteStore) SetSubtaskCompletion(
	ctx context.Context,
	id string,
	completed bool,
	completedByID *string,
	at *time.Time,
) (*model.Subtask, error) {
	if !completed {
		completedByID = nil
		at = nil
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE subtasks SET is_completed = ?, completed_at = ?, completed_by_id = ?
		WHERE id = ?`,
		boolToInt(completed), at, completedByID, id,
	)
	if err != nil {
		return nil, fmt.Errorf("updating subtask %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return nil, fmt.Errorf("subtask %s: %w", id, ErrNotFound)
	}

	return s.GetSubtaskByID(ctx, id)
}

// DeleteSubtask removes a subtask by ID.
func (s *SQLiteStore) DeleteSubtask(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM subtasks WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting subtask %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("subtask %s: %w", id, ErrNotFound)
	}
	return nil
}

// CountSubtasks returns total and completed subtask counts for a task.
func (s *SQLiteStore) CountSubtasks(ctx context.Context, taskID string) (int, int, error) {
	var counts struct {
		Total     int `db:"total"`
		Completed int `db:"completed"`
	}
	err := s.db.GetContext(ctx, &counts, `
		SELECT COUNT(*) AS total, COALESCE(SUM(is_completed), 0) AS completed
		FROM subtasks WHERE task_id = ?`,
		taskID,
	)
	if err != nil {
		return 0, 0, fmt.Errorf("counting subtasks for task %s: %w", taskID, err)
	}
	return counts.Total, counts.Completed, nil
}
