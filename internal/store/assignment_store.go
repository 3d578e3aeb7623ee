package store

import (
	"context"
	"fmt"

	"github.com/eliman/taskdesk/internal/model"
)

// AddAssignment creates a task-user pairing. A repeated (task, user)
// pair fails with ErrDuplicate.
func (s *SQLiteStore) AddAssignment(ctx context.Context, a model.TaskAssignment) error {
	result, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO task_assignments (task_id, user_id, is_owner)
		VALUES (?, ?, ?)`,
		a.TaskID, a.UserID, boolToInt(a.IsOwner),
	)
	if err != nil {
		return fmt.Errorf("assigning task %s to user %s: %w", a.TaskID, a.UserID, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("task %s already assigned to user %s: %w",
			a.TaskID, a.UserID, ErrDuplicate)
	}
	return nil
}

// RemoveAssignment deletes the pairing. Removing a pairing that does
// not exist is not an error.
func (s *SQLiteStore) RemoveAssignment(ctx context.Context, taskID, userID string) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM task_assignments WHERE task_id = ? AND user_id = ?",
		taskID, userID,
	)
	if err != nil {
		return fmt.Errorf("unassigning task %s from user %s: %w", taskID, userID, err)
	}
	return nil
}

// GetAssignments retrieves all assignments for a task, owner first.
func (s *SQLiteStore) GetAssignments(
	ctx context.Context,
	taskID string,
) ([]model.TaskAssignment, error) {
	var assignments []model.TaskAssignment
	err := s.db.SelectContext(ctx, &assignments, `
		SELECT task_id, user_id, is_owner FROM task_assignments
		WHERE task_id = ? ORDER BY is_owner DESC, user_id`,
		taskID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying assignments for task %s: %w", taskID, err)
	}
	return assignments, nil
}

// GetAssigneeIDs retrieves the user IDs assigned to a task.
func (s *SQLiteStore) GetAssigneeIDs(ctx context.Context, taskID string) ([]string, error) {
	var ids []string
	err := s.db.SelectContext(ctx, &ids,
		"SELECT user_id FROM task_assignments WHERE task_id = ? ORDER BY user_id",
		taskID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying assignees for task %s: %w", taskID, err)
	}
	return ids, nil
}

// GetTaskIDsForUser retrieves the task IDs a user is assigned to.
func (s *SQLiteStore) GetTaskIDsForUser(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	err := s.db.SelectContext(ctx, &ids,
		"SELECT task_id FROM task_assignments WHERE user_id = ? ORDER BY task_id",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying tasks for user %s: %w", userID, err)
	}
	return ids, nil
}
