package store

import (
	"context"
	"fmt"

	"github.com/eliman/taskdesk/internal/model"
)

// GetLogsForTask retrieves the transition history of one task, oldest
// first.
func (s *SQLiteStore) GetLogsForTask(
	ctx context.Context,
	taskID string,
) ([]model.TaskStatusLog, error) {
	var logs []model.TaskStatusLog
	err := s.db.SelectContext(ctx, &logs,
		"SELECT * FROM task_status_logs WHERE task_id = ? ORDER BY changed_at ASC",
		taskID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying logs for task %s: %w", taskID, err)
	}
	return logs, nil
}

// GetStatusLogs retrieves all transition history, newest first.
func (s *SQLiteStore) GetStatusLogs(ctx context.Context) ([]model.TaskStatusLog, error) {
	var logs []model.TaskStatusLog
	err := s.db.SelectContext(ctx, &logs,
		"SELECT * FROM task_status_logs ORDER BY changed_at DESC",
	)
	if err != nil {
		return nil, fmt.Errorf("querying status logs: %w", err)
	}
	return logs, nil
}
