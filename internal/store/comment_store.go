package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/eliman/taskdesk/internal/model"
)

// CreateComment inserts a new comment on a task.
func (s *SQLiteStore) CreateComment(ctx context.Context, c model.Comment) (*model.Comment, error) {
	if strings.TrimSpace(c.Content) == "" {
		return nil, fmt.Errorf("comment content must not be empty")
	}
	if c.ID == "" {
		c.ID = uuid.New().String()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO comments (id, task_id, user_id, content, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, NULL)`,
		c.ID, c.TaskID, c.UserID, c.Content, c.CreatedAt.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("creating comment: %w", err)
	}
	return &c, nil
}

// UpdateComment replaces a comment's content and stamps the edit time.
func (s *SQLiteStore) UpdateComment(
	ctx context.Context,
	id, content string,
	at time.Time,
) (*model.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("comment content must not be empty")
	}

	result, err := s.db.ExecContext(ctx,
		"UPDATE comments SET content = ?, updated_at = ? WHERE id = ?",
		content, at.UTC(), id,
	)
	if err != nil {
		return nil, fmt.Errorf("updating comment %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return nil, fmt.Errorf("comment %s: %w", id, ErrNotFound)
	}

	var c model.Comment
	if err := s.db.GetContext(ctx, &c, "SELECT * FROM comments WHERE id = ?", id); err != nil {
		return nil, fmt.Errorf("reading updated comment %s: %w", id, err)
	}
	return &c, nil
}

// DeleteComment removes a comment by ID.
func (s *SQLiteStore) DeleteComment(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM comments WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting comment %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("comment %s: %w", id, ErrNotFound)
	}
	return nil
}

// GetCommentsForTask retrieves a task's comments, oldest first.
func (s *SQLiteStore) GetCommentsForTask(
	ctx context.Context,
	taskID string,
) ([]model.Comment, error) {
	var comments []model.Comment
	err := s.db.SelectContext(ctx, &comments,
		"SELECT * FROM comments WHERE task_id = ? ORDER BY created_at ASC",
		taskID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying comments for task %s: %w", taskID, err)
	}
	return comments, nil
}
