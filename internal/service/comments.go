package service

import (
	"context"

	"github.com/eliman/taskdesk/internal/model"
	"github.com/eliman/taskdesk/internal/notify"
)

// AddComment records a comment on a task and notifies the task's
// assignees and creator, excluding the author.
func (s *Service) AddComment(
	ctx context.Context,
	actor model.Identity,
	taskID, content string,
) (*model.Comment, error) {
	task, err := s.store.GetTaskByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	comment, err := s.store.CreateComment(ctx, model.Comment{
		TaskID:    taskID,
		UserID:    actor.ID,
		Content:   content,
		CreatedAt: s.now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		assigneeIDs, _ := s.store.GetAssigneeIDs(ctx, taskID)
		s.dispatcher.Dispatch(ctx, notify.CommentAdded(*task, assigneeIDs, actor.ID))
	}
	return comment, nil
}

// UpdateComment replaces a comment's content.
func (s *Service) UpdateComment(ctx context.Context, id, content string) (*model.Comment, error) {
	return s.store.UpdateComment(ctx, id, content, s.now().UTC())
}

// DeleteComment removes a comment.
func (s *Service) DeleteComment(ctx context.Context, id string) error {
	return s.store.DeleteComment(ctx, id)
}

// Comments lists a task's comments, oldest first.
func (s *Service) Comments(ctx context.Context, taskID string) ([]model.Comment, error) {
	return s.store.GetCommentsForTask(ctx, taskID)
}
