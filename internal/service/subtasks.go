package service

import (
	"context"
	"math"

	"github.com/eliman/taskdesk/internal/model"
	"github.com/eliman/taskdesk/internal/notify"
)

// AddSubtask creates a checklist entry under a task.
func (s *Service) AddSubtask(ctx context.Context, taskID, title string) (*model.Subtask, error) {
	if _, err := s.store.GetTaskByID(ctx, taskID); err != nil {
		return nil, err
	}

	return s.store.AddSubtask(ctx, model.Subtask{
		TaskID:    taskID,
		Title:     title,
		CreatedAt: s.now().UTC(),
	})
}

// ToggleSubtask flips a subtask's completion state. Completing stamps
// the time and acting user and notifies the task's assignees and
// creator; un-completing clears both stamps.
func (s *Service) ToggleSubtask(
	ctx context.Context,
	actor model.Identity,
	subtaskID string,
) (*model.Subtask, error) {
	sub, err := s.store.GetSubtaskByID(ctx, subtaskID)
	if err != nil {
		return nil, err
	}

	completing := !sub.IsCompleted
	var completedBy *string
	if completing {
		completedBy = &actor.ID
	}
	at := s.now().UTC()

	updated, err := s.store.SetSubtaskCompletion(ctx, subtaskID, completing, completedBy, &at)
	if err != nil {
		return nil, err
	}

	if completing && s.dispatcher != nil {
		task, err := s.store.GetTaskByID(ctx, sub.TaskID)
		if err == nil {
			assigneeIDs, _ := s.store.GetAssigneeIDs(ctx, sub.TaskID)
			s.dispatcher.Dispatch(ctx,
				notify.SubtaskCompleted(*task, sub.Title, assigneeIDs, actor.ID))
		}
	}
	return updated, nil
}

// DeleteSubtask removes a subtask.
func (s *Service) DeleteSubtask(ctx context.Context, id string) error {
	return s.store.DeleteSubtask(ctx, id)
}

// Subtasks lists a task's subtasks in creation order.
func (s *Service) Subtasks(ctx context.Context, taskID string) ([]model.Subtask, error) {
	return s.store.GetSubtasks(ctx, taskID)
}

// Progress derives a task's completion percentage from its subtasks:
// round(100 * completed / total), 0 when the task has no subtasks.
func (s *Service) Progress(ctx context.Context, taskID string) (int, error) {
	total, completed, err := s.store.CountSubtasks(ctx, taskID)
	if err != nil {
		return 0, err
	}
	if total == 0 {
		return 0, nil
	}
	return int(math.Round(100 * float64(completed) / float64(total))), nil
}
