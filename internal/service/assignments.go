package service

import (
	"context"

	"github.com/eliman/taskdesk/internal/model"
	"github.com/eliman/taskdesk/internal/notify"
)

// Assign links a user to a task and notifies them. The registry
// accepts whatever owner flag the caller passes; flagging the first
// assignee as owner is the caller's policy.
func (s *Service) Assign(
	ctx context.Context,
	actor model.Identity,
	taskID, userID string,
	isOwner bool,
) error {
	task, err := s.store.GetTaskByID(ctx, taskID)
	if err != nil {
		return err
	}

	err = s.store.AddAssignment(ctx, model.TaskAssignment{
		TaskID:  taskID,
		UserID:  userID,
		IsOwner: isOwner,
	})
	if err != nil {
		return err
	}

	if s.dispatcher != nil {
		s.dispatcher.Dispatch(ctx, notify.TaskAssigned(*task, []string{userID}, actor.ID))
	}
	return nil
}

// Unassign removes the task-user pairing. Removing a pairing that does
// not exist succeeds quietly.
func (s *Service) Unassign(ctx context.Context, taskID, userID string) error {
	return s.store.RemoveAssignment(ctx, taskID, userID)
}

// Assignees returns the users assigned to a task.
func (s *Service) Assignees(ctx context.Context, taskID string) ([]model.User, error) {
	ids, err := s.store.GetAssigneeIDs(ctx, taskID)
	if err != nil {
		return nil, err
	}

	users := make([]model.User, 0, len(ids))
	for _, id := range ids {
		u, err := s.store.GetUserByID(ctx, id)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, nil
}
