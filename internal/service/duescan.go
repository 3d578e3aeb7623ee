package service

import (
	"context"
	"time"

	"github.com/eliman/taskdesk/internal/model"
	"github.com/eliman/taskdesk/internal/notify"
	"github.com/eliman/taskdesk/internal/store"
)

// DueScan inspects every unfinished task with a due date and produces
// reminder notifications: TASK_OVERDUE for tasks past their deadline
// and DUE_DATE_NEAR for tasks due within the window. Callers run it on
// whatever cadence they choose; repeated runs produce repeated batches.
// Returns the number of tasks that triggered a reminder.
func (s *Service) DueScan(ctx context.Context, window time.Duration) (int, error) {
	tasks, err := s.store.GetTasks(ctx, store.TaskFilter{})
	if err != nil {
		return 0, err
	}

	if s.dispatcher == nil {
		return 0, nil
	}

	now := s.now().UTC()
	triggered := 0
	for _, t := range tasks {
		if t.DueDate == nil || t.Status == model.StatusDone {
			continue
		}

		var batch []model.Notification
		switch {
		case t.DueDate.Before(now):
			assigneeIDs, _ := s.store.GetAssigneeIDs(ctx, t.ID)
			batch = notify.TaskOverdue(t, assigneeIDs)
		case t.DueDate.Sub(now) <= window:
			assigneeIDs, _ := s.store.GetAssigneeIDs(ctx, t.ID)
			batch = notify.DueDateNear(t, assigneeIDs)
		default:
			continue
		}

		s.dispatcher.Dispatch(ctx, batch)
		triggered++
	}
	return triggered, nil
}
