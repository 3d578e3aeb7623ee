package service

import (
	"context"
	"time"

	"github.com/eliman/taskdesk/internal/model"
	"github.com/eliman/taskdesk/internal/notify"
)

// AssigneeInput names one user to assign during task creation.
type AssigneeInput struct {
	UserID  string `json:"user_id"`
	IsOwner bool   `json:"is_owner"`
}

// CreateTaskInput carries everything needed to open a new task.
type CreateTaskInput struct {
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	CategoryID    string          `json:"category_id"`
	ClientID      string          `json:"client_id"`
	PeriodMonth   *int            `json:"period_month,omitempty"`
	PeriodYear    *int            `json:"period_year,omitempty"`
	Priority      model.Priority  `json:"priority"`
	DueDate       *time.Time      `json:"due_date,omitempty"`
	Assignees     []AssigneeInput `json:"assignees"`
	SubtaskTitles []string        `json:"subtask_titles"`
}

// CreateTask opens a new task in QUEUED with its assignments and
// subtasks, then notifies the new assignees (minus the actor).
func (s *Service) CreateTask(
	ctx context.Context,
	actor model.Identity,
	in CreateTaskInput,
) (*model.Task, error) {
	task := model.Task{
		Title:       in.Title,
		Description: in.Description,
		CategoryID:  in.CategoryID,
		ClientID:    in.ClientID,
		PeriodMonth: in.PeriodMonth,
		PeriodYear:  in.PeriodYear,
		Priority:    in.Priority,
		DueDate:     in.DueDate,
		CreatedByID: actor.ID,
		CreatedAt:   s.now().UTC(),
	}

	assignments := make([]model.TaskAssignment, 0, len(in.Assignees))
	assigneeIDs := make([]string, 0, len(in.Assignees))
	for _, a := range in.Assignees {
		assignments = append(assignments, model.TaskAssignment{
			UserID:  a.UserID,
			IsOwner: a.IsOwner,
		})
		assigneeIDs = append(assigneeIDs, a.UserID)
	}

	created, err := s.store.CreateTask(ctx, task, assignments, in.SubtaskTitles)
	if err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		s.dispatcher.Dispatch(ctx, notify.TaskAssigned(*created, assigneeIDs, actor.ID))
	}
	return created, nil
}

// DeleteTask removes a task; assignments, logs, subtasks, and comments
// go with it.
func (s *Service) DeleteTask(ctx context.Context, id string) error {
	return s.store.DeleteTask(ctx, id)
}

// CreateFromTemplate expands a template into a new task for the given
// client: template title, description, category, and priority carry
// over, and each template subtask title becomes a subtask.
func (s *Service) CreateFromTemplate(
	ctx context.Context,
	actor model.Identity,
	templateID, clientID string,
	dueDate *time.Time,
	assignees []AssigneeInput,
) (*model.Task, error) {
	tpl, err := s.store.GetTemplateByID(ctx, templateID)
	if err != nil {
		return nil, err
	}

	return s.CreateTask(ctx, actor, CreateTaskInput{
		Title:         tpl.Title,
		Description:   tpl.Description,
		CategoryID:    tpl.CategoryID,
		ClientID:      clientID,
		Priority:      tpl.Priority,
		DueDate:       dueDate,
		Assignees:     assignees,
		SubtaskTitles: tpl.Subtasks,
	})
}
