// Package engine implements the task status transition state machine.
// Every status change goes through ChangeStatus: role validation
// against the perm table, atomic commit of the new status plus its log
// entry, opportunistic work-timestamp capture, and best-effort
// notification fan-out.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/eliman/taskdesk/internal/model"
	"github.com/eliman/taskdesk/internal/notify"
	"github.com/eliman/taskdesk/internal/perm"
	"github.com/eliman/taskdesk/internal/store"
)

// ErrForbidden means the acting role may not perform the requested
// transition. Same-state requests are forbidden too, never no-ops.
var ErrForbidden = errors.New("transition not allowed")

// Store is the slice of persistence the engine needs.
type Store interface {
	GetTaskByID(ctx context.Context, id string) (*model.Task, error)
	ApplyTransition(ctx context.Context, tr store.Transition, entry model.TaskStatusLog) (*model.Task, error)
	GetAssigneeIDs(ctx context.Context, taskID string) ([]string, error)
}

// Request is one status-change attempt.
type Request struct {
	TaskID    string
	Actor     model.Identity
	NewStatus model.Status

	// Note is an optional free-text remark recorded on the log entry.
	Note string

	// StartTime and EndTime are optional work timestamps. They are
	// persisted only on the transitions that define them and never
	// block the transition when absent.
	StartTime *time.Time
	EndTime   *time.Time
}

// Engine validates and applies status transitions.
type Engine struct {
	store      Store
	dispatcher *notify.Dispatcher
	now        func() time.Time
}

// New creates an Engine. The dispatcher may be nil, in which case no
// notifications are produced.
func New(s Store, d *notify.Dispatcher) *Engine {
	return &Engine{store: s, dispatcher: d, now: time.Now}
}

// WithClock overrides the engine's time source. For tests.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// ChangeStatus moves a task to a new status on behalf of the actor.
//
// Validation failures (ErrNotFound, ErrForbidden) happen before any
// mutation. The status update and log append commit atomically; a
// concurrent transition that wins the race surfaces as ErrConflict and
// leaves this request without effect. Notification fan-out runs after
// the commit and cannot fail the transition.
func (e *Engine) ChangeStatus(ctx context.Context, req Request) (*model.Task, error) {
	if !req.NewStatus.Valid() {
		return nil, fmt.Errorf("status %q: %w", req.NewStatus, ErrForbidden)
	}

	task, err := e.store.GetTaskByID(ctx, req.TaskID)
	if err != nil {
		return nil, err
	}

	if !perm.IsTransitionAllowed(req.Actor.Role, task.Status, req.NewStatus) {
		return nil, fmt.Errorf("%s may not move task from %s to %s: %w",
			req.Actor.Role, task.Status, req.NewStatus, ErrForbidden)
	}

	tr := store.Transition{
		TaskID: req.TaskID,
		From:   task.Status,
		To:     req.NewStatus,
	}
	// Opportunistic work-timestamp capture, only on the defining edges.
	// A captured pair must keep end >= start, including across a
	// privileged reversal that left the other timestamp in place.
	if task.Status == model.StatusQueued && req.NewStatus == model.StatusInProgress {
		if req.StartTime != nil && task.EndTime != nil && task.EndTime.Before(*req.StartTime) {
			return nil, fmt.Errorf("start time %s is after recorded end time %s: %w",
				req.StartTime, task.EndTime, ErrForbidden)
		}
		tr.StartTime = req.StartTime
	}
	if task.Status == model.StatusInProgress && req.NewStatus == model.StatusInReview {
		if req.EndTime != nil && task.StartTime != nil && req.EndTime.Before(*task.StartTime) {
			return nil, fmt.Errorf("end time %s is before recorded start time %s: %w",
				req.EndTime, task.StartTime, ErrForbidden)
		}
		tr.EndTime = req.EndTime
	}

	entry := model.TaskStatusLog{
		TaskID:      req.TaskID,
		OldStatus:   task.Status,
		NewStatus:   req.NewStatus,
		ChangedByID: req.Actor.ID,
		Note:        req.Note,
		ChangedAt:   e.now().UTC(),
	}

	updated, err := e.store.ApplyTransition(ctx, tr, entry)
	if err != nil {
		return nil, err
	}

	e.fanOut(ctx, *updated, task.Status, req.NewStatus, req.Actor.ID)

	return updated, nil
}

// fanOut delivers STATUS_CHANGED notifications to the task's assignees
// and creator, excluding the actor. Failures here never roll back the
// transition.
func (e *Engine) fanOut(ctx context.Context, task model.Task, from, to model.Status, actorID string) {
	if e.dispatcher == nil {
		return
	}
	assigneeIDs, err := e.store.GetAssigneeIDs(ctx, task.ID)
	if err != nil {
		log.Printf("engine: reading assignees for task %s: %v", task.ID, err)
		assigneeIDs = nil
	}
	e.dispatcher.Dispatch(ctx, notify.StatusChanged(task, from, to, assigneeIDs, actorID))
}
