// Package notify computes notification fan-out for task events and
// delivers the resulting records best-effort.
package notify

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/eliman/taskdesk/internal/model"
)

// Recipients computes assignees plus the task creator, minus the actor.
// The result is sorted so batches are deterministic.
func Recipients(assigneeIDs []string, creatorID, actorID string) []string {
	seen := make(map[string]bool, len(assigneeIDs)+1)
	for _, id := range assigneeIDs {
		if id != "" {
			seen[id] = true
		}
	}
	if creatorID != "" {
		seen[creatorID] = true
	}
	delete(seen, actorID)

	out := make([]string, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// AssignedRecipients computes the new assignees minus the actor. Used
// for TASK_ASSIGNED events, where the creator is not implicitly
// notified.
func AssignedRecipients(assigneeIDs []string, actorID string) []string {
	seen := make(map[string]bool, len(assigneeIDs))
	for _, id := range assigneeIDs {
		if id != "" && id != actorID {
			seen[id] = true
		}
	}

	out := make([]string, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Build produces one notification per recipient for a task event. It is
// a pure function; IDs and timestamps are filled in at delivery time.
func Build(
	typ model.NotificationType,
	taskID, title, message string,
	recipients []string,
) []model.Notification {
	batch := make([]model.Notification, 0, len(recipients))
	for _, userID := range recipients {
		batch = append(batch, model.Notification{
			UserID:  userID,
			Type:    typ,
			Title:   title,
			Message: message,
			TaskID:  taskID,
		})
	}
	return batch
}

// StatusChanged builds the STATUS_CHANGED batch for a transition.
func StatusChanged(task model.Task, from, to model.Status, assigneeIDs []string, actorID string) []model.Notification {
	return Build(
		model.NotifyStatusChanged,
		task.ID,
		"Task Status Changed",
		fmt.Sprintf("The status of %q changed from %s to %s.", task.Title, from, to),
		Recipients(assigneeIDs, task.CreatedByID, actorID),
	)
}

// TaskAssigned builds the TASK_ASSIGNED batch for a new task or a new
// assignment.
func TaskAssigned(task model.Task, assigneeIDs []string, actorID string) []model.Notification {
	return Build(
		model.NotifyTaskAssigned,
		task.ID,
		"New Task Assigned",
		fmt.Sprintf("The task %q has been assigned to you.", task.Title),
		AssignedRecipients(assigneeIDs, actorID),
	)
}

// CommentAdded builds the COMMENT_ADDED batch for a new comment.
func CommentAdded(task model.Task, assigneeIDs []string, actorID string) []model.Notification {
	return Build(
		model.NotifyCommentAdded,
		task.ID,
		"New Comment",
		fmt.Sprintf("A comment was added to %q.", task.Title),
		Recipients(assigneeIDs, task.CreatedByID, actorID),
	)
}

// SubtaskCompleted builds the SUBTASK_COMPLETED batch.
func SubtaskCompleted(task model.Task, subtaskTitle string, assigneeIDs []string, actorID string) []model.Notification {
	return Build(
		model.NotifySubtaskCompleted,
		task.ID,
		"Subtask Completed",
		fmt.Sprintf("Subtask %q of %q was completed.", subtaskTitle, task.Title),
		Recipients(assigneeIDs, task.CreatedByID, actorID),
	)
}

// DueDateNear builds the DUE_DATE_NEAR batch for a task approaching its
// deadline. Everyone involved is notified; there is no actor.
func DueDateNear(task model.Task, assigneeIDs []string) []model.Notification {
	return Build(
		model.NotifyDueDateNear,
		task.ID,
		"Due Date Approaching",
		fmt.Sprintf("The task %q is due soon.", task.Title),
		Recipients(assigneeIDs, task.CreatedByID, ""),
	)
}

// TaskOverdue builds the TASK_OVERDUE batch for a task past its
// deadline.
func TaskOverdue(task model.Task, assigneeIDs []string) []model.Notification {
	return Build(
		model.NotifyTaskOverdue,
		task.ID,
		"Task Overdue",
		fmt.Sprintf("The task %q is past its due date.", task.Title),
		Recipients(assigneeIDs, task.CreatedByID, ""),
	)
}

// Creator persists notification records.
type Creator interface {
	CreateNotification(ctx context.Context, n model.Notification) error
}

// Dispatcher delivers notification batches. Delivery is best-effort:
// failures are logged and never surfaced to the operation that
// triggered the fan-out.
type Dispatcher struct {
	store Creator
	now   func() time.Time
}

// NewDispatcher creates a Dispatcher writing through the given store.
func NewDispatcher(store Creator) *Dispatcher {
	return &Dispatcher{store: store, now: time.Now}
}

// WithClock overrides the dispatcher's time source. For tests.
func (d *Dispatcher) WithClock(now func() time.Time) *Dispatcher {
	d.now = now
	return d
}

// Dispatch stamps and persists a batch. Individual failures are logged
// and skipped.
func (d *Dispatcher) Dispatch(ctx context.Context, batch []model.Notification) {
	createdAt := d.now().UTC()
	for _, n := range batch {
		n.CreatedAt = createdAt
		if err := d.store.CreateNotification(ctx, n); err != nil {
			log.Printf("notify: delivering %s to user %s: %v", n.Type, n.UserID, err)
		}
	}
}
