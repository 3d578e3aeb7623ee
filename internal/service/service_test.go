package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/eliman/taskdesk/internal/model"
	"github.com/eliman/taskdesk/internal/notify"
	"github.com/eliman/taskdesk/internal/store"
)

func newTestService(t *testing.T) (*Service, *store.SQLiteStore) {
	t.Helper()
	st, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("opening test store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return New(st, notify.NewDispatcher(st)), st
}

var lead = model.Identity{ID: "lead", Role: model.RoleTeamLead}

func TestCreateTaskNotifiesAssigneesNotActor(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	task, err := svc.CreateTask(ctx, lead, CreateTaskInput{
		Title:    "Payroll April",
		Priority: model.PriorityMedium,
		Assignees: []AssigneeInput{
			{UserID: "lead", IsOwner: true},
			{UserID: "alice"},
			{UserID: "bob"},
		},
		SubtaskTitles: []string{"Gather timesheets", "Run payroll"},
	})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if task.Status != model.StatusQueued {
		t.Errorf("status = %s, want QUEUED", task.Status)
	}

	for _, tc := range []struct {
		user string
		want int
	}{
		{"lead", 0},
		{"alice", 1},
		{"bob", 1},
	} {
		got, err := st.GetNotificationsForUser(ctx, tc.user)
		if err != nil {
			t.Fatalf("GetNotificationsForUser(%s): %v", tc.user, err)
		}
		if len(got) != tc.want {
			t.Errorf("%s has %d notifications, want %d", tc.user, len(got), tc.want)
		}
	}
}

func TestProgressFromSubtasks(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	task, err := svc.CreateTask(ctx, lead, CreateTaskInput{
		Title:         "Year-end closing",
		SubtaskTitles: []string{"a", "b", "c"},
	})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	progress, err := svc.Progress(ctx, task.ID)
	if err != nil {
		t.Fatalf("Progress: %v", err)
	}
	if progress != 0 {
		t.Errorf("progress = %d, want 0", progress)
	}

	subs, err := svc.Subtasks(ctx, task.ID)
	if err != nil {
		t.Fatalf("Subtasks: %v", err)
	}

	if _, err := svc.ToggleSubtask(ctx, lead, subs[0].ID); err != nil {
		t.Fatalf("ToggleSubtask: %v", err)
	}
	progress, _ = svc.Progress(ctx, task.ID)
	if progress != 33 {
		t.Errorf("progress = %d, want 33", progress)
	}

	if _, err := svc.ToggleSubtask(ctx, lead, subs[1].ID); err != nil {
		t.Fatalf("ToggleSubtask: %v", err)
	}
	progress, _ = svc.Progress(ctx, task.ID)
	if progress != 67 {
		t.Errorf("progress = %d, want 67", progress)
	}
}

func TestProgressNoSubtasks(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	task, err := svc.CreateTask(ctx, lead, CreateTaskInput{Title: "One-off"})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	progress, err := svc.Progress(ctx, task.ID)
	if err != nil {
		t.Fatalf("Progress: %v", err)
	}
	if progress != 0 {
		t.Errorf("progress = %d, want 0 with no subtasks", progress)
	}
}

func TestToggleSubtaskStampsAndClears(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	task, _ := svc.CreateTask(ctx, lead, CreateTaskInput{Title: "t"})
	sub, err := svc.AddSubtask(ctx, task.ID, "check bank statements")
	if err != nil {
		t.Fatalf("AddSubtask: %v", err)
	}

	done, err := svc.ToggleSubtask(ctx, lead, sub.ID)
	if err != nil {
		t.Fatalf("ToggleSubtask: %v", err)
	}
	if !done.IsCompleted || done.CompletedAt == nil || done.CompletedByID == nil {
		t.Errorf("completion stamps missing: %+v", done)
	}
	if *done.CompletedByID != "lead" {
		t.Errorf("completed by = %s, want lead", *done.CompletedByID)
	}

	undone, err := svc.ToggleSubtask(ctx, lead, sub.ID)
	if err != nil {
		t.Fatalf("second ToggleSubtask: %v", err)
	}
	if undone.IsCompleted || undone.CompletedAt != nil || undone.CompletedByID != nil {
		t.Errorf("stamps not cleared: %+v", undone)
	}
}

func TestAddSubtaskUnknownTask(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.AddSubtask(context.Background(), "missing", "x")
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestAssignNotifiesAndRejectsDuplicates(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	task, _ := svc.CreateTask(ctx, lead, CreateTaskInput{Title: "t"})

	if err := svc.Assign(ctx, lead, task.ID, "alice", true); err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if err := svc.Assign(ctx, lead, task.ID, "alice", false); !errors.Is(err, store.ErrDuplicate) {
		t.Fatalf("err = %v, want ErrDuplicate", err)
	}

	got, _ := st.GetNotificationsForUser(ctx, "alice")
	if len(got) != 1 {
		t.Errorf("alice has %d notifications, want 1", len(got))
	}

	// Removing twice succeeds both times.
	if err := svc.Unassign(ctx, task.ID, "alice"); err != nil {
		t.Fatalf("Unassign: %v", err)
	}
	if err := svc.Unassign(ctx, task.ID, "alice"); err != nil {
		t.Fatalf("second Unassign: %v", err)
	}
}

func TestAddCommentNotifiesParticipants(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	task, _ := svc.CreateTask(ctx, lead, CreateTaskInput{
		Title:     "t",
		Assignees: []AssigneeInput{{UserID: "alice", IsOwner: true}},
	})

	alice := model.Identity{ID: "alice", Role: model.RoleAccountant}
	comment, err := svc.AddComment(ctx, alice, task.ID, "done with the draft")
	if err != nil {
		t.Fatalf("AddComment: %v", err)
	}
	if comment.Content != "done with the draft" {
		t.Errorf("content = %q", comment.Content)
	}

	// The creator hears about it; the author does not.
	leadNotes, _ := st.GetNotificationsForUser(ctx, "lead")
	var commentNotes int
	for _, n := range leadNotes {
		if n.Type == model.NotifyCommentAdded {
			commentNotes++
		}
	}
	if commentNotes != 1 {
		t.Errorf("lead has %d comment notifications, want 1", commentNotes)
	}
	aliceNotes, _ := st.GetNotificationsForUser(ctx, "alice")
	for _, n := range aliceNotes {
		if n.Type == model.NotifyCommentAdded {
			t.Error("comment author notified about their own comment")
		}
	}
}

func TestCreateFromTemplate(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	err := st.CreateTemplate(ctx, model.TaskTemplate{
		ID: "tpl1", Name: "Monthly VAT", Title: "VAT filing",
		Description: "Standard VAT workflow", Priority: model.PriorityHigh,
		Subtasks:    []string{"Collect invoices", "Reconcile", "Submit"},
		CreatedByID: "lead", CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("CreateTemplate: %v", err)
	}

	due := time.Now().Add(7 * 24 * time.Hour).UTC()
	task, err := svc.CreateFromTemplate(ctx, lead, "tpl1", "client1", &due,
		[]AssigneeInput{{UserID: "alice", IsOwner: true}})
	if err != nil {
		t.Fatalf("CreateFromTemplate: %v", err)
	}

	if task.Title != "VAT filing" || task.ClientID != "client1" {
		t.Errorf("expanded task = %+v", task)
	}
	if task.Priority != model.PriorityHigh {
		t.Errorf("priority = %s, want HIGH", task.Priority)
	}

	subs, _ := svc.Subtasks(ctx, task.ID)
	if len(subs) != 3 {
		t.Errorf("expanded %d subtasks, want 3", len(subs))
	}
}

func TestCreateFromTemplateMissing(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.CreateFromTemplate(context.Background(), lead, "missing", "c", nil, nil)
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestDueScan(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	svc.WithClock(func() time.Time { return now })

	overdue := now.Add(-24 * time.Hour)
	dueSoon := now.Add(48 * time.Hour)
	farOff := now.Add(30 * 24 * time.Hour)

	mk := func(title string, due *time.Time) *model.Task {
		task, err := svc.CreateTask(ctx, lead, CreateTaskInput{
			Title: title, DueDate: due,
			Assignees: []AssigneeInput{{UserID: "alice", IsOwner: true}},
		})
		if err != nil {
			t.Fatalf("CreateTask %s: %v", title, err)
		}
		return task
	}

	mk("overdue", &overdue)
	mk("due soon", &dueSoon)
	mk("far off", &farOff)
	mk("no due date", nil)

	triggered, err := svc.DueScan(ctx, 3*24*time.Hour)
	if err != nil {
		t.Fatalf("DueScan: %v", err)
	}
	if triggered != 2 {
		t.Errorf("triggered = %d, want 2", triggered)
	}

	got, _ := st.GetNotificationsForUser(ctx, "alice")
	var overdueN, nearN int
	for _, n := range got {
		switch n.Type {
		case model.NotifyTaskOverdue:
			overdueN++
		case model.NotifyDueDateNear:
			nearN++
		}
	}
	if overdueN != 1 || nearN != 1 {
		t.Errorf("alice got %d overdue and %d due-soon reminders, want 1 and 1", overdueN, nearN)
	}
}

func TestDueScanSkipsDoneTasks(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	past := time.Now().Add(-24 * time.Hour).UTC()
	task, err := svc.CreateTask(ctx, lead, CreateTaskInput{
		Title: "finished late", DueDate: &past,
		Assignees: []AssigneeInput{{UserID: "alice", IsOwner: true}},
	})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	// Walk the task to DONE directly through the store.
	for _, step := range []struct{ from, to model.Status }{
		{model.StatusQueued, model.StatusInProgress},
		{model.StatusInProgress, model.StatusInReview},
		{model.StatusInReview, model.StatusDone},
	} {
		_, err := st.ApplyTransition(ctx, store.Transition{
			TaskID: task.ID, From: step.from, To: step.to,
		}, model.TaskStatusLog{TaskID: task.ID, ChangedByID: "lead", ChangedAt: time.Now().UTC()})
		if err != nil {
			t.Fatalf("transition to %s: %v", step.to, err)
		}
	}

	triggered, err := svc.DueScan(ctx, 3*24*time.Hour)
	if err != nil {
		t.Fatalf("DueScan: %v", err)
	}
	if triggered != 0 {
		t.Errorf("triggered = %d, want 0 for a DONE task", triggered)
	}
}
