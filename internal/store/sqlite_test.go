package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/eliman/taskdesk/internal/model"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("opening test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func mustCreateTask(t *testing.T, s *SQLiteStore, assignments []model.TaskAssignment, subtasks []string) *model.Task {
	t.Helper()
	task, err := s.CreateTask(context.Background(), model.Task{
		Title:       "VAT filing Q1",
		Description: "Quarterly VAT for Acme",
		Priority:    model.PriorityHigh,
		CreatedByID: "creator",
		CreatedAt:   time.Now().UTC(),
	}, assignments, subtasks)
	if err != nil {
		t.Fatalf("creating task: %v", err)
	}
	return task
}

func TestCreateTaskStartsQueued(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	task := mustCreateTask(t, s,
		[]model.TaskAssignment{{UserID: "alice", IsOwner: true}, {UserID: "bob"}},
		[]string{"Collect receipts", "File return", ""},
	)

	if task.Status != model.StatusQueued {
		t.Errorf("status = %s, want QUEUED", task.Status)
	}

	got, err := s.GetTaskByID(ctx, task.ID)
	if err != nil {
		t.Fatalf("GetTaskByID: %v", err)
	}
	if got.Title != "VAT filing Q1" || got.Status != model.StatusQueued {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if got.StartTime != nil || got.EndTime != nil {
		t.Error("new task carries work timestamps")
	}

	ids, err := s.GetAssigneeIDs(ctx, task.ID)
	if err != nil {
		t.Fatalf("GetAssigneeIDs: %v", err)
	}
	if len(ids) != 2 {
		t.Errorf("assignees = %v, want 2", ids)
	}

	// Blank subtask titles are dropped.
	total, completed, err := s.CountSubtasks(ctx, task.ID)
	if err != nil {
		t.Fatalf("CountSubtasks: %v", err)
	}
	if total != 2 || completed != 0 {
		t.Errorf("subtasks = %d/%d, want 0/2", completed, total)
	}
}

func TestCreateTaskRejectsEmptyTitle(t *testing.T) {
	s := newTestStore(t)

	_, err := s.CreateTask(context.Background(), model.Task{Title: "   "}, nil, nil)
	if err == nil {
		t.Fatal("expected error for blank title")
	}
}

func TestGetTasksFilters(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	t1 := mustCreateTask(t, s, []model.TaskAssignment{{UserID: "alice", IsOwner: true}}, nil)
	t2 := mustCreateTask(t, s, []model.TaskAssignment{{UserID: "bob", IsOwner: true}}, nil)

	// Move t2 out of QUEUED.
	_, err := s.ApplyTransition(ctx, Transition{
		TaskID: t2.ID, From: model.StatusQueued, To: model.StatusInProgress,
	}, model.TaskStatusLog{
		TaskID: t2.ID, OldStatus: model.StatusQueued, NewStatus: model.StatusInProgress,
		ChangedByID: "bob", ChangedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("ApplyTransition: %v", err)
	}

	queued := model.StatusQueued
	tasks, err := s.GetTasks(ctx, TaskFilter{Status: &queued})
	if err != nil {
		t.Fatalf("GetTasks by status: %v", err)
	}
	if len(tasks) != 1 || tasks[0].ID != t1.ID {
		t.Errorf("status filter returned %v", tasks)
	}

	alice := "alice"
	tasks, err = s.GetTasks(ctx, TaskFilter{AssignedToID: &alice})
	if err != nil {
		t.Fatalf("GetTasks by assignee: %v", err)
	}
	if len(tasks) != 1 || tasks[0].ID != t1.ID {
		t.Errorf("assignee filter returned %v", tasks)
	}

	q := "acme"
	tasks, err = s.GetTasks(ctx, TaskFilter{Query: &q})
	if err != nil {
		t.Fatalf("GetTasks by query: %v", err)
	}
	if len(tasks) != 2 {
		t.Errorf("text search returned %d tasks, want 2", len(tasks))
	}
}

func TestApplyTransitionWritesLogAtomically(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	task := mustCreateTask(t, s, nil, nil)

	start := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	updated, err := s.ApplyTransition(ctx, Transition{
		TaskID: task.ID, From: model.StatusQueued, To: model.StatusInProgress,
		StartTime: &start,
	}, model.TaskStatusLog{
		TaskID: task.ID, OldStatus: model.StatusQueued, NewStatus: model.StatusInProgress,
		ChangedByID: "alice", Note: "picking this up", ChangedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("ApplyTransition: %v", err)
	}
	if updated.Status != model.StatusInProgress {
		t.Errorf("status = %s, want IN_PROGRESS", updated.Status)
	}
	if updated.StartTime == nil {
		t.Error("start time not persisted")
	}

	logs, err := s.GetLogsForTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("GetLogsForTask: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(logs))
	}
	if logs[0].Note != "picking this up" || logs[0].ChangedByID != "alice" {
		t.Errorf("log entry = %+v", logs[0])
	}
}

func TestApplyTransitionConflict(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	task := mustCreateTask(t, s, nil, nil)

	entry := model.TaskStatusLog{
		TaskID: task.ID, ChangedByID: "alice", ChangedAt: time.Now().UTC(),
	}

	// A stale From loses with ErrConflict and writes nothing.
	_, err := s.ApplyTransition(ctx, Transition{
		TaskID: task.ID, From: model.StatusInProgress, To: model.StatusDone,
	}, entry)
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("err = %v, want ErrConflict", err)
	}

	logs, err := s.GetLogsForTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("GetLogsForTask: %v", err)
	}
	if len(logs) != 0 {
		t.Error("losing transition left a log entry")
	}

	got, _ := s.GetTaskByID(ctx, task.ID)
	if got.Status != model.StatusQueued {
		t.Errorf("status = %s, want QUEUED untouched", got.Status)
	}
}

func TestApplyTransitionMissingTask(t *testing.T) {
	s := newTestStore(t)

	_, err := s.ApplyTransition(context.Background(), Transition{
		TaskID: "missing", From: model.StatusQueued, To: model.StatusInProgress,
	}, model.TaskStatusLog{TaskID: "missing", ChangedAt: time.Now().UTC()})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestApplyTransitionPreservesTimestamps(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	task := mustCreateTask(t, s, nil, nil)

	start := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	_, err := s.ApplyTransition(ctx, Transition{
		TaskID: task.ID, From: model.StatusQueued, To: model.StatusInProgress,
		StartTime: &start,
	}, model.TaskStatusLog{TaskID: task.ID, ChangedAt: time.Now().UTC()})
	if err != nil {
		t.Fatalf("first transition: %v", err)
	}

	// No timestamps supplied: COALESCE keeps the stored values.
	updated, err := s.ApplyTransition(ctx, Transition{
		TaskID: task.ID, From: model.StatusInProgress, To: model.StatusInReview,
	}, model.TaskStatusLog{TaskID: task.ID, ChangedAt: time.Now().UTC()})
	if err != nil {
		t.Fatalf("second transition: %v", err)
	}
	if updated.StartTime == nil {
		t.Error("start time lost on a later transition")
	}
}

func TestDeleteTaskCascades(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	task := mustCreateTask(t, s,
		[]model.TaskAssignment{{UserID: "alice", IsOwner: true}},
		[]string{"one", "two"},
	)

	if _, err := s.CreateComment(ctx, model.Comment{
		TaskID: task.ID, UserID: "alice", Content: "hi", CreatedAt: time.Now().UTC(),
	}); err != nil {
		t.Fatalf("CreateComment: %v", err)
	}
	if _, err := s.ApplyTransition(ctx, Transition{
		TaskID: task.ID, From: model.StatusQueued, To: model.StatusInProgress,
	}, model.TaskStatusLog{TaskID: task.ID, ChangedAt: time.Now().UTC()}); err != nil {
		t.Fatalf("ApplyTransition: %v", err)
	}

	if err := s.DeleteTask(ctx, task.ID); err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}

	if _, err := s.GetTaskByID(ctx, task.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("task still present: %v", err)
	}
	if ids, _ := s.GetAssigneeIDs(ctx, task.ID); len(ids) != 0 {
		t.Error("assignments survived task deletion")
	}
	if logs, _ := s.GetLogsForTask(ctx, task.ID); len(logs) != 0 {
		t.Error("status logs survived task deletion")
	}
	if subs, _ := s.GetSubtasks(ctx, task.ID); len(subs) != 0 {
		t.Error("subtasks survived task deletion")
	}
	if comments, _ := s.GetCommentsForTask(ctx, task.ID); len(comments) != 0 {
		t.Error("comments survived task deletion")
	}
}

func TestAddAssignmentDuplicate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	task := mustCreateTask(t, s, nil, nil)

	a := model.TaskAssignment{TaskID: task.ID, UserID: "alice", IsOwner: true}
	if err := s.AddAssignment(ctx, a); err != nil {
		t.Fatalf("first AddAssignment: %v", err)
	}
	if err := s.AddAssignment(ctx, a); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("err = %v, want ErrDuplicate", err)
	}
}

func TestRemoveAssignmentIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	task := mustCreateTask(t, s, []model.TaskAssignment{{UserID: "alice"}}, nil)

	if err := s.RemoveAssignment(ctx, task.ID, "alice"); err != nil {
		t.Fatalf("RemoveAssignment: %v", err)
	}
	// Removing again is a quiet no-op.
	if err := s.RemoveAssignment(ctx, task.ID, "alice"); err != nil {
		t.Fatalf("second RemoveAssignment: %v", err)
	}
}

func TestSubtaskCompletionStamps(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	task := mustCreateTask(t, s, nil, nil)

	sub, err := s.AddSubtask(ctx, model.Subtask{
		TaskID: task.ID, Title: "reconcile ledger", CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("AddSubtask: %v", err)
	}

	by := "alice"
	at := time.Now().UTC()
	completed, err := s.SetSubtaskCompletion(ctx, sub.ID, true, &by, &at)
	if err != nil {
		t.Fatalf("SetSubtaskCompletion: %v", err)
	}
	if !completed.IsCompleted || completed.CompletedAt == nil || completed.CompletedByID == nil {
		t.Errorf("completion stamps missing: %+v", completed)
	}

	// Un-completing clears both stamps.
	reverted, err := s.SetSubtaskCompletion(ctx, sub.ID, false, nil, nil)
	if err != nil {
		t.Fatalf("reverting completion: %v", err)
	}
	if reverted.IsCompleted || reverted.CompletedAt != nil || reverted.CompletedByID != nil {
		t.Errorf("stamps not cleared: %+v", reverted)
	}
}

func TestNotificationScoping(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, userID := range []string{"alice", "alice", "bob"} {
		if err := s.CreateNotification(ctx, model.Notification{
			UserID: userID, Type: model.NotifyTaskAssigned,
			Title: "New Task Assigned", Message: "m", CreatedAt: time.Now().UTC(),
		}); err != nil {
			t.Fatalf("CreateNotification: %v", err)
		}
	}

	got, err := s.GetNotificationsForUser(ctx, "alice")
	if err != nil {
		t.Fatalf("GetNotificationsForUser: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("alice sees %d notifications, want 2", len(got))
	}

	// bob cannot mark or delete alice's notification.
	if err := s.MarkNotificationRead(ctx, got[0].ID, "bob"); !errors.Is(err, ErrNotFound) {
		t.Errorf("cross-user mark read: %v, want ErrNotFound", err)
	}
	if err := s.DeleteNotification(ctx, got[0].ID, "bob"); !errors.Is(err, ErrNotFound) {
		t.Errorf("cross-user delete: %v, want ErrNotFound", err)
	}

	if err := s.MarkNotificationRead(ctx, got[0].ID, "alice"); err != nil {
		t.Fatalf("MarkNotificationRead: %v", err)
	}
	count, err := s.CountUnreadNotifications(ctx, "alice")
	if err != nil {
		t.Fatalf("CountUnreadNotifications: %v", err)
	}
	if count != 1 {
		t.Errorf("unread = %d, want 1", count)
	}

	if err := s.MarkAllNotificationsRead(ctx, "alice"); err != nil {
		t.Fatalf("MarkAllNotificationsRead: %v", err)
	}
	count, _ = s.CountUnreadNotifications(ctx, "alice")
	if count != 0 {
		t.Errorf("unread after read-all = %d, want 0", count)
	}

	// bob's notification is untouched.
	count, _ = s.CountUnreadNotifications(ctx, "bob")
	if count != 1 {
		t.Errorf("bob's unread = %d, want 1", count)
	}
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := model.User{
		Username: "alice", PasswordHash: "x", Name: "Alice",
		Role: model.RoleAccountant, CreatedAt: time.Now().UTC(),
	}
	if err := s.CreateUser(ctx, u); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if err := s.CreateUser(ctx, u); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("err = %v, want ErrDuplicate", err)
	}
}

func TestTemplateSubtasksRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	tpl := model.TaskTemplate{
		ID: "tpl1", Name: "Monthly VAT", Title: "VAT filing",
		Description: "Standard VAT workflow", Priority: model.PriorityHigh,
		Subtasks:    []string{"Collect invoices", "Reconcile", "Submit"},
		CreatedByID: "admin", CreatedAt: time.Now().UTC(),
	}
	if err := s.CreateTemplate(ctx, tpl); err != nil {
		t.Fatalf("CreateTemplate: %v", err)
	}

	got, err := s.GetTemplateByID(ctx, "tpl1")
	if err != nil {
		t.Fatalf("GetTemplateByID: %v", err)
	}
	if len(got.Subtasks) != 3 || got.Subtasks[2] != "Submit" {
		t.Errorf("subtasks round trip = %v", got.Subtasks)
	}
}
