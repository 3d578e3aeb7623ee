package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/eliman/taskdesk/internal/model"
)

// templateRow mirrors the task_templates table; the subtask titles are
// stored as a JSON array.
type templateRow struct {
	ID          string         `db:"id"`
	Name        string         `db:"name"`
	Title       string         `db:"title"`
	Description string         `db:"description"`
	CategoryID  string         `db:"category_id"`
	Priority    model.Priority `db:"priority"`
	Subtasks    string         `db:"subtasks"`
	CreatedByID string         `db:"created_by_id"`
	CreatedAt   time.Time      `db:"created_at"`
}

func (r templateRow) toModel() (model.TaskTemplate, error) {
	t := model.TaskTemplate{
		ID:          r.ID,
		Name:        r.Name,
		Title:       r.Title,
		Description: r.Description,
		CategoryID:  r.CategoryID,
		Priority:    r.Priority,
		CreatedByID: r.CreatedByID,
		CreatedAt:   r.CreatedAt,
	}
	if r.Subtasks != "" {
		if err := json.Unmarshal([]byte(r.Subtasks), &t.Subtasks); err != nil {
			return model.TaskTemplate{}, fmt.Errorf("unmarshaling template subtasks: %w", err)
		}
	}
	return t, nil
}

// CreateTemplate inserts a new task template.
func (s *SQLiteStore) CreateTemplate(ctx context.Context, t model.TaskTemplate) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	subtasks, err := json.Marshal(t.Subtasks)
	if err != nil {
		return fmt.Errorf("marshaling template subtasks: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO task_templates (
			id, name, title, description, category_id, priority,
			subtasks, created_by_id, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Name, t.Title, t.Description, t.CategoryID, t.Priority,
		string(subtasks), t.CreatedByID, t.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("creating template %s: %w", t.Name, err)
	}
	return nil
}

// UpdateTemplate replaces a template's fields.
func (s *SQLiteStore) UpdateTemplate(ctx context.Context, t model.TaskTemplate) error {
	subtasks, err := json.Marshal(t.Subtasks)
	if err != nil {
		return fmt.Errorf("marshaling template subtasks: %w", err)
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE task_templates SET
			name = ?, title = ?, description = ?, category_id = ?,
			priority = ?, subtasks = ?
		WHERE id = ?`,
		t.Name, t.Title, t.Description, t.CategoryID,
		t.Priority, string(subtasks), t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating template %s: %w", t.ID, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("template %s: %w", t.ID, ErrNotFound)
	}
	return nil
}

// DeleteTemplate removes a template by ID.
func (s *SQLiteStore) DeleteTemplate(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM task_templates WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting template %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("template %s: %w", id, ErrNotFound)
	}
	return nil
}

// GetTemplateByID retrieves a single template.
func (s *SQLiteStore) GetTemplateByID(ctx context.Context, id string) (*model.TaskTemplate, error) {
	var row templateRow
	err := s.db.GetContext(ctx, &row, "SELECT * FROM task_templates WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("template %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting template %s: %w", id, err)
	}

	t, err := row.toModel()
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// GetTemplates retrieves all templates ordered by name.
func (s *SQLiteStore) GetTemplates(ctx context.Context) ([]model.TaskTemplate, error) {
	var rows []templateRow
	err := s.db.SelectContext(ctx, &rows, "SELECT * FROM task_templates ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("querying templates: %w", err)
	}

	templates := make([]model.TaskTemplate, 0, len(rows))
	for _, r := range rows {
		t, err := r.toModel()
		if err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}
	return templates, nil
}

// recurringRow mirrors the recurring_tasks table; assignee IDs are
// stored as a JSON array.
type recurringRow struct {
	ID          string                    `db:"id"`
	TemplateID  *string                   `db:"template_id"`
	Title       string                    `db:"title"`
	Description string                    `db:"description"`
	CategoryID  string                    `db:"category_id"`
	ClientID    string                    `db:"client_id"`
	Priority    model.Priority            `db:"priority"`
	Frequency   model.RecurrenceFrequency `db:"frequency"`
	DayOfMonth  *int                      `db:"day_of_month"`
	DayOfWeek   *int                      `db:"day_of_week"`
	NextRunDate time.Time                 `db:"next_run_date"`
	IsActive    bool                      `db:"is_active"`
	AssigneeIDs string                    `db:"assignee_ids"`
	CreatedByID string                    `db:"created_by_id"`
	CreatedAt   time.Time                 `db:"created_at"`
}

func (r recurringRow) toModel() (model.RecurringTask, error) {
	rt := model.RecurringTask{
		ID:          r.ID,
		TemplateID:  r.TemplateID,
		Title:       r.Title,
		Description: r.Description,
		CategoryID:  r.CategoryID,
		ClientID:    r.ClientID,
		Priority:    r.Priority,
		Frequency:   r.Frequency,
		DayOfMonth:  r.DayOfMonth,
		DayOfWeek:   r.DayOfWeek,
		NextRunDate: r.NextRunDate,
		IsActive:    r.IsActive,
		CreatedByID: r.CreatedByID,
		CreatedAt:   r.CreatedAt,
	}
	if r.AssigneeIDs != "" {
		if err := json.Unmarshal([]byte(r.AssigneeIDs), &rt.AssigneeIDs); err != nil {
			return model.RecurringTask{}, fmt.Errorf("unmarshaling assignee ids: %w", err)
		}
	}
	return rt, nil
}

// CreateRecurringTask inserts a new recurring task definition.
func (s *SQLiteStore) CreateRecurringTask(ctx context.Context, r model.RecurringTask) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	assignees, err := json.Marshal(r.AssigneeIDs)
	if err != nil {
		return fmt.Errorf("marshaling assignee ids: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO recurring_tasks (
			id, template_id, title, description, category_id, client_id,
			priority, frequency, day_of_month, day_of_week,
			next_run_date, is_active, assignee_ids, created_by_id, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.TemplateID, r.Title, r.Description, r.CategoryID, r.ClientID,
		r.Priority, r.Frequency, r.DayOfMonth, r.DayOfWeek,
		r.NextRunDate.UTC(), boolToInt(r.IsActive), string(assignees),
		r.CreatedByID, r.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("creating recurring task %s: %w", r.Title, err)
	}
	return nil
}

// UpdateRecurringTask replaces a recurring task definition.
func (s *SQLiteStore) UpdateRecurringTask(ctx context.Context, r model.RecurringTask) error {
	assignees, err := json.Marshal(r.AssigneeIDs)
	if err != nil {
		return fmt.Errorf("marshaling assignee ids: %w", err)
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE recurring_tasks SET
			template_id = ?, title = ?, description = ?, category_id = ?,
			client_id = ?, priority = ?, frequency = ?, day_of_month = ?,
			day_of_week = ?, next_run_date = ?, is_active = ?, assignee_ids = ?
		WHERE id = ?`,
		r.TemplateID, r.Title, r.Description, r.CategoryID,
		r.ClientID, r.Priority, r.Frequency, r.DayOfMonth,
		r.DayOfWeek, r.NextRunDate.UTC(), boolToInt(r.IsActive), string(assignees),
		r.ID,
	)
	if err != nil {
		return fmt.Errorf("updating recurring task %s: %w", r.ID, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("recurring task %s: %w", r.ID, ErrNotFound)
	}
	return nil
}

// DeleteRecurringTask removes a recurring task definition by ID.
func (s *SQLiteStore) DeleteRecurringTask(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM recurring_tasks WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting recurring task %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("recurring task %s: %w", id, ErrNotFound)
	}
	return nil
}

// GetRecurringTasks retrieves all recurring task definitions.
func (s *SQLiteStore) GetRecurringTasks(ctx context.Context) ([]model.RecurringTask, error) {
	var rows []recurringRow
	err := s.db.SelectContext(ctx, &rows, "SELECT * FROM recurring_tasks ORDER BY next_run_date")
	if err != nil {
		return nil, fmt.Errorf("querying recurring tasks: %w", err)
	}

	tasks := make([]model.RecurringTask, 0, len(rows))
	for _, r := range rows {
		rt, err := r.toModel()
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, rt)
	}
	return tasks, nil
}
