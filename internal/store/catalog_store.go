package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/eliman/taskdesk/internal/model"
)

// CreateCategory inserts a new category. A repeated name fails with
// ErrDuplicate.
func (s *SQLiteStore) CreateCategory(ctx context.Context, c model.Category) error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("category name must not be empty")
	}
	if c.ID == "" {
		c.ID = uuid.New().String()
	}

	result, err := s.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO categories (id, name) VALUES (?, ?)",
		c.ID, c.Name,
	)
	if err != nil {
		return fmt.Errorf("creating category %s: %w", c.Name, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("category %s exists: %w", c.Name, ErrDuplicate)
	}
	return nil
}

// UpdateCategory renames a category.
func (s *SQLiteStore) UpdateCategory(ctx context.Context, c model.Category) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE categories SET name = ? WHERE id = ?", c.Name, c.ID,
	)
	if err != nil {
		return fmt.Errorf("updating category %s: %w", c.ID, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("category %s: %w", c.ID, ErrNotFound)
	}
	return nil
}

// DeleteCategory removes a category by ID.
func (s *SQLiteStore) DeleteCategory(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM categories WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting category %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("category %s: %w", id, ErrNotFound)
	}
	return nil
}

// GetCategories retrieves all categories ordered by name.
func (s *SQLiteStore) GetCategories(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	err := s.db.SelectContext(ctx, &categories, "SELECT * FROM categories ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("querying categories: %w", err)
	}
	return categories, nil
}

// CreateClient inserts a new client.
func (s *SQLiteStore) CreateClient(ctx context.Context, c model.Client) error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("client name must not be empty")
	}
	if c.ID == "" {
		c.ID = uuid.New().String()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO clients (id, name) VALUES (?, ?)", c.ID, c.Name,
	)
	if err != nil {
		return fmt.Errorf("creating client %s: %w", c.Name, err)
	}
	return nil
}

// UpdateClient renames a client.
func (s *SQLiteStore) UpdateClient(ctx context.Context, c model.Client) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE clients SET name = ? WHERE id = ?", c.Name, c.ID,
	)
	if err != nil {
		return fmt.Errorf("updating client %s: %w", c.ID, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("client %s: %w", c.ID, ErrNotFound)
	}
	return nil
}

// DeleteClient removes a client by ID.
func (s *SQLiteStore) DeleteClient(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM clients WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting client %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("client %s: %w", id, ErrNotFound)
	}
	return nil
}

// GetClients retrieves all clients ordered by name.
func (s *SQLiteStore) GetClients(ctx context.Context) ([]model.Client, error) {
	var clients []model.Client
	if err := s.db.SelectContext(ctx, &clients, "SELECT * FROM clients ORDER BY name"); err != nil {
		return nil, fmt.Errorf("querying clients: %w", err)
	}
	return clients, nil
}
