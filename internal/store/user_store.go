package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/eliman/taskdesk/internal/model"
)

// CreateUser inserts a new user. Generates a UUID if ID is empty.
// A repeated username fails with ErrDuplicate.
func (s *SQLiteStore) CreateUser(ctx context.Context, u model.User) error {
	if strings.TrimSpace(u.Username) == "" {
		return fmt.Errorf("username must not be empty")
	}
	if !u.Role.Valid() {
		return fmt.Errorf("invalid role %q", u.Role)
	}
	if u.ID == "" {
		u.ID = uuid.New().String()
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO users (id, username, password_hash, name, role, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		u.ID, u.Username, u.PasswordHash, u.Name, u.Role, u.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("creating user %s: %w", u.Username, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("username %s taken: %w", u.Username, ErrDuplicate)
	}
	return nil
}

// UpdateUser updates a user's profile fields and role. The password
// hash is updated only when non-empty.
func (s *SQLiteStore) UpdateUser(ctx context.Context, u model.User) error {
	if !u.Role.Valid() {
		return fmt.Errorf("invalid role %q", u.Role)
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE users SET
			username = ?, name = ?, role = ?,
			password_hash = CASE WHEN ? != '' THEN ? ELSE password_hash END
		WHERE id = ?`,
		u.Username, u.Name, u.Role, u.PasswordHash, u.PasswordHash, u.ID,
	)
	if err != nil {
		return fmt.Errorf("updating user %s: %w", u.ID, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("user %s: %w", u.ID, ErrNotFound)
	}
	return nil
}

// DeleteUser removes a user by ID.
func (s *SQLiteStore) DeleteUser(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting user %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	return nil
}

// GetUserByID retrieves a user by ID.
func (s *SQLiteStore) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	var u model.User
	err := s.db.GetContext(ctx, &u, "SELECT * FROM users WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting user %s: %w", id, err)
	}
	return &u, nil
}

// GetUserByUsername retrieves a user by username.
func (s *SQLiteStore) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	err := s.db.GetContext(ctx, &u, "SELECT * FROM users WHERE username = ?", username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %s: %w", username, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting user %s: %w", username, err)
	}
	return &u, nil
}

// GetUsers retrieves all users ordered by name.
func (s *SQLiteStore) GetUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := s.db.SelectContext(ctx, &users, "SELECT * FROM users ORDER BY name"); err != nil {
		return nil, fmt.Errorf("querying users: %w", err)
	}
	return users, nil
}
