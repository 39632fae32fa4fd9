package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/RagzJ/Event-Management/internal/model"
)

// CreateUser creates a new user from the given record. Username, password
// hash and role are required; the profile fields are optional.
func CreateUser(ctx context.Context, db *sql.DB, u model.User) (*model.User, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO users (username, password_hash, role, company_name, email, phone, address)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		u.Username, u.PasswordHash, u.Role,
		nullable(u.CompanyName), nullable(u.Email), nullable(u.Phone), nullable(u.Address),
	)
	if err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting user id: %w", err)
	}

	return GetUser(ctx, db, id)
}

// GetUser returns a user by ID.
func GetUser(ctx context.Context, db *sql.DB, id int64) (*model.User, error) {
	u, err := scanUser(db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, role, company_name, email, phone, address, created_at, deleted_at
		 FROM users WHERE id = ?`, id,
	))
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}
	return u, nil
}

// GetUserByUsername returns a user by username (including soft-deleted, so
// login can distinguish deleted accounts from unknown ones).
func GetUserByUsername(ctx context.Context, db *sql.DB, username string) (*model.User, error) {
	u, err := scanUser(db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, role, company_name, email, phone, address, created_at, deleted_at
		 FROM users WHERE username = ?`, username,
	))
	if err != nil {
		return nil, fmt.Errorf("getting user by username: %w", err)
	}
	return u, nil
}

// ListUsersByRole returns all non-deleted users with the given role.
func ListUsersByRole(ctx context.Context, db *sql.DB, role model.Role) ([]model.User, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, username, password_hash, role, company_name, email, phone, address, created_at, deleted_at
		 FROM users WHERE deleted_at IS NULL AND role = ? ORDER BY id`, role,
	)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning user: %w", err)
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

// UpdateUser updates a user's username and profile fields. The role and
// password hash are managed by dedicated operations.
func UpdateUser(ctx context.Context, db *sql.DB, id int64, u model.User) error {
	result, err := db.ExecContext(ctx,
		`UPDATE users SET username = ?, company_name = ?, email = ?, phone = ?, address = ?
		 WHERE id = ? AND deleted_at IS NULL`,
		u.Username, nullable(u.CompanyName), nullable(u.Email), nullable(u.Phone), nullable(u.Address), id,
	)
	if err != nil {
		return fmt.Errorf("updating user: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("updating user %d: %w", id, ErrNotFound)
	}
	return nil
}

// UpdateUserPassword updates a user's password hash.
func UpdateUserPassword(ctx context.Context, db *sql.DB, id int64, passwordHash string) error {
	result, err := db.ExecContext(ctx,
		`UPDATE users SET password_hash = ? WHERE id = ? AND deleted_at IS NULL`,
		passwordHash, id,
	)
	if err != nil {
		return fmt.Errorf("updating user password: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("updating password for user %d: %w", id, ErrNotFound)
	}
	return nil
}

// DeleteUser soft-deletes a user.
func DeleteUser(ctx context.Context, db *sql.DB, id int64) error {
	result, err := db.ExecContext(ctx,
		`UPDATE users SET deleted_at = CURRENT_TIMESTAMP WHERE id = ? AND deleted_at IS NULL`,
		id,
	)
	if err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("deleting user %d: %w", id, ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*model.User, error) {
	u := &model.User{}
	var company, email, phone, address sql.NullString
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role,
		&company, &email, &phone, &address, &u.CreatedAt, &u.DeletedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	u.CompanyName = company.String
	u.Email = email.String
	u.Phone = phone.String
	u.Address = address.String
	return u, nil
}

// nullable maps empty strings to NULL so optional profile columns stay NULL
// instead of collecting empty strings.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
