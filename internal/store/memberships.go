package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/RagzJ/Event-Management/internal/model"
)

// CreateMembership creates an active membership starting today. The end date
// is computed from the duration code; unknown codes fail with
// model.ErrInvalidDuration before anything is written.
func CreateMembership(ctx context.Context, db *sql.DB, userID int64, duration string) (*model.Membership, error) {
	start := time.Now().UTC().Truncate(24 * time.Hour)
	end, err := model.ComputeEndDate(start, duration)
	if err != nil {
		return nil, fmt.Errorf("creating membership: %w", err)
	}

	result, err := db.ExecContext(ctx,
		`INSERT INTO memberships (user_id, duration, start_date, end_date, status)
		 VALUES (?, ?, ?, ?, ?)`,
		userID, duration, start, end, model.MembershipActive,
	)
	if err != nil {
		return nil, fmt.Errorf("creating membership: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting membership id: %w", err)
	}

	return GetMembership(ctx, db, id)
}

// GetMembership returns a membership by ID.
func GetMembership(ctx context.Context, db *sql.DB, id int64) (*model.Membership, error) {
	m := &model.Membership{}
	err := db.QueryRowContext(ctx,
		`SELECT m.id, m.user_id, m.duration, m.start_date, m.end_date, m.status, u.username
		 FROM memberships m
		 JOIN users u ON u.id = m.user_id
		 WHERE m.id = ?`, id,
	).Scan(&m.ID, &m.UserID, &m.Duration, &m.StartDate, &m.EndDate, &m.Status, &m.Username)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting membership: %w", err)
	}
	return m, nil
}

// ListMemberships returns all memberships with their owners' usernames.
func ListMemberships(ctx context.Context, db *sql.DB) ([]model.Membership, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT m.id, m.user_id, m.duration, m.start_date, m.end_date, m.status, u.username
		 FROM memberships m
		 JOIN users u ON u.id = m.user_id
		 ORDER BY m.id`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing memberships: %w", err)
	}
	defer rows.Close()

	var memberships []model.Membership
	for rows.Next() {
		var m model.Membership
		if err := rows.Scan(&m.ID, &m.UserID, &m.Duration, &m.StartDate, &m.EndDate, &m.Status, &m.Username); err != nil {
			return nil, fmt.Errorf("scanning membership: %w", err)
		}
		memberships = append(memberships, m)
	}
	return memberships, rows.Err()
}

// UpdateMembership changes a membership's duration and cancelled state. The
// start date is immutable; the end date is recomputed from it and the new
// duration code. A non-cancel update reactivates a cancelled membership.
func UpdateMembership(ctx context.Context, db *sql.DB, id int64, duration string, cancel bool) (*model.Membership, error) {
	var start time.Time
	err := db.QueryRowContext(ctx,
		`SELECT start_date FROM memberships WHERE id = ?`, id,
	).Scan(&start)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("updating membership %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("reading membership start date: %w", err)
	}

	end, err := model.ComputeEndDate(start, duration)
	if err != nil {
		return nil, fmt.Errorf("updating membership: %w", err)
	}

	status := model.MembershipActive
	if cancel {
		status = model.MembershipCancelled
	}

	_, err = db.ExecContext(ctx,
		`UPDATE memberships SET duration = ?, end_date = ?, status = ? WHERE id = ?`,
		duration, end, status, id,
	)
	if err != nil {
		return nil, fmt.Errorf("updating membership: %w", err)
	}

	return GetMembership(ctx, db, id)
}
