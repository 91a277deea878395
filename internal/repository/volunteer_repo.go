package repository

import (
	"context"
	"errors"
	"fmt"

	"community_help/internal/model"

	"github.com/jackc/pgx/v5"
)

// VolunteerRepository defines operations for volunteer data
type VolunteerRepository interface {
	Create(ctx context.Context, vol *model.Volunteer) error
	FindByEmail(ctx context.Context, email string) (*model.Volunteer, error)
	UpdateLastSeenAlertID(ctx context.Context, email string, lastSeenID int64) error
	Count(ctx context.Context) (int64, error)
}

type volunteerRepository struct {
	db PgxIface
}

// NewVolunteerRepository creates a new VolunteerRepository
func NewVolunteerRepository(db PgxIface) VolunteerRepository {
	return &volunteerRepository{db: db}
}

// Create inserts a new volunteer into the database
func (r *volunteerRepository) Create(ctx context.Context, vol *model.Volunteer) error {
	sql := `INSERT INTO volunteers (name, phone, email, registered_at, last_seen_alert_id)
            VALUES ($1, $2, $3, $4, $5) RETURNING id`
	err := r.db.QueryRow(ctx, sql, vol.Name, vol.Phone, vol.Email, vol.RegisteredAt, vol.LastSeenAlertID).Scan(&vol.ID)
	if err != nil {
		return fmt.Errorf("failed to create volunteer: %w", err)
	}
	return nil
}

// FindByEmail retrieves a volunteer by email, ignoring case
func (r *volunteerRepository) FindByEmail(ctx context.Context, email string) (*model.Volunteer, error) {
	vol := &model.Volunteer{}
	sql := `SELECT id, name, phone, email, registered_at, last_seen_alert_id
            FROM volunteers WHERE LOWER(email) = LOWER($1)`
	err := r.db.QueryRow(ctx, sql, email).Scan(
		&vol.ID, &vol.Name, &vol.Phone, &vol.Email, &vol.RegisteredAt, &vol.LastSeenAlertID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Volunteer not found, service layer handles it
		}
		return nil, fmt.Errorf("failed to find volunteer by email: %w", err)
	}
	return vol, nil
}

// UpdateLastSeenAlertID advances the alert watermark for a volunteer
func (r *volunteerRepository) UpdateLastSeenAlertID(ctx context.Context, email string, lastSeenID int64) error {
	sql := `UPDATE volunteers SET last_seen_alert_id = $1 WHERE LOWER(email) = LOWER($2)`
	cmdTag, err := r.db.Exec(ctx, sql, lastSeenID, email)
	if err != nil {
		return fmt.Errorf("failed to update last seen alert ID: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("volunteer not found for alert watermark update")
	}
	return nil
}

// Count returns the number of registered volunteers
func (r *volunteerRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	sql := `SELECT COUNT(*) FROM volunteers`
	if err := r.db.QueryRow(ctx, sql).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count volunteers: %w", err)
	}
	return count, nil
}
