package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"community_help/internal/model"

	"github.com/jackc/pgx/v5"
)

// RequestRepository defines operations for help request data
type RequestRepository interface {
	Create(ctx context.Context, req *model.HelpRequest) error
	FindByID(ctx context.Context, id int64) (*model.HelpRequest, error)
	FindAll(ctx context.Context, filters model.RequestFilters) ([]model.HelpRequest, error)
	UpdateSolvedStatus(ctx context.Context, id int64, status model.SolvedStatus) error
	FindNewEmergencies(ctx context.Context, sinceID int64) ([]model.HelpRequest, error)
	MaxID(ctx context.Context) (int64, error)
}

type requestRepository struct {
	db PgxIface
}

// NewRequestRepository creates a new RequestRepository
func NewRequestRepository(db PgxIface) RequestRepository {
	return &requestRepository{db: db}
}

// Create inserts a new help request into the database
func (r *requestRepository) Create(ctx context.Context, req *model.HelpRequest) error {
	sql := `INSERT INTO help_requests (name, phone, address, category, description, urgency, solved_status, created_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	err := r.db.QueryRow(ctx, sql, req.Name, req.Phone, req.Address, req.Category, req.Description,
		req.Urgency, req.SolvedStatus, req.CreatedAt).Scan(&req.ID)
	if err != nil {
		return fmt.Errorf("failed to create help request: %w", err)
	}
	return nil
}

// FindByID retrieves a help request by its ID
func (r *requestRepository) FindByID(ctx context.Context, id int64) (*model.HelpRequest, error) {
	req := &model.HelpRequest{}
	sql := `SELECT id, name, phone, address, category, description, urgency, solved_status, created_at
            FROM help_requests WHERE id = $1`
	err := r.db.QueryRow(ctx, sql, id).Scan(
		&req.ID, &req.Name, &req.Phone, &req.Address, &req.Category,
		&req.Description, &req.Urgency, &req.SolvedStatus, &req.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found, service layer handles it
		}
		return nil, fmt.Errorf("failed to find help request by ID: %w", err)
	}
	return req, nil
}

// FindAll retrieves help requests with optional filters, newest first.
// Filter values are always bound as parameters, never interpolated.
func (r *requestRepository) FindAll(ctx context.Context, filters model.RequestFilters) ([]model.HelpRequest, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT id, name, phone, address, category, description, urgency, solved_status, created_at
                               FROM help_requests`)

	args := []interface{}{}
	argCount := 1
	var conditions []string

	if filters.Urgency != nil {
		conditions = append(conditions, fmt.Sprintf("urgency = $%d", argCount))
		args = append(args, *filters.Urgency)
		argCount++
	}
	if filters.SolvedStatus != nil {
		conditions = append(conditions, fmt.Sprintf("solved_status = $%d", argCount))
		args = append(args, *filters.SolvedStatus)
		//argCount++
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE ")
		queryBuilder.WriteString(strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY created_at DESC")

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query help requests: %w", err)
	}
	defer rows.Close()

	return scanRequests(rows)
}

// UpdateSolvedStatus sets the solved status of a help request
func (r *requestRepository) UpdateSolvedStatus(ctx context.Context, id int64, status model.SolvedStatus) error {
	sql := `UPDATE help_requests SET solved_status = $1 WHERE id = $2`
	cmdTag, err := r.db.Exec(ctx, sql, status, id)
	if err != nil {
		return fmt.Errorf("failed to update solved status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("help request not found for status update")
	}
	return nil
}

// FindNewEmergencies retrieves Emergency requests with an ID greater than
// sinceID, newest first. Used for volunteer alert banners.
func (r *requestRepository) FindNewEmergencies(ctx context.Context, sinceID int64) ([]model.HelpRequest, error) {
	sql := `SELECT id, name, phone, address, category, description, urgency, solved_status, created_at
            FROM help_requests WHERE urgency = $1 AND id > $2 ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, sql, model.UrgencyEmergency, sinceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query emergency alerts: %w", err)
	}
	defer rows.Close()

	return scanRequests(rows)
}

// MaxID returns the highest help request ID, or 0 when the table is empty
func (r *requestRepository) MaxID(ctx context.Context) (int64, error) {
	var maxID int64
	sql := `SELECT COALESCE(MAX(id), 0) FROM help_requests`
	if err := r.db.QueryRow(ctx, sql).Scan(&maxID); err != nil {
		return 0, fmt.Errorf("failed to get max help request ID: %w", err)
	}
	return maxID, nil
}

func scanRequests(rows pgx.Rows) ([]model.HelpRequest, error) {
	var requests []model.HelpRequest
	for rows.Next() {
		var req model.HelpRequest
		if err := rows.Scan(
			&req.ID, &req.Name, &req.Phone, &req.Address, &req.Category,
			&req.Description, &req.Urgency, &req.SolvedStatus, &req.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan help request row: %w", err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating help request rows: %w", err)
	}
	return requests, nil
}
