package repository

import (
	"context"
	"testing"
	"time"

	"community_help/internal/model"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var requestColumns = []string{"id", "name", "phone", "address", "category", "description", "urgency", "solved_status", "created_at"}

func sampleRequestRow(id int64, urgency model.Urgency, status model.SolvedStatus) []any {
	return []any{
		id, "Alice", "555-0101", "12 Main St", "Medical", "need a doctor",
		urgency, status, time.Now(),
	}
}

func TestRequestRepository_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewRequestRepository(mock)

	req := &model.HelpRequest{
		Name:         "Alice",
		Phone:        "555-0101",
		Address:      "12 Main St",
		Category:     "Medical",
		Description:  "need a doctor",
		Urgency:      model.UrgencyMedium,
		SolvedStatus: model.StatusUnsolved,
		CreatedAt:    time.Now(),
	}

	mock.ExpectQuery(`INSERT INTO help_requests`).
		WithArgs(req.Name, req.Phone, req.Address, req.Category, req.Description,
			req.Urgency, req.SolvedStatus, req.CreatedAt).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(7)))

	err = repo.Create(context.Background(), req)

	assert.NoError(t, err)
	assert.Equal(t, int64(7), req.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestRepository_FindByID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewRequestRepository(mock)

	mock.ExpectQuery(`SELECT (.+) FROM help_requests WHERE id = \$1`).
		WithArgs(int64(99)).
		WillReturnRows(pgxmock.NewRows(requestColumns))

	req, err := repo.FindByID(context.Background(), 99)

	assert.NoError(t, err)
	assert.Nil(t, req)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestRepository_FindAll_NoFilters(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewRequestRepository(mock)

	rows := pgxmock.NewRows(requestColumns).
		AddRow(sampleRequestRow(2, model.UrgencyEmergency, model.StatusUnsolved)...).
		AddRow(sampleRequestRow(1, model.UrgencyLow, model.StatusSolved)...)
	mock.ExpectQuery(`SELECT (.+) FROM help_requests ORDER BY created_at DESC`).
		WillReturnRows(rows)

	requests, err := repo.FindAll(context.Background(), model.RequestFilters{})

	assert.NoError(t, err)
	assert.Len(t, requests, 2)
	assert.Equal(t, int64(2), requests[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestRepository_FindAll_BothFilters(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewRequestRepository(mock)

	urgency := model.UrgencyEmergency
	status := model.StatusUnsolved

	mock.ExpectQuery(`SELECT (.+) FROM help_requests WHERE urgency = \$1 AND solved_status = \$2 ORDER BY created_at DESC`).
		WithArgs(urgency, status).
		WillReturnRows(pgxmock.NewRows(requestColumns).
			AddRow(sampleRequestRow(3, urgency, status)...))

	requests, err := repo.FindAll(context.Background(), model.RequestFilters{
		Urgency:      &urgency,
		SolvedStatus: &status,
	})

	assert.NoError(t, err)
	assert.Len(t, requests, 1)
	assert.Equal(t, model.UrgencyEmergency, requests[0].Urgency)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestRepository_FindAll_StatusFilterOnly(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewRequestRepository(mock)

	status := model.StatusSolved

	mock.ExpectQuery(`SELECT (.+) FROM help_requests WHERE solved_status = \$1 ORDER BY created_at DESC`).
		WithArgs(status).
		WillReturnRows(pgxmock.NewRows(requestColumns))

	requests, err := repo.FindAll(context.Background(), model.RequestFilters{SolvedStatus: &status})

	assert.NoError(t, err)
	assert.Empty(t, requests)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestRepository_UpdateSolvedStatus(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewRequestRepository(mock)

	mock.ExpectExec(`UPDATE help_requests SET solved_status = \$1 WHERE id = \$2`).
		WithArgs(model.StatusSolved, int64(5)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err = repo.UpdateSolvedStatus(context.Background(), 5, model.StatusSolved)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestRepository_UpdateSolvedStatus_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewRequestRepository(mock)

	mock.ExpectExec(`UPDATE help_requests SET solved_status = \$1 WHERE id = \$2`).
		WithArgs(model.StatusSolved, int64(404)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err = repo.UpdateSolvedStatus(context.Background(), 404, model.StatusSolved)

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestRepository_FindNewEmergencies(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewRequestRepository(mock)

	mock.ExpectQuery(`SELECT (.+) FROM help_requests WHERE urgency = \$1 AND id > \$2 ORDER BY created_at DESC`).
		WithArgs(model.UrgencyEmergency, int64(10)).
		WillReturnRows(pgxmock.NewRows(requestColumns).
			AddRow(sampleRequestRow(12, model.UrgencyEmergency, model.StatusUnsolved)...))

	alerts, err := repo.FindNewEmergencies(context.Background(), 10)

	assert.NoError(t, err)
	assert.Len(t, alerts, 1)
	assert.Equal(t, int64(12), alerts[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestRepository_MaxID_EmptyTable(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewRequestRepository(mock)

	mock.ExpectQuery(`SELECT COALESCE\(MAX\(id\), 0\) FROM help_requests`).
		WillReturnRows(pgxmock.NewRows([]string{"coalesce"}).AddRow(int64(0)))

	maxID, err := repo.MaxID(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, int64(0), maxID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
