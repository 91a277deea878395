package service

import (
	"context"
	"testing"

	"community_help/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRequestRepo is an in-memory RequestRepository for service tests
type fakeRequestRepo struct {
	requests []model.HelpRequest
	nextID   int64
	lastErr  error
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{nextID: 1}
}

func (f *fakeRequestRepo) Create(_ context.Context, req *model.HelpRequest) error {
	if f.lastErr != nil {
		return f.lastErr
	}
	req.ID = f.nextID
	f.nextID++
	f.requests = append(f.requests, *req)
	return nil
}

func (f *fakeRequestRepo) FindByID(_ context.Context, id int64) (*model.HelpRequest, error) {
	for i := range f.requests {
		if f.requests[i].ID == id {
			req := f.requests[i]
			return &req, nil
		}
	}
	return nil, nil
}

func (f *fakeRequestRepo) FindAll(_ context.Context, filters model.RequestFilters) ([]model.HelpRequest, error) {
	var out []model.HelpRequest
	for _, req := range f.requests {
		if filters.Urgency != nil && req.Urgency != *filters.Urgency {
			continue
		}
		if filters.SolvedStatus != nil && req.SolvedStatus != *filters.SolvedStatus {
			continue
		}
		out = append(out, req)
	}
	return out, nil
}

func (f *fakeRequestRepo) UpdateSolvedStatus(_ context.Context, id int64, status model.SolvedStatus) error {
	for i := range f.requests {
		if f.requests[i].ID == id {
			f.requests[i].SolvedStatus = status
			return nil
		}
	}
	return ErrRequestNotFound
}

func (f *fakeRequestRepo) FindNewEmergencies(_ context.Context, sinceID int64) ([]model.HelpRequest, error) {
	var out []model.HelpRequest
	for _, req := range f.requests {
		if req.Urgency == model.UrgencyEmergency && req.ID > sinceID {
			out = append(out, req)
		}
	}
	return out, nil
}

func (f *fakeRequestRepo) MaxID(_ context.Context) (int64, error) {
	return f.nextID - 1, nil
}

func validForm() model.CreateHelpRequestForm {
	return model.CreateHelpRequestForm{
		Name:        "Alice",
		Phone:       "555-0101",
		Address:     "12 Main St",
		Category:    "Medical",
		Description: "I need food and water for my family",
	}
}

func TestSubmitRequest_ClassifiesAndPersists(t *testing.T) {
	repo := newFakeRequestRepo()
	svc := NewRequestService(repo)

	req, err := svc.SubmitRequest(context.Background(), validForm())

	require.NoError(t, err)
	assert.Equal(t, int64(1), req.ID)
	assert.Equal(t, model.UrgencyMedium, req.Urgency)
	assert.Equal(t, model.StatusUnsolved, req.SolvedStatus)
	assert.False(t, req.CreatedAt.IsZero())
	assert.Len(t, repo.requests, 1)
}

func TestSubmitRequest_BlankFieldLeavesStoreUnchanged(t *testing.T) {
	repo := newFakeRequestRepo()
	svc := NewRequestService(repo)

	form := validForm()
	form.Address = "   " // blank after trimming

	req, err := svc.SubmitRequest(context.Background(), form)

	assert.ErrorIs(t, err, ErrMissingFields)
	assert.Nil(t, req)
	assert.Empty(t, repo.requests)
}

func TestSubmitRequest_TrimsFields(t *testing.T) {
	repo := newFakeRequestRepo()
	svc := NewRequestService(repo)

	form := validForm()
	form.Name = "  Alice  "

	req, err := svc.SubmitRequest(context.Background(), form)

	require.NoError(t, err)
	assert.Equal(t, "Alice", req.Name)
}

func TestSubmitRequest_EmergencyDescription(t *testing.T) {
	repo := newFakeRequestRepo()
	svc := NewRequestService(repo)

	form := validForm()
	form.Description = "Patient is unconscious after the accident"

	req, err := svc.SubmitRequest(context.Background(), form)

	require.NoError(t, err)
	assert.Equal(t, model.UrgencyEmergency, req.Urgency)
}

func TestToggleSolvedStatus_FlipsBothWays(t *testing.T) {
	repo := newFakeRequestRepo()
	svc := NewRequestService(repo)

	req, err := svc.SubmitRequest(context.Background(), validForm())
	require.NoError(t, err)

	status, err := svc.ToggleSolvedStatus(context.Background(), req.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusSolved, status)

	status, err = svc.ToggleSolvedStatus(context.Background(), req.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusUnsolved, status)
}

func TestToggleSolvedStatus_NotFound(t *testing.T) {
	repo := newFakeRequestRepo()
	svc := NewRequestService(repo)

	_, err := svc.ToggleSolvedStatus(context.Background(), 404)

	assert.ErrorIs(t, err, ErrRequestNotFound)
	assert.Empty(t, repo.requests)
}

func TestListRequestsFiltered_TranslatesFilterValues(t *testing.T) {
	repo := newFakeRequestRepo()
	svc := NewRequestService(repo)

	emergency := validForm()
	emergency.Description = "fire in the kitchen"
	_, err := svc.SubmitRequest(context.Background(), emergency)
	require.NoError(t, err)

	medium, err := svc.SubmitRequest(context.Background(), validForm())
	require.NoError(t, err)

	_, err = svc.ToggleSolvedStatus(context.Background(), medium.ID)
	require.NoError(t, err)

	// urgency=emergency narrows to Emergency requests
	requests, err := svc.ListRequestsFiltered(context.Background(), "emergency", "all")
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, model.UrgencyEmergency, requests[0].Urgency)

	// status=solved narrows to Solved requests
	requests, err = svc.ListRequestsFiltered(context.Background(), "all", "solved")
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, model.StatusSolved, requests[0].SolvedStatus)

	// both filters AND together
	requests, err = svc.ListRequestsFiltered(context.Background(), "emergency", "solved")
	require.NoError(t, err)
	assert.Empty(t, requests)

	// "all"/"all" returns everything
	requests, err = svc.ListRequestsFiltered(context.Background(), "all", "all")
	require.NoError(t, err)
	assert.Len(t, requests, 2)
}
