package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"community_help/internal/classifier"
	"community_help/internal/model"
	"community_help/internal/repository"
)

var (
	ErrMissingFields   = errors.New("all fields are required")
	ErrRequestNotFound = errors.New("help request not found")
)

// RequestService defines operations for help requests
type RequestService interface {
	SubmitRequest(ctx context.Context, form model.CreateHelpRequestForm) (*model.HelpRequest, error)
	ListRequests(ctx context.Context) ([]model.HelpRequest, error)
	ListRequestsFiltered(ctx context.Context, urgencyFilter, statusFilter string) ([]model.HelpRequest, error)
	ToggleSolvedStatus(ctx context.Context, id int64) (model.SolvedStatus, error)
}

type requestService struct {
	repo repository.RequestRepository
}

// NewRequestService creates a new RequestService
func NewRequestService(repo repository.RequestRepository) RequestService {
	return &requestService{repo: repo}
}

// SubmitRequest validates the form, classifies urgency and persists the request.
// All five fields are rejected as a group if any is blank after trimming.
func (s *requestService) SubmitRequest(ctx context.Context, form model.CreateHelpRequestForm) (*model.HelpRequest, error) {
	name := strings.TrimSpace(form.Name)
	phone := strings.TrimSpace(form.Phone)
	address := strings.TrimSpace(form.Address)
	category := strings.TrimSpace(form.Category)
	description := strings.TrimSpace(form.Description)

	if name == "" || phone == "" || address == "" || category == "" || description == "" {
		return nil, ErrMissingFields
	}

	req := &model.HelpRequest{
		Name:         name,
		Phone:        phone,
		Address:      address,
		Category:     category,
		Description:  description,
		Urgency:      classifier.PredictUrgency(description),
		SolvedStatus: model.StatusUnsolved,
		CreatedAt:    time.Now(),
	}

	if err := s.repo.Create(ctx, req); err != nil {
		return nil, fmt.Errorf("failed to create help request in repository: %w", err)
	}
	return req, nil
}

// ListRequests returns all help requests, newest first
func (s *requestService) ListRequests(ctx context.Context) ([]model.HelpRequest, error) {
	requests, err := s.repo.FindAll(ctx, model.RequestFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to list help requests: %w", err)
	}
	return requests, nil
}

// ListRequestsFiltered returns help requests matching the admin filter values.
// "all" (or anything unrecognized) means no constraint for that predicate.
func (s *requestService) ListRequestsFiltered(ctx context.Context, urgencyFilter, statusFilter string) ([]model.HelpRequest, error) {
	var filters model.RequestFilters

	if urgencyFilter == "emergency" {
		urgency := model.UrgencyEmergency
		filters.Urgency = &urgency
	}
	switch statusFilter {
	case "solved":
		status := model.StatusSolved
		filters.SolvedStatus = &status
	case "unsolved":
		status := model.StatusUnsolved
		filters.SolvedStatus = &status
	}

	requests, err := s.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list filtered help requests: %w", err)
	}
	return requests, nil
}

// ToggleSolvedStatus flips the solved status of a request and returns the new status
func (s *requestService) ToggleSolvedStatus(ctx context.Context, id int64) (model.SolvedStatus, error) {
	req, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", fmt.Errorf("failed to find help request for toggle: %w", err)
	}
	if req == nil {
		return "", ErrRequestNotFound
	}

	newStatus := model.StatusSolved
	if req.SolvedStatus == model.StatusSolved {
		newStatus = model.StatusUnsolved
	}

	if err := s.repo.UpdateSolvedStatus(ctx, id, newStatus); err != nil {
		return "", fmt.Errorf("failed to toggle solved status: %w", err)
	}
	return newStatus, nil
}
