package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"community_help/internal/model"
	"community_help/internal/repository"
)

var (
	ErrEmailTaken        = errors.New("this email is already registered as a volunteer")
	ErrVolunteerNotFound = errors.New("email not found, please register first")
)

// VolunteerService provides volunteer registration, login and alert services
type VolunteerService interface {
	Register(ctx context.Context, name, phone, email string) (*model.Volunteer, error)
	Login(ctx context.Context, email string) (*model.Volunteer, error)
	GetByEmail(ctx context.Context, email string) (*model.Volunteer, error)
	NewEmergencyAlerts(ctx context.Context, vol *model.Volunteer) ([]model.HelpRequest, error)
	DismissAlerts(ctx context.Context, email string) error
	CountVolunteers(ctx context.Context) (int64, error)
}

type volunteerService struct {
	volRepo     repository.VolunteerRepository
	requestRepo repository.RequestRepository
}

// NewVolunteerService creates a new VolunteerService
func NewVolunteerService(volRepo repository.VolunteerRepository, requestRepo repository.RequestRepository) VolunteerService {
	return &volunteerService{
		volRepo:     volRepo,
		requestRepo: requestRepo,
	}
}

// Register creates a new volunteer account. The email must be unused,
// compared case-insensitively. The alert watermark is seeded with the
// current max request ID so pre-existing emergencies are not shown as new.
func (s *volunteerService) Register(ctx context.Context, name, phone, email string) (*model.Volunteer, error) {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	email = strings.TrimSpace(email)

	if name == "" || phone == "" || email == "" {
		return nil, ErrMissingFields
	}

	existing, err := s.volRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing volunteer: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	lastSeen, err := s.requestRepo.MaxID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to seed alert watermark: %w", err)
	}

	vol := &model.Volunteer{
		Name:            name,
		Phone:           phone,
		Email:           email,
		RegisteredAt:    time.Now(),
		LastSeenAlertID: lastSeen,
	}

	if err := s.volRepo.Create(ctx, vol); err != nil {
		return nil, fmt.Errorf("failed to create volunteer in repository: %w", err)
	}
	return vol, nil
}

// Login looks up an existing volunteer by email
func (s *volunteerService) Login(ctx context.Context, email string) (*model.Volunteer, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, ErrMissingFields
	}

	vol, err := s.volRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to find volunteer by email: %w", err)
	}
	if vol == nil {
		return nil, ErrVolunteerNotFound
	}
	return vol, nil
}

// GetByEmail returns the volunteer for the given email, or ErrVolunteerNotFound
func (s *volunteerService) GetByEmail(ctx context.Context, email string) (*model.Volunteer, error) {
	vol, err := s.volRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to find volunteer by email: %w", err)
	}
	if vol == nil {
		return nil, ErrVolunteerNotFound
	}
	return vol, nil
}

// NewEmergencyAlerts returns Emergency requests created after the
// volunteer's alert watermark, newest first
func (s *volunteerService) NewEmergencyAlerts(ctx context.Context, vol *model.Volunteer) ([]model.HelpRequest, error) {
	alerts, err := s.requestRepo.FindNewEmergencies(ctx, vol.LastSeenAlertID)
	if err != nil {
		return nil, fmt.Errorf("failed to list emergency alerts: %w", err)
	}
	return alerts, nil
}

// DismissAlerts advances the volunteer's watermark to the current max request ID
func (s *volunteerService) DismissAlerts(ctx context.Context, email string) error {
	maxID, err := s.requestRepo.MaxID(ctx)
	if err != nil {
		return fmt.Errorf("failed to get latest request ID: %w", err)
	}
	if maxID == 0 {
		return nil // nothing to dismiss
	}
	if err := s.volRepo.UpdateLastSeenAlertID(ctx, email, maxID); err != nil {
		return fmt.Errorf("failed to dismiss alerts: %w", err)
	}
	return nil
}

// CountVolunteers returns the number of registered volunteers
func (s *volunteerService) CountVolunteers(ctx context.Context) (int64, error) {
	count, err := s.volRepo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count volunteers: %w", err)
	}
	return count, nil
}
