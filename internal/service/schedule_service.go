package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campushub/campus-hub-api/internal/models"
	"github.com/campushub/campus-hub-api/pkg/docstore"
	appErrors "github.com/campushub/campus-hub-api/pkg/errors"
)

type calendarRepository interface {
	List(ctx context.Context, from, to *time.Time) ([]models.CalendarEvent, error)
	FindByID(ctx context.Context, id models.EventID) (*models.CalendarEvent, error)
	Create(ctx context.Context, event *models.CalendarEvent) error
	Update(ctx context.Context, id models.EventID, event models.CalendarEvent) error
	Delete(ctx context.Context, id models.EventID) error
}

// EventRequest holds payload for creating or editing calendar events.
type EventRequest struct {
	Title       string    `json:"title" validate:"required"`
	Start       time.Time `json:"start" validate:"required"`
	End         time.Time `json:"end" validate:"required,gtfield=Start"`
	Type        string    `json:"type" validate:"required,oneof=class test other"`
	Description string    `json:"description"`
}

// ScheduleService handles the personal calendar.
type ScheduleService struct {
	repo      calendarRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewScheduleService constructs the schedule service.
func NewScheduleService(repo calendarRepository, validate *validator.Validate, logger *zap.Logger) *ScheduleService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleService{repo: repo, validator: validate, logger: logger}
}

// List returns events, optionally restricted to a time window.
func (s *ScheduleService) List(ctx context.Context, from, to *time.Time) ([]models.CalendarEvent, error) {
	events, err := s.repo.List(ctx, from, to)
	if err != nil {
		return nil, storeFailure(err, "failed to list events")
	}
	return events, nil
}

// Create adds a calendar event.
func (s *ScheduleService) Create(ctx context.Context, req EventRequest) (*models.CalendarEvent, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid event payload")
	}
	event := &models.CalendarEvent{
		Title:       req.Title,
		Start:       req.Start,
		End:         req.End,
		Type:        models.EventType(req.Type),
		Description: req.Description,
	}
	if err := s.repo.Create(ctx, event); err != nil {
		return nil, storeFailure(err, "failed to create event")
	}
	return event, nil
}

// Update modifies an existing event.
func (s *ScheduleService) Update(ctx context.Context, id models.EventID, req EventRequest) (*models.CalendarEvent, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid event payload")
	}
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "event not found")
		}
		return nil, storeFailure(err, "failed to load event")
	}
	event.Title = req.Title
	event.Start = req.Start
	event.End = req.End
	event.Type = models.EventType(req.Type)
	event.Description = req.Description
	if err := s.repo.Update(ctx, id, *event); err != nil {
		return nil, storeFailure(err, "failed to update event")
	}
	return event, nil
}

// Delete removes an event.
func (s *ScheduleService) Delete(ctx context.Context, id models.EventID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return appErrors.Clone(appErrors.ErrNotFound, "event not found")
		}
		return storeFailure(err, "failed to load event")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return storeFailure(err, "failed to delete event")
	}
	return nil
}
