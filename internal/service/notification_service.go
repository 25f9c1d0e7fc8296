package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campushub/campus-hub-api/internal/models"
	"github.com/campushub/campus-hub-api/pkg/docstore"
	appErrors "github.com/campushub/campus-hub-api/pkg/errors"
)

type notificationRepository interface {
	List(ctx context.Context) ([]models.Notification, error)
	FindByID(ctx context.Context, id models.NotificationID) (*models.Notification, error)
	Create(ctx context.Context, notification *models.Notification) error
	MarkRead(ctx context.Context, id models.NotificationID) error
}

// CreateNotificationRequest holds payload for posting a notification.
type CreateNotificationRequest struct {
	Sender  string `json:"sender" validate:"required"`
	Message string `json:"message" validate:"required"`
	Type    string `json:"type" validate:"required,oneof=grade_update announcement info message"`
}

// ReplyRequest holds payload for replying to a notification.
type ReplyRequest struct {
	Message string `json:"message" validate:"required"`
}

// dashboardInvalidator drops cached dashboard payloads after writes that
// change the feeds the dashboard aggregates.
type dashboardInvalidator interface {
	Invalidate(ctx context.Context, pattern string) error
}

// NotificationService handles the notification inbox.
type NotificationService struct {
	repo      notificationRepository
	cache     dashboardInvalidator
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewNotificationService constructs the notification service.
func NewNotificationService(repo notificationRepository, validate *validator.Validate, logger *zap.Logger) *NotificationService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{repo: repo, validator: validate, logger: logger, now: time.Now}
}

// AttachCache enables dashboard cache invalidation on writes. Optional.
func (s *NotificationService) AttachCache(cache dashboardInvalidator) {
	s.cache = cache
}

func (s *NotificationService) invalidateDashboard(ctx context.Context) {
	if s.cache == nil {
		return
	}
	// Best effort; the cache entry expires on its own TTL anyway.
	_ = s.cache.Invalidate(ctx, "dashboard:*")
}

// List returns all notifications, newest first.
func (s *NotificationService) List(ctx context.Context) ([]models.Notification, error) {
	notifications, err := s.repo.List(ctx)
	if err != nil {
		return nil, storeFailure(err, "failed to list notifications")
	}
	return notifications, nil
}

// Create posts a notification.
func (s *NotificationService) Create(ctx context.Context, req CreateNotificationRequest) (*models.Notification, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid notification payload")
	}
	notification := &models.Notification{
		Sender:    req.Sender,
		Message:   req.Message,
		Type:      models.NotificationType(req.Type),
		Timestamp: s.now().UTC(),
	}
	if err := s.repo.Create(ctx, notification); err != nil {
		return nil, storeFailure(err, "failed to create notification")
	}
	s.invalidateDashboard(ctx)
	return notification, nil
}

// MarkRead flips the read flag via a partial merge, leaving the rest of the
// record untouched.
func (s *NotificationService) MarkRead(ctx context.Context, id models.NotificationID) (*models.Notification, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "notification not found")
		}
		return nil, storeFailure(err, "failed to load notification")
	}
	if err := s.repo.MarkRead(ctx, id); err != nil {
		return nil, storeFailure(err, "failed to mark notification read")
	}
	notification, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeFailure(err, "failed to reload notification")
	}
	s.invalidateDashboard(ctx)
	return notification, nil
}

// Reply posts a reply to an existing notification as a new message-type
// notification addressed back to the sender.
func (s *NotificationService) Reply(ctx context.Context, id models.NotificationID, req ReplyRequest) (*models.Notification, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid reply payload")
	}
	original, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "notification not found")
		}
		return nil, storeFailure(err, "failed to load notification")
	}
	reply := &models.Notification{
		Sender:    "Student Portal",
		Message:   fmt.Sprintf("Reply to %s: %s", original.Sender, req.Message),
		Type:      models.NotificationMessage,
		Timestamp: s.now().UTC(),
	}
	if err := s.repo.Create(ctx, reply); err != nil {
		return nil, storeFailure(err, "failed to post reply")
	}
	s.invalidateDashboard(ctx)
	return reply, nil
}
