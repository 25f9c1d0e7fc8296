package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushub/campus-hub-api/internal/models"
	"github.com/campushub/campus-hub-api/internal/repository"
	"github.com/campushub/campus-hub-api/pkg/docstore"
	"github.com/campushub/campus-hub-api/pkg/docstore/memstore"
	appErrors "github.com/campushub/campus-hub-api/pkg/errors"
)

func newNotificationService(t *testing.T) *NotificationService {
	t.Helper()
	return NewNotificationService(repository.NewNotificationRepository(memstore.New()), nil, nil)
}

func TestNotificationServiceCreateAndList(t *testing.T) {
	svc := newNotificationService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateNotificationRequest{
		Sender:  "Registrar",
		Message: "Welcome to the new semester!",
		Type:    "announcement",
	})
	require.NoError(t, err)
	assert.False(t, created.Read)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Registrar", list[0].Sender)
}

func TestNotificationServiceRejectsUnknownType(t *testing.T) {
	svc := newNotificationService(t)

	_, err := svc.Create(context.Background(), CreateNotificationRequest{
		Sender:  "Registrar",
		Message: "hello",
		Type:    "broadcast",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestNotificationServiceMarkRead(t *testing.T) {
	svc := newNotificationService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateNotificationRequest{
		Sender:  "Library",
		Message: "Your reserved book is ready for pickup.",
		Type:    "info",
	})
	require.NoError(t, err)

	updated, err := svc.MarkRead(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, updated.Read)
	// Everything but the read flag survives the merge.
	assert.Equal(t, "Library", updated.Sender)
	assert.Equal(t, created.Message, updated.Message)
}

func TestNotificationServiceReply(t *testing.T) {
	svc := newNotificationService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateNotificationRequest{
		Sender:  "Grades Office",
		Message: "Midterm grades will be posted by Friday.",
		Type:    "info",
	})
	require.NoError(t, err)

	reply, err := svc.Reply(ctx, created.ID, ReplyRequest{Message: "Thanks for the heads up."})
	require.NoError(t, err)
	assert.Contains(t, reply.Message, "Grades Office")
	assert.Contains(t, reply.Message, "Thanks for the heads up.")

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestNotificationServiceMarkReadNotFound(t *testing.T) {
	svc := newNotificationService(t)

	_, err := svc.MarkRead(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

type unreachableNotificationStore struct{}

func (unreachableNotificationStore) List(context.Context) ([]models.Notification, error) {
	return nil, fmt.Errorf("list notifications: %w", docstore.ErrUnavailable)
}

func (unreachableNotificationStore) FindByID(context.Context, models.NotificationID) (*models.Notification, error) {
	return nil, fmt.Errorf("get notification: %w", docstore.ErrUnavailable)
}

func (unreachableNotificationStore) Create(context.Context, *models.Notification) error {
	return fmt.Errorf("create notification: %w", docstore.ErrUnavailable)
}

func (unreachableNotificationStore) MarkRead(context.Context, models.NotificationID) error {
	return fmt.Errorf("mark read: %w", docstore.ErrUnavailable)
}

func TestNotificationServiceMapsUnreachableStoreToTransportError(t *testing.T) {
	svc := NewNotificationService(unreachableNotificationStore{}, nil, nil)

	_, err := svc.List(context.Background())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrTransport.Code, appErrors.FromError(err).Code)
	assert.Equal(t, appErrors.ErrTransport.Status, appErrors.FromError(err).Status)

	_, err = svc.Create(context.Background(), CreateNotificationRequest{
		Sender: "Registrar", Message: "hello", Type: "info",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrTransport.Code, appErrors.FromError(err).Code)
}

type recordingInvalidator struct {
	patterns []string
}

func (r *recordingInvalidator) Invalidate(_ context.Context, pattern string) error {
	r.patterns = append(r.patterns, pattern)
	return nil
}

func TestNotificationServiceWritesInvalidateDashboard(t *testing.T) {
	svc := newNotificationService(t)
	inv := &recordingInvalidator{}
	svc.AttachCache(inv)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateNotificationRequest{
		Sender:  "Registrar",
		Message: "Spring registration opens Monday.",
		Type:    "announcement",
	})
	require.NoError(t, err)

	_, err = svc.MarkRead(ctx, created.ID)
	require.NoError(t, err)

	require.Len(t, inv.patterns, 2)
	assert.Equal(t, "dashboard:*", inv.patterns[0])
}
