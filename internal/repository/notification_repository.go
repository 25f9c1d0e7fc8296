package repository

import (
	"context"
	"fmt"

	"github.com/campushub/campus-hub-api/internal/models"
	"github.com/campushub/campus-hub-api/pkg/docstore"
)

// NotificationRepository manages persistence for notifications.
type NotificationRepository struct {
	store docstore.Store
}

// NewNotificationRepository constructs a NotificationRepository.
func NewNotificationRepository(store docstore.Store) *NotificationRepository {
	return &NotificationRepository{store: store}
}

// CreateAll inserts the given notifications in one atomic batch.
func (r *NotificationRepository) CreateAll(ctx context.Context, notifications []models.Notification) error {
	ops := make([]docstore.Op, 0, len(notifications))
	for i := range notifications {
		data, err := encode(&notifications[i])
		if err != nil {
			return err
		}
		ops = append(ops, docstore.Op{Kind: docstore.OpAdd, Collection: CollectionNotifications, Data: data})
	}
	if err := r.store.Batch(ctx, ops); err != nil {
		return fmt.Errorf("seed notifications: %w", err)
	}
	return nil
}

// List returns all notifications, newest first.
func (r *NotificationRepository) List(ctx context.Context) ([]models.Notification, error) {
	docs, err := r.store.List(ctx, CollectionNotifications, docstore.Query{OrderBy: fieldTimestamp, Desc: true})
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return decodeAll[models.Notification](docs)
}

// Recent returns the newest notifications up to limit.
func (r *NotificationRepository) Recent(ctx context.Context, limit int) ([]models.Notification, error) {
	docs, err := r.store.List(ctx, CollectionNotifications, docstore.Query{OrderBy: fieldTimestamp, Desc: true, Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("list recent notifications: %w", err)
	}
	return decodeAll[models.Notification](docs)
}

// FindByID fetches a notification by storage key.
func (r *NotificationRepository) FindByID(ctx context.Context, id models.NotificationID) (*models.Notification, error) {
	doc, err := r.store.Get(ctx, CollectionNotifications, string(id))
	if err != nil {
		return nil, err
	}
	notification, err := decode[models.Notification](string(id), doc)
	if err != nil {
		return nil, err
	}
	return &notification, nil
}

// Create inserts a notification and assigns its storage key.
func (r *NotificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	data, err := encode(notification)
	if err != nil {
		return err
	}
	key, err := r.store.Add(ctx, CollectionNotifications, data)
	if err != nil {
		return fmt.Errorf("create notification: %w", err)
	}
	notification.ID = models.NotificationID(key)
	return nil
}

// MarkRead flips the read flag with a partial merge, leaving every other
// field untouched.
func (r *NotificationRepository) MarkRead(ctx context.Context, id models.NotificationID) error {
	return r.store.Update(ctx, CollectionNotifications, string(id), docstore.Document{fieldRead: true})
}

// Count returns the number of notifications.
func (r *NotificationRepository) Count(ctx context.Context) (int, error) {
	docs, err := r.store.List(ctx, CollectionNotifications, docstore.Query{})
	if err != nil {
		return 0, fmt.Errorf("count notifications: %w", err)
	}
	return len(docs), nil
}
