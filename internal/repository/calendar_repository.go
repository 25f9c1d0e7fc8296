package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/campushub/campus-hub-api/internal/models"
	"github.com/campushub/campus-hub-api/pkg/docstore"
)

// CalendarRepository manages personal schedule entries.
type CalendarRepository struct {
	store docstore.Store
}

// NewCalendarRepository constructs a CalendarRepository.
func NewCalendarRepository(store docstore.Store) *CalendarRepository {
	return &CalendarRepository{store: store}
}

// List returns calendar events ordered by start time, optionally clipped to
// a window. The store only filters on equality, so the range is applied here.
func (r *CalendarRepository) List(ctx context.Context, from, to *time.Time) ([]models.CalendarEvent, error) {
	docs, err := r.store.List(ctx, CollectionCalendar, docstore.Query{OrderBy: fieldStart})
	if err != nil {
		return nil, fmt.Errorf("list calendar events: %w", err)
	}
	events, err := decodeAll[models.CalendarEvent](docs)
	if err != nil {
		return nil, err
	}
	if from == nil && to == nil {
		return events, nil
	}
	filtered := events[:0]
	for _, e := range events {
		if from != nil && e.End.Before(*from) {
			continue
		}
		if to != nil && e.Start.After(*to) {
			continue
		}
		filtered = append(filtered, e)
	}
	return filtered, nil
}

// FindByID fetches an event by storage key.
func (r *CalendarRepository) FindByID(ctx context.Context, id models.EventID) (*models.CalendarEvent, error) {
	doc, err := r.store.Get(ctx, CollectionCalendar, string(id))
	if err != nil {
		return nil, err
	}
	event, err := decode[models.CalendarEvent](string(id), doc)
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// Create inserts an event and assigns its storage key.
func (r *CalendarRepository) Create(ctx context.Context, event *models.CalendarEvent) error {
	data, err := encode(event)
	if err != nil {
		return err
	}
	key, err := r.store.Add(ctx, CollectionCalendar, data)
	if err != nil {
		return fmt.Errorf("create calendar event: %w", err)
	}
	event.ID = models.EventID(key)
	return nil
}

// Update merges the event's fields into the stored document.
func (r *CalendarRepository) Update(ctx context.Context, id models.EventID, event models.CalendarEvent) error {
	patch, err := encode(event)
	if err != nil {
		return err
	}
	return r.store.Update(ctx, CollectionCalendar, string(id), patch)
}

// Delete removes an event.
func (r *CalendarRepository) Delete(ctx context.Context, id models.EventID) error {
	return r.store.Delete(ctx, CollectionCalendar, string(id))
}
