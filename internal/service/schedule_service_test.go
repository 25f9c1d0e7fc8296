package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushub/campus-hub-api/internal/repository"
	appErrors "github.com/campushub/campus-hub-api/pkg/errors"
	"github.com/campushub/campus-hub-api/pkg/docstore/memstore"
)

func newScheduleService(t *testing.T) *ScheduleService {
	t.Helper()
	return NewScheduleService(repository.NewCalendarRepository(memstore.New()), nil, nil)
}

func TestScheduleServiceCreateAndWindow(t *testing.T) {
	svc := newScheduleService(t)
	ctx := context.Background()
	day := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	_, err := svc.Create(ctx, EventRequest{
		Title: "CS101 Lecture",
		Start: day.Add(9 * time.Hour),
		End:   day.Add(10 * time.Hour),
		Type:  "class",
	})
	require.NoError(t, err)
	_, err = svc.Create(ctx, EventRequest{
		Title: "Calculus Midterm",
		Start: day.Add(7 * 24 * time.Hour),
		End:   day.Add(7*24*time.Hour + 2*time.Hour),
		Type:  "test",
	})
	require.NoError(t, err)

	weekEnd := day.Add(5 * 24 * time.Hour)
	events, err := svc.List(ctx, &day, &weekEnd)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "CS101 Lecture", events[0].Title)

	all, err := svc.List(ctx, nil, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestScheduleServiceRejectsInvertedRange(t *testing.T) {
	svc := newScheduleService(t)
	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	_, err := svc.Create(context.Background(), EventRequest{
		Title: "Backwards",
		Start: start,
		End:   start.Add(-time.Hour),
		Type:  "other",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestScheduleServiceUpdateClearsDescription(t *testing.T) {
	svc := newScheduleService(t)
	ctx := context.Background()
	start := time.Date(2026, 9, 3, 9, 0, 0, 0, time.UTC)

	event, err := svc.Create(ctx, EventRequest{
		Title:       "Office Hours",
		Start:       start,
		End:         start.Add(time.Hour),
		Type:        "other",
		Description: "Room 204, bring questions.",
	})
	require.NoError(t, err)

	_, err = svc.Update(ctx, event.ID, EventRequest{
		Title: "Office Hours",
		Start: start,
		End:   start.Add(time.Hour),
		Type:  "other",
	})
	require.NoError(t, err)

	events, err := svc.List(ctx, nil, nil)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Empty(t, events[0].Description)
}

func TestScheduleServiceUpdateAndDelete(t *testing.T) {
	svc := newScheduleService(t)
	ctx := context.Background()
	start := time.Date(2026, 9, 2, 14, 0, 0, 0, time.UTC)

	event, err := svc.Create(ctx, EventRequest{
		Title: "Study Group",
		Start: start,
		End:   start.Add(time.Hour),
		Type:  "other",
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, event.ID, EventRequest{
		Title: "Study Group (moved)",
		Start: start.Add(24 * time.Hour),
		End:   start.Add(25 * time.Hour),
		Type:  "other",
	})
	require.NoError(t, err)
	assert.Equal(t, "Study Group (moved)", updated.Title)

	require.NoError(t, svc.Delete(ctx, event.ID))
	events, err := svc.List(ctx, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, events)
}
