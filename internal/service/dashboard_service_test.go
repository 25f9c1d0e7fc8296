package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushub/campus-hub-api/internal/dto"
	"github.com/campushub/campus-hub-api/internal/models"
	"github.com/campushub/campus-hub-api/internal/repository"
	"github.com/campushub/campus-hub-api/pkg/busy"
	"github.com/campushub/campus-hub-api/pkg/docstore/memstore"
)

type stubNotificationFeed struct {
	notifications []models.Notification
	err           error
	tracker       *busy.Tracker
	sawBusy       bool
}

func (f *stubNotificationFeed) Recent(ctx context.Context, limit int) ([]models.Notification, error) {
	if f.tracker != nil && f.tracker.Busy() {
		f.sawBusy = true
	}
	if f.err != nil {
		return nil, f.err
	}
	if limit < len(f.notifications) {
		return f.notifications[:limit], nil
	}
	return f.notifications, nil
}

type stubGradeFeed struct {
	grades []models.Grade
	err    error
}

func (f *stubGradeFeed) Recent(ctx context.Context, limit int) ([]models.Grade, error) {
	if f.err != nil {
		return nil, f.err
	}
	if limit < len(f.grades) {
		return f.grades[:limit], nil
	}
	return f.grades, nil
}

type memoryCache struct {
	entries map[string]dto.DashboardSummary
	sets    int
}

func (c *memoryCache) Get(ctx context.Context, key string, dest interface{}) error {
	cached, ok := c.entries[key]
	if !ok {
		return errors.New("cache miss")
	}
	*dest.(*dto.DashboardSummary) = cached
	return nil
}

func (c *memoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if c.entries == nil {
		c.entries = map[string]dto.DashboardSummary{}
	}
	c.entries[key] = *value.(*dto.DashboardSummary)
	c.sets++
	return nil
}

func seedCourses(t *testing.T) *repository.CourseRepository {
	t.Helper()
	courses := repository.NewCourseRepository(memstore.New())
	require.NoError(t, courses.Create(context.Background(), &models.Course{ID: "CS101", Name: "Introduction to Programming", Credits: 3}))
	return courses
}

func TestDashboardSummarySettlesBothFeeds(t *testing.T) {
	tracker := busy.NewTracker()
	notifications := &stubNotificationFeed{
		notifications: []models.Notification{{Sender: "Registrar", Message: "Welcome!"}},
		tracker:       tracker,
	}
	grades := &stubGradeFeed{grades: []models.Grade{
		{CourseID: "CS101", Assignment: "Midterm Exam", Grade: "A-", Date: "2026-05-10"},
	}}

	svc := NewDashboardService(notifications, grades, seedCourses(t), nil, tracker, DashboardConfig{RecentLimit: 3}, nil)
	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)

	assert.Len(t, summary.RecentNotifications, 1)
	require.Len(t, summary.RecentGrades, 1)
	assert.Equal(t, "Introduction to Programming", summary.RecentGrades[0].CourseName)
	assert.Empty(t, summary.NotificationsError)
	assert.Empty(t, summary.GradesError)

	// The tracker was held while the feeds were loading and released after.
	assert.True(t, notifications.sawBusy)
	assert.Zero(t, tracker.InFlight())
}

func TestDashboardSummaryPartialFailure(t *testing.T) {
	notifications := &stubNotificationFeed{err: errors.New("store offline")}
	grades := &stubGradeFeed{grades: []models.Grade{
		{CourseID: "CS101", Assignment: "Quiz 2", Grade: "B+", Date: "2026-05-12"},
	}}

	svc := NewDashboardService(notifications, grades, seedCourses(t), nil, nil, DashboardConfig{}, nil)
	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, summary.NotificationsError)
	assert.Empty(t, summary.RecentNotifications)
	require.Len(t, summary.RecentGrades, 1)
	assert.Empty(t, summary.GradesError)
}

func TestDashboardSummaryCaches(t *testing.T) {
	notifications := &stubNotificationFeed{notifications: []models.Notification{{Sender: "Library"}}}
	grades := &stubGradeFeed{}
	cache := &memoryCache{}

	svc := NewDashboardService(notifications, grades, seedCourses(t), cache, nil, DashboardConfig{CacheTTL: time.Minute}, nil)

	_, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets)

	// Second call is served from cache, no new write.
	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets)
	assert.Len(t, summary.RecentNotifications, 1)
}

func TestDashboardSummarySkipsCacheOnFailure(t *testing.T) {
	notifications := &stubNotificationFeed{err: errors.New("store offline")}
	grades := &stubGradeFeed{}
	cache := &memoryCache{}

	svc := NewDashboardService(notifications, grades, seedCourses(t), cache, nil, DashboardConfig{}, nil)
	_, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Zero(t, cache.sets)
}
