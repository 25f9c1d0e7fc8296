package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campushub/campus-hub-api/internal/models"
	"github.com/campushub/campus-hub-api/internal/repository"
	"github.com/campushub/campus-hub-api/pkg/docstore/memstore"
	"github.com/campushub/campus-hub-api/pkg/jobs"
)

type gradeFixtures struct {
	svc           *GradeService
	notifier      *GradeNotifier
	notifications *repository.NotificationRepository
	aliceID       models.StudentID
}

func newGradeFixtures(t *testing.T) gradeFixtures {
	t.Helper()
	store := memstore.New()
	grades := repository.NewGradeRepository(store)
	students := repository.NewStudentRepository(store)
	courses := repository.NewCourseRepository(store)
	notifications := repository.NewNotificationRepository(store)

	ctx := context.Background()
	alice := models.Student{FirstName: "Alice", LastName: "Wonder", Email: "alice@example.com", StudentNumber: "1001", Major: "Literature"}
	require.NoError(t, students.Create(ctx, &alice))
	require.NoError(t, courses.Create(ctx, &models.Course{ID: "CS101", Name: "Introduction to Programming", Credits: 3}))

	notifier := NewGradeNotifier(notifications, students, courses, zap.NewNop())
	svc := NewGradeService(grades, notifier, nil, nil)
	return gradeFixtures{svc: svc, notifier: notifier, notifications: notifications, aliceID: alice.ID}
}

func TestGradeServiceCreateEmitsNotification(t *testing.T) {
	f := newGradeFixtures(t)
	ctx := context.Background()

	grade, err := f.svc.Create(ctx, GradeRequest{
		StudentID:  f.aliceID.String(),
		CourseID:   "CS101",
		Assignment: "Midterm Exam",
		Grade:      "A-",
		Date:       "2026-05-10",
		Feedback:   "Good work, minor errors in section 3.",
	})
	require.NoError(t, err)
	require.NotEmpty(t, grade.ID)

	notifications, err := f.notifications.List(ctx)
	require.NoError(t, err)
	require.Len(t, notifications, 1)

	n := notifications[0]
	assert.Equal(t, models.NotificationGradeUpdate, n.Type)
	assert.Equal(t, "Grades Office", n.Sender)
	assert.Contains(t, n.Message, "Alice Wonder")
	assert.Contains(t, n.Message, "Introduction to Programming")
	assert.Contains(t, n.Message, "A-")
	assert.False(t, n.Read)
	require.NotNil(t, n.GradeID)
	assert.Equal(t, grade.ID, *n.GradeID)
}

func TestGradeServiceUpdateEmitsNotification(t *testing.T) {
	f := newGradeFixtures(t)
	ctx := context.Background()

	grade, err := f.svc.Create(ctx, GradeRequest{
		StudentID:  f.aliceID.String(),
		CourseID:   "CS101",
		Assignment: "Project 1",
		Grade:      models.GradePending,
	})
	require.NoError(t, err)
	assert.Equal(t, "N/A", grade.Date)

	updated, err := f.svc.Update(ctx, grade.ID, GradeRequest{
		StudentID:  f.aliceID.String(),
		CourseID:   "CS101",
		Assignment: "Project 1",
		Grade:      "B+",
	})
	require.NoError(t, err)
	assert.NotEqual(t, "N/A", updated.Date)

	notifications, err := f.notifications.List(ctx)
	require.NoError(t, err)
	// One for the pending write, one for the revision.
	assert.Len(t, notifications, 2)
}

func TestGradeServiceUpdateClearsFeedback(t *testing.T) {
	f := newGradeFixtures(t)
	ctx := context.Background()

	grade, err := f.svc.Create(ctx, GradeRequest{
		StudentID:  f.aliceID.String(),
		CourseID:   "CS101",
		Assignment: "Essay 1",
		Grade:      "B-",
		Feedback:   "Needs a stronger conclusion.",
	})
	require.NoError(t, err)

	_, err = f.svc.Update(ctx, grade.ID, GradeRequest{
		StudentID:  f.aliceID.String(),
		CourseID:   "CS101",
		Assignment: "Essay 1",
		Grade:      "B-",
	})
	require.NoError(t, err)

	reloaded, err := f.svc.Get(ctx, grade.ID)
	require.NoError(t, err)
	assert.Empty(t, reloaded.Feedback)
}

func TestGradeServiceListPostedOnly(t *testing.T) {
	f := newGradeFixtures(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, GradeRequest{
		StudentID: f.aliceID.String(), CourseID: "CS101", Assignment: "Quiz 1", Grade: "B",
	})
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, GradeRequest{
		StudentID: f.aliceID.String(), CourseID: "CS101", Assignment: "Final Exam", Grade: models.GradePending,
	})
	require.NoError(t, err)

	all, err := f.svc.List(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	posted, err := f.svc.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, posted, 1)
	assert.Equal(t, "Quiz 1", posted[0].Assignment)
}

func TestGradeServicePendingDefaultsDateNA(t *testing.T) {
	f := newGradeFixtures(t)

	grade, err := f.svc.Create(context.Background(), GradeRequest{
		StudentID:  f.aliceID.String(),
		CourseID:   "CS101",
		Assignment: "Final Exam",
		Grade:      models.GradePending,
	})
	require.NoError(t, err)
	assert.Equal(t, "N/A", grade.Date)
	assert.False(t, grade.Posted())
}

type failingNotificationWriter struct {
	mu       sync.Mutex
	failures int
	created  []models.Notification
}

func (w *failingNotificationWriter) Create(ctx context.Context, n *models.Notification) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.failures > 0 {
		w.failures--
		return errors.New("write refused")
	}
	w.created = append(w.created, *n)
	return nil
}

func (w *failingNotificationWriter) Created() []models.Notification {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]models.Notification(nil), w.created...)
}

func TestGradeNotifierRetriesThroughQueue(t *testing.T) {
	store := memstore.New()
	students := repository.NewStudentRepository(store)
	courses := repository.NewCourseRepository(store)

	writer := &failingNotificationWriter{failures: 1}
	notifier := NewGradeNotifier(writer, students, courses, zap.NewNop())

	queue := jobs.NewQueue("grade-notifications", notifier.HandleRetry, jobs.QueueConfig{
		Workers:    1,
		MaxRetries: 3,
		RetryDelay: 5 * time.Millisecond,
	})
	queue.Start(context.Background())
	defer queue.Stop()
	notifier.AttachQueue(queue)

	err := notifier.GradeWritten(context.Background(), models.Grade{
		ID: "g1", StudentID: "s1", CourseID: "c1", Assignment: "Quiz 2", Grade: "C",
	})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return len(writer.Created()) == 1
	}, time.Second, 10*time.Millisecond)
	assert.Contains(t, writer.Created()[0].Message, "C")
}
