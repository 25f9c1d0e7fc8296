package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campushub/campus-hub-api/internal/models"
	"github.com/campushub/campus-hub-api/pkg/jobs"
)

// JobKindNotificationWrite labels queued retry jobs for notification writes
// that failed synchronously.
const JobKindNotificationWrite = "notification_write"

type notificationWriter interface {
	Create(ctx context.Context, notification *models.Notification) error
}

type notifierStudentLister interface {
	List(ctx context.Context) ([]models.Student, error)
}

type notifierCourseLister interface {
	List(ctx context.Context) ([]models.Course, error)
}

// GradeNotifier turns committed grade writes into notifications. The grade
// write itself is never rolled back: if the notification write fails, the
// composed notification is handed to the retry queue instead.
type GradeNotifier struct {
	notifications notificationWriter
	students      notifierStudentLister
	courses       notifierCourseLister
	queue         *jobs.Queue
	logger        *zap.Logger
	now           func() time.Time
}

// NewGradeNotifier constructs the notifier. AttachQueue wires the retry
// queue afterwards; without one, failures surface to the caller.
func NewGradeNotifier(
	notifications notificationWriter,
	students notifierStudentLister,
	courses notifierCourseLister,
	logger *zap.Logger,
) *GradeNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GradeNotifier{
		notifications: notifications,
		students:      students,
		courses:       courses,
		logger:        logger,
		now:           time.Now,
	}
}

// AttachQueue sets the retry carrier. The queue's handler should be
// HandleRetry.
func (n *GradeNotifier) AttachQueue(queue *jobs.Queue) {
	n.queue = queue
}

// GradeWritten composes and persists the notification for a grade write.
// Called after the grade itself has committed.
func (n *GradeNotifier) GradeWritten(ctx context.Context, grade models.Grade) error {
	notification := n.compose(ctx, grade)
	if err := n.notifications.Create(ctx, &notification); err != nil {
		if n.queue != nil {
			job := jobs.Job{ID: uuid.NewString(), Kind: JobKindNotificationWrite, Payload: notification}
			if qErr := n.queue.Enqueue(job); qErr == nil {
				n.logger.Warn("notification write failed, queued for retry",
					zap.String("grade_id", grade.ID.String()),
					zap.Error(err))
				return nil
			}
		}
		return fmt.Errorf("write grade notification: %w", err)
	}
	return nil
}

// HandleRetry is the queue handler for notification write retries.
func (n *GradeNotifier) HandleRetry(ctx context.Context, job jobs.Job) error {
	notification, ok := job.Payload.(models.Notification)
	if !ok {
		return fmt.Errorf("unexpected payload type %T for %s job", job.Payload, job.Kind)
	}
	return n.notifications.Create(ctx, &notification)
}

// compose resolves the student and course names from full listings and
// builds the notification. Unresolvable references fall back to the raw ids
// so the notification still goes out.
func (n *GradeNotifier) compose(ctx context.Context, grade models.Grade) models.Notification {
	studentName := grade.StudentID.String()
	if students, err := n.students.List(ctx); err == nil {
		for _, student := range students {
			if student.ID == grade.StudentID {
				studentName = student.DisplayName()
				break
			}
		}
	} else {
		n.logger.Warn("could not resolve student name for notification", zap.Error(err))
	}

	courseName := grade.CourseID.String()
	if courses, err := n.courses.List(ctx); err == nil {
		for _, course := range courses {
			if course.ID == grade.CourseID {
				courseName = course.Name
				break
			}
		}
	} else {
		n.logger.Warn("could not resolve course name for notification", zap.Error(err))
	}

	gradeID := grade.ID
	studentID := grade.StudentID
	return models.Notification{
		Sender:    "Grades Office",
		Message:   fmt.Sprintf("Grade posted for %s: %s received %s in %s.", grade.Assignment, studentName, grade.Grade, courseName),
		Type:      models.NotificationGradeUpdate,
		Timestamp: n.now().UTC(),
		GradeID:   &gradeID,
		StudentID: &studentID,
	}
}
