package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/campushub/campus-hub-api/internal/models"
	"github.com/campushub/campus-hub-api/pkg/docstore"
)

type seedStudentStore interface {
	Count(ctx context.Context) (int, error)
	List(ctx context.Context) ([]models.Student, error)
	CreateAll(ctx context.Context, students []models.Student) error
}

type seedProfessorStore interface {
	Count(ctx context.Context) (int, error)
	CreateAll(ctx context.Context, professors []models.Professor) error
}

type seedCourseStore interface {
	Count(ctx context.Context) (int, error)
	List(ctx context.Context) ([]models.Course, error)
	CreateAll(ctx context.Context, courses []models.Course) error
}

type seedEnrollmentStore interface {
	List(ctx context.Context) ([]models.Enrollment, error)
	CreateAll(ctx context.Context, enrollments []models.Enrollment) error
}

type seedNotificationStore interface {
	Count(ctx context.Context) (int, error)
	CreateAll(ctx context.Context, notifications []models.Notification) error
}

type seedMarkerStore interface {
	SeedMarker(ctx context.Context) (*models.SeedMarker, error)
	PutSeedMarker(ctx context.Context, marker models.SeedMarker) error
}

// SeedService populates the demo dataset at boot. Each collection is seeded
// only when empty, and a marker record short-circuits the whole pass on
// later boots.
type SeedService struct {
	students      seedStudentStore
	professors    seedProfessorStore
	courses       seedCourseStore
	enrollments   seedEnrollmentStore
	notifications seedNotificationStore
	meta          seedMarkerStore
	logger        *zap.Logger
	rng           *rand.Rand
	now           func() time.Time
}

// NewSeedService constructs the seed service.
func NewSeedService(
	students seedStudentStore,
	professors seedProfessorStore,
	courses seedCourseStore,
	enrollments seedEnrollmentStore,
	notifications seedNotificationStore,
	meta seedMarkerStore,
	logger *zap.Logger,
) *SeedService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SeedService{
		students:      students,
		professors:    professors,
		courses:       courses,
		enrollments:   enrollments,
		notifications: notifications,
		meta:          meta,
		logger:        logger,
		rng:           rand.New(rand.NewSource(time.Now().UnixNano())),
		now:           time.Now,
	}
}

// Run performs one seed pass. It is safe to call on every boot.
func (s *SeedService) Run(ctx context.Context) error {
	marker, err := s.meta.SeedMarker(ctx)
	switch {
	case err == nil && marker.Version == seedVersion:
		s.logger.Debug("seed marker present, skipping seed pass")
		return nil
	case err == nil:
		// Collections may hold an older dataset; the per-collection
		// emptiness checks below decide what still needs filling.
		s.logger.Warn("seed marker version mismatch",
			zap.Int("marker_version", marker.Version),
			zap.Int("current_version", seedVersion))
	case !errors.Is(err, docstore.ErrNotFound):
		return fmt.Errorf("read seed marker: %w", err)
	}

	if err := s.seedStudents(ctx); err != nil {
		return err
	}
	if err := s.seedProfessors(ctx); err != nil {
		return err
	}
	if err := s.seedCourses(ctx); err != nil {
		return err
	}
	if err := s.seedNotifications(ctx); err != nil {
		return err
	}
	if err := s.autoEnroll(ctx); err != nil {
		return err
	}

	if err := s.meta.PutSeedMarker(ctx, models.SeedMarker{Version: seedVersion, SeededAt: s.now().UTC()}); err != nil {
		return fmt.Errorf("write seed marker: %w", err)
	}
	s.logger.Info("seed pass complete", zap.Int("version", seedVersion))
	return nil
}

func (s *SeedService) seedStudents(ctx context.Context) error {
	count, err := s.students.Count(ctx)
	if err != nil {
		return fmt.Errorf("count students: %w", err)
	}
	if count > 0 {
		return nil
	}
	students := demoStudents()
	if err := s.students.CreateAll(ctx, students); err != nil {
		return err
	}
	s.logger.Info("seeded students", zap.Int("count", len(students)))
	return nil
}

func (s *SeedService) seedProfessors(ctx context.Context) error {
	count, err := s.professors.Count(ctx)
	if err != nil {
		return fmt.Errorf("count professors: %w", err)
	}
	if count > 0 {
		return nil
	}
	professors := demoProfessors()
	if err := s.professors.CreateAll(ctx, professors); err != nil {
		return err
	}
	s.logger.Info("seeded professors", zap.Int("count", len(professors)))
	return nil
}

func (s *SeedService) seedCourses(ctx context.Context) error {
	count, err := s.courses.Count(ctx)
	if err != nil {
		return fmt.Errorf("count courses: %w", err)
	}
	if count > 0 {
		return nil
	}
	courses := demoCourses()
	if err := s.courses.CreateAll(ctx, courses); err != nil {
		return err
	}
	s.logger.Info("seeded courses", zap.Int("count", len(courses)))
	return nil
}

func (s *SeedService) seedNotifications(ctx context.Context) error {
	count, err := s.notifications.Count(ctx)
	if err != nil {
		return fmt.Errorf("count notifications: %w", err)
	}
	if count > 0 {
		return nil
	}
	notifications := demoNotifications(s.now().UTC())
	if err := s.notifications.CreateAll(ctx, notifications); err != nil {
		return err
	}
	s.logger.Info("seeded notifications", zap.Int("count", len(notifications)))
	return nil
}

// autoEnroll gives every course without enrollments one randomly chosen
// student, so course pages have data to show out of the box.
func (s *SeedService) autoEnroll(ctx context.Context) error {
	students, err := s.students.List(ctx)
	if err != nil {
		return fmt.Errorf("list students: %w", err)
	}
	if len(students) == 0 {
		return nil
	}
	courses, err := s.courses.List(ctx)
	if err != nil {
		return fmt.Errorf("list courses: %w", err)
	}
	existing, err := s.enrollments.List(ctx)
	if err != nil {
		return fmt.Errorf("list enrollments: %w", err)
	}
	enrolled := map[models.CourseID]bool{}
	for _, enrollment := range existing {
		enrolled[enrollment.CourseID] = true
	}

	date := s.now().Format("2006-01-02")
	var created []models.Enrollment
	for _, course := range courses {
		if enrolled[course.ID] {
			continue
		}
		student := students[s.rng.Intn(len(students))]
		created = append(created, models.Enrollment{
			StudentID:      student.ID,
			CourseID:       course.ID,
			EnrollmentDate: date,
		})
	}
	if len(created) == 0 {
		return nil
	}
	if err := s.enrollments.CreateAll(ctx, created); err != nil {
		return err
	}
	s.logger.Info("auto-enrolled students into empty courses", zap.Int("count", len(created)))
	return nil
}
