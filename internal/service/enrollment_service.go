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

type enrollmentRepository interface {
	List(ctx context.Context) ([]models.Enrollment, error)
	ListByCourse(ctx context.Context, courseID models.CourseID) ([]models.Enrollment, error)
	ListByStudent(ctx context.Context, studentID models.StudentID) ([]models.Enrollment, error)
	Create(ctx context.Context, enrollment *models.Enrollment) error
	Delete(ctx context.Context, id models.EnrollmentID) error
}

type enrollmentStudentLookup interface {
	FindByID(ctx context.Context, id models.StudentID) (*models.Student, error)
}

type enrollmentCourseLookup interface {
	FindByID(ctx context.Context, id models.CourseID) (*models.Course, error)
}

// EnrollRequest holds payload for enrolling a student in a course.
type EnrollRequest struct {
	StudentID      string `json:"studentId" validate:"required"`
	CourseID       string `json:"courseId" validate:"required"`
	EnrollmentDate string `json:"enrollmentDate" validate:"omitempty,datetime=2006-01-02"`
}

// EnrollmentService handles enrollment use-cases.
type EnrollmentService struct {
	repo      enrollmentRepository
	students  enrollmentStudentLookup
	courses   enrollmentCourseLookup
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewEnrollmentService constructs the enrollment service.
func NewEnrollmentService(
	repo enrollmentRepository,
	students enrollmentStudentLookup,
	courses enrollmentCourseLookup,
	validate *validator.Validate,
	logger *zap.Logger,
) *EnrollmentService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnrollmentService{
		repo:      repo,
		students:  students,
		courses:   courses,
		validator: validate,
		logger:    logger,
		now:       time.Now,
	}
}

// List returns all enrollments.
func (s *EnrollmentService) List(ctx context.Context) ([]models.Enrollment, error) {
	enrollments, err := s.repo.List(ctx)
	if err != nil {
		return nil, storeFailure(err, "failed to list enrollments")
	}
	return enrollments, nil
}

// ListByStudent returns a student's enrollments.
func (s *EnrollmentService) ListByStudent(ctx context.Context, studentID models.StudentID) ([]models.Enrollment, error) {
	enrollments, err := s.repo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, storeFailure(err, "failed to list enrollments")
	}
	return enrollments, nil
}

// ListByCourse returns a course's enrollments.
func (s *EnrollmentService) ListByCourse(ctx context.Context, courseID models.CourseID) ([]models.Enrollment, error) {
	enrollments, err := s.repo.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, storeFailure(err, "failed to list enrollments")
	}
	return enrollments, nil
}

// Enroll registers a student in a course. Both sides of the join must exist,
// and enrolling the same student in the same course twice is rejected.
func (s *EnrollmentService) Enroll(ctx context.Context, req EnrollRequest) (*models.Enrollment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid enrollment payload")
	}
	studentID := models.StudentID(req.StudentID)
	courseID := models.CourseID(req.CourseID)

	if _, err := s.students.FindByID(ctx, studentID); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, storeFailure(err, "failed to load student")
	}
	if _, err := s.courses.FindByID(ctx, courseID); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, storeFailure(err, "failed to load course")
	}

	existing, err := s.repo.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, storeFailure(err, "failed to check existing enrollments")
	}
	for _, enrollment := range existing {
		if enrollment.StudentID == studentID {
			return nil, appErrors.Clone(appErrors.ErrConflict, "student is already enrolled in this course")
		}
	}

	date := req.EnrollmentDate
	if date == "" {
		date = s.now().Format("2006-01-02")
	}
	enrollment := &models.Enrollment{
		StudentID:      studentID,
		CourseID:       courseID,
		EnrollmentDate: date,
	}
	if err := s.repo.Create(ctx, enrollment); err != nil {
		return nil, storeFailure(err, "failed to create enrollment")
	}
	s.logger.Info("student enrolled",
		zap.String("student_id", studentID.String()),
		zap.String("course_id", courseID.String()))
	return enrollment, nil
}

// Unenroll removes a single enrollment.
func (s *EnrollmentService) Unenroll(ctx context.Context, id models.EnrollmentID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return storeFailure(err, "failed to delete enrollment")
	}
	return nil
}
