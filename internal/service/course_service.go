package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campushub/campus-hub-api/internal/dto"
	"github.com/campushub/campus-hub-api/internal/models"
	"github.com/campushub/campus-hub-api/pkg/docstore"
	appErrors "github.com/campushub/campus-hub-api/pkg/errors"
)

type courseRepository interface {
	List(ctx context.Context) ([]models.Course, error)
	FindByID(ctx context.Context, id models.CourseID) (*models.Course, error)
	Create(ctx context.Context, course *models.Course) error
	Update(ctx context.Context, id models.CourseID, course models.Course) error
	DeleteWithEnrollments(ctx context.Context, id models.CourseID) error
}

type courseProfessorLookup interface {
	FindByID(ctx context.Context, id models.ProfessorID) (*models.Professor, error)
}

type courseEnrollmentLookup interface {
	ListByCourse(ctx context.Context, courseID models.CourseID) ([]models.Enrollment, error)
}

type courseStudentLookup interface {
	ListByKeys(ctx context.Context, keys []models.StudentID) ([]models.Student, error)
}

// CourseRequest holds payload for creating or editing courses. ID is honored
// on create only, for course codes such as "CS101".
type CourseRequest struct {
	ID          string `json:"id"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Credits     int    `json:"credits" validate:"required,gte=1,lte=12"`
	ProfessorID string `json:"professorId"`
}

// CourseService handles course use-cases, including the course detail page
// aggregation.
type CourseService struct {
	repo        courseRepository
	professors  courseProfessorLookup
	enrollments courseEnrollmentLookup
	students    courseStudentLookup
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewCourseService constructs the course service.
func NewCourseService(
	repo courseRepository,
	professors courseProfessorLookup,
	enrollments courseEnrollmentLookup,
	students courseStudentLookup,
	validate *validator.Validate,
	logger *zap.Logger,
) *CourseService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{
		repo:        repo,
		professors:  professors,
		enrollments: enrollments,
		students:    students,
		validator:   validate,
		logger:      logger,
	}
}

// List returns all courses.
func (s *CourseService) List(ctx context.Context) ([]models.Course, error) {
	courses, err := s.repo.List(ctx)
	if err != nil {
		return nil, storeFailure(err, "failed to list courses")
	}
	return courses, nil
}

// Get returns a single course.
func (s *CourseService) Get(ctx context.Context, id models.CourseID) (*models.Course, error) {
	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, storeFailure(err, "failed to load course")
	}
	return course, nil
}

// Detail loads the course together with its professor and enrolled students.
// A dangling professor reference is rendered as no professor rather than an
// error; a missing course is a not-found.
func (s *CourseService) Detail(ctx context.Context, id models.CourseID) (*dto.CourseDetail, error) {
	course, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	detail := &dto.CourseDetail{Course: *course, EnrolledStudents: []models.Student{}}

	if course.ProfessorID != "" {
		professor, err := s.professors.FindByID(ctx, course.ProfessorID)
		switch {
		case err == nil:
			detail.Professor = professor
		case errors.Is(err, docstore.ErrNotFound):
			s.logger.Warn("course references missing professor",
				zap.String("course_id", id.String()),
				zap.String("professor_id", course.ProfessorID.String()))
		default:
			return nil, storeFailure(err, "failed to load professor")
		}
	}

	enrollments, err := s.enrollments.ListByCourse(ctx, id)
	if err != nil {
		return nil, storeFailure(err, "failed to load enrollments")
	}
	if len(enrollments) > 0 {
		keys := make([]models.StudentID, 0, len(enrollments))
		for _, enrollment := range enrollments {
			keys = append(keys, enrollment.StudentID)
		}
		students, err := s.students.ListByKeys(ctx, keys)
		if err != nil {
			return nil, storeFailure(err, "failed to load enrolled students")
		}
		detail.EnrolledStudents = students
	}
	return detail, nil
}

// Create registers a new course.
func (s *CourseService) Create(ctx context.Context, req CourseRequest) (*models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}
	course := &models.Course{
		ID:          models.CourseID(req.ID),
		Name:        req.Name,
		Description: req.Description,
		Credits:     req.Credits,
		ProfessorID: models.ProfessorID(req.ProfessorID),
	}
	if err := s.repo.Create(ctx, course); err != nil {
		return nil, storeFailure(err, "failed to create course")
	}
	return course, nil
}

// Update modifies an existing course record.
func (s *CourseService) Update(ctx context.Context, id models.CourseID, req CourseRequest) (*models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}
	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, storeFailure(err, "failed to load course")
	}
	course.Name = req.Name
	course.Description = req.Description
	course.Credits = req.Credits
	course.ProfessorID = models.ProfessorID(req.ProfessorID)
	if err := s.repo.Update(ctx, id, *course); err != nil {
		return nil, storeFailure(err, "failed to update course")
	}
	return course, nil
}

// Delete removes a course along with every enrollment that references it, in
// one atomic batch.
func (s *CourseService) Delete(ctx context.Context, id models.CourseID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return storeFailure(err, "failed to load course")
	}
	if err := s.repo.DeleteWithEnrollments(ctx, id); err != nil {
		return storeFailure(err, "failed to delete course")
	}
	s.logger.Info("course deleted", zap.String("course_id", id.String()))
	return nil
}
