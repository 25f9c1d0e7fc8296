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

type gradeRepository interface {
	List(ctx context.Context) ([]models.Grade, error)
	ListByStudent(ctx context.Context, studentID models.StudentID) ([]models.Grade, error)
	FindByID(ctx context.Context, id models.GradeID) (*models.Grade, error)
	Create(ctx context.Context, grade *models.Grade) error
	Update(ctx context.Context, id models.GradeID, grade models.Grade) error
}

// GradeHook is invoked after a grade write has committed. The grade is
// already durable when the hook runs; hook failures never undo it.
type GradeHook interface {
	GradeWritten(ctx context.Context, grade models.Grade) error
}

// GradeRequest holds payload for recording or revising grades.
type GradeRequest struct {
	StudentID  string `json:"studentId" validate:"required"`
	CourseID   string `json:"courseId" validate:"required"`
	Assignment string `json:"assignment" validate:"required"`
	Grade      string `json:"grade" validate:"required"`
	Date       string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Feedback   string `json:"feedback"`
}

// GradeService handles grade use-cases, including the notification side
// effect on writes.
type GradeService struct {
	repo      gradeRepository
	hook      GradeHook
	cache     dashboardInvalidator
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewGradeService constructs the grade service. The hook may be nil, in
// which case writes emit no notifications.
func NewGradeService(repo gradeRepository, hook GradeHook, validate *validator.Validate, logger *zap.Logger) *GradeService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GradeService{repo: repo, hook: hook, validator: validate, logger: logger, now: time.Now}
}

// AttachCache enables dashboard cache invalidation on writes. Optional.
func (s *GradeService) AttachCache(cache dashboardInvalidator) {
	s.cache = cache
}

// List returns all grades, most recently dated first. When postedOnly is
// set, pending grades are filtered out.
func (s *GradeService) List(ctx context.Context, postedOnly bool) ([]models.Grade, error) {
	grades, err := s.repo.List(ctx)
	if err != nil {
		return nil, storeFailure(err, "failed to list grades")
	}
	if !postedOnly {
		return grades, nil
	}
	posted := make([]models.Grade, 0, len(grades))
	for _, g := range grades {
		if g.Posted() {
			posted = append(posted, g)
		}
	}
	return posted, nil
}

// ListByStudent returns one student's grades.
func (s *GradeService) ListByStudent(ctx context.Context, studentID models.StudentID) ([]models.Grade, error) {
	grades, err := s.repo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, storeFailure(err, "failed to list grades")
	}
	return grades, nil
}

// Create records a new grade and fires the notification hook once the write
// has committed.
func (s *GradeService) Create(ctx context.Context, req GradeRequest) (*models.Grade, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid grade payload")
	}
	grade := &models.Grade{
		StudentID:  models.StudentID(req.StudentID),
		CourseID:   models.CourseID(req.CourseID),
		Assignment: req.Assignment,
		Grade:      req.Grade,
		Date:       req.Date,
		Feedback:   req.Feedback,
	}
	if grade.Date == "" {
		if grade.Posted() {
			grade.Date = s.now().Format("2006-01-02")
		} else {
			grade.Date = "N/A"
		}
	}
	if err := s.repo.Create(ctx, grade); err != nil {
		return nil, storeFailure(err, "failed to create grade")
	}
	s.fireHook(ctx, *grade)
	return grade, nil
}

// Update revises an existing grade and fires the notification hook once the
// write has committed.
func (s *GradeService) Update(ctx context.Context, id models.GradeID, req GradeRequest) (*models.Grade, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid grade payload")
	}
	grade, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "grade not found")
		}
		return nil, storeFailure(err, "failed to load grade")
	}
	grade.StudentID = models.StudentID(req.StudentID)
	grade.CourseID = models.CourseID(req.CourseID)
	grade.Assignment = req.Assignment
	grade.Grade = req.Grade
	grade.Feedback = req.Feedback
	grade.Date = req.Date
	if grade.Date == "" {
		if grade.Posted() {
			grade.Date = s.now().Format("2006-01-02")
		} else {
			grade.Date = "N/A"
		}
	}
	if err := s.repo.Update(ctx, id, *grade); err != nil {
		return nil, storeFailure(err, "failed to update grade")
	}
	s.fireHook(ctx, *grade)
	return grade, nil
}

// Get returns a single grade.
func (s *GradeService) Get(ctx context.Context, id models.GradeID) (*models.Grade, error) {
	grade, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "grade not found")
		}
		return nil, storeFailure(err, "failed to load grade")
	}
	return grade, nil
}

func (s *GradeService) fireHook(ctx context.Context, grade models.Grade) {
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, "dashboard:*")
	}
	if s.hook == nil {
		return
	}
	if err := s.hook.GradeWritten(ctx, grade); err != nil {
		// The grade is committed; the hook owns its own retries.
		s.logger.Error("grade notification hook failed",
			zap.String("grade_id", grade.ID.String()),
			zap.Error(err))
	}
}
