package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campushub/campus-hub-api/internal/models"
	"github.com/campushub/campus-hub-api/pkg/docstore"
	appErrors "github.com/campushub/campus-hub-api/pkg/errors"
)

type studentRepository interface {
	List(ctx context.Context) ([]models.Student, error)
	FindByID(ctx context.Context, id models.StudentID) (*models.Student, error)
	ExistsByNumber(ctx context.Context, studentNumber string) (bool, error)
	Create(ctx context.Context, student *models.Student) error
	Update(ctx context.Context, id models.StudentID, student models.Student) error
	DeleteWithEnrollments(ctx context.Context, id models.StudentID) error
}

// CreateStudentRequest holds payload for registering students.
type CreateStudentRequest struct {
	FirstName     string `json:"firstName" validate:"required"`
	LastName      string `json:"lastName" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	StudentNumber string `json:"studentId" validate:"required,numeric"`
	Major         string `json:"major" validate:"required"`
	DateOfBirth   string `json:"dateOfBirth" validate:"required,datetime=2006-01-02"`
	PhoneNumber   string `json:"phoneNumber" validate:"required,phone10"`
	Address       string `json:"address" validate:"required"`
}

// UpdateStudentRequest holds payload for editing students. The student
// number is immutable once assigned.
type UpdateStudentRequest struct {
	FirstName   string `json:"firstName" validate:"required"`
	LastName    string `json:"lastName" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Major       string `json:"major" validate:"required"`
	DateOfBirth string `json:"dateOfBirth" validate:"required,datetime=2006-01-02"`
	PhoneNumber string `json:"phoneNumber" validate:"required,phone10"`
	Address     string `json:"address" validate:"required"`
}

// StudentService handles student use-cases.
type StudentService struct {
	repo      studentRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs the student service.
func NewStudentService(repo studentRepository, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{repo: repo, validator: validate, logger: logger}
}

// List returns all students.
func (s *StudentService) List(ctx context.Context) ([]models.Student, error) {
	students, err := s.repo.List(ctx)
	if err != nil {
		return nil, storeFailure(err, "failed to list students")
	}
	return students, nil
}

// Get returns a single student.
func (s *StudentService) Get(ctx context.Context, id models.StudentID) (*models.Student, error) {
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, storeFailure(err, "failed to load student")
	}
	return student, nil
}

// Create registers a new student. The student number must be unique
// across the campus.
func (s *StudentService) Create(ctx context.Context, req CreateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	exists, err := s.repo.ExistsByNumber(ctx, req.StudentNumber)
	if err != nil {
		return nil, storeFailure(err, "failed to validate student id")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrDuplicateKey, "student id already used")
	}
	student := &models.Student{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		StudentNumber: req.StudentNumber,
		Major:         req.Major,
		DateOfBirth:   req.DateOfBirth,
		PhoneNumber:   req.PhoneNumber,
		Address:       req.Address,
	}
	if err := s.repo.Create(ctx, student); err != nil {
		return nil, storeFailure(err, "failed to create student")
	}
	s.logger.Info("student created",
		zap.String("student_id", student.ID.String()),
		zap.String("student_number", student.StudentNumber))
	return student, nil
}

// Update modifies an existing student record.
func (s *StudentService) Update(ctx context.Context, id models.StudentID, req UpdateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, storeFailure(err, "failed to load student")
	}
	student.FirstName = req.FirstName
	student.LastName = req.LastName
	student.Email = req.Email
	student.Major = req.Major
	student.DateOfBirth = req.DateOfBirth
	student.PhoneNumber = req.PhoneNumber
	student.Address = req.Address
	if err := s.repo.Update(ctx, id, *student); err != nil {
		return nil, storeFailure(err, "failed to update student")
	}
	return student, nil
}

// Delete removes a student along with every enrollment that references
// them, in one atomic batch.
func (s *StudentService) Delete(ctx context.Context, id models.StudentID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return storeFailure(err, "failed to load student")
	}
	if err := s.repo.DeleteWithEnrollments(ctx, id); err != nil {
		return storeFailure(err, "failed to delete student")
	}
	s.logger.Info("student deleted", zap.String("student_id", id.String()))
	return nil
}
