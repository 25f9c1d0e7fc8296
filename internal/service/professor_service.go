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

type professorRepository interface {
	List(ctx context.Context) ([]models.Professor, error)
	FindByID(ctx context.Context, id models.ProfessorID) (*models.Professor, error)
	Create(ctx context.Context, professor *models.Professor) error
	Update(ctx context.Context, id models.ProfessorID, professor models.Professor) error
	Delete(ctx context.Context, id models.ProfessorID) error
}

// ProfessorRequest holds payload for creating or editing professors. ID is
// honored on create only, for mnemonic ids such as "prof_smith".
type ProfessorRequest struct {
	ID         string `json:"id"`
	FirstName  string `json:"firstName" validate:"required"`
	LastName   string `json:"lastName" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Department string `json:"department" validate:"required"`
}

// ProfessorService handles professor use-cases.
type ProfessorService struct {
	repo      professorRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewProfessorService constructs the professor service.
func NewProfessorService(repo professorRepository, validate *validator.Validate, logger *zap.Logger) *ProfessorService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfessorService{repo: repo, validator: validate, logger: logger}
}

// List returns all professors.
func (s *ProfessorService) List(ctx context.Context) ([]models.Professor, error) {
	professors, err := s.repo.List(ctx)
	if err != nil {
		return nil, storeFailure(err, "failed to list professors")
	}
	return professors, nil
}

// Get returns a single professor.
func (s *ProfessorService) Get(ctx context.Context, id models.ProfessorID) (*models.Professor, error) {
	professor, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "professor not found")
		}
		return nil, storeFailure(err, "failed to load professor")
	}
	return professor, nil
}

// Create registers a new professor.
func (s *ProfessorService) Create(ctx context.Context, req ProfessorRequest) (*models.Professor, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid professor payload")
	}
	professor := &models.Professor{
		ID:         models.ProfessorID(req.ID),
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Department: req.Department,
	}
	if err := s.repo.Create(ctx, professor); err != nil {
		return nil, storeFailure(err, "failed to create professor")
	}
	return professor, nil
}

// Update modifies an existing professor record.
func (s *ProfessorService) Update(ctx context.Context, id models.ProfessorID, req ProfessorRequest) (*models.Professor, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid professor payload")
	}
	professor, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "professor not found")
		}
		return nil, storeFailure(err, "failed to load professor")
	}
	professor.FirstName = req.FirstName
	professor.LastName = req.LastName
	professor.Email = req.Email
	professor.Department = req.Department
	if err := s.repo.Update(ctx, id, *professor); err != nil {
		return nil, storeFailure(err, "failed to update professor")
	}
	return professor, nil
}

// Delete removes a professor. Courses keep their professor reference;
// lookups treat a dangling reference as "no professor assigned".
func (s *ProfessorService) Delete(ctx context.Context, id models.ProfessorID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return appErrors.Clone(appErrors.ErrNotFound, "professor not found")
		}
		return storeFailure(err, "failed to load professor")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return storeFailure(err, "failed to delete professor")
	}
	return nil
}
