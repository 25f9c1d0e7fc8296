package repository

import (
	"context"
	"fmt"

	"github.com/campushub/campus-hub-api/internal/models"
	"github.com/campushub/campus-hub-api/pkg/docstore"
)

// GradeRepository manages persistence for grade records.
type GradeRepository struct {
	store docstore.Store
}

// NewGradeRepository constructs a GradeRepository.
func NewGradeRepository(store docstore.Store) *GradeRepository {
	return &GradeRepository{store: store}
}

// List returns every grade, newest posting first.
func (r *GradeRepository) List(ctx context.Context) ([]models.Grade, error) {
	docs, err := r.store.List(ctx, CollectionGrades, docstore.Query{OrderBy: fieldDate, Desc: true})
	if err != nil {
		return nil, fmt.Errorf("list grades: %w", err)
	}
	return decodeAll[models.Grade](docs)
}

// ListByStudent returns the grades recorded for a student.
func (r *GradeRepository) ListByStudent(ctx context.Context, studentID models.StudentID) ([]models.Grade, error) {
	docs, err := r.store.List(ctx, CollectionGrades, docstore.Query{
		Filters: []docstore.Filter{{Field: fieldStudentRef, Op: docstore.FilterEq, Value: string(studentID)}},
		OrderBy: fieldDate,
		Desc:    true,
	})
	if err != nil {
		return nil, fmt.Errorf("list grades for student %s: %w", studentID, err)
	}
	return decodeAll[models.Grade](docs)
}

// Recent returns the newest posted grades, excluding pending ones.
func (r *GradeRepository) Recent(ctx context.Context, limit int) ([]models.Grade, error) {
	docs, err := r.store.List(ctx, CollectionGrades, docstore.Query{
		Filters: []docstore.Filter{{Field: fieldGrade, Op: docstore.FilterNeq, Value: models.GradePending}},
		OrderBy: fieldDate,
		Desc:    true,
		Limit:   limit,
	})
	if err != nil {
		return nil, fmt.Errorf("list recent grades: %w", err)
	}
	return decodeAll[models.Grade](docs)
}

// FindByID fetches a grade by storage key.
func (r *GradeRepository) FindByID(ctx context.Context, id models.GradeID) (*models.Grade, error) {
	doc, err := r.store.Get(ctx, CollectionGrades, string(id))
	if err != nil {
		return nil, err
	}
	grade, err := decode[models.Grade](string(id), doc)
	if err != nil {
		return nil, err
	}
	return &grade, nil
}

// Create inserts a grade and assigns its storage key.
func (r *GradeRepository) Create(ctx context.Context, grade *models.Grade) error {
	data, err := encode(grade)
	if err != nil {
		return err
	}
	key, err := r.store.Add(ctx, CollectionGrades, data)
	if err != nil {
		return fmt.Errorf("create grade: %w", err)
	}
	grade.ID = models.GradeID(key)
	return nil
}

// Update merges the grade's fields into the stored document.
func (r *GradeRepository) Update(ctx context.Context, id models.GradeID, grade models.Grade) error {
	patch, err := encode(grade)
	if err != nil {
		return err
	}
	return r.store.Update(ctx, CollectionGrades, string(id), patch)
}
