package repository

import (
	"context"
	"fmt"

	"github.com/campushub/campus-hub-api/internal/models"
	"github.com/campushub/campus-hub-api/pkg/docstore"
)

// ProfessorRepository manages persistence for professor records.
type ProfessorRepository struct {
	store docstore.Store
}

// NewProfessorRepository constructs a ProfessorRepository.
func NewProfessorRepository(store docstore.Store) *ProfessorRepository {
	return &ProfessorRepository{store: store}
}

// CreateAll inserts the given professors in one atomic batch, keeping the
// caller-chosen ids.
func (r *ProfessorRepository) CreateAll(ctx context.Context, professors []models.Professor) error {
	ops := make([]docstore.Op, 0, len(professors))
	for i := range professors {
		data, err := encode(&professors[i])
		if err != nil {
			return err
		}
		ops = append(ops, docstore.Op{
			Kind:       docstore.OpPut,
			Collection: CollectionProfessors,
			Key:        professors[i].ID.String(),
			Data:       data,
		})
	}
	if err := r.store.Batch(ctx, ops); err != nil {
		return fmt.Errorf("seed professors: %w", err)
	}
	return nil
}

// List returns every professor.
func (r *ProfessorRepository) List(ctx context.Context) ([]models.Professor, error) {
	docs, err := r.store.List(ctx, CollectionProfessors, docstore.Query{})
	if err != nil {
		return nil, fmt.Errorf("list professors: %w", err)
	}
	return decodeAll[models.Professor](docs)
}

// FindByID fetches a professor by storage key.
func (r *ProfessorRepository) FindByID(ctx context.Context, id models.ProfessorID) (*models.Professor, error) {
	doc, err := r.store.Get(ctx, CollectionProfessors, string(id))
	if err != nil {
		return nil, err
	}
	professor, err := decode[models.Professor](string(id), doc)
	if err != nil {
		return nil, err
	}
	return &professor, nil
}

// Create inserts a professor. When the model carries an ID it is used as the
// caller-chosen storage key, otherwise the store assigns one.
func (r *ProfessorRepository) Create(ctx context.Context, professor *models.Professor) error {
	data, err := encode(professor)
	if err != nil {
		return err
	}
	if professor.ID != "" {
		if err := r.store.Put(ctx, CollectionProfessors, string(professor.ID), data); err != nil {
			return fmt.Errorf("create professor: %w", err)
		}
		return nil
	}
	key, err := r.store.Add(ctx, CollectionProfessors, data)
	if err != nil {
		return fmt.Errorf("create professor: %w", err)
	}
	professor.ID = models.ProfessorID(key)
	return nil
}

// Update merges the professor's fields into the stored document.
func (r *ProfessorRepository) Update(ctx context.Context, id models.ProfessorID, professor models.Professor) error {
	patch, err := encode(professor)
	if err != nil {
		return err
	}
	return r.store.Update(ctx, CollectionProfessors, string(id), patch)
}

// Delete removes a professor. Courses referencing it keep their dangling
// reference; the course page simply omits the professor.
func (r *ProfessorRepository) Delete(ctx context.Context, id models.ProfessorID) error {
	return r.store.Delete(ctx, CollectionProfessors, string(id))
}

// Count returns the number of professors.
func (r *ProfessorRepository) Count(ctx context.Context) (int, error) {
	docs, err := r.store.List(ctx, CollectionProfessors, docstore.Query{})
	if err != nil {
		return 0, fmt.Errorf("count professors: %w", err)
	}
	return len(docs), nil
}
