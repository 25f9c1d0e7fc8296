package repository

import (
	"context"
	"fmt"

	"github.com/campushub/campus-hub-api/internal/models"
	"github.com/campushub/campus-hub-api/pkg/docstore"
)

// StudentRepository manages persistence for student records.
type StudentRepository struct {
	store docstore.Store
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(store docstore.Store) *StudentRepository {
	return &StudentRepository{store: store}
}

// List returns every student in the collection.
func (r *StudentRepository) List(ctx context.Context) ([]models.Student, error) {
	docs, err := r.store.List(ctx, CollectionStudents, docstore.Query{})
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return decodeAll[models.Student](docs)
}

// ListByKeys returns the students whose storage keys appear in keys.
func (r *StudentRepository) ListByKeys(ctx context.Context, keys []models.StudentID) ([]models.Student, error) {
	if len(keys) == 0 {
		return nil, nil
	}
	raw := make([]string, len(keys))
	for i, k := range keys {
		raw[i] = string(k)
	}
	docs, err := r.store.List(ctx, CollectionStudents, docstore.Query{Keys: raw})
	if err != nil {
		return nil, fmt.Errorf("list students by keys: %w", err)
	}
	return decodeAll[models.Student](docs)
}

// FindByID fetches a student by storage key. Returns docstore.ErrNotFound
// when missing.
func (r *StudentRepository) FindByID(ctx context.Context, id models.StudentID) (*models.Student, error) {
	doc, err := r.store.Get(ctx, CollectionStudents, string(id))
	if err != nil {
		return nil, err
	}
	student, err := decode[models.Student](string(id), doc)
	if err != nil {
		return nil, err
	}
	return &student, nil
}

// ExistsByNumber checks whether any student carries the given business key.
// This is the pre-insert uniqueness query; it is not atomic with the insert.
func (r *StudentRepository) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	docs, err := r.store.List(ctx, CollectionStudents, docstore.Query{
		Filters: []docstore.Filter{{Field: fieldStudentNumber, Op: docstore.FilterEq, Value: number}},
		Limit:   1,
	})
	if err != nil {
		return false, fmt.Errorf("check student number: %w", err)
	}
	return len(docs) > 0, nil
}

// Create inserts a new student and assigns its storage key.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	data, err := encode(student)
	if err != nil {
		return err
	}
	key, err := r.store.Add(ctx, CollectionStudents, data)
	if err != nil {
		return fmt.Errorf("create student: %w", err)
	}
	student.ID = models.StudentID(key)
	return nil
}

// Update merges the student's fields into the stored document.
func (r *StudentRepository) Update(ctx context.Context, id models.StudentID, student models.Student) error {
	patch, err := encode(student)
	if err != nil {
		return err
	}
	if err := r.store.Update(ctx, CollectionStudents, string(id), patch); err != nil {
		return err
	}
	return nil
}

// DeleteWithEnrollments removes the student and every enrollment referencing
// it in one atomic batch, so a partial failure cannot orphan enrollments.
func (r *StudentRepository) DeleteWithEnrollments(ctx context.Context, id models.StudentID) error {
	enrollments, err := r.store.List(ctx, CollectionEnrollments, docstore.Query{
		Filters: []docstore.Filter{{Field: fieldStudentRef, Op: docstore.FilterEq, Value: string(id)}},
	})
	if err != nil {
		return fmt.Errorf("list enrollments for student %s: %w", id, err)
	}

	ops := make([]docstore.Op, 0, len(enrollments)+1)
	ops = append(ops, docstore.Op{Kind: docstore.OpDelete, Collection: CollectionStudents, Key: string(id)})
	for _, e := range enrollments {
		ops = append(ops, docstore.Op{Kind: docstore.OpDelete, Collection: CollectionEnrollments, Key: e.Key})
	}
	if err := r.store.Batch(ctx, ops); err != nil {
		return fmt.Errorf("delete student %s: %w", id, err)
	}
	return nil
}

// CreateAll inserts the given students in one atomic batch. Used by the
// boot-time seed pass.
func (r *StudentRepository) CreateAll(ctx context.Context, students []models.Student) error {
	ops := make([]docstore.Op, 0, len(students))
	for i := range students {
		data, err := encode(&students[i])
		if err != nil {
			return err
		}
		ops = append(ops, docstore.Op{Kind: docstore.OpAdd, Collection: CollectionStudents, Data: data})
	}
	if err := r.store.Batch(ctx, ops); err != nil {
		return fmt.Errorf("seed students: %w", err)
	}
	return nil
}

// Count returns the number of students.
func (r *StudentRepository) Count(ctx context.Context) (int, error) {
	docs, err := r.store.List(ctx, CollectionStudents, docstore.Query{})
	if err != nil {
		return 0, fmt.Errorf("count students: %w", err)
	}
	return len(docs), nil
}
