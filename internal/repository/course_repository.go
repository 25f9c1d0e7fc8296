package repository

import (
	"context"
	"fmt"

	"github.com/campushub/campus-hub-api/internal/models"
	"github.com/campushub/campus-hub-api/pkg/docstore"
)

// CourseRepository manages persistence for course records.
type CourseRepository struct {
	store docstore.Store
}

// NewCourseRepository constructs a CourseRepository.
func NewCourseRepository(store docstore.Store) *CourseRepository {
	return &CourseRepository{store: store}
}

// CreateAll inserts the given courses in one atomic batch, keeping the
// caller-chosen course codes as ids.
func (r *CourseRepository) CreateAll(ctx context.Context, courses []models.Course) error {
	ops := make([]docstore.Op, 0, len(courses))
	for i := range courses {
		data, err := encode(&courses[i])
		if err != nil {
			return err
		}
		ops = append(ops, docstore.Op{
			Kind:       docstore.OpPut,
			Collection: CollectionCourses,
			Key:        courses[i].ID.String(),
			Data:       data,
		})
	}
	if err := r.store.Batch(ctx, ops); err != nil {
		return fmt.Errorf("seed courses: %w", err)
	}
	return nil
}

// List returns every course.
func (r *CourseRepository) List(ctx context.Context) ([]models.Course, error) {
	docs, err := r.store.List(ctx, CollectionCourses, docstore.Query{})
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return decodeAll[models.Course](docs)
}

// FindByID fetches a course by storage key.
func (r *CourseRepository) FindByID(ctx context.Context, id models.CourseID) (*models.Course, error) {
	doc, err := r.store.Get(ctx, CollectionCourses, string(id))
	if err != nil {
		return nil, err
	}
	course, err := decode[models.Course](string(id), doc)
	if err != nil {
		return nil, err
	}
	return &course, nil
}

// Create inserts a course. A non-empty model ID becomes the caller-chosen
// storage key (the demo data uses course codes like "CS101").
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	data, err := encode(course)
	if err != nil {
		return err
	}
	if course.ID != "" {
		if err := r.store.Put(ctx, CollectionCourses, string(course.ID), data); err != nil {
			return fmt.Errorf("create course: %w", err)
		}
		return nil
	}
	key, err := r.store.Add(ctx, CollectionCourses, data)
	if err != nil {
		return fmt.Errorf("create course: %w", err)
	}
	course.ID = models.CourseID(key)
	return nil
}

// Update merges the course's fields into the stored document.
func (r *CourseRepository) Update(ctx context.Context, id models.CourseID, course models.Course) error {
	patch, err := encode(course)
	if err != nil {
		return err
	}
	return r.store.Update(ctx, CollectionCourses, string(id), patch)
}

// DeleteWithEnrollments removes the course and every enrollment referencing
// it in one atomic batch.
func (r *CourseRepository) DeleteWithEnrollments(ctx context.Context, id models.CourseID) error {
	enrollments, err := r.store.List(ctx, CollectionEnrollments, docstore.Query{
		Filters: []docstore.Filter{{Field: fieldCourseRef, Op: docstore.FilterEq, Value: string(id)}},
	})
	if err != nil {
		return fmt.Errorf("list enrollments for course %s: %w", id, err)
	}

	ops := make([]docstore.Op, 0, len(enrollments)+1)
	ops = append(ops, docstore.Op{Kind: docstore.OpDelete, Collection: CollectionCourses, Key: string(id)})
	for _, e := range enrollments {
		ops = append(ops, docstore.Op{Kind: docstore.OpDelete, Collection: CollectionEnrollments, Key: e.Key})
	}
	if err := r.store.Batch(ctx, ops); err != nil {
		return fmt.Errorf("delete course %s: %w", id, err)
	}
	return nil
}

// Count returns the number of courses.
func (r *CourseRepository) Count(ctx context.Context) (int, error) {
	docs, err := r.store.List(ctx, CollectionCourses, docstore.Query{})
	if err != nil {
		return 0, fmt.Errorf("count courses: %w", err)
	}
	return len(docs), nil
}
