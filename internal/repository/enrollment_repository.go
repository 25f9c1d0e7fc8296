package repository

import (
	"context"
	"fmt"

	"github.com/campushub/campus-hub-api/internal/models"
	"github.com/campushub/campus-hub-api/pkg/docstore"
)

// EnrollmentRepository manages the student/course join records.
type EnrollmentRepository struct {
	store docstore.Store
}

// NewEnrollmentRepository constructs an EnrollmentRepository.
func NewEnrollmentRepository(store docstore.Store) *EnrollmentRepository {
	return &EnrollmentRepository{store: store}
}

// CreateAll inserts the given enrollments in one atomic batch.
func (r *EnrollmentRepository) CreateAll(ctx context.Context, enrollments []models.Enrollment) error {
	ops := make([]docstore.Op, 0, len(enrollments))
	for i := range enrollments {
		data, err := encode(&enrollments[i])
		if err != nil {
			return err
		}
		ops = append(ops, docstore.Op{Kind: docstore.OpAdd, Collection: CollectionEnrollments, Data: data})
	}
	if err := r.store.Batch(ctx, ops); err != nil {
		return fmt.Errorf("seed enrollments: %w", err)
	}
	return nil
}

// List returns every enrollment.
func (r *EnrollmentRepository) List(ctx context.Context) ([]models.Enrollment, error) {
	docs, err := r.store.List(ctx, CollectionEnrollments, docstore.Query{})
	if err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	return decodeAll[models.Enrollment](docs)
}

// ListByCourse returns the enrollments referencing a course.
func (r *EnrollmentRepository) ListByCourse(ctx context.Context, courseID models.CourseID) ([]models.Enrollment, error) {
	docs, err := r.store.List(ctx, CollectionEnrollments, docstore.Query{
		Filters: []docstore.Filter{{Field: fieldCourseRef, Op: docstore.FilterEq, Value: string(courseID)}},
	})
	if err != nil {
		return nil, fmt.Errorf("list enrollments for course %s: %w", courseID, err)
	}
	return decodeAll[models.Enrollment](docs)
}

// ListByStudent returns the enrollments referencing a student.
func (r *EnrollmentRepository) ListByStudent(ctx context.Context, studentID models.StudentID) ([]models.Enrollment, error) {
	docs, err := r.store.List(ctx, CollectionEnrollments, docstore.Query{
		Filters: []docstore.Filter{{Field: fieldStudentRef, Op: docstore.FilterEq, Value: string(studentID)}},
	})
	if err != nil {
		return nil, fmt.Errorf("list enrollments for student %s: %w", studentID, err)
	}
	return decodeAll[models.Enrollment](docs)
}

// Create inserts an enrollment and assigns its storage key.
func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	data, err := encode(enrollment)
	if err != nil {
		return err
	}
	key, err := r.store.Add(ctx, CollectionEnrollments, data)
	if err != nil {
		return fmt.Errorf("create enrollment: %w", err)
	}
	enrollment.ID = models.EnrollmentID(key)
	return nil
}

// Delete removes a single enrollment.
func (r *EnrollmentRepository) Delete(ctx context.Context, id models.EnrollmentID) error {
	return r.store.Delete(ctx, CollectionEnrollments, string(id))
}
