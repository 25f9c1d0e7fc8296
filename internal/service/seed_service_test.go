package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushub/campus-hub-api/internal/models"
	"github.com/campushub/campus-hub-api/internal/repository"
	"github.com/campushub/campus-hub-api/pkg/docstore/memstore"
)

type seedFixtures struct {
	svc           *SeedService
	students      *repository.StudentRepository
	professors    *repository.ProfessorRepository
	courses       *repository.CourseRepository
	enrollments   *repository.EnrollmentRepository
	notifications *repository.NotificationRepository
	meta          *repository.MetaRepository
}

func newSeedFixtures(t *testing.T) seedFixtures {
	t.Helper()
	store := memstore.New()
	f := seedFixtures{
		students:      repository.NewStudentRepository(store),
		professors:    repository.NewProfessorRepository(store),
		courses:       repository.NewCourseRepository(store),
		enrollments:   repository.NewEnrollmentRepository(store),
		notifications: repository.NewNotificationRepository(store),
		meta:          repository.NewMetaRepository(store),
	}
	f.svc = NewSeedService(f.students, f.professors, f.courses, f.enrollments, f.notifications, f.meta, nil)
	return f
}

func TestSeedServicePopulatesEmptyStore(t *testing.T) {
	f := newSeedFixtures(t)
	ctx := context.Background()

	require.NoError(t, f.svc.Run(ctx))

	students, err := f.students.List(ctx)
	require.NoError(t, err)
	assert.Len(t, students, 10)

	professors, err := f.professors.List(ctx)
	require.NoError(t, err)
	assert.Len(t, professors, 5)

	courses, err := f.courses.List(ctx)
	require.NoError(t, err)
	assert.Len(t, courses, 5)

	// Every seeded course received exactly one auto-enrollment.
	enrollments, err := f.enrollments.List(ctx)
	require.NoError(t, err)
	assert.Len(t, enrollments, len(courses))

	marker, err := f.meta.SeedMarker(ctx)
	require.NoError(t, err)
	assert.Equal(t, seedVersion, marker.Version)
	assert.False(t, marker.SeededAt.IsZero())
}

func TestSeedServiceRerunIsNoOp(t *testing.T) {
	f := newSeedFixtures(t)
	ctx := context.Background()

	require.NoError(t, f.svc.Run(ctx))
	before, err := f.enrollments.List(ctx)
	require.NoError(t, err)

	require.NoError(t, f.svc.Run(ctx))
	after, err := f.enrollments.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(before), len(after))

	count, err := f.students.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10, count)
}

func TestSeedServiceSkipsNonEmptyCollections(t *testing.T) {
	f := newSeedFixtures(t)
	ctx := context.Background()

	existing := models.Student{FirstName: "Zoe", LastName: "Prior", Email: "zoe@example.com", StudentNumber: "9999", Major: "Undeclared"}
	require.NoError(t, f.students.Create(ctx, &existing))

	require.NoError(t, f.svc.Run(ctx))

	// The pre-existing student collection was left alone.
	count, err := f.students.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// Other collections still got their fixtures.
	courses, err := f.courses.List(ctx)
	require.NoError(t, err)
	assert.Len(t, courses, 5)
}

func TestSeedServiceAutoEnrollUsesExistingStudents(t *testing.T) {
	f := newSeedFixtures(t)
	ctx := context.Background()

	solo := models.Student{FirstName: "Solo", LastName: "Student", Email: "solo@example.com", StudentNumber: "0001", Major: "Music"}
	require.NoError(t, f.students.Create(ctx, &solo))
	require.NoError(t, f.courses.Create(ctx, &models.Course{ID: "C1", Name: "Course One", Credits: 3}))
	require.NoError(t, f.courses.Create(ctx, &models.Course{ID: "C2", Name: "Course Two", Credits: 3}))

	require.NoError(t, f.svc.Run(ctx))

	// With a single student, both courses must end up with that student.
	enrollments, err := f.enrollments.List(ctx)
	require.NoError(t, err)
	require.Len(t, enrollments, 2)
	for _, enrollment := range enrollments {
		assert.Equal(t, solo.ID, enrollment.StudentID)
	}
	byCourse := map[models.CourseID]int{}
	for _, enrollment := range enrollments {
		byCourse[enrollment.CourseID]++
	}
	assert.Equal(t, 1, byCourse["C1"])
	assert.Equal(t, 1, byCourse["C2"])
}
