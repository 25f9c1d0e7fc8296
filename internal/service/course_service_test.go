package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushub/campus-hub-api/internal/models"
	"github.com/campushub/campus-hub-api/internal/repository"
	appErrors "github.com/campushub/campus-hub-api/pkg/errors"
	"github.com/campushub/campus-hub-api/pkg/docstore/memstore"
)

type courseFixtures struct {
	svc         *CourseService
	professors  *repository.ProfessorRepository
	students    *repository.StudentRepository
	enrollments *repository.EnrollmentRepository
}

func newCourseFixtures(t *testing.T) courseFixtures {
	t.Helper()
	store := memstore.New()
	courses := repository.NewCourseRepository(store)
	professors := repository.NewProfessorRepository(store)
	students := repository.NewStudentRepository(store)
	enrollments := repository.NewEnrollmentRepository(store)
	svc := NewCourseService(courses, professors, enrollments, students, nil, nil)
	return courseFixtures{svc: svc, professors: professors, students: students, enrollments: enrollments}
}

func TestCourseServiceCreateWithCode(t *testing.T) {
	f := newCourseFixtures(t)

	created, err := f.svc.Create(context.Background(), CourseRequest{
		ID:      "CS101",
		Name:    "Introduction to Programming",
		Credits: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, models.CourseID("CS101"), created.ID)

	got, err := f.svc.Get(context.Background(), "CS101")
	require.NoError(t, err)
	assert.Equal(t, "Introduction to Programming", got.Name)
}

func TestCourseServiceCreateValidation(t *testing.T) {
	f := newCourseFixtures(t)

	_, err := f.svc.Create(context.Background(), CourseRequest{Name: "No Credits"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestCourseServiceDetailResolvesChain(t *testing.T) {
	f := newCourseFixtures(t)
	ctx := context.Background()

	professor := models.Professor{ID: "prof_smith", FirstName: "Robert", LastName: "Smith", Department: "Computer Science", Email: "smith@example.edu"}
	require.NoError(t, f.professors.Create(ctx, &professor))

	_, err := f.svc.Create(ctx, CourseRequest{ID: "CS101", Name: "Introduction to Programming", Credits: 3, ProfessorID: "prof_smith"})
	require.NoError(t, err)

	alice := models.Student{FirstName: "Alice", LastName: "Wonder", Email: "alice@example.com", StudentNumber: "1001", Major: "Literature"}
	bob := models.Student{FirstName: "Bob", LastName: "Builder", Email: "bob@example.com", StudentNumber: "1002", Major: "Engineering"}
	require.NoError(t, f.students.Create(ctx, &alice))
	require.NoError(t, f.students.Create(ctx, &bob))
	require.NoError(t, f.enrollments.Create(ctx, &models.Enrollment{StudentID: alice.ID, CourseID: "CS101", EnrollmentDate: "2026-08-30"}))
	require.NoError(t, f.enrollments.Create(ctx, &models.Enrollment{StudentID: bob.ID, CourseID: "CS101", EnrollmentDate: "2026-08-31"}))

	detail, err := f.svc.Detail(ctx, "CS101")
	require.NoError(t, err)
	require.NotNil(t, detail.Professor)
	assert.Equal(t, "Robert Smith", detail.Professor.DisplayName())
	require.Len(t, detail.EnrolledStudents, 2)
	names := []string{detail.EnrolledStudents[0].FirstName, detail.EnrolledStudents[1].FirstName}
	assert.ElementsMatch(t, []string{"Alice", "Bob"}, names)
}

func TestCourseServiceDetailToleratesMissingProfessor(t *testing.T) {
	f := newCourseFixtures(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, CourseRequest{ID: "PH201", Name: "University Physics I", Credits: 4, ProfessorID: "prof_gone"})
	require.NoError(t, err)

	detail, err := f.svc.Detail(ctx, "PH201")
	require.NoError(t, err)
	assert.Nil(t, detail.Professor)
	assert.Empty(t, detail.EnrolledStudents)
}

func TestCourseServiceDeleteCascadesEnrollments(t *testing.T) {
	f := newCourseFixtures(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, CourseRequest{ID: "MA101", Name: "Calculus I", Credits: 4})
	require.NoError(t, err)

	alice := models.Student{FirstName: "Alice", LastName: "Wonder", Email: "alice@example.com", StudentNumber: "1001", Major: "Literature"}
	require.NoError(t, f.students.Create(ctx, &alice))
	require.NoError(t, f.enrollments.Create(ctx, &models.Enrollment{StudentID: alice.ID, CourseID: "MA101", EnrollmentDate: "2026-08-31"}))

	require.NoError(t, f.svc.Delete(ctx, "MA101"))

	_, err = f.svc.Get(ctx, "MA101")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)

	left, err := f.enrollments.ListByCourse(ctx, "MA101")
	require.NoError(t, err)
	assert.Empty(t, left)
}
