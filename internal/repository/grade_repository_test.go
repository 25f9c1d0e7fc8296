package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushub/campus-hub-api/internal/models"
	"github.com/campushub/campus-hub-api/pkg/docstore/memstore"
)

func TestGradeRepositoryRecentExcludesPending(t *testing.T) {
	store := memstore.New()
	repo := NewGradeRepository(store)
	ctx := context.Background()

	posted := &models.Grade{StudentID: "s1", CourseID: "CS101", Assignment: "Midterm Exam", Grade: "A-", Date: "2024-05-10"}
	pending := &models.Grade{StudentID: "s1", CourseID: "DS201", Assignment: "Project 1", Grade: models.GradePending, Date: "N/A"}
	newest := &models.Grade{StudentID: "s1", CourseID: "MA101", Assignment: "Homework 5", Grade: "B+", Date: "2024-05-12"}
	require.NoError(t, repo.Create(ctx, posted))
	require.NoError(t, repo.Create(ctx, pending))
	require.NoError(t, repo.Create(ctx, newest))

	recent, err := repo.Recent(ctx, 3)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "B+", recent[0].Grade)
	assert.Equal(t, "A-", recent[1].Grade)
}

func TestGradeRepositoryListByStudent(t *testing.T) {
	store := memstore.New()
	repo := NewGradeRepository(store)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Grade{StudentID: "s1", CourseID: "CS101", Grade: "A", Date: "2024-05-01"}))
	require.NoError(t, repo.Create(ctx, &models.Grade{StudentID: "s2", CourseID: "CS101", Grade: "C", Date: "2024-04-28"}))

	grades, err := repo.ListByStudent(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, grades, 1)
	assert.Equal(t, models.StudentID("s1"), grades[0].StudentID)
	assert.True(t, grades[0].Posted())
}
