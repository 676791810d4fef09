package repositories

import (
	"context"
	"fmt"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talentflow/ats/internal/domain/models"
	"testing"
)

func Test_Jobs_AddAndGet(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	jobs := NewJobsRepository(newTestDbContext(t).DB)

	job := newJob("Go Developer", 1)
	require.NoError(t, jobs.Add(ctx, job))

	stored, err := jobs.GetByID(ctx, job.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal("go-developer", stored.Slug)
	assert.Equal([]string{"Go"}, []string(stored.Tags))

	bySlug, err := jobs.GetBySlug(ctx, "go-developer")
	require.NoError(t, err)
	assert.Equal(job.ID, bySlug.ID)

	missing, err := jobs.GetByID(ctx, "missing")
	assert.NoError(err)
	assert.Nil(missing)
}

func Test_Jobs_SlugIsUnique(t *testing.T) {
	ctx := context.Background()
	jobs := NewJobsRepository(newTestDbContext(t).DB)

	first := newJob("Go Developer", 1)
	require.NoError(t, jobs.Add(ctx, first))

	duplicate := newJob("Go Developer", 2)
	assert.ErrorIs(t, jobs.Add(ctx, duplicate), ErrDuplicateSlug)

	other := newJob("Rust Developer", 2)
	require.NoError(t, jobs.Add(ctx, other))
	other.Slug = first.Slug
	assert.ErrorIs(t, jobs.Update(ctx, other), ErrDuplicateSlug)
}

func Test_Jobs_NextOrder(t *testing.T) {
	ctx := context.Background()
	jobs := NewJobsRepository(newTestDbContext(t).DB)

	next, err := jobs.NextOrder(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, next)

	require.NoError(t, jobs.Add(ctx, newJob("A", 7)))
	next, err = jobs.NextOrder(ctx)
	require.NoError(t, err)
	assert.Equal(t, 8, next)
}

func Test_Jobs_Reorder_ShiftsJobsBetween(t *testing.T) {
	ctx := context.Background()
	jobs := NewJobsRepository(newTestDbContext(t).DB)

	for i := 1; i <= 5; i++ {
		require.NoError(t, jobs.Add(ctx, newJob(fmt.Sprintf("Job %d", i), i)))
	}

	all, err := jobs.GetAll(ctx)
	require.NoError(t, err)
	moved := all[1]

	require.NoError(t, jobs.Reorder(ctx, moved.ID, 2, 4))

	all, err = jobs.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"job-1", "job-3", "job-4", "job-2", "job-5"},
		lo.Map(all, func(j models.Job, _ int) string { return j.Slug }))
	assert.Equal(t, []int{1, 2, 3, 4, 5}, lo.Map(all, func(j models.Job, _ int) int { return j.Order }))

	require.NoError(t, jobs.Reorder(ctx, moved.ID, 4, 1))
	all, err = jobs.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"job-2", "job-1", "job-3", "job-4", "job-5"},
		lo.Map(all, func(j models.Job, _ int) string { return j.Slug }))
}

func Test_Jobs_Reorder_UnknownJobChangesNothing(t *testing.T) {
	ctx := context.Background()
	jobs := NewJobsRepository(newTestDbContext(t).DB)

	require.NoError(t, jobs.Add(ctx, newJob("A", 1)))
	require.NoError(t, jobs.Add(ctx, newJob("B", 2)))

	assert.ErrorIs(t, jobs.Reorder(ctx, "missing", 1, 2), ErrNotFound)

	all, err := jobs.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, lo.Map(all, func(j models.Job, _ int) int { return j.Order }))
}

func Test_Jobs_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	jobs := NewJobsRepository(newTestDbContext(t).DB)

	job := newJob("A", 1)
	require.NoError(t, jobs.Add(ctx, job))

	job.Status = models.JobArchived
	job.IsArchived = true
	require.NoError(t, jobs.Update(ctx, job))

	archived, err := jobs.GetByStatus(ctx, models.JobArchived)
	require.NoError(t, err)
	require.Len(t, archived, 1)
	assert.True(t, archived[0].IsArchived)

	require.NoError(t, jobs.Delete(ctx, job.ID))
	assert.ErrorIs(t, jobs.Delete(ctx, job.ID), ErrNotFound)
	assert.ErrorIs(t, jobs.Update(ctx, job), ErrNotFound)
}
