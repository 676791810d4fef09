package repositories

import (
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/talentflow/ats/internal/domain/models"
	"gorm.io/datatypes"
	"path/filepath"
	"testing"
	"time"
)

func newTestDbContext(t *testing.T) *DbContext {
	t.Helper()

	dbCtx, err := NewDbContext(filepath.Join(t.TempDir(), "testdatabase.db"))
	require.NoError(t, err)
	require.NoError(t, dbCtx.Migrate())

	t.Cleanup(func() { _ = dbCtx.Close() })
	return dbCtx
}

func newJob(title string, order int) models.Job {
	now := time.Now().UTC()
	return models.Job{
		ID:        uuid.NewString(),
		Title:     title,
		Slug:      models.Slugify(title),
		Status:    models.JobActive,
		Tags:      datatypes.JSONSlice[string]{"Go"},
		Order:     order,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func newCandidate(jobID string, stage models.Stage) models.Candidate {
	now := time.Now().UTC()
	return models.Candidate{
		ID:          uuid.NewString(),
		FirstName:   "Ada",
		LastName:    "Lovelace",
		Email:       "ada@example.com",
		Stage:       stage,
		JobID:       jobID,
		AppliedDate: now,
		Tags:        datatypes.JSONSlice[string]{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
