package api

import (
	"context"
	"github.com/talentflow/ats/internal/domain/models"
	"time"
)

type jobRepository interface {
	GetAll(ctx context.Context) ([]models.Job, error)
	GetByID(ctx context.Context, id string) (*models.Job, error)
	GetBySlug(ctx context.Context, slug string) (*models.Job, error)
	NextOrder(ctx context.Context) (int, error)
	Add(ctx context.Context, job models.Job) error
	Update(ctx context.Context, job models.Job) error
	Delete(ctx context.Context, id string) error
	Reorder(ctx context.Context, id string, fromOrder, toOrder int) error
}

type candidateRepository interface {
	Find(ctx context.Context, jobID string, stage models.Stage) ([]models.Candidate, error)
	GetByID(ctx context.Context, id string) (*models.Candidate, error)
	Update(ctx context.Context, candidate models.Candidate) error
	UpdateStage(ctx context.Context, id string, stage models.Stage) error
	Delete(ctx context.Context, id string) error
}

type assessmentRepository interface {
	GetAll(ctx context.Context) ([]models.Assessment, error)
	GetByID(ctx context.Context, id string) (*models.Assessment, error)
	GetByJob(ctx context.Context, jobID string) (*models.Assessment, error)
	Add(ctx context.Context, assessment models.Assessment) error
	Update(ctx context.Context, assessment models.Assessment) error
	Delete(ctx context.Context, id string) (int64, error)
}

type responseRepository interface {
	Add(ctx context.Context, response models.CandidateResponse) error
	Get(ctx context.Context, assessmentID, candidateID string) (*models.CandidateResponse, error)
	GetByAssessment(ctx context.Context, assessmentID string) ([]models.CandidateResponse, error)
	GetByCandidate(ctx context.Context, candidateID string) ([]models.CandidateResponse, error)
}

type draftRepository interface {
	Save(ctx context.Context, id string, data []byte) error
	Load(ctx context.Context, id string) ([]byte, error)
	Remove(ctx context.Context, id string) error
	RemoveByPrefix(ctx context.Context, prefix string) (int64, error)
}

type cachedQueries interface {
	FilterOptions(ctx context.Context) (models.FilterOptions, error)
	CandidateStats(ctx context.Context, jobID string) (models.CandidateStats, error)
	InvalidateJobs()
	InvalidateCandidates()
}

type clock func() time.Time
