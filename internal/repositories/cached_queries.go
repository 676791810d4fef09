package repositories

import (
	"context"
	gocache "github.com/patrickmn/go-cache"
	"github.com/talentflow/ats/internal/domain/models"
	"github.com/talentflow/ats/internal/listing"
	"strings"
	"time"
)

type jobLister interface {
	GetAll(ctx context.Context) ([]models.Job, error)
}

type candidateFinder interface {
	Find(ctx context.Context, jobID string, stage models.Stage) ([]models.Candidate, error)
}

const (
	filterOptionsKey   = "filter_options"
	candidateStatsKey  = "candidate_stats:"
	defaultCacheExpiry = 5 * time.Minute
)

// CachedQueries caches aggregate reads that scan whole collections. Callers
// invalidate it when the underlying collection changes.
type CachedQueries struct {
	jobs       jobLister
	candidates candidateFinder
	cache      *gocache.Cache
}

func NewCachedQueries(jobs jobLister, candidates candidateFinder, expiration time.Duration) *CachedQueries {
	if expiration <= 0 {
		expiration = defaultCacheExpiry
	}
	return &CachedQueries{
		jobs:       jobs,
		candidates: candidates,
		cache:      gocache.New(expiration, 2*expiration),
	}
}

func (c *CachedQueries) FilterOptions(ctx context.Context) (models.FilterOptions, error) {
	if value, found := c.cache.Get(filterOptionsKey); found {
		return value.(models.FilterOptions), nil
	}

	jobs, err := c.jobs.GetAll(ctx)
	if err != nil {
		return models.FilterOptions{}, err
	}

	options := listing.FilterOptions(jobs)
	c.cache.SetDefault(filterOptionsKey, options)
	return options, nil
}

func (c *CachedQueries) CandidateStats(ctx context.Context, jobID string) (models.CandidateStats, error) {
	key := candidateStatsKey + jobID
	if value, found := c.cache.Get(key); found {
		return value.(models.CandidateStats), nil
	}

	candidates, err := c.candidates.Find(ctx, jobID, "")
	if err != nil {
		return models.CandidateStats{}, err
	}

	stats := models.ComputeCandidateStats(candidates)
	c.cache.SetDefault(key, stats)
	return stats, nil
}

func (c *CachedQueries) InvalidateJobs() {
	c.cache.Delete(filterOptionsKey)
}

func (c *CachedQueries) InvalidateCandidates() {
	for key := range c.cache.Items() {
		if strings.HasPrefix(key, candidateStatsKey) {
			c.cache.Delete(key)
		}
	}
}
