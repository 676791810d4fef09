package services

import (
	"context"
	log "github.com/sirupsen/logrus"
	"github.com/talentflow/ats/internal/domain/models"
	"github.com/talentflow/ats/internal/logger"
	"github.com/talentflow/ats/internal/metrics"
	"sync"
	"time"
)

const (
	DefaultSearchDebounce = 300 * time.Millisecond
	jobSearchKind         = "job_search"
)

type jobSearchClient interface {
	SearchJobs(ctx context.Context, term string) ([]models.Job, error)
}

// JobSearcher debounces search terms and delivers only the result of the most
// recent term. Failed searches are delivered as an empty result.
type JobSearcher struct {
	client  jobSearchClient
	delay   time.Duration
	deliver func(term string, jobs []models.Job)

	mu    sync.Mutex
	timer *time.Timer
	seq   uint64
}

func NewJobSearcher(client jobSearchClient, delay time.Duration, deliver func(term string, jobs []models.Job)) *JobSearcher {
	if delay <= 0 {
		delay = DefaultSearchDebounce
	}
	return &JobSearcher{client: client, delay: delay, deliver: deliver}
}

// Search schedules a search for term once no newer term arrives within the
// quiet period.
func (s *JobSearcher) Search(ctx context.Context, term string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	seq := s.seq
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.delay, func() { s.run(ctx, seq, term) })
}

// Stop cancels the pending search and drops results still in flight.
func (s *JobSearcher) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	if s.timer != nil {
		s.timer.Stop()
	}
}

func (s *JobSearcher) isLatest(seq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return seq == s.seq
}

func (s *JobSearcher) run(ctx context.Context, seq uint64, term string) {
	if !s.isLatest(seq) {
		return
	}

	jobs, err := s.client.SearchJobs(ctx, term)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeClient).Warnf("job search for %q failed: %v", term, err)
		jobs = []models.Job{}
	}

	if !s.isLatest(seq) {
		metrics.StaleResponsesCounter.WithLabelValues(jobSearchKind).Inc()
		return
	}
	s.deliver(term, jobs)
}
