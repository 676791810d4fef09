package ats

import (
	"fmt"
	"github.com/talentflow/ats/internal/metrics"
	"math/rand"
	"sync"
	"time"
)

type Op string

const (
	OpGetJobs       Op = "get_jobs"
	OpSearchJobs    Op = "search_jobs"
	OpFilterOptions Op = "filter_options"
	OpGetJob        Op = "get_job"
	OpArchivedJobs  Op = "archived_jobs"
	OpCreateJob     Op = "create_job"
	OpUpdateJob     Op = "update_job"
	OpDeleteJob     Op = "delete_job"
	OpArchiveJob    Op = "archive_job"
	OpUnarchiveJob  Op = "unarchive_job"
	OpReorderJob    Op = "reorder_job"

	OpGetCandidates        Op = "get_candidates"
	OpGetCandidate         Op = "get_candidate"
	OpUpdateCandidate      Op = "update_candidate"
	OpDeleteCandidate      Op = "delete_candidate"
	OpUpdateCandidateStage Op = "update_candidate_stage"
	OpCandidateStats       Op = "candidate_stats"
	OpCandidateResponses   Op = "candidate_responses"

	OpGetAssessments      Op = "get_assessments"
	OpGetAssessment       Op = "get_assessment"
	OpAssessmentByJob     Op = "assessment_by_job"
	OpCreateAssessment    Op = "create_assessment"
	OpUpdateAssessment    Op = "update_assessment"
	OpDeleteAssessment    Op = "delete_assessment"
	OpSubmitResponse      Op = "submit_response"
	OpAssessmentResponses Op = "assessment_responses"
	OpGetResponse         Op = "get_response"
	OpSaveDraft           Op = "save_draft"
	OpLoadDraft           Op = "load_draft"
	OpRemoveDraft         Op = "remove_draft"
)

var descriptions = map[Op]string{
	OpGetJobs:       "fetch jobs",
	OpSearchJobs:    "search jobs",
	OpFilterOptions: "load filter options",
	OpGetJob:        "fetch job",
	OpArchivedJobs:  "get archived jobs",
	OpCreateJob:     "create job",
	OpUpdateJob:     "update job",
	OpDeleteJob:     "delete job",
	OpArchiveJob:    "archive job",
	OpUnarchiveJob:  "unarchive job",
	OpReorderJob:    "reorder job",

	OpGetCandidates:        "fetch candidates",
	OpGetCandidate:         "fetch candidate",
	OpUpdateCandidate:      "update candidate",
	OpDeleteCandidate:      "delete candidate",
	OpUpdateCandidateStage: "update candidate stage",
	OpCandidateStats:       "fetch candidate stats",
	OpCandidateResponses:   "fetch candidate responses",

	OpGetAssessments:      "fetch assessments",
	OpGetAssessment:       "fetch assessment",
	OpAssessmentByJob:     "fetch assessment for job",
	OpCreateAssessment:    "create assessment",
	OpUpdateAssessment:    "update assessment",
	OpDeleteAssessment:    "delete assessment",
	OpSubmitResponse:      "submit response",
	OpAssessmentResponses: "fetch assessment responses",
	OpGetResponse:         "fetch candidate response",
	OpSaveDraft:           "save draft",
	OpLoadDraft:           "load draft",
	OpRemoveDraft:         "remove draft",
}

func (op Op) describe() string {
	if d, ok := descriptions[op]; ok {
		return d
	}
	return string(op)
}

const candidateAndAssessmentFailureRate = 0.06

// DefaultFailureRates returns the probability of a simulated failure per
// operation. Job reads never fail.
func DefaultFailureRates() map[Op]float64 {
	rates := map[Op]float64{
		OpCreateJob:    0.08,
		OpUpdateJob:    0.07,
		OpDeleteJob:    0.10,
		OpArchiveJob:   0.06,
		OpUnarchiveJob: 0.06,
		OpReorderJob:   0.05,
	}
	for op := range descriptions {
		switch op {
		case OpGetJobs, OpSearchJobs, OpFilterOptions, OpGetJob, OpArchivedJobs:
			rates[op] = 0
		default:
			if _, ok := rates[op]; !ok {
				rates[op] = candidateAndAssessmentFailureRate
			}
		}
	}
	return rates
}

// Failer decides whether an operation fails before it reaches the network.
// It is safe for concurrent use.
type Failer struct {
	mu    sync.Mutex
	rnd   *rand.Rand
	rates map[Op]float64
}

// NewFailer starts from DefaultFailureRates and applies overrides keyed by
// operation name. rnd may be nil.
func NewFailer(overrides map[string]float64, rnd *rand.Rand) *Failer {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	rates := DefaultFailureRates()
	for op, rate := range overrides {
		rates[Op(op)] = rate
	}
	return &Failer{rnd: rnd, rates: rates}
}

// NeverFail returns a Failer with every rate set to zero.
func NeverFail() *Failer {
	return &Failer{rnd: rand.New(rand.NewSource(1)), rates: map[Op]float64{}}
}

func (f *Failer) Rate(op Op) float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rates[op]
}

// Roll returns a simulated *Error with the probability configured for op.
func (f *Failer) Roll(op Op) error {
	f.mu.Lock()
	rate := f.rates[op]
	failed := rate > 0 && f.rnd.Float64() < rate
	f.mu.Unlock()

	if !failed {
		return nil
	}
	metrics.SimulatedFailuresCounter.WithLabelValues(string(op)).Inc()
	return &Error{
		Op:        op,
		Message:   fmt.Sprintf("Failed to %s - Server error (simulated)", op.describe()),
		Simulated: true,
	}
}
