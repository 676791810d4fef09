package api

import (
	"context"
	"github.com/asaskevich/EventBus"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"github.com/talentflow/ats/internal/config"
	"github.com/talentflow/ats/internal/domain/events"
	"github.com/talentflow/ats/internal/domain/models"
	"github.com/talentflow/ats/internal/logger"
	"github.com/talentflow/ats/internal/metrics"
	"math/rand"
	"net/http"
	"time"
)

type Repositories struct {
	Jobs        jobRepository
	Candidates  candidateRepository
	Assessments assessmentRepository
	Responses   responseRepository
	Drafts      draftRepository
	Queries     cachedQueries
}

type Server struct {
	repos Repositories
	bus   EventBus.Bus
	now   clock
}

func NewServer(repos Repositories, bus EventBus.Bus) (*Server, error) {
	s := &Server{repos: repos, bus: bus, now: func() time.Time { return time.Now().UTC() }}

	if err := bus.Subscribe(events.JobsChangedTopic, s.onJobsChanged); err != nil {
		return nil, err
	}
	if err := bus.Subscribe(events.CandidatesChangedTopic, s.onCandidatesChanged); err != nil {
		return nil, err
	}
	if err := bus.Subscribe(events.CandidateStageChangedTopic, s.onCandidateStageChanged); err != nil {
		return nil, err
	}
	if err := bus.Subscribe(events.AssessmentDeletedTopic, s.onAssessmentDeleted); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Server) onJobsChanged(events.JobsChanged) {
	s.repos.Queries.InvalidateJobs()
}

func (s *Server) onCandidatesChanged(events.CandidatesChanged) {
	s.repos.Queries.InvalidateCandidates()
}

func (s *Server) onCandidateStageChanged(events.CandidateStageChanged) {
	s.repos.Queries.InvalidateCandidates()
}

// onAssessmentDeleted drops the builder draft and every candidate's response
// draft of the deleted assessment.
func (s *Server) onAssessmentDeleted(e events.AssessmentDeleted) {
	ctx := context.Background()

	if err := s.repos.Drafts.Remove(ctx, models.AssessmentDraftKey(e.AssessmentID)); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to remove assessment draft: %v", err)
	}

	removed, err := s.repos.Drafts.RemoveByPrefix(ctx, models.ResponseDraftPrefix(e.AssessmentID))
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to remove response drafts: %v", err)
		return
	}
	log.WithField("assessment_id", e.AssessmentID).Debugf("removed %d response drafts", removed)
}

// Router builds the HTTP handler. Routes under /api are delayed by the
// configured latency. rnd may be nil.
func (s *Server) Router(cfg config.ServerConfig, rnd *rand.Rand) *mux.Router {
	r := mux.NewRouter()
	r.Use(metricsMiddleware)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)
	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(sessionMiddleware, newLatency(cfg.LatencyMin, cfg.LatencyMax, rnd).Middleware)

	// static paths go before their {id} siblings
	api.HandleFunc("/jobs", s.listJobs).Methods(http.MethodGet)
	api.HandleFunc("/jobs", requireStaff(s.createJob)).Methods(http.MethodPost)
	api.HandleFunc("/jobs/search", s.searchJobs).Methods(http.MethodGet)
	api.HandleFunc("/jobs/filters/options", s.jobFilterOptions).Methods(http.MethodGet)
	api.HandleFunc("/jobs/archive", s.archivedJobs).Methods(http.MethodGet)
	api.HandleFunc("/jobs/{id}", s.getJob).Methods(http.MethodGet)
	api.HandleFunc("/jobs/{id}", requireStaff(s.updateJob)).Methods(http.MethodPut)
	api.HandleFunc("/jobs/{id}", requireStaff(s.deleteJob)).Methods(http.MethodDelete)
	api.HandleFunc("/jobs/{id}/archive", requireStaff(s.archiveJob)).Methods(http.MethodPatch)
	api.HandleFunc("/jobs/{id}/unarchive", requireStaff(s.unarchiveJob)).Methods(http.MethodPatch)
	api.HandleFunc("/jobs/{id}/reorder", requireStaff(s.reorderJob)).Methods(http.MethodPatch)

	api.HandleFunc("/candidates", s.listCandidates).Methods(http.MethodGet)
	api.HandleFunc("/candidates/stats", s.candidateStats).Methods(http.MethodGet)
	api.HandleFunc("/candidates/{id}", s.getCandidate).Methods(http.MethodGet)
	api.HandleFunc("/candidates/{id}", requireStaff(s.updateCandidate)).Methods(http.MethodPut)
	api.HandleFunc("/candidates/{id}", requireStaff(s.deleteCandidate)).Methods(http.MethodDelete)
	api.HandleFunc("/candidates/{id}/stage", requireStaff(s.updateCandidateStage)).Methods(http.MethodPatch)
	api.HandleFunc("/candidates/{id}/responses", s.candidateResponses).Methods(http.MethodGet)

	api.HandleFunc("/assessments", s.listAssessments).Methods(http.MethodGet)
	api.HandleFunc("/assessments", requireStaff(s.createAssessment)).Methods(http.MethodPost)
	api.HandleFunc("/assessments/job/{jobId}", s.assessmentByJob).Methods(http.MethodGet)
	api.HandleFunc("/assessments/{id}", s.getAssessment).Methods(http.MethodGet)
	api.HandleFunc("/assessments/{id}", requireStaff(s.updateAssessment)).Methods(http.MethodPut)
	api.HandleFunc("/assessments/{id}", requireStaff(s.deleteAssessment)).Methods(http.MethodDelete)
	api.HandleFunc("/assessments/{id}/draft", s.saveAssessmentDraft).Methods(http.MethodPut)
	api.HandleFunc("/assessments/{id}/draft", s.loadAssessmentDraft).Methods(http.MethodGet)
	api.HandleFunc("/assessments/{id}/draft", s.removeAssessmentDraft).Methods(http.MethodDelete)
	api.HandleFunc("/assessments/{id}/responses", s.submitResponse).Methods(http.MethodPost)
	api.HandleFunc("/assessments/{id}/responses", s.assessmentResponses).Methods(http.MethodGet)
	api.HandleFunc("/assessments/{id}/responses/{candidateId}", s.getResponse).Methods(http.MethodGet)
	api.HandleFunc("/assessments/{id}/responses/{candidateId}/draft", s.saveResponseDraft).Methods(http.MethodPut)
	api.HandleFunc("/assessments/{id}/responses/{candidateId}/draft", s.loadResponseDraft).Methods(http.MethodGet)
	api.HandleFunc("/assessments/{id}/responses/{candidateId}/draft", s.removeResponseDraft).Methods(http.MethodDelete)

	return r
}
