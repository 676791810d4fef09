package api

import (
	"github.com/gorilla/mux"
	"github.com/talentflow/ats/internal/domain/events"
	"github.com/talentflow/ats/internal/domain/models"
	"github.com/talentflow/ats/internal/listing"
	"github.com/talentflow/ats/internal/repositories"
	"net/http"
)

const candidateNotFound = "Candidate not found"

type stageRequest struct {
	Stage string `json:"stage"`
}

type candidateResponsesResponse struct {
	Responses []models.ResponseWithAssessment `json:"responses"`
}

func (s *Server) listCandidates(w http.ResponseWriter, r *http.Request) {
	query, err := models.ParseCandidateQuery(r.URL.Query())
	if err != nil {
		fail(w, err, candidateNotFound, "Failed to fetch candidates")
		return
	}

	// jobId and stage are served by the (job_id, stage) index, the rest is filtered in memory
	candidates, err := s.repos.Candidates.Find(r.Context(), query.JobID, query.Stage)
	if err != nil {
		fail(w, err, candidateNotFound, "Failed to fetch candidates")
		return
	}
	writeJSON(w, http.StatusOK, listing.Candidates(candidates, query))
}

func (s *Server) candidateStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.repos.Queries.CandidateStats(r.Context(), r.URL.Query().Get("jobId"))
	if err != nil {
		fail(w, err, candidateNotFound, "Failed to fetch candidate stats")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) findCandidate(r *http.Request, id string) (*models.Candidate, error) {
	candidate, err := s.repos.Candidates.GetByID(r.Context(), id)
	if err != nil {
		return nil, err
	}
	if candidate == nil {
		return nil, repositories.ErrNotFound
	}
	return candidate, nil
}

func (s *Server) getCandidate(w http.ResponseWriter, r *http.Request) {
	candidate, err := s.findCandidate(r, mux.Vars(r)["id"])
	if err != nil {
		fail(w, err, candidateNotFound, "Failed to fetch candidate")
		return
	}
	writeJSON(w, http.StatusOK, candidate)
}

func (s *Server) updateCandidate(w http.ResponseWriter, r *http.Request) {
	const failed = "Failed to update candidate"

	candidate, err := s.findCandidate(r, mux.Vars(r)["id"])
	if err != nil {
		fail(w, err, candidateNotFound, failed)
		return
	}

	var patch models.CandidatePatch
	if err := decodeBody(r, &patch); err != nil {
		fail(w, err, candidateNotFound, failed)
		return
	}
	if err := patch.Validate(); err != nil {
		fail(w, err, candidateNotFound, failed)
		return
	}

	from := candidate.Stage
	patch.Apply(candidate)
	candidate.UpdatedAt = s.now()
	if err := s.repos.Candidates.Update(r.Context(), *candidate); err != nil {
		fail(w, err, candidateNotFound, failed)
		return
	}

	if candidate.Stage != from {
		s.bus.Publish(events.CandidateStageChangedTopic, events.CandidateStageChanged{Candidate: *candidate, From: from, To: candidate.Stage})
	} else {
		s.bus.Publish(events.CandidatesChangedTopic, events.CandidatesChanged{CandidateID: candidate.ID, JobID: candidate.JobID})
	}
	writeJSON(w, http.StatusOK, candidate)
}

func (s *Server) deleteCandidate(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := s.repos.Candidates.Delete(r.Context(), id); err != nil {
		fail(w, err, candidateNotFound, "Failed to delete candidate")
		return
	}

	s.bus.Publish(events.CandidatesChangedTopic, events.CandidatesChanged{CandidateID: id})
	writeJSON(w, http.StatusOK, messageResponse{Message: "Candidate deleted successfully"})
}

func (s *Server) updateCandidateStage(w http.ResponseWriter, r *http.Request) {
	const failed = "Failed to update candidate stage"

	var req stageRequest
	if err := decodeBody(r, &req); err != nil {
		fail(w, err, candidateNotFound, failed)
		return
	}
	stage, err := models.ParseStage(req.Stage)
	if err != nil {
		fail(w, err, candidateNotFound, failed)
		return
	}

	candidate, err := s.findCandidate(r, mux.Vars(r)["id"])
	if err != nil {
		fail(w, err, candidateNotFound, failed)
		return
	}

	if err := s.repos.Candidates.UpdateStage(r.Context(), candidate.ID, stage); err != nil {
		fail(w, err, candidateNotFound, failed)
		return
	}

	from := candidate.Stage
	candidate.Stage = stage
	candidate.UpdatedAt = s.now()

	s.bus.Publish(events.CandidateStageChangedTopic, events.CandidateStageChanged{Candidate: *candidate, From: from, To: stage})
	writeJSON(w, http.StatusOK, candidate)
}

func (s *Server) candidateResponses(w http.ResponseWriter, r *http.Request) {
	const failed = "Failed to fetch candidate responses"
	ctx := r.Context()

	responses, err := s.repos.Responses.GetByCandidate(ctx, mux.Vars(r)["id"])
	if err != nil {
		fail(w, err, candidateNotFound, failed)
		return
	}

	enriched := make([]models.ResponseWithAssessment, 0, len(responses))
	for _, response := range responses {
		assessment, err := s.repos.Assessments.GetByID(ctx, response.AssessmentID)
		if err != nil {
			fail(w, err, candidateNotFound, failed)
			return
		}
		enriched = append(enriched, models.ResponseWithAssessment{
			CandidateResponse: response,
			Assessment:        models.SummarizeAssessment(assessment),
		})
	}

	writeJSON(w, http.StatusOK, candidateResponsesResponse{Responses: enriched})
}
