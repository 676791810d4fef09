package api

import (
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
	"github.com/talentflow/ats/internal/assessment"
	"github.com/talentflow/ats/internal/domain/models"
	"github.com/talentflow/ats/internal/logger"
	"github.com/talentflow/ats/internal/repositories"
	"gorm.io/datatypes"
	"net/http"
)

const responseNotFound = "Response not found"

type assessmentResponsesResponse struct {
	Responses []models.ResponseWithCandidate `json:"responses"`
}

func (s *Server) submitResponse(w http.ResponseWriter, r *http.Request) {
	const failed = "Failed to submit response"
	ctx := r.Context()

	var submission models.ResponseSubmission
	if err := decodeBody(r, &submission); err != nil {
		fail(w, err, assessmentNotFound, failed)
		return
	}
	if err := submission.Validate(); err != nil {
		fail(w, err, assessmentNotFound, failed)
		return
	}

	target, err := s.findAssessment(r)
	if err != nil {
		fail(w, err, assessmentNotFound, failed)
		return
	}
	if _, err := s.findCandidate(r, submission.CandidateID); err != nil {
		fail(w, err, candidateNotFound, failed)
		return
	}

	existing, err := s.repos.Responses.Get(ctx, target.ID, submission.CandidateID)
	if err == nil && existing != nil {
		err = repositories.ErrResponseExists
	}
	if err != nil {
		fail(w, err, responseNotFound, failed)
		return
	}

	if problems := assessment.Validate(*target, submission.Responses); len(problems) > 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:    "Response is incomplete or invalid",
			Problems: lo.Map(problems, func(p assessment.Problem, _ int) string { return p.String() }),
		})
		return
	}

	response := models.CandidateResponse{
		ID:           uuid.NewString(),
		AssessmentID: target.ID,
		CandidateID:  submission.CandidateID,
		Responses:    datatypes.JSONMap(submission.Responses),
		SubmittedAt:  s.now(),
	}
	if err := s.repos.Responses.Add(ctx, response); err != nil {
		fail(w, err, responseNotFound, failed)
		return
	}

	if err := s.repos.Drafts.Remove(ctx, models.ResponseDraftKey(target.ID, submission.CandidateID)); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to remove response draft: %v", err)
	}
	writeJSON(w, http.StatusCreated, response)
}

func (s *Server) assessmentResponses(w http.ResponseWriter, r *http.Request) {
	const failed = "Failed to fetch responses"
	ctx := r.Context()

	responses, err := s.repos.Responses.GetByAssessment(ctx, mux.Vars(r)["id"])
	if err != nil {
		fail(w, err, responseNotFound, failed)
		return
	}

	enriched := make([]models.ResponseWithCandidate, 0, len(responses))
	for _, response := range responses {
		withCandidate, err := s.withCandidate(r, response)
		if err != nil {
			fail(w, err, responseNotFound, failed)
			return
		}
		enriched = append(enriched, withCandidate)
	}
	writeJSON(w, http.StatusOK, assessmentResponsesResponse{Responses: enriched})
}

func (s *Server) getResponse(w http.ResponseWriter, r *http.Request) {
	const failed = "Failed to fetch response"
	vars := mux.Vars(r)

	response, err := s.repos.Responses.Get(r.Context(), vars["id"], vars["candidateId"])
	if err == nil && response == nil {
		err = repositories.ErrNotFound
	}
	if err != nil {
		fail(w, err, responseNotFound, failed)
		return
	}

	withCandidate, err := s.withCandidate(r, *response)
	if err != nil {
		fail(w, err, responseNotFound, failed)
		return
	}
	writeJSON(w, http.StatusOK, withCandidate)
}

func (s *Server) withCandidate(r *http.Request, response models.CandidateResponse) (models.ResponseWithCandidate, error) {
	candidate, err := s.repos.Candidates.GetByID(r.Context(), response.CandidateID)
	if err != nil {
		return models.ResponseWithCandidate{}, err
	}
	return models.ResponseWithCandidate{
		CandidateResponse: response,
		Candidate:         models.SummarizeCandidate(candidate),
	}, nil
}
