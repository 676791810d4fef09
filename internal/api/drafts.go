package api

import (
	"encoding/json"
	"github.com/gorilla/mux"
	"github.com/talentflow/ats/internal/domain/models"
	"io"
	"net/http"
)

const draftNotFound = "Draft not found"

func assessmentDraftKey(r *http.Request) string {
	return models.AssessmentDraftKey(mux.Vars(r)["id"])
}

func responseDraftKey(r *http.Request) string {
	vars := mux.Vars(r)
	return models.ResponseDraftKey(vars["id"], vars["candidateId"])
}

func (s *Server) saveAssessmentDraft(w http.ResponseWriter, r *http.Request) {
	s.saveDraft(w, r, assessmentDraftKey(r))
}

func (s *Server) loadAssessmentDraft(w http.ResponseWriter, r *http.Request) {
	s.loadDraft(w, r, assessmentDraftKey(r))
}

func (s *Server) removeAssessmentDraft(w http.ResponseWriter, r *http.Request) {
	s.removeDraft(w, r, assessmentDraftKey(r))
}

func (s *Server) saveResponseDraft(w http.ResponseWriter, r *http.Request) {
	s.saveDraft(w, r, responseDraftKey(r))
}

func (s *Server) loadResponseDraft(w http.ResponseWriter, r *http.Request) {
	s.loadDraft(w, r, responseDraftKey(r))
}

func (s *Server) removeResponseDraft(w http.ResponseWriter, r *http.Request) {
	s.removeDraft(w, r, responseDraftKey(r))
}

func (s *Server) saveDraft(w http.ResponseWriter, r *http.Request, key string) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil || !json.Valid(body) {
		writeError(w, http.StatusBadRequest, "Draft must be valid JSON")
		return
	}

	if err := s.repos.Drafts.Save(r.Context(), key, body); err != nil {
		fail(w, err, draftNotFound, "Failed to save draft")
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Draft saved"})
}

func (s *Server) loadDraft(w http.ResponseWriter, r *http.Request, key string) {
	data, err := s.repos.Drafts.Load(r.Context(), key)
	if err != nil {
		fail(w, err, draftNotFound, "Failed to load draft")
		return
	}
	if data == nil {
		writeError(w, http.StatusNotFound, draftNotFound)
		return
	}
	writeJSON(w, http.StatusOK, json.RawMessage(data))
}

func (s *Server) removeDraft(w http.ResponseWriter, r *http.Request, key string) {
	if err := s.repos.Drafts.Remove(r.Context(), key); err != nil {
		fail(w, err, draftNotFound, "Failed to remove draft")
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Draft removed"})
}
