package api

import (
	"encoding/json"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/talentflow/ats/internal/domain/models"
	"github.com/talentflow/ats/internal/logger"
	"github.com/talentflow/ats/internal/repositories"
	"io"
	"net/http"
)

type errorResponse struct {
	Error    string   `json:"error"`
	Problems []string `json:"problems,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeApi).Errorf("failed to write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// fail maps store and validation errors to status codes. Anything unexpected
// is logged and reported with the generic message of the failed operation.
func fail(w http.ResponseWriter, err error, notFound, internal string) {
	var validationErr *models.ValidationError
	switch {
	case errors.As(err, &validationErr):
		writeError(w, http.StatusBadRequest, validationErr.Message)
	case errors.Is(err, repositories.ErrNotFound):
		writeError(w, http.StatusNotFound, notFound)
	case errors.Is(err, repositories.ErrDuplicateSlug),
		errors.Is(err, repositories.ErrAssessmentExists),
		errors.Is(err, repositories.ErrResponseExists):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("%s: %v", internal, err)
		writeError(w, http.StatusInternalServerError, internal)
	}
}

func decodeBody(r *http.Request, dst any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		return errors.Wrap(err, "failed to read body")
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return models.NewValidationError("Invalid request body")
	}
	return nil
}

const maxBodySize = 4 << 20
