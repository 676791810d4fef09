package api

import (
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
	"github.com/talentflow/ats/internal/assessment"
	"github.com/talentflow/ats/internal/domain/events"
	"github.com/talentflow/ats/internal/domain/models"
	"github.com/talentflow/ats/internal/listing"
	"github.com/talentflow/ats/internal/repositories"
	"gorm.io/datatypes"
	"net/http"
)

const assessmentNotFound = "Assessment not found"

func (s *Server) listAssessments(w http.ResponseWriter, r *http.Request) {
	query, err := models.ParseAssessmentQuery(r.URL.Query())
	if err != nil {
		fail(w, err, assessmentNotFound, "Failed to fetch assessments")
		return
	}

	assessments, err := s.repos.Assessments.GetAll(r.Context())
	if err != nil {
		fail(w, err, assessmentNotFound, "Failed to fetch assessments")
		return
	}
	writeJSON(w, http.StatusOK, listing.Assessments(assessments, query))
}

func (s *Server) findAssessment(r *http.Request) (*models.Assessment, error) {
	found, err := s.repos.Assessments.GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, repositories.ErrNotFound
	}
	return found, nil
}

func (s *Server) getAssessment(w http.ResponseWriter, r *http.Request) {
	found, err := s.findAssessment(r)
	if err != nil {
		fail(w, err, assessmentNotFound, "Failed to fetch assessment")
		return
	}
	writeJSON(w, http.StatusOK, found)
}

func (s *Server) assessmentByJob(w http.ResponseWriter, r *http.Request) {
	found, err := s.repos.Assessments.GetByJob(r.Context(), mux.Vars(r)["jobId"])
	if err == nil && found == nil {
		err = repositories.ErrNotFound
	}
	if err != nil {
		fail(w, err, "Assessment not found for this job", "Failed to fetch assessment")
		return
	}
	writeJSON(w, http.StatusOK, found)
}

func (s *Server) createAssessment(w http.ResponseWriter, r *http.Request) {
	const failed = "Failed to create assessment"

	var input models.AssessmentInput
	if err := decodeBody(r, &input); err != nil {
		fail(w, err, assessmentNotFound, failed)
		return
	}
	if err := input.Validate(); err != nil {
		fail(w, err, assessmentNotFound, failed)
		return
	}

	ctx := r.Context()
	existing, err := s.repos.Assessments.GetByJob(ctx, input.JobID)
	if err == nil && existing != nil {
		err = repositories.ErrAssessmentExists
	}
	if err != nil {
		fail(w, err, assessmentNotFound, failed)
		return
	}

	now := s.now()
	created := models.Assessment{
		ID:          uuid.NewString(),
		JobID:       input.JobID,
		Title:       input.Title,
		Description: input.Description,
		Sections:    datatypes.NewJSONType(models.WithQuestionDefaults(input.Sections)),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repos.Assessments.Add(ctx, created); err != nil {
		fail(w, err, assessmentNotFound, failed)
		return
	}

	warnReferences(created)
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) updateAssessment(w http.ResponseWriter, r *http.Request) {
	const failed = "Failed to update assessment"

	found, err := s.findAssessment(r)
	if err != nil {
		fail(w, err, assessmentNotFound, failed)
		return
	}

	var patch models.AssessmentPatch
	if err := decodeBody(r, &patch); err != nil {
		fail(w, err, assessmentNotFound, failed)
		return
	}
	if err := patch.Validate(); err != nil {
		fail(w, err, assessmentNotFound, failed)
		return
	}

	patch.Apply(found)
	found.UpdatedAt = s.now()
	if err := s.repos.Assessments.Update(r.Context(), *found); err != nil {
		fail(w, err, assessmentNotFound, failed)
		return
	}

	warnReferences(*found)
	writeJSON(w, http.StatusOK, found)
}

func (s *Server) deleteAssessment(w http.ResponseWriter, r *http.Request) {
	const failed = "Failed to delete assessment"

	found, err := s.findAssessment(r)
	if err != nil {
		fail(w, err, assessmentNotFound, failed)
		return
	}

	deleted, err := s.repos.Assessments.Delete(r.Context(), found.ID)
	if err != nil {
		fail(w, err, assessmentNotFound, failed)
		return
	}

	s.bus.Publish(events.AssessmentDeletedTopic, events.AssessmentDeleted{
		AssessmentID:     found.ID,
		JobID:            found.JobID,
		DeletedResponses: deleted,
	})
	writeJSON(w, http.StatusOK, messageResponse{Message: "Assessment deleted successfully"})
}

// warnReferences logs conditionals that can never be satisfied. They are kept
// as authored.
func warnReferences(a models.Assessment) {
	problems := assessment.CheckReferences(a)
	if len(problems) == 0 {
		return
	}
	log.WithField("assessment_id", a.ID).Warnf("assessment has unreachable conditionals: %v",
		lo.Map(problems, func(p assessment.Problem, _ int) string { return p.String() }))
}
