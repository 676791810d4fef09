package api

import (
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"github.com/talentflow/ats/internal/domain/events"
	"github.com/talentflow/ats/internal/domain/models"
	"github.com/talentflow/ats/internal/listing"
	"github.com/talentflow/ats/internal/repositories"
	"net/http"
	"strings"
)

const jobNotFound = "Job not found"

type reorderRequest struct {
	FromOrder *int `json:"fromOrder"`
	ToOrder   *int `json:"toOrder"`
}

type reorderResponse struct {
	Message string       `json:"message"`
	Jobs    []models.Job `json:"jobs"`
}

type jobResponse struct {
	Job models.Job `json:"job"`
}

func (s *Server) listJobs(w http.ResponseWriter, r *http.Request) {
	query, err := models.ParseJobQuery(r.URL.Query())
	if err != nil {
		fail(w, err, jobNotFound, "Failed to fetch jobs")
		return
	}

	jobs, err := s.repos.Jobs.GetAll(r.Context())
	if err != nil {
		fail(w, err, jobNotFound, "Failed to fetch jobs")
		return
	}
	writeJSON(w, http.StatusOK, listing.Jobs(jobs, query))
}

func (s *Server) searchJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := s.repos.Jobs.GetAll(r.Context())
	if err != nil {
		fail(w, err, jobNotFound, "Failed to fetch filtered jobs")
		return
	}
	writeJSON(w, http.StatusOK, listing.QuickSearch(jobs, r.URL.Query().Get("q")))
}

func (s *Server) jobFilterOptions(w http.ResponseWriter, r *http.Request) {
	options, err := s.repos.Queries.FilterOptions(r.Context())
	if err != nil {
		fail(w, err, jobNotFound, "Failed to fetch filter options")
		return
	}
	writeJSON(w, http.StatusOK, options)
}

func (s *Server) archivedJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := s.repos.Jobs.GetAll(r.Context())
	if err != nil {
		fail(w, err, jobNotFound, "Failed to fetch filtered jobs")
		return
	}
	writeJSON(w, http.StatusOK, listing.Archived(jobs))
}

func (s *Server) getJob(w http.ResponseWriter, r *http.Request) {
	job, err := s.findJob(r)
	if err != nil {
		fail(w, err, jobNotFound, "Failed to fetch job")
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func (s *Server) findJob(r *http.Request) (*models.Job, error) {
	job, err := s.repos.Jobs.GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, repositories.ErrNotFound
	}
	return job, nil
}

func (s *Server) createJob(w http.ResponseWriter, r *http.Request) {
	const failed = "Failed to create job"

	var input models.JobInput
	if err := decodeBody(r, &input); err != nil {
		fail(w, err, jobNotFound, failed)
		return
	}
	if err := input.Validate(); err != nil {
		fail(w, err, jobNotFound, failed)
		return
	}

	ctx := r.Context()
	if err := s.ensureSlugFree(r, strings.TrimSpace(input.Slug), ""); err != nil {
		fail(w, err, jobNotFound, failed)
		return
	}

	nextOrder, err := s.repos.Jobs.NextOrder(ctx)
	if err != nil {
		fail(w, err, jobNotFound, failed)
		return
	}

	job := input.NewJob(uuid.NewString(), nextOrder, s.now())
	if err := s.repos.Jobs.Add(ctx, job); err != nil {
		fail(w, err, jobNotFound, failed)
		return
	}

	s.bus.Publish(events.JobsChangedTopic, events.JobsChanged{JobID: job.ID, Action: "create"})
	writeJSON(w, http.StatusCreated, job)
}

// ensureSlugFree reports ErrDuplicateSlug when another job already uses slug.
func (s *Server) ensureSlugFree(r *http.Request, slug, ownerID string) error {
	existing, err := s.repos.Jobs.GetBySlug(r.Context(), slug)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != ownerID {
		return repositories.ErrDuplicateSlug
	}
	return nil
}

func (s *Server) updateJob(w http.ResponseWriter, r *http.Request) {
	const failed = "Failed to update job"

	job, err := s.findJob(r)
	if err != nil {
		fail(w, err, jobNotFound, failed)
		return
	}

	var patch models.JobPatch
	if err := decodeBody(r, &patch); err != nil {
		fail(w, err, jobNotFound, failed)
		return
	}
	if err := patch.Validate(); err != nil {
		fail(w, err, jobNotFound, failed)
		return
	}

	if slug, ok := patch.TrimmedSlug(); ok && slug != job.Slug {
		if err := s.ensureSlugFree(r, slug, job.ID); err != nil {
			fail(w, err, jobNotFound, failed)
			return
		}
	}

	patch.Apply(job)
	job.UpdatedAt = s.now()
	if err := s.repos.Jobs.Update(r.Context(), *job); err != nil {
		fail(w, err, jobNotFound, failed)
		return
	}

	s.bus.Publish(events.JobsChangedTopic, events.JobsChanged{JobID: job.ID, Action: "update"})
	writeJSON(w, http.StatusOK, job)
}

func (s *Server) archiveJob(w http.ResponseWriter, r *http.Request) {
	s.setJobStatus(w, r, models.JobArchived, "Failed to archive job")
}

func (s *Server) unarchiveJob(w http.ResponseWriter, r *http.Request) {
	s.setJobStatus(w, r, models.JobActive, "Failed to unarchive job")
}

func (s *Server) setJobStatus(w http.ResponseWriter, r *http.Request, status models.JobStatus, failed string) {
	job, err := s.findJob(r)
	if err != nil {
		fail(w, err, jobNotFound, failed)
		return
	}

	models.JobPatch{Status: &status}.Apply(job)
	job.UpdatedAt = s.now()
	if err := s.repos.Jobs.Update(r.Context(), *job); err != nil {
		fail(w, err, jobNotFound, failed)
		return
	}

	s.bus.Publish(events.JobsChangedTopic, events.JobsChanged{JobID: job.ID, Action: string(status)})
	writeJSON(w, http.StatusOK, jobResponse{Job: *job})
}

func (s *Server) reorderJob(w http.ResponseWriter, r *http.Request) {
	const failed = "Failed to reorder job"

	var req reorderRequest
	if err := decodeBody(r, &req); err != nil {
		fail(w, err, jobNotFound, failed)
		return
	}
	if req.FromOrder == nil || req.ToOrder == nil {
		writeError(w, http.StatusBadRequest, "fromOrder and toOrder are required")
		return
	}

	ctx := r.Context()
	id := mux.Vars(r)["id"]
	log.Debugf("reordering job %s: %d -> %d", id, *req.FromOrder, *req.ToOrder)

	if err := s.repos.Jobs.Reorder(ctx, id, *req.FromOrder, *req.ToOrder); err != nil {
		fail(w, err, jobNotFound, failed)
		return
	}

	jobs, err := s.repos.Jobs.GetAll(ctx)
	if err != nil {
		fail(w, err, jobNotFound, failed)
		return
	}

	s.bus.Publish(events.JobsChangedTopic, events.JobsChanged{JobID: id, Action: "reorder"})
	writeJSON(w, http.StatusOK, reorderResponse{Message: "Job reordered successfully", Jobs: jobs})
}

func (s *Server) deleteJob(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := s.repos.Jobs.Delete(r.Context(), id); err != nil {
		fail(w, err, jobNotFound, "Failed to delete job")
		return
	}

	s.bus.Publish(events.JobsChangedTopic, events.JobsChanged{JobID: id, Action: "delete"})
	writeJSON(w, http.StatusOK, messageResponse{Message: "Job deleted successfully"})
}
