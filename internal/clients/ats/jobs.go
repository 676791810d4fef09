package ats

import (
	"context"
	"github.com/talentflow/ats/internal/domain/models"
	"net/http"
	"net/url"
)

type jobResponse struct {
	Job models.Job `json:"job"`
}

type reorderRequest struct {
	FromOrder int `json:"fromOrder"`
	ToOrder   int `json:"toOrder"`
}

type reorderResponse struct {
	Message string       `json:"message"`
	Jobs    []models.Job `json:"jobs"`
}

func (c *Client) GetJobs(ctx context.Context, query models.JobQuery) (models.JobsPage, error) {
	var page models.JobsPage
	err := c.sendRequest(ctx, OpGetJobs, http.MethodGet, "/api/jobs", query.Values(), nil, &page)
	return page, err
}

func (c *Client) SearchJobs(ctx context.Context, term string) ([]models.Job, error) {
	var jobs []models.Job
	query := url.Values{}
	if term != "" {
		query.Set("q", term)
	}
	err := c.sendRequest(ctx, OpSearchJobs, http.MethodGet, "/api/jobs/search", query, nil, &jobs)
	return jobs, err
}

func (c *Client) FilterOptions(ctx context.Context) (models.FilterOptions, error) {
	var options models.FilterOptions
	err := c.sendRequest(ctx, OpFilterOptions, http.MethodGet, "/api/jobs/filters/options", nil, nil, &options)
	return options, err
}

func (c *Client) GetJob(ctx context.Context, id string) (models.Job, error) {
	var job models.Job
	err := c.sendRequest(ctx, OpGetJob, http.MethodGet, "/api/jobs/"+escape(id), nil, nil, &job)
	return job, err
}

func (c *Client) ArchivedJobs(ctx context.Context) ([]models.Job, error) {
	var jobs []models.Job
	err := c.sendRequest(ctx, OpArchivedJobs, http.MethodGet, "/api/jobs/archive", nil, nil, &jobs)
	return jobs, err
}

func (c *Client) CreateJob(ctx context.Context, input models.JobInput) (models.Job, error) {
	var job models.Job
	err := c.sendRequest(ctx, OpCreateJob, http.MethodPost, "/api/jobs", nil, input, &job)
	return job, err
}

func (c *Client) UpdateJob(ctx context.Context, id string, patch models.JobPatch) (models.Job, error) {
	var job models.Job
	err := c.sendRequest(ctx, OpUpdateJob, http.MethodPut, "/api/jobs/"+escape(id), nil, patch, &job)
	return job, err
}

func (c *Client) DeleteJob(ctx context.Context, id string) error {
	return c.sendRequest(ctx, OpDeleteJob, http.MethodDelete, "/api/jobs/"+escape(id), nil, nil, nil)
}

func (c *Client) ArchiveJob(ctx context.Context, id string) (models.Job, error) {
	var resp jobResponse
	err := c.sendRequest(ctx, OpArchiveJob, http.MethodPatch, "/api/jobs/"+escape(id)+"/archive", nil, nil, &resp)
	return resp.Job, err
}

func (c *Client) UnarchiveJob(ctx context.Context, id string) (models.Job, error) {
	var resp jobResponse
	err := c.sendRequest(ctx, OpUnarchiveJob, http.MethodPatch, "/api/jobs/"+escape(id)+"/unarchive", nil, nil, &resp)
	return resp.Job, err
}

// ReorderJob moves a job from fromOrder to toOrder and returns every job
// sorted by order.
func (c *Client) ReorderJob(ctx context.Context, id string, fromOrder, toOrder int) ([]models.Job, error) {
	var resp reorderResponse
	err := c.sendRequest(ctx, OpReorderJob, http.MethodPatch, "/api/jobs/"+escape(id)+"/reorder", nil,
		reorderRequest{FromOrder: fromOrder, ToOrder: toOrder}, &resp)
	return resp.Jobs, err
}
