package ats

import (
	"context"
	"github.com/talentflow/ats/internal/domain/models"
	"net/http"
	"net/url"
)

type stageRequest struct {
	Stage models.Stage `json:"stage"`
}

type candidateResponsesResponse struct {
	Responses []models.ResponseWithAssessment `json:"responses"`
}

func (c *Client) GetCandidates(ctx context.Context, query models.CandidateQuery) (models.CandidatesPage, error) {
	var page models.CandidatesPage
	err := c.sendRequest(ctx, OpGetCandidates, http.MethodGet, "/api/candidates", query.Values(), nil, &page)
	return page, err
}

func (c *Client) GetCandidate(ctx context.Context, id string) (models.Candidate, error) {
	var candidate models.Candidate
	err := c.sendRequest(ctx, OpGetCandidate, http.MethodGet, "/api/candidates/"+escape(id), nil, nil, &candidate)
	return candidate, err
}

func (c *Client) UpdateCandidate(ctx context.Context, id string, patch models.CandidatePatch) (models.Candidate, error) {
	var candidate models.Candidate
	err := c.sendRequest(ctx, OpUpdateCandidate, http.MethodPut, "/api/candidates/"+escape(id), nil, patch, &candidate)
	return candidate, err
}

func (c *Client) DeleteCandidate(ctx context.Context, id string) error {
	return c.sendRequest(ctx, OpDeleteCandidate, http.MethodDelete, "/api/candidates/"+escape(id), nil, nil, nil)
}

func (c *Client) UpdateCandidateStage(ctx context.Context, id string, stage models.Stage) (models.Candidate, error) {
	var candidate models.Candidate
	err := c.sendRequest(ctx, OpUpdateCandidateStage, http.MethodPatch, "/api/candidates/"+escape(id)+"/stage", nil,
		stageRequest{Stage: stage}, &candidate)
	return candidate, err
}

// CandidateStats aggregates all candidates when jobID is empty.
func (c *Client) CandidateStats(ctx context.Context, jobID string) (models.CandidateStats, error) {
	var stats models.CandidateStats
	query := url.Values{}
	if jobID != "" {
		query.Set("jobId", jobID)
	}
	err := c.sendRequest(ctx, OpCandidateStats, http.MethodGet, "/api/candidates/stats", query, nil, &stats)
	return stats, err
}

func (c *Client) CandidateResponses(ctx context.Context, candidateID string) ([]models.ResponseWithAssessment, error) {
	var resp candidateResponsesResponse
	err := c.sendRequest(ctx, OpCandidateResponses, http.MethodGet, "/api/candidates/"+escape(candidateID)+"/responses", nil, nil, &resp)
	return resp.Responses, err
}
