package ats

import (
	"context"
	"encoding/json"
	"github.com/pkg/errors"
	"github.com/talentflow/ats/internal/domain/models"
	"net/http"
)

type assessmentResponsesResponse struct {
	Responses []models.ResponseWithCandidate `json:"responses"`
}

func assessmentPath(id string) string {
	return "/api/assessments/" + escape(id)
}

func (c *Client) GetAssessments(ctx context.Context, query models.AssessmentQuery) (models.AssessmentsPage, error) {
	var page models.AssessmentsPage
	err := c.sendRequest(ctx, OpGetAssessments, http.MethodGet, "/api/assessments", query.Values(), nil, &page)
	return page, err
}

func (c *Client) GetAssessment(ctx context.Context, id string) (models.Assessment, error) {
	var assessment models.Assessment
	err := c.sendRequest(ctx, OpGetAssessment, http.MethodGet, assessmentPath(id), nil, nil, &assessment)
	return assessment, err
}

func (c *Client) AssessmentByJob(ctx context.Context, jobID string) (models.Assessment, error) {
	var assessment models.Assessment
	err := c.sendRequest(ctx, OpAssessmentByJob, http.MethodGet, "/api/assessments/job/"+escape(jobID), nil, nil, &assessment)
	return assessment, err
}

func (c *Client) CreateAssessment(ctx context.Context, input models.AssessmentInput) (models.Assessment, error) {
	var assessment models.Assessment
	err := c.sendRequest(ctx, OpCreateAssessment, http.MethodPost, "/api/assessments", nil, input, &assessment)
	return assessment, err
}

func (c *Client) UpdateAssessment(ctx context.Context, id string, patch models.AssessmentPatch) (models.Assessment, error) {
	var assessment models.Assessment
	err := c.sendRequest(ctx, OpUpdateAssessment, http.MethodPut, assessmentPath(id), nil, patch, &assessment)
	return assessment, err
}

func (c *Client) DeleteAssessment(ctx context.Context, id string) error {
	return c.sendRequest(ctx, OpDeleteAssessment, http.MethodDelete, assessmentPath(id), nil, nil, nil)
}

func (c *Client) SubmitResponse(ctx context.Context, assessmentID string, submission models.ResponseSubmission) (models.CandidateResponse, error) {
	var response models.CandidateResponse
	err := c.sendRequest(ctx, OpSubmitResponse, http.MethodPost, assessmentPath(assessmentID)+"/responses", nil, submission, &response)
	return response, err
}

func (c *Client) AssessmentResponses(ctx context.Context, assessmentID string) ([]models.ResponseWithCandidate, error) {
	var resp assessmentResponsesResponse
	err := c.sendRequest(ctx, OpAssessmentResponses, http.MethodGet, assessmentPath(assessmentID)+"/responses", nil, nil, &resp)
	return resp.Responses, err
}

func (c *Client) GetResponse(ctx context.Context, assessmentID, candidateID string) (models.ResponseWithCandidate, error) {
	var response models.ResponseWithCandidate
	err := c.sendRequest(ctx, OpGetResponse, http.MethodGet,
		assessmentPath(assessmentID)+"/responses/"+escape(candidateID), nil, nil, &response)
	return response, err
}

func (c *Client) SaveAssessmentDraft(ctx context.Context, assessmentID string, draft any) error {
	return c.saveDraft(ctx, assessmentPath(assessmentID)+"/draft", draft)
}

// LoadAssessmentDraft decodes the draft into out. found is false when no
// draft exists.
func (c *Client) LoadAssessmentDraft(ctx context.Context, assessmentID string, out any) (found bool, err error) {
	return c.loadDraft(ctx, assessmentPath(assessmentID)+"/draft", out)
}

func (c *Client) RemoveAssessmentDraft(ctx context.Context, assessmentID string) error {
	return c.sendRequest(ctx, OpRemoveDraft, http.MethodDelete, assessmentPath(assessmentID)+"/draft", nil, nil, nil)
}

func responseDraftPath(assessmentID, candidateID string) string {
	return assessmentPath(assessmentID) + "/responses/" + escape(candidateID) + "/draft"
}

func (c *Client) SaveResponseDraft(ctx context.Context, assessmentID, candidateID string, draft any) error {
	return c.saveDraft(ctx, responseDraftPath(assessmentID, candidateID), draft)
}

func (c *Client) LoadResponseDraft(ctx context.Context, assessmentID, candidateID string, out any) (found bool, err error) {
	return c.loadDraft(ctx, responseDraftPath(assessmentID, candidateID), out)
}

func (c *Client) RemoveResponseDraft(ctx context.Context, assessmentID, candidateID string) error {
	return c.sendRequest(ctx, OpRemoveDraft, http.MethodDelete, responseDraftPath(assessmentID, candidateID), nil, nil, nil)
}

func (c *Client) saveDraft(ctx context.Context, path string, draft any) error {
	var resp messageResponse
	return c.sendRequest(ctx, OpSaveDraft, http.MethodPut, path, nil, draft, &resp)
}

func (c *Client) loadDraft(ctx context.Context, path string, out any) (bool, error) {
	var raw json.RawMessage
	err := c.sendRequest(ctx, OpLoadDraft, http.MethodGet, path, nil, nil, &raw)
	if StatusOf(err) == http.StatusNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, errors.Wrap(err, "error decoding draft")
	}
	return true, nil
}
