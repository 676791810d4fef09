package api

import (
	"context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talentflow/ats/internal/domain/events"
	"github.com/talentflow/ats/internal/domain/models"
	"github.com/talentflow/ats/internal/session"
	"net/http"
	"testing"
)

func Test_Candidates_UpdateStage(t *testing.T) {
	ts := newTestServer(t)
	c := ts.addCandidate("j1", models.StageApplied)

	var published []events.CandidateStageChanged
	require.NoError(t, ts.bus.Subscribe(events.CandidateStageChangedTopic, func(e events.CandidateStageChanged) {
		published = append(published, e)
	}))

	rec := ts.do(hrSession, http.MethodPatch, "/api/candidates/"+c.ID+"/stage", stageRequest{Stage: "offer"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, models.StageOffer, decode[models.Candidate](t, rec).Stage)

	require.Len(t, published, 1)
	assert.Equal(t, models.StageApplied, published[0].From)
	assert.Equal(t, models.StageOffer, published[0].To)

	stored, err := ts.candidates.GetByID(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StageOffer, stored.Stage)
}

func Test_Candidates_UpdateStage_RejectsUnknownStage(t *testing.T) {
	ts := newTestServer(t)
	c := ts.addCandidate("j1", models.StageApplied)

	rec := ts.do(hrSession, http.MethodPatch, "/api/candidates/"+c.ID+"/stage", stageRequest{Stage: "promoted"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t,
		"Invalid stage: promoted. Must be one of: applied, screening, interview, technical, offer, hired, rejected",
		decode[errorResponse](t, rec).Error)

	stored, err := ts.candidates.GetByID(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StageApplied, stored.Stage)

	rec = ts.do(hrSession, http.MethodPatch, "/api/candidates/missing/stage", stageRequest{Stage: "hired"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, candidateNotFound, decode[errorResponse](t, rec).Error)

	rec = ts.do(candidateSession, http.MethodPatch, "/api/candidates/"+c.ID+"/stage", stageRequest{Stage: "hired"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func Test_Candidates_StatsFollowStageChanges(t *testing.T) {
	ts := newTestServer(t)
	c := ts.addCandidate("j1", models.StageApplied)
	ts.addCandidate("j2", models.StageHired)

	rec := ts.do(session.Session{}, http.MethodGet, "/api/candidates/stats?jobId=j1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	stats := decode[models.CandidateStats](t, rec)
	assert.Equal(t, 1, stats.Total)
	assert.Equal(t, 1, stats.ByStage[models.StageApplied])
	assert.Len(t, stats.ByStage, len(models.Stages))

	ts.do(hrSession, http.MethodPatch, "/api/candidates/"+c.ID+"/stage", stageRequest{Stage: "interview"})

	rec = ts.do(session.Session{}, http.MethodGet, "/api/candidates/stats?jobId=j1", nil)
	stats = decode[models.CandidateStats](t, rec)
	assert.Equal(t, 0, stats.ByStage[models.StageApplied])
	assert.Equal(t, 1, stats.ByStage[models.StageInterview])
}

func Test_Candidates_ListUpdateDelete(t *testing.T) {
	ts := newTestServer(t)
	c := ts.addCandidate("j1", models.StageApplied)
	ts.addCandidate("j1", models.StageOffer)
	ts.addCandidate("j2", models.StageApplied)

	rec := ts.do(session.Session{}, http.MethodGet, "/api/candidates?jobId=j1&stage=applied", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	page := decode[models.CandidatesPage](t, rec)
	require.Len(t, page.Candidates, 1)
	assert.Equal(t, c.ID, page.Candidates[0].ID)

	rec = ts.do(hrSession, http.MethodPut, "/api/candidates/"+c.ID, map[string]any{"rating": 7})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(hrSession, http.MethodPut, "/api/candidates/"+c.ID, map[string]any{"rating": 4, "notes": "solid"})
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decode[models.Candidate](t, rec)
	assert.Equal(t, 4, *updated.Rating)
	assert.Equal(t, "solid", updated.Notes)

	rec = ts.do(hrSession, http.MethodDelete, "/api/candidates/"+c.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(hrSession, http.MethodGet, "/api/candidates/"+c.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
