package api

import (
	"bytes"
	"context"
	"encoding/json"
	"github.com/asaskevich/EventBus"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
	"github.com/talentflow/ats/internal/config"
	"github.com/talentflow/ats/internal/domain/models"
	"github.com/talentflow/ats/internal/repositories"
	"github.com/talentflow/ats/internal/session"
	"gorm.io/datatypes"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"
)

var (
	hrSession        = session.Session{UserID: "u1", Name: "Hana", Role: session.RoleHR}
	candidateSession = session.Session{UserID: "u2", Name: "Cody", Role: session.RoleCandidate}
)

type testServer struct {
	t          *testing.T
	router     *mux.Router
	bus        EventBus.Bus
	jobs       *repositories.Jobs
	candidates *repositories.Candidates
	responses  *repositories.Responses
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	dbCtx, err := repositories.NewDbContext(filepath.Join(t.TempDir(), "testdatabase.db"))
	require.NoError(t, err)
	require.NoError(t, dbCtx.Migrate())
	t.Cleanup(func() { _ = dbCtx.Close() })

	jobs := repositories.NewJobsRepository(dbCtx.DB)
	candidates := repositories.NewCandidatesRepository(dbCtx.DB)
	responses := repositories.NewResponsesRepository(dbCtx.DB)

	bus := EventBus.New()
	server, err := NewServer(Repositories{
		Jobs:        jobs,
		Candidates:  candidates,
		Assessments: repositories.NewAssessmentsRepository(dbCtx.DB),
		Responses:   responses,
		Drafts:      repositories.NewDraftsRepository(dbCtx.DB),
		Queries:     repositories.NewCachedQueries(jobs, candidates, time.Minute),
	}, bus)
	require.NoError(t, err)

	return &testServer{
		t:          t,
		router:     server.Router(config.ServerConfig{}, nil),
		bus:        bus,
		jobs:       jobs,
		candidates: candidates,
		responses:  responses,
	}
}

func (ts *testServer) do(s session.Session, method, path string, body any) *httptest.ResponseRecorder {
	ts.t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		require.NoError(ts.t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	s.Apply(req.Header)
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func (ts *testServer) createJob(title string) models.Job {
	ts.t.Helper()
	rec := ts.do(hrSession, http.MethodPost, "/api/jobs", models.JobInput{Title: title, Slug: models.Slugify(title)})
	require.Equal(ts.t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[models.Job](ts.t, rec)
}

func (ts *testServer) addCandidate(jobID string, stage models.Stage) models.Candidate {
	ts.t.Helper()
	now := time.Now().UTC()
	c := models.Candidate{
		ID:          uuid.NewString(),
		FirstName:   "Ada",
		LastName:    "Lovelace",
		Email:       "ada@example.com",
		Stage:       stage,
		JobID:       jobID,
		AppliedDate: now,
		Tags:        datatypes.JSONSlice[string]{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	require.NoError(ts.t, ts.candidates.Add(context.Background(), c))
	return c
}
