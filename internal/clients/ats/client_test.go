package ats

import (
	"bytes"
	"context"
	"encoding/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/talentflow/ats/internal/config"
	"github.com/talentflow/ats/internal/domain/models"
	"github.com/talentflow/ats/internal/session"
	"golang.org/x/time/rate"
	"io"
	"math/rand"
	"net/http"
	"testing"
)

type mockHTTPClient struct {
	mock.Mock
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	args := m.Called(req)
	resp, _ := args.Get(0).(*http.Response)
	return resp, args.Error(1)
}

func jsonResponse(t *testing.T, status int, body any) *http.Response {
	data, err := json.Marshal(body)
	require.NoError(t, err)
	return &http.Response{StatusCode: status, Body: io.NopCloser(bytes.NewReader(data))}
}

func newTestClient(httpClient HTTPClient) *Client {
	client := NewClient("http://ats.local/")
	client.SetHTTPClient(httpClient)
	client.SetFailer(NeverFail())
	return client
}

func Test_ATSClient_GetJobs_SendsQueryAndSession(t *testing.T) {
	mockClient := &mockHTTPClient{}
	mockClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		return req.Method == http.MethodGet &&
			req.URL.Path == "/api/jobs" &&
			req.URL.Query().Get("search") == "go" &&
			req.URL.Query().Get("sort") == "title" &&
			req.Header.Get(session.HeaderRole) == "hr"
	})).Return(jsonResponse(t, http.StatusOK, models.JobsPage{
		Jobs:     []models.Job{{ID: "j1", Title: "Go Developer"}},
		PageInfo: models.PageInfo{TotalCount: 1, TotalPages: 1, CurrentPage: 1},
	}), nil)

	client := newTestClient(mockClient).WithSession(session.Session{UserID: "u1", Role: session.RoleHR})
	page, err := client.GetJobs(context.Background(), models.JobQuery{Search: "go", Sort: models.JobSortTitle, Page: 1, PageSize: 10})

	require.NoError(t, err)
	require.Len(t, page.Jobs, 1)
	assert.Equal(t, "Go Developer", page.Jobs[0].Title)
	mockClient.AssertExpectations(t)
}

func Test_ATSClient_ErrorStatus_CarriesServerMessage(t *testing.T) {
	mockClient := &mockHTTPClient{}
	mockClient.On("Do", mock.Anything).Return(jsonResponse(t, http.StatusBadRequest,
		map[string]string{"error": "Slug must be unique"}), nil)

	_, err := newTestClient(mockClient).CreateJob(context.Background(), models.JobInput{Title: "A", Slug: "a"})

	var atsErr *Error
	require.ErrorAs(t, err, &atsErr)
	assert.Equal(t, OpCreateJob, atsErr.Op)
	assert.Equal(t, http.StatusBadRequest, atsErr.Status)
	assert.Equal(t, "Slug must be unique", atsErr.Message)
	assert.False(t, atsErr.Simulated)
}

func Test_ATSClient_ErrorStatus_WithoutBodyUsesOperationName(t *testing.T) {
	mockClient := &mockHTTPClient{}
	mockClient.On("Do", mock.Anything).Return(&http.Response{
		StatusCode: http.StatusInternalServerError,
		Body:       io.NopCloser(bytes.NewReader(nil)),
	}, nil)

	err := newTestClient(mockClient).DeleteJob(context.Background(), "j1")

	assert.EqualError(t, err, "Failed to delete job")
	assert.Equal(t, http.StatusInternalServerError, StatusOf(err))
}

func Test_ATSClient_TransportError_IsWrapped(t *testing.T) {
	mockClient := &mockHTTPClient{}
	mockClient.On("Do", mock.Anything).Return(nil, io.ErrUnexpectedEOF)

	_, err := newTestClient(mockClient).GetJob(context.Background(), "j1")

	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.Contains(t, err.Error(), "error sending request")
	assert.False(t, IsSimulated(err))
}

func Test_ATSClient_SimulatedFailure_SkipsNetwork(t *testing.T) {
	mockClient := &mockHTTPClient{}
	client := newTestClient(mockClient)
	client.SetFailer(NewFailer(map[string]float64{string(OpReorderJob): 1}, rand.New(rand.NewSource(1))))

	_, err := client.ReorderJob(context.Background(), "j1", 1, 2)

	require.Error(t, err)
	assert.True(t, IsSimulated(err))
	assert.Equal(t, "Failed to reorder job - Server error (simulated)", err.Error())
	mockClient.AssertNotCalled(t, "Do", mock.Anything)
}

func Test_ATSClient_LoadDraft_NotFoundIsNotAnError(t *testing.T) {
	mockClient := &mockHTTPClient{}
	mockClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		return req.URL.Path == "/api/assessments/a1/draft"
	})).Return(jsonResponse(t, http.StatusNotFound, map[string]string{"error": "Draft not found"}), nil).Once()
	mockClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		return req.URL.Path == "/api/assessments/a1/responses/c1/draft"
	})).Return(jsonResponse(t, http.StatusOK, map[string]string{"q1": "Yes"}), nil).Once()

	client := newTestClient(mockClient)

	var draft map[string]string
	found, err := client.LoadAssessmentDraft(context.Background(), "a1", &draft)
	require.NoError(t, err)
	assert.False(t, found)

	found, err = client.LoadResponseDraft(context.Background(), "a1", "c1", &draft)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "Yes", draft["q1"])
}

func Test_NewClientFromConfig(t *testing.T) {
	disabled := NewClientFromConfig("http://ats/", config.SimulationConfig{
		FailuresEnabled: false,
		FailureRates:    map[string]float64{"delete_job": 1},
	})
	assert.Zero(t, disabled.failer.Rate(OpDeleteJob))
	assert.Nil(t, disabled.rateLimiter)
	assert.Equal(t, "http://ats", disabled.baseURL)

	enabled := NewClientFromConfig("http://ats", config.SimulationConfig{
		FailuresEnabled:      true,
		MaxRequestsPerSecond: 5,
		FailureRates:         map[string]float64{"delete_job": 1},
	})
	assert.Equal(t, 1.0, enabled.failer.Rate(OpDeleteJob))
	assert.Equal(t, 0.08, enabled.failer.Rate(OpCreateJob))
	require.NotNil(t, enabled.rateLimiter)
	assert.Equal(t, rate.Limit(5), enabled.rateLimiter.Limit())
}
