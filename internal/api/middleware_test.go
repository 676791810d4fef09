package api

import (
	"context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talentflow/ats/internal/session"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func Test_Latency_StaysWithinWindow(t *testing.T) {
	l := newLatency(200*time.Millisecond, 1200*time.Millisecond, rand.New(rand.NewSource(1)))

	for i := 0; i < 1000; i++ {
		d := l.next()
		assert.GreaterOrEqual(t, d, 200*time.Millisecond)
		assert.LessOrEqual(t, d, 1200*time.Millisecond)
	}
}

func Test_Latency_DisabledWhenMaxIsZero(t *testing.T) {
	l := newLatency(0, 0, nil)
	assert.Zero(t, l.next())
}

func Test_Latency_StopsOnCancelledRequest(t *testing.T) {
	l := newLatency(time.Hour, time.Hour, nil)
	called := false
	handler := l.Middleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true }))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodGet, "/api/jobs", nil).WithContext(ctx)

	done := make(chan struct{})
	go func() {
		handler.ServeHTTP(httptest.NewRecorder(), req)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("latency middleware ignored cancellation")
	}
	assert.False(t, called)
}

func Test_SessionMiddleware_PutsSessionInContext(t *testing.T) {
	var got session.Session
	handler := sessionMiddleware(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got, _ = session.FromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	hrSession.Apply(req.Header)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, hrSession, got)
}

func Test_Router_HealthAndMetrics(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(session.Session{}, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	ts.do(session.Session{}, http.MethodGet, "/api/jobs", nil)
	rec = ts.do(session.Session{}, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `ats_http_requests_total{method="GET",route="/api/jobs",status="200"}`)
}
