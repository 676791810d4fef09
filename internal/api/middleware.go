package api

import (
	"context"
	"github.com/gorilla/mux"
	"github.com/talentflow/ats/internal/metrics"
	"github.com/talentflow/ats/internal/session"
	"math/rand"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// latency delays every request by a random duration in [min, max]. The delay
// ends early when the request context is done.
type latency struct {
	min, max time.Duration
	mu       sync.Mutex
	rnd      *rand.Rand
}

func newLatency(min, max time.Duration, rnd *rand.Rand) *latency {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if max < min {
		max = min
	}
	return &latency{min: min, max: max, rnd: rnd}
}

func (l *latency) next() time.Duration {
	if l.max <= 0 {
		return 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.min + time.Duration(l.rnd.Int63n(int64(l.max-l.min)+1))
}

func (l *latency) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := sleep(r.Context(), l.next()); err != nil {
			return
		}
		next.ServeHTTP(w, r)
	})
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := session.FromHeader(r.Header)
		next.ServeHTTP(w, r.WithContext(session.WithContext(r.Context(), s)))
	})
}

// requireStaff rejects requests whose session is not hr or recruiter.
func requireStaff(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, _ := session.FromContext(r.Context())
		if !s.IsStaff() {
			writeError(w, http.StatusForbidden, "Access denied")
			return
		}
		next(w, r)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := "unmatched"
		if current := mux.CurrentRoute(r); current != nil {
			if template, err := current.GetPathTemplate(); err == nil {
				route = template
			}
		}

		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)

		metrics.RequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
		metrics.RequestsCounter.WithLabelValues(route, r.Method, strconv.Itoa(recorder.status)).Inc()
	})
}
