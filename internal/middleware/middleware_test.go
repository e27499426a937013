package middleware

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/2beens/fitnessdash/internal/telemetry/metrics"

	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type testRequestRateLimiter struct {
	limits map[string]int
	err    error
	keys   []string
}

func (l *testRequestRateLimiter) Allow(_ context.Context, key string, limit redis_rate.Limit) (*redis_rate.Result, error) {
	if l.err != nil {
		return nil, l.err
	}
	l.keys = append(l.keys, key)
	l.limits[key]++
	if l.limits[key] > limit.Rate {
		return &redis_rate.Result{Limit: limit, Allowed: 0, RetryAfter: 30 * time.Second}, nil
	}
	return &redis_rate.Result{Limit: limit, Allowed: 1, Remaining: limit.Rate - l.limits[key]}, nil
}

func TestRateLimit(t *testing.T) {
	metricsManager := metrics.NewTestManager()
	limiter := &testRequestRateLimiter{limits: map[string]int{}}
	handler := RateLimit(limiter, metricsManager, "refresh", 2)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusAccepted)
		}),
	)

	call := func(remoteAddr string) *httptest.ResponseRecorder {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/refresh", nil)
		req.RemoteAddr = remoteAddr
		handler.ServeHTTP(rr, req)
		return rr
	}

	assert.Equal(t, http.StatusAccepted, call("83.12.53.65:2145").Code)
	assert.Equal(t, http.StatusAccepted, call("83.12.53.65:2146").Code)
	rr := call("83.12.53.65:2147")
	assert.Equal(t, http.StatusTooEarly, rr.Code)
	assert.Contains(t, rr.Body.String(), "retry after 30.000000 seconds")
	// another client has its own budget
	assert.Equal(t, http.StatusAccepted, call("91.1.2.3:80").Code)

	assert.Equal(t, "refresh:83.12.53.65", limiter.keys[0])
	assert.Equal(t, float64(1), testutil.ToFloat64(metricsManager.CounterRateLimitedRequests))
}

func TestRateLimit_LimiterErrorLetsThrough(t *testing.T) {
	limiter := &testRequestRateLimiter{err: errors.New("redis down")}
	rr := httptest.NewRecorder()
	RateLimit(limiter, nil, "refresh", 1)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}),
	).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/refresh", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	RateLimit(nil, nil, "refresh", 1)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}),
	).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/refresh", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRequestMetrics(t *testing.T) {
	metricsManager := metrics.NewTestManager()
	r := mux.NewRouter()
	r.HandleFunc("/api/movements/{name}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Use(RequestMetrics(metricsManager))

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/movements/Squat", nil))
	require.Equal(t, http.StatusNotFound, rr.Code)

	assert.Equal(t, float64(1), testutil.ToFloat64(metricsManager.CounterRequests.WithLabelValues(http.MethodGet, "404")))
	assert.Equal(t, 1, testutil.CollectAndCount(metricsManager.HistogramRequestDuration))
	// the observed series is labeled with the route template, so this adds none
	_, err := metricsManager.HistogramRequestDuration.GetMetricWithLabelValues("/api/movements/{name}", http.MethodGet, "404")
	require.NoError(t, err)
	assert.Equal(t, 1, testutil.CollectAndCount(metricsManager.HistogramRequestDuration))
}

func TestDrainAndCloseRequest(t *testing.T) {
	body := &trackingBody{Reader: strings.NewReader("unread payload")}
	req := httptest.NewRequest(http.MethodPost, "/api/refresh", nil)
	req.Body = body

	DrainAndCloseRequest()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})).
		ServeHTTP(httptest.NewRecorder(), req)

	assert.True(t, body.closed)
	rest, _ := io.ReadAll(body.Reader)
	assert.Empty(t, rest)
}

type trackingBody struct {
	io.Reader
	closed bool
}

func (b *trackingBody) Close() error {
	b.closed = true
	return nil
}
