package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jkberiksson/bsv-edutask/pkg/metrics"
	"github.com/jkberiksson/bsv-edutask/pkg/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type fakePinger struct{ err error }

func (f fakePinger) Ping(ctx context.Context, rp *readpref.ReadPref) error { return f.err }

func newRouter(p Pinger, readyMW ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	reg := prometheus.NewRegistry()
	metrics.RegisterCollectors(reg)
	r := gin.New()
	RegisterOpsRoutes(r, p, []string{"task", "todo", "user", "video"}, reg, readyMW...)
	return r
}

func TestHealth(t *testing.T) {
	r := newRouter(fakePinger{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "healthy", w.Body.String())
}

func TestReady(t *testing.T) {
	r := newRouter(fakePinger{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Status      string          `json:"status"`
		Deps        map[string]bool `json:"deps"`
		Collections []string        `json:"collections"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "ready", body.Status)
	require.True(t, body.Deps["mongo"])
	require.Contains(t, body.Collections, "user")
}

func TestReady_MongoDown(t *testing.T) {
	r := newRouter(fakePinger{err: errors.New("server selection timeout")})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	require.Contains(t, w.Body.String(), "not_ready")
}

func TestMetricsEndpoint(t *testing.T) {
	r := newRouter(fakePinger{})
	metrics.UserLookups.WithLabelValues("one").Inc()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "edutask_user_lookups_total")
}

type countingPinger struct{ calls int }

func (c *countingPinger) Ping(ctx context.Context, rp *readpref.ReadPref) error {
	c.calls++
	return nil
}

func TestReady_RateLimited(t *testing.T) {
	p := &countingPinger{}
	r := newRouter(p, middleware.RateLimitMiddleware("ready", 1, 2))

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
		require.Equal(t, http.StatusOK, w.Code)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	require.Equal(t, 2, p.calls, "rejected requests must not reach MongoDB")

	// /health is not limited
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)
}
