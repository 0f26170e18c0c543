package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jkberiksson/bsv-edutask/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func serve(r *gin.Engine, path, remote string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.RemoteAddr = remote
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimitMiddleware_AllowsUnderLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimitMiddleware("under", 10, 2))
	r.GET("/ok", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	require.Equal(t, http.StatusOK, serve(r, "/ok", "192.0.2.1:1234").Code)
	require.Equal(t, http.StatusOK, serve(r, "/ok", "192.0.2.1:1234").Code)
	require.Equal(t, 2.0, testutil.ToFloat64(metrics.RateLimitAllowed.WithLabelValues("under")))
}

func TestRateLimitMiddleware_BlocksWhenExceeded(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimitMiddleware("exceeded", 5, 1))
	r.GET("/limited", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	require.Equal(t, http.StatusOK, serve(r, "/limited", "192.0.2.2:1234").Code)

	w := serve(r, "/limited", "192.0.2.2:1234")
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	require.Equal(t, "1", w.Header().Get("Retry-After"))
	require.Equal(t, 1.0, testutil.ToFloat64(metrics.RateLimitRejected.WithLabelValues("exceeded")))

	// another client has its own bucket
	require.Equal(t, http.StatusOK, serve(r, "/limited", "192.0.2.3:1234").Code)

	// at 5 rps a token is back after 200ms
	time.Sleep(300 * time.Millisecond)
	require.Equal(t, http.StatusOK, serve(r, "/limited", "192.0.2.2:1234").Code)
}
