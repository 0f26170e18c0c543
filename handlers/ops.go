package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Pinger is satisfied by *mongo.Client.
type Pinger interface {
	Ping(ctx context.Context, rp *readpref.ReadPref) error
}

var startTime = time.Now()

// RegisterOpsRoutes registers the operational endpoints: /health, /ready and /metrics.
// collections lists the provisioned collections reported by /ready. readyMW runs
// in front of /ready, which pings MongoDB on every call.
func RegisterOpsRoutes(r *gin.Engine, db Pinger, collections []string, gatherer prometheus.Gatherer, readyMW ...gin.HandlerFunc) {
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	ready := func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		deps := map[string]bool{"mongo": db != nil && db.Ping(ctx, readpref.Primary()) == nil}
		body := gin.H{"deps": deps, "collections": collections, "uptime": time.Since(startTime).String()}
		if !deps["mongo"] {
			body["status"] = "not_ready"
			c.JSON(http.StatusServiceUnavailable, body)
			return
		}
		body["status"] = "ready"
		c.JSON(http.StatusOK, body)
	}
	r.GET("/ready", append(readyMW, ready)...)

	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
}
