package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jkberiksson/bsv-edutask/handlers"
	"github.com/jkberiksson/bsv-edutask/internal/config"
	"github.com/jkberiksson/bsv-edutask/internal/dao"
	"github.com/jkberiksson/bsv-edutask/internal/database"
	"github.com/jkberiksson/bsv-edutask/internal/validators"
	"github.com/jkberiksson/bsv-edutask/pkg/logger"
	"github.com/jkberiksson/bsv-edutask/pkg/metrics"
	"github.com/jkberiksson/bsv-edutask/pkg/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"go.mongodb.org/mongo-driver/mongo"
)

func main() {
	// LOG_LEVEL is read again from config below; set it early so config errors are visible
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Init(cfg.Log.Level)
	logger.Debugf("startup: LOG_LEVEL=%s", logger.LevelString())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := database.ConnectWithRetry(ctx, database.ConnectMongo, cfg.MongoDB.URI, cfg.MongoDB.Timeout, cfg.MongoDB.ConnectAttempts, time.Second)
	if err != nil {
		logger.Fatalf("%v", err)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	if err := provision(ctx, client.Database(cfg.MongoDB.Database)); err != nil {
		logger.Fatalf("provisioning failed: %v", err)
	}

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)

	if cfg.Server.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	var readyMW []gin.HandlerFunc
	if cfg.RateLimit.Enabled {
		readyMW = append(readyMW, middleware.RateLimitMiddleware("ready", cfg.RateLimit.RPS, cfg.RateLimit.Burst))
	}
	handlers.RegisterOpsRoutes(r, client, validators.Collections(), prometheus.DefaultGatherer, readyMW...)

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		logger.Infof("ops server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf("server failed: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Infof("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("shutdown: %v", err)
	}
}

// provision attaches validators and unique indexes to every edutask collection.
func provision(ctx context.Context, db *mongo.Database) error {
	collections := validators.Collections()
	for _, name := range collections {
		if _, err := dao.New(ctx, db, name); err != nil {
			return err
		}
	}
	logger.Infof("provisioned collections %v in %s", collections, db.Name())
	return nil
}
