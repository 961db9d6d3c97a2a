package http

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/billrizecondor/dual-fuel-engine-digital-twin/internal/errs"
	"github.com/billrizecondor/dual-fuel-engine-digital-twin/internal/predict"
	"github.com/billrizecondor/dual-fuel-engine-digital-twin/services/api/config"
	"github.com/billrizecondor/dual-fuel-engine-digital-twin/services/api/db"
)

// DatasetLister lists persisted ingestion runs.
type DatasetLister interface {
	ListDatasets(ctx context.Context, limit, offset int) ([]db.DatasetInfo, error)
}

// PredictionCache stores prediction results between requests.
type PredictionCache interface {
	Get(ctx context.Context, q predict.Query) (*predict.Result, bool)
	Set(ctx context.Context, q predict.Query, res *predict.Result) error
}

// Server bundles router and dependencies for the twin API.
type Server struct {
	cfg    config.Config
	twin   *predict.Twin
	store  DatasetLister
	cache  PredictionCache
	log    zerolog.Logger
	engine *gin.Engine
}

// New constructs a server with routes and middleware. store and cache may be nil.
func New(cfg config.Config, twin *predict.Twin, store DatasetLister, cache PredictionCache, logger zerolog.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(gin.Logger())
	engine.Use(corsMiddleware())

	if cfg.BearerToken != "" {
		engine.Use(bearerAuthMiddleware(cfg.BearerToken))
	}

	server := &Server{cfg: cfg, twin: twin, store: store, cache: cache, log: logger, engine: engine}
	server.registerRoutes()
	return server
}

// Engine exposes the underlying gin engine (for tests).
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Run starts the HTTP server and blocks until shutdown.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.cfg.ListenAddr(),
		Handler: s.engine,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) registerRoutes() {
	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":     "ok",
			"dataset_id": s.twin.Dataset.ID(),
			"records":    s.twin.Dataset.Len(),
		})
	})

	s.registerV1Routes()
}

func bearerAuthMiddleware(expected string) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
		if token != expected {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		c.Next()
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func apiVersionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-API-Version", "v1")
		c.Next()
	}
}

// respondError maps twin error kinds onto HTTP statuses.
func (s *Server) respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	body := gin.H{"error": err.Error()}

	var e *errs.Error
	if errors.As(err, &e) {
		body["kind"] = e.Kind
		if e.Field != "" {
			body["field"] = e.Field
		}
		switch e.Kind {
		case errs.KindInvalidRange:
			status = http.StatusBadRequest
		case errs.KindEmptyDataset:
			status = http.StatusNotFound
		case errs.KindDivisionByZero, errs.KindInsufficientData, errs.KindData:
			status = http.StatusUnprocessableEntity
		}
	}
	if status == http.StatusInternalServerError {
		s.log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
	}
	c.JSON(status, body)
}
