// Package web serves the survey dashboard as an HTML page and a JSON API.
package web

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/rewardscope/rewardscope/internal/model"
	"github.com/rewardscope/rewardscope/internal/pipeline"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Config controls the web server runtime behavior.
type Config struct {
	Addr string
}

// Status is served at /healthz.
type Status struct {
	Status       string    `json:"status"`
	StartedAt    time.Time `json:"started_at"`
	DataPath     string    `json:"data_path"`
	Rows         int       `json:"rows"`
	Faculties    int       `json:"faculties"`
	RequestCount int64     `json:"request_count"`
}

// Service holds the immutable dataset and answers dashboard requests.
// Every request builds a fresh report; the dataset is the only shared state.
type Service struct {
	cfg       Config
	ds        model.Dataset
	log       zerolog.Logger
	router    *gin.Engine
	startedAt time.Time
	requests  atomic.Int64
}

// New returns a web service over ds with the provided config.
func New(cfg Config, ds model.Dataset, log zerolog.Logger) *Service {
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8501"
	}

	s := &Service{
		cfg:       cfg,
		ds:        ds,
		log:       log,
		startedAt: time.Now(),
	}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler serving all dashboard routes.
func (s *Service) Handler() http.Handler {
	return s.router
}

func (s *Service) routes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(s.log), s.countRequests)

	router.GET("/", s.handlePage)
	router.GET("/healthz", s.handleHealth)

	api := router.Group("/api")
	api.GET("/report", s.handleReport)
	api.GET("/faculties", s.handleFaculties)
	return router
}

// Run serves HTTP until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	s.log.Info().
		Str("addr", s.cfg.Addr).
		Int("rows", s.ds.Len()).
		Msg("dashboard listening")

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.log.Info().Msg("shutting down")
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return fmt.Errorf("web http server: %w", err)
	}
}

// requestLogger logs one line per request with method, path, status and latency.
func requestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		ev := log.Info()
		if status >= http.StatusInternalServerError {
			ev = log.Error()
		}
		ev.Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}

func (s *Service) countRequests(c *gin.Context) {
	s.requests.Add(1)
	c.Next()
}

// selection reads the faculty filter from the query string. Without a submitted
// form every faculty is selected; a submitted form with nothing checked selects none.
func (s *Service) selection(c *gin.Context) []string {
	chosen := c.QueryArray("fakultas")
	if len(chosen) == 0 && c.Query("filter") == "" {
		return pipeline.Faculties(s.ds.Respondents)
	}
	return chosen
}

func (s *Service) report(c *gin.Context) model.Report {
	return pipeline.BuildReport(s.ds, s.selection(c))
}

func (s *Service) handlePage(c *gin.Context) {
	var buf bytes.Buffer
	if err := RenderPage(s.report(c), &buf); err != nil {
		s.log.Error().Err(err).Msg("render page")
		c.String(http.StatusInternalServerError, "render failed")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

func (s *Service) handleReport(c *gin.Context) {
	c.JSON(http.StatusOK, s.report(c))
}

func (s *Service) handleFaculties(c *gin.Context) {
	c.JSON(http.StatusOK, pipeline.CountFaculties(s.ds.Respondents))
}

func (s *Service) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, Status{
		Status:       "ok",
		StartedAt:    s.startedAt,
		DataPath:     s.ds.Path,
		Rows:         s.ds.Len(),
		Faculties:    len(pipeline.Faculties(s.ds.Respondents)),
		RequestCount: s.requests.Load(),
	})
}
