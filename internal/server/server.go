package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ppiankov/clipverity/internal/factcheck"
	"github.com/ppiankov/clipverity/internal/model"
	"github.com/ppiankov/clipverity/internal/pipeline"
	"github.com/ppiankov/clipverity/internal/video"
)

// Service is the pipeline surface the HTTP handlers call
type Service interface {
	Highlights(ctx context.Context, downloadURL string) ([]model.Clip, error)
	Enrich(ctx context.Context, downloadURL string) ([]model.EnrichedClip, error)
	EnrichClips(ctx context.Context, clips []model.Clip) ([]model.EnrichedClip, error)
	FactCheck(ctx context.Context, claim string) (*model.FactCheckResult, error)
}

// Options configure the HTTP surface
type Options struct {
	Name         string
	Version      string
	AllowOrigins []string
	Debug        bool
	Logger       *slog.Logger
}

// Server exposes the pipeline over HTTP
type Server struct {
	svc  Service
	opts Options
	log  *slog.Logger
}

// New creates a server
func New(svc Service, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Name == "" {
		opts.Name = "clipverity"
	}
	return &Server{svc: svc, opts: opts, log: opts.Logger}
}

type highlightsRequest struct {
	DownloadURL string `json:"downloadUrl" binding:"required,url"`
}

type enrichRequest struct {
	DownloadURL string       `json:"downloadUrl"`
	Clips       []model.Clip `json:"clips"`
}

type factCheckRequest struct {
	Claim string `json:"claim" binding:"required"`
}

// Router builds the gin engine with every route registered
func (s *Server) Router() *gin.Engine {
	if !s.opts.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(s.requestLogger())
	r.Use(corsMiddleware(s.opts.AllowOrigins))

	r.GET("/", s.handleRoot)
	r.GET("/health", s.handleHealth)
	r.POST("/highlights", s.handleHighlights)
	r.POST("/enrich", s.handleEnrich)
	r.POST("/factcheck", s.handleFactCheck)

	return r
}

// ListenAndServe serves until ctx is done, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", slog.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": s.opts.Name, "version": s.opts.Version})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "message": "API is running"})
}

func (s *Server) handleHighlights(c *gin.Context) {
	var req highlightsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	clips, err := s.svc.Highlights(c.Request.Context(), req.DownloadURL)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, clips)
}

func (s *Server) handleEnrich(c *gin.Context) {
	var req enrichRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	if req.Clips == nil && !validURL(req.DownloadURL) {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "downloadUrl must be an http(s) URL, or clips must be given"})
		return
	}

	var (
		enriched []model.EnrichedClip
		err      error
	)
	if req.Clips != nil {
		for i, clip := range req.Clips {
			if clip.StartSec < 0 || clip.EndSec <= clip.StartSec || strings.TrimSpace(clip.Description) == "" {
				c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid clip", "index": i})
				return
			}
		}
		enriched, err = s.svc.EnrichClips(c.Request.Context(), req.Clips)
	} else {
		enriched, err = s.svc.Enrich(c.Request.Context(), req.DownloadURL)
	}
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, enriched)
}

func (s *Server) handleFactCheck(c *gin.Context) {
	var req factCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	if strings.TrimSpace(req.Claim) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "claim cannot be blank"})
		return
	}

	result, err := s.svc.FactCheck(c.Request.Context(), req.Claim)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// writeError maps pipeline errors onto HTTP statuses
func (s *Server) writeError(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.log.Error("request failed", slog.String("path", c.FullPath()), slog.Int("status", status), slog.Any("error", err))
	} else {
		s.log.Warn("request rejected", slog.String("path", c.FullPath()), slog.Int("status", status), slog.Any("error", err))
	}

	body := gin.H{"detail": err.Error()}
	var upstreamErr *factcheck.UpstreamError
	if errors.As(err, &upstreamErr) {
		body["upstreamStatus"] = upstreamErr.Status
	}
	var videoErr *video.StatusError
	if errors.As(err, &videoErr) {
		body["upstreamStatus"] = videoErr.StatusCode
	}

	c.JSON(status, body)
}

func validURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func statusFor(err error) int {
	var (
		upstreamErr *factcheck.UpstreamError
		formatErr   *factcheck.ResponseFormatError
		videoErr    *video.StatusError
		taskErr     *video.TaskError
	)
	switch {
	case errors.As(err, &upstreamErr), errors.As(err, &videoErr), errors.As(err, &taskErr):
		return http.StatusBadGateway
	case errors.As(err, &formatErr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, factcheck.ErrUpstreamUnavailable),
		errors.Is(err, video.ErrUnavailable),
		errors.Is(err, pipeline.ErrNotConfigured):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
