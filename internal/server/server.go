// Package server exposes a quiz machine over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/quizzer/internal/quiz"
)

// DefaultLoadTimeout bounds a reload triggered over HTTP.
const DefaultLoadTimeout = 30 * time.Second

type Config struct {
	Addr        string
	LoadTimeout time.Duration
	Gatherer    prometheus.Gatherer
	Logger      *slog.Logger
}

// Server serves one quiz machine. Clients poll the session snapshot and
// post events.
type Server struct {
	c        Config
	machine  *quiz.Machine
	provider quiz.Provider
	engine   *gin.Engine
	logger   *slog.Logger
}

// New builds the server and its routes. Nothing listens until Run.
func New(c Config, m *quiz.Machine, p quiz.Provider) *Server {
	if c.LoadTimeout <= 0 {
		c.LoadTimeout = DefaultLoadTimeout
	}
	if c.Gatherer == nil {
		c.Gatherer = prometheus.DefaultGatherer
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}

	s := &Server{c: c, machine: m, provider: p, logger: c.Logger}
	s.initRoutes()
	return s
}

func (s *Server) initRoutes() {
	e := gin.New()
	e.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.c.Gatherer, promhttp.HandlerOpts{})))
	pprof.Register(e, "/debug/pprof")
	e.Use(gin.Recovery(), s.requestLog())

	e.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := e.Group("/api")
	api.GET("/session", s.getSession)
	api.POST("/events", s.postEvent)
	api.POST("/reload", s.postReload)

	s.engine = e
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run listens on the configured address until ctx is done, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.c.Addr)
	if err != nil {
		return fmt.Errorf("server: listen: %w", err)
	}
	return s.Serve(ctx, lis)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 60 * time.Second,
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		s.logger.InfoContext(ctx, fmt.Sprintf("server: HTTP listening on %s", lis.Addr()))
		if err := srv.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	eg.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server: shutdown HTTP: %w", err)
		}
		s.logger.InfoContext(shutdownCtx, "server: shutdown completed")
		return nil
	})
	return eg.Wait()
}

func (s *Server) requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.DebugContext(c.Request.Context(), "server: request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
