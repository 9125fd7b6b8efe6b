package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	// DefaultAddr is the listen address of the serve command.
	DefaultAddr = "127.0.0.1:8080"
	// DefaultMaxSessions bounds the sessions held in memory.
	DefaultMaxSessions = 1000
	// DefaultSessionTTL is how long a session lives after creation.
	DefaultSessionTTL = 24 * time.Hour

	shutdownTimeout = 10 * time.Second
)

// Server serves the wizard API.
type Server struct {
	echo     *echo.Echo
	store    *store
	registry *prometheus.Registry
	stats    *serverMetrics
	validate *validator.Validate
	log      logr.Logger

	maxSessions int
	ttl         time.Duration
	metrics     bool
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger.
func WithLogger(l logr.Logger) Option {
	return func(s *Server) { s.log = l }
}

// WithMaxSessions bounds the number of sessions. Zero disables the limit.
func WithMaxSessions(n int) Option {
	return func(s *Server) { s.maxSessions = n }
}

// WithSessionTTL sets how long sessions are kept. Zero keeps them until
// they are deleted.
func WithSessionTTL(d time.Duration) Option {
	return func(s *Server) { s.ttl = d }
}

// WithMetrics toggles the /metrics endpoint.
func WithMetrics(enabled bool) Option {
	return func(s *Server) { s.metrics = enabled }
}

// New creates a server with all routes registered.
func New(opts ...Option) (*Server, error) {
	s := &Server{
		registry:    prometheus.NewRegistry(),
		stats:       newServerMetrics(),
		validate:    validator.New(validator.WithRequiredStructEnabled()),
		log:         logr.Discard(),
		maxSessions: DefaultMaxSessions,
		ttl:         DefaultSessionTTL,
		metrics:     true,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.store = newStore(s.maxSessions)

	if err := s.stats.register(s.registry); err != nil {
		return nil, err
	}
	if err := s.registry.Register(collectors.NewGoCollector()); err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = s.handleError
	e.Use(middleware.Recover())
	e.Use(s.observe)
	s.echo = e

	s.routes()
	return s, nil
}

func (s *Server) routes() {
	s.echo.GET("/api/v1/health", s.health)

	api := s.echo.Group("/api/v1")
	api.GET("/wizards", s.listWizards)
	api.GET("/wizards/:name", s.getWizard)

	api.POST("/sessions", s.createSession)
	api.GET("/sessions/:id", s.getSession)
	api.DELETE("/sessions/:id", s.deleteSession)
	api.POST("/sessions/:id/select", s.selectOption)
	api.POST("/sessions/:id/submit", s.submitStepData)
	api.POST("/sessions/:id/back", s.goBack)
	api.POST("/sessions/:id/restart", s.restart)
	api.GET("/sessions/:id/plan", s.getPlan)
	api.GET("/sessions/:id/bundle", s.getBundle)

	if s.metrics {
		s.echo.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))
	}
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler { return s.echo }

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("serving wizard API", "addr", addr)
		errCh <- s.echo.Start(addr)
	}()

	var expire <-chan time.Time
	if s.ttl > 0 {
		ticker := time.NewTicker(s.ttl / 4)
		defer ticker.Stop()
		expire = ticker.C
	}

	for {
		select {
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case <-expire:
			s.expireSessions()
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return s.echo.Shutdown(shutdownCtx)
		}
	}
}

func (s *Server) expireSessions() {
	n := s.store.Expire(s.store.now().Add(-s.ttl))
	s.stats.recordSessionsDeleted(n)
	if n > 0 {
		s.log.V(1).Info("expired sessions", "count", n)
	}
}

// observe records request durations by route.
func (s *Server) observe(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)

		code := c.Response().Status
		if err != nil {
			code = statusFor(err)
		}
		s.stats.requestDuration.
			WithLabelValues(c.Path(), c.Request().Method, strconv.Itoa(code)).
			Observe(time.Since(start).Seconds())
		return err
	}
}

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status":   "ok",
		"sessions": s.store.Len(),
	})
}

// bind decodes the request body into req and validates it.
func (s *Server) bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return err
	}
	if err := s.validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
