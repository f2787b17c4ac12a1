package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apihttp "github.com/GriffinCanCode/crosswalk/internal/api/http"
	"github.com/GriffinCanCode/crosswalk/internal/api/middleware"
	"github.com/GriffinCanCode/crosswalk/internal/api/ws"
	"github.com/GriffinCanCode/crosswalk/internal/crossing"
	"github.com/GriffinCanCode/crosswalk/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/crosswalk/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/crosswalk/internal/shared/id"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// Config holds the status server settings
type Config struct {
	Addr        string
	Development bool
	RateLimit   middleware.RateLimitConfig
	CORS        middleware.CORSConfig
}

// Deps are the components the status server exposes
type Deps struct {
	State   *crossing.State
	RunID   id.RunID
	Metrics *monitoring.Metrics
	Tracer  *tracing.Tracer
	Hub     *ws.Hub
	Logger  *zap.Logger
}

// Server wraps the HTTP server and its router
type Server struct {
	router *gin.Engine
	http   *http.Server
	hub    *ws.Hub
	logger *zap.Logger
}

// New builds the router and registers every route
func New(cfg Config, deps Deps) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	if !cfg.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Add middleware
	router.Use(gin.Recovery())
	if deps.Tracer != nil {
		router.Use(tracing.HTTPMiddleware(deps.Tracer))
	}
	if deps.Metrics != nil {
		router.Use(monitoring.Middleware(deps.Metrics))
	}
	router.Use(middleware.CORS(cfg.CORS))

	handlers := apihttp.NewHandlers(deps.State, deps.RunID, deps.Metrics, logger)

	// Register routes
	router.GET("/health", handlers.Health)
	router.GET("/api/status", handlers.Status)
	router.POST("/api/press", middleware.RateLimit(cfg.RateLimit), handlers.Press)

	if deps.Metrics != nil {
		router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}
	if deps.Hub != nil {
		router.GET("/stream", deps.Hub.HandleConnection)
	}

	return &Server{
		router: router,
		http: &http.Server{
			Addr:              cfg.Addr,
			Handler:           router,
			ReadHeaderTimeout: readHeaderTimeout,
		},
		hub:    deps.Hub,
		logger: logger,
	}
}

// Handler returns the router
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run listens on the configured address and serves until ctx is done
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.http.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done, then shuts down
// gracefully and disconnects stream subscribers.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.logger.Info("Starting status server", zap.String("addr", ln.Addr().String()))

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.http.Serve(ln)
	}()

	select {
	case err := <-errCh:
		s.closeHub()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("status server: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down status server...")

	// Websocket connections are hijacked, so Shutdown does not wait on them
	s.closeHub()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		s.logger.Warn("Status server shutdown incomplete", zap.Error(err))
		s.http.Close()
	}

	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("status server: %w", err)
	}
	s.logger.Info("Status server stopped")
	return nil
}

func (s *Server) closeHub() {
	if s.hub != nil {
		s.hub.Close()
	}
}
