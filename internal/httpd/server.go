package httpd

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/logmirror/logmirror/internal/httpd/controllers"
	"github.com/logmirror/logmirror/internal/httpd/middleware"
	"github.com/logmirror/logmirror/internal/httpd/services"
	"github.com/logmirror/logmirror/internal/mirror"
)

// Server exposes the mirror over HTTP: paginated newest-first reads, manual
// sync triggers, and status.
type Server struct {
	config   Config
	engine   *gin.Engine
	server   *http.Server
	listener net.Listener

	syncer  *mirror.Syncer
	journal *mirror.CycleJournal
}

func New(config Config, syncer *mirror.Syncer, journal *mirror.CycleJournal) (*Server, error) {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	// NOTE middleware order is important
	engine.Use(
		middleware.ErrorHandler(),
		gin.Recovery(),
		middleware.Logger(),
		middleware.SecureHeaders(),
		middleware.CORS(),
		middleware.Compression(),
	)

	if config.RateLimit != "" {
		rl, err := middleware.RateLimit(config.RateLimit)
		if err != nil {
			return nil, fmt.Errorf("invalid rate limit %q: %w", config.RateLimit, err)
		}
		engine.Use(rl)
	}

	s := &Server{
		config:  config,
		engine:  engine,
		syncer:  syncer,
		journal: journal,
	}
	s.registerRoutes()

	return s, nil
}

func (s *Server) registerRoutes() {
	healthController := controllers.NewHealthController(services.NewHealthService())
	healthController.RegisterRoutes(s.engine)

	v1 := s.engine.Group("/v1")
	if s.config.Token != "" {
		v1.Use(middleware.TokenAuth(middleware.TokenAuthConfig{Token: s.config.Token}))
	}

	logsController := controllers.NewLogsController(services.NewLogsService(s.syncer))
	logsController.RegisterRoutes(v1)

	syncController := controllers.NewSyncController(services.NewSyncService(s.syncer, s.journal))
	syncController.RegisterRoutes(v1)
}

// Start serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.config.Addr, err)
	}
	s.listener = listener

	s.server = &http.Server{Handler: s.engine}

	slog.Info("http server start", "address", listener.Addr().String())

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return s.Stop()
	}
}

func (s *Server) Stop() error {
	if s.server == nil {
		return nil
	}

	slog.Info("http server stop")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	return nil
}
