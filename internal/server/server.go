package server

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/muliwe/go-package-sorter/internal/classifier"
	"github.com/muliwe/go-package-sorter/internal/logger"
	"github.com/muliwe/go-package-sorter/internal/metrics"
)

// Config holds server configuration
type Config struct {
	Addr            string        `mapstructure:"addr" validate:"required"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" validate:"gt=0"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
	EnableDebug     bool          `mapstructure:"enable_debug"`
	EnableMetrics   bool          `mapstructure:"enable_metrics"`

	// TLS configuration
	TLSCertFile string `mapstructure:"tls_cert_file" validate:"required_with=TLSKeyFile"`
	TLSKeyFile  string `mapstructure:"tls_key_file" validate:"required_with=TLSCertFile"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Addr:            ":8080",
		ReadTimeout:     5 * time.Second,
		WriteTimeout:    10 * time.Second,
		IdleTimeout:     120 * time.Second,
		ShutdownTimeout: 30 * time.Second,
		EnableDebug:     false,
		EnableMetrics:   true,
	}
}

// TLSEnabled reports whether both certificate and key are configured
func (c Config) TLSEnabled() bool {
	return c.TLSCertFile != "" && c.TLSKeyFile != ""
}

// Server represents the HTTP server
type Server struct {
	cfg        Config
	httpServer *http.Server
	decisions  *logger.Logger
	log        *zap.Logger
}

// New creates a new server instance. The server takes ownership of the
// decision logger and closes it on shutdown.
func New(cfg Config, decisions *logger.Logger, m *metrics.Metrics, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	if decisions == nil {
		decisions = logger.NewFromZap(zap.NewNop())
	}

	handler := NewHandler(classifier.New(), decisions, m, log)

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      NewRouter(cfg, handler, m, log),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	if cfg.TLSEnabled() {
		httpServer.TLSConfig = &tls.Config{
			MinVersion: tls.VersionTLS12,
			NextProtos: []string{"h2", "http/1.1"},
		}
	}

	return &Server{
		cfg:        cfg,
		httpServer: httpServer,
		decisions:  decisions,
		log:        log,
	}
}

// NewRouter builds the gin engine with all routes and middleware
func NewRouter(cfg Config, h *Handler, m *metrics.Metrics, log *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(AccessLog(log))
	if m != nil {
		r.Use(Metrics(m))
	}

	r.GET("/health", h.HandleHealth)

	v1 := r.Group("/v1")
	v1.POST("/classify", h.HandleClassify)
	v1.GET("/classify", h.HandleClassify)

	if cfg.EnableDebug {
		r.POST("/debug/explain", h.HandleExplain)
	}
	if cfg.EnableMetrics && m != nil {
		r.GET("/metrics", gin.WrapH(m.Handler()))
	}

	r.NoRoute(h.HandleNotFound)

	return r
}

// Handler returns the http.Handler serving all routes
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		protocol := "HTTP"
		if s.cfg.TLSEnabled() {
			protocol = "HTTPS"
		}
		s.log.Info("Package sorter starting",
			zap.String("addr", s.cfg.Addr),
			zap.String("protocol", protocol),
			zap.Bool("debug", s.cfg.EnableDebug),
			zap.Bool("metrics", s.cfg.EnableMetrics),
			zap.String("decision_log", s.decisions.LogPath()),
		)

		var err error
		if s.cfg.TLSEnabled() {
			err = s.httpServer.ListenAndServeTLS(s.cfg.TLSCertFile, s.cfg.TLSKeyFile)
		} else {
			err = s.httpServer.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			_ = s.decisions.Close()
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}

	s.log.Info("Server shutting down")
	if err := s.Close(); err != nil {
		return err
	}
	s.log.Info("Server stopped")
	return nil
}

// Close gracefully shuts down the server
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if err := s.decisions.Close(); err != nil {
		s.log.Warn("Error closing decision log", zap.Error(err))
	}
	return nil
}
