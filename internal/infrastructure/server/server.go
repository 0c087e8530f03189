package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzhttp"
	"go.uber.org/zap"

	api "github.com/GriffinCanCode/Dashboard/internal/api/http"
	"github.com/GriffinCanCode/Dashboard/internal/api/middleware"
	"github.com/GriffinCanCode/Dashboard/internal/api/ws"
	"github.com/GriffinCanCode/Dashboard/internal/domain/board"
	"github.com/GriffinCanCode/Dashboard/internal/domain/dashboard"
	"github.com/GriffinCanCode/Dashboard/internal/domain/registry"
	"github.com/GriffinCanCode/Dashboard/internal/domain/storage"
	"github.com/GriffinCanCode/Dashboard/internal/domain/widget"
	"github.com/GriffinCanCode/Dashboard/internal/infrastructure/config"
	"github.com/GriffinCanCode/Dashboard/internal/infrastructure/logging"
	"github.com/GriffinCanCode/Dashboard/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/Dashboard/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/Dashboard/internal/providers/feed"
	"github.com/GriffinCanCode/Dashboard/internal/providers/scraper"
)

// ShutdownTimeout bounds graceful shutdown.
const ShutdownTimeout = 10 * time.Second

// Server wraps the HTTP server and dependencies
type Server struct {
	router  *gin.Engine
	http    *http.Server
	manager *dashboard.Manager
	closer  io.Closer
	logger  *logging.Logger
	config  *config.Config
	metrics *monitoring.Metrics
	tracer  *tracing.Tracer
}

// NewServer creates a new server instance
func NewServer(ctx context.Context, cfg *config.Config) (*Server, error) {
	logger, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	logger.Info("Initializing Dashboard Server",
		zap.String("port", cfg.Server.Port),
		zap.String("storage", cfg.Storage.Backend),
		zap.String("feed_endpoint", cfg.Feed.Endpoint),
	)

	// Initialize metrics first (needed by other components)
	metrics := monitoring.NewMetrics()
	tracer := tracing.New("dashboard", logger)

	kv, closer, err := openKV(ctx, cfg.Storage)
	if err != nil {
		tracer.Close()
		return nil, err
	}
	logger.Info("State store ready", zap.String("backend", cfg.Storage.Backend))

	manager := dashboard.NewManager(storage.NewStateStore(kv, cfg.Storage.Key), logger).WithMetrics(metrics)
	manager.Init(ctx)

	feedClient := feed.New(feed.Options{
		Endpoint:  cfg.Feed.Endpoint,
		Timeout:   cfg.Feed.Timeout,
		Retries:   cfg.Feed.Retries,
		RateLimit: cfg.Feed.RateLimit,
		Logger:    logger,
		Metrics:   metrics,
		Tracer:    tracer,
	})

	deps := widget.Deps{
		Feed:    feedClient,
		Logger:  logger,
		Metrics: metrics,
	}
	if cfg.Widgets.SanitizeHTML {
		deps.Sanitizer = scraper.NewSanitizer()
	}
	widgets := registry.Default(deps)
	renderer := board.NewRenderer(widgets, cfg.Widgets.RenderConcurrency, logger).
		WithMetrics(metrics).
		WithTracer(tracer)

	// Create router
	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Add middleware
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(tracing.HTTPMiddleware(tracer, middleware.GetRequestID))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		limits := middleware.DefaultRateLimitConfig()
		limits.RequestsPerSecond = cfg.RateLimit.RequestsPerSecond
		limits.Burst = cfg.RateLimit.Burst
		router.Use(middleware.RateLimit(limits))
	}

	// Register routes
	api.NewHandlers(manager, widgets, renderer, logger).Register(router)
	router.GET("/stream", ws.NewHandler(manager, renderer, logger).WithMetrics(metrics).HandleConnection)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	logger.Info("Server initialized successfully",
		zap.Strings("widget_types", widgets.AvailableTypes()))

	return &Server{
		router:  router,
		manager: manager,
		closer:  closer,
		logger:  logger,
		config:  cfg,
		metrics: metrics,
		tracer:  tracer,
	}, nil
}

func openKV(ctx context.Context, cfg config.StorageConfig) (storage.KV, io.Closer, error) {
	switch cfg.Backend {
	case "memory":
		return storage.NewMemoryKV(), nil, nil
	case "redis":
		kv, err := storage.NewRedisKV(ctx, cfg.RedisAddr, cfg.RedisDB)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return kv, kv, nil
	default:
		kv, err := storage.NewFileKV(cfg.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open state directory: %w", err)
		}
		return kv, nil, nil
	}
}

// Handler returns the root handler. Responses are gzip-compressed except
// on the WebSocket route, which needs the raw connection.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/stream", s.router)
	mux.Handle("/", gzhttp.GzipHandler(s.router))
	return mux
}

// Run starts the HTTP server and blocks until it stops.
func (s *Server) Run() error {
	addr := net.JoinHostPort(s.config.Server.Host, s.config.Server.Port)
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.Info("Starting HTTP server", zap.String("addr", addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Close gracefully shuts down the server
func (s *Server) Close(ctx context.Context) error {
	s.logger.Info("Shutting down server...")

	var errs []error
	if s.http != nil {
		ctx, cancel := context.WithTimeout(ctx, ShutdownTimeout)
		defer cancel()
		if err := s.http.Shutdown(ctx); err != nil {
			s.logger.Error("HTTP shutdown failed", zap.Error(err))
			errs = append(errs, fmt.Errorf("failed to shut down http server: %w", err))
		}
	}
	if s.closer != nil {
		if err := s.closer.Close(); err != nil {
			s.logger.Error("Failed to close state store", zap.Error(err))
			errs = append(errs, fmt.Errorf("failed to close state store: %w", err))
		}
	}

	s.tracer.Close()

	// Sync logger before exit
	_ = s.logger.Sync()

	return errors.Join(errs...)
}
