package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "interview-ai/docs" // Generated swagger docs
	"interview-ai/internal/api/middleware"
	"interview-ai/internal/api/v1/handlers"
	v1routes "interview-ai/internal/api/v1/routes"
	"interview-ai/internal/app/metrics"
)

// Config represents API server configuration
type Config struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	Environment  string
	Release      bool // gin release mode
}

// Server represents the API server
type Server struct {
	config     Config
	router     *gin.Engine
	httpServer *http.Server
	logger     *zap.Logger
	errs       chan error
}

// NewServer creates a new API server. The v1 routes are mounted under both
// /api/v1 and /ai/v1 so clients behind the /ai gateway prefix reach the
// same handlers.
func NewServer(
	config Config,
	container *v1routes.ServiceContainer,
	health *handlers.HealthHandler,
	recorder *metrics.Recorder,
	logger *zap.Logger,
) *Server {
	if config.Release {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()

	// Apply global middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.StructuredLogging(logger))
	router.Use(middleware.Metrics(recorder))
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))

	v1routes.RegisterHealthRoutes(router, health)

	for _, prefix := range []string{"/api/v1", "/ai/v1"} {
		v1routes.RegisterRoutes(router.Group(prefix), container)
	}

	router.GET("/metrics", gin.WrapH(recorder.Handler()))

	// Swagger documentation routes
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	httpServer := &http.Server{
		Addr:         config.Addr,
		Handler:      router,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}

	return &Server{
		config:     config,
		router:     router,
		httpServer: httpServer,
		logger:     logger,
		errs:       make(chan error, 1),
	}
}

// Start starts the API server in the background. Listen failures are
// delivered on Errors.
func (s *Server) Start() error {
	s.logger.Info("Starting API server",
		zap.String("addr", s.config.Addr),
		zap.String("environment", s.config.Environment),
	)

	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Failed to start server", zap.Error(err))
			s.errs <- err
		}
	}()

	s.logger.Info("API server started successfully",
		zap.String("address", s.httpServer.Addr),
	)

	return nil
}

// Errors reports a fatal listen error
func (s *Server) Errors() <-chan error {
	return s.errs
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down API server...")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("Server forced to shutdown", zap.Error(err))
		return err
	}

	s.logger.Info("API server shutdown complete")
	return nil
}

// Router returns the Gin router (useful for testing)
func (s *Server) Router() *gin.Engine {
	return s.router
}
