// File: internal/app/server.go
package app

import (
	"context"
	"fmt"
	"net/http"

	"bluestock_client/internal/analytics"
	"bluestock_client/internal/auth"
	"bluestock_client/internal/company"
	"bluestock_client/internal/config"
	"bluestock_client/internal/jobs"
	"bluestock_client/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Server holds the dev gateway's HTTP server and its dependencies.
type Server struct {
	httpServer *http.Server
	router     *gin.Engine
	cfg        *config.Config
	logger     *zap.Logger

	otpExpiryJob *jobs.OTPExpiryJob
}

// NewServer builds the gin engine, wires middleware and routes, and
// returns the server ready to Start.
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	tokens *auth.TokenService,
	authHandler *auth.Handler,
	companyHandler *company.Handler,
	analyticsHandler *analytics.Handler,
	otpExpiryJob *jobs.OTPExpiryJob,
) (*Server, error) {
	gin.SetMode(cfg.GinMode)
	router := gin.New()

	router.Use(middleware.ZapLogger(logger))
	router.Use(middleware.ErrorHandler(logger))
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader}
	corsConfig.ExposeHeaders = []string{"Content-Length", middleware.RequestIDHeader}
	router.Use(cors.New(corsConfig))

	authMW := middleware.AuthMiddleware(tokens, logger.Named("AuthMiddleware"))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "message": "Bluestock dev gateway is healthy!"})
	})

	// The client's base URL points at /api; the route layout below mirrors
	// the paths the original front-end called.
	api := router.Group("/api")
	authHandler.RegisterRoutes(api)

	protected := api.Group("", authMW)
	authHandler.RegisterProtectedRoutes(protected)
	companyHandler.RegisterRoutes(protected)
	analyticsHandler.RegisterRoutes(protected)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  cfg.ServerTimeout,
		WriteTimeout: cfg.ServerTimeout,
	}

	return &Server{
		httpServer:   httpServer,
		router:       router,
		cfg:          cfg,
		logger:       logger,
		otpExpiryJob: otpExpiryJob,
	}, nil
}

// Router exposes the gin engine for in-process tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start launches the background jobs and blocks serving HTTP.
func (s *Server) Start() error {
	if err := s.otpExpiryJob.SetupAndStart(); err != nil {
		return fmt.Errorf("failed to start otp expiry job: %w", err)
	}

	s.logger.Info("Dev gateway listening", zap.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server and the background jobs.
func (s *Server) Shutdown(ctx context.Context) error {
	s.otpExpiryJob.Stop()
	return s.httpServer.Shutdown(ctx)
}
