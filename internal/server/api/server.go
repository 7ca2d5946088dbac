package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/barakbk-hailo/OpenHD-SysUtils/internal/server/api/handlers"
	"github.com/barakbk-hailo/OpenHD-SysUtils/internal/server/api/middleware"
	"github.com/barakbk-hailo/OpenHD-SysUtils/internal/server/service"
	"github.com/barakbk-hailo/OpenHD-SysUtils/internal/shared/config"
)

// maxUpdateBodyBytes caps the POST /v1/update request body.
const maxUpdateBodyBytes = 16 * 1024

// Server is the HTTP status server. It is an optional local surface
// for inspection and scripting; the unix socket stays the primary
// protocol.
type Server struct {
	httpServer *http.Server
	logger     *zap.Logger
}

// NewServer creates the HTTP server bound to cfg.DebugListen.
func NewServer(cfg *config.Config, wifiService *service.WifiService, logger *zap.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	limiter := middleware.NewRateLimiter(60, time.Minute)
	router.Use(middleware.RateLimit(limiter))

	wifiHandler := handlers.NewWifiHandler(wifiService)
	router.GET("/healthz", wifiHandler.Health)

	v1 := router.Group("/v1")
	if cfg.DebugToken != "" {
		v1.Use(middleware.BearerAuth(cfg.DebugToken))
	}
	v1.GET("/cards", wifiHandler.Cards)
	v1.POST("/refresh", wifiHandler.Refresh)
	v1.POST("/update", middleware.RequestSizeLimit(maxUpdateBodyBytes), wifiHandler.Update)

	return &Server{
		httpServer: &http.Server{
			Addr:         cfg.DebugListen,
			Handler:      router,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// Start serves until Stop is called.
func (s *Server) Start() error {
	s.logger.Info("status API listening", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop shuts the server down gracefully.
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
