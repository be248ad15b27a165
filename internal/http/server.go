// Package http provides the ledger HTTP server, its router and shared middleware.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authorizationHTTP "github.com/allisson/mist/internal/authorization/http"
	"github.com/allisson/mist/internal/config"
	custodyHTTP "github.com/allisson/mist/internal/custody/http"
	"github.com/allisson/mist/internal/httputil"
	intentHTTP "github.com/allisson/mist/internal/intent/http"
	"github.com/allisson/mist/internal/metrics"
	nullifierHTTP "github.com/allisson/mist/internal/nullifier/http"
)

// Server is the public ledger API server.
type Server struct {
	db     *sql.DB
	server *http.Server
	router *gin.Engine
	logger *slog.Logger
}

// Handlers groups the ledger route handlers mounted by SetupRouter.
type Handlers struct {
	Custody       *custodyHTTP.CustodyHandler
	Admin         *custodyHTTP.AdminHandler
	Intent        *intentHTTP.IntentHandler
	Nullifier     *nullifierHTTP.NullifierHandler
	Authorization *authorizationHTTP.AuthorizationHandler

	// AdminCapability guards the admin routes.
	AdminCapability gin.HandlerFunc
}

// NewServer creates a new Server. Call SetupRouter before Start.
func NewServer(
	db *sql.DB,
	host string,
	port int,
	logger *slog.Logger,
) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// SetupRouter builds the gin router with every ledger route.
func (s *Server) SetupRouter(
	cfg *config.Config,
	handlers Handlers,
	metricsProvider *metrics.Provider,
	metricsNamespace string,
) {
	gin.SetMode(cfg.GetGinMode())

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), metricsNamespace))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	// Public write endpoints share one per-IP limiter
	publicWrite := []gin.HandlerFunc{}
	if cfg.RateLimitEnabled {
		publicWrite = append(
			publicWrite,
			IPRateLimitMiddleware(cfg.RateLimitRequestsPerSec, cfg.RateLimitBurst, s.logger),
		)
	}
	withLimit := func(h gin.HandlerFunc) []gin.HandlerFunc {
		return append(append([]gin.HandlerFunc{}, publicWrite...), h)
	}

	authority := httputil.CallerIdentityMiddleware(s.logger)

	v1 := router.Group("/v1")
	{
		v1.GET("/pool", handlers.Custody.GetPoolHandler)

		deposits := v1.Group("/deposits")
		deposits.POST("", withLimit(handlers.Custody.DepositHandler)...)
		deposits.GET("", handlers.Custody.ListDepositRecordsHandler)
		deposits.GET("/:id", handlers.Custody.GetDepositRecordHandler)
		deposits.DELETE("/:id", authority, handlers.Custody.ConsumeDepositRecordHandler)

		intents := v1.Group("/intents")
		intents.POST("", withLimit(handlers.Intent.CreateHandler)...)
		intents.GET("", handlers.Intent.ListHandler)
		intents.GET("/:id", handlers.Intent.GetHandler)
		intents.POST("/:id/settle", authority, handlers.Intent.SettleDirectHandler)
		intents.POST("/:id/withdraw", authority, handlers.Intent.SettleViaExternalVenueHandler)
		intents.POST("/:id/cancel", authority, handlers.Intent.CancelExpiredHandler)

		v1.POST("/nullifiers/check", handlers.Nullifier.CheckHandler)
		v1.POST("/authorization/check", withLimit(handlers.Authorization.CheckHandler)...)

		admin := v1.Group("/admin", handlers.AdminCapability)
		admin.POST("/pause", handlers.Admin.SetPauseHandler)
		admin.POST("/authority", handlers.Admin.RotateAuthorityHandler)
		admin.POST("/top-up", handlers.Admin.TopUpHandler)
	}

	s.router = router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start starts the HTTP server.
func (s *Server) Start(ctx context.Context) error {
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports ready only when the database answers a ping.
func (s *Server) readinessHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if s.db == nil || s.db.PingContext(ctx) != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": gin.H{"database": "error"},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": gin.H{"database": "ok"},
	})
}
