// Package app provides dependency injection container for assembling application components.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"sync"

	authorizationHTTP "github.com/allisson/mist/internal/authorization/http"
	authorizationUseCase "github.com/allisson/mist/internal/authorization/usecase"
	"github.com/allisson/mist/internal/config"
	custodyHTTP "github.com/allisson/mist/internal/custody/http"
	custodyService "github.com/allisson/mist/internal/custody/service"
	custodyUseCase "github.com/allisson/mist/internal/custody/usecase"
	"github.com/allisson/mist/internal/database"
	"github.com/allisson/mist/internal/http"
	intentHTTP "github.com/allisson/mist/internal/intent/http"
	intentUseCase "github.com/allisson/mist/internal/intent/usecase"
	"github.com/allisson/mist/internal/metrics"
	nullifierHTTP "github.com/allisson/mist/internal/nullifier/http"
	nullifierUseCase "github.com/allisson/mist/internal/nullifier/usecase"
	outboxUseCase "github.com/allisson/mist/internal/outbox/usecase"
)

// Container holds all application dependencies and provides methods to access them.
// Components are created on first access.
type Container struct {
	config *config.Config

	// Infrastructure
	logger          *slog.Logger
	db              *sql.DB
	txManager       database.TxManager
	metricsProvider *metrics.Provider
	businessMetrics metrics.BusinessMetrics

	// Repositories
	settingsRepository      settingsRepository
	capabilityRepository    custodyUseCase.CapabilityRepository
	poolRepository          poolRepository
	depositRecordRepository custodyUseCase.DepositRecordRepository
	intentRepository        intentUseCase.IntentRepository
	disbursementRepository  intentUseCase.DisbursementRepository
	nullifierRepository     nullifierRepository
	outboxRepository        outboxUseCase.OutboxEventRepository

	// Services
	capabilityService custodyService.CapabilityService
	publisher         *outboxUseCase.Publisher

	// Use Cases
	custodyUseCase       custodyUseCase.CustodyUseCase
	adminUseCase         custodyUseCase.AdminUseCase
	intentUseCase        intentUseCase.IntentUseCase
	nullifierUseCase     nullifierUseCase.NullifierUseCase
	authorizationUseCase authorizationUseCase.AuthorizationUseCase
	outboxUseCase        outboxUseCase.UseCase

	// Handlers
	custodyHandler       *custodyHTTP.CustodyHandler
	adminHandler         *custodyHTTP.AdminHandler
	intentHandler        *intentHTTP.IntentHandler
	nullifierHandler     *nullifierHTTP.NullifierHandler
	authorizationHandler *authorizationHTTP.AuthorizationHandler

	// Servers
	httpServer    *http.Server
	metricsServer *http.MetricsServer

	mu                          sync.Mutex
	loggerInit                  sync.Once
	dbInit                      sync.Once
	txManagerInit               sync.Once
	metricsProviderInit         sync.Once
	businessMetricsInit         sync.Once
	settingsRepositoryInit      sync.Once
	capabilityRepositoryInit    sync.Once
	poolRepositoryInit          sync.Once
	depositRecordRepositoryInit sync.Once
	intentRepositoryInit        sync.Once
	disbursementRepositoryInit  sync.Once
	nullifierRepositoryInit     sync.Once
	outboxRepositoryInit        sync.Once
	capabilityServiceInit       sync.Once
	publisherInit               sync.Once
	custodyUseCaseInit          sync.Once
	adminUseCaseInit            sync.Once
	intentUseCaseInit           sync.Once
	nullifierUseCaseInit        sync.Once
	authorizationUseCaseInit    sync.Once
	outboxUseCaseInit           sync.Once
	custodyHandlerInit          sync.Once
	adminHandlerInit            sync.Once
	intentHandlerInit           sync.Once
	nullifierHandlerInit        sync.Once
	authorizationHandlerInit    sync.Once
	httpServerInit              sync.Once
	metricsServerInit           sync.Once
	initErrors                  map[string]error
}

// NewContainer creates a new dependency injection container with the provided configuration.
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:     cfg,
		initErrors: make(map[string]error),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the configured logger instance.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// DB returns the database connection.
func (c *Container) DB() (*sql.DB, error) {
	var err error
	c.dbInit.Do(func() {
		c.db, err = c.initDB()
		if err != nil {
			c.initErrors["db"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["db"]; exists {
		return nil, storedErr
	}
	return c.db, nil
}

// TxManager returns the transaction manager.
func (c *Container) TxManager() (database.TxManager, error) {
	var err error
	c.txManagerInit.Do(func() {
		c.txManager, err = c.initTxManager()
		if err != nil {
			c.initErrors["txManager"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["txManager"]; exists {
		return nil, storedErr
	}
	return c.txManager, nil
}

// MetricsProvider returns the OpenTelemetry metrics provider, or nil when metrics are disabled.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	var err error
	c.metricsProviderInit.Do(func() {
		c.metricsProvider, err = c.initMetricsProvider()
		if err != nil {
			c.initErrors["metricsProvider"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["metricsProvider"]; exists {
		return nil, storedErr
	}
	return c.metricsProvider, nil
}

// BusinessMetrics returns the business metrics recorder. It is a no-op when metrics are disabled.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	var err error
	c.businessMetricsInit.Do(func() {
		c.businessMetrics, err = c.initBusinessMetrics()
		if err != nil {
			c.initErrors["businessMetrics"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["businessMetrics"]; exists {
		return nil, storedErr
	}
	return c.businessMetrics, nil
}

// HTTPServer returns the public ledger API server with its router configured.
func (c *Container) HTTPServer() (*http.Server, error) {
	var err error
	c.httpServerInit.Do(func() {
		c.httpServer, err = c.initHTTPServer()
		if err != nil {
			c.initErrors["httpServer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["httpServer"]; exists {
		return nil, storedErr
	}
	return c.httpServer, nil
}

// MetricsServer returns the Prometheus metrics server, or nil when metrics are disabled.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	var err error
	c.metricsServerInit.Do(func() {
		c.metricsServer, err = c.initMetricsServer()
		if err != nil {
			c.initErrors["metricsServer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["metricsServer"]; exists {
		return nil, storedErr
	}
	return c.metricsServer, nil
}

// Shutdown performs cleanup of all initialized resources.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var shutdownErrors []error

	if c.httpServer != nil {
		if err := c.httpServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("http server shutdown: %w", err))
		}
	}

	if c.metricsServer != nil {
		if err := c.metricsServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}

	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	if c.db != nil {
		if err := c.db.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("database close: %w", err))
		}
	}

	if len(shutdownErrors) > 0 {
		return fmt.Errorf("shutdown errors: %v", shutdownErrors)
	}

	return nil
}

// initLogger creates a JSON logger at the configured level.
func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})

	return slog.New(handler)
}

func (c *Container) initDB() (*sql.DB, error) {
	db, err := database.Connect(database.Config{
		Driver:             c.config.DBDriver,
		ConnectionString:   c.config.DBConnectionString,
		MaxOpenConnections: c.config.DBMaxOpenConnections,
		MaxIdleConnections: c.config.DBMaxIdleConnections,
		ConnMaxLifetime:    c.config.DBConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

func (c *Container) initTxManager() (database.TxManager, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for tx manager: %w", err)
	}
	return database.NewTxManager(db), nil
}

func (c *Container) initMetricsProvider() (*metrics.Provider, error) {
	if !c.config.MetricsEnabled {
		return nil, nil
	}

	provider, err := metrics.NewProvider(c.config.MetricsNamespace)
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics provider: %w", err)
	}
	return provider, nil
}

func (c *Container) initBusinessMetrics() (metrics.BusinessMetrics, error) {
	if !c.config.MetricsEnabled {
		return metrics.NewNoOpBusinessMetrics(), nil
	}

	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for business metrics: %w", err)
	}

	businessMetrics, err := metrics.NewBusinessMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
	if err != nil {
		return nil, fmt.Errorf("failed to create business metrics: %w", err)
	}
	return businessMetrics, nil
}

func (c *Container) initHTTPServer() (*http.Server, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for http server: %w", err)
	}

	custodyHandler, err := c.CustodyHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get custody handler for http server: %w", err)
	}

	adminHandler, err := c.AdminHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get admin handler for http server: %w", err)
	}

	intentHandler, err := c.IntentHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get intent handler for http server: %w", err)
	}

	nullifierHandler, err := c.NullifierHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get nullifier handler for http server: %w", err)
	}

	authorizationHandler, err := c.AuthorizationHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get authorization handler for http server: %w", err)
	}

	metricsProvider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for http server: %w", err)
	}

	logger := c.Logger()
	server := http.NewServer(db, c.config.ServerHost, c.config.ServerPort, logger)
	server.SetupRouter(c.config, http.Handlers{
		Custody:         custodyHandler,
		Admin:           adminHandler,
		Intent:          intentHandler,
		Nullifier:       nullifierHandler,
		Authorization:   authorizationHandler,
		AdminCapability: custodyHTTP.AdminCapabilityMiddleware(logger),
	}, metricsProvider, c.config.MetricsNamespace)

	return server, nil
}

func (c *Container) initMetricsServer() (*http.MetricsServer, error) {
	if !c.config.MetricsEnabled {
		return nil, nil
	}

	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for metrics server: %w", err)
	}

	return http.NewMetricsServer(c.config.ServerHost, c.config.MetricsPort, c.Logger(), provider), nil
}
