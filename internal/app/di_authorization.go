package app

import (
	"fmt"

	authorizationDomain "github.com/allisson/mist/internal/authorization/domain"
	authorizationHTTP "github.com/allisson/mist/internal/authorization/http"
	authorizationUseCase "github.com/allisson/mist/internal/authorization/usecase"
)

// AuthorizationUseCase returns the decryption-key authorization gate for the configured namespace.
func (c *Container) AuthorizationUseCase() (authorizationUseCase.AuthorizationUseCase, error) {
	var err error
	c.authorizationUseCaseInit.Do(func() {
		c.authorizationUseCase, err = c.initAuthorizationUseCase()
		if err != nil {
			c.initErrors["authorizationUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["authorizationUseCase"]; exists {
		return nil, storedErr
	}
	return c.authorizationUseCase, nil
}

// AuthorizationHandler returns the HTTP handler for authorization checks.
func (c *Container) AuthorizationHandler() (*authorizationHTTP.AuthorizationHandler, error) {
	var err error
	c.authorizationHandlerInit.Do(func() {
		c.authorizationHandler, err = c.initAuthorizationHandler()
		if err != nil {
			c.initErrors["authorizationHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["authorizationHandler"]; exists {
		return nil, storedErr
	}
	return c.authorizationHandler, nil
}

func (c *Container) initAuthorizationUseCase() (authorizationUseCase.AuthorizationUseCase, error) {
	namespace, err := authorizationDomain.ParseNamespace(c.config.LedgerNamespace)
	if err != nil {
		return nil, fmt.Errorf("failed to parse ledger namespace: %w", err)
	}

	settingsRepo, err := c.SettingsRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get settings repository for authorization use case: %w", err)
	}

	baseUseCase := authorizationUseCase.NewAuthorizationUseCase(namespace, settingsRepo)

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for authorization use case: %w", err)
		}
		return authorizationUseCase.NewAuthorizationUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

func (c *Container) initAuthorizationHandler() (*authorizationHTTP.AuthorizationHandler, error) {
	useCase, err := c.AuthorizationUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get authorization use case for authorization handler: %w", err)
	}
	return authorizationHTTP.NewAuthorizationHandler(useCase, c.Logger()), nil
}
