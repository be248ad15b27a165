package app

import (
	"fmt"

	intentUseCase "github.com/allisson/mist/internal/intent/usecase"
	nullifierHTTP "github.com/allisson/mist/internal/nullifier/http"
	nullifierRepositoryPkg "github.com/allisson/mist/internal/nullifier/repository"
	nullifierUseCase "github.com/allisson/mist/internal/nullifier/usecase"
)

// nullifierRepository is written by settlement and read by the public check endpoint.
type nullifierRepository interface {
	intentUseCase.NullifierRepository
	nullifierUseCase.NullifierRepository
}

// NullifierRepository returns the spent-nullifier registry based on database driver.
func (c *Container) NullifierRepository() (nullifierRepository, error) {
	var err error
	c.nullifierRepositoryInit.Do(func() {
		c.nullifierRepository, err = c.initNullifierRepository()
		if err != nil {
			c.initErrors["nullifierRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["nullifierRepository"]; exists {
		return nil, storedErr
	}
	return c.nullifierRepository, nil
}

// NullifierUseCase returns the nullifier lookup use case.
func (c *Container) NullifierUseCase() (nullifierUseCase.NullifierUseCase, error) {
	var err error
	c.nullifierUseCaseInit.Do(func() {
		c.nullifierUseCase, err = c.initNullifierUseCase()
		if err != nil {
			c.initErrors["nullifierUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["nullifierUseCase"]; exists {
		return nil, storedErr
	}
	return c.nullifierUseCase, nil
}

// NullifierHandler returns the HTTP handler for nullifier checks.
func (c *Container) NullifierHandler() (*nullifierHTTP.NullifierHandler, error) {
	var err error
	c.nullifierHandlerInit.Do(func() {
		c.nullifierHandler, err = c.initNullifierHandler()
		if err != nil {
			c.initErrors["nullifierHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["nullifierHandler"]; exists {
		return nil, storedErr
	}
	return c.nullifierHandler, nil
}

func (c *Container) initNullifierRepository() (nullifierRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for nullifier repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return nullifierRepositoryPkg.NewPostgreSQLNullifierRepository(db), nil
	case "mysql":
		return nullifierRepositoryPkg.NewMySQLNullifierRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initNullifierUseCase() (nullifierUseCase.NullifierUseCase, error) {
	nullifierRepo, err := c.NullifierRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get nullifier repository for nullifier use case: %w", err)
	}

	baseUseCase := nullifierUseCase.NewNullifierUseCase(nullifierRepo)

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for nullifier use case: %w", err)
		}
		return nullifierUseCase.NewNullifierUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

func (c *Container) initNullifierHandler() (*nullifierHTTP.NullifierHandler, error) {
	useCase, err := c.NullifierUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get nullifier use case for nullifier handler: %w", err)
	}
	return nullifierHTTP.NewNullifierHandler(useCase, c.Logger()), nil
}
