package app

import (
	"fmt"

	intentHTTP "github.com/allisson/mist/internal/intent/http"
	intentRepository "github.com/allisson/mist/internal/intent/repository"
	intentUseCase "github.com/allisson/mist/internal/intent/usecase"
)

// IntentRepository returns the swap intent repository based on database driver.
func (c *Container) IntentRepository() (intentUseCase.IntentRepository, error) {
	var err error
	c.intentRepositoryInit.Do(func() {
		c.intentRepository, err = c.initIntentRepository()
		if err != nil {
			c.initErrors["intentRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["intentRepository"]; exists {
		return nil, storedErr
	}
	return c.intentRepository, nil
}

// DisbursementRepository returns the disbursement repository based on database driver.
func (c *Container) DisbursementRepository() (intentUseCase.DisbursementRepository, error) {
	var err error
	c.disbursementRepositoryInit.Do(func() {
		c.disbursementRepository, err = c.initDisbursementRepository()
		if err != nil {
			c.initErrors["disbursementRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["disbursementRepository"]; exists {
		return nil, storedErr
	}
	return c.disbursementRepository, nil
}

// IntentUseCase returns the swap intent use case.
func (c *Container) IntentUseCase() (intentUseCase.IntentUseCase, error) {
	var err error
	c.intentUseCaseInit.Do(func() {
		c.intentUseCase, err = c.initIntentUseCase()
		if err != nil {
			c.initErrors["intentUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["intentUseCase"]; exists {
		return nil, storedErr
	}
	return c.intentUseCase, nil
}

// IntentHandler returns the HTTP handler for swap intents and settlement.
func (c *Container) IntentHandler() (*intentHTTP.IntentHandler, error) {
	var err error
	c.intentHandlerInit.Do(func() {
		c.intentHandler, err = c.initIntentHandler()
		if err != nil {
			c.initErrors["intentHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["intentHandler"]; exists {
		return nil, storedErr
	}
	return c.intentHandler, nil
}

func (c *Container) initIntentRepository() (intentUseCase.IntentRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for intent repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return intentRepository.NewPostgreSQLIntentRepository(db), nil
	case "mysql":
		return intentRepository.NewMySQLIntentRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initDisbursementRepository() (intentUseCase.DisbursementRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for disbursement repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return intentRepository.NewPostgreSQLDisbursementRepository(db), nil
	case "mysql":
		return intentRepository.NewMySQLDisbursementRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initIntentUseCase() (intentUseCase.IntentUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for intent use case: %w", err)
	}

	intentRepo, err := c.IntentRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get intent repository for intent use case: %w", err)
	}

	nullifierRepo, err := c.NullifierRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get nullifier repository for intent use case: %w", err)
	}

	poolRepo, err := c.PoolRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get pool repository for intent use case: %w", err)
	}

	disbursementRepo, err := c.DisbursementRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get disbursement repository for intent use case: %w", err)
	}

	settingsRepo, err := c.SettingsRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get settings repository for intent use case: %w", err)
	}

	publisher, err := c.Publisher()
	if err != nil {
		return nil, fmt.Errorf("failed to get publisher for intent use case: %w", err)
	}

	baseUseCase := intentUseCase.NewIntentUseCase(
		txManager,
		intentRepo,
		nullifierRepo,
		poolRepo,
		disbursementRepo,
		settingsRepo,
		publisher,
	)

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for intent use case: %w", err)
		}
		return intentUseCase.NewIntentUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

func (c *Container) initIntentHandler() (*intentHTTP.IntentHandler, error) {
	useCase, err := c.IntentUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get intent use case for intent handler: %w", err)
	}
	return intentHTTP.NewIntentHandler(useCase, c.Logger()), nil
}
