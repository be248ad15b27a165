package app

import (
	"fmt"

	custodyHTTP "github.com/allisson/mist/internal/custody/http"
	custodyRepository "github.com/allisson/mist/internal/custody/repository"
	custodyService "github.com/allisson/mist/internal/custody/service"
	custodyUseCase "github.com/allisson/mist/internal/custody/usecase"
	intentUseCase "github.com/allisson/mist/internal/intent/usecase"
	ledgerDomain "github.com/allisson/mist/internal/ledger/domain"
)

// settingsRepository is the settings store, which also answers who the current Authority is.
type settingsRepository interface {
	custodyUseCase.SettingsRepository
	ledgerDomain.IdentityProvider
}

// poolRepository is shared by deposits (credit) and settlements (debit).
type poolRepository interface {
	custodyUseCase.PoolRepository
	intentUseCase.PoolRepository
}

// SettingsRepository returns the ledger settings repository based on database driver.
func (c *Container) SettingsRepository() (settingsRepository, error) {
	var err error
	c.settingsRepositoryInit.Do(func() {
		c.settingsRepository, err = c.initSettingsRepository()
		if err != nil {
			c.initErrors["settingsRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["settingsRepository"]; exists {
		return nil, storedErr
	}
	return c.settingsRepository, nil
}

// CapabilityRepository returns the admin capability repository based on database driver.
func (c *Container) CapabilityRepository() (custodyUseCase.CapabilityRepository, error) {
	var err error
	c.capabilityRepositoryInit.Do(func() {
		c.capabilityRepository, err = c.initCapabilityRepository()
		if err != nil {
			c.initErrors["capabilityRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["capabilityRepository"]; exists {
		return nil, storedErr
	}
	return c.capabilityRepository, nil
}

// PoolRepository returns the custody pool repository based on database driver.
func (c *Container) PoolRepository() (poolRepository, error) {
	var err error
	c.poolRepositoryInit.Do(func() {
		c.poolRepository, err = c.initPoolRepository()
		if err != nil {
			c.initErrors["poolRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["poolRepository"]; exists {
		return nil, storedErr
	}
	return c.poolRepository, nil
}

// DepositRecordRepository returns the deposit record repository based on database driver.
func (c *Container) DepositRecordRepository() (custodyUseCase.DepositRecordRepository, error) {
	var err error
	c.depositRecordRepositoryInit.Do(func() {
		c.depositRecordRepository, err = c.initDepositRecordRepository()
		if err != nil {
			c.initErrors["depositRecordRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["depositRecordRepository"]; exists {
		return nil, storedErr
	}
	return c.depositRecordRepository, nil
}

// CapabilityService returns the admin capability secret service.
func (c *Container) CapabilityService() custodyService.CapabilityService {
	c.capabilityServiceInit.Do(func() {
		c.capabilityService = custodyService.NewCapabilityService()
	})
	return c.capabilityService
}

// CustodyUseCase returns the custody use case.
func (c *Container) CustodyUseCase() (custodyUseCase.CustodyUseCase, error) {
	var err error
	c.custodyUseCaseInit.Do(func() {
		c.custodyUseCase, err = c.initCustodyUseCase()
		if err != nil {
			c.initErrors["custodyUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["custodyUseCase"]; exists {
		return nil, storedErr
	}
	return c.custodyUseCase, nil
}

// AdminUseCase returns the admin use case.
func (c *Container) AdminUseCase() (custodyUseCase.AdminUseCase, error) {
	var err error
	c.adminUseCaseInit.Do(func() {
		c.adminUseCase, err = c.initAdminUseCase()
		if err != nil {
			c.initErrors["adminUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["adminUseCase"]; exists {
		return nil, storedErr
	}
	return c.adminUseCase, nil
}

// CustodyHandler returns the HTTP handler for deposits and the pool.
func (c *Container) CustodyHandler() (*custodyHTTP.CustodyHandler, error) {
	var err error
	c.custodyHandlerInit.Do(func() {
		c.custodyHandler, err = c.initCustodyHandler()
		if err != nil {
			c.initErrors["custodyHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["custodyHandler"]; exists {
		return nil, storedErr
	}
	return c.custodyHandler, nil
}

// AdminHandler returns the HTTP handler for capability-gated admin operations.
func (c *Container) AdminHandler() (*custodyHTTP.AdminHandler, error) {
	var err error
	c.adminHandlerInit.Do(func() {
		c.adminHandler, err = c.initAdminHandler()
		if err != nil {
			c.initErrors["adminHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["adminHandler"]; exists {
		return nil, storedErr
	}
	return c.adminHandler, nil
}

func (c *Container) initSettingsRepository() (settingsRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for settings repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return custodyRepository.NewPostgreSQLSettingsRepository(db), nil
	case "mysql":
		return custodyRepository.NewMySQLSettingsRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initCapabilityRepository() (custodyUseCase.CapabilityRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for capability repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return custodyRepository.NewPostgreSQLCapabilityRepository(db), nil
	case "mysql":
		return custodyRepository.NewMySQLCapabilityRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initPoolRepository() (poolRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for pool repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return custodyRepository.NewPostgreSQLPoolRepository(db), nil
	case "mysql":
		return custodyRepository.NewMySQLPoolRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initDepositRecordRepository() (custodyUseCase.DepositRecordRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for deposit record repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return custodyRepository.NewPostgreSQLDepositRecordRepository(db), nil
	case "mysql":
		return custodyRepository.NewMySQLDepositRecordRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initCustodyUseCase() (custodyUseCase.CustodyUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for custody use case: %w", err)
	}

	settingsRepo, err := c.SettingsRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get settings repository for custody use case: %w", err)
	}

	poolRepo, err := c.PoolRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get pool repository for custody use case: %w", err)
	}

	depositRecordRepo, err := c.DepositRecordRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get deposit record repository for custody use case: %w", err)
	}

	publisher, err := c.Publisher()
	if err != nil {
		return nil, fmt.Errorf("failed to get publisher for custody use case: %w", err)
	}

	baseUseCase := custodyUseCase.NewCustodyUseCase(
		txManager,
		settingsRepo,
		poolRepo,
		depositRecordRepo,
		settingsRepo,
		publisher,
	)

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for custody use case: %w", err)
		}
		return custodyUseCase.NewCustodyUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

func (c *Container) initAdminUseCase() (custodyUseCase.AdminUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for admin use case: %w", err)
	}

	settingsRepo, err := c.SettingsRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get settings repository for admin use case: %w", err)
	}

	capabilityRepo, err := c.CapabilityRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get capability repository for admin use case: %w", err)
	}

	poolRepo, err := c.PoolRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get pool repository for admin use case: %w", err)
	}

	publisher, err := c.Publisher()
	if err != nil {
		return nil, fmt.Errorf("failed to get publisher for admin use case: %w", err)
	}

	baseUseCase := custodyUseCase.NewAdminUseCase(
		txManager,
		settingsRepo,
		capabilityRepo,
		poolRepo,
		c.CapabilityService(),
		publisher,
	)

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for admin use case: %w", err)
		}
		return custodyUseCase.NewAdminUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

func (c *Container) initCustodyHandler() (*custodyHTTP.CustodyHandler, error) {
	useCase, err := c.CustodyUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get custody use case for custody handler: %w", err)
	}
	return custodyHTTP.NewCustodyHandler(useCase, c.Logger()), nil
}

func (c *Container) initAdminHandler() (*custodyHTTP.AdminHandler, error) {
	useCase, err := c.AdminUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get admin use case for admin handler: %w", err)
	}
	return custodyHTTP.NewAdminHandler(useCase, c.Logger()), nil
}
