package app

import (
	"fmt"

	outboxRepository "github.com/allisson/mist/internal/outbox/repository"
	outboxUseCase "github.com/allisson/mist/internal/outbox/usecase"
)

// OutboxRepository returns the outbox event repository based on database driver.
func (c *Container) OutboxRepository() (outboxUseCase.OutboxEventRepository, error) {
	var err error
	c.outboxRepositoryInit.Do(func() {
		c.outboxRepository, err = c.initOutboxRepository()
		if err != nil {
			c.initErrors["outboxRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["outboxRepository"]; exists {
		return nil, storedErr
	}
	return c.outboxRepository, nil
}

// Publisher returns the event publisher used by the ledger use cases.
func (c *Container) Publisher() (*outboxUseCase.Publisher, error) {
	var err error
	c.publisherInit.Do(func() {
		var repo outboxUseCase.OutboxEventRepository
		repo, err = c.OutboxRepository()
		if err != nil {
			c.initErrors["publisher"] = err
			return
		}
		c.publisher = outboxUseCase.NewPublisher(repo)
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["publisher"]; exists {
		return nil, storedErr
	}
	return c.publisher, nil
}

// OutboxUseCase returns the outbox relay that drains ledger events.
func (c *Container) OutboxUseCase() (outboxUseCase.UseCase, error) {
	var err error
	c.outboxUseCaseInit.Do(func() {
		c.outboxUseCase, err = c.initOutboxUseCase()
		if err != nil {
			c.initErrors["outboxUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["outboxUseCase"]; exists {
		return nil, storedErr
	}
	return c.outboxUseCase, nil
}

func (c *Container) initOutboxRepository() (outboxUseCase.OutboxEventRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for outbox repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return outboxRepository.NewPostgreSQLOutboxEventRepository(db), nil
	case "mysql":
		return outboxRepository.NewMySQLOutboxEventRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initOutboxUseCase() (outboxUseCase.UseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for outbox use case: %w", err)
	}

	outboxRepo, err := c.OutboxRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get outbox repository for outbox use case: %w", err)
	}

	logger := c.Logger()
	useCase := outboxUseCase.NewOutboxUseCase(
		outboxUseCase.Config{
			Interval:   c.config.OutboxInterval,
			BatchSize:  c.config.OutboxBatchSize,
			MaxRetries: c.config.OutboxMaxRetries,
		},
		txManager,
		outboxRepo,
		outboxUseCase.NewLedgerEventProcessor(logger),
		logger,
	)

	return useCase, nil
}
