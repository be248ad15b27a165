// Package usecase writes ledger events to the outbox and relays them to the indexer.
package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/allisson/mist/internal/database"
	"github.com/allisson/mist/internal/outbox/domain"
)

// Config holds outbox relay configuration.
type Config struct {
	Interval   time.Duration
	BatchSize  int
	MaxRetries int
}

// OutboxEventRepository defines outbox event repository operations.
type OutboxEventRepository interface {
	Create(ctx context.Context, event *domain.OutboxEvent) error
	GetPendingEvents(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	Update(ctx context.Context, event *domain.OutboxEvent) error
}

// EventProcessor delivers a single outbox event.
type EventProcessor interface {
	Process(ctx context.Context, event *domain.OutboxEvent) error
}

// UseCase defines the outbox relay.
type UseCase interface {
	Start(ctx context.Context) error
	ProcessEvents(ctx context.Context) error
}

// OutboxUseCase relays pending outbox events on a fixed interval.
type OutboxUseCase struct {
	config         Config
	txManager      database.TxManager
	outboxRepo     OutboxEventRepository
	eventProcessor EventProcessor
	logger         *slog.Logger
}

// NewOutboxUseCase creates a new OutboxUseCase.
func NewOutboxUseCase(
	config Config,
	txManager database.TxManager,
	outboxRepo OutboxEventRepository,
	eventProcessor EventProcessor,
	logger *slog.Logger,
) *OutboxUseCase {
	return &OutboxUseCase{
		config:         config,
		txManager:      txManager,
		outboxRepo:     outboxRepo,
		eventProcessor: eventProcessor,
		logger:         logger,
	}
}

// Start runs the relay loop until ctx is cancelled.
func (uc *OutboxUseCase) Start(ctx context.Context) error {
	if uc.logger != nil {
		uc.logger.Info("starting outbox relay",
			slog.Duration("interval", uc.config.Interval),
			slog.Int("batch_size", uc.config.BatchSize),
		)
	}

	ticker := time.NewTicker(uc.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if uc.logger != nil {
				uc.logger.Info("stopping outbox relay")
			}
			return ctx.Err()
		case <-ticker.C:
			if err := uc.ProcessEvents(ctx); err != nil && uc.logger != nil {
				uc.logger.Error("failed to process outbox events", slog.Any("error", err))
			}
		}
	}
}

// ProcessEvents relays one batch of pending events in a transaction. A failing event is
// retried on later batches until MaxRetries, then marked failed.
func (uc *OutboxUseCase) ProcessEvents(ctx context.Context) error {
	return uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		events, err := uc.outboxRepo.GetPendingEvents(ctx, uc.config.BatchSize)
		if err != nil {
			return err
		}

		for _, event := range events {
			now := time.Now().UTC()

			if err := uc.eventProcessor.Process(ctx, event); err != nil {
				if uc.logger != nil {
					uc.logger.Error("failed to relay outbox event",
						slog.String("event_id", event.ID.String()),
						slog.String("event_type", event.EventType),
						slog.Any("error", err),
					)
				}
				event.MarkFailed(err, uc.config.MaxRetries, now)
			} else {
				event.MarkProcessed(now)
			}

			if err := uc.outboxRepo.Update(ctx, event); err != nil {
				return err
			}
		}

		return nil
	})
}
