package usecase

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/allisson/mist/internal/outbox/domain"
)

// LedgerEventProcessor relays ledger events to the structured log, where the external
// indexer picks them up. Event payloads hold no encrypted payloads and no raw nullifiers.
type LedgerEventProcessor struct {
	logger *slog.Logger
}

// NewLedgerEventProcessor creates a LedgerEventProcessor.
func NewLedgerEventProcessor(logger *slog.Logger) *LedgerEventProcessor {
	return &LedgerEventProcessor{logger: logger}
}

// Process validates the payload and emits it as a "ledger event" log record.
func (p *LedgerEventProcessor) Process(ctx context.Context, event *domain.OutboxEvent) error {
	var payload map[string]any
	if err := json.Unmarshal([]byte(event.Payload), &payload); err != nil {
		return err
	}

	if p.logger != nil {
		p.logger.InfoContext(ctx, "ledger event",
			slog.String("event_id", event.ID.String()),
			slog.String("event_type", event.EventType),
			slog.Time("created_at", event.CreatedAt),
			slog.Any("payload", payload),
		)
	}

	return nil
}
