package usecase

import (
	"context"
	"time"

	"github.com/allisson/mist/internal/outbox/domain"
)

// Publisher appends ledger events to the outbox. Called inside a ledger transaction, the
// event commits or rolls back together with the state change it describes.
type Publisher struct {
	outboxRepo OutboxEventRepository
}

// NewPublisher creates a Publisher.
func NewPublisher(outboxRepo OutboxEventRepository) *Publisher {
	return &Publisher{outboxRepo: outboxRepo}
}

// Publish encodes payload as JSON and stores it as a pending outbox event.
func (p *Publisher) Publish(ctx context.Context, eventType string, payload any) error {
	event, err := domain.NewOutboxEvent(eventType, payload, time.Now().UTC())
	if err != nil {
		return err
	}
	return p.outboxRepo.Create(ctx, event)
}
