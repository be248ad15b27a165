// Package domain defines the outbox event that carries ledger events to the external indexer.
package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// OutboxEventStatus is the relay state of an outbox event.
type OutboxEventStatus string

const (
	OutboxEventStatusPending   OutboxEventStatus = "pending"
	OutboxEventStatusProcessed OutboxEventStatus = "processed"
	OutboxEventStatusFailed    OutboxEventStatus = "failed"
)

// OutboxEvent is a ledger event written in the same transaction as the state change it
// describes and relayed afterwards.
type OutboxEvent struct {
	ID          uuid.UUID
	EventType   string
	Payload     string
	Status      OutboxEventStatus
	Retries     int
	LastError   *string
	ProcessedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewOutboxEvent builds a pending event with payload encoded as JSON.
func NewOutboxEvent(eventType string, payload any, now time.Time) (*OutboxEvent, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &OutboxEvent{
		ID:        uuid.Must(uuid.NewV7()),
		EventType: eventType,
		Payload:   string(data),
		Status:    OutboxEventStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// MarkProcessed records a successful relay.
func (e *OutboxEvent) MarkProcessed(now time.Time) {
	e.Status = OutboxEventStatusProcessed
	e.ProcessedAt = &now
	e.UpdatedAt = now
}

// MarkFailed records a relay failure. The event is given up on once maxRetries is reached.
func (e *OutboxEvent) MarkFailed(err error, maxRetries int, now time.Time) {
	e.Retries++
	msg := err.Error()
	e.LastError = &msg
	e.UpdatedAt = now
	if e.Retries >= maxRetries {
		e.Status = OutboxEventStatusFailed
	}
}
