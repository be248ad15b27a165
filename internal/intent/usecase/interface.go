// Package usecase implements the swap intent lifecycle and both settlement entry points.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	intentDomain "github.com/allisson/mist/internal/intent/domain"
	ledgerDomain "github.com/allisson/mist/internal/ledger/domain"
)

// IntentRepository persists swap intents.
type IntentRepository interface {
	Create(ctx context.Context, intent *intentDomain.SwapIntent) error
	Get(ctx context.Context, id uuid.UUID) (*intentDomain.SwapIntent, error)
	List(ctx context.Context, offset, limit int) ([]*intentDomain.SwapIntent, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// NullifierRepository is the spent-nullifier registry.
type NullifierRepository interface {
	// Insert records hash as spent, failing with ErrNullifierSpent if it already is.
	// The check and the insert are one atomic statement.
	Insert(ctx context.Context, hash ledgerDomain.NullifierHash, spentAt time.Time) error
}

// PoolRepository debits the custody pool.
type PoolRepository interface {
	// Debit subtracts amount from the asset balance, failing with ErrInsufficientBalance
	// when the balance cannot cover it.
	Debit(ctx context.Context, asset ledgerDomain.AssetType, amount uint64, updatedAt time.Time) error
}

// DisbursementRepository persists on-ledger credits to destinations.
type DisbursementRepository interface {
	Create(ctx context.Context, disbursement *intentDomain.Disbursement) error
}

// EventPublisher appends an event to the outbox within the caller's transaction.
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, payload any) error
}

// IntentUseCase drives swap intents from creation to settlement or expiry.
type IntentUseCase interface {
	// CreateIntent publishes a new intent. Anyone may call it.
	CreateIntent(
		ctx context.Context,
		encryptedPayload []byte,
		assetIn, assetOut ledgerDomain.AssetType,
		deadline time.Time,
	) (*intentDomain.SwapIntent, error)

	GetIntent(ctx context.Context, id uuid.UUID) (*intentDomain.SwapIntent, error)
	ListIntents(ctx context.Context, offset, limit int) ([]*intentDomain.SwapIntent, error)

	// SettleDirect spends nullifier and disburses the intent's input asset to the given
	// destinations on this ledger. Authority only, on or before the deadline.
	SettleDirect(
		ctx context.Context,
		caller ledgerDomain.Identity,
		intentID uuid.UUID,
		nullifier ledgerDomain.Nullifier,
		legs []intentDomain.Leg,
	) (*intentDomain.Settlement, error)

	// SettleViaExternalVenue spends nullifier and hands amount of the intent's input asset
	// to the Authority for routing through a venue outside the ledger. The ledger does not
	// track what the Authority does with the funds afterwards.
	SettleViaExternalVenue(
		ctx context.Context,
		caller ledgerDomain.Identity,
		intentID uuid.UUID,
		nullifier ledgerDomain.Nullifier,
		amount uint64,
	) (ledgerDomain.Funds, error)

	// CancelExpired deletes an intent whose deadline has passed. Authority only.
	CancelExpired(ctx context.Context, caller ledgerDomain.Identity, intentID uuid.UUID) error
}
