// Package usecase implements the custody pool: deposits, deposit records, the pool view and
// the admin control surface guarded by the admin capability.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	custodyDomain "github.com/allisson/mist/internal/custody/domain"
	ledgerDomain "github.com/allisson/mist/internal/ledger/domain"
)

// SettingsRepository persists the singleton ledger settings row.
type SettingsRepository interface {
	Create(ctx context.Context, settings *custodyDomain.Settings) error
	Get(ctx context.Context) (*custodyDomain.Settings, error)
	SetPaused(ctx context.Context, paused bool, updatedAt time.Time) error
	SetAuthority(ctx context.Context, authority ledgerDomain.Identity, updatedAt time.Time) error
}

// CapabilityRepository persists the admin capability hash.
type CapabilityRepository interface {
	Create(ctx context.Context, capability *custodyDomain.AdminCapability) error
	Get(ctx context.Context) (*custodyDomain.AdminCapability, error)
}

// PoolRepository persists per-asset pool balances.
type PoolRepository interface {
	Credit(ctx context.Context, asset ledgerDomain.AssetType, amount uint64, updatedAt time.Time) error
	List(ctx context.Context) ([]*custodyDomain.PoolBalance, error)
}

// DepositRecordRepository persists deposit records.
type DepositRecordRepository interface {
	Create(ctx context.Context, record *custodyDomain.DepositRecord) error
	Get(ctx context.Context, id uuid.UUID) (*custodyDomain.DepositRecord, error)
	List(ctx context.Context, offset, limit int) ([]*custodyDomain.DepositRecord, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// EventPublisher appends an event to the outbox within the caller's transaction.
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, payload any) error
}

// CustodyUseCase is the public and Authority-facing surface of the custody pool.
type CustodyUseCase interface {
	// Deposit credits payment into the pool and issues an identity-free deposit record.
	// Returns ErrPaused while the pool is paused.
	Deposit(
		ctx context.Context,
		payment ledgerDomain.Funds,
		encryptedPayload []byte,
	) (*custodyDomain.DepositRecord, error)

	GetPool(ctx context.Context) (*custodyDomain.Pool, error)
	GetDepositRecord(ctx context.Context, id uuid.UUID) (*custodyDomain.DepositRecord, error)
	ListDepositRecords(ctx context.Context, offset, limit int) ([]*custodyDomain.DepositRecord, error)

	// ConsumeDepositRecord removes a record after settlement. Authority only; no balance effect.
	ConsumeDepositRecord(ctx context.Context, caller ledgerDomain.Identity, id uuid.UUID) error
}

// AdminUseCase is the admin control surface. Every mutating call requires the plaintext
// admin capability minted by InitLedger.
type AdminUseCase interface {
	// InitLedger registers the first Authority and mints the admin capability. The returned
	// secret is never stored and cannot be recovered.
	InitLedger(ctx context.Context, authority ledgerDomain.Identity) (string, error)

	VerifyCapability(ctx context.Context, capability string) error
	SetPause(ctx context.Context, capability string, paused bool) error
	RotateAuthority(ctx context.Context, capability string, authority ledgerDomain.Identity) error
	TopUp(ctx context.Context, capability string, payment ledgerDomain.Funds) error
}
