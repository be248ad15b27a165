package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	intentDomain "github.com/allisson/mist/internal/intent/domain"
	ledgerDomain "github.com/allisson/mist/internal/ledger/domain"
	"github.com/allisson/mist/internal/metrics"
)

// intentUseCaseWithMetrics decorates IntentUseCase with metrics instrumentation.
type intentUseCaseWithMetrics struct {
	next    IntentUseCase
	metrics metrics.BusinessMetrics
}

// NewIntentUseCaseWithMetrics wraps an IntentUseCase with metrics recording.
func NewIntentUseCaseWithMetrics(useCase IntentUseCase, m metrics.BusinessMetrics) IntentUseCase {
	return &intentUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (i *intentUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	i.metrics.RecordOperation(ctx, "intents", operation, status)
	i.metrics.RecordDuration(ctx, "intents", operation, time.Since(start), status)
}

// CreateIntent records metrics for intent creation.
func (i *intentUseCaseWithMetrics) CreateIntent(
	ctx context.Context,
	encryptedPayload []byte,
	assetIn, assetOut ledgerDomain.AssetType,
	deadline time.Time,
) (*intentDomain.SwapIntent, error) {
	start := time.Now()
	intent, err := i.next.CreateIntent(ctx, encryptedPayload, assetIn, assetOut, deadline)
	i.record(ctx, "intent_create", start, err)
	return intent, err
}

// GetIntent records metrics for intent reads.
func (i *intentUseCaseWithMetrics) GetIntent(ctx context.Context, id uuid.UUID) (*intentDomain.SwapIntent, error) {
	start := time.Now()
	intent, err := i.next.GetIntent(ctx, id)
	i.record(ctx, "intent_get", start, err)
	return intent, err
}

// ListIntents records metrics for intent listings.
func (i *intentUseCaseWithMetrics) ListIntents(
	ctx context.Context,
	offset, limit int,
) ([]*intentDomain.SwapIntent, error) {
	start := time.Now()
	intents, err := i.next.ListIntents(ctx, offset, limit)
	i.record(ctx, "intent_list", start, err)
	return intents, err
}

// SettleDirect records metrics for direct settlements.
func (i *intentUseCaseWithMetrics) SettleDirect(
	ctx context.Context,
	caller ledgerDomain.Identity,
	intentID uuid.UUID,
	nullifier ledgerDomain.Nullifier,
	legs []intentDomain.Leg,
) (*intentDomain.Settlement, error) {
	start := time.Now()
	settlement, err := i.next.SettleDirect(ctx, caller, intentID, nullifier, legs)
	i.record(ctx, "settle_direct", start, err)
	return settlement, err
}

// SettleViaExternalVenue records metrics for external venue withdrawals.
func (i *intentUseCaseWithMetrics) SettleViaExternalVenue(
	ctx context.Context,
	caller ledgerDomain.Identity,
	intentID uuid.UUID,
	nullifier ledgerDomain.Nullifier,
	amount uint64,
) (ledgerDomain.Funds, error) {
	start := time.Now()
	funds, err := i.next.SettleViaExternalVenue(ctx, caller, intentID, nullifier, amount)
	i.record(ctx, "settle_external_venue", start, err)
	return funds, err
}

// CancelExpired records metrics for expiry cancellations.
func (i *intentUseCaseWithMetrics) CancelExpired(
	ctx context.Context,
	caller ledgerDomain.Identity,
	intentID uuid.UUID,
) error {
	start := time.Now()
	err := i.next.CancelExpired(ctx, caller, intentID)
	i.record(ctx, "intent_cancel_expired", start, err)
	return err
}
