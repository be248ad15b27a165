package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	custodyDomain "github.com/allisson/mist/internal/custody/domain"
	ledgerDomain "github.com/allisson/mist/internal/ledger/domain"
	"github.com/allisson/mist/internal/metrics"
)

// custodyUseCaseWithMetrics decorates CustodyUseCase with metrics instrumentation.
type custodyUseCaseWithMetrics struct {
	next    CustodyUseCase
	metrics metrics.BusinessMetrics
}

// NewCustodyUseCaseWithMetrics wraps a CustodyUseCase with metrics recording.
func NewCustodyUseCaseWithMetrics(useCase CustodyUseCase, m metrics.BusinessMetrics) CustodyUseCase {
	return &custodyUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (c *custodyUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	c.metrics.RecordOperation(ctx, "custody", operation, status)
	c.metrics.RecordDuration(ctx, "custody", operation, time.Since(start), status)
}

// Deposit records metrics for deposit operations.
func (c *custodyUseCaseWithMetrics) Deposit(
	ctx context.Context,
	payment ledgerDomain.Funds,
	encryptedPayload []byte,
) (*custodyDomain.DepositRecord, error) {
	start := time.Now()
	record, err := c.next.Deposit(ctx, payment, encryptedPayload)
	c.record(ctx, "deposit", start, err)
	return record, err
}

// GetPool records metrics for pool reads.
func (c *custodyUseCaseWithMetrics) GetPool(ctx context.Context) (*custodyDomain.Pool, error) {
	start := time.Now()
	pool, err := c.next.GetPool(ctx)
	c.record(ctx, "pool_get", start, err)
	return pool, err
}

// GetDepositRecord records metrics for deposit record reads.
func (c *custodyUseCaseWithMetrics) GetDepositRecord(
	ctx context.Context,
	id uuid.UUID,
) (*custodyDomain.DepositRecord, error) {
	start := time.Now()
	record, err := c.next.GetDepositRecord(ctx, id)
	c.record(ctx, "deposit_record_get", start, err)
	return record, err
}

// ListDepositRecords records metrics for deposit record listings.
func (c *custodyUseCaseWithMetrics) ListDepositRecords(
	ctx context.Context,
	offset, limit int,
) ([]*custodyDomain.DepositRecord, error) {
	start := time.Now()
	records, err := c.next.ListDepositRecords(ctx, offset, limit)
	c.record(ctx, "deposit_record_list", start, err)
	return records, err
}

// ConsumeDepositRecord records metrics for deposit record cleanup.
func (c *custodyUseCaseWithMetrics) ConsumeDepositRecord(
	ctx context.Context,
	caller ledgerDomain.Identity,
	id uuid.UUID,
) error {
	start := time.Now()
	err := c.next.ConsumeDepositRecord(ctx, caller, id)
	c.record(ctx, "deposit_record_consume", start, err)
	return err
}

// adminUseCaseWithMetrics decorates AdminUseCase with metrics instrumentation.
type adminUseCaseWithMetrics struct {
	next    AdminUseCase
	metrics metrics.BusinessMetrics
}

// NewAdminUseCaseWithMetrics wraps an AdminUseCase with metrics recording.
func NewAdminUseCaseWithMetrics(useCase AdminUseCase, m metrics.BusinessMetrics) AdminUseCase {
	return &adminUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (a *adminUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "admin", operation, status)
	a.metrics.RecordDuration(ctx, "admin", operation, time.Since(start), status)
}

// InitLedger records metrics for ledger initialization.
func (a *adminUseCaseWithMetrics) InitLedger(ctx context.Context, authority ledgerDomain.Identity) (string, error) {
	start := time.Now()
	capability, err := a.next.InitLedger(ctx, authority)
	a.record(ctx, "ledger_init", start, err)
	return capability, err
}

// VerifyCapability records metrics for capability checks.
func (a *adminUseCaseWithMetrics) VerifyCapability(ctx context.Context, capability string) error {
	start := time.Now()
	err := a.next.VerifyCapability(ctx, capability)
	a.record(ctx, "capability_verify", start, err)
	return err
}

// SetPause records metrics for pause toggles.
func (a *adminUseCaseWithMetrics) SetPause(ctx context.Context, capability string, paused bool) error {
	start := time.Now()
	err := a.next.SetPause(ctx, capability, paused)
	a.record(ctx, "pause_set", start, err)
	return err
}

// RotateAuthority records metrics for authority rotation.
func (a *adminUseCaseWithMetrics) RotateAuthority(
	ctx context.Context,
	capability string,
	authority ledgerDomain.Identity,
) error {
	start := time.Now()
	err := a.next.RotateAuthority(ctx, capability, authority)
	a.record(ctx, "authority_rotate", start, err)
	return err
}

// TopUp records metrics for admin top-ups.
func (a *adminUseCaseWithMetrics) TopUp(ctx context.Context, capability string, payment ledgerDomain.Funds) error {
	start := time.Now()
	err := a.next.TopUp(ctx, capability, payment)
	a.record(ctx, "pool_top_up", start, err)
	return err
}
