package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	custodyDomain "github.com/allisson/mist/internal/custody/domain"
	"github.com/allisson/mist/internal/database"
	ledgerDomain "github.com/allisson/mist/internal/ledger/domain"
)

type custodyUseCase struct {
	txManager        database.TxManager
	settingsRepo     SettingsRepository
	poolRepo         PoolRepository
	depositRepo      DepositRecordRepository
	identityProvider ledgerDomain.IdentityProvider
	publisher        EventPublisher
	now              func() time.Time
}

// NewCustodyUseCase creates a CustodyUseCase.
func NewCustodyUseCase(
	txManager database.TxManager,
	settingsRepo SettingsRepository,
	poolRepo PoolRepository,
	depositRepo DepositRecordRepository,
	identityProvider ledgerDomain.IdentityProvider,
	publisher EventPublisher,
) CustodyUseCase {
	return &custodyUseCase{
		txManager:        txManager,
		settingsRepo:     settingsRepo,
		poolRepo:         poolRepo,
		depositRepo:      depositRepo,
		identityProvider: identityProvider,
		publisher:        publisher,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

func (c *custodyUseCase) Deposit(
	ctx context.Context,
	payment ledgerDomain.Funds,
	encryptedPayload []byte,
) (*custodyDomain.DepositRecord, error) {
	if err := payment.Validate(); err != nil {
		return nil, err
	}
	if len(encryptedPayload) > ledgerDomain.MaxPayloadSize {
		return nil, ledgerDomain.ErrPayloadTooLarge
	}

	record := &custodyDomain.DepositRecord{
		ID:               uuid.Must(uuid.NewV7()),
		AssetType:        payment.Asset,
		Amount:           payment.Amount,
		EncryptedPayload: encryptedPayload,
		CreatedAt:        c.now(),
	}

	err := c.txManager.WithTx(ctx, func(ctx context.Context) error {
		settings, err := c.settingsRepo.Get(ctx)
		if err != nil {
			return err
		}
		if settings.Paused {
			return ledgerDomain.ErrPaused
		}

		if err := c.poolRepo.Credit(ctx, payment.Asset, payment.Amount, record.CreatedAt); err != nil {
			return err
		}

		if err := c.depositRepo.Create(ctx, record); err != nil {
			return err
		}

		return c.publisher.Publish(ctx, ledgerDomain.EventDepositObserved, ledgerDomain.DepositObserved{
			RecordID:  record.ID,
			AssetType: record.AssetType,
			Amount:    record.Amount,
		})
	})
	if err != nil {
		return nil, err
	}

	return record, nil
}

func (c *custodyUseCase) GetPool(ctx context.Context) (*custodyDomain.Pool, error) {
	settings, err := c.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	balances, err := c.poolRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	return &custodyDomain.Pool{
		Authority: settings.Authority,
		Paused:    settings.Paused,
		Balances:  balances,
	}, nil
}

func (c *custodyUseCase) GetDepositRecord(ctx context.Context, id uuid.UUID) (*custodyDomain.DepositRecord, error) {
	return c.depositRepo.Get(ctx, id)
}

func (c *custodyUseCase) ListDepositRecords(
	ctx context.Context,
	offset, limit int,
) ([]*custodyDomain.DepositRecord, error) {
	return c.depositRepo.List(ctx, offset, limit)
}

func (c *custodyUseCase) ConsumeDepositRecord(ctx context.Context, caller ledgerDomain.Identity, id uuid.UUID) error {
	return c.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := ledgerDomain.RequireAuthority(ctx, c.identityProvider, caller); err != nil {
			return err
		}

		if err := c.depositRepo.Delete(ctx, id); err != nil {
			return err
		}

		return c.publisher.Publish(ctx, ledgerDomain.EventDepositConsumed, ledgerDomain.DepositConsumed{
			RecordID: id,
		})
	})
}
