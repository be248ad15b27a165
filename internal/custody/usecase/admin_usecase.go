package usecase

import (
	"context"
	"time"

	custodyDomain "github.com/allisson/mist/internal/custody/domain"
	"github.com/allisson/mist/internal/custody/service"
	"github.com/allisson/mist/internal/database"
	apperrors "github.com/allisson/mist/internal/errors"
	ledgerDomain "github.com/allisson/mist/internal/ledger/domain"
)

type adminUseCase struct {
	txManager         database.TxManager
	settingsRepo      SettingsRepository
	capabilityRepo    CapabilityRepository
	poolRepo          PoolRepository
	capabilityService service.CapabilityService
	publisher         EventPublisher
	now               func() time.Time
}

// NewAdminUseCase creates an AdminUseCase.
func NewAdminUseCase(
	txManager database.TxManager,
	settingsRepo SettingsRepository,
	capabilityRepo CapabilityRepository,
	poolRepo PoolRepository,
	capabilityService service.CapabilityService,
	publisher EventPublisher,
) AdminUseCase {
	return &adminUseCase{
		txManager:         txManager,
		settingsRepo:      settingsRepo,
		capabilityRepo:    capabilityRepo,
		poolRepo:          poolRepo,
		capabilityService: capabilityService,
		publisher:         publisher,
		now:               func() time.Time { return time.Now().UTC() },
	}
}

func (a *adminUseCase) InitLedger(ctx context.Context, authority ledgerDomain.Identity) (string, error) {
	if authority.IsZero() {
		return "", ledgerDomain.ErrInvalidIdentity
	}

	plainSecret, hashedSecret, err := a.capabilityService.Generate()
	if err != nil {
		return "", err
	}

	now := a.now()
	err = a.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := a.settingsRepo.Create(ctx, &custodyDomain.Settings{
			Authority: authority,
			Paused:    false,
			CreatedAt: now,
			UpdatedAt: now,
		}); err != nil {
			return err
		}

		if err := a.capabilityRepo.Create(ctx, &custodyDomain.AdminCapability{
			SecretHash: hashedSecret,
			CreatedAt:  now,
		}); err != nil {
			return err
		}

		return a.publisher.Publish(ctx, ledgerDomain.EventAuthorityRotated, ledgerDomain.AuthorityRotated{
			Authority: authority,
		})
	})
	if err != nil {
		return "", err
	}

	return plainSecret, nil
}

func (a *adminUseCase) VerifyCapability(ctx context.Context, capability string) error {
	if capability == "" {
		return ledgerDomain.ErrNotAuthorized
	}

	stored, err := a.capabilityRepo.Get(ctx)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return ledgerDomain.ErrNotAuthorized
		}
		return err
	}

	if !a.capabilityService.Verify(capability, stored.SecretHash) {
		return ledgerDomain.ErrNotAuthorized
	}
	return nil
}

func (a *adminUseCase) SetPause(ctx context.Context, capability string, paused bool) error {
	if err := a.VerifyCapability(ctx, capability); err != nil {
		return err
	}

	return a.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := a.settingsRepo.SetPaused(ctx, paused, a.now()); err != nil {
			return err
		}
		return a.publisher.Publish(ctx, ledgerDomain.EventPauseChanged, ledgerDomain.PauseChanged{
			Paused: paused,
		})
	})
}

func (a *adminUseCase) RotateAuthority(
	ctx context.Context,
	capability string,
	authority ledgerDomain.Identity,
) error {
	if err := a.VerifyCapability(ctx, capability); err != nil {
		return err
	}
	if authority.IsZero() {
		return ledgerDomain.ErrInvalidIdentity
	}

	return a.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := a.settingsRepo.SetAuthority(ctx, authority, a.now()); err != nil {
			return err
		}
		return a.publisher.Publish(ctx, ledgerDomain.EventAuthorityRotated, ledgerDomain.AuthorityRotated{
			Authority: authority,
		})
	})
}

func (a *adminUseCase) TopUp(ctx context.Context, capability string, payment ledgerDomain.Funds) error {
	if err := a.VerifyCapability(ctx, capability); err != nil {
		return err
	}
	if err := payment.Validate(); err != nil {
		return err
	}

	return a.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := a.poolRepo.Credit(ctx, payment.Asset, payment.Amount, a.now()); err != nil {
			return err
		}
		return a.publisher.Publish(ctx, ledgerDomain.EventPoolToppedUp, ledgerDomain.PoolToppedUp{
			AssetType: payment.Asset,
			Amount:    payment.Amount,
		})
	})
}
