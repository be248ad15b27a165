package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/mist/internal/database"
	intentDomain "github.com/allisson/mist/internal/intent/domain"
	ledgerDomain "github.com/allisson/mist/internal/ledger/domain"
)

type intentUseCase struct {
	txManager        database.TxManager
	intentRepo       IntentRepository
	nullifierRepo    NullifierRepository
	poolRepo         PoolRepository
	disbursementRepo DisbursementRepository
	identityProvider ledgerDomain.IdentityProvider
	publisher        EventPublisher
	now              func() time.Time
}

// NewIntentUseCase creates an IntentUseCase.
func NewIntentUseCase(
	txManager database.TxManager,
	intentRepo IntentRepository,
	nullifierRepo NullifierRepository,
	poolRepo PoolRepository,
	disbursementRepo DisbursementRepository,
	identityProvider ledgerDomain.IdentityProvider,
	publisher EventPublisher,
) IntentUseCase {
	return &intentUseCase{
		txManager:        txManager,
		intentRepo:       intentRepo,
		nullifierRepo:    nullifierRepo,
		poolRepo:         poolRepo,
		disbursementRepo: disbursementRepo,
		identityProvider: identityProvider,
		publisher:        publisher,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

func (u *intentUseCase) CreateIntent(
	ctx context.Context,
	encryptedPayload []byte,
	assetIn, assetOut ledgerDomain.AssetType,
	deadline time.Time,
) (*intentDomain.SwapIntent, error) {
	if err := assetIn.Validate(); err != nil {
		return nil, err
	}
	if err := assetOut.Validate(); err != nil {
		return nil, err
	}
	if deadline.IsZero() {
		return nil, intentDomain.ErrInvalidDeadline
	}
	if len(encryptedPayload) > ledgerDomain.MaxPayloadSize {
		return nil, ledgerDomain.ErrPayloadTooLarge
	}

	intent := &intentDomain.SwapIntent{
		ID:               uuid.Must(uuid.NewV7()),
		EncryptedPayload: encryptedPayload,
		AssetIn:          assetIn,
		AssetOut:         assetOut,
		Deadline:         deadline.UTC(),
		CreatedAt:        u.now(),
	}

	err := u.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := u.intentRepo.Create(ctx, intent); err != nil {
			return err
		}

		return u.publisher.Publish(ctx, ledgerDomain.EventIntentObserved, ledgerDomain.IntentObserved{
			IntentID: intent.ID,
			AssetIn:  intent.AssetIn,
			AssetOut: intent.AssetOut,
			Deadline: intent.Deadline,
		})
	})
	if err != nil {
		return nil, err
	}

	return intent, nil
}

func (u *intentUseCase) GetIntent(ctx context.Context, id uuid.UUID) (*intentDomain.SwapIntent, error) {
	return u.intentRepo.Get(ctx, id)
}

func (u *intentUseCase) ListIntents(ctx context.Context, offset, limit int) ([]*intentDomain.SwapIntent, error) {
	return u.intentRepo.List(ctx, offset, limit)
}

func (u *intentUseCase) SettleDirect(
	ctx context.Context,
	caller ledgerDomain.Identity,
	intentID uuid.UUID,
	nullifier ledgerDomain.Nullifier,
	legs []intentDomain.Leg,
) (*intentDomain.Settlement, error) {
	if err := nullifier.Validate(); err != nil {
		return nil, err
	}

	planned, total, err := intentDomain.PlanLegs(legs)
	if err != nil {
		return nil, err
	}

	var settlement *intentDomain.Settlement
	err = u.txManager.WithTx(ctx, func(ctx context.Context) error {
		now := u.now()

		intent, err := u.spend(ctx, caller, intentID, nullifier.Hash(), total, now)
		if err != nil {
			return err
		}

		settlement = &intentDomain.Settlement{
			NullifierHash: nullifier.Hash(),
			AssetType:     intent.AssetIn,
			Disbursements: make([]*intentDomain.Disbursement, 0, len(planned)),
			Total:         total,
		}
		event := ledgerDomain.SettlementCompleted{
			NullifierHash: settlement.NullifierHash,
			AssetType:     intent.AssetIn,
			Destinations:  make([]ledgerDomain.Identity, 0, len(planned)),
			Amounts:       make([]uint64, 0, len(planned)),
		}

		for _, leg := range planned {
			disbursement := &intentDomain.Disbursement{
				ID:          uuid.Must(uuid.NewV7()),
				Destination: leg.Destination,
				AssetType:   intent.AssetIn,
				Amount:      leg.Amount,
				CreatedAt:   now,
			}
			if err := u.disbursementRepo.Create(ctx, disbursement); err != nil {
				return err
			}

			settlement.Disbursements = append(settlement.Disbursements, disbursement)
			event.Destinations = append(event.Destinations, leg.Destination)
			event.Amounts = append(event.Amounts, leg.Amount)
		}

		if err := u.intentRepo.Delete(ctx, intent.ID); err != nil {
			return err
		}

		return u.publisher.Publish(ctx, ledgerDomain.EventSettlementCompleted, event)
	})
	if err != nil {
		return nil, err
	}

	return settlement, nil
}

func (u *intentUseCase) SettleViaExternalVenue(
	ctx context.Context,
	caller ledgerDomain.Identity,
	intentID uuid.UUID,
	nullifier ledgerDomain.Nullifier,
	amount uint64,
) (ledgerDomain.Funds, error) {
	if err := nullifier.Validate(); err != nil {
		return ledgerDomain.Funds{}, err
	}
	if err := ledgerDomain.ValidateAmount(amount); err != nil {
		return ledgerDomain.Funds{}, err
	}

	var funds ledgerDomain.Funds
	err := u.txManager.WithTx(ctx, func(ctx context.Context) error {
		hash := nullifier.Hash()

		intent, err := u.spend(ctx, caller, intentID, hash, amount, u.now())
		if err != nil {
			return err
		}

		if err := u.intentRepo.Delete(ctx, intent.ID); err != nil {
			return err
		}

		funds = ledgerDomain.Funds{Asset: intent.AssetIn, Amount: amount}
		return u.publisher.Publish(ctx, ledgerDomain.EventSettlementWithdrawn, ledgerDomain.SettlementWithdrawn{
			NullifierHash: hash,
			AssetType:     intent.AssetIn,
			Amount:        amount,
		})
	})
	if err != nil {
		return ledgerDomain.Funds{}, err
	}

	return funds, nil
}

func (u *intentUseCase) CancelExpired(ctx context.Context, caller ledgerDomain.Identity, intentID uuid.UUID) error {
	return u.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := ledgerDomain.RequireAuthority(ctx, u.identityProvider, caller); err != nil {
			return err
		}

		intent, err := u.intentRepo.Get(ctx, intentID)
		if err != nil {
			return err
		}
		if !intent.CanCancel(u.now()) {
			return ledgerDomain.ErrDeadlineNotPassed
		}

		if err := u.intentRepo.Delete(ctx, intent.ID); err != nil {
			return err
		}

		return u.publisher.Publish(ctx, ledgerDomain.EventIntentExpired, ledgerDomain.IntentExpired{
			IntentID: intent.ID,
		})
	})
}

// spend runs the checks shared by both settlement paths, in order: caller is the Authority,
// the intent exists and is within its deadline, the nullifier is unspent, the pool covers
// amount. It marks the nullifier spent and debits the pool. Must run inside a transaction.
func (u *intentUseCase) spend(
	ctx context.Context,
	caller ledgerDomain.Identity,
	intentID uuid.UUID,
	hash ledgerDomain.NullifierHash,
	amount uint64,
	now time.Time,
) (*intentDomain.SwapIntent, error) {
	if err := ledgerDomain.RequireAuthority(ctx, u.identityProvider, caller); err != nil {
		return nil, err
	}

	intent, err := u.intentRepo.Get(ctx, intentID)
	if err != nil {
		return nil, err
	}
	if !intent.CanSettle(now) {
		return nil, ledgerDomain.ErrDeadlinePassed
	}

	if err := u.nullifierRepo.Insert(ctx, hash, now); err != nil {
		return nil, err
	}

	if err := u.poolRepo.Debit(ctx, intent.AssetIn, amount, now); err != nil {
		return nil, err
	}

	return intent, nil
}
