// Package mocks provides testify mock implementations of the intent use case.
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	intentDomain "github.com/allisson/mist/internal/intent/domain"
	ledgerDomain "github.com/allisson/mist/internal/ledger/domain"
)

// MockIntentUseCase is a mock implementation of IntentUseCase.
type MockIntentUseCase struct {
	mock.Mock
}

// CreateIntent mocks the CreateIntent method.
func (m *MockIntentUseCase) CreateIntent(
	ctx context.Context,
	encryptedPayload []byte,
	assetIn, assetOut ledgerDomain.AssetType,
	deadline time.Time,
) (*intentDomain.SwapIntent, error) {
	args := m.Called(ctx, encryptedPayload, assetIn, assetOut, deadline)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*intentDomain.SwapIntent), args.Error(1)
}

// GetIntent mocks the GetIntent method.
func (m *MockIntentUseCase) GetIntent(ctx context.Context, id uuid.UUID) (*intentDomain.SwapIntent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*intentDomain.SwapIntent), args.Error(1)
}

// ListIntents mocks the ListIntents method.
func (m *MockIntentUseCase) ListIntents(ctx context.Context, offset, limit int) ([]*intentDomain.SwapIntent, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*intentDomain.SwapIntent), args.Error(1)
}

// SettleDirect mocks the SettleDirect method.
func (m *MockIntentUseCase) SettleDirect(
	ctx context.Context,
	caller ledgerDomain.Identity,
	intentID uuid.UUID,
	nullifier ledgerDomain.Nullifier,
	legs []intentDomain.Leg,
) (*intentDomain.Settlement, error) {
	args := m.Called(ctx, caller, intentID, nullifier, legs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*intentDomain.Settlement), args.Error(1)
}

// SettleViaExternalVenue mocks the SettleViaExternalVenue method.
func (m *MockIntentUseCase) SettleViaExternalVenue(
	ctx context.Context,
	caller ledgerDomain.Identity,
	intentID uuid.UUID,
	nullifier ledgerDomain.Nullifier,
	amount uint64,
) (ledgerDomain.Funds, error) {
	args := m.Called(ctx, caller, intentID, nullifier, amount)
	return args.Get(0).(ledgerDomain.Funds), args.Error(1)
}

// CancelExpired mocks the CancelExpired method.
func (m *MockIntentUseCase) CancelExpired(ctx context.Context, caller ledgerDomain.Identity, intentID uuid.UUID) error {
	args := m.Called(ctx, caller, intentID)
	return args.Error(0)
}
