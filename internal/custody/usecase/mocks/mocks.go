// Package mocks provides testify mock implementations of the custody use cases.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	custodyDomain "github.com/allisson/mist/internal/custody/domain"
	ledgerDomain "github.com/allisson/mist/internal/ledger/domain"
)

// MockCustodyUseCase is a mock implementation of CustodyUseCase.
type MockCustodyUseCase struct {
	mock.Mock
}

// Deposit mocks the Deposit method.
func (m *MockCustodyUseCase) Deposit(
	ctx context.Context,
	payment ledgerDomain.Funds,
	encryptedPayload []byte,
) (*custodyDomain.DepositRecord, error) {
	args := m.Called(ctx, payment, encryptedPayload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*custodyDomain.DepositRecord), args.Error(1)
}

// GetPool mocks the GetPool method.
func (m *MockCustodyUseCase) GetPool(ctx context.Context) (*custodyDomain.Pool, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*custodyDomain.Pool), args.Error(1)
}

// GetDepositRecord mocks the GetDepositRecord method.
func (m *MockCustodyUseCase) GetDepositRecord(
	ctx context.Context,
	id uuid.UUID,
) (*custodyDomain.DepositRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*custodyDomain.DepositRecord), args.Error(1)
}

// ListDepositRecords mocks the ListDepositRecords method.
func (m *MockCustodyUseCase) ListDepositRecords(
	ctx context.Context,
	offset, limit int,
) ([]*custodyDomain.DepositRecord, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*custodyDomain.DepositRecord), args.Error(1)
}

// ConsumeDepositRecord mocks the ConsumeDepositRecord method.
func (m *MockCustodyUseCase) ConsumeDepositRecord(
	ctx context.Context,
	caller ledgerDomain.Identity,
	id uuid.UUID,
) error {
	args := m.Called(ctx, caller, id)
	return args.Error(0)
}

// MockAdminUseCase is a mock implementation of AdminUseCase.
type MockAdminUseCase struct {
	mock.Mock
}

// InitLedger mocks the InitLedger method.
func (m *MockAdminUseCase) InitLedger(ctx context.Context, authority ledgerDomain.Identity) (string, error) {
	args := m.Called(ctx, authority)
	return args.String(0), args.Error(1)
}

// VerifyCapability mocks the VerifyCapability method.
func (m *MockAdminUseCase) VerifyCapability(ctx context.Context, capability string) error {
	args := m.Called(ctx, capability)
	return args.Error(0)
}

// SetPause mocks the SetPause method.
func (m *MockAdminUseCase) SetPause(ctx context.Context, capability string, paused bool) error {
	args := m.Called(ctx, capability, paused)
	return args.Error(0)
}

// RotateAuthority mocks the RotateAuthority method.
func (m *MockAdminUseCase) RotateAuthority(
	ctx context.Context,
	capability string,
	authority ledgerDomain.Identity,
) error {
	args := m.Called(ctx, capability, authority)
	return args.Error(0)
}

// TopUp mocks the TopUp method.
func (m *MockAdminUseCase) TopUp(ctx context.Context, capability string, payment ledgerDomain.Funds) error {
	args := m.Called(ctx, capability, payment)
	return args.Error(0)
}
