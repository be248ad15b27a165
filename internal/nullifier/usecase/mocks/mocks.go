// Package mocks provides testify mock implementations of the nullifier use case.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	ledgerDomain "github.com/allisson/mist/internal/ledger/domain"
)

// MockNullifierUseCase is a mock implementation of NullifierUseCase.
type MockNullifierUseCase struct {
	mock.Mock
}

// IsSpent mocks the IsSpent method.
func (m *MockNullifierUseCase) IsSpent(ctx context.Context, nullifier ledgerDomain.Nullifier) (bool, error) {
	args := m.Called(ctx, nullifier)
	return args.Bool(0), args.Error(1)
}
