// Package mocks provides testify mock implementations of the authorization use case.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	authorizationDomain "github.com/allisson/mist/internal/authorization/domain"
	ledgerDomain "github.com/allisson/mist/internal/ledger/domain"
)

// MockAuthorizationUseCase is a mock implementation of AuthorizationUseCase.
type MockAuthorizationUseCase struct {
	mock.Mock
}

// Authorize mocks the Authorize method.
func (m *MockAuthorizationUseCase) Authorize(
	ctx context.Context,
	id []byte,
	requester ledgerDomain.Identity,
) (authorizationDomain.Decision, error) {
	args := m.Called(ctx, id, requester)
	return args.Get(0).(authorizationDomain.Decision), args.Error(1)
}
