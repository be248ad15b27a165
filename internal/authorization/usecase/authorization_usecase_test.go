package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authorizationDomain "github.com/allisson/mist/internal/authorization/domain"
	authorizationUsecaseMocks "github.com/allisson/mist/internal/authorization/usecase/mocks"
	custodyDomain "github.com/allisson/mist/internal/custody/domain"
	ledgerDomain "github.com/allisson/mist/internal/ledger/domain"
	"github.com/allisson/mist/internal/ledger/ledgertest"
)

var (
	namespace = authorizationDomain.Namespace{0x6d, 0x69, 0x73, 0x74}
	authority = ledgerDomain.Identity{0xa0}
	depositor = ledgerDomain.Identity{0xd0}
	nonce     = [authorizationDomain.NonceSize]byte{9, 9, 9, 9, 9}
)

func TestAuthorizationUseCase_Authorize(t *testing.T) {
	ctx := context.Background()

	store := ledgertest.NewStore()
	require.NoError(t, store.Settings().Create(ctx, &custodyDomain.Settings{Authority: authority}))
	uc := NewAuthorizationUseCase(namespace, store)

	t.Run("AuthorityFormat_RegisteredAuthority", func(t *testing.T) {
		decision, err := uc.Authorize(ctx, namespace.AuthorityID(nonce), authority)
		require.NoError(t, err)
		assert.True(t, decision.Authorized)
		assert.Nil(t, decision.Reason)
	})

	t.Run("AuthorityFormat_DifferentRequester", func(t *testing.T) {
		decision, err := uc.Authorize(ctx, namespace.AuthorityID(nonce), depositor)
		require.NoError(t, err)
		assert.False(t, decision.Authorized)
		assert.ErrorIs(t, decision.Reason, authorizationDomain.ErrAccessDenied)
	})

	t.Run("SelfAccess_Owner", func(t *testing.T) {
		decision, err := uc.Authorize(ctx, namespace.SelfAccessID(depositor, nonce), depositor)
		require.NoError(t, err)
		assert.True(t, decision.Authorized)
	})

	t.Run("InvalidLength", func(t *testing.T) {
		decision, err := uc.Authorize(ctx, namespace[:], authority)
		require.NoError(t, err)
		assert.False(t, decision.Authorized)
		assert.ErrorIs(t, decision.Reason, authorizationDomain.ErrInvalidIDLength)
	})

	t.Run("InvalidNamespace", func(t *testing.T) {
		other := authorizationDomain.Namespace{0x01}
		decision, err := uc.Authorize(ctx, other.AuthorityID(nonce), authority)
		require.NoError(t, err)
		assert.ErrorIs(t, decision.Reason, authorizationDomain.ErrInvalidNamespace)
	})

	t.Run("NoStateChange", func(t *testing.T) {
		for range 3 {
			_, err := uc.Authorize(ctx, namespace.AuthorityID(nonce), authority)
			require.NoError(t, err)
		}
		assert.Empty(t, store.Events())
		assert.Equal(t, 0, store.NullifierCount())
	})
}

func TestAuthorizationUseCase_FollowsAuthorityRotation(t *testing.T) {
	ctx := context.Background()
	store := ledgertest.NewStore()
	require.NoError(t, store.Settings().Create(ctx, &custodyDomain.Settings{Authority: authority}))
	uc := NewAuthorizationUseCase(namespace, store)

	rotated := ledgerDomain.Identity{0xb0}
	require.NoError(t, store.Settings().SetAuthority(ctx, rotated, time.Now()))

	decision, err := uc.Authorize(ctx, namespace.AuthorityID(nonce), authority)
	require.NoError(t, err)
	assert.False(t, decision.Authorized)

	decision, err = uc.Authorize(ctx, namespace.AuthorityID(nonce), rotated)
	require.NoError(t, err)
	assert.True(t, decision.Authorized)
}

func TestAuthorizationUseCase_LedgerNotInitialized(t *testing.T) {
	ctx := context.Background()
	uc := NewAuthorizationUseCase(namespace, ledgertest.NewStore())

	decision, err := uc.Authorize(ctx, namespace.AuthorityID(nonce), authority)
	require.NoError(t, err)
	assert.ErrorIs(t, decision.Reason, authorizationDomain.ErrAccessDenied)

	decision, err = uc.Authorize(ctx, namespace.SelfAccessID(depositor, nonce), depositor)
	require.NoError(t, err)
	assert.True(t, decision.Authorized)
}

func TestAuthorizationUseCase_ProviderError(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("database down")
	provider := ledgerDomain.IdentityProviderFunc(func(ctx context.Context) (ledgerDomain.Identity, error) {
		return ledgerDomain.Identity{}, boom
	})
	uc := NewAuthorizationUseCase(namespace, provider)

	_, err := uc.Authorize(ctx, namespace.AuthorityID(nonce), authority)
	assert.ErrorIs(t, err, boom)
}

// mockBusinessMetrics is a mock implementation of metrics.BusinessMetrics for testing.
type mockBusinessMetrics struct {
	mock.Mock
}

func (m *mockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *mockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

func TestAuthorizationMetricsDecorator(t *testing.T) {
	ctx := context.Background()
	id := namespace.AuthorityID(nonce)

	tests := []struct {
		name     string
		decision authorizationDomain.Decision
		err      error
		status   string
	}{
		{"Authorized", authorizationDomain.Decision{Authorized: true}, nil, "success"},
		{"Denied", authorizationDomain.Decision{Reason: authorizationDomain.ErrAccessDenied}, nil, "denied"},
		{"Error", authorizationDomain.Decision{}, errors.New("boom"), "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUseCase := &authorizationUsecaseMocks.MockAuthorizationUseCase{}
			mockMetrics := &mockBusinessMetrics{}

			mockUseCase.On("Authorize", ctx, id, authority).Return(tt.decision, tt.err).Once()
			mockMetrics.On("RecordOperation", ctx, "authorization", "authorize", tt.status).Return().Once()
			mockMetrics.On(
				"RecordDuration", ctx, "authorization", "authorize", mock.AnythingOfType("time.Duration"), tt.status,
			).Return().Once()

			decision, err := NewAuthorizationUseCaseWithMetrics(mockUseCase, mockMetrics).Authorize(ctx, id, authority)

			assert.Equal(t, tt.decision, decision)
			assert.Equal(t, tt.err, err)
			mockUseCase.AssertExpectations(t)
			mockMetrics.AssertExpectations(t)
		})
	}
}
