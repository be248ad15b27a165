package usecase

import (
	"context"

	authorizationDomain "github.com/allisson/mist/internal/authorization/domain"
	apperrors "github.com/allisson/mist/internal/errors"
	ledgerDomain "github.com/allisson/mist/internal/ledger/domain"
)

type authorizationUseCase struct {
	namespace        authorizationDomain.Namespace
	identityProvider ledgerDomain.IdentityProvider
}

// NewAuthorizationUseCase creates an AuthorizationUseCase for the given deployment namespace.
func NewAuthorizationUseCase(
	namespace authorizationDomain.Namespace,
	identityProvider ledgerDomain.IdentityProvider,
) AuthorizationUseCase {
	return &authorizationUseCase{
		namespace:        namespace,
		identityProvider: identityProvider,
	}
}

func (a *authorizationUseCase) Authorize(
	ctx context.Context,
	id []byte,
	requester ledgerDomain.Identity,
) (authorizationDomain.Decision, error) {
	authority := func() (ledgerDomain.Identity, error) {
		current, err := a.identityProvider.CurrentAuthorityIdentity(ctx)
		if apperrors.Is(err, ledgerDomain.ErrLedgerNotInitialized) {
			// No Authority registered yet: the zero identity matches nobody.
			return ledgerDomain.Identity{}, nil
		}
		return current, err
	}

	err := authorizationDomain.Check(a.namespace, id, requester, authority)
	switch {
	case err == nil:
		return authorizationDomain.Decision{Authorized: true}, nil
	case apperrors.Is(err, authorizationDomain.ErrInvalidNamespace),
		apperrors.Is(err, authorizationDomain.ErrInvalidIDLength),
		apperrors.Is(err, authorizationDomain.ErrAccessDenied):
		return authorizationDomain.Decision{Reason: err}, nil
	default:
		return authorizationDomain.Decision{}, err
	}
}
