package domain

import "context"

// IdentityProvider resolves the identity currently registered as the settlement Authority.
// How that identity is established or attested is outside the ledger; the ledger only
// compares identities.
type IdentityProvider interface {
	CurrentAuthorityIdentity(ctx context.Context) (Identity, error)
}

// IdentityProviderFunc adapts a plain function to IdentityProvider.
type IdentityProviderFunc func(ctx context.Context) (Identity, error)

// CurrentAuthorityIdentity calls f(ctx).
func (f IdentityProviderFunc) CurrentAuthorityIdentity(ctx context.Context) (Identity, error) {
	return f(ctx)
}

// RequireAuthority returns ErrNotAuthority unless caller is the current Authority.
func RequireAuthority(ctx context.Context, provider IdentityProvider, caller Identity) error {
	authority, err := provider.CurrentAuthorityIdentity(ctx)
	if err != nil {
		return err
	}
	if authority.IsZero() || !authority.Equal(caller) {
		return ErrNotAuthority
	}
	return nil
}
