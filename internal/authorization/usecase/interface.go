// Package usecase evaluates authorization requests for encrypted payload identifiers.
package usecase

import (
	"context"

	authorizationDomain "github.com/allisson/mist/internal/authorization/domain"
	ledgerDomain "github.com/allisson/mist/internal/ledger/domain"
)

// AuthorizationUseCase decides whether a requester may obtain key shares for an identifier.
// It reads the registered Authority and nothing else.
type AuthorizationUseCase interface {
	// Authorize returns the decision for id and requester. The error is reserved for failures
	// reading the Authority; denials are reported through Decision.Reason.
	Authorize(ctx context.Context, id []byte, requester ledgerDomain.Identity) (authorizationDomain.Decision, error)
}
