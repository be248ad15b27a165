package usecase

import (
	"context"
	"time"

	authorizationDomain "github.com/allisson/mist/internal/authorization/domain"
	ledgerDomain "github.com/allisson/mist/internal/ledger/domain"
	"github.com/allisson/mist/internal/metrics"
)

// authorizationUseCaseWithMetrics decorates AuthorizationUseCase with metrics instrumentation.
type authorizationUseCaseWithMetrics struct {
	next    AuthorizationUseCase
	metrics metrics.BusinessMetrics
}

// NewAuthorizationUseCaseWithMetrics wraps an AuthorizationUseCase with metrics recording.
// Denials are recorded with status "denied".
func NewAuthorizationUseCaseWithMetrics(useCase AuthorizationUseCase, m metrics.BusinessMetrics) AuthorizationUseCase {
	return &authorizationUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (a *authorizationUseCaseWithMetrics) Authorize(
	ctx context.Context,
	id []byte,
	requester ledgerDomain.Identity,
) (authorizationDomain.Decision, error) {
	start := time.Now()
	decision, err := a.next.Authorize(ctx, id, requester)

	status := "success"
	switch {
	case err != nil:
		status = "error"
	case !decision.Authorized:
		status = "denied"
	}

	a.metrics.RecordOperation(ctx, "authorization", "authorize", status)
	a.metrics.RecordDuration(ctx, "authorization", "authorize", time.Since(start), status)

	return decision, err
}
