package usecase

import (
	"context"
	"time"

	ledgerDomain "github.com/allisson/mist/internal/ledger/domain"
	"github.com/allisson/mist/internal/metrics"
)

type nullifierUseCaseWithMetrics struct {
	next    NullifierUseCase
	metrics metrics.BusinessMetrics
}

// NewNullifierUseCaseWithMetrics wraps a NullifierUseCase with metrics recording.
func NewNullifierUseCaseWithMetrics(useCase NullifierUseCase, m metrics.BusinessMetrics) NullifierUseCase {
	return &nullifierUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (n *nullifierUseCaseWithMetrics) IsSpent(ctx context.Context, nullifier ledgerDomain.Nullifier) (bool, error) {
	start := time.Now()
	spent, err := n.next.IsSpent(ctx, nullifier)

	status := "success"
	if err != nil {
		status = "error"
	}
	n.metrics.RecordOperation(ctx, "nullifiers", "nullifier_check", status)
	n.metrics.RecordDuration(ctx, "nullifiers", "nullifier_check", time.Since(start), status)

	return spent, err
}
