// Package usecase exposes read access to the nullifier registry.
package usecase

import (
	"context"

	ledgerDomain "github.com/allisson/mist/internal/ledger/domain"
)

// NullifierRepository reads the registry. Inserts happen only inside settlement.
type NullifierRepository interface {
	Exists(ctx context.Context, hash ledgerDomain.NullifierHash) (bool, error)
}

// NullifierUseCase answers whether a nullifier has been spent.
type NullifierUseCase interface {
	IsSpent(ctx context.Context, nullifier ledgerDomain.Nullifier) (bool, error)
}

type nullifierUseCase struct {
	nullifierRepo NullifierRepository
}

// NewNullifierUseCase creates a NullifierUseCase.
func NewNullifierUseCase(nullifierRepo NullifierRepository) NullifierUseCase {
	return &nullifierUseCase{nullifierRepo: nullifierRepo}
}

func (n *nullifierUseCase) IsSpent(ctx context.Context, nullifier ledgerDomain.Nullifier) (bool, error) {
	if err := nullifier.Validate(); err != nil {
		return false, err
	}
	return n.nullifierRepo.Exists(ctx, nullifier.Hash())
}
