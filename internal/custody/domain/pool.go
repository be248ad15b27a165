// Package domain defines the custody pool, its settings and the deposit records it issues.
package domain

import (
	"time"

	"github.com/google/uuid"

	ledgerDomain "github.com/allisson/mist/internal/ledger/domain"
)

// Settings is the singleton control row of the custody pool.
type Settings struct {
	Authority ledgerDomain.Identity
	Paused    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PoolBalance is the custodied balance of a single asset.
type PoolBalance struct {
	AssetType ledgerDomain.AssetType
	Balance   uint64
	UpdatedAt time.Time
}

// Pool is the public view of the custody pool.
type Pool struct {
	Authority ledgerDomain.Identity
	Paused    bool
	Balances  []*PoolBalance
}

// BalanceOf returns the balance of asset, or zero when the pool never held it.
func (p *Pool) BalanceOf(asset ledgerDomain.AssetType) uint64 {
	for _, b := range p.Balances {
		if b.AssetType == asset {
			return b.Balance
		}
	}
	return 0
}

// DepositRecord is the public trace of a deposit. It has no depositor field.
type DepositRecord struct {
	ID               uuid.UUID
	AssetType        ledgerDomain.AssetType
	Amount           uint64
	EncryptedPayload []byte
	CreatedAt        time.Time
}

// AdminCapability is the single credential allowed to pause the pool and rotate the Authority.
// Only the Argon2id hash of the secret is kept.
type AdminCapability struct {
	SecretHash string
	CreatedAt  time.Time
}
