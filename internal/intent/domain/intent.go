// Package domain defines swap intents, the legs of a direct settlement and the
// disbursements it produces.
package domain

import (
	"time"

	"github.com/google/uuid"

	ledgerDomain "github.com/allisson/mist/internal/ledger/domain"
)

// MaxLegs is the maximum number of destinations of a direct settlement: the primary
// output and the remainder.
const MaxLegs = 2

// SwapIntent is a published request to settle value to fresh destinations. It holds no
// reference to any deposit record; only the Authority can link the two by decrypting
// the payload and matching nullifiers.
//
// An intent exists only in the Created state. Settling or expiring it deletes it.
type SwapIntent struct {
	ID               uuid.UUID
	EncryptedPayload []byte
	AssetIn          ledgerDomain.AssetType
	AssetOut         ledgerDomain.AssetType
	Deadline         time.Time
	CreatedAt        time.Time
}

// CanSettle reports whether the intent may still be settled at now (now <= Deadline).
func (i *SwapIntent) CanSettle(now time.Time) bool {
	return !now.After(i.Deadline)
}

// CanCancel reports whether the intent may be cancelled at now (now > Deadline).
// CanSettle and CanCancel are never both true.
func (i *SwapIntent) CanCancel(now time.Time) bool {
	return now.After(i.Deadline)
}

// Leg is one requested transfer of a direct settlement.
type Leg struct {
	Destination ledgerDomain.Identity
	Amount      uint64
}

// Disbursement is an on-ledger credit to a destination created by a direct settlement.
type Disbursement struct {
	ID          uuid.UUID
	Destination ledgerDomain.Identity
	AssetType   ledgerDomain.AssetType
	Amount      uint64
	CreatedAt   time.Time
}

// Settlement describes a completed direct settlement.
type Settlement struct {
	NullifierHash ledgerDomain.NullifierHash
	AssetType     ledgerDomain.AssetType
	Disbursements []*Disbursement
	Total         uint64
}

// PlanLegs validates the requested legs and drops zero-amount ones. It returns the legs
// to execute and their total.
func PlanLegs(legs []Leg) ([]Leg, uint64, error) {
	if len(legs) == 0 || len(legs) > MaxLegs {
		return nil, 0, ErrInvalidLegs
	}

	planned := make([]Leg, 0, len(legs))
	var total uint64
	for _, leg := range legs {
		if leg.Amount == 0 {
			continue
		}
		if leg.Destination.IsZero() {
			return nil, 0, ledgerDomain.ErrInvalidIdentity
		}

		sum, err := ledgerDomain.AddAmounts(total, leg.Amount)
		if err != nil {
			return nil, 0, err
		}
		total = sum
		planned = append(planned, leg)
	}

	if total == 0 {
		return nil, 0, ErrNothingToDisburse
	}

	return planned, total, nil
}
