package domain

import (
	"time"

	"github.com/google/uuid"
)

// Event types published through the outbox for the external indexer.
const (
	EventDepositObserved     = "deposit.observed"
	EventDepositConsumed     = "deposit.consumed"
	EventIntentObserved      = "intent.observed"
	EventIntentExpired       = "intent.expired"
	EventSettlementCompleted = "settlement.completed"
	EventSettlementWithdrawn = "settlement.withdrawn"
	EventPoolToppedUp        = "pool.topped_up"
	EventPauseChanged        = "admin.pause_changed"
	EventAuthorityRotated    = "admin.authority_rotated"
)

// DepositObserved is published for every deposit. It names no depositor.
type DepositObserved struct {
	RecordID  uuid.UUID `json:"record_id"`
	AssetType AssetType `json:"asset_type"`
	Amount    uint64    `json:"amount"`
}

// DepositConsumed is published when the Authority cleans up a deposit record.
type DepositConsumed struct {
	RecordID uuid.UUID `json:"record_id"`
}

// IntentObserved is published for every new swap intent. It carries no amount and no address.
type IntentObserved struct {
	IntentID uuid.UUID `json:"intent_id"`
	AssetIn  AssetType `json:"asset_in"`
	AssetOut AssetType `json:"asset_out"`
	Deadline time.Time `json:"deadline"`
}

// IntentExpired is published when an intent is cancelled after its deadline.
type IntentExpired struct {
	IntentID uuid.UUID `json:"intent_id"`
}

// SettlementCompleted is published for a direct settlement. Destinations and Amounts
// are parallel slices; skipped zero-amount legs are absent from both.
type SettlementCompleted struct {
	NullifierHash NullifierHash `json:"nullifier_hash"`
	AssetType     AssetType     `json:"asset_type"`
	Destinations  []Identity    `json:"destinations"`
	Amounts       []uint64      `json:"amounts"`
}

// SettlementWithdrawn is published when funds leave the pool for an external venue.
type SettlementWithdrawn struct {
	NullifierHash NullifierHash `json:"nullifier_hash"`
	AssetType     AssetType     `json:"asset_type"`
	Amount        uint64        `json:"amount"`
}

// PoolToppedUp is published for an admin top-up.
type PoolToppedUp struct {
	AssetType AssetType `json:"asset_type"`
	Amount    uint64    `json:"amount"`
}

// PauseChanged is published when the pause flag is set.
type PauseChanged struct {
	Paused bool `json:"paused"`
}

// AuthorityRotated is published when a new Authority identity is registered.
type AuthorityRotated struct {
	Authority Identity `json:"authority"`
}
