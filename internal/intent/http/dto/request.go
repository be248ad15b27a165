// Package dto provides data transfer objects for the swap intent HTTP API.
package dto

import (
	"time"

	validation "github.com/jellydator/validation"

	intentDomain "github.com/allisson/mist/internal/intent/domain"
	ledgerDomain "github.com/allisson/mist/internal/ledger/domain"
	customValidation "github.com/allisson/mist/internal/validation"
)

// CreateIntentRequest publishes a swap intent. The payload is opaque to the ledger and
// holds the nullifier, amounts and destinations encrypted for the Authority.
type CreateIntentRequest struct {
	EncryptedPayload []byte    `json:"encrypted_payload"`
	AssetIn          string    `json:"asset_in"`
	AssetOut         string    `json:"asset_out"`
	Deadline         time.Time `json:"deadline"`
}

// Validate checks if the create intent request is valid.
func (r *CreateIntentRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.EncryptedPayload, validation.Length(0, ledgerDomain.MaxPayloadSize)),
		validation.Field(&r.AssetIn, validation.Required, customValidation.AssetType),
		validation.Field(&r.AssetOut, validation.Required, customValidation.AssetType),
		validation.Field(&r.Deadline, validation.Required),
	)
}

// LegRequest is one destination of a direct settlement. A zero amount is allowed and the
// leg is skipped.
type LegRequest struct {
	Destination string `json:"destination"`
	Amount      uint64 `json:"amount"`
}

// Validate checks if the leg is valid.
func (r LegRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Destination, validation.Required, customValidation.Identity),
		validation.Field(&r.Amount, validation.Max(ledgerDomain.MaxAmount)),
	)
}

// SettleDirectRequest settles an intent to one or two destinations on this ledger.
type SettleDirectRequest struct {
	Nullifier string       `json:"nullifier"`
	Legs      []LegRequest `json:"legs"`
}

// Validate checks if the settle request is valid.
func (r *SettleDirectRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Nullifier, validation.Required, customValidation.Nullifier),
		validation.Field(&r.Legs, validation.Required, validation.Length(1, intentDomain.MaxLegs)),
	)
}

// DomainLegs converts the validated legs to domain legs.
func (r *SettleDirectRequest) DomainLegs() ([]intentDomain.Leg, error) {
	legs := make([]intentDomain.Leg, 0, len(r.Legs))
	for _, leg := range r.Legs {
		destination, err := ledgerDomain.ParseIdentity(leg.Destination)
		if err != nil {
			return nil, err
		}
		legs = append(legs, intentDomain.Leg{Destination: destination, Amount: leg.Amount})
	}
	return legs, nil
}

// WithdrawRequest settles an intent through an external venue.
type WithdrawRequest struct {
	Nullifier string `json:"nullifier"`
	Amount    uint64 `json:"amount"`
}

// Validate checks if the withdraw request is valid.
func (r *WithdrawRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Nullifier, validation.Required, customValidation.Nullifier),
		validation.Field(&r.Amount, validation.Required, validation.Max(ledgerDomain.MaxAmount)),
	)
}
