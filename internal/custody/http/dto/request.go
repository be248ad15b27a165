// Package dto provides data transfer objects for the custody pool HTTP API.
package dto

import (
	validation "github.com/jellydator/validation"

	ledgerDomain "github.com/allisson/mist/internal/ledger/domain"
	customValidation "github.com/allisson/mist/internal/validation"
)

// DepositRequest moves funds into the custody pool. EncryptedPayload is base64 in JSON and
// opaque to the ledger.
type DepositRequest struct {
	AssetType        string `json:"asset_type"`
	Amount           uint64 `json:"amount"`
	EncryptedPayload []byte `json:"encrypted_payload"`
}

// Validate checks if the deposit request is valid.
func (r *DepositRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.AssetType, validation.Required, customValidation.AssetType),
		validation.Field(&r.Amount, validation.Required, validation.Max(ledgerDomain.MaxAmount)),
		validation.Field(&r.EncryptedPayload, validation.Length(0, ledgerDomain.MaxPayloadSize)),
	)
}

// Funds returns the payment carried by the request.
func (r *DepositRequest) Funds() ledgerDomain.Funds {
	return ledgerDomain.Funds{Asset: ledgerDomain.AssetType(r.AssetType), Amount: r.Amount}
}

// TopUpRequest adds admin funds to the pool. No deposit record is issued.
type TopUpRequest struct {
	AssetType string `json:"asset_type"`
	Amount    uint64 `json:"amount"`
}

// Validate checks if the top-up request is valid.
func (r *TopUpRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.AssetType, validation.Required, customValidation.AssetType),
		validation.Field(&r.Amount, validation.Required, validation.Max(ledgerDomain.MaxAmount)),
	)
}

// Funds returns the payment carried by the request.
func (r *TopUpRequest) Funds() ledgerDomain.Funds {
	return ledgerDomain.Funds{Asset: ledgerDomain.AssetType(r.AssetType), Amount: r.Amount}
}

// SetPauseRequest sets the pause flag. Paused is a pointer so an omitted field is rejected
// instead of silently unpausing.
type SetPauseRequest struct {
	Paused *bool `json:"paused"`
}

// Validate checks if the pause request is valid.
func (r *SetPauseRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Paused, validation.NotNil),
	)
}

// RotateAuthorityRequest registers a new Authority identity.
type RotateAuthorityRequest struct {
	Authority string `json:"authority"`
}

// Validate checks if the rotate authority request is valid.
func (r *RotateAuthorityRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Authority, validation.Required, customValidation.Identity),
	)
}
