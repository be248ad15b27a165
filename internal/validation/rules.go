// Package validation provides custom validation rules for the application.
package validation

import (
	"encoding/hex"
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/mist/internal/errors"
	ledgerDomain "github.com/allisson/mist/internal/ledger/domain"
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// Identity validates a 0x-prefixed 32-byte hex identity.
var Identity = validation.NewStringRuleWithError(
	func(s string) bool {
		_, err := ledgerDomain.ParseIdentity(s)
		return err == nil
	},
	validation.NewError("validation_identity", "must be a 32-byte hex identity"),
)

// Nullifier validates a hex nullifier within the accepted size.
var Nullifier = validation.NewStringRuleWithError(
	func(s string) bool {
		_, err := ledgerDomain.ParseNullifier(s)
		return err == nil
	},
	validation.NewError("validation_nullifier", "must be a hex nullifier of at most 256 bytes"),
)

// Hex validates that a string is hex encoded, with or without a 0x prefix.
var Hex = validation.NewStringRuleWithError(
	func(s string) bool {
		_, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
		return err == nil
	},
	validation.NewError("validation_hex", "must be hex encoded"),
)

// AssetType validates an asset type tag.
var AssetType = validation.NewStringRuleWithError(
	func(s string) bool {
		return ledgerDomain.AssetType(s).Validate() == nil
	},
	validation.NewError("validation_asset_type", "must be a non-blank asset type of at most 255 characters"),
)
