package domain

import (
	"github.com/allisson/mist/internal/errors"
)

var (
	// ErrDepositRecordNotFound indicates the deposit record does not exist or was already consumed.
	ErrDepositRecordNotFound = errors.Wrap(errors.ErrNotFound, "deposit record not found")

	// ErrLedgerAlreadyInitialized indicates the settings row already exists.
	ErrLedgerAlreadyInitialized = errors.Wrap(errors.ErrConflict, "ledger already initialized")

	// ErrCapabilityAlreadyMinted indicates an admin capability was already issued.
	ErrCapabilityAlreadyMinted = errors.Wrap(errors.ErrConflict, "admin capability already minted")
)
