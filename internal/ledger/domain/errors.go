package domain

import (
	"github.com/allisson/mist/internal/errors"
)

var (
	// ErrNullifierSpent indicates the nullifier was already consumed by a previous settlement.
	ErrNullifierSpent = errors.Wrap(errors.ErrConflict, "nullifier already spent")

	// ErrNotAuthority indicates the caller is not the current settlement Authority.
	ErrNotAuthority = errors.Wrap(errors.ErrForbidden, "caller is not the authority")

	// ErrInsufficientBalance indicates the custody pool cannot cover the requested debit.
	ErrInsufficientBalance = errors.Wrap(errors.ErrConflict, "insufficient pool balance")

	// ErrPaused indicates deposits are refused because the ledger is paused.
	ErrPaused = errors.Wrap(errors.ErrUnavailable, "ledger is paused")

	// ErrNotAuthorized indicates an admin operation was attempted without a valid admin capability.
	ErrNotAuthorized = errors.Wrap(errors.ErrUnauthorized, "admin capability required")

	// ErrDeadlinePassed indicates an intent was settled after its deadline.
	ErrDeadlinePassed = errors.Wrap(errors.ErrConflict, "intent deadline has passed")

	// ErrDeadlineNotPassed indicates an intent was cancelled before its deadline.
	ErrDeadlineNotPassed = errors.Wrap(errors.ErrConflict, "intent deadline has not passed")

	// ErrInvalidIdentity indicates an identity is not 32 bytes of hex.
	ErrInvalidIdentity = errors.Wrap(errors.ErrInvalidInput, "invalid identity")

	// ErrInvalidNullifier indicates a nullifier is empty, too large or not hex.
	ErrInvalidNullifier = errors.Wrap(errors.ErrInvalidInput, "invalid nullifier")

	// ErrInvalidAssetType indicates an asset type tag is blank, too long or padded with whitespace.
	ErrInvalidAssetType = errors.Wrap(errors.ErrInvalidInput, "invalid asset type")

	// ErrInvalidAmount indicates an amount is zero where value is required or exceeds MaxAmount.
	ErrInvalidAmount = errors.Wrap(errors.ErrInvalidInput, "invalid amount")

	// ErrPayloadTooLarge indicates an encrypted payload exceeds MaxPayloadSize.
	ErrPayloadTooLarge = errors.Wrap(errors.ErrInvalidInput, "encrypted payload exceeds maximum size")

	// ErrLedgerNotInitialized indicates the ledger settings were never created.
	ErrLedgerNotInitialized = errors.Wrap(errors.ErrNotFound, "ledger not initialized")
)
