// Package domain defines the value types and error taxonomy shared across the ledger.
package domain

import "math"

const (
	// IdentitySize is the size in bytes of an account or destination identity.
	IdentitySize = 32

	// MaxAmount is the largest amount a single pool balance, deposit or disbursement may hold.
	// Balances are stored in signed 64-bit columns.
	MaxAmount uint64 = math.MaxInt64

	// MaxAssetTypeLength is the maximum length of an asset type tag.
	MaxAssetTypeLength = 255

	// MaxNullifierSize is the maximum size in bytes of a nullifier.
	MaxNullifierSize = 256

	// MaxPayloadSize is the maximum size of an encrypted deposit or intent payload (64 KB).
	MaxPayloadSize = 65536
)
