package domain

import (
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// Nullifier is the secret a depositor commits to at deposit time and reveals, through
// the Authority, at settlement. Spending it twice is impossible.
type Nullifier []byte

// NullifierHash is the BLAKE2b-256 digest of a nullifier. It is the only form of the
// nullifier that is ever persisted or published.
type NullifierHash [blake2b.Size256]byte

// ParseNullifier decodes a hex nullifier, with or without a 0x prefix.
func ParseNullifier(s string) (Nullifier, error) {
	raw, err := hex.DecodeString(strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X"))
	if err != nil {
		return nil, ErrInvalidNullifier
	}
	n := Nullifier(raw)
	if err := n.Validate(); err != nil {
		return nil, err
	}
	return n, nil
}

// Validate checks the nullifier is non-empty and bounded.
func (n Nullifier) Validate() error {
	if len(n) == 0 || len(n) > MaxNullifierSize {
		return ErrInvalidNullifier
	}
	return nil
}

// Hash returns the BLAKE2b-256 digest of the nullifier.
func (n Nullifier) Hash() NullifierHash {
	return blake2b.Sum256(n)
}

// String returns the 0x-prefixed lowercase hex form of the digest.
func (h NullifierHash) String() string {
	return "0x" + hex.EncodeToString(h[:])
}

// MarshalText implements encoding.TextMarshaler.
func (h NullifierHash) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}
