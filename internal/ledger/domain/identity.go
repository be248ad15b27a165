package domain

import (
	"crypto/subtle"
	"encoding/hex"
	"strings"
)

// Identity is a 32-byte account identity: the Authority, a destination, or the owner
// embedded in a self-access payload identifier.
type Identity [IdentitySize]byte

// ParseIdentity decodes a hex identity, with or without a 0x prefix.
func ParseIdentity(s string) (Identity, error) {
	var id Identity

	raw, err := hex.DecodeString(strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X"))
	if err != nil || len(raw) != IdentitySize {
		return id, ErrInvalidIdentity
	}

	copy(id[:], raw)
	return id, nil
}

// IdentityFromBytes copies b into an Identity. b must be exactly IdentitySize bytes.
func IdentityFromBytes(b []byte) (Identity, error) {
	var id Identity
	if len(b) != IdentitySize {
		return id, ErrInvalidIdentity
	}
	copy(id[:], b)
	return id, nil
}

// String returns the 0x-prefixed lowercase hex form.
func (i Identity) String() string {
	return "0x" + hex.EncodeToString(i[:])
}

// IsZero reports whether the identity is all zero bytes.
func (i Identity) IsZero() bool {
	return i == Identity{}
}

// Equal compares two identities in constant time.
func (i Identity) Equal(other Identity) bool {
	return subtle.ConstantTimeCompare(i[:], other[:]) == 1
}

// MarshalText implements encoding.TextMarshaler.
func (i Identity) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (i *Identity) UnmarshalText(text []byte) error {
	id, err := ParseIdentity(string(text))
	if err != nil {
		return err
	}
	*i = id
	return nil
}
