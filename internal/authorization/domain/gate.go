// Package domain implements the authorization predicate consulted by the threshold
// decryption service before it releases key shares for an encrypted payload.
//
// Payload identifiers come in two layouts:
//
//	Authority-only:        NAMESPACE(32) || nonce(5)                   37 bytes
//	Depositor self-access: NAMESPACE(32) || owner identity(32) || nonce(5)  69 bytes
package domain

import (
	"bytes"
	"encoding/hex"
	"strings"

	ledgerDomain "github.com/allisson/mist/internal/ledger/domain"
)

const (
	// NamespaceSize is the length of the deployment namespace prefix.
	NamespaceSize = 32

	// NonceSize is the length of the trailing nonce.
	NonceSize = 5

	// AuthorityIDLength is the length of an Authority-only identifier.
	AuthorityIDLength = NamespaceSize + NonceSize

	// SelfAccessIDLength is the length of a depositor self-access identifier.
	SelfAccessIDLength = NamespaceSize + ledgerDomain.IdentitySize + NonceSize
)

// Namespace is the fixed public tag every identifier of this deployment starts with.
type Namespace [NamespaceSize]byte

// ParseNamespace decodes a hex namespace, with or without a 0x prefix.
func ParseNamespace(s string) (Namespace, error) {
	var ns Namespace

	raw, err := hex.DecodeString(strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X"))
	if err != nil || len(raw) != NamespaceSize {
		return ns, ErrInvalidNamespaceConfig
	}

	copy(ns[:], raw)
	return ns, nil
}

// String returns the 0x-prefixed lowercase hex form.
func (n Namespace) String() string {
	return "0x" + hex.EncodeToString(n[:])
}

// AuthorityID builds an Authority-only identifier.
func (n Namespace) AuthorityID(nonce [NonceSize]byte) []byte {
	id := make([]byte, 0, AuthorityIDLength)
	id = append(id, n[:]...)
	return append(id, nonce[:]...)
}

// SelfAccessID builds a depositor self-access identifier for owner.
func (n Namespace) SelfAccessID(owner ledgerDomain.Identity, nonce [NonceSize]byte) []byte {
	id := make([]byte, 0, SelfAccessIDLength)
	id = append(id, n[:]...)
	id = append(id, owner[:]...)
	return append(id, nonce[:]...)
}

// AuthorityFunc returns the registered Authority identity. It is only called for
// Authority-only identifiers.
type AuthorityFunc func() (ledgerDomain.Identity, error)

// Check decides whether requester may obtain key shares for id. It returns nil when
// authorized, ErrInvalidNamespace or ErrInvalidIDLength for malformed identifiers,
// ErrAccessDenied when the requester does not match, or the error from authority.
func Check(ns Namespace, id []byte, requester ledgerDomain.Identity, authority AuthorityFunc) error {
	if !bytes.HasPrefix(id, ns[:]) {
		return ErrInvalidNamespace
	}

	switch len(id) {
	case AuthorityIDLength:
		current, err := authority()
		if err != nil {
			return err
		}
		if current.IsZero() || !current.Equal(requester) {
			return ErrAccessDenied
		}
	case SelfAccessIDLength:
		owner, err := ledgerDomain.IdentityFromBytes(id[NamespaceSize : NamespaceSize+ledgerDomain.IdentitySize])
		if err != nil {
			return err
		}
		if !owner.Equal(requester) {
			return ErrAccessDenied
		}
	default:
		return ErrInvalidIDLength
	}

	return nil
}

// Decision is the outcome of an authorization request. Reason is nil when Authorized.
type Decision struct {
	Authorized bool
	Reason     error
}
