package domain

import (
	"github.com/allisson/mist/internal/errors"
)

var (
	// ErrInvalidNamespace indicates the identifier does not start with the deployment namespace.
	ErrInvalidNamespace = errors.Wrap(errors.ErrInvalidInput, "identifier has invalid namespace")

	// ErrInvalidIDLength indicates the identifier matches neither known layout.
	ErrInvalidIDLength = errors.Wrap(errors.ErrInvalidInput, "identifier has invalid length")

	// ErrAccessDenied indicates the requester may not decrypt the payload.
	ErrAccessDenied = errors.Wrap(errors.ErrForbidden, "access denied")

	// ErrInvalidNamespaceConfig indicates the configured namespace is not 32 bytes of hex.
	ErrInvalidNamespaceConfig = errors.Wrap(errors.ErrInvalidInput, "namespace must be 32 bytes of hex")
)
