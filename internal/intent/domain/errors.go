package domain

import (
	"github.com/allisson/mist/internal/errors"
)

var (
	// ErrIntentNotFound indicates the intent does not exist, or was already settled or cancelled.
	ErrIntentNotFound = errors.Wrap(errors.ErrNotFound, "swap intent not found")

	// ErrInvalidLegs indicates a direct settlement named no destination or more than MaxLegs.
	ErrInvalidLegs = errors.Wrap(errors.ErrInvalidInput, "settlement must have one or two legs")

	// ErrNothingToDisburse indicates every leg of a direct settlement was zero.
	ErrNothingToDisburse = errors.Wrap(errors.ErrInvalidInput, "settlement disburses nothing")

	// ErrInvalidDeadline indicates an intent was created without a deadline.
	ErrInvalidDeadline = errors.Wrap(errors.ErrInvalidInput, "invalid deadline")
)
