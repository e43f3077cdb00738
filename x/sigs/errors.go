package sigs

import (
	"github.com/tranche-io/tranche/errors"
)

// This package reserves error codes 1000-1099.
var (
	// ErrInvalidSequence is returned when the nonce does not match the
	// expected account sequence value.
	ErrInvalidSequence = errors.Register(1000, "invalid sequence")
)
