package vesting

import (
	"github.com/tranche-io/tranche/errors"
)

// This package reserves error codes 1100-1199.
var (
	// ErrNoReleasableTranche is returned when a release is requested but
	// nothing has accrued beyond the already released amount.
	ErrNoReleasableTranche = errors.Register(1100, "no releasable tranche")
)
