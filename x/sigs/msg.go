package sigs

import (
	"github.com/tranche-io/tranche"
	"github.com/tranche-io/tranche/errors"
	"github.com/tranche-io/tranche/migration"
)

func init() {
	migration.MustRegister(1, &BumpSequenceMsg{}, migration.NoModification)
}

const (
	pathBumpSequenceMsg = "sigs/bump_sequence"

	maxSequenceIncrement = 1000
	minSequenceIncrement = 1
)

var _ tranche.Msg = (*BumpSequenceMsg)(nil)

func (msg *BumpSequenceMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", msg.Metadata.Validate())
	if len(msg.User) == 0 {
		errs = errors.AppendField(errs, "User", errors.ErrEmpty)
	} else {
		errs = errors.AppendField(errs, "User", msg.User.Validate())
	}
	if msg.Increment < minSequenceIncrement {
		errs = errors.Append(errs, errors.Wrapf(errors.ErrMsg, "increment must be at least %d", minSequenceIncrement))
	}
	if msg.Increment > maxSequenceIncrement {
		errs = errors.Append(errs, errors.Wrapf(errors.ErrMsg, "increment must not be greater than %d", maxSequenceIncrement))
	}
	return errs
}

func (BumpSequenceMsg) Path() string {
	return pathBumpSequenceMsg
}
