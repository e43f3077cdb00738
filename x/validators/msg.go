package validators

import (
	"github.com/tranche-io/tranche"
	"github.com/tranche-io/tranche/errors"
	"github.com/tranche-io/tranche/migration"
)

func init() {
	migration.MustRegister(1, &ApplyDiffMsg{}, migration.NoModification)
}

var _ tranche.Msg = (*ApplyDiffMsg)(nil)

// Path returns the routing path for this message
func (*ApplyDiffMsg) Path() string {
	return "validators/apply_diff"
}

func (m *ApplyDiffMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	if len(m.ValidatorUpdates) == 0 {
		errs = errors.Append(errs, errors.Wrap(errors.ErrEmpty, "validator set"))
	}
	for _, v := range m.ValidatorUpdates {
		errs = errors.Append(errs, v.Validate())
	}
	return errs
}

// AsDiff returns the updates held by this message, keeping only the last
// update for any given validator.
func (m *ApplyDiffMsg) AsDiff() []tranche.ValidatorUpdate {
	return tranche.ValidatorUpdates{ValidatorUpdates: m.ValidatorUpdates}.Deduplicate(false)
}
