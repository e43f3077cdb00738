package vesting

import (
	"github.com/tranche-io/tranche"
	"github.com/tranche-io/tranche/coin"
	"github.com/tranche-io/tranche/errors"
	"github.com/tranche-io/tranche/migration"
)

func init() {
	migration.MustRegister(1, &CreateMsg{}, migration.NoModification)
	migration.MustRegister(1, &ReleaseMsg{}, migration.NoModification)
	migration.MustRegister(1, &UpdateConfigurationMsg{}, migration.NoModification)
}

var _ tranche.Msg = (*CreateMsg)(nil)
var _ tranche.Msg = (*ReleaseMsg)(nil)
var _ tranche.Msg = (*UpdateConfigurationMsg)(nil)

// Path returns the routing path for this message.
func (CreateMsg) Path() string {
	return "vesting/create"
}

// Validate makes sure that this is sensible.
func (m *CreateMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Recipient", m.Recipient.Validate())
	if coin.IsEmpty(m.Amount) || !m.Amount.IsPositive() {
		errs = errors.AppendField(errs, "Amount",
			errors.Wrap(errors.ErrAmount, "must be a positive amount"))
	} else {
		errs = errors.AppendField(errs, "Amount", m.Amount.Validate())
	}
	if m.Duration <= 0 {
		errs = errors.AppendField(errs, "Duration",
			errors.Wrap(errors.ErrInput, "must be a positive duration"))
	}
	if m.CliffOffset < 0 {
		errs = errors.AppendField(errs, "CliffOffset",
			errors.Wrap(errors.ErrInput, "cannot be negative"))
	}
	return errs
}

// Path returns the routing path for this message.
func (ReleaseMsg) Path() string {
	return "vesting/release"
}

// Validate makes sure that this is sensible. An empty recipient is
// allowed and defaults to the main transaction signer.
func (m *ReleaseMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	if len(m.Recipient) != 0 {
		errs = errors.AppendField(errs, "Recipient", m.Recipient.Validate())
	}
	return errs
}

func (*UpdateConfigurationMsg) Path() string {
	return "vesting/update_configuration"
}

// Validate will skip any zero fields and validate the set ones.
func (m *UpdateConfigurationMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	if m.Patch == nil {
		return errors.AppendField(errs, "Patch", errors.ErrEmpty)
	}
	c := m.Patch
	if len(c.Owner) != 0 {
		errs = errors.AppendField(errs, "Patch.Owner", c.Owner.Validate())
	}
	if len(c.Admin) != 0 {
		errs = errors.AppendField(errs, "Patch.Admin", c.Admin.Validate())
	}
	return errs
}
