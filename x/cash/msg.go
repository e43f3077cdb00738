package cash

import (
	"github.com/tranche-io/tranche"
	coin "github.com/tranche-io/tranche/coin"
	"github.com/tranche-io/tranche/errors"
	"github.com/tranche-io/tranche/migration"
)

func init() {
	migration.MustRegister(1, &SendMsg{}, migration.NoModification)
	migration.MustRegister(1, &UpdateConfigurationMsg{}, migration.NoModification)
}

// Ensure we implement the Msg interface
var _ tranche.Msg = (*SendMsg)(nil)

const (
	sendTxCost int64 = 100

	maxMemoSize int = 128
	maxRefSize  int = 64
)

// Path returns the routing path for this message
func (SendMsg) Path() string {
	return "cash/send"
}

// Validate makes sure that this is sensible
func (s *SendMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", s.Metadata.Validate())
	if coin.IsEmpty(s.Amount) || !s.Amount.IsPositive() {
		errs = errors.AppendField(errs, "Amount",
			errors.Wrapf(errors.ErrAmount, "non-positive SendMsg: %#v", s.Amount))
	} else {
		errs = errors.AppendField(errs, "Amount", s.Amount.Validate())
	}
	errs = errors.AppendField(errs, "Source", s.Source.Validate())
	errs = errors.AppendField(errs, "Destination", s.Destination.Validate())
	if len(s.Memo) > maxMemoSize {
		errs = errors.AppendField(errs, "Memo", errors.Wrap(errors.ErrState, "memo too long"))
	}
	if len(s.Ref) > maxRefSize {
		errs = errors.AppendField(errs, "Ref", errors.Wrap(errors.ErrState, "ref too long"))
	}
	return errs
}

// DefaultSource makes sure there is a payer.
// If it was already set, returns s.
// If none was set, returns a new SendMsg with the source set
func (s *SendMsg) DefaultSource(addr []byte) *SendMsg {
	if len(s.GetSource()) != 0 {
		return s
	}
	return &SendMsg{
		Metadata:    s.Metadata,
		Source:      addr,
		Destination: s.GetDestination(),
		Amount:      s.GetAmount(),
		Memo:        s.GetMemo(),
		Ref:         s.GetRef(),
	}
}

// FeeTx exposes information about the fees that
// should be paid
type FeeTx interface {
	GetFees() *FeeInfo
}

// DefaultPayer makes sure there is a payer.
// If it was already set, returns f.
// If none was set, returns a new FeeInfo, with the
// New address set
func (f *FeeInfo) DefaultPayer(addr []byte) *FeeInfo {
	if len(f.GetPayer()) != 0 {
		return f
	}
	return &FeeInfo{
		Payer: addr,
		Fees:  f.GetFees(),
	}
}

// Validate makes sure that this is sensible.
// Note that fee must be present, even if 0
func (f *FeeInfo) Validate() error {
	if f == nil {
		return errors.Wrap(errors.ErrInput, "nil fee info")
	}
	var err error
	fee := f.GetFees()
	if fee == nil {
		err = errors.Append(err, errors.Wrap(errors.ErrAmount, "fees nil"))
	} else {
		err = errors.Append(err, errors.Wrap(fee.Validate(), "fee"))

		if !fee.IsNonNegative() {
			err = errors.Append(err, errors.Wrap(errors.ErrAmount, "negative fees"))
		}
	}

	return errors.Append(err, errors.Wrap(tranche.Address(f.Payer).Validate(), "payer"))
}

var _ tranche.Msg = (*UpdateConfigurationMsg)(nil)

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
	if len(c.CollectorAddress) != 0 {
		errs = errors.AppendField(errs, "Patch.CollectorAddress", c.CollectorAddress.Validate())
	}
	if !c.MinimalFee.IsZero() {
		errs = errors.AppendField(errs, "Patch.MinimalFee", c.MinimalFee.Validate())
		if !c.MinimalFee.IsNonNegative() {
			errs = errors.AppendField(errs, "Patch.MinimalFee",
				errors.Wrap(errors.ErrState, "minimal fee cannot be negative"))
		}
	}
	return errs
}

func (*UpdateConfigurationMsg) Path() string {
	return "cash/update_configuration"
}
