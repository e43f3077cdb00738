package vesting

import (
	"github.com/tranche-io/tranche"
	"github.com/tranche-io/tranche/errors"
	"github.com/tranche-io/tranche/migration"
	"github.com/tranche-io/tranche/orm"
)

func init() {
	migration.MustRegister(1, &VestingSchedule{}, migration.NoModification)
}

var _ orm.Model = (*VestingSchedule)(nil)

// Validate ensures the schedule is valid.
func (s *VestingSchedule) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", s.Metadata.Validate())
	errs = errors.AppendField(errs, "Recipient", s.Recipient.Validate())
	if !s.Amount.IsPositive() {
		errs = errors.AppendField(errs, "Amount",
			errors.Wrap(errors.ErrAmount, "must be a positive amount"))
	} else {
		errs = errors.AppendField(errs, "Amount", s.Amount.Validate())
	}
	if !s.ReleasedAmount.IsNonNegative() {
		errs = errors.AppendField(errs, "ReleasedAmount",
			errors.Wrap(errors.ErrAmount, "cannot be negative"))
	}
	if !s.ReleasedAmount.IsZero() && !s.ReleasedAmount.SameType(s.Amount) {
		errs = errors.AppendField(errs, "ReleasedAmount",
			errors.Wrap(errors.ErrCurrency, "ticker mismatch"))
	}
	if !s.Amount.IsGTE(s.ReleasedAmount) {
		errs = errors.AppendField(errs, "ReleasedAmount",
			errors.Wrap(errors.ErrAmount, "cannot exceed total amount"))
	}
	errs = errors.AppendField(errs, "StartTime", s.StartTime.Validate())
	if s.CliffTime < s.StartTime {
		errs = errors.AppendField(errs, "CliffTime",
			errors.Wrap(errors.ErrInput, "cannot predate start time"))
	} else {
		errs = errors.AppendField(errs, "CliffTime", s.CliffTime.Validate())
	}
	if s.Duration <= 0 {
		errs = errors.AppendField(errs, "Duration",
			errors.Wrap(errors.ErrInput, "must be a positive duration"))
	}
	return errs
}

// Condition returns the condition for a vesting schedule with the
// given key.
func Condition(key []byte) tranche.Condition {
	return tranche.NewCondition("vesting", "seq", key)
}

// CustodianAccount is the address all granted funds are held under
// until they are released. It must be funded before any release can be
// paid out.
func CustodianAccount() tranche.Address {
	return tranche.NewCondition("vesting", "pool", []byte("grants")).Address()
}

var vestingSeq = orm.NewSequence("vesting", "id")

// NewBucket returns a bucket for storing vesting schedules. Each
// recipient can be bound to at most one schedule.
func NewBucket() orm.ModelBucket {
	b := orm.NewModelBucket("vest", &VestingSchedule{},
		orm.WithIDSequence(vestingSeq),
		orm.WithIndex("recipient", idxRecipient, true),
	)
	return migration.NewModelBucket("vesting", b)
}

func idxRecipient(obj orm.Object) ([]byte, error) {
	if obj == nil {
		return nil, errors.Wrap(errors.ErrHuman, "cannot take index of nil")
	}
	s, ok := obj.Value().(*VestingSchedule)
	if !ok {
		return nil, errors.Wrap(errors.ErrHuman, "can only take index of VestingSchedule")
	}
	return s.Recipient, nil
}

// scheduleByRecipient returns the schedule bound to the given recipient
// together with its key. ErrNotFound is returned when no schedule
// exists for that address.
func scheduleByRecipient(db tranche.ReadOnlyKVStore, b orm.ModelBucket, recipient tranche.Address) (*VestingSchedule, []byte, error) {
	var schedules []*VestingSchedule
	keys, err := b.ByIndex(db, "recipient", recipient, &schedules)
	if err != nil {
		return nil, nil, errors.Wrap(err, "recipient index")
	}
	if len(schedules) == 0 {
		return nil, nil, errors.Wrapf(errors.ErrNotFound, "no schedule for %q", recipient)
	}
	// Recipient index is unique so at most one schedule can match.
	return schedules[0], keys[0], nil
}
