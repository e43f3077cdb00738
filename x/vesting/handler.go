package vesting

import (
	"encoding/binary"
	"strconv"

	"github.com/tendermint/tendermint/libs/common"
	"github.com/tranche-io/tranche"
	"github.com/tranche-io/tranche/coin"
	"github.com/tranche-io/tranche/errors"
	"github.com/tranche-io/tranche/gconf"
	"github.com/tranche-io/tranche/migration"
	"github.com/tranche-io/tranche/orm"
	"github.com/tranche-io/tranche/x"
	"github.com/tranche-io/tranche/x/cash"
)

const (
	createCost  int64 = 300
	releaseCost int64 = 100
)

// RegisterRoutes will instantiate and register all handlers in this
// package.
func RegisterRoutes(r tranche.Registry, auth x.Authenticator, ctrl cash.Controller) {
	r = migration.SchemaMigratingRegistry("vesting", r)
	bucket := NewBucket()

	r.Handle(&CreateMsg{}, CreateHandler{auth: auth, bucket: bucket})
	r.Handle(&ReleaseMsg{}, ReleaseHandler{auth: auth, bucket: bucket, bank: ctrl})
	r.Handle(&UpdateConfigurationMsg{},
		gconf.NewUpdateConfigurationHandler("vesting", &Configuration{}, auth, migration.CurrentAdmin))
}

// RegisterQuery will register this bucket as "/vestings".
func RegisterQuery(qr tranche.QueryRouter) {
	NewBucket().Register("vestings", qr)
}

// CreateHandler commits a new vesting schedule. Only the configured
// admin is authorized to grant.
type CreateHandler struct {
	auth   x.Authenticator
	bucket orm.ModelBucket
}

var _ tranche.Handler = CreateHandler{}

// Check just verifies it is properly formed and returns the cost of
// executing it.
func (h CreateHandler) Check(ctx tranche.Context, db tranche.KVStore, tx tranche.Tx) (*tranche.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &tranche.CheckResult{GasAllocated: createCost}, nil
}

// Deliver stores the schedule. The clock starts at the block time of
// this transaction, the message never carries a start time.
func (h CreateHandler) Deliver(ctx tranche.Context, db tranche.KVStore, tx tranche.Tx) (*tranche.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	blockTime, err := tranche.BlockTime(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "block time")
	}
	start := tranche.AsUnixTime(blockTime)

	schedule := &VestingSchedule{
		Metadata:       &tranche.Metadata{},
		Recipient:      msg.Recipient,
		Amount:         *msg.Amount,
		ReleasedAmount: coin.Coin{Ticker: msg.Amount.Ticker},
		StartTime:      start,
		CliffTime:      start.Add(msg.CliffOffset.Duration()),
		Duration:       msg.Duration,
	}
	// Recipient index is unique, a second grant for the same address
	// fails with ErrDuplicate.
	key, err := h.bucket.Put(db, nil, schedule)
	if err != nil {
		return nil, errors.Wrap(err, "cannot store schedule")
	}

	res := &tranche.DeliverResult{
		Data: key,
		Tags: []common.KVPair{
			{Key: []byte("vesting:recipient"), Value: []byte(msg.Recipient.String())},
			{Key: []byte("vesting:id"), Value: []byte(strconv.FormatUint(binary.BigEndian.Uint64(key), 10))},
		},
	}
	return res, nil
}

// validate does all common pre-processing between Check and Deliver.
func (h CreateHandler) validate(ctx tranche.Context, db tranche.KVStore, tx tranche.Tx) (*CreateMsg, error) {
	var msg CreateMsg
	if err := tranche.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	if !h.auth.HasAddress(ctx, conf.Admin) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "admin signature required")
	}
	return &msg, nil
}

// ReleaseHandler pays out whatever accrued beyond the already released
// amount.
type ReleaseHandler struct {
	auth   x.Authenticator
	bucket orm.ModelBucket
	bank   cash.CoinMover
}

var _ tranche.Handler = ReleaseHandler{}

// Check just verifies it is properly formed and returns the cost of
// executing it.
func (h ReleaseHandler) Check(ctx tranche.Context, db tranche.KVStore, tx tranche.Tx) (*tranche.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &tranche.CheckResult{GasAllocated: releaseCost}, nil
}

// Deliver moves the accrued tokens from the custodian account to the
// recipient. The released amount bookkeeping is stored before any funds
// move, so a failed payout can never result in a double payment.
func (h ReleaseHandler) Deliver(ctx tranche.Context, db tranche.KVStore, tx tranche.Tx) (*tranche.DeliverResult, error) {
	schedule, key, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	blockTime, err := tranche.BlockTime(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "block time")
	}
	amount, err := releasable(schedule, tranche.AsUnixTime(blockTime))
	if err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, errors.Wrapf(ErrNoReleasableTranche, "for %q", schedule.Recipient)
	}

	released, err := schedule.ReleasedAmount.Add(amount)
	if err != nil {
		return nil, errors.Wrap(err, "add released")
	}
	if !schedule.Amount.IsGTE(released) {
		return nil, errors.Wrap(errors.ErrHuman, "release exceeds grant")
	}
	schedule.ReleasedAmount = released
	if _, err := h.bucket.Put(db, key, schedule); err != nil {
		return nil, errors.Wrap(err, "cannot store schedule")
	}

	if err := h.bank.MoveCoins(db, CustodianAccount(), schedule.Recipient, amount); err != nil {
		return nil, errors.Wrap(err, "cannot pay out")
	}

	res := &tranche.DeliverResult{
		Data: key,
		Tags: []common.KVPair{
			{Key: []byte("vesting:recipient"), Value: []byte(schedule.Recipient.String())},
			{Key: []byte("vesting:released"), Value: []byte(amount.String())},
		},
	}
	return res, nil
}

// validate does all common pre-processing between Check and Deliver.
func (h ReleaseHandler) validate(ctx tranche.Context, db tranche.KVStore, tx tranche.Tx) (*VestingSchedule, []byte, error) {
	var msg ReleaseMsg
	if err := tranche.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}

	// Apply a default for the recipient.
	recipient := msg.Recipient
	if len(recipient) == 0 {
		recipient = x.MainSigner(ctx, h.auth).Address()
	}
	if !h.auth.HasAddress(ctx, recipient) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "recipient signature required")
	}

	schedule, key, err := scheduleByRecipient(db, h.bucket, recipient)
	if err != nil {
		return nil, nil, err
	}
	return schedule, key, nil
}
