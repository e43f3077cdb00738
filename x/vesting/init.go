package vesting

import (
	"github.com/tranche-io/tranche"
	"github.com/tranche-io/tranche/coin"
	"github.com/tranche-io/tranche/errors"
	"github.com/tranche-io/tranche/gconf"
	"github.com/tranche-io/tranche/x/cash"
)

// Initializer fulfils the Initializer interface to load data from the
// genesis file.
type Initializer struct {
	Minter cash.CoinMinter
}

var _ tranche.Initializer = (*Initializer)(nil)

// FromGenesis will parse initial vesting schedules from genesis and
// save them in the database. Granted funds are minted directly into the
// custodian account. Unlike schedules created at runtime, genesis
// schedules carry an explicit start time.
func (i *Initializer) FromGenesis(opts tranche.Options, params tranche.GenesisParams, kv tranche.KVStore) error {
	if err := gconf.InitConfig(kv, opts, "vesting", &Configuration{}); err != nil {
		return errors.Wrap(err, "init config")
	}

	var schedules []struct {
		Recipient   tranche.Address      `json:"recipient"`
		Amount      coin.Coin            `json:"amount"`
		StartTime   tranche.UnixTime     `json:"start_time"`
		Duration    tranche.UnixDuration `json:"duration"`
		CliffOffset tranche.UnixDuration `json:"cliff_offset"`
	}
	if err := opts.ReadOptions("vesting", &schedules); err != nil {
		return err
	}

	bucket := NewBucket()
	for j, g := range schedules {
		s := VestingSchedule{
			Metadata:       &tranche.Metadata{Schema: 1},
			Recipient:      g.Recipient,
			Amount:         g.Amount,
			ReleasedAmount: coin.Coin{Ticker: g.Amount.Ticker},
			StartTime:      g.StartTime,
			CliffTime:      g.StartTime.Add(g.CliffOffset.Duration()),
			Duration:       g.Duration,
		}
		if err := s.Validate(); err != nil {
			return errors.Wrapf(err, "invalid schedule at position %d", j)
		}
		if _, err := bucket.Put(kv, nil, &s); err != nil {
			return errors.Wrapf(err, "cannot store schedule at position %d", j)
		}
		if err := i.Minter.CoinMint(kv, CustodianAccount(), g.Amount); err != nil {
			return errors.Wrap(err, "fund custodian")
		}
	}
	return nil
}
