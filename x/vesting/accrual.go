package vesting

import (
	"math/big"

	"github.com/tranche-io/tranche"
	"github.com/tranche-io/tranche/coin"
	"github.com/tranche-io/tranche/errors"
)

// vestedAt returns how much of the total grant has accrued by the given
// time. Nothing accrues before the cliff. Once the full duration has
// passed the total amount is returned exactly, free of any rounding.
func vestedAt(s *VestingSchedule, now tranche.UnixTime) coin.Coin {
	if now < s.CliffTime {
		return coin.Coin{Ticker: s.Amount.Ticker}
	}
	end := s.StartTime.Add(s.Duration.Duration())
	if now >= end {
		return s.Amount
	}

	// Proportional accrual is computed on the total fractional unit
	// count. Whole*FracUnit alone can exceed int64 range so all
	// arithmetic is done on big integers. Division truncates toward
	// zero, the remainder stays unvested until a later call.
	total := new(big.Int).Mul(big.NewInt(s.Amount.Whole), big.NewInt(coin.FracUnit))
	total.Add(total, big.NewInt(s.Amount.Fractional))
	total.Mul(total, big.NewInt(int64(now-s.StartTime)))
	total.Quo(total, big.NewInt(int64(s.Duration)))

	var frac big.Int
	whole, _ := total.QuoRem(total, big.NewInt(coin.FracUnit), &frac)
	return coin.Coin{
		Whole:      whole.Int64(),
		Fractional: frac.Int64(),
		Ticker:     s.Amount.Ticker,
	}
}

// releasable returns the portion of the grant that accrued but was not
// yet paid out. The result is zero right after a release and grows
// again as time passes.
func releasable(s *VestingSchedule, now tranche.UnixTime) (coin.Coin, error) {
	vested := vestedAt(s, now)
	rel, err := vested.Subtract(s.ReleasedAmount)
	if err != nil {
		return coin.Coin{}, errors.Wrap(err, "subtract released")
	}
	return rel, nil
}
