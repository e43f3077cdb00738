package cash

import (
	"github.com/tranche-io/tranche"
	"github.com/tranche-io/tranche/coin"
	"github.com/tranche-io/tranche/errors"
)

func MoveCoins(db tranche.KVStore, bank CoinMover, src, dest tranche.Address, amounts []*coin.Coin) error {
	for _, c := range amounts {
		err := bank.MoveCoins(db, src, dest, *c)
		if err != nil {
			return errors.Wrapf(err, "failed to move %q", c.String())
		}
	}
	return nil
}
