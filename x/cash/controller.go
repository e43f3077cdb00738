package cash

import (
	"github.com/tranche-io/tranche"
	coin "github.com/tranche-io/tranche/coin"
	"github.com/tranche-io/tranche/errors"
)

// Controller is the functionality needed by other extensions to move
// tokens between accounts and to inspect balances.
type Controller interface {
	CoinMover
	CoinMinter
	CoinBurn(db tranche.KVStore, account tranche.Address, amount coin.Coin) error
}

// CoinMover is the interface for moving coins between accounts.
type CoinMover interface {
	// Balance returns the amount of funds stored under given account
	// address. An ErrNotFound is returned if the account does not exist.
	Balance(tranche.KVStore, tranche.Address) (coin.Coins, error)
	MoveCoins(db tranche.KVStore, src tranche.Address, dest tranche.Address, amount coin.Coin) error
}

// CoinMinter is the interface for creating new coins out of thin air.
type CoinMinter interface {
	// CoinMint increase the amount of funds of the given account by the
	// given amount.
	CoinMint(tranche.KVStore, tranche.Address, coin.Coin) error
}

// BaseController implements Controller interface, using WalletBucket
// as the storage engine. Wallet must return something that supports
// Coinage.
type BaseController struct {
	bucket WalletBucket
}

// NewController returns a base controller implementation.
func NewController(bucket WalletBucket) BaseController {
	return BaseController{bucket: bucket}
}

// Balance returns the coins held under the given account address.
func (c BaseController) Balance(store tranche.KVStore, src tranche.Address) (coin.Coins, error) {
	state, err := c.bucket.Get(store, src)
	if err != nil {
		return nil, errors.Wrap(err, "cannot get account state")
	}
	if state == nil {
		return nil, errors.Wrap(errors.ErrNotFound, "no account")
	}
	return AsCoins(state), nil
}

// MoveCoins moves the given amount from src to dest.
// If src doesn't exist, or doesn't have sufficient
// coins, it fails.
func (c BaseController) MoveCoins(store tranche.KVStore,
	src tranche.Address, dest tranche.Address, amount coin.Coin) error {

	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "non-positive amount %v", &amount)
	}

	sender, err := c.bucket.Get(store, src)
	if err != nil {
		return err
	}
	if sender == nil {
		return errors.Wrapf(errors.ErrEmpty, "empty account %s", src)
	}
	if !AsCoins(sender).Contains(amount) {
		return errors.Wrap(errors.ErrAmount, "insufficient funds")
	}

	recipient, err := c.bucket.GetOrCreate(store, dest)
	if err != nil {
		return err
	}
	if err := Subtract(AsCoinage(sender), amount); err != nil {
		return err
	}
	if err := Add(AsCoinage(recipient), amount); err != nil {
		return err
	}
	if err := c.bucket.Save(store, sender); err != nil {
		return err
	}
	return c.bucket.Save(store, recipient)
}

// CoinMint attempts to add the given amount of coins to
// the destination address. Fails if it overflows the wallet.
//
// Note the amount may also be negative:
// "the lord giveth and the lord taketh away"
func (c BaseController) CoinMint(store tranche.KVStore,
	dest tranche.Address, amount coin.Coin) error {

	recipient, err := c.bucket.GetOrCreate(store, dest)
	if err != nil {
		return err
	}
	if err := Add(AsCoinage(recipient), amount); err != nil {
		return err
	}
	return c.bucket.Save(store, recipient)
}

// CoinBurn removes the given amount of coins from the given account.
// Fails if the account does not hold enough.
func (c BaseController) CoinBurn(store tranche.KVStore,
	account tranche.Address, amount coin.Coin) error {

	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "non-positive amount %v", &amount)
	}
	holder, err := c.bucket.Get(store, account)
	if err != nil {
		return err
	}
	if holder == nil {
		return errors.Wrapf(errors.ErrEmpty, "empty account %s", account)
	}
	if !AsCoins(holder).Contains(amount) {
		return errors.Wrap(errors.ErrAmount, "insufficient funds")
	}
	if err := Subtract(AsCoinage(holder), amount); err != nil {
		return err
	}
	return c.bucket.Save(store, holder)
}
