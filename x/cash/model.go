package cash

import (
	"github.com/tranche-io/tranche"
	coin "github.com/tranche-io/tranche/coin"
	"github.com/tranche-io/tranche/errors"
	"github.com/tranche-io/tranche/migration"
	"github.com/tranche-io/tranche/orm"
)

// BucketName is where we store the balances
const BucketName = "cash"

func init() {
	migration.MustRegister(1, &Set{}, migration.NoModification)
}

var _ orm.CloneableData = (*Set)(nil)

// Validate requires that all coins are in alphabetical order
func (s *Set) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", s.Metadata.Validate())
	errs = errors.AppendField(errs, "Coins", coin.Coins(s.Coins).Validate())
	return errs
}

// Copy makes a new set with the same coins
func (s *Set) Copy() orm.CloneableData {
	return &Set{
		Metadata: s.Metadata.Copy(),
		Coins:    coin.Coins(s.Coins).Clone(),
	}
}

// SetCoins allows to set coins held by the given wallet object.
func (s *Set) SetCoins(coins []*coin.Coin) {
	s.Coins = coins
}

// NewWallet creates an empty wallet with this address serves as an object
// for the bucket.
func NewWallet(key tranche.Address) orm.Object {
	return orm.NewSimpleObj(key, &Set{
		Metadata: &tranche.Metadata{Schema: 1},
	})
}

// WalletWith creates an wallet with a balance.
func WalletWith(key tranche.Address, coins ...*coin.Coin) (orm.Object, error) {
	obj := NewWallet(key)
	err := Concat(AsCoinage(obj), coins)
	if err != nil {
		return nil, err
	}
	return obj, nil
}

//--- cash.Bucket - type-safe bucket

// Bucket is a type-safe wrapper around the schema migrating bucket.
type Bucket struct {
	migration.Bucket
}

var _ WalletBucket = Bucket{}

// NewBucket initializes a cash.Bucket with default name
func NewBucket() Bucket {
	return Bucket{
		Bucket: migration.NewBucket("cash", BucketName, NewWallet(nil)),
	}
}

// GetOrCreate will return the object if found, or create one
// if not.
func (b Bucket) GetOrCreate(db tranche.KVStore, key tranche.Address) (orm.Object, error) {
	obj, err := b.Get(db, key)
	if err == nil && obj == nil {
		obj = NewWallet(key)
	}
	return obj, err
}

// WalletBucket provides the functionality needed by the controller to
// store and access wallets. This can be decorated to add indexes on
// top of the default bucket.
type WalletBucket interface {
	GetOrCreate(db tranche.KVStore, key tranche.Address) (orm.Object, error)
	Get(db tranche.ReadOnlyKVStore, key []byte) (orm.Object, error)
	Save(db tranche.KVStore, obj orm.Object) error
}

// NamedBucket is a wallet bucket that can also register itself
// with the query router.
type NamedBucket interface {
	WalletBucket
	Register(name string, r tranche.QueryRouter)
}

// Coinage represents any object that can hold coins. Wallets
// implement this over their Set value.
type Coinage interface {
	GetCoins() []*coin.Coin
	SetCoins([]*coin.Coin)
}

// AsCoinage will safely type-cast any value from a bucket to a Coinage
func AsCoinage(obj orm.Object) Coinage {
	if obj == nil || obj.Value() == nil {
		return nil
	}
	return obj.Value().(Coinage)
}

// AsCoins will extract coins from any object that holds them
func AsCoins(obj orm.Object) coin.Coins {
	c := AsCoinage(obj)
	if c == nil {
		return nil
	}
	return coin.Coins(c.GetCoins())
}

// Concat combines the coins to make sure they are sorted and rounded
// off, with no duplicates or 0 values.
func Concat(wallet Coinage, coins coin.Coins) error {
	joint, err := coin.Coins(wallet.GetCoins()).Combine(coins)
	if err != nil {
		return err
	}
	wallet.SetCoins(joint)
	return nil
}

// Subtract modifies the wallet to remove the given coin.
func Subtract(wallet Coinage, c coin.Coin) error {
	return Add(wallet, c.Negative())
}

// Add modifies the wallet to add the given coin.
func Add(wallet Coinage, c coin.Coin) error {
	cs, err := coin.Coins(wallet.GetCoins()).Add(c)
	if err != nil {
		return err
	}
	wallet.SetCoins(cs)
	return nil
}
