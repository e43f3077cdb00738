package cash

import (
	"github.com/tranche-io/tranche"
	"github.com/tranche-io/tranche/errors"
	"github.com/tranche-io/tranche/gconf"
)

// GenesisAccount is used to parse the json from genesis file
// use tranche.Address, so address in hex, not base64
type GenesisAccount struct {
	Address tranche.Address `json:"address"`
	Set
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ tranche.Initializer = (*Initializer)(nil)

// FromGenesis will parse initial account info from genesis
// and save it to the database
func (Initializer) FromGenesis(opts tranche.Options, params tranche.GenesisParams, kv tranche.KVStore) error {
	if err := gconf.InitConfig(kv, opts, "cash", &Configuration{}); err != nil {
		return errors.Wrap(err, "init config")
	}

	accts := []GenesisAccount{}
	if err := opts.ReadOptions("cash", &accts); err != nil {
		return err
	}
	bucket := NewBucket()
	for _, acct := range accts {
		if err := acct.Address.Validate(); err != nil {
			return err
		}
		wallet, err := WalletWith(acct.Address, acct.Set.Coins...)
		if err != nil {
			return err
		}
		if err := bucket.Save(kv, wallet); err != nil {
			return err
		}
	}
	return nil
}
