package app

import (
	"github.com/tranche-io/tranche"
)

// ChainInitializers lets you initialize many extensions with one function
func ChainInitializers(inits ...tranche.Initializer) tranche.Initializer {
	return chainInitializer{inits}
}

type chainInitializer struct {
	inits []tranche.Initializer
}

// FromGenesis will pass opts to all Initializers in the list,
// aborting at the first error.
func (c chainInitializer) FromGenesis(opts tranche.Options, params tranche.GenesisParams, kv tranche.KVStore) error {
	for _, i := range c.inits {
		err := i.FromGenesis(opts, params, kv)
		if err != nil {
			return err
		}
	}
	return nil
}
