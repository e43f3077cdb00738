package validators

import (
	"github.com/tranche-io/tranche"
	"github.com/tranche-io/tranche/errors"
)

const optKey = "update_validators"

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ tranche.Initializer = (*Initializer)(nil)

// FromGenesis will parse initial account info from genesis
// and save it to the database
func (*Initializer) FromGenesis(opts tranche.Options, params tranche.GenesisParams, kv tranche.KVStore) error {
	accounts := AccountList{}
	if err := opts.ReadOptions(optKey, &accounts); err != nil {
		return errors.Wrap(err, "read options")
	}
	if err := accounts.Validate(); err != nil {
		return errors.Wrap(err, "accounts")
	}
	bucket := NewAccountBucket()
	return bucket.Save(kv, AccountsWith(accounts))
}
