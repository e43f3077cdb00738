package migration

import (
	"github.com/tranche-io/tranche"
	"github.com/tranche-io/tranche/errors"
	"github.com/tranche-io/tranche/gconf"
)

func (c *Configuration) Validate() error {
	if err := c.Admin.Validate(); err != nil {
		return errors.Wrap(err, "admin")
	}
	return nil
}

func mustLoadConf(db gconf.Store) Configuration {
	var conf Configuration
	if err := gconf.Load(db, "migration", &conf); err != nil {
		err = errors.Wrap(err, "load configuration")
		panic(err)
	}
	return conf
}

// CurrentAdmin returns the migration extension admin address as currently
// configured. This is the address that controls schema upgrades and, unless
// an extension decides otherwise, initialization of extension configurations.
func CurrentAdmin(db tranche.ReadOnlyKVStore) (tranche.Address, error) {
	var conf Configuration
	if err := gconf.Load(db, "migration", &conf); err != nil {
		return nil, errors.Wrap(err, "load configuration")
	}
	return conf.Admin, nil
}
