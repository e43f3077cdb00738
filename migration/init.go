package migration

import (
	"github.com/tranche-io/tranche"
	"github.com/tranche-io/tranche/errors"
	"github.com/tranche-io/tranche/gconf"
)

// Initializer fulfils the Initializer interface to load data from the genesis
// file
type Initializer struct{}

var _ tranche.Initializer = Initializer{}

// FromGenesis will parse initial schema information from genesis and save it
// to the database.
func (Initializer) FromGenesis(opts tranche.Options, params tranche.GenesisParams, kv tranche.KVStore) error {
	if err := gconf.InitConfig(kv, opts, "migration", &Configuration{}); err != nil {
		return errors.Wrap(err, "init config")
	}

	var pkgs []string
	if err := opts.ReadOptions("initialize_schema", &pkgs); err != nil {
		return errors.Wrap(err, "cannot load schema package names")
	}
	// This package schema must always be initialized.
	pkgs = append(pkgs, "migration")

	schema := NewSchemaBucket()
	for _, name := range pkgs {
		_, err := schema.Create(kv, &Schema{
			Metadata: &tranche.Metadata{Schema: 1},
			Pkg:      name,
			Version:  1,
		})
		// Duplicated initializations are ignored.
		if err != nil && !errors.ErrDuplicate.Is(err) {
			return errors.Wrapf(err, "initialize %q schema", name)
		}
	}
	return nil
}
