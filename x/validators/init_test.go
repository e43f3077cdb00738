package validators

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/tranche-io/tranche"
	"github.com/tranche-io/tranche/errors"
	"github.com/tranche-io/tranche/migration"
	"github.com/tranche-io/tranche/store"
	"github.com/tranche-io/tranche/tranchetest"
)

func TestGenesisInitialization(t *testing.T) {
	addr := tranchetest.NewCondition().Address()

	cases := map[string]struct {
		genesis   string
		wantErr   *errors.Error
		wantAddrs []tranche.Address
	}{
		"accounts are stored": {
			genesis:   fmt.Sprintf(`{"update_validators": {"addresses": [%q]}}`, addr),
			wantAddrs: []tranche.Address{addr},
		},
		"no accounts declared stores an empty whitelist": {
			genesis: `{}`,
		},
		"address of a wrong length": {
			genesis: `{"update_validators": {"addresses": ["6162"]}}`,
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			migration.MustInitPkg(db, "validators")

			var opts tranche.Options
			if err := json.Unmarshal([]byte(tc.genesis), &opts); err != nil {
				t.Fatalf("cannot parse genesis: %s", err)
			}

			var ini Initializer
			err := ini.FromGenesis(opts, tranche.GenesisParams{}, db)
			if tc.wantErr != nil {
				if !tc.wantErr.Is(err) {
					t.Fatalf("unexpected initialization error: %+v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("initialization failed: %+v", err)
			}

			accounts, err := NewAccountBucket().GetAccounts(db)
			if err != nil {
				t.Fatalf("cannot load accounts: %+v", err)
			}
			list := AsAccountList(accounts)
			if len(list.Addresses) != len(tc.wantAddrs) {
				t.Fatalf("unexpected account list: %v", list)
			}
			for i, a := range tc.wantAddrs {
				if !list.Addresses[i].Equals(a) {
					t.Fatalf("unexpected address %d: %v", i, list.Addresses[i])
				}
			}
		})
	}
}
