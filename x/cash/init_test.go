package cash

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tranche-io/tranche"
	coin "github.com/tranche-io/tranche/coin"
	"github.com/tranche-io/tranche/gconf"
	"github.com/tranche-io/tranche/migration"
	"github.com/tranche-io/tranche/store"
	"github.com/tranche-io/tranche/tranchetest"
)

func TestInitState(t *testing.T) {
	addr := tranchetest.NewCondition().Address()
	collector := tranchetest.NewCondition().Address()

	confOpt := []byte(`{"cash": {
		"collector_address": "` + collector.String() + `",
		"minimal_fee": {"whole": 0, "fractional": 10, "ticker": "FOO"}
	}}`)

	accounts := []GenesisAccount{
		{
			Address: addr,
			Set: Set{
				Coins: mustCombineCoins(
					coin.NewCoin(100, 5, "ATM"),
					coin.NewCoin(50, 0, "ETH"),
				),
			},
		},
	}
	accountsRaw, err := json.Marshal(accounts)
	require.NoError(t, err)

	cases := map[string]struct {
		opts       tranche.Options
		wantErr    bool
		acct       tranche.Address
		wantWallet coin.Coins
	}{
		"no config means initialization failure": {
			opts:    tranche.Options{},
			wantErr: true,
		},
		"config without accounts": {
			opts: tranche.Options{"conf": confOpt},
		},
		"a genesis account is credited": {
			opts: tranche.Options{
				"conf": confOpt,
				"cash": accountsRaw,
			},
			acct: addr,
			wantWallet: mustCombineCoins(
				coin.NewCoin(100, 5, "ATM"),
				coin.NewCoin(50, 0, "ETH"),
			),
		},
		"malformed account data": {
			opts: tranche.Options{
				"conf": confOpt,
				"cash": []byte(`[{"coins": 123}]`),
			},
			wantErr: true,
		},
	}

	init := Initializer{}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			kv := store.MemStore()
			migration.MustInitPkg(kv, "cash")

			err := init.FromGenesis(tc.opts, tranche.GenesisParams{}, kv)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)

			var conf Configuration
			require.NoError(t, gconf.Load(kv, "cash", &conf))
			assert.Equal(t, collector, conf.CollectorAddress)

			if tc.acct != nil {
				obj, err := NewBucket().Get(kv, tc.acct)
				require.NoError(t, err)
				require.NotNil(t, obj)
				assert.True(t, tc.wantWallet.Equals(AsCoins(obj)))
			}
		})
	}
}
