package vesting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tranche-io/tranche"
	"github.com/tranche-io/tranche/coin"
	"github.com/tranche-io/tranche/migration"
	"github.com/tranche-io/tranche/store"
	"github.com/tranche-io/tranche/tranchetest"
	"github.com/tranche-io/tranche/x/cash"
)

func TestGenesisInitialization(t *testing.T) {
	admin := tranchetest.NewCondition().Address()
	recipient := tranchetest.NewCondition().Address()

	confOpt := []byte(`{"vesting": {
		"metadata": {"schema": 1},
		"owner": "` + admin.String() + `",
		"admin": "` + admin.String() + `"
	}}`)
	schedulesOpt := []byte(`[{
		"recipient": "` + recipient.String() + `",
		"amount": {"whole": 100000, "ticker": "TRN"},
		"start_time": 1577836800,
		"duration": 126144000,
		"cliff_offset": 31536000
	}]`)

	cases := map[string]struct {
		opts    tranche.Options
		wantErr bool
	}{
		"no config means initialization failure": {
			opts:    tranche.Options{"conf": []byte(`{}`)},
			wantErr: true,
		},
		"config without schedules": {
			opts: tranche.Options{"conf": confOpt},
		},
		"a genesis schedule is stored and funded": {
			opts: tranche.Options{
				"conf":    confOpt,
				"vesting": schedulesOpt,
			},
		},
		"an invalid schedule is rejected": {
			opts: tranche.Options{
				"conf": confOpt,
				"vesting": []byte(`[{
					"recipient": "` + recipient.String() + `",
					"amount": {"whole": 100000, "ticker": "TRN"},
					"start_time": 1577836800,
					"duration": 0
				}]`),
			},
			wantErr: true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			kv := store.MemStore()
			migration.MustInitPkg(kv, "cash", "vesting")
			ctrl := cash.NewController(cash.NewBucket())
			ini := Initializer{Minter: ctrl}

			err := ini.FromGenesis(tc.opts, tranche.GenesisParams{}, kv)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected initialization failure")
				}
				return
			}
			require.NoError(t, err)

			conf, err := loadConf(kv)
			require.NoError(t, err)
			assert.Equal(t, admin, conf.Admin)
			assert.Equal(t, admin, conf.Owner)

			if tc.opts["vesting"] == nil {
				return
			}

			s, _, err := scheduleByRecipient(kv, NewBucket(), recipient)
			require.NoError(t, err)
			assert.Equal(t, tranche.UnixTime(1577836800), s.StartTime)
			assert.Equal(t, tranche.UnixTime(1577836800+31536000), s.CliffTime)
			assert.Equal(t, tranche.UnixDuration(126144000), s.Duration)
			assert.True(t, s.Amount.Equals(coin.NewCoin(100000, 0, "TRN")))
			assert.True(t, s.ReleasedAmount.IsZero())

			balance, err := ctrl.Balance(kv, CustodianAccount())
			require.NoError(t, err)
			require.Len(t, balance, 1)
			assert.True(t, balance[0].Equals(coin.NewCoin(100000, 0, "TRN")))
		})
	}
}
