package gconf

import (
	"testing"

	"github.com/tranche-io/tranche"
	"github.com/tranche-io/tranche/coin"
	"github.com/tranche-io/tranche/errors"
	"github.com/tranche-io/tranche/store"
	"github.com/tranche-io/tranche/tranchetest"
	"github.com/tranche-io/tranche/tranchetest/assert"
)

func TestSaveLoad(t *testing.T) {
	db := store.MemStore()

	conf := myconfig{
		Owner: tranchetest.NewCondition().Address(),
		Num:   852151421,
		Str:   "foobar",
		Cn:    coin.NewCoin(51, 924, "VST"),
	}
	assert.Nil(t, Save(db, "mypkg", &conf))

	var loaded myconfig
	assert.Nil(t, Load(db, "mypkg", &loaded))
	assert.Equal(t, conf, loaded)

	// Each package maintains its own configuration.
	var other myconfig
	if err := Load(db, "otherpkg", &other); !errors.ErrNotFound.Is(err) {
		t.Fatalf("unexpected error for a missing configuration: %s", err)
	}
}

func TestSaveValidates(t *testing.T) {
	cases := map[string]struct {
		Conf    myconfig
		WantErr *errors.Error
	}{
		"invalid owner address": {
			Conf: myconfig{
				Owner: tranche.Address("too short"),
				Cn:    coin.NewCoin(1, 0, "VST"),
			},
			WantErr: errors.ErrInput,
		},
		"invalid coin": {
			Conf: myconfig{
				Owner: tranchetest.NewCondition().Address(),
				Cn:    coin.Coin{Whole: 1},
			},
			WantErr: errors.ErrCurrency,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			if err := Save(db, "mypkg", &tc.Conf); !tc.WantErr.Is(err) {
				t.Fatalf("unexpected save error: %s", err)
			}
			// A failed save must not write anything.
			var loaded myconfig
			if err := Load(db, "mypkg", &loaded); !errors.ErrNotFound.Is(err) {
				t.Fatalf("unexpected load error: %s", err)
			}
		})
	}
}
