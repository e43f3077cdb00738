package app_test

import (
	"context"
	"testing"

	"github.com/tranche-io/tranche"
	"github.com/tranche-io/tranche/app"
	"github.com/tranche-io/tranche/store/iavl"
	"github.com/tranche-io/tranche/tranchetest/assert"
	abci "github.com/tendermint/tendermint/abci/types"
)

func TestAddValChange(t *testing.T) {
	pubKey := tranche.PubKey{
		Type: "test",
		Data: []byte("someKey"),
	}
	pubKey2 := tranche.PubKey{
		Type: "test",
		Data: []byte("someKey2"),
	}
	myApp := app.NewStoreApp("dummy", iavl.MockCommitStore(), tranche.NewQueryRouter(), context.Background())

	t.Run("Diff is equal to output with one update", func(t *testing.T) {
		diff := []tranche.ValidatorUpdate{
			{PubKey: pubKey, Power: 10},
		}
		myApp.AddValChange(diff)
		res := myApp.EndBlock(abci.RequestEndBlock{})
		assert.Equal(t, tranche.ValidatorUpdatesFromABCI(res.ValidatorUpdates).ValidatorUpdates, diff)
	})

	t.Run("Only produce last update to multiple validators", func(t *testing.T) {
		diff := []tranche.ValidatorUpdate{
			{PubKey: pubKey, Power: 10},
			{PubKey: pubKey2, Power: 15},
			{PubKey: pubKey, Power: 1},
			{PubKey: pubKey2, Power: 2},
		}

		myApp.AddValChange(diff)
		res := myApp.EndBlock(abci.RequestEndBlock{})
		assert.Equal(t, tranche.ValidatorUpdatesFromABCI(res.ValidatorUpdates).ValidatorUpdates, diff[2:])
	})

	t.Run("A call with an empty diff does nothing", func(t *testing.T) {
		diff := []tranche.ValidatorUpdate{
			{PubKey: pubKey, Power: 10},
			{PubKey: pubKey2, Power: 15},
		}
		myApp.AddValChange(diff)
		myApp.AddValChange(make([]tranche.ValidatorUpdate, 0))

		res := myApp.EndBlock(abci.RequestEndBlock{})
		assert.Equal(t, diff, tranche.ValidatorUpdatesFromABCI(res.ValidatorUpdates).ValidatorUpdates)
	})
}
