package cash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tranche-io/tranche"
	coin "github.com/tranche-io/tranche/coin"
	"github.com/tranche-io/tranche/errors"
	"github.com/tranche-io/tranche/migration"
	"github.com/tranche-io/tranche/store"
	"github.com/tranche-io/tranche/tranchetest"
)

func coins(t *testing.T, kv tranche.KVStore, c BaseController, addr tranche.Address) coin.Coins {
	t.Helper()
	cs, err := c.Balance(kv, addr)
	if err != nil && !errors.ErrNotFound.Is(err) {
		t.Fatalf("cannot query balance: %s", err)
	}
	return cs
}

func TestCoinMint(t *testing.T) {
	kv := store.MemStore()
	migration.MustInitPkg(kv, "cash")
	addr := tranchetest.NewCondition().Address()
	addr2 := tranchetest.NewCondition().Address()

	controller := NewController(NewBucket())

	plus := coin.NewCoin(500, 1000, "FOO")
	minus := coin.NewCoin(-400, -600, "FOO")
	total := coin.NewCoin(100, 400, "FOO")
	other := coin.NewCoin(1, 0, "DING")

	assert.Nil(t, coins(t, kv, controller, addr))
	assert.Nil(t, coins(t, kv, controller, addr2))

	// mint positive
	err := controller.CoinMint(kv, addr, plus)
	require.NoError(t, err)
	w := coins(t, kv, controller, addr)
	require.NotNil(t, w)
	assert.True(t, w.Contains(plus))
	assert.True(t, w.Contains(total))
	assert.False(t, w.Contains(other))
	assert.Nil(t, coins(t, kv, controller, addr2))

	// mint negative
	err = controller.CoinMint(kv, addr, minus)
	require.NoError(t, err)
	w = coins(t, kv, controller, addr)
	require.NotNil(t, w)
	assert.False(t, w.Contains(plus))
	assert.True(t, w.Contains(total))
	assert.False(t, w.Contains(other))
	assert.Nil(t, coins(t, kv, controller, addr2))

	// mint to other wallet
	err = controller.CoinMint(kv, addr2, other)
	require.NoError(t, err)
	w = coins(t, kv, controller, addr)
	require.NotNil(t, w)
	assert.True(t, w.Contains(total))
	assert.False(t, w.Contains(other))
	w2 := coins(t, kv, controller, addr2)
	require.NotNil(t, w2)
	assert.False(t, w2.Contains(total))
	assert.True(t, w2.Contains(other))

	// set to zero is fine
	err = controller.CoinMint(kv, addr2, other.Negative())
	require.NoError(t, err)
	w2 = coins(t, kv, controller, addr2)
	assert.True(t, w2.IsEmpty())

	// overflow is rejected
	err = controller.CoinMint(kv, addr, coin.NewCoin(coin.MaxInt, 0, "FOO"))
	assert.Error(t, err)
	w = coins(t, kv, controller, addr)
	require.NotNil(t, w)
	assert.True(t, w.Equals(mustCombineCoins(total)))
}

func TestCoinBurn(t *testing.T) {
	kv := store.MemStore()
	migration.MustInitPkg(kv, "cash")
	addr := tranchetest.NewCondition().Address()

	controller := NewController(NewBucket())

	require.NoError(t, controller.CoinMint(kv, addr, coin.NewCoin(10, 0, "FOO")))

	// cannot burn more than owned
	err := controller.CoinBurn(kv, addr, coin.NewCoin(20, 0, "FOO"))
	assert.True(t, errors.ErrAmount.Is(err), "%+v", err)

	// cannot burn a negative amount
	err = controller.CoinBurn(kv, addr, coin.NewCoin(-1, 0, "FOO"))
	assert.True(t, errors.ErrAmount.Is(err), "%+v", err)

	// partial burn
	require.NoError(t, controller.CoinBurn(kv, addr, coin.NewCoin(4, 0, "FOO")))
	w := coins(t, kv, controller, addr)
	assert.True(t, w.Contains(coin.NewCoin(6, 0, "FOO")))

	// burn the rest
	require.NoError(t, controller.CoinBurn(kv, addr, coin.NewCoin(6, 0, "FOO")))
	w = coins(t, kv, controller, addr)
	assert.True(t, w.IsEmpty())
}

func TestMoveCoins(t *testing.T) {
	kv := store.MemStore()
	migration.MustInitPkg(kv, "cash")
	addr := tranchetest.NewCondition().Address()
	addr2 := tranchetest.NewCondition().Address()
	addr3 := tranchetest.NewCondition().Address()

	controller := NewController(NewBucket())

	cc := "MONY"
	bank := coin.NewCoin(50000, 0, cc)
	send := coin.NewCoin(300, 0, cc)

	// can't send empty
	err := controller.MoveCoins(kv, addr, addr2, send)
	require.Error(t, err)
	// so we issue money
	err = controller.CoinMint(kv, addr, bank)
	require.NoError(t, err)

	// proper move
	err = controller.MoveCoins(kv, addr, addr2, send)
	require.NoError(t, err)
	w := coins(t, kv, controller, addr)
	require.NotNil(t, w)
	assert.True(t, w.Contains(coin.NewCoin(49700, 0, cc)))
	w2 := coins(t, kv, controller, addr2)
	require.NotNil(t, w2)
	assert.True(t, w2.Contains(send))
	w3 := coins(t, kv, controller, addr3)
	require.Nil(t, w3)

	// cannot send negative, zero
	err = controller.MoveCoins(kv, addr2, addr3, send.Negative())
	assert.Error(t, err)
	err = controller.MoveCoins(kv, addr2, addr3, coin.NewCoin(0, 0, cc))
	assert.Error(t, err)
	w2 = coins(t, kv, controller, addr2)
	assert.True(t, w2.Contains(send))

	// cannot send too much or no currency
	err = controller.MoveCoins(kv, addr2, addr3, bank)
	assert.Error(t, err)
	err = controller.MoveCoins(kv, addr2, addr3, coin.NewCoin(5, 0, "BAD"))
	assert.Error(t, err)
	w2 = coins(t, kv, controller, addr2)
	assert.True(t, w2.Contains(send))

	// send all coins
	err = controller.MoveCoins(kv, addr2, addr3, send)
	assert.NoError(t, err)
	w2 = coins(t, kv, controller, addr2)
	assert.True(t, w2.IsEmpty())
	w3 = coins(t, kv, controller, addr3)
	assert.True(t, w3.Contains(send))
}

// mustCombineCoins has one return value for tests...
func mustCombineCoins(cs ...coin.Coin) coin.Coins {
	s, err := coin.CombineCoins(cs...)
	if err != nil {
		panic(err)
	}
	return s
}
