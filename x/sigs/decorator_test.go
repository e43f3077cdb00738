package sigs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tranche-io/tranche"
	"github.com/tranche-io/tranche/crypto"
	"github.com/tranche-io/tranche/migration"
	"github.com/tranche-io/tranche/store"
)

func TestDecorator(t *testing.T) {

	kv := store.MemStore()
	migration.MustInitPkg(kv, "sigs")
	checkKv := kv.CacheWrap()
	signers := new(SigCheckHandler)
	d := NewDecorator()
	chainID := "deco-rate"
	ctx := tranche.WithChainID(context.Background(), chainID)

	priv := crypto.GenPrivKeyEd25519()
	perms := []tranche.Condition{priv.PublicKey().Condition()}

	bz := []byte("art")
	tx := NewStdTx(bz)
	sig, err := SignTx(priv, tx, chainID, 0)
	require.NoError(t, err)
	sig1, err := SignTx(priv, tx, chainID, 1)
	require.NoError(t, err)

	deliver := func(dec tranche.Decorator, my tranche.Tx) error {
		_, err := dec.Deliver(ctx, kv, my, signers)
		return err
	}
	check := func(dec tranche.Decorator, my tranche.Tx) error {
		_, err := dec.Check(ctx, checkKv, my, signers)
		return err
	}

	for i, fn := range []func(tranche.Decorator, tranche.Tx) error{check, deliver} {
		// test with no sigs
		tx.Signatures = nil
		err := fn(d, tx)
		assert.Error(t, err, "%d", i)

		// test with one
		tx.Signatures = []*StdSignature{sig}
		err = fn(d, tx)
		assert.NoError(t, err, "%d", i)
		assert.Equal(t, perms, signers.Signers)

		// test with replay
		err = fn(d, tx)
		assert.Error(t, err, "%d", i)

		// test allowing none
		ad := d.AllowMissingSigs()
		tx.Signatures = nil
		err = fn(ad, tx)
		assert.NoError(t, err, "%d", i)
		assert.Equal(t, []tranche.Condition{}, signers.Signers)

		// test allowing, with next sequence
		tx.Signatures = []*StdSignature{sig1}
		err = fn(ad, tx)
		assert.NoError(t, err, "%d", i)
		assert.Equal(t, perms, signers.Signers)
	}

}

//---------------- helpers --------

// SigCheckHandler stores the seen signers on each call
type SigCheckHandler struct {
	Signers []tranche.Condition
}

var _ tranche.Handler = (*SigCheckHandler)(nil)

func (s *SigCheckHandler) Check(ctx tranche.Context, store tranche.KVStore,
	tx tranche.Tx) (*tranche.CheckResult, error) {
	s.Signers = Authenticate{}.GetConditions(ctx)
	return &tranche.CheckResult{}, nil
}

func (s *SigCheckHandler) Deliver(ctx tranche.Context, store tranche.KVStore,
	tx tranche.Tx) (*tranche.DeliverResult, error) {
	s.Signers = Authenticate{}.GetConditions(ctx)
	return &tranche.DeliverResult{}, nil
}
