package tranchetest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tranche-io/tranche"
	"github.com/tranche-io/tranche/app"
	"github.com/tranche-io/tranche/errors"
	"github.com/tranche-io/tranche/store"
)

// Tester is implemented by both *testing.T and *testing.B. Use it instead of
// the pointer type to allow notation to accept both objects.
type Tester interface {
	Helper()
	Errorf(string, ...interface{})
	Fatalf(string, ...interface{})
	Logf(string, ...interface{})
}

// AppRunner provides a translation layer between the ABCI interface and the
// application transaction API. It takes care of serializing messages and
// creating blocks.
type AppRunner struct {
	chainID string
	height  int64
	t       Tester
	app     abci.Application
}

// NewAppRunner creates an AppRunner instance that can be used to process
// deliver and check transaction requests using the application API. This
// runner expects all operations to succeed. Any error results in test
// failure.
func NewAppRunner(t Tester, app abci.Application, chainID string) *AppRunner {
	return &AppRunner{
		chainID: chainID,
		height:  0,
		t:       t,
		app:     app,
	}
}

// App is the minimal interface required by the AppRunner to be able to
// connect the ABCI and the application APIs together.
type App interface {
	DeliverTx(tranche.Tx) error
	CheckTx(tranche.Tx) error
	// we also allow standard queries... wrap into a bucket for ease of use
	tranche.ReadOnlyKVStore
}

var _ App = (*AppRunner)(nil)

// InitChain serialize to JSON given genesis and loads it. Loading a genesis is
// causing a block creation.
func (w *AppRunner) InitChain(genesis interface{}) {
	raw, err := json.MarshalIndent(genesis, "", "  ")
	if err != nil {
		w.t.Fatalf("cannot JSON serialize genesis: %s", err)
	}

	// Load the genesis in a separate block.
	changed := w.InBlock(func(App) error {
		w.app.InitChain(abci.RequestInitChain{
			Time:          time.Now(),
			ChainId:       w.chainID,
			AppStateBytes: raw,
		})
		return nil
	})

	if !changed {
		w.t.Fatalf("genesis did not change the state")
	}
}

// CheckTx serializes given transaction and executes it through the ABCI
// interface.
func (w *AppRunner) CheckTx(tx tranche.Tx) error {
	raw, err := tx.Marshal()
	if err != nil {
		return errors.Wrap(err, "cannot marshal transaction")
	}
	if resp := w.app.CheckTx(raw); resp.Code != 0 {
		return fmt.Errorf("%d: %s", resp.Code, resp.Log)
	}
	return nil
}

// DeliverTx serializes given transaction and executes it through the ABCI
// interface.
func (w *AppRunner) DeliverTx(tx tranche.Tx) error {
	raw, err := tx.Marshal()
	if err != nil {
		return errors.Wrap(err, "cannot marshal transaction")
	}
	if resp := w.app.DeliverTx(raw); resp.Code != 0 {
		return fmt.Errorf("%d: %s", resp.Code, resp.Log)
	}
	return nil
}

// InBlock begins a block and runs given function. All transactions executed
// withing given function are part of newly created block. Upon success the
// block is finished and changes commited.
// InBlock returns true if the application state was modified. It returns
// false if creating new block did not modify the state.
//
// Any failure is ending the test instantly.
func (w *AppRunner) InBlock(executeTx func(App) error) bool {
	w.t.Helper()

	w.height++

	initialHash := w.app.Info(abci.RequestInfo{}).LastBlockAppHash

	// BeginBlock will panic on error.
	w.app.BeginBlock(abci.RequestBeginBlock{
		Header: abci.Header{
			ChainID: w.chainID,
			Height:  w.height,
			Time:    time.Now(),
		},
	})

	if err := executeTx(w); err != nil {
		w.t.Fatalf("operation failed with %+v", err)
	}

	// EndBlock returns Validator diffs mainly,
	// but not important for benchmarks just tests
	w.app.EndBlock(abci.RequestEndBlock{
		Height: w.height,
	})

	// Commit data contains the new app hash. It differs from the initial
	// hash only if the state was modified.
	finalHash := w.app.Commit().Data
	return !bytes.Equal(initialHash, finalHash)
}

var _ tranche.ReadOnlyKVStore = (*AppRunner)(nil)

func (w *AppRunner) Get(key []byte) ([]byte, error) {
	query := w.app.Query(abci.RequestQuery{
		Path: "/",
		Data: key,
	})
	if query.Code != 0 {
		return nil, errors.Wrapf(errors.ErrDatabase, "query failed: %s", query.Log)
	}
	var value app.ResultSet
	if err := value.Unmarshal(query.Value); err != nil {
		return nil, errors.Wrap(err, "cannot parse values")
	}

	if len(value.Results) == 0 {
		return nil, nil
	}
	return value.Results[0], nil
}

func (w *AppRunner) Has(key []byte) (bool, error) {
	raw, err := w.Get(key)
	if err != nil {
		return false, err
	}
	return len(raw) > 0, nil
}

func (w *AppRunner) Iterator(start, end []byte) (tranche.Iterator, error) {
	// Support only the full range. It is enough to serialize the request
	// over the ABCI query interface for the tests that need it.
	if start != nil || end != nil {
		return nil, errors.Wrap(errors.ErrHuman, "iterator only implemented for the entire range")
	}

	query := w.app.Query(abci.RequestQuery{
		Path: "/?prefix",
		Data: nil,
	})
	if query.Code != 0 {
		return nil, errors.Wrapf(errors.ErrDatabase, "query failed: %s", query.Log)
	}
	models, err := toModels(query.Key, query.Value)
	if err != nil {
		return nil, errors.Wrap(err, "cannot parse values")
	}

	return store.NewSliceIterator(models), nil
}

func (w *AppRunner) ReverseIterator(start, end []byte) (tranche.Iterator, error) {
	return nil, errors.Wrap(errors.ErrHuman, "not implemented")
}

func toModels(keys []byte, values []byte) ([]tranche.Model, error) {
	var k, v app.ResultSet
	if err := k.Unmarshal(keys); err != nil {
		return nil, errors.Wrap(err, "cannot parse keys")
	}
	if err := v.Unmarshal(values); err != nil {
		return nil, errors.Wrap(err, "cannot parse values")
	}
	return app.JoinResults(&k, &v)
}
