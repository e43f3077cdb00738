package app

import (
	"github.com/tranche-io/tranche"
	"github.com/tranche-io/tranche/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

// BaseApp adds DeliverTx, CheckTx, and BeginBlock
// handlers to the storage and query functionality of StoreApp
type BaseApp struct {
	*StoreApp
	decoder tranche.TxDecoder
	handler tranche.Handler
	ticker  tranche.Ticker
	debug   bool
}

var _ abci.Application = BaseApp{}

// NewBaseApp constructs a basic abci application
func NewBaseApp(
	store *StoreApp,
	decoder tranche.TxDecoder,
	handler tranche.Handler,
	ticker tranche.Ticker,
	debug bool,
) BaseApp {
	return BaseApp{
		StoreApp: store,
		decoder:  decoder,
		handler:  handler,
		ticker:   ticker,
		debug:    debug,
	}
}

// DeliverTx - ABCI - dispatches to the handler
func (b BaseApp) DeliverTx(txBytes []byte) abci.ResponseDeliverTx {
	tx, err := b.loadTx(txBytes)
	if err != nil {
		return tranche.DeliverTxError(err, b.debug)
	}

	// ignore error here, allow it to be logged
	ctx := tranche.WithLogInfo(b.BlockContext(),
		"call", "deliver_tx",
		"path", tranche.GetPath(tx))

	res, err := b.handler.Deliver(ctx, b.DeliverStore(), tx)
	if err == nil {
		b.AddValChange(res.Diff)
	}
	return tranche.DeliverOrError(res, err, b.debug)
}

// CheckTx - ABCI - dispatches to the handler
func (b BaseApp) CheckTx(txBytes []byte) abci.ResponseCheckTx {
	tx, err := b.loadTx(txBytes)
	if err != nil {
		return tranche.CheckTxError(err, b.debug)
	}

	ctx := tranche.WithLogInfo(b.BlockContext(),
		"call", "check_tx",
		"path", tranche.GetPath(tx))

	res, err := b.handler.Check(ctx, b.CheckStore(), tx)
	return tranche.CheckOrError(res, err, b.debug)
}

// BeginBlock - ABCI
func (b BaseApp) BeginBlock(req abci.RequestBeginBlock) abci.ResponseBeginBlock {
	// default: set the context properly
	b.StoreApp.BeginBlock(req)

	var response abci.ResponseBeginBlock
	if b.ticker != nil {
		ctx := tranche.WithLogInfo(b.BlockContext(), "call", "begin_block")
		tr, err := b.ticker.Tick(ctx, b.DeliverStore())
		if err != nil {
			// A ticker failure is a state that the application
			// cannot recover from.
			panic(err)
		}
		response.Tags = append(response.Tags, tr.Tags...)
		b.AddValChange(tr.Diff)
	}
	return response
}

// loadTx calls the decoder, and capture any panics
func (b BaseApp) loadTx(txBytes []byte) (tx tranche.Tx, err error) {
	defer errors.Recover(&err)
	tx, err = b.decoder(txBytes)
	return
}
