package tranche

import (
	"github.com/tendermint/tendermint/libs/common"
)

// TickResult is the result of a single ticker run. Tags and validator
// set changes are merged into the BeginBlock response.
type TickResult struct {
	Tags []common.KVPair
	Diff []ValidatorUpdate
}

// Ticker is an interface used to call background tasks scheduled for
// execution. It is run at the beginning of every block, before any
// transaction is processed.
type Ticker interface {
	// Tick is a method called at the beginning of the block. It should
	// return only those errors that the application cannot recover
	// from, as any returned error halts the application.
	Tick(ctx Context, store CacheableKVStore) (*TickResult, error)
}
