package utils

import (
	"fmt"

	"github.com/tendermint/tendermint/libs/common"

	"github.com/tranche-io/tranche"
	"github.com/tranche-io/tranche/store"
)

// KeyTagger is a decorator that records all Set/Delete
// operations performed by its children and adds all those keys
// as DeliverTx tags.
//
// Tag keys are the hex-encoded db keys, tag values mark the
// operation that touched them.
type KeyTagger struct{}

var _ tranche.Decorator = KeyTagger{}

// NewKeyTagger creates a KeyTagger decorator
func NewKeyTagger() KeyTagger {
	return KeyTagger{}
}

// Check does nothing
func (KeyTagger) Check(ctx tranche.Context, db tranche.KVStore, tx tranche.Tx, next tranche.Checker) (*tranche.CheckResult, error) {
	return next.Check(ctx, db, tx)
}

// Deliver passes a recording KVStore into the child and
// uses that to calculate tags to add to DeliverResult
func (KeyTagger) Deliver(ctx tranche.Context, db tranche.KVStore, tx tranche.Tx, next tranche.Deliverer) (*tranche.DeliverResult, error) {
	record := store.NewRecordingStore(db)
	res, err := next.Deliver(ctx, record, tx)
	if err != nil {
		return res, err
	}

	res.Tags = append(res.Tags, kvPairs(record)...)
	return res, nil
}

var (
	recordSet    = []byte("s")
	recordDelete = []byte("d")
)

// kvPairs will get the kvpairs from an underlying store if possible
// use this, so we can use interface for recordingStore
func kvPairs(db tranche.KVStore) common.KVPairs {
	r, ok := db.(store.Recorder)
	if !ok {
		return nil
	}
	return changesToTags(r.KVPairs())
}

func changesToTags(changes map[string][]byte) common.KVPairs {
	l := len(changes)
	if l == 0 {
		return nil
	}
	res := make(common.KVPairs, 0, l)
	for k, v := range changes {
		tag := recordSet
		if v == nil {
			tag = recordDelete
		}
		pair := common.KVPair{
			// hex so the raw key is both printable and searchable
			Key:   []byte(fmt.Sprintf("%X", k)),
			Value: tag,
		}
		res = append(res, pair)
	}
	res.Sort()
	return res
}
