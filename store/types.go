package store

import (
	"github.com/tranche-io/tranche"
)

// Reference all storage interfaces from the root package here so that every
// implementation in this package can use the short names.

type ReadOnlyKVStore = tranche.ReadOnlyKVStore
type SetDeleter = tranche.SetDeleter
type KVStore = tranche.KVStore
type Batch = tranche.Batch
type Iterator = tranche.Iterator
type CacheableKVStore = tranche.CacheableKVStore
type KVCacheWrap = tranche.KVCacheWrap
type CommitKVStore = tranche.CommitKVStore
type CommitID = tranche.CommitID
type Model = tranche.Model

// Pair constructs a model from a key-value pair.
func Pair(key, value []byte) Model {
	return tranche.Pair(key, value)
}
