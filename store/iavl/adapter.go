package iavl

import (
	"github.com/tendermint/iavl"
	dbm "github.com/tendermint/tendermint/libs/db"
	"github.com/tranche-io/tranche/errors"
	"github.com/tranche-io/tranche/store"
)

const (
	// cacheSize is the size of the iavl inner node cache
	cacheSize = 10000

	// defaultHistory is how many historic versions of the tree are kept
	// on disk. Anything older is removed on commit.
	defaultHistory = 20
)

// CommitStore manages a iavl committed state
type CommitStore struct {
	tree       *iavl.MutableTree
	numHistory int64
}

var _ store.CommitKVStore = CommitStore{}

// NewCommitStore creates a new store with disk backing
func NewCommitStore(path, name string) CommitStore {
	db := dbm.NewDB(name, dbm.GoLevelDBBackend, path)
	return CommitStore{
		tree:       iavl.NewMutableTree(db, cacheSize),
		numHistory: defaultHistory,
	}
}

// NewCommitStoreFromTree wraps an already loaded tree, for example one
// rolled back to an earlier version.
func NewCommitStoreFromTree(tree *iavl.MutableTree) CommitStore {
	return CommitStore{
		tree:       tree,
		numHistory: defaultHistory,
	}
}

// MockCommitStore returns a store backed by memory, useful for tests
func MockCommitStore() CommitStore {
	return CommitStore{
		tree:       iavl.NewMutableTree(dbm.NewMemDB(), cacheSize),
		numHistory: defaultHistory,
	}
}

// Get returns the value stored under given key in the working state
func (s CommitStore) Get(key []byte) ([]byte, error) {
	_, value := s.tree.Get(key)
	return value, nil
}

// CacheWrap returns a mutable scratch-pad on top of the working state.
// Call Write on the result to apply it to the tree, Commit to persist.
func (s CommitStore) CacheWrap() store.KVCacheWrap {
	kv := treeAdapter{tree: s.tree}
	return store.NewBTreeCacheWrap(kv, kv.NewBatch(), nil)
}

// Adapter returns a wrapped version of this store that implements the
// CacheableKVStore interface. All reads and writes use the working state
// of the tree.
func (s CommitStore) Adapter() store.CacheableKVStore {
	return store.BTreeCacheable{KVStore: treeAdapter{tree: s.tree}}
}

// Commit saves the next tree version to disk, and returns info
func (s CommitStore) Commit() (store.CommitID, error) {
	hash, version, err := s.tree.SaveVersion()
	if err != nil {
		return store.CommitID{}, errors.Wrap(err, "cannot save version")
	}

	// Release the version that fell out of the history window.
	if s.numHistory > 0 && version > s.numHistory {
		old := version - s.numHistory
		if s.tree.VersionExists(old) {
			if err := s.tree.DeleteVersion(old); err != nil {
				return store.CommitID{}, errors.Wrapf(err, "cannot delete version %d", old)
			}
		}
	}

	return store.CommitID{
		Version: version,
		Hash:    hash,
	}, nil
}

// LoadLatestVersion loads the latest persisted version.
// If there was a crash during the last commit, it is guaranteed
// to return a stable state, even if older.
func (s CommitStore) LoadLatestVersion() error {
	if _, err := s.tree.Load(); err != nil {
		return errors.Wrap(err, "cannot load latest version")
	}
	return nil
}

// LatestVersion returns info on the latest version saved to disk
func (s CommitStore) LatestVersion() (store.CommitID, error) {
	return store.CommitID{
		Version: s.tree.Version(),
		Hash:    s.tree.Hash(),
	}, nil
}

// treeAdapter exposes the working state of an iavl tree as a KVStore
type treeAdapter struct {
	tree *iavl.MutableTree
}

var _ store.KVStore = treeAdapter{}

// Get returns nil iff key doesn't exist. Panics on nil key.
func (a treeAdapter) Get(key []byte) ([]byte, error) {
	_, value := a.tree.Get(key)
	return value, nil
}

// Has checks if a key exists. Panics on nil key.
func (a treeAdapter) Has(key []byte) (bool, error) {
	return a.tree.Has(key), nil
}

// Set adds a new value to the working state
func (a treeAdapter) Set(key, value []byte) error {
	a.tree.Set(key, value)
	return nil
}

// Delete removes the key from the working state
func (a treeAdapter) Delete(key []byte) error {
	a.tree.Remove(key)
	return nil
}

// NewBatch returns a batch that can write multiple ops atomically
func (a treeAdapter) NewBatch() store.Batch {
	return store.NewNonAtomicBatch(a)
}

// Iterator over a domain of keys in ascending order. End is exclusive.
func (a treeAdapter) Iterator(start, end []byte) (store.Iterator, error) {
	iter := newLazyIterator()
	go func() {
		a.tree.IterateRange(start, end, true, iter.add)
		iter.finished()
	}()
	return iter, nil
}

// ReverseIterator over a domain of keys in descending order. End is exclusive.
func (a treeAdapter) ReverseIterator(start, end []byte) (store.Iterator, error) {
	iter := newLazyIterator()
	go func() {
		a.tree.IterateRange(start, end, false, iter.add)
		iter.finished()
	}()
	return iter, nil
}
