/*
Package orm provides an easy to use db wrapper

Break state space into prefixed sections called Buckets.
* Each bucket contains only one type of object.
* It has a primary index (which may be composite),
and may possess secondary indexes.
* It may possess one or more secondary indexes (1:1 or 1:N)
* Easy queries for one and iteration.

For inspiration, look at [storm](https://github.com/asdine/storm) built on top of [bolt kvstore](https://github.com/boltdb/bolt#using-buckets).
* Do not use so much reflection magic. Better do stuff compile-time static, even if it is a bit of boilerplate.
* Consider general usability flow from that project
*/
package orm

import (
	"fmt"
	"regexp"

	"github.com/tranche-io/tranche"
	"github.com/tranche-io/tranche/errors"
)

const (
	// SeqID is a constant to use to get a default ID sequence
	SeqID = "id"
)

var isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString

// Bucket is a generic holder that stores data as well
// as references to secondary indexes and sequences.
//
// This is a generic building block that should generally
// be embedded in a type-safe wrapper to ensure all data
// is the same type.
// Bucket is a prefixed subspace of the DB
// proto defines the default Model, all elements of this type
type Bucket struct {
	name   string
	prefix []byte
	proto  Cloneable
	// Indexes must be maintained in a deterministic order, so that
	// updating them writes to the database in the same order on every
	// node. A slice keeps them in registration order, a map would not.
	indexes []bucketIndex
}

// bucketIndex pairs an index with the name it was registered under. The
// registration name is not the same as the index name, which is prefixed
// with the bucket name.
type bucketIndex struct {
	index Index
	name  string
}

var _ tranche.QueryHandler = Bucket{}

// NewBucket creates a bucket to store data
func NewBucket(name string, proto Cloneable) Bucket {
	if !isBucketName(name) {
		panic(fmt.Sprintf("Illegal bucket: %s", name))
	}

	return Bucket{
		name:   name,
		prefix: append([]byte(name), ':'),
		proto:  proto,
	}
}

// Register registers this Bucket and all indexes.
// You can define a name here for queries, which is
// different than the bucket name used to prefix the data
func (b Bucket) Register(name string, r tranche.QueryRouter) {
	if name == "" {
		name = b.name
	}
	root := "/" + name
	r.Register(root, b)
	for _, ni := range b.indexes {
		r.Register(root+"/"+ni.name, ni.index)
	}
}

// Query handles queries from the QueryRouter
func (b Bucket) Query(db tranche.ReadOnlyKVStore, mod string, data []byte) ([]tranche.Model, error) {
	switch mod {
	case tranche.KeyQueryMod:
		key := b.DBKey(data)
		value, err := db.Get(key)
		if err != nil {
			return nil, err
		}
		// return nothing on miss
		if value == nil {
			return nil, nil
		}
		res := []tranche.Model{{Key: key, Value: value}}
		return res, nil
	case tranche.PrefixQueryMod:
		prefix := b.DBKey(data)
		return queryPrefix(db, prefix)
	default:
		return nil, errors.Wrap(errors.ErrInput, "not implemented: "+mod)
	}
}

// DBKey is the full key we store in the db, including prefix
// We copy into a new array rather than use append, as we don't
// want consequetive calls to overwrite the same byte array.
func (b Bucket) DBKey(key []byte) []byte {
	// Long story: annoying bug... storing with keys "ABC" and "LED"
	// would overwrite each other, also for queries.... huh?
	// turns out name was 4 char,
	// append([]byte(name), ':') in NewBucket would allocate with
	// capacity 8, using 5.
	// append(b.prefix, key...) would just append to this slice and
	// return b.prefix. The next call would do the same an overwrite it.
	// 3 hours and some dlv-ing later, new code here...
	l := len(b.prefix)
	out := make([]byte, l+len(key))
	copy(out, b.prefix)
	copy(out[l:], key)
	return out
}

// Get one element
func (b Bucket) Get(db tranche.ReadOnlyKVStore, key []byte) (Object, error) {
	dbkey := b.DBKey(key)
	bz, err := db.Get(dbkey)
	if err != nil {
		return nil, err
	}
	if bz == nil {
		return nil, nil
	}
	return b.Parse(key, bz)
}

// Parse takes a key and value data (tranche.Model) and
// reconstructs the data this Bucket would return.
//
// Used internally as part of Get.
// It is exposed mainly as a test helper, but can work for
// any code that wants to parse
func (b Bucket) Parse(key, value []byte) (Object, error) {
	obj := b.proto.Clone()
	if err := obj.Value().Unmarshal(value); err != nil {
		return nil, errors.Wrap(errors.ErrState, err.Error())
	}
	obj.SetKey(key)
	return obj, nil
}

// Save will write a model, it must be of the same type as proto
func (b Bucket) Save(db tranche.KVStore, model Object) error {
	err := model.Validate()
	if err != nil {
		return err
	}

	bz, err := model.Value().Marshal()
	if err != nil {
		return err
	}
	if err := b.updateIndexes(db, model.Key(), model); err != nil {
		return err
	}

	// now save this one
	return db.Set(b.DBKey(model.Key()), bz)
}

// Delete will remove the value at a key
func (b Bucket) Delete(db tranche.KVStore, key []byte) error {
	if err := b.updateIndexes(db, key, nil); err != nil {
		return err
	}

	// now save this one
	dbkey := b.DBKey(key)
	return db.Delete(dbkey)
}

func (b Bucket) updateIndexes(db tranche.KVStore, key []byte, model Object) error {
	// update all indexes
	if len(b.indexes) > 0 {
		prev, err := b.Get(db, key)
		if err != nil {
			return err
		}
		for _, ni := range b.indexes {
			if err := ni.index.Update(db, prev, model); err != nil {
				return err
			}
		}
	}
	return nil
}

// Sequence returns a Sequence by name
func (b Bucket) Sequence(name string) Sequence {
	return NewSequence(b.name, name)
}

// WithIndex returns a copy of this bucket with given index,
// panics if it an index with that name is already registered.
//
// Designed to be chained.
func (b Bucket) WithIndex(name string, indexer Indexer, unique bool) Bucket {
	return b.WithMultiKeyIndex(name, asMultiKeyIndexer(indexer), unique)
}

// WithMultiKeyIndex returns a copy of this bucket with given index,
// panics if it an index with that name is already registered.
//
// Designed to be chained.
func (b Bucket) WithMultiKeyIndex(name string, indexer MultiKeyIndexer, unique bool) Bucket {
	iname := b.name + "_" + name
	return b.withIndex(name, NewMultiKeyIndex(iname, indexer, unique, b.DBKey))
}

// WithNativeIndex returns a copy of this bucket with given index, backed by
// the database native iteration. Unlike the compact index it does not
// enforce uniqueness, but it scales with the number of indexed entities.
//
// Designed to be chained.
func (b Bucket) WithNativeIndex(name string, indexer MultiKeyIndexer) Bucket {
	iname := b.name + "_" + name
	return b.withIndex(name, NewNativeIndex(iname, indexer, b.DBKey))
}

func (b Bucket) withIndex(name string, index Index) Bucket {
	// no duplicate indexes! (panic on init)
	for _, ni := range b.indexes {
		if ni.name == name {
			panic(fmt.Sprintf("Index %s registered twice", name))
		}
	}

	indexes := make([]bucketIndex, len(b.indexes)+1)
	copy(indexes, b.indexes)
	indexes[len(b.indexes)] = bucketIndex{index: index, name: name}
	b.indexes = indexes
	return b
}

// GetIndexed queries the named index for the given key
func (b Bucket) GetIndexed(db tranche.ReadOnlyKVStore, name string, key []byte) ([]Object, error) {
	idx, err := b.index(name)
	if err != nil {
		return nil, err
	}
	refs, err := consumeIteratorKeys(idx.Keys(db, key))
	if err != nil {
		return nil, err
	}
	return b.readRefs(db, refs)
}

// GetIndexedLike querys the named index with the given pattern
func (b Bucket) GetIndexedLike(db tranche.ReadOnlyKVStore, name string, pattern Object) ([]Object, error) {
	idx, err := b.index(name)
	if err != nil {
		return nil, err
	}
	refs, err := idx.Like(db, pattern)
	if err != nil {
		return nil, err
	}
	return b.readRefs(db, refs)
}

// index returns the index registered under given name.
func (b Bucket) index(name string) (Index, error) {
	for _, ni := range b.indexes {
		if ni.name == name {
			return ni.index, nil
		}
	}
	return nil, errors.Wrap(ErrInvalidIndex, name)
}

func (b Bucket) readRefs(db tranche.ReadOnlyKVStore, refs [][]byte) ([]Object, error) {
	if len(refs) == 0 {
		return nil, nil
	}

	var err error
	objs := make([]Object, len(refs))
	for i, key := range refs {
		objs[i], err = b.Get(db, key)
		if err != nil {
			return nil, err
		}
	}
	return objs, nil
}
