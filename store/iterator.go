package store

import (
	"bytes"
	"sync"

	"github.com/google/btree"
	"github.com/tranche-io/tranche/errors"
)

// btreeIter pumps the items of a btree traversal into a channel, so that
// they can be consumed step by step.
type btreeIter struct {
	read <-chan btree.Item
	stop chan struct{}
	once sync.Once
}

func ascendBtree(bt *btree.BTree, start, end []byte) *btreeIter {
	read := make(chan btree.Item)
	stop := make(chan struct{})
	iter := &btreeIter{
		read: read,
		stop: stop,
	}

	insert := func(item btree.Item) bool {
		select {
		case read <- item:
			return true
		case <-stop:
			return false
		}
	}

	go func() {
		if start == nil && end == nil {
			bt.Ascend(insert)
		} else if start == nil { // end != nil
			bt.AscendLessThan(bkey{end}, insert)
		} else if end == nil { // start != nil
			bt.AscendGreaterOrEqual(bkey{start}, insert)
		} else { // both != nil
			bt.AscendRange(bkey{start}, bkey{end}, insert)
		}
		close(read)
	}()

	return iter
}

func descendBtree(bt *btree.BTree, start, end []byte) *btreeIter {
	read := make(chan btree.Item)
	stop := make(chan struct{})
	iter := &btreeIter{
		read: read,
		stop: stop,
	}

	insert := func(item btree.Item) bool {
		select {
		case read <- item:
			return true
		case <-stop:
			return false
		}
	}

	go func() {
		if start == nil && end == nil {
			bt.Descend(insert)
		} else if start == nil { // end != nil
			bt.DescendLessOrEqual(bkeyLess{end}, insert)
		} else if end == nil { // start != nil
			bt.DescendGreaterThan(bkeyLess{start}, insert)
		} else { // both != nil
			bt.DescendRange(bkeyLess{end}, bkeyLess{start}, insert)
		}
		close(read)
	}()

	return iter
}

// next returns the following item of the traversal.
func (b *btreeIter) next() (keyer, error) {
	data, hasMore := <-b.read
	if !hasMore {
		return nil, errors.ErrIteratorDone
	}
	return data.(keyer), nil
}

// release stops the producing goroutine and waits until it quits. When this
// call returns the btree is guaranteed to not be accessed anymore.
func (b *btreeIter) release() {
	b.once.Do(func() {
		close(b.stop)
		for range b.read {
		}
	})
}

func (b *btreeIter) wrap(parent Iterator, reverse bool) *itemIter {
	return &itemIter{
		wrap:    b,
		parent:  parent,
		reverse: reverse,
	}
}

// itemIter combines the btree overlay with the iterator of the backing
// store. Deletion markers in the overlay shadow the parent data.
type itemIter struct {
	wrap    *btreeIter
	parent  Iterator
	reverse bool

	// One item read ahead buffer for each source. The merge logic has to
	// compare the next key of both sources before deciding which entry to
	// emit, while the sources support only a consuming read.
	btreeItem   keyer
	btreeDone   bool
	btreeLoaded bool

	parentKey    []byte
	parentValue  []byte
	parentDone   bool
	parentLoaded bool
}

var _ Iterator = (*itemIter)(nil)

// Next returns the next key-value pair of the merged iteration, skipping all
// entries that are marked as deleted in the overlay.
func (i *itemIter) Next() ([]byte, []byte, error) {
	for {
		if err := i.load(); err != nil {
			return nil, nil, err
		}

		switch i.pick() {
		case none:
			return nil, nil, errors.ErrIteratorDone
		case parent:
			key, value := i.parentKey, i.parentValue
			i.parentLoaded = false
			return key, value, nil
		case both:
			// The overlay entry shadows the parent one.
			i.parentLoaded = false
			fallthrough
		default: // us
			item := i.btreeItem
			i.btreeLoaded = false
			if set, ok := item.(setItem); ok {
				return set.key, set.value, nil
			}
			// A deletion marker. Continue with the next key.
		}
	}
}

// load fills the read ahead buffer of each source.
func (i *itemIter) load() error {
	if !i.btreeLoaded {
		item, err := i.wrap.next()
		switch {
		case err == nil:
			i.btreeItem = item
			i.btreeDone = false
		case errors.ErrIteratorDone.Is(err):
			i.btreeItem = nil
			i.btreeDone = true
		default:
			return err
		}
		i.btreeLoaded = true
	}

	if !i.parentLoaded {
		key, value, err := i.parent.Next()
		switch {
		case err == nil:
			i.parentKey = key
			i.parentValue = value
			i.parentDone = false
		case errors.ErrIteratorDone.Is(err):
			i.parentKey = nil
			i.parentValue = nil
			i.parentDone = true
		default:
			return err
		}
		i.parentLoaded = true
	}
	return nil
}

// source marks where the next item comes from.
type source int32

const (
	us source = iota
	parent
	both
	none
)

// pick selects the source holding the next key of the merged iteration.
func (i *itemIter) pick() source {
	if i.parentDone {
		if i.btreeDone {
			return none
		}
		return us
	}
	if i.btreeDone {
		return parent
	}

	cmp := bytes.Compare(i.parentKey, i.btreeItem.Key())
	if i.reverse {
		cmp = -cmp
	}
	switch {
	case cmp < 0:
		return parent
	case cmp > 0:
		return us
	default:
		return both
	}
}

// Release stops both sources. It is safe to call it multiple times.
func (i *itemIter) Release() {
	i.parent.Release()
	i.wrap.release()
}
