package iavl

import (
	"sync"

	"github.com/tranche-io/tranche/errors"
	"github.com/tranche-io/tranche/store"
)

// lazyIterator feeds the results of a tree traversal through a channel, so
// that they can be consumed on demand.
type lazyIterator struct {
	read chan store.Model
	stop chan struct{}
	once sync.Once
}

var _ store.Iterator = (*lazyIterator)(nil)

func newLazyIterator() *lazyIterator {
	return &lazyIterator{
		read: make(chan store.Model),
		stop: make(chan struct{}),
	}
}

// add hands over one traversal result. It returns true when the traversal
// must be aborted because the iterator was released.
func (i *lazyIterator) add(key []byte, value []byte) bool {
	m := store.Model{Key: key, Value: value}
	select {
	case i.read <- m:
		return false
	case <-i.stop:
		return true
	}
}

// finished must be called by the producing goroutine once the traversal is
// complete. Only the producer is allowed to close the read channel.
func (i *lazyIterator) finished() {
	close(i.read)
}

// Next returns the following entry of the traversal.
func (i *lazyIterator) Next() ([]byte, []byte, error) {
	data, hasMore := <-i.read
	if !hasMore {
		return nil, nil, errors.ErrIteratorDone
	}
	return data.Key, data.Value, nil
}

// Release aborts the traversal. It is safe to call it multiple times.
func (i *lazyIterator) Release() {
	i.once.Do(func() {
		close(i.stop)
	})
}
