package orm

import (
	"github.com/tranche-io/tranche"
	"github.com/tranche-io/tranche/errors"
)

// queryRangeLimit is the maximum number of results a single range query can
// return. Longer collections are cut short. Use pagination to get the rest.
const queryRangeLimit = 50

// consumeIterator reads all remaining data from the iterator into a single
// collection and releases the iterator.
func consumeIterator(it tranche.Iterator) ([]tranche.Model, error) {
	defer it.Release()

	var out []tranche.Model
	for {
		switch key, value, err := it.Next(); {
		case err == nil:
			out = append(out, tranche.Model{Key: key, Value: value})
		case errors.ErrIteratorDone.Is(err):
			return out, nil
		default:
			return nil, errors.Wrap(err, "iterator")
		}
	}
}

// paginatedIterator wraps an iterator implementation and stops it after
// returning remaining results.
type paginatedIterator struct {
	it        tranche.Iterator
	remaining int
}

func (p *paginatedIterator) Next() ([]byte, []byte, error) {
	if p.remaining <= 0 {
		return nil, nil, errors.ErrIteratorDone
	}
	p.remaining--
	return p.it.Next()
}

func (p *paginatedIterator) Release() {
	p.it.Release()
}

// queryPrefix returns all models with given prefix, in ascending key order.
func queryPrefix(db tranche.ReadOnlyKVStore, prefix []byte) ([]tranche.Model, error) {
	itr, err := db.Iterator(prefixRange(prefix))
	if err != nil {
		return nil, err
	}
	return consumeIterator(itr)
}

// prefixRange turns a prefix into (start, end) to create
// and iterator
func prefixRange(prefix []byte) ([]byte, []byte) {
	// special case: no prefix is whole range
	if len(prefix) == 0 {
		return nil, nil
	}

	// copy the prefix and update last byte
	end := make([]byte, len(prefix))
	copy(end, prefix)
	l := len(end) - 1
	end[l]++

	// wait, what if that overflowed the last byte... then we need to
	// carry to the previous one. and if the whole prefix is 0xff-s,
	// there is no end to the range.
	for end[l] == 0 {
		if l == 0 {
			end = nil
			break
		}
		l--
		end[l]++
	}
	return prefix, end
}
