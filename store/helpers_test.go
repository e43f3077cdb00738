package store

import (
	"testing"

	"github.com/tranche-io/tranche/errors"
	"github.com/tranche-io/tranche/tranchetest/assert"
)

// TestSliceIterator makes sure the basic slice iterator works.
func TestSliceIterator(t *testing.T) {
	const size = 10

	ks := randKeys(size, 8)
	vs := randKeys(size, 40)

	models := make([]Model, size)
	for i := 0; i < size; i++ {
		models[i].Key = ks[i]
		models[i].Value = vs[i]
	}

	// make sure proper iteration works
	iter := NewSliceIterator(models)
	for i := 0; i < size; i++ {
		key, value, err := iter.Next()
		assert.Nil(t, err)
		assert.Equal(t, ks[i], key)
		assert.Equal(t, vs[i], value)
	}
	if _, _, err := iter.Next(); !errors.ErrIteratorDone.Is(err) {
		t.Fatalf("expected the iterator to be exhausted, got %+v", err)
	}

	it := NewSliceIterator(models)
	if _, _, err := it.Next(); err != nil {
		t.Fatalf("fresh iterator must be valid, got %+v", err)
	}
	it.Release()
	if _, _, err := it.Next(); !errors.ErrIteratorDone.Is(err) {
		t.Fatalf("released iterator must be exhausted, got %+v", err)
	}
}
