package app

import (
	"bytes"
	"testing"

	"github.com/tranche-io/tranche"
	"github.com/tranche-io/tranche/errors"
)

func TestSliceIterator(t *testing.T) {
	models := []tranche.Model{
		{Key: []byte("a"), Value: []byte("1")},
		{Key: []byte("b"), Value: []byte("2")},
		{Key: []byte("c"), Value: []byte("3")},
	}

	it := NewSliceIterator(models)
	for _, m := range models {
		key, value, err := it.Next()
		if err != nil {
			t.Fatalf("next failed: %+v", err)
		}
		if !bytes.Equal(key, m.Key) || !bytes.Equal(value, m.Value) {
			t.Fatalf("want %q=%q, got %q=%q", m.Key, m.Value, key, value)
		}
	}
	if _, _, err := it.Next(); !errors.ErrIteratorDone.Is(err) {
		t.Fatalf("want iterator done, got %+v", err)
	}
}

func TestSliceIteratorEmpty(t *testing.T) {
	it := NewSliceIterator(nil)
	if _, _, err := it.Next(); !errors.ErrIteratorDone.Is(err) {
		t.Fatalf("want iterator done, got %+v", err)
	}
}

func TestSliceIteratorRelease(t *testing.T) {
	it := NewSliceIterator([]tranche.Model{
		{Key: []byte("a"), Value: []byte("1")},
	})
	it.Release()
	if _, _, err := it.Next(); !errors.ErrIteratorDone.Is(err) {
		t.Fatalf("want iterator done after release, got %+v", err)
	}
}
