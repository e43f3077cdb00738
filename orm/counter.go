package orm

import (
	"github.com/tranche-io/tranche/errors"
)

var _ CloneableData = (*Counter)(nil)

// NewCounter returns an initialized counter
func NewCounter(count int64) *Counter {
	return &Counter{Count: count}
}

// Validate returns an error if the count is negative
func (c *Counter) Validate() error {
	if c.Count < 0 {
		return errors.Wrap(errors.ErrState, "count must be non-negative")
	}
	return nil
}

// Copy produces another counter with the same value
func (c *Counter) Copy() CloneableData {
	return &Counter{Count: c.Count}
}
