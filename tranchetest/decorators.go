package tranchetest

import "github.com/tranche-io/tranche"

// Decorator is a mock implementation of the tranche.Decorator interface.
//
// Set CheckErr or DeliverErr to force error response for corresponding method.
// If error attributes are not set then wrapped handler method is called and
// its result returned.
// Each method call is counted. Regardless of the method call result the
// counter is incremented.
type Decorator struct {
	checkCall int
	// CheckErr if set is returned by the Check method before calling
	// the wrapped handler.
	CheckErr error

	deliverCall int
	// DeliverErr if set is returned by the Deliver method before calling
	// the wrapped handler.
	DeliverErr error
}

var _ tranche.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx tranche.Context, db tranche.KVStore, tx tranche.Tx, next tranche.Checker) (*tranche.CheckResult, error) {
	d.checkCall++

	if d.CheckErr != nil {
		return &tranche.CheckResult{}, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx tranche.Context, db tranche.KVStore, tx tranche.Tx, next tranche.Deliverer) (*tranche.DeliverResult, error) {
	d.deliverCall++

	if d.DeliverErr != nil {
		return &tranche.DeliverResult{}, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}

func (d *Decorator) CheckCallCount() int {
	return d.checkCall
}

func (d *Decorator) DeliverCallCount() int {
	return d.deliverCall
}

func (d *Decorator) CallCount() int {
	return d.checkCall + d.deliverCall
}

func Decorate(h tranche.Handler, d tranche.Decorator) tranche.Handler {
	return &decoratedHandler{hn: h, dc: d}
}

type decoratedHandler struct {
	hn tranche.Handler
	dc tranche.Decorator
}

var _ tranche.Handler = (*decoratedHandler)(nil)

func (d *decoratedHandler) Check(ctx tranche.Context, db tranche.KVStore, tx tranche.Tx) (*tranche.CheckResult, error) {
	return d.dc.Check(ctx, db, tx, d.hn)
}

func (d *decoratedHandler) Deliver(ctx tranche.Context, db tranche.KVStore, tx tranche.Tx) (*tranche.DeliverResult, error) {
	return d.dc.Deliver(ctx, db, tx, d.hn)
}
