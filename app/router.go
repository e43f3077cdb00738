package app

import (
	"fmt"
	"regexp"

	"github.com/tranche-io/tranche"
	"github.com/tranche-io/tranche/errors"
)

// Router allows us to register many handlers with different paths and
// then direct each message to the registered handler.
type Router struct {
	handlers map[string]tranche.Handler
}

var _ tranche.Registry = (*Router)(nil)
var _ tranche.Handler = (*Router)(nil)

// NewRouter initializes a router with no routes.
func NewRouter() *Router {
	return &Router{
		handlers: make(map[string]tranche.Handler),
	}
}

// pathPattern defines the valid characters of a routing path.
var pathPattern = regexp.MustCompile(`^[a-z0-9_/]{4,64}$`)

// Handle implements the Registry interface. It panics on an invalid
// path or a double registration.
func (r *Router) Handle(m tranche.Msg, h tranche.Handler) {
	path := m.Path()
	if !pathPattern.MatchString(path) {
		panic(fmt.Sprintf("invalid path %q", path))
	}
	if _, ok := r.handlers[path]; ok {
		panic(fmt.Sprintf("double registration of %q", path))
	}
	r.handlers[path] = h
}

// handler returns the registered Handler for this message. If none is
// registered, a handler failing with ErrNotFound is returned instead.
func (r *Router) handler(m tranche.Msg) tranche.Handler {
	path := m.Path()
	if h, ok := r.handlers[path]; ok {
		return h
	}
	return notFoundHandler(path)
}

// Check dispatches to the proper handler based on the message path.
func (r *Router) Check(ctx tranche.Context, store tranche.KVStore, tx tranche.Tx) (*tranche.CheckResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	return r.handler(msg).Check(ctx, store, tx)
}

// Deliver dispatches to the proper handler based on the message path.
func (r *Router) Deliver(ctx tranche.Context, store tranche.KVStore, tx tranche.Tx) (*tranche.DeliverResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	return r.handler(msg).Deliver(ctx, store, tx)
}

// notFoundHandler always fails with ErrNotFound, naming the path that
// had no handler registered.
type notFoundHandler string

var _ tranche.Handler = notFoundHandler("")

func (path notFoundHandler) Check(ctx tranche.Context, store tranche.KVStore, tx tranche.Tx) (*tranche.CheckResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", string(path))
}

func (path notFoundHandler) Deliver(ctx tranche.Context, store tranche.KVStore, tx tranche.Tx) (*tranche.DeliverResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", string(path))
}
