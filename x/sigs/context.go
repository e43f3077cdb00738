package sigs

import (
	"context"

	"github.com/tranche-io/tranche"
	"github.com/tranche-io/tranche/x"
)

//------------------- Context --------
// Add context information specific to this package

type contextKey int // local to the sigs module

const (
	contextKeySigners contextKey = iota
)

// withSigners is a private method, as only this module
// can add a signer
func withSigners(ctx tranche.Context, signers []tranche.Condition) tranche.Context {
	return context.WithValue(ctx, contextKeySigners, signers)
}

// Authenticate implements x.Authenticator and provides
// authentication based on public-key signatures.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

// GetConditions returns who signed the current Context.
// May be empty
func (a Authenticate) GetConditions(ctx tranche.Context) []tranche.Condition {
	// (val, ok) form to return nil instead of panic if unset
	val, _ := ctx.Value(contextKeySigners).([]tranche.Condition)
	return val
}

// HasAddress returns true if the given address had signed in the current
// Context.
func (a Authenticate) HasAddress(ctx tranche.Context, addr tranche.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}
