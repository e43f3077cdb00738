package validators

import (
	"github.com/tranche-io/tranche"
	"github.com/tranche-io/tranche/errors"
	"github.com/tranche-io/tranche/migration"
	"github.com/tranche-io/tranche/x"
)

const applyDiffCost = 100

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r tranche.Registry, auth x.Authenticator) {
	r = migration.SchemaMigratingRegistry("validators", r)
	r.Handle(&ApplyDiffMsg{}, &applyDiffHandler{
		auth:   auth,
		bucket: NewAccountBucket(),
	})
}

// RegisterQuery will register this bucket as "/validators"
func RegisterQuery(qr tranche.QueryRouter) {
	NewAccountBucket().Register("validators", qr)
}

type applyDiffHandler struct {
	auth   x.Authenticator
	bucket *AccountBucket
}

var _ tranche.Handler = (*applyDiffHandler)(nil)

func (h *applyDiffHandler) Check(ctx tranche.Context, store tranche.KVStore, tx tranche.Tx) (*tranche.CheckResult, error) {
	if _, err := h.validate(ctx, store, tx); err != nil {
		return nil, err
	}
	return &tranche.CheckResult{GasAllocated: applyDiffCost}, nil
}

// Deliver provides the diff given everything is okay with permissions and such
func (h *applyDiffHandler) Deliver(ctx tranche.Context, store tranche.KVStore, tx tranche.Tx) (*tranche.DeliverResult, error) {
	msg, err := h.validate(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	return &tranche.DeliverResult{Diff: msg.AsDiff()}, nil
}

func (h *applyDiffHandler) validate(ctx tranche.Context, store tranche.KVStore, tx tranche.Tx) (*ApplyDiffMsg, error) {
	var msg ApplyDiffMsg
	if err := tranche.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}

	accounts, err := h.bucket.GetAccounts(store)
	if err != nil {
		return nil, errors.Wrap(err, "authorized accounts")
	}
	var authorized bool
	for _, addr := range accounts.Addresses {
		if h.auth.HasAddress(ctx, tranche.Address(addr)) {
			authorized = true
			break
		}
	}
	if !authorized {
		return nil, errors.Wrap(errors.ErrUnauthorized, "authorized account signature required")
	}

	return &msg, nil
}
