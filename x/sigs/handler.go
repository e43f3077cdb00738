package sigs

import (
	"github.com/tranche-io/tranche"
	"github.com/tranche-io/tranche/errors"
	"github.com/tranche-io/tranche/migration"
	"github.com/tranche-io/tranche/orm"
	"github.com/tranche-io/tranche/x"
)

func RegisterRoutes(r tranche.Registry, auth x.Authenticator) {
	r.Handle(&BumpSequenceMsg{}, migration.SchemaMigratingHandler("sigs",
		&bumpSequenceHandler{
			b:    NewBucket(),
			auth: auth,
		}))
}

type bumpSequenceHandler struct {
	auth x.Authenticator
	b    Bucket
}

func (h *bumpSequenceHandler) Check(ctx tranche.Context, db tranche.KVStore, tx tranche.Tx) (*tranche.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &tranche.CheckResult{}, nil
}

func (h *bumpSequenceHandler) Deliver(ctx tranche.Context, db tranche.KVStore, tx tranche.Tx) (*tranche.DeliverResult, error) {
	user, msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	// Each transaction processing bumps the sequence by one. Increment
	// must represent the total increment value.
	incr := int64(msg.Increment) - 1
	if incr == 0 {
		// Zero increment requires no modification.
		return &tranche.DeliverResult{}, nil
	}
	user.Sequence += incr
	obj := orm.NewSimpleObj(msg.User, user)
	if err := h.b.Save(db, obj); err != nil {
		return nil, errors.Wrap(err, "save user")
	}

	return &tranche.DeliverResult{}, nil
}

func (h *bumpSequenceHandler) validate(ctx tranche.Context, db tranche.KVStore, tx tranche.Tx) (*UserData, *BumpSequenceMsg, error) {
	var msg BumpSequenceMsg
	if err := tranche.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}

	if !h.auth.HasAddress(ctx, msg.User) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "no permission to bump user sequence")
	}
	obj, err := h.b.Get(db, msg.User)
	if err != nil {
		return nil, nil, errors.Wrap(err, "bucket")
	}
	if obj == nil {
		return nil, nil, errors.Wrap(errors.ErrNotFound, "no sequence")
	}

	user := AsUser(obj)

	if user.Sequence+int64(msg.Increment) < user.Sequence {
		return nil, nil, errors.Wrap(errors.ErrOverflow, "user sequence")
	}

	return user, &msg, nil
}
