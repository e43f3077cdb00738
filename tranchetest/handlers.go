package tranchetest

import "github.com/tranche-io/tranche"

type Handler struct {
	checkCall   int
	CheckResult tranche.CheckResult
	CheckErr    error

	deliverCall   int
	DeliverResult tranche.DeliverResult
	DeliverErr    error
}

var _ tranche.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx tranche.Context, db tranche.KVStore, tx tranche.Tx) (*tranche.CheckResult, error) {
	h.checkCall++
	return &h.CheckResult, h.CheckErr
}

func (h *Handler) Deliver(ctx tranche.Context, db tranche.KVStore, tx tranche.Tx) (*tranche.DeliverResult, error) {
	h.deliverCall++
	return &h.DeliverResult, h.DeliverErr
}

func (h *Handler) CheckCallCount() int {
	return h.checkCall
}

func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

func (h *Handler) CallCount() int {
	return h.checkCall + h.deliverCall
}
