package sigs

import (
	"github.com/tranche-io/tranche"
	"github.com/tranche-io/tranche/tranchetest"
)

//----- mock objects for testing...

// StdTx is a transaction wrapper carrying signatures. It is a minimal
// implementation of SignedTx, mostly useful in tests of other packages that
// need a signable transaction double.
type StdTx struct {
	tranche.Tx
	Signatures []*StdSignature
}

var _ SignedTx = (*StdTx)(nil)
var _ tranche.Tx = (*StdTx)(nil)

// NewStdTx returns a transaction carrying given payload and no signatures.
func NewStdTx(payload []byte) *StdTx {
	msg := &tranchetest.Msg{Serialized: payload}
	return &StdTx{Tx: &tranchetest.Tx{Msg: msg}}
}

func (tx StdTx) GetSignatures() []*StdSignature {
	return tx.Signatures
}

func (tx StdTx) GetSignBytes() ([]byte, error) {
	// marshal self w/o sigs
	s := tx.Signatures
	tx.Signatures = nil
	defer func() { tx.Signatures = s }()

	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	return msg.Marshal()
}
