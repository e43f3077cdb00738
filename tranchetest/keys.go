package tranchetest

import (
	"github.com/tranche-io/tranche"
	"github.com/tranche-io/tranche/crypto"
)

func NewKey() crypto.Signer {
	return crypto.GenPrivKeyEd25519()
}

func NewCondition() tranche.Condition {
	return NewKey().PublicKey().Condition()
}
