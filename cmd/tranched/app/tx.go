package tranched

import (
	"github.com/tranche-io/tranche"
	"github.com/tranche-io/tranche/coin"
	"github.com/tranche-io/tranche/errors"
	"github.com/tranche-io/tranche/x/cash"
	"github.com/tranche-io/tranche/x/sigs"
)

var (
	_ tranche.Tx    = (*Tx)(nil)
	_ cash.FeeTx    = (*Tx)(nil)
	_ sigs.SignedTx = (*Tx)(nil)
)

// Fee sets the FeeInfo for this tx
func (tx *Tx) Fee(payer tranche.Address, fee coin.Coin) {
	tx.Fees = &cash.FeeInfo{
		Payer: payer,
		Fees:  &fee,
	}
}

// GetMsg returns a single message instance that is represented by this
// transaction.
func (tx *Tx) GetMsg() (tranche.Msg, error) {
	return tranche.ExtractMsgFromSum(tx.GetSum())
}

// GetSignBytes returns the bytes to sign. Sign bytes never include the
// signatures themselves.
func (tx *Tx) GetSignBytes() ([]byte, error) {
	// temporarily unset the signatures, as the sign bytes
	// should not include any signature
	sigs := tx.Signatures
	tx.Signatures = nil

	// figure out all the sign bytes
	bz, err := tx.Marshal()

	// reset the signatures after calculating the sign bytes
	tx.Signatures = sigs

	return bz, err
}

// TxDecoder creates a Tx and unmarshals bytes into it
func TxDecoder(bz []byte) (tranche.Tx, error) {
	tx := new(Tx)
	if err := tx.Unmarshal(bz); err != nil {
		return nil, errors.Wrap(err, "cannot decode transaction")
	}
	return tx, nil
}
