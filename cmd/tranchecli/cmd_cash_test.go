package main

import (
	"bytes"
	"testing"

	"github.com/tranche-io/tranche/coin"
	"github.com/tranche-io/tranche/tranchetest/assert"
	"github.com/tranche-io/tranche/x/cash"
)

func TestCmdSendTokensHappyPath(t *testing.T) {
	var output bytes.Buffer
	args := []string{
		"-src", "b1ca7e78f74423ae01da3b51e676934d9105f282",
		"-dst", "E28AE9A6EB94FC88B73EB7CBD6B87BF93EB9BEF0",
		"-amount", "5 TRN",
		"-memo", "a memo",
	}
	if err := cmdSendTokens(nil, &output, args); err != nil {
		t.Fatalf("cannot create a new token transfer transaction: %s", err)
	}

	tx, _, err := readTx(&output)
	if err != nil {
		t.Fatalf("cannot unmarshal created transaction: %s", err)
	}

	txmsg, err := tx.GetMsg()
	if err != nil {
		t.Fatalf("cannot get transaction message: %s", err)
	}
	msg := txmsg.(*cash.SendMsg)

	assert.Equal(t, fromHex(t, "b1ca7e78f74423ae01da3b51e676934d9105f282"), []byte(msg.Source))
	assert.Equal(t, fromHex(t, "E28AE9A6EB94FC88B73EB7CBD6B87BF93EB9BEF0"), []byte(msg.Destination))
	assert.Equal(t, "a memo", msg.Memo)
	assert.Equal(t, coin.NewCoinp(5, 0, "TRN"), msg.Amount)
}

func TestCmdWithFeeHappyPath(t *testing.T) {
	var sendOut bytes.Buffer
	sendArgs := []string{
		"-src", "b1ca7e78f74423ae01da3b51e676934d9105f282",
		"-dst", "E28AE9A6EB94FC88B73EB7CBD6B87BF93EB9BEF0",
		"-amount", "5 TRN",
	}
	if err := cmdSendTokens(nil, &sendOut, sendArgs); err != nil {
		t.Fatalf("cannot create a new token transfer transaction: %s", err)
	}

	var output bytes.Buffer
	feeArgs := []string{
		"-payer", "b1ca7e78f74423ae01da3b51e676934d9105f282",
		"-amount", "2 TRN",
	}
	if err := cmdWithFee(&sendOut, &output, feeArgs); err != nil {
		t.Fatalf("cannot attach a fee to the transaction: %s", err)
	}

	tx, _, err := readTx(&output)
	if err != nil {
		t.Fatalf("cannot unmarshal created transaction: %s", err)
	}

	if tx.Fees == nil {
		t.Fatal("transaction fee information missing")
	}
	assert.Equal(t, fromHex(t, "b1ca7e78f74423ae01da3b51e676934d9105f282"), []byte(tx.Fees.Payer))
	assert.Equal(t, coin.NewCoinp(2, 0, "TRN"), tx.Fees.Fees)
}
