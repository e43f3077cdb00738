package main

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/tranche-io/tranche"
	app "github.com/tranche-io/tranche/cmd/tranched/app"
	"github.com/tranche-io/tranche/coin"
	"github.com/tranche-io/tranche/tranchetest/assert"
	"github.com/tranche-io/tranche/x/cash"
)

func fromHex(t testing.TB, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestTxSerializationRoundTrip(t *testing.T) {
	tx := &app.Tx{
		Sum: &app.Tx_CashSendMsg{
			CashSendMsg: &cash.SendMsg{
				Metadata:    &tranche.Metadata{Schema: 1},
				Source:      fromHex(t, "b1ca7e78f74423ae01da3b51e676934d9105f282"),
				Destination: fromHex(t, "E28AE9A6EB94FC88B73EB7CBD6B87BF93EB9BEF0"),
				Amount:      coin.NewCoinp(3, 0, "TRN"),
				Memo:        "round trip",
			},
		},
	}

	var b bytes.Buffer
	wrote, err := writeTx(&b, tx)
	if err != nil {
		t.Fatalf("cannot serialize transaction: %s", err)
	}

	got, read, err := readTx(&b)
	if err != nil {
		t.Fatalf("cannot deserialize transaction: %s", err)
	}
	assert.Equal(t, wrote, read)

	gotMsg, err := got.GetMsg()
	if err != nil {
		t.Fatalf("cannot get transaction message: %s", err)
	}
	wantMsg, _ := tx.GetMsg()
	assert.Equal(t, wantMsg, gotMsg)
}

func TestSequenceRoundTrip(t *testing.T) {
	cases := map[string]uint64{
		"one":   1,
		"big":   1234567890,
		"max32": 1<<32 - 1,
	}
	for testName, n := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := fromSequence(sequenceID(n))
			if err != nil {
				t.Fatalf("cannot decode sequence: %s", err)
			}
			assert.Equal(t, n, got)
		})
	}
}
