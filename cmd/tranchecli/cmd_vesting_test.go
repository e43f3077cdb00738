package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/tranche-io/tranche"
	"github.com/tranche-io/tranche/coin"
	"github.com/tranche-io/tranche/tranchetest/assert"
	"github.com/tranche-io/tranche/x/vesting"
)

func TestCmdCreateVestingHappyPath(t *testing.T) {
	var output bytes.Buffer
	args := []string{
		"-recipient", "E28AE9A6EB94FC88B73EB7CBD6B87BF93EB9BEF0",
		"-amount", "100 TRN",
		"-duration", "720h",
		"-cliff", "168h",
	}
	if err := cmdCreateVesting(nil, &output, args); err != nil {
		t.Fatalf("cannot create a vesting grant transaction: %s", err)
	}

	tx, _, err := readTx(&output)
	if err != nil {
		t.Fatalf("cannot unmarshal created transaction: %s", err)
	}

	txmsg, err := tx.GetMsg()
	if err != nil {
		t.Fatalf("cannot get transaction message: %s", err)
	}
	msg := txmsg.(*vesting.CreateMsg)

	assert.Equal(t, fromHex(t, "E28AE9A6EB94FC88B73EB7CBD6B87BF93EB9BEF0"), []byte(msg.Recipient))
	assert.Equal(t, coin.NewCoinp(100, 0, "TRN"), msg.Amount)
	assert.Equal(t, tranche.AsUnixDuration(720*time.Hour), msg.Duration)
	assert.Equal(t, tranche.AsUnixDuration(168*time.Hour), msg.CliffOffset)
}

func TestCmdReleaseVestingHappyPath(t *testing.T) {
	var output bytes.Buffer
	args := []string{
		"-recipient", "E28AE9A6EB94FC88B73EB7CBD6B87BF93EB9BEF0",
	}
	if err := cmdReleaseVesting(nil, &output, args); err != nil {
		t.Fatalf("cannot create a release transaction: %s", err)
	}

	tx, _, err := readTx(&output)
	if err != nil {
		t.Fatalf("cannot unmarshal created transaction: %s", err)
	}

	txmsg, err := tx.GetMsg()
	if err != nil {
		t.Fatalf("cannot get transaction message: %s", err)
	}
	msg := txmsg.(*vesting.ReleaseMsg)

	assert.Equal(t, fromHex(t, "E28AE9A6EB94FC88B73EB7CBD6B87BF93EB9BEF0"), []byte(msg.Recipient))
}

func TestCmdReleaseVestingDefaultsToSigner(t *testing.T) {
	var output bytes.Buffer
	if err := cmdReleaseVesting(nil, &output, nil); err != nil {
		t.Fatalf("cannot create a release transaction: %s", err)
	}

	tx, _, err := readTx(&output)
	if err != nil {
		t.Fatalf("cannot unmarshal created transaction: %s", err)
	}

	txmsg, err := tx.GetMsg()
	if err != nil {
		t.Fatalf("cannot get transaction message: %s", err)
	}
	msg := txmsg.(*vesting.ReleaseMsg)

	if len(msg.Recipient) != 0 {
		t.Fatalf("want no recipient, got %q", msg.Recipient)
	}
}
