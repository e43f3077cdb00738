package main

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/tranche-io/tranche"
	app "github.com/tranche-io/tranche/cmd/tranched/app"
	"github.com/tranche-io/tranche/coin"
	"github.com/tranche-io/tranche/x/vesting"
)

func cmdCreateVesting(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), `
Create a transaction for granting a vesting schedule to the recipient account.
The schedule clock starts at the block time of the transaction. Only the
configured admin can submit this transaction.
		`)
		fl.PrintDefaults()
	}
	var (
		recipientFl = flAddress(fl, "recipient", "", "An address that the granted funds are released to.")
		amountFl    = flCoin(fl, "amount", "1 TRN", "Total amount granted by this schedule.")
		durationFl  = fl.Duration("duration", 365*24*time.Hour, "Time it takes for the whole grant to vest.")
		cliffFl     = fl.Duration("cliff", 0, "Time from the schedule start during which nothing can be released.")
	)
	fl.Parse(args)

	if coin.IsEmpty(amountFl) || !amountFl.IsPositive() {
		flagDie("grant amount must be provided and greater than zero.")
	}
	if *durationFl <= 0 {
		flagDie("vesting duration must be greater than zero.")
	}
	if *cliffFl < 0 {
		flagDie("cliff cannot be negative.")
	}

	tx := &app.Tx{
		Sum: &app.Tx_VestingCreateMsg{
			VestingCreateMsg: &vesting.CreateMsg{
				Metadata:    &tranche.Metadata{Schema: 1},
				Recipient:   *recipientFl,
				Amount:      amountFl,
				Duration:    tranche.AsUnixDuration(*durationFl),
				CliffOffset: tranche.AsUnixDuration(*cliffFl),
			},
		},
	}
	_, err := writeTx(output, tx)
	return err
}

func cmdCustodianAddr(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), `
Print out the hex-address of the custodian account that holds all granted
funds until they are released. Transfer tokens to this address to fund the
grants.
		`)
		fl.PrintDefaults()
	}
	fl.Parse(args)

	_, err := fmt.Fprintln(output, vesting.CustodianAccount())
	return err
}

func cmdReleaseVesting(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), `
Create a transaction for releasing all vested but not yet paid out funds to
the recipient account. If no recipient is provided, the main transaction
signer is used.
		`)
		fl.PrintDefaults()
	}
	var (
		recipientFl = flAddress(fl, "recipient", "", "Optional address that the accrued funds are released to. Defaults to the main signer.")
	)
	fl.Parse(args)

	tx := &app.Tx{
		Sum: &app.Tx_VestingReleaseMsg{
			VestingReleaseMsg: &vesting.ReleaseMsg{
				Metadata:  &tranche.Metadata{Schema: 1},
				Recipient: *recipientFl,
			},
		},
	}
	_, err := writeTx(output, tx)
	return err
}
