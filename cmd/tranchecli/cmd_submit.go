package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/tranche-io/tranche/cmd/tranched/client"
	"github.com/tranche-io/tranche/x/vesting"
)

func cmdSubmitTransaction(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Read binary serialized transaction from standard input and submit it.

For certain transactions response is written out.

Make sure to collect enough signatures before submitting the transaction.
`)
		fl.PrintDefaults()
	}
	var (
		tmAddrFl = fl.String("tm", env("TRANCHECLI_TM_ADDR", "http://localhost:26657"),
			"Tendermint node address. You can use TRANCHECLI_TM_ADDR environment variable to set it.")
	)
	fl.Parse(args)

	tx, _, err := readTx(input)
	if err != nil {
		return fmt.Errorf("cannot read transaction from input: %s", err)
	}

	conn := client.NewClient(client.NewHTTPConnection(*tmAddrFl))

	resp := conn.BroadcastTx(tx)
	if err := resp.IsError(); err != nil {
		return fmt.Errorf("cannot broadcast transaction: %s", err)
	}

	msg, err := tx.GetMsg()
	if err != nil {
		return fmt.Errorf("cannot extract message from transaction: %s", err)
	}
	format, ok := formatters[msg.Path()]
	if !ok {
		// If no formatter is registered, we do not print the result.
		return nil
	}
	pretty, err := format(resp.Response.DeliverTx.Data)
	if err != nil {
		return fmt.Errorf("cannot format result data: %s", err)
	}
	fmt.Fprintln(output, pretty)
	return nil
}

// formatters contains a mapping of a message path to response parser. Response
// parse function accepts a raw bytes of serialized response and must return a
// human representation of that data.
//
// Do not register a message if you want response returned after its submission
// to be ignored (not printed to the user).
var formatters = map[string]func([]byte) (string, error){
	vesting.CreateMsg{}.Path():  fmtSequence,
	vesting.ReleaseMsg{}.Path(): fmtSequence,
}

func fmtSequence(raw []byte) (string, error) {
	n, err := fromSequence(raw)
	if err != nil {
		return "", fmt.Errorf("cannot parse sequence: %s", err)
	}
	return fmt.Sprint(n), nil
}
