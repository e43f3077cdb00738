package main

import (
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"strconv"

	"github.com/tranche-io/tranche"
	"github.com/tranche-io/tranche/cmd/tranched/client"
	"github.com/tranche-io/tranche/x/cash"
	"github.com/tranche-io/tranche/x/sigs"
	"github.com/tranche-io/tranche/x/validators"
	"github.com/tranche-io/tranche/x/vesting"
)

type respDecoder interface {
	Unmarshal([]byte) error
}
type idEncoder func(string) ([]byte, error)

var resultParser = map[string]func() respDecoder{
	"/wallets":            func() respDecoder { return &cash.Set{} },
	"/auth":               func() respDecoder { return &sigs.UserData{} },
	"/vestings":           func() respDecoder { return &vesting.VestingSchedule{} },
	"/vestings/recipient": func() respDecoder { return &vesting.VestingSchedule{} },
	"/validators":         func() respDecoder { return &validators.Accounts{} },
}

var idEncoders = map[string]idEncoder{
	"/wallets":            hexAddressEncoder,
	"/auth":               hexAddressEncoder,
	"/vestings":           sequenceEncoder,
	"/vestings/recipient": hexAddressEncoder,
	"/validators":         func(s string) ([]byte, error) { return []byte(s), nil },
}

func hexAddressEncoder(s string) ([]byte, error) {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("cannot hex decode address: %s", err)
	}
	if err := tranche.Address(raw).Validate(); err != nil {
		return nil, err
	}
	return raw, nil
}

func sequenceEncoder(s string) ([]byte, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("cannot parse sequence: %s", err)
	}
	return sequenceID(n), nil
}

func cmdQuery(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), `
Run an ABCI query against a node and print out the result.
		`)
		fl.PrintDefaults()
	}
	var (
		tmAddrFl = fl.String("tm", env("TRANCHECLI_TM_ADDR", "http://localhost:26657"),
			"Tendermint node address. You can use TRANCHECLI_TM_ADDR environment variable to set it.")
		pathFl        = fl.String("path", "", "query path, one of /wallets, /auth, /vestings, /vestings/recipient, /validators")
		dataFl        = fl.String("data", "", "individual query data: a hex address, or a decimal schedule id for /vestings")
		prefixQueryFl = fl.Bool("prefix-mode", false, "optional parameter to enable prefix queries")
	)
	fl.Parse(args)
	if len(*pathFl) == 0 {
		flagDie("non empty path required")
	}

	conn := client.NewClient(client.NewHTTPConnection(*tmAddrFl))
	var data []byte
	if len(*dataFl) != 0 {
		var err error
		encoder, ok := idEncoders[*pathFl]
		if !ok {
			return fmt.Errorf("no id encoder for path %q", *pathFl)
		}
		if data, err = encoder(*dataFl); err != nil {
			return fmt.Errorf("cannot encode data: %s", err)
		}
	}
	queryPath := *pathFl
	if *prefixQueryFl {
		queryPath += "?" + tranche.PrefixQueryMod
	}
	resp, err := conn.AbciQuery(queryPath, data)
	if err != nil {
		return fmt.Errorf("failed to run query: %s", err)
	}

	p, ok := resultParser[*pathFl]
	if !ok {
		return fmt.Errorf("no decoder for path %q", *pathFl)
	}
	result := make([]interface{}, 0, len(resp.Models))
	for i, m := range resp.Models {
		obj := p()
		if err := obj.Unmarshal(m.Value); err != nil {
			return fmt.Errorf("failed to unmarshal model %d: %s", i, err)
		}
		result = append(result, obj)
	}
	pretty, err := json.MarshalIndent(result, "", "\t")
	if err != nil {
		return fmt.Errorf("cannot JSON serialize: %s", err)
	}
	_, err = output.Write(pretty)

	return err
}
