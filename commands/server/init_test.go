package server

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/tendermint/tendermint/libs/log"
)

func TestInitCmd(t *testing.T) {
	home, err := ioutil.TempDir("", "tranche-init")
	if err != nil {
		t.Fatalf("cannot create temporary directory: %s", err)
	}
	defer os.RemoveAll(home)

	if err := os.MkdirAll(filepath.Join(home, "config"), 0700); err != nil {
		t.Fatalf("cannot create config directory: %s", err)
	}
	genFile := filepath.Join(home, "config", "genesis.json")
	genesis := `{"chain_id": "test-chain-xyz", "app_state": {}}`
	if err := ioutil.WriteFile(genFile, []byte(genesis), 0600); err != nil {
		t.Fatalf("cannot write genesis file: %s", err)
	}

	gen := func(args []string) (json.RawMessage, error) {
		return json.RawMessage(`{"conf": {"demo": "value"}}`), nil
	}
	if err := InitCmd(gen, log.NewNopLogger(), home, nil); err != nil {
		t.Fatalf("init failed: %+v", err)
	}

	raw, err := ioutil.ReadFile(genFile)
	if err != nil {
		t.Fatalf("cannot read genesis file: %s", err)
	}
	var doc GenesisDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("cannot parse genesis file: %s", err)
	}
	if string(doc["chain_id"]) != `"test-chain-xyz"` {
		t.Errorf("want the chain id to be preserved, got %s", doc["chain_id"])
	}
	var state map[string]json.RawMessage
	if err := json.Unmarshal(doc["app_state"], &state); err != nil {
		t.Fatalf("cannot parse app state: %s", err)
	}
	if _, ok := state["conf"]; !ok {
		t.Errorf("want the generated options in app_state, got %s", doc["app_state"])
	}
}

func TestInitCmdMissingGenesis(t *testing.T) {
	home, err := ioutil.TempDir("", "tranche-init")
	if err != nil {
		t.Fatalf("cannot create temporary directory: %s", err)
	}
	defer os.RemoveAll(home)

	gen := func(args []string) (json.RawMessage, error) {
		return json.RawMessage(`{}`), nil
	}
	if err := InitCmd(gen, log.NewNopLogger(), home, nil); err == nil {
		t.Fatal("want a failure when the genesis file is missing")
	}
}
