package tranched

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/tranche-io/tranche"
	"github.com/tranche-io/tranche/app"
	"github.com/tranche-io/tranche/coin"
	"github.com/tranche-io/tranche/crypto"
	"github.com/tranche-io/tranche/migration"
	"github.com/tranche-io/tranche/x/cash"
	"github.com/tranche-io/tranche/x/validators"
	"github.com/tranche-io/tranche/x/vesting"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// GenInitOptions will produce some basic options for one rich
// account, to use for dev mode.
//
// You can set the ticker as the first argument and the hex address of
// the account as the second one.
func GenInitOptions(args []string) (json.RawMessage, error) {
	ticker := "TRN"
	if len(args) > 0 {
		ticker = args[0]
		if !coin.IsCC(ticker) {
			return nil, fmt.Errorf("invalid ticker %s", ticker)
		}
	}

	var addr string
	if len(args) > 1 {
		addr = args[1]
	} else {
		// if no address provided, auto-generate one
		// and print out the keys
		bz, keys, err := GenerateCoinKey()
		if err != nil {
			return nil, err
		}
		addr = hex.EncodeToString(bz)
		fmt.Println(keys)
	}

	opts := fmt.Sprintf(`
	  {
	    "cash": [
	      {
	        "address": "%s",
	        "coins": [
	          {"whole": 123456789, "ticker": "%s"}
	        ]
	      }
	    ],
	    "conf": {
	      "cash": {
	        "collector_address": "%s",
	        "minimal_fee": {}
	      },
	      "migration": {
	        "admin": "%s"
	      },
	      "vesting": {
	        "metadata": {"schema": 1},
	        "owner": "%s",
	        "admin": "%s"
	      }
	    },
	    "initialize_schema": ["cash", "sigs", "vesting", "validators"],
	    "update_validators": {
	      "addresses": ["%s"]
	    },
	    "vesting": []
	  }
	`, addr, ticker, addr, addr, addr, addr, addr)
	return []byte(opts), nil
}

// GenerateApp is used to create a stub for server/start.go command
func GenerateApp(home string, logger log.Logger, debug bool) (abci.Application, error) {
	// db goes in a subdir, but "" -> "" for memdb
	var dbPath string
	if home != "" {
		dbPath = filepath.Join(home, "tranche.db")
	}

	stack := Stack(Authenticator())
	application, err := Application("tranched", stack, TxDecoder, dbPath, debug)
	if err != nil {
		return nil, err
	}

	return DecorateApp(application, logger), nil
}

// DecorateApp adds initializers and Logger to an Application
func DecorateApp(application app.BaseApp, logger log.Logger) app.BaseApp {
	application.WithInit(app.ChainInitializers(
		&migration.Initializer{},
		&cash.Initializer{},
		&vesting.Initializer{Minter: CashControl()},
		&validators.Initializer{},
	))
	application.WithLogger(logger)
	return application
}

// InlineApp will take a previously prepared CommitStore and return a
// complete Application
func InlineApp(kv tranche.CommitKVStore, logger log.Logger, debug bool) abci.Application {
	stack := Stack(Authenticator())
	ctx := context.Background()
	store := app.NewStoreApp("tranched", kv, QueryRouter(), ctx)
	base := app.NewBaseApp(store, TxDecoder, stack, nil, debug)
	return DecorateApp(base, logger)
}

type output struct {
	Pubkey *crypto.PublicKey  `json:"pub_key"`
	Secret *crypto.PrivateKey `json:"secret"`
}

// GenerateCoinKey returns the address of a public key, along with a
// json representation of the keys. You can give coins to this address
// and import the keys in a client to use them.
func GenerateCoinKey() (tranche.Address, string, error) {
	privKey := crypto.GenPrivKeyEd25519()
	pubKey := privKey.PublicKey()
	addr := pubKey.Address()

	out := output{Pubkey: pubKey, Secret: privKey}
	keys, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, "", err
	}

	return addr, string(keys), nil
}
