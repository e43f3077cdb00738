/*
Package tranched links together all the various components
to construct the tranched app.
*/
package tranched

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/tranche-io/tranche"
	"github.com/tranche-io/tranche/app"
	"github.com/tranche-io/tranche/migration"
	"github.com/tranche-io/tranche/store/iavl"
	"github.com/tranche-io/tranche/x"
	"github.com/tranche-io/tranche/x/cash"
	"github.com/tranche-io/tranche/x/sigs"
	"github.com/tranche-io/tranche/x/utils"
	"github.com/tranche-io/tranche/x/validators"
	"github.com/tranche-io/tranche/x/vesting"
)

// Authenticator returns the typical authentication,
// just using public key signatures
func Authenticator() x.Authenticator {
	return sigs.Authenticate{}
}

// CashControl returns a controller for cash functions
func CashControl() cash.BaseController {
	return cash.NewController(cash.NewBucket())
}

// Chain returns a chain of decorators, to handle authentication,
// fees, logging, and recovery
func Chain(authFn x.Authenticator) app.Decorators {
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		utils.NewKeyTagger(),
		// on CheckTx, bad tx don't affect state
		utils.NewSavepoint().OnCheck(),
		sigs.NewDecorator(),
		utils.NewActionTagger(),
		// cannot pay for fee with a message that failed
		cash.NewFeeDecorator(authFn, CashControl()),
		utils.NewSavepoint().OnDeliver(),
	)
}

// Router returns a default router, dispatching to all the message
// handlers of this application
func Router(authFn x.Authenticator) *app.Router {
	r := app.NewRouter()

	ctrl := CashControl()
	cash.RegisterRoutes(r, authFn, ctrl)
	vesting.RegisterRoutes(r, authFn, ctrl)
	validators.RegisterRoutes(r, authFn)
	migration.RegisterRoutes(r, authFn)
	return r
}

// QueryRouter returns a default query router,
// allowing access to "/wallets", "/auth", "/vestings" and "/validators"
func QueryRouter() tranche.QueryRouter {
	r := tranche.NewQueryRouter()

	r.RegisterAll(
		cash.RegisterQuery,
		sigs.RegisterQuery,
		vesting.RegisterQuery,
		validators.RegisterQuery,
		migration.RegisterQuery,
	)
	return r
}

// Stack wires up a standard router with a standard decorator
// chain. This can be passed into BaseApp.
func Stack(authFn x.Authenticator) tranche.Handler {
	return Chain(authFn).WithHandler(Router(authFn))
}

// Application constructs a basic ABCI application with
// the given arguments. If you are not sure what to use
// for the Handler, just use Stack().
func Application(name string, h tranche.Handler,
	tx tranche.TxDecoder, dbPath string, debug bool) (app.BaseApp, error) {

	ctx := context.Background()
	kv, err := CommitKVStore(dbPath)
	if err != nil {
		return app.BaseApp{}, err
	}
	store := app.NewStoreApp(name, kv, QueryRouter(), ctx)
	base := app.NewBaseApp(store, tx, h, nil, debug)
	return base, nil
}

// CommitKVStore returns an initialized KVStore that persists
// the data to the named path.
func CommitKVStore(dbPath string) (tranche.CommitKVStore, error) {
	// memory backed case, just for testing
	if dbPath == "" {
		return iavl.MockCommitStore(), nil
	}

	// Expand the path fully
	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, fmt.Errorf("invalid database name: %s", path)
	}

	// Some external calls accidentally add a ".db", which is now removed
	path = strings.TrimSuffix(path, filepath.Ext(path))

	// Split the database name into it's components (dir, name)
	dir := filepath.Dir(path)
	name := filepath.Base(path)
	return iavl.NewCommitStore(dir, name), nil
}
