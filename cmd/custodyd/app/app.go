/*
Package app links together all the various components
to construct the custodyd app.
*/
package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/app"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
	"github.com/iov-one/custody/store/iavl"
	"github.com/iov-one/custody/x"
	"github.com/iov-one/custody/x/escrow"
	"github.com/iov-one/custody/x/sigs"
	"github.com/iov-one/custody/x/token"
	"github.com/iov-one/custody/x/utils"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// Name is returned by the ABCI Info call.
const Name = "custodyd"

// Authenticator returns the authentication of human signers, based on
// the transaction signatures.
func Authenticator() x.Authenticator {
	return sigs.Authenticate{}
}

// LedgerAuthenticator extends the signature authentication with the
// program signatures the escrow attaches when it moves a custody slot.
func LedgerAuthenticator() x.Authenticator {
	return x.ChainAuth(sigs.Authenticate{}, x.ProgramAuth{})
}

// Chain returns a chain of decorators, to handle authentication,
// logging, and recovery
func Chain() app.Decorators {
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		utils.NewActionTagger(),
		// on CheckTx, bad tx don't affect state
		utils.NewSavepoint().OnCheck(),
		sigs.NewDecorator(),
		// on DeliverTx, a failed message is discarded as a whole, but
		// the signature nonce is still incremented
		utils.NewSavepoint().OnDeliver(),
	)
}

// Router returns a router dispatching all token and escrow messages. The
// escrow moves tokens through the same ledger controller the token
// handlers use.
func Router() *app.Router {
	r := app.NewRouter()
	ledger := token.NewController(LedgerAuthenticator())
	token.RegisterRoutes(r, LedgerAuthenticator(), ledger)
	escrow.RegisterRoutes(r, Authenticator(), ledger)
	return r
}

// QueryRouter returns a default query router,
// allowing access to "/", "/auth", "/mints", "/slots" and "/escrows"
func QueryRouter() custody.QueryRouter {
	r := custody.NewQueryRouter()
	r.RegisterAll(
		orm.RegisterQuery,
		sigs.RegisterQuery,
		token.RegisterQuery,
		escrow.RegisterQuery,
	)
	return r
}

// Stack wires up a standard router with a standard decorator
// chain. This can be passed into BaseApp.
func Stack() custody.Handler {
	return Chain().WithHandler(Router())
}

// Initializers returns the genesis initializers of all extensions.
func Initializers() custody.Initializer {
	return app.ChainInitializers(
		&token.Initializer{},
		&escrow.Initializer{},
	)
}

// Application constructs a basic ABCI application with
// the given arguments. If you are not sure what to use
// for the Handler, just use Stack().
func Application(name string, h custody.Handler,
	tx custody.TxDecoder, dbPath string, debug bool) (*app.BaseApp, error) {
	kv, err := CommitKVStore(dbPath)
	if err != nil {
		return nil, errors.Wrap(err, "cannot create database")
	}
	store := app.NewStoreApp(name, kv, QueryRouter(), context.Background())
	return app.NewBaseApp(store, tx, h, debug), nil
}

// CommitKVStore returns an initialized KVStore that persists
// the data to the named path.
func CommitKVStore(dbPath string) (custody.CommitKVStore, error) {
	// memory backed case, just for testing
	if dbPath == "" {
		return iavl.MemCommitStore(), nil
	}

	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "invalid database name: %s", dbPath)
	}

	// Some external calls accidentally add a ".db", which is now removed
	path = strings.TrimSuffix(path, filepath.Ext(path))

	dir := filepath.Dir(path)
	name := filepath.Base(path)
	kv, err := iavl.NewCommitStore(dir, name)
	if err != nil {
		return nil, err
	}
	return kv, nil
}

// GenerateApp is used to create the application for the start command.
func GenerateApp(home string, logger log.Logger, debug bool) (abci.Application, error) {
	// db goes in a subdir, but "" -> "" for memdb
	var dbPath string
	if home != "" {
		dbPath = filepath.Join(home, "custody.db")
	}

	application, err := Application(Name, Stack(), TxDecoder, dbPath, debug)
	if err != nil {
		return nil, err
	}
	application.WithInit(Initializers())
	application.WithLogger(logger)
	return application, nil
}
