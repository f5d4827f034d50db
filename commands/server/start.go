package server

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/iov-one/custody/errors"
	"github.com/tendermint/tendermint/abci/server"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// DefaultBind is the address the abci server listens on unless told
// otherwise.
const DefaultBind = "tcp://localhost:26658"

// AppGenerator lets us lazily initialize app, using home dir
// and logger potentially initialized with other flags
type AppGenerator func(string, log.Logger, bool) (abci.Application, error)

// StartCmd initializes the application and serves it over an abci
// socket until the process receives an interrupt.
func StartCmd(gen AppGenerator, logger log.Logger, home, addr string, debug bool) error {
	stop, err := Serve(gen, logger, home, addr, debug)
	if err != nil {
		return err
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	s := <-sig
	logger.Info("Shutting down", "signal", s.String())
	return stop()
}

// Serve starts the abci server in the background. The returned function
// stops it.
func Serve(gen AppGenerator, logger log.Logger, home, addr string, debug bool) (func() error, error) {
	app, err := gen(home, logger, debug)
	if err != nil {
		return nil, errors.Wrap(err, "cannot create application")
	}

	logger.Info("Starting ABCI app", "bind", addr)
	svr, err := server.NewServer(addr, "socket", app)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "creating listener: %s", err)
	}
	svr.SetLogger(logger.With("module", "abci-server"))
	if err := svr.Start(); err != nil {
		return nil, errors.Wrapf(errors.ErrState, "starting server: %s", err)
	}
	return svr.Stop, nil
}
