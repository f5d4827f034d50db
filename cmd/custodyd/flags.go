package main

import (
	"os"
	"path/filepath"

	"github.com/iov-one/custody/commands/server"
	"github.com/urfave/cli/v2"
)

const (
	flagHome     = "home"
	flagBind     = "bind"
	flagDebug    = "debug"
	flagLogLevel = "log-level"
)

var (
	homeFlag = &cli.StringFlag{
		Name:  flagHome,
		Usage: "directory to store files under",
		Value: filepath.Join(os.ExpandEnv("$HOME"), ".custodyd"),
	}
	logLevelFlag = &cli.StringFlag{
		Name:  flagLogLevel,
		Usage: "minimal log level: debug, info, error or none",
		Value: "info",
	}
	bindFlag = &cli.StringFlag{
		Name:  flagBind,
		Usage: "address the abci server listens on",
		Value: server.DefaultBind,
	}
	debugFlag = &cli.BoolFlag{
		Name:  flagDebug,
		Usage: "return the call stack of failed transactions",
	}
)
