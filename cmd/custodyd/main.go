package main

import (
	"fmt"
	"os"

	"github.com/iov-one/custody"
	custodyd "github.com/iov-one/custody/cmd/custodyd/app"
	"github.com/iov-one/custody/commands/server"
	"github.com/iov-one/custody/errors"
	"github.com/tendermint/tendermint/libs/log"
	"github.com/urfave/cli/v2"
)

var logger log.Logger

func main() {
	app := cli.NewApp()
	app.Name = custodyd.Name
	app.Usage = "custodial escrow node"
	app.Version = custody.Version
	app.Commands = append(
		app.Commands,
		&initCommand,
		&startCommand,
		&validateCommand,
		&keyCommand,
		&versionCommand,
	)
	app.Flags = []cli.Flag{homeFlag, logLevelFlag}
	app.Before = func(ctx *cli.Context) error {
		if err := loadConfig(ctx); err != nil {
			return err
		}
		l, err := newLogger(stringSetting(ctx, flagLogLevel))
		if err != nil {
			return err
		}
		logger = l
		return nil
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Printf("Error: %+v\n", err)
		os.Exit(1)
	}
}

func newLogger(level string) (log.Logger, error) {
	allowed, err := log.AllowLevel(level)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	base := log.NewTMLogger(log.NewSyncWriter(os.Stdout)).With("module", custodyd.Name)
	return log.NewFilter(base, allowed), nil
}

var (
	initCommand = cli.Command{
		Name:      "init",
		Usage:     "Initialize app state in genesis file",
		ArgsUsage: "[-force] [pooled|direct] [supply]",
		Action: func(ctx *cli.Context) error {
			home := stringSetting(ctx, flagHome)
			return server.InitCmd(custodyd.GenInitOptions, logger, home, ctx.Args().Slice())
		},
	}
	startCommand = cli.Command{
		Name:  "start",
		Usage: "Run the abci server",
		Flags: []cli.Flag{bindFlag, debugFlag},
		Action: func(ctx *cli.Context) error {
			return server.StartCmd(custodyd.GenerateApp, logger,
				stringSetting(ctx, flagHome),
				stringSetting(ctx, flagBind),
				boolSetting(ctx, flagDebug))
		},
	}
	validateCommand = cli.Command{
		Name:      "validate",
		Usage:     "Check that genesis files can initialize the application",
		ArgsUsage: "[genesis.json...]",
		Action: func(ctx *cli.Context) error {
			paths := ctx.Args().Slice()
			if len(paths) == 0 {
				paths = []string{server.GenesisPath(stringSetting(ctx, flagHome))}
			}
			if err := server.ValidateGenesis(custodyd.Initializers(), paths); err != nil {
				return err
			}
			fmt.Println("genesis is valid")
			return nil
		},
	}
	keyCommand = cli.Command{
		Name:  "key",
		Usage: "Generate a new ed25519 key",
		Action: func(ctx *cli.Context) error {
			_, keys, err := custodyd.GenerateKey()
			if err != nil {
				return err
			}
			fmt.Println(keys)
			return nil
		},
	}
	versionCommand = cli.Command{
		Name:  "version",
		Usage: "Print the app version",
		Action: func(ctx *cli.Context) error {
			fmt.Println(custody.Version)
			return nil
		},
	}
)
