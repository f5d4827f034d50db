package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/iov-one/custody/errors"
	"github.com/spf13/viper"
	"github.com/urfave/cli/v2"
)

// configFile is looked up in the home directory. Its keys are the flag
// names.
const configFile = "custodyd.toml"

// envReplacer maps a flag like `--log-level` to the environment variable
// CUSTODYD_LOG_LEVEL.
var envReplacer = strings.NewReplacer("-", "_")

func init() {
	viper.SetEnvPrefix("CUSTODYD")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(envReplacer)
}

// loadConfig reads the optional configuration file of the home directory.
func loadConfig(ctx *cli.Context) error {
	path := filepath.Join(stringSetting(ctx, flagHome), configFile)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		return errors.Wrapf(errors.ErrInput, "config file %s: %s", path, err)
	}
	return nil
}

// A flag given on the command line wins over the environment, which wins
// over the configuration file. The flag default is used last.
func stringSetting(ctx *cli.Context, name string) string {
	if !ctx.IsSet(name) && viper.IsSet(name) {
		return viper.GetString(name)
	}
	return ctx.String(name)
}

func boolSetting(ctx *cli.Context, name string) bool {
	if !ctx.IsSet(name) && viper.IsSet(name) {
		return viper.GetBool(name)
	}
	return ctx.Bool(name)
}
