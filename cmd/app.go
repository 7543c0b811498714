// Package cmd implements the CLI application to manage a share portfolio.
package cmd

import (
	"flag"

	"github.com/google/subcommands"
	"go.uber.org/zap"

	"github.com/muljin/sharetrack/store"
)

// Register registers all subcommands on the commander.
func Register(c *subcommands.Commander) {
	c.Register(&portfolioCmd{}, "reports")

	c.Register(&buyCmd{}, "trades")
	c.Register(&sellCmd{}, "trades")

	c.Register(&addCompanyCmd{}, "records")
	c.Register(&accountsCmd{}, "records")
	c.Register(&addAccountCmd{}, "records")
	c.Register(&renameAccountCmd{}, "records")
	c.Register(&settingsCmd{}, "records")

	c.Register(&priceCmd{}, "quotes")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to
// use global variables.

var configFile = flag.String("config", "", "path to the yaml config file")
var dataDir = flag.String("data", "", "path to the data directory (overrides the config file)")

// openStore opens the record store at the configured data directory.
func openStore() (*store.Store, Config, error) {
	cfg, err := Get()
	if err != nil {
		return nil, Config{}, err
	}
	s, err := store.Open(cfg.DataDir)
	if err != nil {
		return nil, Config{}, err
	}
	return s, cfg, nil
}

// logger builds the process logger once.
func logger() *zap.Logger {
	log, err := zap.NewProduction()
	if err != nil {
		return zap.NewNop()
	}
	return log
}
