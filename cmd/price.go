package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/muljin/sharetrack/yahoo"
)

type priceCmd struct{}

func (*priceCmd) Name() string     { return "price" }
func (*priceCmd) Synopsis() string { return "prints the latest traded price for a symbol" }
func (*priceCmd) Usage() string {
	return `spm price <symbol...>

Looks up the latest intraday price for each symbol, e.g. "spm price CBA.AX NVDA".
`
}
func (*priceCmd) SetFlags(_ *flag.FlagSet) {}

func (*priceCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: at least one symbol is required")
		return subcommands.ExitUsageError
	}
	log := logger()
	defer log.Sync()
	client := yahoo.NewClient(log)

	status := subcommands.ExitSuccess
	for _, symbol := range f.Args() {
		price, err := client.IntradayPrice(ctx, symbol)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			status = subcommands.ExitFailure
			continue
		}
		fmt.Printf("%s  %s\n", symbol, price)
	}
	return status
}
