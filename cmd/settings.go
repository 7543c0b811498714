package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"github.com/muljin/sharetrack"
)

type settingsCmd struct {
	gstPercent string
	brokerage  string
	autoFill   string
}

func (*settingsCmd) Name() string     { return "settings" }
func (*settingsCmd) Synopsis() string { return "shows or updates the application settings" }
func (*settingsCmd) Usage() string {
	return `spm settings [-gst 10] [-brokerage 19.95] [-autofill true|false]

Without flags, prints the current settings. With flags, updates them.
`
}

func (c *settingsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.gstPercent, "gst", "", "% of brokerage used to calculate GST")
	f.StringVar(&c.brokerage, "brokerage", "", "brokerage amount to prefill on trades")
	f.StringVar(&c.autoFill, "autofill", "", "prefill the unit price from the current share price (true/false)")
}

func (c *settingsCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, _, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	settings, err := s.Settings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	changed := false
	if c.gstPercent != "" {
		v, err := decimal.NewFromString(c.gstPercent)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid gst percent %q: %v\n", c.gstPercent, err)
			return subcommands.ExitFailure
		}
		settings.GstPercent = sharetrack.M(v, "")
		changed = true
	}
	if c.brokerage != "" {
		v, err := decimal.NewFromString(c.brokerage)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid brokerage %q: %v\n", c.brokerage, err)
			return subcommands.ExitFailure
		}
		settings.BrokerageAutoFill = sharetrack.M(v, "")
		changed = true
	}
	if c.autoFill != "" {
		settings.UnitPriceAutoFill = c.autoFill == "true"
		changed = true
	}

	if changed {
		if err := s.SaveSettings(settings); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
	}

	fmt.Printf("GST percent:          %s%%\n", settings.GstPercent.Decimal())
	fmt.Printf("Brokerage auto-fill:  %s\n", settings.BrokerageAutoFill.Decimal())
	fmt.Printf("Unit price auto-fill: %t\n", settings.UnitPriceAutoFill)
	return subcommands.ExitSuccess
}
