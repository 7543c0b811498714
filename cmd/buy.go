package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"github.com/muljin/sharetrack"
	"github.com/muljin/sharetrack/date"
)

type buyCmd struct {
	code      string
	account   string
	day       string
	quantity  string
	unitPrice string
	brokerage string
}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "records a share purchase" }
func (*buyCmd) Usage() string {
	return `spm buy -code CBA -account <id> -qty 100 -price 104.50 [-brokerage 19.95] [-date 2025-07-01]

Appends a new open lot and an immutable purchase record to the company. GST
is derived from the brokerage using the configured GST percentage.
`
}

func (c *buyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.code, "code", "", "asx code of the company")
	f.StringVar(&c.account, "account", "", "account id that buys the shares")
	f.StringVar(&c.day, "date", date.Today().String(), "purchase date")
	f.StringVar(&c.quantity, "qty", "", "number of shares")
	f.StringVar(&c.unitPrice, "price", "", "price paid per share")
	f.StringVar(&c.brokerage, "brokerage", "0", "brokerage paid for the trade")
}

func (c *buyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, _, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	company, err := s.Company(c.code)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if company == nil {
		fmt.Fprintf(os.Stderr, "Error: unknown company %q, declare it first with add-company\n", c.code)
		return subcommands.ExitFailure
	}

	day, err := date.Parse(c.day)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	qty, err := decimal.NewFromString(c.quantity)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid quantity %q: %v\n", c.quantity, err)
		return subcommands.ExitFailure
	}
	price, err := decimal.NewFromString(c.unitPrice)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid price %q: %v\n", c.unitPrice, err)
		return subcommands.ExitFailure
	}
	brokerage, err := decimal.NewFromString(c.brokerage)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid brokerage %q: %v\n", c.brokerage, err)
		return subcommands.ExitFailure
	}

	settings, err := s.Settings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	breakdown := company.ExecuteBuy(sharetrack.Purchase{
		AccountID: c.account,
		Date:      day,
		Quantity:  sharetrack.Q(qty),
		UnitPrice: sharetrack.M(price, ""),
		Brokerage: sharetrack.M(brokerage, ""),
	}, settings.GstPercent)

	if err := s.SaveCompany(company); err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not save company: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Bought %s %s @ %s (brokerage %s, GST %s, total %s)\n",
		c.quantity, c.code, price, breakdown.Brokerage.Decimal(), breakdown.Gst.Decimal(), breakdown.Total.Decimal())
	return subcommands.ExitSuccess
}
