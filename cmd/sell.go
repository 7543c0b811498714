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

type sellCmd struct {
	code      string
	day       string
	quantity  string
	unitPrice string
	brokerage string
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "records a share disposal" }
func (*sellCmd) Usage() string {
	return `spm sell -code CBA -qty 60 -price 15.00 [-brokerage 19.95] [-date 2025-07-01]

Consumes open lots earliest-acquisition-first. One sale may span several
lots; each consumed lot yields one sell-history entry with its apportioned
fees and capital gain classification. The disposal either fully applies or
is rejected without touching the ledger.
`
}

func (c *sellCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.code, "code", "", "asx code of the company")
	f.StringVar(&c.day, "date", date.Today().String(), "sale date")
	f.StringVar(&c.quantity, "qty", "", "number of shares to sell")
	f.StringVar(&c.unitPrice, "price", "", "price sold per share")
	f.StringVar(&c.brokerage, "brokerage", "0", "brokerage paid for the sale")
}

func (c *sellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
		fmt.Fprintf(os.Stderr, "Error: unknown company %q\n", c.code)
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
	sellFees := sharetrack.BreakdownCost(sharetrack.Q(qty), sharetrack.M(price, ""),
		sharetrack.M(brokerage, ""), settings.GstPercent)

	accountant := sharetrack.NewAccountant(nil)
	entries, err := company.ExecuteSell(accountant, sharetrack.Disposal{
		Quantity:  sharetrack.Q(qty),
		UnitPrice: sharetrack.M(price, ""),
		Brokerage: sellFees.Brokerage,
		Gst:       sellFees.Gst,
		Date:      day,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if err := s.SaveCompany(company); err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not save company: %v\n", err)
		return subcommands.ExitFailure
	}

	for _, e := range entries {
		discount := ""
		if e.CgtDiscount {
			discount = " (CGT discount)"
		}
		fmt.Printf("Sold %s from lot of %s: proceeds %s, profit %s, capital gain %s%s\n",
			e.Quantity, e.BuyDate, e.Total.Decimal(), e.ProfitOrLoss.Decimal(),
			e.CapitalGainOrLoss.Decimal(), discount)
	}
	return subcommands.ExitSuccess
}
