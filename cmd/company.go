package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/muljin/sharetrack"
)

type addCompanyCmd struct {
	code     string
	name     string
	currency string
}

func (*addCompanyCmd) Name() string     { return "add-company" }
func (*addCompanyCmd) Synopsis() string { return "declares a company to track" }
func (*addCompanyCmd) Usage() string {
	return `spm add-company -code CBA -name "Commonwealth Bank" [-currency AUD]

Declares a company so trades can be recorded against it. Codes without an
exchange suffix are quoted on the ASX.
`
}

func (c *addCompanyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.code, "code", "", "asx code of the company")
	f.StringVar(&c.name, "name", "", "full name of the company")
	f.StringVar(&c.currency, "currency", "AUD", "listing currency")
}

func (c *addCompanyCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.code == "" {
		fmt.Fprintln(os.Stderr, "Error: -code is required")
		return subcommands.ExitUsageError
	}
	s, _, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	existing, err := s.Company(c.code)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if existing != nil {
		fmt.Fprintf(os.Stderr, "Error: company %q is already declared\n", c.code)
		return subcommands.ExitFailure
	}
	company := &sharetrack.Company{AsxCode: c.code, Name: c.name, Currency: c.currency}
	if err := s.SaveCompany(company); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Declared %s (%s), quoted as %s\n", c.code, c.name, company.Symbol())
	return subcommands.ExitSuccess
}
