package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type accountsCmd struct{}

func (*accountsCmd) Name() string     { return "accounts" }
func (*accountsCmd) Synopsis() string { return "lists the holding accounts" }
func (*accountsCmd) Usage() string {
	return `spm accounts

Lists all accounts with their ids.
`
}
func (*accountsCmd) SetFlags(_ *flag.FlagSet) {}

func (*accountsCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, _, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	accounts, err := s.Accounts()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if len(accounts) == 0 {
		fmt.Println("No accounts yet; create one with add-account.")
		return subcommands.ExitSuccess
	}
	for _, a := range accounts {
		fmt.Printf("%s  %s  (created %s)\n", a.AccountID, a.Name, a.Created)
	}
	return subcommands.ExitSuccess
}

type addAccountCmd struct {
	name string
}

func (*addAccountCmd) Name() string     { return "add-account" }
func (*addAccountCmd) Synopsis() string { return "creates a holding account" }
func (*addAccountCmd) Usage() string {
	return `spm add-account -name "SMSF"

Creates an account with a fresh id.
`
}

func (c *addAccountCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "display name of the account")
}

func (c *addAccountCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.name == "" {
		fmt.Fprintln(os.Stderr, "Error: -name is required")
		return subcommands.ExitUsageError
	}
	s, _, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	account, err := s.AddAccount(c.name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Created account %s with id %s\n", account.Name, account.AccountID)
	return subcommands.ExitSuccess
}

type renameAccountCmd struct {
	id   string
	name string
}

func (*renameAccountCmd) Name() string     { return "rename-account" }
func (*renameAccountCmd) Synopsis() string { return "renames a holding account" }
func (*renameAccountCmd) Usage() string {
	return `spm rename-account -id <id> -name "SMSF"

Changes the display name of an existing account. Ledger records reference
accounts by id, so renaming never touches them.
`
}

func (c *renameAccountCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "id of the account")
	f.StringVar(&c.name, "name", "", "new display name")
}

func (c *renameAccountCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" || c.name == "" {
		fmt.Fprintln(os.Stderr, "Error: -id and -name are required")
		return subcommands.ExitUsageError
	}
	s, _, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := s.RenameAccount(c.id, c.name); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Renamed account %s to %s\n", c.id, c.name)
	return subcommands.ExitSuccess
}
