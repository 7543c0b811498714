package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"

	"github.com/muljin/sharetrack"
	"github.com/muljin/sharetrack/date"
	"github.com/muljin/sharetrack/renderer"
	"github.com/muljin/sharetrack/yahoo"
)

type portfolioCmd struct {
	graphs bool
	plain  bool
}

func (*portfolioCmd) Name() string     { return "portfolio" }
func (*portfolioCmd) Synopsis() string { return "values the portfolio against live quotes" }
func (*portfolioCmd) Usage() string {
	return `spm portfolio [-graphs] [-plain]

Fetches one batch of quotes for every company with open lots, values each
holding in the reporting currency, and prints the portfolio table and
summary. Companies whose quotes did not resolve are listed unpriced; they
never abort the report.
`
}

func (c *portfolioCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.graphs, "graphs", false, "also build the historical value series for each graph range")
	f.BoolVar(&c.plain, "plain", false, "print raw markdown instead of rendering for the terminal")
}

func (c *portfolioCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, cfg, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	companies, err := s.Companies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load companies: %v\n", err)
		return subcommands.ExitFailure
	}

	log := logger()
	defer log.Sync()

	client := yahoo.NewClient(log)
	valuator := sharetrack.NewValuator(client, client, cfg.ReportingCurrency, log)

	var ranges []sharetrack.GraphRange
	if c.graphs {
		ranges = sharetrack.GraphRanges
	}
	data, err := valuator.BuildPortfolioData(ctx, companies, ranges)
	if err != nil {
		// The pass is skipped entirely; previous figures remain valid.
		fmt.Fprintf(os.Stderr, "Error: valuation pass skipped: %v\n", err)
		return subcommands.ExitFailure
	}

	md := renderer.Portfolio(data, date.Today())
	if c.graphs {
		for _, r := range sharetrack.GraphRanges {
			md += fmt.Sprintf("\n%d month series: %d points", r.Months(), len(data.Graph[r]))
		}
		md += "\n"
	}

	if c.plain {
		fmt.Print(md)
		return subcommands.ExitSuccess
	}
	out, err := glamour.Render(md, "dark")
	if err != nil {
		fmt.Print(md)
		return subcommands.ExitSuccess
	}
	fmt.Print(out)
	return subcommands.ExitSuccess
}
