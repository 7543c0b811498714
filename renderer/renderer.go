// Package renderer turns valuation output into markdown reports.
package renderer

import (
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/muljin/sharetrack"
	"github.com/muljin/sharetrack/date"
)

//go:embed templates/*.md
var templates embed.FS

// portfolioView is the data handed to the portfolio template.
type portfolioView struct {
	Date  date.Date
	Text  sharetrack.PortfolioText
	Table []sharetrack.PortfolioTableRow
}

var funcs = template.FuncMap{
	"money": func(v float64) string { return fmt.Sprintf("%.2f", v) },
	"perc":  func(p sharetrack.Percent) string { return p.String() },
	"signedPerc": func(p sharetrack.Percent) string {
		return p.SignedString()
	},
	"rowStatus": func(r sharetrack.PortfolioTableRow) string {
		if r.Err != nil {
			return "unpriced: " + r.Err.Error()
		}
		return ""
	},
}

// Portfolio renders the valuation pass as a markdown document.
func Portfolio(data *sharetrack.PortfolioData, on date.Date) string {
	view := portfolioView{Date: on, Text: data.Text, Table: data.Table}
	return render("portfolio", "portfolio.md", view)
}

func render(name, file string, data any) string {
	t, err := template.New(name).Funcs(funcs).ParseFS(templates, "templates/"+file)
	if err != nil {
		// Templates are embedded; a parse failure is a programming error.
		panic(fmt.Sprintf("cannot parse template %s: %v", file, err))
	}
	var sb strings.Builder
	if err := t.ExecuteTemplate(&sb, file, data); err != nil {
		panic(fmt.Sprintf("cannot execute template %s: %v", file, err))
	}
	return sb.String()
}
