package sharetrack

import (
	"context"
	"iter"
	"sort"

	"github.com/muljin/sharetrack/date"
	"github.com/shopspring/decimal"
)

// HistoricalEntry is one point of a historical price series, in the
// security's native currency.
type HistoricalEntry struct {
	Date     date.Date       `json:"date"`
	AdjClose decimal.Decimal `json:"adjClose"`
}

// HistoricalProvider is the external historical-price capability. Series
// come back ordered by date ascending.
type HistoricalProvider interface {
	History(ctx context.Context, symbol string, from date.Date) ([]HistoricalEntry, error)
}

// GraphRange is a graph look-back window in months.
type GraphRange int

// GraphRanges are the supported look-back windows.
var GraphRanges = []GraphRange{1, 3, 6, 12, 60}

// Months returns the number of months in the range.
func (r GraphRange) Months() int { return int(r) }

// Start returns the first date of the range ending today.
func (r GraphRange) Start(today date.Date) date.Date { return today.AddMonths(-int(r)) }

// GraphDataPoint is one sample of total portfolio value.
type GraphDataPoint struct {
	ID    int       `json:"id"`
	Date  date.Date `json:"date"`
	Value float64   `json:"value"`
}

// PortfolioValueSeries folds per-company historical series into a single
// portfolio-value sequence, one point per date on which any company has a
// price. Between price points a company's last known price is carried
// forward (no interpolation); the unit count at each date is replayed from
// the company's trade history.
//
// The returned sequence is lazy, finite and restartable: iterating it again
// replays the fold from the start.
func PortfolioValueSeries(companies []*Company, series map[string][]HistoricalEntry, from date.Date) iter.Seq[GraphDataPoint] {
	// Union of sample dates within the window, sorted ascending.
	seen := make(map[date.Date]struct{})
	for _, entries := range series {
		for _, e := range entries {
			if !e.Date.Before(from) {
				seen[e.Date] = struct{}{}
			}
		}
	}
	dates := make([]date.Date, 0, len(seen))
	for d := range seen {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	return func(yield func(GraphDataPoint) bool) {
		// Per-company cursor into its series, fresh per iteration.
		cursors := make(map[string]int, len(companies))
		lastPrice := make(map[string]decimal.Decimal, len(companies))

		for i, day := range dates {
			total := decimal.Zero
			for _, c := range companies {
				symbol := c.Symbol()
				entries := series[symbol]
				j := cursors[symbol]
				for j < len(entries) && !entries[j].Date.After(day) {
					lastPrice[symbol] = entries[j].AdjClose
					j++
				}
				cursors[symbol] = j
				price, ok := lastPrice[symbol]
				if !ok {
					continue // no price known yet for this company
				}
				units := c.UnitsHeldOn(day)
				if !units.IsPositive() {
					continue
				}
				total = total.Add(price.Mul(units.Decimal()))
			}
			point := GraphDataPoint{ID: i + 1, Date: day, Value: total.InexactFloat64()}
			if !yield(point) {
				return
			}
		}
	}
}
