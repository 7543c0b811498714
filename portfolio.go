package sharetrack

import (
	"context"
	"errors"
	"slices"

	"github.com/muljin/sharetrack/date"
	"go.uber.org/zap"
)

// PortfolioTableRow is one valued holding. Rows are view models: built once
// per valuation pass and never mutated. A row whose quote could not be
// resolved still appears, carrying its ledger-side figures and the error;
// its price-derived fields are zero.
type PortfolioTableRow struct {
	ID                int       `json:"id"`
	AsxCode           string    `json:"asxcode"`
	Units             float64   `json:"units"`
	AvgBuyPrice       float64   `json:"avgBuyPrice"`
	CurrentPrice      float64   `json:"currentPrice"`
	MarketValue       float64   `json:"marketValue"`
	PurchaseCost      float64   `json:"purchaseCost"`
	DailyChangePerc   Percent   `json:"dailyChangePerc"`
	DailyProfit       float64   `json:"dailyProfit"`
	ProfitOrLoss      float64   `json:"profitOrLoss"`
	ProfitOrLossPerc  Percent   `json:"profitOrLossPerc"`
	FirstPurchaseDate date.Date `json:"firstPurchaseDate"`
	LastPurchaseDate  date.Date `json:"lastPurchaseDate"`
	WeightPerc        Percent   `json:"weightPerc"`

	// Err records why the row could not be fully valued. Rows with a non-nil
	// Err are excluded from portfolio totals and carry a zero weight.
	Err error `json:"-"`
}

// PortfolioText is the formatted headline summary of the portfolio.
type PortfolioText struct {
	TotalValue      string `json:"totalValue"`
	DailyChange     string `json:"dailyChange"`
	DailyChangePerc string `json:"dailyChangePerc"`
	TotalChange     string `json:"totalChange"`
	TotalChangePerc string `json:"totalChangePerc"`
}

// PortfolioData is the output of one valuation pass.
type PortfolioData struct {
	Table []PortfolioTableRow
	Text  PortfolioText
	Graph map[GraphRange][]GraphDataPoint
}

// Valuator runs valuation passes: one batched quote fetch, then pure
// computation over the in-memory ledger. Each pass owns its own QuoteStore,
// so concurrent passes never share mutable state.
type Valuator struct {
	fetcher *Fetcher
	history HistoricalProvider
	target  string
	log     *zap.Logger
}

// NewValuator returns a valuator reporting in the target currency. The
// historical provider may be nil, in which case no graph series are built.
func NewValuator(provider QuoteProvider, history HistoricalProvider, target string, log *zap.Logger) *Valuator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Valuator{
		fetcher: NewFetcher(provider, log),
		history: history,
		target:  target,
		log:     log,
	}
}

// ReportingCurrency returns the currency all figures are normalized into.
func (v *Valuator) ReportingCurrency() string { return v.target }

// BuildPortfolioData values every company with open lots: one batched quote
// fetch, per-company rows, headline text, and one graph series per requested
// range.
//
// An error is returned only when the batched fetch itself fails (the caller
// skips the pass and keeps previous figures). A company whose quote cannot
// be resolved fails independently: it yields a placeholder row and is
// logged, never aborting the report.
func (v *Valuator) BuildPortfolioData(ctx context.Context, companies []*Company, ranges []GraphRange) (*PortfolioData, error) {
	held := make([]*Company, 0, len(companies))
	var symbols, currencies []string
	for _, c := range companies {
		if len(c.OpenLots()) == 0 {
			continue
		}
		held = append(held, c)
		symbols = append(symbols, c.Symbol())
		if c.Currency != "" {
			currencies = append(currencies, c.Currency)
		}
	}

	store := NewQuoteStore(v.target)
	if err := v.fetcher.Fetch(ctx, store, symbols, currencies); err != nil {
		return nil, err
	}

	data := &PortfolioData{Graph: make(map[GraphRange][]GraphDataPoint)}

	var totalValue, totalCost, dailyChange Money
	for i, c := range held {
		cb, err := ComputeCostBasis(c.OpenLots())
		if errors.Is(err, ErrNoOpenLots) {
			continue
		}

		row := PortfolioTableRow{
			ID:                i + 1,
			AsxCode:           c.AsxCode,
			Units:             cb.Units.Decimal().InexactFloat64(),
			AvgBuyPrice:       cb.AvgPrice.InexactFloat64(),
			PurchaseCost:      cb.TotalCost.InexactFloat64(),
			FirstPurchaseDate: cb.FirstPurchase,
			LastPurchaseDate:  cb.LastPurchase,
		}

		resolved, err := store.Resolve(c.Symbol())
		if err != nil {
			v.log.Warn("could not value company",
				zap.String("asxcode", c.AsxCode),
				zap.String("symbol", c.Symbol()),
				zap.Error(err))
			row.Err = err
			data.Table = append(data.Table, row)
			continue
		}

		current := resolved.Price.Convert(resolved.Factor.Rate, v.target)
		previous := resolved.PreviousClose.Convert(resolved.Factor.PreviousRate, v.target)

		marketValue := current.Mul(cb.Units)
		dailyProfit := current.Sub(previous).Mul(cb.Units)
		// The ledger records costs in the listing currency; today's rate
		// carries them into the reporting currency (identity when equal).
		cost := cb.TotalCost.Convert(resolved.Factor.Rate, v.target)
		profitOrLoss := marketValue.Sub(cost)

		row.CurrentPrice = current.InexactFloat64()
		row.MarketValue = marketValue.InexactFloat64()
		row.PurchaseCost = cost.InexactFloat64()
		row.DailyChangePerc = percentOf(current.Sub(previous).InexactFloat64(), previous.InexactFloat64())
		row.DailyProfit = dailyProfit.InexactFloat64()
		row.ProfitOrLoss = profitOrLoss.InexactFloat64()
		row.ProfitOrLossPerc = percentOf(profitOrLoss.InexactFloat64(), cost.InexactFloat64())
		data.Table = append(data.Table, row)

		totalValue = totalValue.Add(marketValue)
		totalCost = totalCost.Add(cost)
		dailyChange = dailyChange.Add(dailyProfit)
	}

	// Weight each row by market value. If the total is zero, or the row
	// failed, its weight stays zero.
	for i := range data.Table {
		if data.Table[i].Err != nil {
			continue
		}
		data.Table[i].WeightPerc = percentOf(data.Table[i].MarketValue, totalValue.InexactFloat64())
	}

	totalChange := totalValue.Sub(totalCost)
	previousValue := totalValue.Sub(dailyChange)
	data.Text = PortfolioText{
		TotalValue:      totalValue.In(v.target).String(),
		DailyChange:     dailyChange.In(v.target).SignedString(),
		DailyChangePerc: percentOf(dailyChange.InexactFloat64(), previousValue.InexactFloat64()).SignedString(),
		TotalChange:     totalChange.In(v.target).SignedString(),
		TotalChangePerc: percentOf(totalChange.InexactFloat64(), totalCost.InexactFloat64()).SignedString(),
	}

	if v.history != nil && len(ranges) > 0 {
		v.buildGraphs(ctx, data, held, ranges)
	}
	return data, nil
}

// buildGraphs fetches each held company's historical series once, over the
// widest requested range, then folds one portfolio series per range. A
// company whose history fails is logged and skipped; the graph degrades
// instead of aborting the report.
func (v *Valuator) buildGraphs(ctx context.Context, data *PortfolioData, held []*Company, ranges []GraphRange) {
	today := date.Today()
	widest := slices.Max(ranges)

	series := make(map[string][]HistoricalEntry, len(held))
	for _, c := range held {
		entries, err := v.history.History(ctx, c.Symbol(), widest.Start(today))
		if err != nil {
			v.log.Warn("could not fetch historical data",
				zap.String("symbol", c.Symbol()),
				zap.Error(err))
			continue
		}
		series[c.Symbol()] = entries
	}

	for _, r := range ranges {
		data.Graph[r] = slices.Collect(PortfolioValueSeries(held, series, r.Start(today)))
	}
}
