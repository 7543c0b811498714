package sharetrack

import (
	"context"
	"errors"
	"math"
	"testing"

	"go.uber.org/zap"
)

// newHolding builds a company with a single open lot for valuation tests.
func newHolding(code, currency, day, qty, unitPrice string) *Company {
	c := &Company{AsxCode: code, Currency: currency}
	c.CurrentShares = append(c.CurrentShares, newLot(day, qty, unitPrice, "0", "0"))
	return c
}

func TestBuildPortfolioData_Rows(t *testing.T) {
	provider := &fakeProvider{quotes: map[string]Quote{
		"CBA.AX": newQuote("CBA.AX", "110.00", "100.00", "AUD"),
	}}
	valuator := NewValuator(provider, nil, "AUD", zap.NewNop())

	companies := []*Company{newHolding("CBA", "AUD", "2023-01-01", "10", "90.00")}
	data, err := valuator.BuildPortfolioData(context.Background(), companies, nil)
	if err != nil {
		t.Fatalf("BuildPortfolioData() unexpected error: %v", err)
	}
	if len(data.Table) != 1 {
		t.Fatalf("got %d rows, want 1", len(data.Table))
	}

	row := data.Table[0]
	if row.MarketValue != 1100 {
		t.Errorf("MarketValue = %v, want 1100", row.MarketValue)
	}
	if row.PurchaseCost != 900 {
		t.Errorf("PurchaseCost = %v, want 900", row.PurchaseCost)
	}
	if row.DailyProfit != 100 {
		t.Errorf("DailyProfit = %v, want 100", row.DailyProfit)
	}
	if !row.DailyChangePerc.Equal(10) {
		t.Errorf("DailyChangePerc = %v, want 10%%", row.DailyChangePerc)
	}
	if row.ProfitOrLoss != 200 {
		t.Errorf("ProfitOrLoss = %v, want 200", row.ProfitOrLoss)
	}
	if !row.WeightPerc.Equal(100) {
		t.Errorf("WeightPerc = %v, want 100%% for a single holding", row.WeightPerc)
	}
}

func TestBuildPortfolioData_WeightsSumTo100(t *testing.T) {
	provider := &fakeProvider{quotes: map[string]Quote{
		"CBA.AX": newQuote("CBA.AX", "100.00", "100.00", "AUD"),
		"BHP.AX": newQuote("BHP.AX", "40.00", "40.00", "AUD"),
		"WDS.AX": newQuote("WDS.AX", "25.00", "25.00", "AUD"),
	}}
	valuator := NewValuator(provider, nil, "AUD", zap.NewNop())

	companies := []*Company{
		newHolding("CBA", "AUD", "2023-01-01", "10", "90.00"),
		newHolding("BHP", "AUD", "2023-01-01", "30", "38.00"),
		newHolding("WDS", "AUD", "2023-01-01", "7", "30.00"),
	}
	data, err := valuator.BuildPortfolioData(context.Background(), companies, nil)
	if err != nil {
		t.Fatalf("BuildPortfolioData() unexpected error: %v", err)
	}

	var sum float64
	for _, row := range data.Table {
		sum += float64(row.WeightPerc)
	}
	if math.Abs(sum-100) > 0.0001 {
		t.Errorf("weights sum to %v, want 100", sum)
	}
}

func TestBuildPortfolioData_ZeroPreviousClose(t *testing.T) {
	provider := &fakeProvider{quotes: map[string]Quote{
		"CBA.AX": newQuote("CBA.AX", "110.00", "0", "AUD"),
	}}
	valuator := NewValuator(provider, nil, "AUD", zap.NewNop())

	companies := []*Company{newHolding("CBA", "AUD", "2023-01-01", "10", "90.00")}
	data, err := valuator.BuildPortfolioData(context.Background(), companies, nil)
	if err != nil {
		t.Fatalf("BuildPortfolioData() unexpected error: %v", err)
	}
	// A zero previous close is 0% change, never a division by zero.
	if !data.Table[0].DailyChangePerc.Equal(0) {
		t.Errorf("DailyChangePerc = %v, want 0%% when previous close is 0", data.Table[0].DailyChangePerc)
	}
}

func TestBuildPortfolioData_CurrencyConversion(t *testing.T) {
	provider := &fakeProvider{quotes: map[string]Quote{
		"NVDA.O":   newQuote("NVDA.O", "100", "90", "USD"),
		"USDAUD=X": newQuote("USDAUD=X", "1.5", "1.5", "AUD"),
	}}
	valuator := NewValuator(provider, nil, "AUD", zap.NewNop())

	companies := []*Company{newHolding("NVDA.O", "USD", "2023-01-01", "10", "80.00")}
	data, err := valuator.BuildPortfolioData(context.Background(), companies, nil)
	if err != nil {
		t.Fatalf("BuildPortfolioData() unexpected error: %v", err)
	}

	row := data.Table[0]
	if row.CurrentPrice != 150 {
		t.Errorf("CurrentPrice = %v, want 150 AUD", row.CurrentPrice)
	}
	if row.MarketValue != 1500 {
		t.Errorf("MarketValue = %v, want 1500 AUD", row.MarketValue)
	}
	// The USD cost basis converts at today's rate: 10*80*1.5.
	if row.PurchaseCost != 1200 {
		t.Errorf("PurchaseCost = %v, want 1200 AUD", row.PurchaseCost)
	}
	// Cost and value are in the same currency, so the row is self-consistent.
	if row.ProfitOrLoss != row.MarketValue-row.PurchaseCost {
		t.Errorf("ProfitOrLoss = %v, want MarketValue-PurchaseCost = %v",
			row.ProfitOrLoss, row.MarketValue-row.PurchaseCost)
	}
}

func TestBuildPortfolioData_PlaceholderRow(t *testing.T) {
	provider := &fakeProvider{quotes: map[string]Quote{
		"CBA.AX": newQuote("CBA.AX", "100.00", "100.00", "AUD"),
	}}
	valuator := NewValuator(provider, nil, "AUD", zap.NewNop())

	companies := []*Company{
		newHolding("CBA", "AUD", "2023-01-01", "10", "90.00"),
		newHolding("BHP", "AUD", "2023-01-01", "30", "38.00"), // no quote comes back
	}
	data, err := valuator.BuildPortfolioData(context.Background(), companies, nil)
	if err != nil {
		t.Fatalf("one unresolved company must not abort the report, got: %v", err)
	}
	if len(data.Table) != 2 {
		t.Fatalf("got %d rows, want 2: failed rows appear as placeholders", len(data.Table))
	}

	var placeholder *PortfolioTableRow
	for i := range data.Table {
		if data.Table[i].AsxCode == "BHP" {
			placeholder = &data.Table[i]
		}
	}
	if placeholder == nil {
		t.Fatal("BHP row dropped, want a placeholder row")
	}
	if !errors.Is(placeholder.Err, ErrQuoteNotFound) {
		t.Errorf("placeholder Err = %v, want ErrQuoteNotFound", placeholder.Err)
	}
	// Ledger-side figures survive; price-derived fields and weight are zero.
	if placeholder.Units != 30 || placeholder.PurchaseCost != 1140 {
		t.Errorf("placeholder ledger figures = (%v units, %v cost), want (30, 1140)", placeholder.Units, placeholder.PurchaseCost)
	}
	if placeholder.MarketValue != 0 || !placeholder.WeightPerc.Equal(0) {
		t.Errorf("placeholder priced fields = (%v, %v), want zero", placeholder.MarketValue, placeholder.WeightPerc)
	}

	// Totals cover only the resolved rows.
	if data.Text.TotalValue != M(dec("1000"), "AUD").String() {
		t.Errorf("TotalValue = %q, want the resolved row only", data.Text.TotalValue)
	}
}

func TestBuildPortfolioData_EmptyPortfolio(t *testing.T) {
	provider := &fakeProvider{quotes: map[string]Quote{}}
	valuator := NewValuator(provider, nil, "AUD", zap.NewNop())

	data, err := valuator.BuildPortfolioData(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("BuildPortfolioData() unexpected error: %v", err)
	}
	if len(data.Table) != 0 {
		t.Errorf("got %d rows, want none", len(data.Table))
	}
	if len(provider.requested) != 0 {
		t.Errorf("provider called for an empty portfolio")
	}
	if data.Text.DailyChangePerc != "-" {
		t.Errorf("DailyChangePerc = %q, want %q for an empty portfolio", data.Text.DailyChangePerc, "-")
	}
}

func TestBuildPortfolioData_FetchFailureSkipsPass(t *testing.T) {
	provider := &fakeProvider{err: errors.New("timeout")}
	valuator := NewValuator(provider, nil, "AUD", zap.NewNop())

	companies := []*Company{newHolding("CBA", "AUD", "2023-01-01", "10", "90.00")}
	_, err := valuator.BuildPortfolioData(context.Background(), companies, nil)
	if err == nil {
		t.Fatal("a failed batch fetch must fail the pass so previous figures are retained")
	}
}
