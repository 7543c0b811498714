package sharetrack

import (
	"slices"
	"testing"

	"github.com/muljin/sharetrack/date"
)

// newTradedCompany builds a company with the given buy history; lots are not
// needed for graph folding, which replays the trade history.
func newTradedCompany(code string, buys ...BuyHistoryEntry) *Company {
	return &Company{AsxCode: code, BuyHistory: buys}
}

func buy(day, qty string) BuyHistoryEntry {
	return BuyHistoryEntry{Date: date.MustParse(day), Quantity: Q(dec(qty))}
}

func sell(day, qty string) SellHistoryEntry {
	return SellHistoryEntry{SellDate: date.MustParse(day), Quantity: Q(dec(qty))}
}

func entry(day, adjClose string) HistoricalEntry {
	return HistoricalEntry{Date: date.MustParse(day), AdjClose: dec(adjClose)}
}

func TestPortfolioValueSeries_CarryForward(t *testing.T) {
	companies := []*Company{
		newTradedCompany("CBA", buy("2023-01-01", "10")),
		newTradedCompany("BHP", buy("2023-01-01", "5")),
	}
	series := map[string][]HistoricalEntry{
		"CBA.AX": {entry("2024-01-01", "100"), entry("2024-01-03", "110")},
		"BHP.AX": {entry("2024-01-02", "40")},
	}

	got := slices.Collect(PortfolioValueSeries(companies, series, date.MustParse("2024-01-01")))

	want := []GraphDataPoint{
		{ID: 1, Date: date.MustParse("2024-01-01"), Value: 1000},         // BHP has no price yet
		{ID: 2, Date: date.MustParse("2024-01-02"), Value: 1000 + 200},   // CBA holds at 100
		{ID: 3, Date: date.MustParse("2024-01-03"), Value: 1100 + 200},   // BHP holds at 40
	}
	if len(got) != len(want) {
		t.Fatalf("got %d points, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("point %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestPortfolioValueSeries_WindowExcludesEarlierDates(t *testing.T) {
	companies := []*Company{newTradedCompany("CBA", buy("2023-01-01", "10"))}
	series := map[string][]HistoricalEntry{
		"CBA.AX": {entry("2023-12-20", "90"), entry("2024-01-05", "100")},
	}

	got := slices.Collect(PortfolioValueSeries(companies, series, date.MustParse("2024-01-01")))
	if len(got) != 1 {
		t.Fatalf("got %d points, want 1 inside the window", len(got))
	}
	if got[0].Date != date.MustParse("2024-01-05") {
		t.Errorf("point date = %v, want 2024-01-05", got[0].Date)
	}
}

func TestPortfolioValueSeries_UnitsFollowTrades(t *testing.T) {
	c := newTradedCompany("CBA", buy("2023-01-01", "10"))
	c.SellHistory = append(c.SellHistory, sell("2024-01-02", "4"))
	series := map[string][]HistoricalEntry{
		"CBA.AX": {entry("2024-01-01", "100"), entry("2024-01-03", "100")},
	}

	got := slices.Collect(PortfolioValueSeries([]*Company{c}, series, date.MustParse("2024-01-01")))
	if len(got) != 2 {
		t.Fatalf("got %d points, want 2", len(got))
	}
	if got[0].Value != 1000 {
		t.Errorf("pre-sale value = %v, want 1000", got[0].Value)
	}
	if got[1].Value != 600 {
		t.Errorf("post-sale value = %v, want 600 after selling 4 units", got[1].Value)
	}
}

func TestPortfolioValueSeries_Restartable(t *testing.T) {
	companies := []*Company{newTradedCompany("CBA", buy("2023-01-01", "10"))}
	series := map[string][]HistoricalEntry{
		"CBA.AX": {entry("2024-01-01", "100"), entry("2024-01-02", "110")},
	}

	seq := PortfolioValueSeries(companies, series, date.MustParse("2024-01-01"))
	first := slices.Collect(seq)
	second := slices.Collect(seq)
	if !slices.Equal(first, second) {
		t.Errorf("second iteration differs:\n first %+v\nsecond %+v", first, second)
	}
}

func TestGraphRangeStart(t *testing.T) {
	today := date.MustParse("2024-06-15")
	tests := []struct {
		r    GraphRange
		want string
	}{
		{1, "2024-05-15"},
		{12, "2023-06-15"},
		{60, "2019-06-15"},
	}
	for _, tc := range tests {
		if got := tc.r.Start(today); got != date.MustParse(tc.want) {
			t.Errorf("GraphRange(%d).Start = %v, want %s", tc.r, got, tc.want)
		}
	}
}
