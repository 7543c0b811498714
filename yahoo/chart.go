package yahoo

import (
	"context"
	"fmt"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/muljin/sharetrack"
	"github.com/muljin/sharetrack/date"
)

// History fetches the daily adjusted-close series for a symbol from the v8
// chart endpoint. Series are cached for a day per (symbol, from) pair, the
// way the rest of the app refreshes historicals at most daily.
func (c *Client) History(ctx context.Context, symbol string, from date.Date) ([]sharetrack.HistoricalEntry, error) {
	key := fmt.Sprintf("history:%s:%s", symbol, from)
	if cached, ok := c.charts.Get(key); ok {
		return cached.([]sharetrack.HistoricalEntry), nil
	}

	period1 := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC).Unix()
	addr := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&period1=%d&period2=%d&events=div%%2Csplit",
		c.BaseURL, symbol, period1, time.Now().Unix())

	var raw struct {
		Chart struct {
			Result []struct {
				Timestamp  []int64 `json:"timestamp"`
				Indicators struct {
					Adjclose []struct {
						Adjclose []*float64 `json:"adjclose"`
					} `json:"adjclose"`
				} `json:"indicators"`
			} `json:"result"`
			Error any `json:"error"`
		} `json:"chart"`
	}
	if err := c.getJSON(ctx, addr, &raw); err != nil {
		return nil, fmt.Errorf("chart request for %s failed: %w", symbol, err)
	}
	if len(raw.Chart.Result) == 0 {
		return nil, fmt.Errorf("chart request for %s: no result", symbol)
	}

	result := raw.Chart.Result[0]
	if len(result.Indicators.Adjclose) == 0 {
		return nil, fmt.Errorf("chart request for %s: no adjusted close series", symbol)
	}
	closes := result.Indicators.Adjclose[0].Adjclose
	if len(closes) != len(result.Timestamp) {
		return nil, fmt.Errorf("chart request for %s: %d closes for %d timestamps",
			symbol, len(closes), len(result.Timestamp))
	}

	entries := make([]sharetrack.HistoricalEntry, 0, len(closes))
	for i, ts := range result.Timestamp {
		if closes[i] == nil {
			continue // market holiday rows come back null
		}
		entries = append(entries, sharetrack.HistoricalEntry{
			Date:     date.FromTime(time.Unix(ts, 0).UTC()),
			AdjClose: decimal.NewFromFloat(*closes[i]),
		})
	}

	c.charts.Set(key, entries, cache.DefaultExpiration)
	c.log.Debug("fetched historical series",
		zap.String("symbol", symbol),
		zap.Int("points", len(entries)))
	return entries, nil
}

// IntradayPrice fetches the latest traded price for a single symbol from the
// intraday chart. It is a spot lookup for interactive use, not part of a
// valuation pass, so it tolerates the loosely shaped chart payload by
// extracting just the one field it needs.
func (c *Client) IntradayPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	addr := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1m&range=1d", c.BaseURL, symbol)

	var jobj any
	if err := c.getJSON(ctx, addr, &jobj); err != nil {
		return decimal.Zero, fmt.Errorf("intraday request for %s failed: %w", symbol, err)
	}

	path := "$.chart.result[0].meta.regularMarketPrice"
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return decimal.Zero, fmt.Errorf("intraday price for %s: %q %w", symbol, path, err)
	}
	// jsonpath is never clear about whether it returns a list of one answer
	// or a single answer; keep the first one if any.
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	val, ok := jval.(float64)
	if !ok {
		return decimal.Zero, fmt.Errorf("intraday price for %s: %q not a number: %v", symbol, path, jval)
	}
	return decimal.NewFromFloat(val), nil
}
