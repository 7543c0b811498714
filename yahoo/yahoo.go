// Package yahoo implements the market-data capabilities (batched quotes,
// historical price series) against the Yahoo Finance endpoints.
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/muljin/sharetrack"
)

// DefaultBaseURL is the production Yahoo Finance endpoint.
const DefaultBaseURL = "https://query2.finance.yahoo.com"

const userAgent = "sharetrack/1.0"

// Client talks to Yahoo Finance. The endpoints are rate limited, so every
// request goes through a shared limiter, and historical series are cached
// for a day.
type Client struct {
	// BaseURL may be overridden, e.g. to point at a test server.
	BaseURL string

	http    *http.Client
	limiter *rate.Limiter
	charts  *cache.Cache
	log     *zap.Logger
}

// NewClient returns a ready client. A nil logger is replaced by a no-op one.
func NewClient(log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		BaseURL: DefaultBaseURL,
		http:    &http.Client{Timeout: 8 * time.Second},
		limiter: rate.NewLimiter(rate.Every(500*time.Millisecond), 2),
		charts:  cache.New(24*time.Hour, time.Hour),
		log:     log,
	}
}

// getJSON performs a rate-limited GET and decodes the JSON response.
func (c *Client) getJSON(ctx context.Context, addr string, data any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("yahoo http %d for %s", resp.StatusCode, req.URL.Path)
	}
	return json.NewDecoder(resp.Body).Decode(data)
}

// quoteResult mirrors the fields of the v7 quote endpoint the engine needs.
// Pointers keep absent fields distinguishable from zero values, so a partial
// quote can be reported field by field downstream.
type quoteResult struct {
	Symbol                     string   `json:"symbol"`
	RegularMarketPrice         *float64 `json:"regularMarketPrice"`
	RegularMarketPreviousClose *float64 `json:"regularMarketPreviousClose"`
	Currency                   string   `json:"currency"`
	Exchange                   string   `json:"exchange"`
}

// BatchQuote requests all symbols in one call to the v7 quote endpoint. The
// returned map omits symbols Yahoo did not resolve; it never invents or
// duplicates keys.
func (c *Client) BatchQuote(ctx context.Context, symbols []string) (map[string]sharetrack.Quote, error) {
	if len(symbols) == 0 {
		return map[string]sharetrack.Quote{}, nil
	}

	q := url.Values{}
	q.Set("symbols", strings.Join(symbols, ","))
	q.Set("fields", "regularMarketPrice,regularMarketPreviousClose,currency,exchange")
	addr := c.BaseURL + "/v7/finance/quote?" + q.Encode()

	var raw struct {
		QuoteResponse struct {
			Result []quoteResult `json:"result"`
			Error  any           `json:"error"`
		} `json:"quoteResponse"`
	}
	if err := c.getJSON(ctx, addr, &raw); err != nil {
		return nil, fmt.Errorf("quote request failed: %w", err)
	}
	if raw.QuoteResponse.Error != nil {
		return nil, fmt.Errorf("quote request failed: %v", raw.QuoteResponse.Error)
	}

	quotes := make(map[string]sharetrack.Quote, len(raw.QuoteResponse.Result))
	for _, r := range raw.QuoteResponse.Result {
		quotes[r.Symbol] = sharetrack.Quote{
			Symbol:        r.Symbol,
			Price:         toDecimal(r.RegularMarketPrice),
			PreviousClose: toDecimal(r.RegularMarketPreviousClose),
			Currency:      r.Currency,
			Exchange:      r.Exchange,
		}
	}
	return quotes, nil
}

func toDecimal(f *float64) *decimal.Decimal {
	if f == nil {
		return nil
	}
	d := decimal.NewFromFloat(*f)
	return &d
}
