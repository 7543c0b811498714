package sharetrack

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"
)

// QuoteProvider is the external market-data capability. BatchQuote may omit
// keys for symbols it could not resolve; it must not invent or duplicate
// them. Implementations are expected to be rate limited, which is why a
// valuation pass issues exactly one batched call.
type QuoteProvider interface {
	BatchQuote(ctx context.Context, symbols []string) (map[string]Quote, error)
}

// Fetcher populates a QuoteStore from a QuoteProvider.
type Fetcher struct {
	provider QuoteProvider
	log      *zap.Logger
}

// NewFetcher returns a fetcher over the given provider. A nil logger is
// replaced by a no-op one.
func NewFetcher(provider QuoteProvider, log *zap.Logger) *Fetcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Fetcher{provider: provider, log: log}
}

// requestSet builds the full set of symbols for one valuation pass: the
// trade symbols plus one conversion pair per foreign currency. The target
// currency itself is never requested; its rate is the identity.
func requestSet(symbols, currencies []string, target string) []string {
	set := make(map[string]struct{}, len(symbols)+len(currencies))
	for _, s := range symbols {
		set[s] = struct{}{}
	}
	for _, cur := range currencies {
		if cur == target {
			continue
		}
		set[PairSymbol(cur, target)] = struct{}{}
	}
	request := make([]string, 0, len(set))
	for s := range set {
		request = append(request, s)
	}
	sort.Strings(request)
	return request
}

// Fetch issues one batched request for the given trade symbols and currency
// conversion pairs, and stores whatever the provider returned.
//
// A partial response is not an error: each requested-but-absent symbol is
// logged as a warning and resolution fails lazily only if that symbol is
// actually needed. A transport failure is an error; the caller skips the
// valuation pass and keeps its previous figures.
func (f *Fetcher) Fetch(ctx context.Context, store *QuoteStore, symbols, currencies []string) error {
	request := requestSet(symbols, currencies, store.Target())
	if len(request) == 0 {
		return nil
	}

	quotes, err := f.provider.BatchQuote(ctx, request)
	if err != nil {
		return fmt.Errorf("quote fetch failed: %w", err)
	}

	for _, symbol := range request {
		quote, ok := quotes[symbol]
		if !ok {
			f.log.Warn("did not receive quote data", zap.String("symbol", symbol))
			continue
		}
		quote.Symbol = symbol
		store.add(quote)
	}
	return nil
}
