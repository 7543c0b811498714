package sharetrack

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Quote is a provider-supplied market snapshot for one symbol. Price and
// PreviousClose are pointers so a partially filled quote can be detected and
// reported field by field. Quotes are transient: they live in a QuoteStore
// for the duration of one valuation pass and are never persisted.
type Quote struct {
	Symbol        string
	Price         *decimal.Decimal
	PreviousClose *decimal.Decimal
	Currency      string
	Exchange      string
}

// missingFields lists the required fields absent from the quote, in a stable
// order.
func (q Quote) missingFields() []string {
	var missing []string
	if q.Price == nil {
		missing = append(missing, "price")
	}
	if q.PreviousClose == nil {
		missing = append(missing, "previousClose")
	}
	if q.Currency == "" {
		missing = append(missing, "currency")
	}
	return missing
}

// ConversionFactor carries the exchange rates needed to express a native
// quote in the reporting currency. Today's rate and the previous close's
// rate are kept separate so the two conversions stay independently correct;
// callers apply them explicitly with Money.Convert.
type ConversionFactor struct {
	Rate         decimal.Decimal
	PreviousRate decimal.Decimal
}

// identityFactor is the conversion for a quote already in the target currency.
func identityFactor() ConversionFactor {
	one := decimal.NewFromInt(1)
	return ConversionFactor{Rate: one, PreviousRate: one}
}

// ResolvedQuote is the outcome of resolving a symbol against a target
// currency: the native prices plus the factor to convert them.
type ResolvedQuote struct {
	Price         Money // in the quote's native currency
	PreviousClose Money // in the quote's native currency
	Factor        ConversionFactor
}

// PairSymbol is the synthetic symbol under which the provider quotes a
// currency conversion, e.g. "USDAUD=X". Never requested for from == to.
func PairSymbol(from, to string) string { return from + to + "=X" }

// QuoteStore holds the quotes fetched for one valuation pass, keyed by
// symbol. A store is exclusively owned by the pass that built it: it is
// created fresh, populated once by a Fetcher, read by resolution, and
// discarded. It is never shared across passes, so it needs no locking.
type QuoteStore struct {
	target string
	quotes map[string]Quote
}

// NewQuoteStore returns an empty store resolving into the target (reporting)
// currency.
func NewQuoteStore(target string) *QuoteStore {
	return &QuoteStore{
		target: target,
		quotes: make(map[string]Quote),
	}
}

// Target returns the store's reporting currency.
func (s *QuoteStore) Target() string { return s.target }

// Has reports whether a quote is held for the symbol.
func (s *QuoteStore) Has(symbol string) bool {
	_, ok := s.quotes[symbol]
	return ok
}

// add records a quote under its symbol.
func (s *QuoteStore) add(q Quote) { s.quotes[q.Symbol] = q }

// Symbols returns the stored symbols in sorted order.
func (s *QuoteStore) Symbols() []string {
	symbols := make([]string, 0, len(s.quotes))
	for sym := range s.quotes {
		symbols = append(symbols, sym)
	}
	sort.Strings(symbols)
	return symbols
}

// Resolve returns the symbol's native quote together with the conversion
// factor into the store's target currency.
//
// It fails with ErrQuoteNotFound if the symbol is absent, with an
// IncompleteQuoteError naming the missing fields if the quote is partial,
// and with ErrExchangeRateNotFound if the quote is in a foreign currency
// whose conversion pair was not fetched.
func (s *QuoteStore) Resolve(symbol string) (ResolvedQuote, error) {
	quote, ok := s.quotes[symbol]
	if !ok {
		return ResolvedQuote{}, ErrQuoteNotFound
	}
	if missing := quote.missingFields(); len(missing) > 0 {
		return ResolvedQuote{}, &IncompleteQuoteError{Symbol: symbol, Missing: missing}
	}

	resolved := ResolvedQuote{
		Price:         M(*quote.Price, quote.Currency),
		PreviousClose: M(*quote.PreviousClose, quote.Currency),
		Factor:        identityFactor(),
	}
	if quote.Currency == s.target {
		return resolved, nil
	}

	pair := PairSymbol(quote.Currency, s.target)
	exchange, ok := s.quotes[pair]
	if !ok {
		return ResolvedQuote{}, ErrExchangeRateNotFound
	}
	var missing []string
	if exchange.Price == nil {
		missing = append(missing, "price")
	}
	if exchange.PreviousClose == nil {
		missing = append(missing, "previousClose")
	}
	if len(missing) > 0 {
		return ResolvedQuote{}, &IncompleteQuoteError{Symbol: pair, Missing: missing}
	}

	resolved.Factor = ConversionFactor{Rate: *exchange.Price, PreviousRate: *exchange.PreviousClose}
	return resolved, nil
}
