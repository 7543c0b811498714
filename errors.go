package sharetrack

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the quote and ledger operations. Callers match them
// with errors.Is, or errors.As for the structured ones.
var (
	// ErrQuoteNotFound is returned when a symbol is absent from the quote store.
	ErrQuoteNotFound = errors.New("quote not found")

	// ErrExchangeRateNotFound is returned when a quote's native currency needs
	// converting but the exchange-rate quote is absent from the store.
	ErrExchangeRateNotFound = errors.New("exchange rate quote not found")

	// ErrNoOpenLots is returned by cost-basis computation over an empty lot
	// set. Callers generally treat it as a zero holding rather than a failure.
	ErrNoOpenLots = errors.New("no open lots")
)

// IncompleteQuoteError reports a quote that resolved but is missing one or
// more required fields.
type IncompleteQuoteError struct {
	Symbol  string
	Missing []string
}

func (e *IncompleteQuoteError) Error() string {
	return fmt.Sprintf("quote %s is missing the following fields: %s", e.Symbol, strings.Join(e.Missing, ", "))
}

// InsufficientQuantityError reports a disposal for more units than are held
// across all open lots.
type InsufficientQuantityError struct {
	Requested Quantity
	Held      Quantity
}

func (e *InsufficientQuantityError) Error() string {
	return fmt.Sprintf("insufficient quantity: requested %s, holding %s", e.Requested, e.Held)
}

// InvalidDisposalError reports a disposal that is rejected outright, e.g. a
// non-positive quantity or a sale dated before the lot it would consume.
type InvalidDisposalError struct {
	Reason string
}

func (e *InvalidDisposalError) Error() string {
	return "invalid disposal: " + e.Reason
}
