// Package sharetrack implements a share-portfolio valuation engine: it
// reconciles external market quotes across currencies and derives portfolio
// figures (market value, weighted-average cost, daily and total
// profit-or-loss, capital gains with CGT-discount treatment) from per-company
// buy/sell trade ledgers.
//
// A valuation pass is one batched quote fetch into a request-scoped
// QuoteStore, followed by pure computation: the Accountant handles lot
// consumption and fee apportionment, the Valuator aggregates companies into
// table rows, summary text and graph series. All monetary arithmetic is
// decimal-backed so repeated partial-sale apportionment never drifts.
package sharetrack
