package sharetrack

import (
	"fmt"
	"sort"

	"github.com/muljin/sharetrack/date"
	"github.com/shopspring/decimal"
)

// TaxPolicy encodes the jurisdiction-specific parts of a disposal: how a
// lot's aggregate fees are split across partial sales, and when a capital
// gain qualifies for the CGT discount. It is an interface so the tax rules
// can be swapped without touching the valuation pipeline.
type TaxPolicy interface {
	// Apportion returns the fraction of a fee attributable to the sold
	// quantity.
	Apportion(fee Money, fraction decimal.Decimal) Money
	// DiscountEligible reports whether a gain realized on the disposal date
	// qualifies for the CGT discount.
	DiscountEligible(acquired, disposed date.Date, gain Money) bool
}

// AustralianTaxPolicy applies straight proportional fee apportionment and
// the Australian 50% CGT discount rule: eligible when the asset was held at
// least 12 months and the disposal realized a gain. A loss is never
// discount-eligible, and fees are not part of the assessable gain.
type AustralianTaxPolicy struct{}

func (AustralianTaxPolicy) Apportion(fee Money, fraction decimal.Decimal) Money {
	return fee.MulFraction(fraction)
}

func (AustralianTaxPolicy) DiscountEligible(acquired, disposed date.Date, gain Money) bool {
	return !disposed.Before(acquired.AddMonths(12)) && gain.IsPositive()
}

// Disposal describes one sale to record against a company's open lots.
type Disposal struct {
	Quantity  Quantity
	UnitPrice Money
	Brokerage Money // sell-side brokerage for the whole sale
	Gst       Money // sell-side GST for the whole sale
	Date      date.Date
}

// Accountant records disposals against open lots and computes cost bases.
type Accountant struct {
	policy TaxPolicy
}

// NewAccountant returns an accountant using the given tax policy, or the
// Australian one when nil.
func NewAccountant(policy TaxPolicy) *Accountant {
	if policy == nil {
		policy = AustralianTaxPolicy{}
	}
	return &Accountant{policy: policy}
}

// lotMutation is one planned reduction of an open lot. Mutations are
// computed for the whole sale before any lot is touched, so a rejected
// disposal leaves the ledger untouched.
type lotMutation struct {
	lot       *CurrentShareEntry
	quantity  Quantity
	brokerage Money
	gst       Money
}

// Sell records a disposal against the open lots, consuming them
// earliest-acquisition-first (FIFO). One sale may span several lots; it
// emits one SellHistoryEntry per lot consumed and reduces each consumed
// lot's quantity and remaining fees by the apportioned amounts.
//
// The disposal either fully applies or fails without mutating any lot:
// InsufficientQuantityError when the sale exceeds the total open quantity,
// InvalidDisposalError for a non-positive quantity or a sale dated before a
// lot it would consume.
func (a *Accountant) Sell(lots []*CurrentShareEntry, d Disposal) ([]SellHistoryEntry, error) {
	if !d.Quantity.IsPositive() {
		return nil, &InvalidDisposalError{Reason: fmt.Sprintf("sale quantity %s is not positive", d.Quantity)}
	}

	open := make([]*CurrentShareEntry, 0, len(lots))
	var held Quantity
	for _, lot := range lots {
		if lot.Quantity.IsPositive() {
			open = append(open, lot)
			held = held.Add(lot.Quantity)
		}
	}
	if d.Quantity.GreaterThan(held) {
		return nil, &InsufficientQuantityError{Requested: d.Quantity, Held: held}
	}

	// FIFO: earliest acquisition first.
	sort.SliceStable(open, func(i, j int) bool { return open[i].Date.Before(open[j].Date) })

	var (
		entries   []SellHistoryEntry
		mutations []lotMutation
		remaining = d.Quantity
	)
	for _, lot := range open {
		if remaining.IsZero() {
			break
		}
		if d.Date.Before(lot.Date) {
			return nil, &InvalidDisposalError{
				Reason: fmt.Sprintf("sale date %s is before lot acquisition date %s", d.Date, lot.Date),
			}
		}

		consumed := remaining
		if lot.Quantity.LessThan(consumed) {
			consumed = lot.Quantity
		}

		// Fraction of this lot consumed, and fraction of the whole sale this
		// lot represents. The buy-side fees split by the former, the sale's
		// own fees by the latter.
		buyFraction := consumed.Fraction(lot.Quantity)
		sellFraction := consumed.Fraction(d.Quantity)

		appliedBuyBrokerage := a.policy.Apportion(lot.Brokerage, buyFraction)
		appliedBuyGst := a.policy.Apportion(lot.Gst, buyFraction)
		appliedSellBrokerage := a.policy.Apportion(d.Brokerage, sellFraction)
		appliedSellGst := a.policy.Apportion(d.Gst, sellFraction)

		total := d.UnitPrice.Mul(consumed).Sub(appliedSellBrokerage).Sub(appliedSellGst)
		cost := lot.UnitPrice.Mul(consumed).Add(appliedBuyBrokerage).Add(appliedBuyGst)
		profitOrLoss := total.Sub(cost)
		capitalGainOrLoss := d.UnitPrice.Sub(lot.UnitPrice).Mul(consumed)

		entries = append(entries, SellHistoryEntry{
			AccountID:            lot.AccountID,
			BuyDate:              lot.Date,
			SellDate:             d.Date,
			Quantity:             consumed,
			BuyPrice:             lot.UnitPrice,
			SellPrice:            d.UnitPrice,
			AppliedBuyBrokerage:  appliedBuyBrokerage,
			AppliedSellBrokerage: appliedSellBrokerage,
			AppliedBuyGst:        appliedBuyGst,
			AppliedSellGst:       appliedSellGst,
			Total:                total,
			ProfitOrLoss:         profitOrLoss,
			CapitalGainOrLoss:    capitalGainOrLoss,
			CgtDiscount:          a.policy.DiscountEligible(lot.Date, d.Date, capitalGainOrLoss),
		})
		mutations = append(mutations, lotMutation{
			lot:       lot,
			quantity:  consumed,
			brokerage: appliedBuyBrokerage,
			gst:       appliedBuyGst,
		})
		remaining = remaining.Sub(consumed)
	}

	// The whole sale validated; apply the reductions. A lot reduced to zero
	// is logically closed, its history survives in the emitted entries.
	for _, m := range mutations {
		m.lot.Quantity = m.lot.Quantity.Sub(m.quantity)
		m.lot.Brokerage = m.lot.Brokerage.Sub(m.brokerage)
		m.lot.Gst = m.lot.Gst.Sub(m.gst)
	}
	return entries, nil
}

// CostBasis summarizes the open lots of one company.
type CostBasis struct {
	Units         Quantity
	TotalCost     Money // units at purchase price plus remaining fees
	AvgPrice      Money // quantity-weighted average unit price, fee-exclusive
	FirstPurchase date.Date
	LastPurchase  date.Date
}

// ComputeCostBasis aggregates the open lots into total units, total purchase
// cost and the weighted-average unit price. Closed lots are ignored. It
// fails with ErrNoOpenLots when nothing is held; callers usually map that to
// a zero holding.
func ComputeCostBasis(lots []*CurrentShareEntry) (CostBasis, error) {
	var cb CostBasis
	var shareValue Money
	for _, lot := range lots {
		if !lot.Quantity.IsPositive() {
			continue
		}
		value := lot.UnitPrice.Mul(lot.Quantity)
		shareValue = shareValue.Add(value)
		cb.Units = cb.Units.Add(lot.Quantity)
		cb.TotalCost = cb.TotalCost.Add(value).Add(lot.Brokerage).Add(lot.Gst)
		if cb.FirstPurchase.IsZero() || lot.Date.Before(cb.FirstPurchase) {
			cb.FirstPurchase = lot.Date
		}
		if cb.LastPurchase.IsZero() || lot.Date.After(cb.LastPurchase) {
			cb.LastPurchase = lot.Date
		}
	}
	if cb.Units.IsZero() {
		return CostBasis{}, ErrNoOpenLots
	}
	cb.AvgPrice = shareValue.Div(cb.Units)
	return cb, nil
}
