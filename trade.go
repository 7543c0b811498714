package sharetrack

import (
	"github.com/muljin/sharetrack/date"
	"github.com/shopspring/decimal"
)

// Purchase describes one buy to execute.
type Purchase struct {
	AccountID string
	Date      date.Date
	Quantity  Quantity
	UnitPrice Money
	Brokerage Money
}

// CostBreakdown is the priced-out composition of a purchase.
type CostBreakdown struct {
	ShareValue Money
	Brokerage  Money
	Gst        Money
	Total      Money
}

// BreakdownCost prices a purchase: share value is quantity at unit price,
// GST is the configured percentage of the brokerage, and the total is the
// sum of all three.
func BreakdownCost(quantity Quantity, unitPrice, brokerage Money, gstPercent Money) CostBreakdown {
	shareValue := unitPrice.Mul(quantity)
	gst := brokerage.MulFraction(gstPercent.Decimal().Div(decimal.NewFromInt(100)))
	return CostBreakdown{
		ShareValue: shareValue,
		Brokerage:  brokerage,
		Gst:        gst,
		Total:      shareValue.Add(brokerage).Add(gst),
	}
}

// ExecuteBuy appends a new open lot and its immutable purchase record to the
// company.
func (c *Company) ExecuteBuy(p Purchase, gstPercent Money) CostBreakdown {
	breakdown := BreakdownCost(p.Quantity, p.UnitPrice, p.Brokerage, gstPercent)
	c.CurrentShares = append(c.CurrentShares, &CurrentShareEntry{
		AccountID: p.AccountID,
		Date:      p.Date,
		Quantity:  p.Quantity,
		UnitPrice: p.UnitPrice,
		Brokerage: breakdown.Brokerage,
		Gst:       breakdown.Gst,
	})
	c.BuyHistory = append(c.BuyHistory, BuyHistoryEntry{
		AccountID: p.AccountID,
		Date:      p.Date,
		Quantity:  p.Quantity,
		UnitPrice: p.UnitPrice,
		Brokerage: breakdown.Brokerage,
		Gst:       breakdown.Gst,
		Total:     breakdown.Total,
	})
	return breakdown
}

// ExecuteSell records a disposal against the company's open lots using the
// accountant, and appends the emitted entries to the sell history. On error
// the company is untouched.
func (c *Company) ExecuteSell(a *Accountant, d Disposal) ([]SellHistoryEntry, error) {
	entries, err := a.Sell(c.CurrentShares, d)
	if err != nil {
		return nil, err
	}
	c.SellHistory = append(c.SellHistory, entries...)
	return entries, nil
}
