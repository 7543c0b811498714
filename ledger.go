package sharetrack

import (
	"github.com/muljin/sharetrack/date"
)

// CurrentShareEntry is one open lot: a batch of shares acquired together and
// tracked separately for cost-basis purposes. Quantity, Brokerage and Gst
// shrink monotonically as partial sales consume the lot; the remainders stay
// with the unsold portion.
type CurrentShareEntry struct {
	AccountID string    `json:"accountId"`
	Date      date.Date `json:"date"`
	Quantity  Quantity  `json:"quantity"`
	UnitPrice Money     `json:"unitPrice"`
	Brokerage Money     `json:"brokerage"` // remaining brokerage for the trade
	Gst       Money     `json:"gst"`       // remaining GST for the trade
}

// BuyHistoryEntry is the immutable record of a purchase.
type BuyHistoryEntry struct {
	AccountID string    `json:"accountId"`
	Date      date.Date `json:"date"`
	Quantity  Quantity  `json:"quantity"`
	UnitPrice Money     `json:"unitPrice"`
	Brokerage Money     `json:"brokerage"`
	Gst       Money     `json:"gst"`
	Total     Money     `json:"total"`
}

// SellHistoryEntry is the immutable record of a disposal matched against a
// single buy lot. Applied fees are the fraction of the original fees
// attributable to the quantity sold.
type SellHistoryEntry struct {
	AccountID            string    `json:"accountId"`
	BuyDate              date.Date `json:"buyDate"`
	SellDate             date.Date `json:"sellDate"`
	Quantity             Quantity  `json:"quantity"`
	BuyPrice             Money     `json:"buyPrice"`
	SellPrice            Money     `json:"sellPrice"`
	AppliedBuyBrokerage  Money     `json:"appliedBuyBrokerage"`
	AppliedSellBrokerage Money     `json:"appliedSellBrokerage"`
	AppliedBuyGst        Money     `json:"appliedBuyGst"`
	AppliedSellGst       Money     `json:"appliedSellGst"`
	Total                Money     `json:"total"`             // proceeds net of sell-side fees
	ProfitOrLoss         Money     `json:"profitOrLoss"`      // proceeds minus apportioned costs
	CapitalGainOrLoss    Money     `json:"capitalGainOrLoss"` // price appreciation only, fee-exclusive
	CgtDiscount          bool      `json:"cgtDiscount"`
}
