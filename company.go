package sharetrack

import (
	"strings"

	"github.com/muljin/sharetrack/date"
)

// Option is a user-defined descriptive label attached to a company.
type Option struct {
	Label string `json:"label"`
}

// Note is a free-form dated note attached to a company.
type Note struct {
	Title       string `json:"title"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

// DateNotification reminds the user about a company on a given date.
type DateNotification struct {
	Title string `json:"title"`
	Date  string `json:"date"`
}

// PriceNotification alerts when the share price leaves a band.
type PriceNotification struct {
	Title     string `json:"title"`
	HighPrice Money  `json:"highPrice"`
	LowPrice  Money  `json:"lowPrice"`
}

// Account is a brokerage or holding account owning share lots.
type Account struct {
	Name      string `json:"name"`
	AccountID string `json:"accountId"`
	Created   string `json:"created"`
}

// Settings holds the user preferences that feed trade execution.
type Settings struct {
	UnitPriceAutoFill bool  `json:"unitPriceAutoFill"`
	GstPercent        Money `json:"gstPercent"`
	BrokerageAutoFill Money `json:"brokerageAutoFill"`
}

// Company is one tracked listing. Its financial state is fully determined by
// CurrentShares, BuyHistory and SellHistory; every other field is
// descriptive. The valuation engine reads companies and emits new sell
// entries, it never deletes ledger records.
type Company struct {
	AsxCode            string               `json:"asxcode"`
	Name               string               `json:"name"`
	Currency           string               `json:"currency"` // listing currency, e.g. "AUD"
	FinancialStatus    []Option             `json:"financialStatus"`
	MiningStatus       []Option             `json:"miningStatus"`
	Resources          []Option             `json:"resources"`
	Products           []Option             `json:"products"`
	Recommendations    []Option             `json:"recommendations"`
	Monitor            []Option             `json:"monitor"`
	ReasonsToBuy       string               `json:"reasonsToBuy"`
	ReasonsNotToBuy    string               `json:"reasonsNotToBuy"`
	Positives          string               `json:"positives"`
	Negatives          string               `json:"negatives"`
	Notes              []Note               `json:"notes"`
	DateNotifications  []DateNotification   `json:"dateNotifications"`
	PriceNotifications []PriceNotification  `json:"priceNotifications"`
	CurrentShares      []*CurrentShareEntry `json:"currentShares"`
	BuyHistory         []BuyHistoryEntry    `json:"buyHistory"`
	SellHistory        []SellHistoryEntry   `json:"sellHistory"`
}

// Symbol returns the provider symbol for the company. Codes without an
// explicit exchange suffix are ASX listings.
func (c *Company) Symbol() string {
	if strings.Contains(c.AsxCode, ".") {
		return c.AsxCode
	}
	return c.AsxCode + ".AX"
}

// OpenLots returns the lots still holding units. A lot with quantity zero is
// logically closed and excluded from valuation.
func (c *Company) OpenLots() []*CurrentShareEntry {
	var open []*CurrentShareEntry
	for _, lot := range c.CurrentShares {
		if lot.Quantity.IsPositive() {
			open = append(open, lot)
		}
	}
	return open
}

// UnitsHeldOn replays the buy and sell history to find the number of units
// held at the end of the given day.
func (c *Company) UnitsHeldOn(on date.Date) Quantity {
	var units Quantity
	for _, buy := range c.BuyHistory {
		if !buy.Date.After(on) {
			units = units.Add(buy.Quantity)
		}
	}
	for _, sell := range c.SellHistory {
		if !sell.SellDate.After(on) {
			units = units.Sub(sell.Quantity)
		}
	}
	return units
}
