package model

import "time"

// Investment event types. Bonus and Split both record a zero-cost unit
// increase; Dividend records cash received (see InvestmentEvent.UnitPrice).
const (
	EventBuy      = "Buy"
	EventSell     = "Sell"
	EventDividend = "Dividend"
	EventBonus    = "Bonus"
	EventSplit    = "Split"
)

// Currencies an investment event can be denominated in. Valuation converts
// foreign-currency amounts to the domestic currency using the forex rates.
const (
	CurrencyDomestic = "MYR"
	CurrencyForeign  = "USD"
)

// Markets recognised by the balance-sheet breakdown.
const (
	MarketUS     = "US"
	MarketMY     = "MY"
	MarketCrypto = "Crypto"
	MarketMMF    = "MMF"
)

// InvestmentEvent is a single recorded trade, dividend, or corporate action.
// Events are immutable once created; replay order is (date, creation order).
//
// For Dividend events UnitPrice holds the TOTAL cash received, not a
// per-share amount. This overload is load-bearing: position replay adds
// UnitPrice directly to the dividend total.
type InvestmentEvent struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"ownerId"`
	Date      time.Time `json:"date"`
	Type      string    `json:"type"`
	Symbol    string    `json:"symbol"`
	Market    string    `json:"market"`
	Brokerage string    `json:"brokerage,omitempty"`
	Quantity  float64   `json:"quantity"`
	UnitPrice float64   `json:"unitPrice"`
	Fees      float64   `json:"fees"`
	Currency  string    `json:"currency"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// HoldingKey identifies one aggregated position. Brokerage is empty when
// positions are grouped across brokerages (the overview view).
type HoldingKey struct {
	Symbol    string
	Brokerage string
}

// Position is the running state of one holding, derived by replaying all of
// its investment events. It is never persisted.
type Position struct {
	Market   string
	Currency string

	Quantity       float64
	CostBasis      float64
	RealizedPnL    float64
	TotalDividends float64

	TotalBought  float64
	TotalSold    float64
	BuyCost      float64
	SellProceeds float64
	AvgBuyPrice  float64
	AvgSellPrice float64

	FirstBuyDate time.Time // zero when the position has no Buy event
	LastSellDate time.Time // zero when the position has no Sell event
}

// HoldingMetrics is a position valued in a display currency, ready for
// presentation. All monetary fields are in Currency.
type HoldingMetrics struct {
	Symbol    string  `json:"symbol"`
	Brokerage string  `json:"brokerage,omitempty"`
	Market    string  `json:"market"`
	Currency  string  `json:"currency"`
	Status    string  `json:"status"`
	Quantity  float64 `json:"quantity"`

	CurrentPrice float64 `json:"currentPrice"`
	Cost         float64 `json:"cost"`
	MarketValue  float64 `json:"marketValue"`
	Dividends    float64 `json:"dividends"`
	RealizedPnL  float64 `json:"realizedPnl"`

	TotalBought  float64 `json:"totalBought"`
	TotalSold    float64 `json:"totalSold"`
	AvgBuyPrice  float64 `json:"avgBuyPrice"`
	AvgSellPrice float64 `json:"avgSellPrice"`

	YieldOnCost      float64 `json:"yieldOnCost"`
	UnrealizedPnL    float64 `json:"unrealizedPnl"`
	PnLValue         float64 `json:"pnlValue"`
	PnLPercent       float64 `json:"pnlPercent"`
	AnnualizedReturn float64 `json:"annualizedReturn"`

	FirstBuyDate *time.Time `json:"firstBuyDate,omitempty"`
	LastSellDate *time.Time `json:"lastSellDate,omitempty"`
}

// Holding statuses used by the overview.
const (
	StatusHolding = "Holding"
	StatusSold    = "Sold"
)
