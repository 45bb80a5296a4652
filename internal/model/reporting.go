package model

// BalanceSheetEntry is one line of the balance sheet. IsAuto marks lines
// derived from other subsystems (portfolio value, mortgage balances,
// unallocated cash) rather than manual accounts.
type BalanceSheetEntry struct {
	ID             string  `json:"id,omitempty"`
	Name           string  `json:"name"`
	Value          float64 `json:"value"`
	IsAuto         bool    `json:"isAuto"`
	AssetType      string  `json:"assetType,omitempty"`
	LiquidityTier  string  `json:"liquidityTier,omitempty"`
	ObligationType string  `json:"obligationType,omitempty"`
	Link           string  `json:"link,omitempty"`
}

// EntryGroup is a list of balance-sheet entries subtotalled under one key
// (asset type or obligation type).
type EntryGroup struct {
	Items []BalanceSheetEntry `json:"items"`
	Total float64             `json:"total"`
}

// PortfolioAsset summarises the investment portfolio as a balance-sheet
// asset, with a per-market breakdown.
type PortfolioAsset struct {
	Total     float64             `json:"total"`
	Breakdown []BalanceSheetEntry `json:"breakdown"`
}

// BalanceSheet is the point-in-time statement of financial position for one
// owner. All values are in the domestic currency.
type BalanceSheet struct {
	CurrentAssets         map[string]EntryGroup `json:"currentAssets"`
	InvestmentPortfolio   PortfolioAsset        `json:"investmentPortfolio"`
	NonCurrentAssets      []BalanceSheetEntry   `json:"nonCurrentAssets"`
	CurrentLiabilities    []BalanceSheetEntry   `json:"currentLiabilities"`
	NonCurrentLiabilities []BalanceSheetEntry   `json:"nonCurrentLiabilities"`

	TotalCurrentAssets         float64 `json:"totalCurrentAssets"`
	TotalNonCurrentAssets      float64 `json:"totalNonCurrentAssets"`
	TotalAssets                float64 `json:"totalAssets"`
	TotalCurrentLiabilities    float64 `json:"totalCurrentLiabilities"`
	TotalNonCurrentLiabilities float64 `json:"totalNonCurrentLiabilities"`
	TotalLiabilities           float64 `json:"totalLiabilities"`
	NetWorth                   float64 `json:"netWorth"`
}

// CashFlowSummary is the short-term liquidity view: current assets grouped
// by type, current liabilities grouped by obligation type, and the derived
// availability figures.
type CashFlowSummary struct {
	CashGroups       map[string]EntryGroup `json:"cashGroups"`
	ObligationGroups map[string]EntryGroup `json:"obligationGroups"`

	TotalCash        float64 `json:"totalCash"`
	TotalAR          float64 `json:"totalAr"`
	TotalObligations float64 `json:"totalObligations"`

	HeldOnBehalf        float64 `json:"heldOnBehalf"`
	OnHold              float64 `json:"onHold"`
	StandardObligations float64 `json:"standardObligations"`

	AvailableCash float64 `json:"availableCash"`
	ExpectedCash  float64 `json:"expectedCash"`
}

// PortfolioOverview is the aggregate performance view across positions.
// Summary totals are computed in the domestic currency and then converted
// to the requested display currency; per-item metrics are converted
// individually.
type PortfolioOverview struct {
	TotalInvested    float64 `json:"totalInvested"`
	TotalMarketValue float64 `json:"totalMarketValue"`
	TotalDividends   float64 `json:"totalDividends"`
	TotalRealizedPnL float64 `json:"totalRealizedPnl"`
	TotalPnL         float64 `json:"totalPnl"`
	TotalPnLPercent  float64 `json:"totalPnlPercent"`
	DisplayCurrency  string  `json:"displayCurrency"`
	HoldingsCount    int     `json:"holdingsCount"`
	SoldCount        int     `json:"soldCount"`

	MarketAllocation   map[string]float64 `json:"marketAllocation"`
	CurrencyAllocation map[string]float64 `json:"currencyAllocation"`

	Items []HoldingMetrics `json:"items"`
}

// HoldingsView is the per-brokerage holdings page data: open positions in
// the requested display currency plus invested-capital and rate context.
type HoldingsView struct {
	Holdings      []HoldingMetrics `json:"holdings"`
	TotalInvested float64          `json:"totalInvested"`
	TotalCurrency string           `json:"totalCurrency"`
	AverageRate   float64          `json:"averageRate"`
	CurrentRate   float64          `json:"currentRate"`
	ViewCurrency  string           `json:"viewCurrency"`
}
