package service

import (
	"math"
	"time"

	"github.com/amhaziq/Net-Worth-Tracker-Backend/internal/model"
)

// Display currency views.
const (
	ViewDomestic = "MYR"
	ViewForeign  = "USD"
	ViewOriginal = "Original"
)

// ValueHolding converts a position into display metrics in the requested
// view currency.
//
// The two rates are applied asymmetrically on purpose: cost, dividends and
// realized P&L convert at the average historical rate (what the capital
// actually cost when deployed), while market value converts at the current
// spot rate (what the holding is worth today). The foreign view converts
// domestic amounts at 1/avgRate, treated as 1.0 when avgRate is zero.
func ValueHolding(key model.HoldingKey, pos *model.Position, currentPrice, avgRate, spotRate float64, viewCurrency string, asOf time.Time) model.HoldingMetrics {
	cost := pos.CostBasis
	marketValue := pos.Quantity * currentPrice
	dividends := pos.TotalDividends
	realized := pos.RealizedPnL
	price := currentPrice
	avgBuy := pos.AvgBuyPrice
	avgSell := pos.AvgSellPrice
	currency := pos.Currency

	if pos.Currency == model.CurrencyForeign {
		// Domestic-currency baseline.
		cost *= avgRate
		dividends *= avgRate
		realized *= avgRate
		marketValue *= spotRate
		price *= spotRate
		avgBuy *= avgRate
		avgSell *= avgRate
		currency = model.CurrencyDomestic
	}

	switch viewCurrency {
	case ViewForeign:
		if pos.Currency == model.CurrencyForeign {
			cost = pos.CostBasis
			dividends = pos.TotalDividends
			realized = pos.RealizedPnL
			marketValue = pos.Quantity * currentPrice
			price = currentPrice
			avgBuy = pos.AvgBuyPrice
			avgSell = pos.AvgSellPrice
		} else {
			usdRate := 1.0
			if avgRate != 0 {
				usdRate = 1 / avgRate
			}
			cost *= usdRate
			dividends *= usdRate
			realized *= usdRate
			marketValue *= usdRate
			price *= usdRate
			avgBuy *= usdRate
			avgSell *= usdRate
		}
		currency = model.CurrencyForeign

	case ViewOriginal:
		cost = pos.CostBasis
		dividends = pos.TotalDividends
		realized = pos.RealizedPnL
		marketValue = pos.Quantity * currentPrice
		price = currentPrice
		avgBuy = pos.AvgBuyPrice
		avgSell = pos.AvgSellPrice
		currency = pos.Currency
	}

	status := model.StatusSold
	if pos.Quantity > 0 {
		status = model.StatusHolding
	}

	unrealized := marketValue - cost
	pnlValue := marketValue - cost + realized

	m := model.HoldingMetrics{
		Symbol:    key.Symbol,
		Brokerage: key.Brokerage,
		Market:    pos.Market,
		Currency:  currency,
		Status:    status,
		Quantity:  pos.Quantity,

		CurrentPrice: price,
		Cost:         round(cost),
		MarketValue:  round(marketValue),
		Dividends:    round(dividends),
		RealizedPnL:  round(realized),

		TotalBought:  pos.TotalBought,
		TotalSold:    pos.TotalSold,
		AvgBuyPrice:  round(avgBuy),
		AvgSellPrice: round(avgSell),

		YieldOnCost:      round(pctOf(dividends, cost)),
		UnrealizedPnL:    round(unrealized),
		PnLValue:         round(pnlValue),
		PnLPercent:       round(pctOf(pnlValue, cost)),
		AnnualizedReturn: round(annualizedReturn(marketValue, dividends, cost, pos.FirstBuyDate, asOf)),
	}

	if !pos.FirstBuyDate.IsZero() {
		d := pos.FirstBuyDate
		m.FirstBuyDate = &d
	}
	if !pos.LastSellDate.IsZero() {
		d := pos.LastSellDate
		m.LastSellDate = &d
	}

	return m
}

// annualizedReturn is the compound annual growth rate of market value plus
// dividends over cost, in percent. It requires positive cost and at least a
// day of holding; a negative base raised to a fractional power comes out as
// NaN and is mapped to 0 rather than surfaced.
func annualizedReturn(marketValue, dividends, cost float64, firstBuy, asOf time.Time) float64 {
	if cost <= 0 || firstBuy.IsZero() {
		return 0
	}
	days := asOf.Sub(firstBuy).Hours() / 24
	if days <= 0 {
		return 0
	}
	cagr := math.Pow((marketValue+dividends)/cost, 365/days) - 1
	return sanitize(cagr) * 100
}
