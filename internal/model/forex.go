package model

import "time"

// ForexObservation is one recorded currency exchange. The average historical
// rate for an owner is the ratio of the summed domestic and foreign amounts
// over all of their observations.
type ForexObservation struct {
	ID             string    `json:"id"`
	OwnerID        string    `json:"ownerId"`
	Date           time.Time `json:"date"`
	DomesticAmount float64   `json:"domesticAmount"`
	Rate           float64   `json:"rate"`
	ForeignAmount  float64   `json:"foreignAmount"`
	CreatedAt      time.Time `json:"createdAt,omitempty"`
}

// StockPrice is the manually maintained current price for a symbol.
// The USDMYR row doubles as the spot-rate override for valuation.
type StockPrice struct {
	Symbol      string    `json:"symbol"`
	Price       float64   `json:"price"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// ForexRates bundles the two rates valuation runs on: the average historical
// rate (cost side) and the current spot rate (market-value side).
type ForexRates struct {
	AverageRate float64 `json:"averageRate"`
	CurrentRate float64 `json:"currentRate"`
}
