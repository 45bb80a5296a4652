package model

import "time"

// PortfolioSnapshot is one daily record of an owner's invested capital and
// portfolio market value, both in the domestic currency. Snapshots back the
// value-over-time chart and are written once per day by the snapshot job.
type PortfolioSnapshot struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"ownerId"`
	Date        time.Time `json:"date"`
	Invested    float64   `json:"invested"`
	MarketValue float64   `json:"marketValue"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
}
