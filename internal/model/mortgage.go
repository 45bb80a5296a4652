package model

import "time"

// Mortgage event types.
const (
	MortgageEventPayment    = "PAYMENT"
	MortgageEventRateChange = "RATE_CHANGE"
)

// Schedule row classifications. History rows are driven by recorded events;
// Projected rows are computed by standard fixed-payment amortization.
const (
	PeriodHistory   = "History"
	PeriodProjected = "Projected"
)

// Mortgage is an amortizing loan, optionally covered by a decreasing-term
// insurance (MRTA) schedule running in parallel.
type Mortgage struct {
	ID                 string    `json:"id"`
	OwnerID            string    `json:"ownerId"`
	Name               string    `json:"name"`
	StartDate          time.Time `json:"startDate"`
	OriginalPrincipal  float64   `json:"originalPrincipal"`
	TermYears          int       `json:"termYears"`
	HasMRTA            bool      `json:"hasMrta"`
	MRTAOriginalAmount float64   `json:"mrtaOriginalAmount,omitempty"`
	MRTARate           float64   `json:"mrtaRate,omitempty"`
	CreatedAt          time.Time `json:"createdAt,omitempty"`
}

// MortgageEvent is one recorded rate change or payment. BalanceAfter is
// computed once when a payment is recorded and is immutable afterwards; it
// is nil for rate changes.
type MortgageEvent struct {
	ID           string    `json:"id"`
	MortgageID   string    `json:"mortgageId"`
	Date         time.Time `json:"date"`
	Type         string    `json:"type"`
	Value        float64   `json:"value"`
	BalanceAfter *float64  `json:"balanceAfter,omitempty"`
	CreatedAt    time.Time `json:"createdAt,omitempty"`
}

// ScheduleRow is one monthly period of the amortization schedule.
type ScheduleRow struct {
	Period        int       `json:"period"`
	Date          time.Time `json:"date"`
	Type          string    `json:"type"`
	Rate          float64   `json:"rate"`
	Payment       float64   `json:"payment"`
	InterestPaid  float64   `json:"interestPaid"`
	PrincipalPaid float64   `json:"principalPaid"`
	Balance       float64   `json:"balance"`
	MRTACoverage  float64   `json:"mrtaCoverage"`
	NetExposure   float64   `json:"netExposure"`
}

// MortgageDetail is the full state of one mortgage: current snapshot values
// plus the generated schedule.
type MortgageDetail struct {
	Mortgage       Mortgage        `json:"mortgage"`
	CurrentBalance float64         `json:"currentBalance"`
	CurrentRate    float64         `json:"currentRate"`
	CurrentMRTA    float64         `json:"currentMrta"`
	NetExposure    float64         `json:"netExposure"`
	Events         []MortgageEvent `json:"events"`
	Schedule       []ScheduleRow   `json:"schedule"`
}
