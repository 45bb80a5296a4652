package request

type CreateMortgageRequest struct {
	Name               string  `json:"name"`
	StartDate          string  `json:"startDate"`
	OriginalPrincipal  float64 `json:"originalPrincipal"`
	TermYears          int     `json:"termYears"`
	HasMRTA            bool    `json:"hasMrta"`
	MRTAOriginalAmount float64 `json:"mrtaOriginalAmount,omitempty"`
	MRTARate           float64 `json:"mrtaRate,omitempty"`
}

type AddMortgagePaymentRequest struct {
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
}

type AddRateChangeRequest struct {
	Date string  `json:"date"`
	Rate float64 `json:"rate"`
}
