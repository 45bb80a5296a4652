package request

type CreateForexObservationRequest struct {
	Date           string  `json:"date"`
	DomesticAmount float64 `json:"domesticAmount"`
	Rate           float64 `json:"rate"`
	ForeignAmount  float64 `json:"foreignAmount,omitempty"`
}

type SetSpotRateRequest struct {
	Rate float64 `json:"rate"`
}
