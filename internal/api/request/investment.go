package request

type CreateInvestmentEventRequest struct {
	Date      string  `json:"date"`
	Type      string  `json:"type"`
	Symbol    string  `json:"symbol"`
	Market    string  `json:"market"`
	Brokerage string  `json:"brokerage,omitempty"`
	Quantity  float64 `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
	Fees      float64 `json:"fees"`
	Currency  string  `json:"currency"`
	Note      string  `json:"note,omitempty"`
}

type UpsertPriceRequest struct {
	Symbol string  `json:"symbol"`
	Price  float64 `json:"price"`
}
