package request

type CreateTransactionRequest struct {
	Date        string  `json:"date"`
	Category    string  `json:"category"`
	Description string  `json:"description,omitempty"`
	Amount      float64 `json:"amount"`
	AccountID   string  `json:"accountId,omitempty"`
}

type UpdateTransactionRequest struct {
	Date        string  `json:"date"`
	Category    string  `json:"category"`
	Description string  `json:"description,omitempty"`
	Amount      float64 `json:"amount"`
	AccountID   string  `json:"accountId,omitempty"`
}
