package request

type CreateBalanceAccountRequest struct {
	Classification string  `json:"classification"`
	Name           string  `json:"name"`
	Value          float64 `json:"value"`
	AssetType      string  `json:"assetType,omitempty"`
	LiquidityTier  string  `json:"liquidityTier,omitempty"`
	ObligationType string  `json:"obligationType,omitempty"`
}

type EditBalanceAccountRequest struct {
	NewValue        float64  `json:"newValue"`
	ContraAccountID string   `json:"contraAccountId,omitempty"`
	PriorValue      *float64 `json:"priorValue,omitempty"`
	Date            string   `json:"date,omitempty"`
	Description     string   `json:"description,omitempty"`
}

type AdjustBalanceAccountRequest struct {
	Amount      float64 `json:"amount"`
	Date        string  `json:"date,omitempty"`
	Description string  `json:"description,omitempty"`
}
