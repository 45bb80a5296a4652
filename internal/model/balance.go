package model

import "time"

// Balance account classifications. The strings are compared by substring in
// the contra logic ("Asset"/"Receivable" means asset-like), so they are part
// of the engine's contract, not just labels.
const (
	ClassCurrentAsset        = "Current Asset"
	ClassNonCurrentAsset     = "Non-Current Asset"
	ClassCurrentLiability    = "Current Liability"
	ClassNonCurrentLiability = "Non-Current Liability"
)

// Asset types for grouping current assets.
const (
	AssetTypeCash  = "Cash"
	AssetTypeAR    = "AR"
	AssetTypeOther = "Other"
)

// Obligation types for grouping current liabilities in the cash-flow view.
const (
	ObligationStandard     = "Standard"
	ObligationHeldOnBehalf = "Held on Behalf"
	ObligationOnHold       = "On Hold"
)

// Liquidity tiers.
const (
	LiquidityHigh   = "High"
	LiquidityMedium = "Medium"
	LiquidityLow    = "Low"
)

// BalanceAccount is a manually maintained balance-sheet line. BaseValue is
// the stored value; the displayed value is BaseValue plus the sum of cash
// transactions linked to the account.
type BalanceAccount struct {
	ID             string    `json:"id"`
	OwnerID        string    `json:"ownerId"`
	Classification string    `json:"classification"`
	Name           string    `json:"name"`
	BaseValue      float64   `json:"baseValue"`
	AssetType      string    `json:"assetType,omitempty"`
	LiquidityTier  string    `json:"liquidityTier,omitempty"`
	ObligationType string    `json:"obligationType,omitempty"`
	CreatedAt      time.Time `json:"createdAt,omitempty"`
}

// BalanceHistoryEntry is one append-only audit record of an account edit.
// Old and new values are DISPLAYED values (base plus linked transactions).
// Entries are never mutated; they are removed only when the whole account is
// deleted.
type BalanceHistoryEntry struct {
	ID                string    `json:"id"`
	AccountID         string    `json:"accountId"`
	Date              time.Time `json:"date"`
	OldValue          float64   `json:"oldValue"`
	NewValue          float64   `json:"newValue"`
	Adjustment        float64   `json:"adjustment"`
	ContraAccountID   string    `json:"contraAccountId,omitempty"`
	ContraAccountName string    `json:"contraAccountName,omitempty"`
	Description       string    `json:"description,omitempty"`
}
