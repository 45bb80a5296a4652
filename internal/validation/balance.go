package validation

import (
	"fmt"
	"strings"

	"github.com/amhaziq/Net-Worth-Tracker-Backend/internal/api/request"
	"github.com/amhaziq/Net-Worth-Tracker-Backend/internal/model"
)

// ValidClassification contains the allowed balance account classifications.
var ValidClassification = map[string]bool{
	model.ClassCurrentAsset:        true,
	model.ClassNonCurrentAsset:     true,
	model.ClassCurrentLiability:    true,
	model.ClassNonCurrentLiability: true,
}

// ValidAssetType contains the allowed asset type values.
var ValidAssetType = map[string]bool{
	model.AssetTypeCash: true, model.AssetTypeAR: true, model.AssetTypeOther: true,
}

// ValidObligationType contains the allowed obligation type values.
var ValidObligationType = map[string]bool{
	model.ObligationStandard:     true,
	model.ObligationHeldOnBehalf: true,
	model.ObligationOnHold:       true,
}

// ValidLiquidityTier contains the allowed liquidity tier values.
var ValidLiquidityTier = map[string]bool{
	model.LiquidityHigh: true, model.LiquidityMedium: true, model.LiquidityLow: true,
}

// ValidateCreateBalanceAccount validates a balance account creation request.
//
// Required fields:
//   - classification: Must be one of the four balance sheet classes
//   - name: Must be non-empty
//
// Optional fields are validated against their allowed values when provided.
func ValidateCreateBalanceAccount(req request.CreateBalanceAccountRequest) error {
	errors := make(map[string]string)

	if !ValidClassification[req.Classification] {
		errors["classification"] = fmt.Sprintf("invalid classification: %s", req.Classification)
	}

	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name is required"
	}

	if req.AssetType != "" && !ValidAssetType[req.AssetType] {
		errors["assetType"] = fmt.Sprintf("invalid assetType: %s", req.AssetType)
	}

	if req.LiquidityTier != "" && !ValidLiquidityTier[req.LiquidityTier] {
		errors["liquidityTier"] = fmt.Sprintf("invalid liquidityTier: %s", req.LiquidityTier)
	}

	if req.ObligationType != "" && !ValidObligationType[req.ObligationType] {
		errors["obligationType"] = fmt.Sprintf("invalid obligationType: %s", req.ObligationType)
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

// ValidateEditBalanceAccount validates an account edit request.
func ValidateEditBalanceAccount(req request.EditBalanceAccountRequest) error {
	errors := make(map[string]string)

	if req.ContraAccountID != "" {
		if err := ValidateUUID(req.ContraAccountID); err != nil {
			errors["contraAccountId"] = err.Error()
		}
	}
	if req.Date != "" {
		if err := ValidateDate(req.Date); err != nil {
			errors["date"] = err.Error()
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

// ValidateAdjustBalanceAccount validates an adjustment request.
func ValidateAdjustBalanceAccount(req request.AdjustBalanceAccountRequest) error {
	errors := make(map[string]string)

	if req.Amount == 0 {
		errors["amount"] = "amount must be non-zero"
	}
	if req.Date != "" {
		if err := ValidateDate(req.Date); err != nil {
			errors["date"] = err.Error()
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
