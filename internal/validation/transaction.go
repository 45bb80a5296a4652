package validation

import (
	"strings"

	"github.com/amhaziq/Net-Worth-Tracker-Backend/internal/api/request"
)

// ValidateCreateTransaction validates a cash transaction creation request.
//
// Required fields:
//   - date: Must be in YYYY-MM-DD format
//   - category: Must be non-empty
//   - amount: Must be non-zero (negative amounts are outflows)
//
// accountId must be a valid UUID when provided.
func ValidateCreateTransaction(req request.CreateTransactionRequest) error {
	errors := make(map[string]string)

	if err := ValidateDate(req.Date); err != nil {
		errors["date"] = err.Error()
	}

	if strings.TrimSpace(req.Category) == "" {
		errors["category"] = "category is required"
	}

	if req.Amount == 0 {
		errors["amount"] = "amount must be non-zero"
	}

	if req.AccountID != "" {
		if err := ValidateUUID(req.AccountID); err != nil {
			errors["accountId"] = err.Error()
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

// ValidateUpdateTransaction validates a cash transaction update request.
// Updates are full replacements, so the same constraints as create apply.
func ValidateUpdateTransaction(req request.UpdateTransactionRequest) error {
	return ValidateCreateTransaction(request.CreateTransactionRequest(req))
}
