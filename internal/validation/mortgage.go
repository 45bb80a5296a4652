package validation

import (
	"strings"

	"github.com/amhaziq/Net-Worth-Tracker-Backend/internal/api/request"
)

// ValidateCreateMortgage validates a mortgage creation request.
//
// Required fields:
//   - name: Must be non-empty
//   - startDate: Must be in YYYY-MM-DD format
//   - originalPrincipal: Must be non-negative
//   - termYears: Must be positive
//
// MRTA fields are required only when hasMrta is set.
func ValidateCreateMortgage(req request.CreateMortgageRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name is required"
	}

	if err := ValidateDate(req.StartDate); err != nil {
		errors["startDate"] = err.Error()
	}

	if req.OriginalPrincipal < 0 {
		errors["originalPrincipal"] = "originalPrincipal must not be negative"
	}

	if req.TermYears <= 0 {
		errors["termYears"] = "termYears must be positive"
	}

	if req.HasMRTA {
		if req.MRTAOriginalAmount <= 0 {
			errors["mrtaOriginalAmount"] = "mrtaOriginalAmount must be positive when hasMrta is set"
		}
		if req.MRTARate < 0 {
			errors["mrtaRate"] = "mrtaRate must not be negative"
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

// ValidateAddMortgagePayment validates a payment recording request.
func ValidateAddMortgagePayment(req request.AddMortgagePaymentRequest) error {
	errors := make(map[string]string)

	if err := ValidateDate(req.Date); err != nil {
		errors["date"] = err.Error()
	}
	if req.Amount <= 0 {
		errors["amount"] = "amount must be positive"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

// ValidateAddRateChange validates a rate change request.
func ValidateAddRateChange(req request.AddRateChangeRequest) error {
	errors := make(map[string]string)

	if err := ValidateDate(req.Date); err != nil {
		errors["date"] = err.Error()
	}
	if req.Rate < 0 {
		errors["rate"] = "rate must not be negative"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
