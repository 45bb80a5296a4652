package validation

import (
	"github.com/amhaziq/Net-Worth-Tracker-Backend/internal/api/request"
)

// ValidateCreateForexObservation validates a currency exchange recording
// request. Either the foreign amount or a per-exchange rate must be supplied
// so the foreign side can be derived.
func ValidateCreateForexObservation(req request.CreateForexObservationRequest) error {
	errors := make(map[string]string)

	if err := ValidateDate(req.Date); err != nil {
		errors["date"] = err.Error()
	}

	if req.DomesticAmount <= 0 {
		errors["domesticAmount"] = "domesticAmount must be positive"
	}

	if req.Rate < 0 {
		errors["rate"] = "rate must not be negative"
	}

	if req.ForeignAmount < 0 {
		errors["foreignAmount"] = "foreignAmount must not be negative"
	}

	if req.ForeignAmount == 0 && req.Rate == 0 {
		errors["rate"] = "rate or foreignAmount is required"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

// ValidateSetSpotRate validates a spot rate override request.
func ValidateSetSpotRate(req request.SetSpotRateRequest) error {
	if req.Rate <= 0 {
		return &Error{Fields: map[string]string{"rate": "rate must be positive"}}
	}
	return nil
}
