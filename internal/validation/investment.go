package validation

import (
	"fmt"
	"strings"

	"github.com/amhaziq/Net-Worth-Tracker-Backend/internal/api/request"
	"github.com/amhaziq/Net-Worth-Tracker-Backend/internal/model"
)

// ValidInvestmentEventType contains the allowed investment event type values.
var ValidInvestmentEventType = map[string]bool{
	model.EventBuy: true, model.EventSell: true, model.EventDividend: true,
	model.EventBonus: true, model.EventSplit: true,
}

// ValidCurrency contains the allowed event currencies.
var ValidCurrency = map[string]bool{
	model.CurrencyDomestic: true, model.CurrencyForeign: true,
}

// ValidateCreateInvestmentEvent validates an investment event creation request.
//
// Required fields:
//   - date: Must be in YYYY-MM-DD format
//   - type: Must be one of: Buy, Sell, Dividend, Bonus, Split
//   - symbol: Must be non-empty
//   - currency: Must be MYR or USD
//   - quantity: Must be non-negative (zero is allowed for Dividend events)
//   - unitPrice, fees: Must be non-negative
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreateInvestmentEvent(req request.CreateInvestmentEventRequest) error {
	errors := make(map[string]string)

	if err := ValidateDate(req.Date); err != nil {
		errors["date"] = err.Error()
	}

	if strings.TrimSpace(req.Type) == "" {
		errors["type"] = "type is required"
	} else if !ValidInvestmentEventType[req.Type] {
		errors["type"] = fmt.Sprintf("invalid type: %s", req.Type)
	}

	if strings.TrimSpace(req.Symbol) == "" {
		errors["symbol"] = "symbol is required"
	}

	if !ValidCurrency[req.Currency] {
		errors["currency"] = fmt.Sprintf("invalid currency: %s", req.Currency)
	}

	if req.Quantity < 0 {
		errors["quantity"] = "quantity must not be negative"
	}
	if req.Type != model.EventDividend && req.Quantity == 0 {
		errors["quantity"] = "quantity is required"
	}

	if req.UnitPrice < 0 {
		errors["unitPrice"] = "unitPrice must not be negative"
	}

	if req.Fees < 0 {
		errors["fees"] = "fees must not be negative"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateUpsertPrice validates a stock price upsert request.
func ValidateUpsertPrice(req request.UpsertPriceRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Symbol) == "" {
		errors["symbol"] = "symbol is required"
	}
	if req.Price < 0 {
		errors["price"] = "price must not be negative"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
