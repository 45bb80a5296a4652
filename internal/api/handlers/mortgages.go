package handlers

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/amhaziq/Net-Worth-Tracker-Backend/internal/api/request"
	"github.com/amhaziq/Net-Worth-Tracker-Backend/internal/api/response"
	"github.com/amhaziq/Net-Worth-Tracker-Backend/internal/apperrors"
	"github.com/amhaziq/Net-Worth-Tracker-Backend/internal/model"
	"github.com/amhaziq/Net-Worth-Tracker-Backend/internal/service"
	"github.com/amhaziq/Net-Worth-Tracker-Backend/internal/validation"
)

// MortgageHandler handles HTTP requests for mortgages and their events.
type MortgageHandler struct {
	mortgageService *service.MortgageService
}

// NewMortgageHandler creates a new MortgageHandler with the provided service dependency.
func NewMortgageHandler(mortgageService *service.MortgageService) *MortgageHandler {
	return &MortgageHandler{mortgageService: mortgageService}
}

// List handles GET requests to retrieve the owner's mortgages.
//
// Endpoint: GET /api/mortgages
// Response: 200 OK with array of Mortgage
func (h *MortgageHandler) List(w http.ResponseWriter, r *http.Request) {
	mortgages, err := h.mortgageService.Mortgages(ownerID(r))
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve mortgages", err.Error())
		return
	}
	response.RespondJSON(w, http.StatusOK, mortgages)
}

// Create handles POST requests to create a mortgage.
//
// Endpoint: POST /api/mortgages
// Request Body: CreateMortgageRequest
// Response: 201 Created with Mortgage
// Error: 400 Bad Request if validation fails
func (h *MortgageHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateMortgageRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateMortgage(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	m, err := h.mortgageService.CreateMortgage(model.Mortgage{
		OwnerID:            ownerID(r),
		Name:               req.Name,
		StartDate:          mustParseDate(req.StartDate),
		OriginalPrincipal:  req.OriginalPrincipal,
		TermYears:          req.TermYears,
		HasMRTA:            req.HasMRTA,
		MRTAOriginalAmount: req.MRTAOriginalAmount,
		MRTARate:           req.MRTARate,
	})
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to create mortgage", err.Error())
		return
	}
	response.RespondJSON(w, http.StatusCreated, m)
}

// Detail handles GET requests for one mortgage's full state including the
// amortization schedule.
//
// Endpoint: GET /api/mortgages/{uuid}
// Response: 200 OK with MortgageDetail
// Error: 404 Not Found if the mortgage does not exist
func (h *MortgageHandler) Detail(w http.ResponseWriter, r *http.Request) {
	detail, err := h.mortgageService.Detail(chi.URLParam(r, "uuid"), ownerID(r), asOf(r))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrMortgageNotFound.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to build mortgage detail", err.Error())
		return
	}
	response.RespondJSON(w, http.StatusOK, detail)
}

// Delete handles DELETE requests to remove a mortgage and its events.
//
// Endpoint: DELETE /api/mortgages/{uuid}
// Response: 204 No Content
// Error: 404 Not Found if the mortgage does not exist
func (h *MortgageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.mortgageService.DeleteMortgage(chi.URLParam(r, "uuid"), ownerID(r))
	if err != nil {
		if errors.Is(err, apperrors.ErrMortgageNotFound) {
			response.RespondError(w, http.StatusNotFound, err.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete mortgage", err.Error())
		return
	}
	response.RespondJSON(w, http.StatusNoContent, nil)
}

// AddPayment handles POST requests to record a mortgage payment.
//
// Endpoint: POST /api/mortgages/{uuid}/payments
// Request Body: AddMortgagePaymentRequest (date, amount)
// Response: 201 Created with MortgageEvent
// Error: 400 Bad Request if validation fails
// Error: 404 Not Found if the mortgage does not exist
func (h *MortgageHandler) AddPayment(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.AddMortgagePaymentRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateAddMortgagePayment(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	ev, err := h.mortgageService.AddPayment(chi.URLParam(r, "uuid"), ownerID(r), req.Amount, mustParseDate(req.Date))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrMortgageNotFound.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to record payment", err.Error())
		return
	}
	response.RespondJSON(w, http.StatusCreated, ev)
}

// AddRateChange handles POST requests to record a rate change.
//
// Endpoint: POST /api/mortgages/{uuid}/rates
// Request Body: AddRateChangeRequest (date, rate)
// Response: 201 Created with MortgageEvent
// Error: 400 Bad Request if validation fails
// Error: 404 Not Found if the mortgage does not exist
func (h *MortgageHandler) AddRateChange(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.AddRateChangeRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateAddRateChange(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	ev, err := h.mortgageService.AddRateChange(chi.URLParam(r, "uuid"), ownerID(r), req.Rate, mustParseDate(req.Date))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrMortgageNotFound.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to record rate change", err.Error())
		return
	}
	response.RespondJSON(w, http.StatusCreated, ev)
}
