package handlers

import (
	"net/http"
	"time"

	"github.com/amhaziq/Net-Worth-Tracker-Backend/internal/api/request"
	"github.com/amhaziq/Net-Worth-Tracker-Backend/internal/api/response"
	"github.com/amhaziq/Net-Worth-Tracker-Backend/internal/model"
	"github.com/amhaziq/Net-Worth-Tracker-Backend/internal/service"
	"github.com/amhaziq/Net-Worth-Tracker-Backend/internal/validation"
)

// ForexHandler handles HTTP requests for currency exchange records and
// exchange rates.
type ForexHandler struct {
	forexService *service.ForexService
}

// NewForexHandler creates a new ForexHandler with the provided service dependency.
func NewForexHandler(forexService *service.ForexService) *ForexHandler {
	return &ForexHandler{forexService: forexService}
}

// ListObservations handles GET requests to retrieve the owner's recorded
// currency exchanges.
//
// Endpoint: GET /api/forex
// Response: 200 OK with array of ForexObservation
func (h *ForexHandler) ListObservations(w http.ResponseWriter, r *http.Request) {
	observations, err := h.forexService.Observations(ownerID(r))
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve forex observations", err.Error())
		return
	}
	response.RespondJSON(w, http.StatusOK, observations)
}

// CreateObservation handles POST requests to record a currency exchange.
//
// Endpoint: POST /api/forex
// Request Body: CreateForexObservationRequest
// Response: 201 Created with ForexObservation
// Error: 400 Bad Request if validation fails
func (h *ForexHandler) CreateObservation(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateForexObservationRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateForexObservation(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	obs, err := h.forexService.RecordObservation(model.ForexObservation{
		OwnerID:        ownerID(r),
		Date:           mustParseDate(req.Date),
		DomesticAmount: req.DomesticAmount,
		Rate:           req.Rate,
		ForeignAmount:  req.ForeignAmount,
	})
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to record forex observation", err.Error())
		return
	}
	response.RespondJSON(w, http.StatusCreated, obs)
}

// Rates handles GET requests for the two valuation rates.
//
// Endpoint: GET /api/forex/rates
// Response: 200 OK with ForexRates
func (h *ForexHandler) Rates(w http.ResponseWriter, r *http.Request) {
	rates, err := h.forexService.Rates(ownerID(r))
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve rates", err.Error())
		return
	}
	response.RespondJSON(w, http.StatusOK, rates)
}

// SetSpotRate handles PUT requests to override the current spot rate.
//
// Endpoint: PUT /api/forex/rates
// Request Body: SetSpotRateRequest (rate)
// Response: 200 OK
// Error: 400 Bad Request if validation fails
func (h *ForexHandler) SetSpotRate(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.SetSpotRateRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateSetSpotRate(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	if err := h.forexService.SetCurrentRate(req.Rate, time.Now().UTC()); err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to store spot rate", err.Error())
		return
	}
	response.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
