package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/amhaziq/Net-Worth-Tracker-Backend/internal/api/request"
	"github.com/amhaziq/Net-Worth-Tracker-Backend/internal/api/response"
	"github.com/amhaziq/Net-Worth-Tracker-Backend/internal/apperrors"
	"github.com/amhaziq/Net-Worth-Tracker-Backend/internal/model"
	"github.com/amhaziq/Net-Worth-Tracker-Backend/internal/service"
	"github.com/amhaziq/Net-Worth-Tracker-Backend/internal/validation"
)

// InvestmentHandler handles HTTP requests for the investment event log and
// the manual stock price store.
type InvestmentHandler struct {
	investmentService *service.InvestmentService
}

// NewInvestmentHandler creates a new InvestmentHandler with the provided service dependency.
func NewInvestmentHandler(investmentService *service.InvestmentService) *InvestmentHandler {
	return &InvestmentHandler{investmentService: investmentService}
}

// ListEvents handles GET requests to retrieve the owner's investment events
// in replay order.
//
// Endpoint: GET /api/investments
// Response: 200 OK with array of InvestmentEvent
// Error: 500 Internal Server Error if retrieval fails
func (h *InvestmentHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.investmentService.Events(ownerID(r))
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve investment events", err.Error())
		return
	}
	response.RespondJSON(w, http.StatusOK, events)
}

// CreateEvent handles POST requests to record an investment event.
//
// Endpoint: POST /api/investments
// Request Body: CreateInvestmentEventRequest
// Response: 201 Created with InvestmentEvent
// Error: 400 Bad Request if validation fails
// Error: 500 Internal Server Error if creation fails
func (h *InvestmentHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateInvestmentEventRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateInvestmentEvent(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	ev, err := h.investmentService.CreateEvent(model.InvestmentEvent{
		OwnerID:   ownerID(r),
		Date:      mustParseDate(req.Date),
		Type:      req.Type,
		Symbol:    req.Symbol,
		Market:    req.Market,
		Brokerage: req.Brokerage,
		Quantity:  req.Quantity,
		UnitPrice: req.UnitPrice,
		Fees:      req.Fees,
		Currency:  req.Currency,
		Note:      req.Note,
	})
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to create investment event", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, ev)
}

// DeleteEvent handles DELETE requests to remove an investment event.
//
// Endpoint: DELETE /api/investments/{uuid}
// Response: 204 No Content
// Error: 404 Not Found if the event does not exist
// Error: 500 Internal Server Error if deletion fails
func (h *InvestmentHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	err := h.investmentService.DeleteEvent(chi.URLParam(r, "uuid"), ownerID(r))
	if err != nil {
		if errors.Is(err, apperrors.ErrInvestmentEventNotFound) {
			response.RespondError(w, http.StatusNotFound, err.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete investment event", err.Error())
		return
	}
	response.RespondJSON(w, http.StatusNoContent, nil)
}

// ListPrices handles GET requests to retrieve all stored stock prices.
//
// Endpoint: GET /api/prices
// Response: 200 OK with array of StockPrice
func (h *InvestmentHandler) ListPrices(w http.ResponseWriter, _ *http.Request) {
	prices, err := h.investmentService.Prices()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve prices", err.Error())
		return
	}
	response.RespondJSON(w, http.StatusOK, prices)
}

// UpsertPrice handles PUT requests to set the current price for a symbol.
//
// Endpoint: PUT /api/prices
// Request Body: UpsertPriceRequest (symbol, price)
// Response: 200 OK
// Error: 400 Bad Request if validation fails
func (h *InvestmentHandler) UpsertPrice(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.UpsertPriceRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpsertPrice(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	if err := h.investmentService.SetPrice(req.Symbol, req.Price, time.Now().UTC()); err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to store price", err.Error())
		return
	}
	response.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
