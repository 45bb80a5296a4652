package handlers

import (
	"net/http"
	"strconv"

	"github.com/amhaziq/Net-Worth-Tracker-Backend/internal/api/response"
	"github.com/amhaziq/Net-Worth-Tracker-Backend/internal/service"
)

// PortfolioHandler handles HTTP requests for the portfolio overview and
// holdings views and the snapshot history.
type PortfolioHandler struct {
	valuationService *service.ValuationService
	snapshotService  *service.SnapshotService
}

// NewPortfolioHandler creates a new PortfolioHandler with the provided service dependencies.
func NewPortfolioHandler(valuationService *service.ValuationService, snapshotService *service.SnapshotService) *PortfolioHandler {
	return &PortfolioHandler{valuationService: valuationService, snapshotService: snapshotService}
}

// Overview handles GET requests for the aggregate performance view.
//
// Endpoint: GET /api/portfolio/overview?filter=overall|holdings|sold&currency=MYR|USD|Original
// Response: 200 OK with PortfolioOverview
// Error: 500 Internal Server Error if aggregation fails
func (h *PortfolioHandler) Overview(w http.ResponseWriter, r *http.Request) {
	filter := r.URL.Query().Get("filter")
	if filter == "" {
		filter = service.FilterOverall
	}
	currency := r.URL.Query().Get("currency")
	if currency == "" {
		currency = service.ViewDomestic
	}

	overview, err := h.valuationService.PortfolioOverview(ownerID(r), filter, currency, asOf(r))
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to build portfolio overview", err.Error())
		return
	}
	response.RespondJSON(w, http.StatusOK, overview)
}

// Holdings handles GET requests for the per-brokerage holdings page.
// A customRate query parameter persists a new spot rate before valuation.
//
// Endpoint: GET /api/portfolio/holdings?currency=MYR|USD|Original&customRate=4.7
// Response: 200 OK with HoldingsView
// Error: 500 Internal Server Error if aggregation fails
func (h *PortfolioHandler) Holdings(w http.ResponseWriter, r *http.Request) {
	currency := r.URL.Query().Get("currency")
	if currency == "" {
		currency = service.ViewDomestic
	}

	var customRate *float64
	if raw := r.URL.Query().Get("customRate"); raw != "" {
		if rate, err := strconv.ParseFloat(raw, 64); err == nil {
			customRate = &rate
		}
	}

	view, err := h.valuationService.Holdings(ownerID(r), currency, customRate, asOf(r))
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to build holdings view", err.Error())
		return
	}
	response.RespondJSON(w, http.StatusOK, view)
}

// Snapshots handles GET requests for the owner's daily snapshot history.
//
// Endpoint: GET /api/portfolio/snapshots?from=2025-01-01&to=2025-12-31
// Response: 200 OK with array of PortfolioSnapshot
func (h *PortfolioHandler) Snapshots(w http.ResponseWriter, r *http.Request) {
	snapshots, err := h.snapshotService.Snapshots(ownerID(r), r.URL.Query().Get("from"), r.URL.Query().Get("to"))
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve snapshots", err.Error())
		return
	}
	response.RespondJSON(w, http.StatusOK, snapshots)
}
