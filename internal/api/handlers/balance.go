package handlers

import (
	"database/sql"
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

// BalanceHandler handles HTTP requests for balance accounts and the derived
// balance sheet and cash-flow views.
type BalanceHandler struct {
	balanceService   *service.BalanceService
	valuationService *service.ValuationService
}

// NewBalanceHandler creates a new BalanceHandler with the provided service dependencies.
func NewBalanceHandler(balanceService *service.BalanceService, valuationService *service.ValuationService) *BalanceHandler {
	return &BalanceHandler{balanceService: balanceService, valuationService: valuationService}
}

// ListAccounts handles GET requests to retrieve the owner's balance accounts.
//
// Endpoint: GET /api/balance/accounts
// Response: 200 OK with array of BalanceAccount
func (h *BalanceHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.balanceService.Accounts(ownerID(r))
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve accounts", err.Error())
		return
	}
	response.RespondJSON(w, http.StatusOK, accounts)
}

// CreateAccount handles POST requests to create a balance account.
//
// Endpoint: POST /api/balance/accounts
// Request Body: CreateBalanceAccountRequest
// Response: 201 Created with BalanceAccount
// Error: 400 Bad Request if validation fails
func (h *BalanceHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateBalanceAccountRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateBalanceAccount(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	acc, err := h.balanceService.CreateAccount(model.BalanceAccount{
		OwnerID:        ownerID(r),
		Classification: req.Classification,
		Name:           req.Name,
		BaseValue:      req.Value,
		AssetType:      req.AssetType,
		LiquidityTier:  req.LiquidityTier,
		ObligationType: req.ObligationType,
	})
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to create account", err.Error())
		return
	}
	response.RespondJSON(w, http.StatusCreated, acc)
}

// EditAccount handles PUT requests to set an account's displayed value,
// optionally transferring the difference against a contra account.
//
// Endpoint: PUT /api/balance/accounts/{uuid}
// Request Body: EditBalanceAccountRequest
// Response: 200 OK with EditResult
// Error: 400 Bad Request if validation fails or the contra account is unknown
// Error: 404 Not Found if the account does not exist
func (h *BalanceHandler) EditAccount(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.EditBalanceAccountRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateEditBalanceAccount(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	date := time.Now().UTC()
	if req.Date != "" {
		date = mustParseDate(req.Date)
	}

	result, err := h.balanceService.EditAccount(chi.URLParam(r, "uuid"), ownerID(r), req.NewValue, req.ContraAccountID, req.PriorValue, date, req.Description)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrContraAccountNotFound):
			response.RespondError(w, http.StatusBadRequest, err.Error(), "")
		case errors.Is(err, sql.ErrNoRows):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrBalanceAccountNotFound.Error(), "")
		default:
			response.RespondError(w, http.StatusInternalServerError, "failed to edit account", err.Error())
		}
		return
	}
	response.RespondJSON(w, http.StatusOK, result)
}

// AdjustAccount handles POST requests to shift an account's base value.
//
// Endpoint: POST /api/balance/accounts/{uuid}/adjust
// Request Body: AdjustBalanceAccountRequest (amount, date, description)
// Response: 200 OK with BalanceAccount
// Error: 400 Bad Request if validation fails
// Error: 404 Not Found if the account does not exist
func (h *BalanceHandler) AdjustAccount(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.AdjustBalanceAccountRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateAdjustBalanceAccount(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	date := time.Now().UTC()
	if req.Date != "" {
		date = mustParseDate(req.Date)
	}

	acc, err := h.balanceService.AdjustAccount(chi.URLParam(r, "uuid"), ownerID(r), req.Amount, date, req.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrBalanceAccountNotFound.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to adjust account", err.Error())
		return
	}
	response.RespondJSON(w, http.StatusOK, acc)
}

// History handles GET requests for an account's audit entries, newest first.
//
// Endpoint: GET /api/balance/accounts/{uuid}/history
// Response: 200 OK with array of BalanceHistoryEntry
// Error: 404 Not Found if the account does not exist
func (h *BalanceHandler) History(w http.ResponseWriter, r *http.Request) {
	entries, err := h.balanceService.History(chi.URLParam(r, "uuid"), ownerID(r))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrBalanceAccountNotFound.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve history", err.Error())
		return
	}
	response.RespondJSON(w, http.StatusOK, entries)
}

// DeleteAccount handles DELETE requests to remove an account. Linked
// transactions are unlinked, not deleted.
//
// Endpoint: DELETE /api/balance/accounts/{uuid}
// Response: 204 No Content
// Error: 404 Not Found if the account does not exist
func (h *BalanceHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	err := h.balanceService.DeleteAccount(chi.URLParam(r, "uuid"), ownerID(r))
	if err != nil {
		if errors.Is(err, apperrors.ErrBalanceAccountNotFound) {
			response.RespondError(w, http.StatusNotFound, err.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete account", err.Error())
		return
	}
	response.RespondJSON(w, http.StatusNoContent, nil)
}

// BalanceSheet handles GET requests for the owner's statement of financial
// position.
//
// Endpoint: GET /api/balance/sheet
// Response: 200 OK with BalanceSheet
func (h *BalanceHandler) BalanceSheet(w http.ResponseWriter, r *http.Request) {
	sheet, err := h.valuationService.BalanceSheet(ownerID(r))
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to build balance sheet", err.Error())
		return
	}
	response.RespondJSON(w, http.StatusOK, sheet)
}

// CashFlow handles GET requests for the short-term liquidity view.
//
// Endpoint: GET /api/balance/cashflow
// Response: 200 OK with CashFlowSummary
func (h *BalanceHandler) CashFlow(w http.ResponseWriter, r *http.Request) {
	summary, err := h.valuationService.CashFlow(ownerID(r))
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to build cash flow summary", err.Error())
		return
	}
	response.RespondJSON(w, http.StatusOK, summary)
}
