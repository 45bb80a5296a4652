package handlers

import (
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

// TransactionHandler handles HTTP requests for the cash ledger.
type TransactionHandler struct {
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler with the provided service dependency.
func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// List handles GET requests to retrieve the owner's cash transactions.
//
// Endpoint: GET /api/transactions
// Response: 200 OK with array of Transaction
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	transactions, err := h.transactionService.Transactions(ownerID(r))
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve transactions", err.Error())
		return
	}
	response.RespondJSON(w, http.StatusOK, transactions)
}

// Create handles POST requests to record a cash transaction.
//
// Endpoint: POST /api/transactions
// Request Body: CreateTransactionRequest
// Response: 201 Created with Transaction
// Error: 400 Bad Request if validation fails or the linked account is unknown
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateTransactionRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateTransaction(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	t, err := h.transactionService.CreateTransaction(model.Transaction{
		OwnerID:     ownerID(r),
		Date:        mustParseDate(req.Date),
		Category:    req.Category,
		Description: req.Description,
		Amount:      req.Amount,
		AccountID:   req.AccountID,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrBalanceAccountNotFound) {
			response.RespondError(w, http.StatusBadRequest, err.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to create transaction", err.Error())
		return
	}
	response.RespondJSON(w, http.StatusCreated, t)
}

// Update handles PUT requests to replace a cash transaction's fields.
//
// Endpoint: PUT /api/transactions/{uuid}
// Request Body: UpdateTransactionRequest
// Response: 200 OK with Transaction
// Error: 400 Bad Request if validation fails or the linked account is unknown
// Error: 404 Not Found if the transaction does not exist
func (h *TransactionHandler) Update(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.UpdateTransactionRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateTransaction(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	t, err := h.transactionService.UpdateTransaction(model.Transaction{
		ID:          chi.URLParam(r, "uuid"),
		OwnerID:     ownerID(r),
		Date:        mustParseDate(req.Date),
		Category:    req.Category,
		Description: req.Description,
		Amount:      req.Amount,
		AccountID:   req.AccountID,
	})
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrTransactionNotFound):
			response.RespondError(w, http.StatusNotFound, err.Error(), "")
		case errors.Is(err, apperrors.ErrBalanceAccountNotFound):
			response.RespondError(w, http.StatusBadRequest, err.Error(), "")
		default:
			response.RespondError(w, http.StatusInternalServerError, "failed to update transaction", err.Error())
		}
		return
	}
	response.RespondJSON(w, http.StatusOK, t)
}

// Delete handles DELETE requests to remove a cash transaction.
//
// Endpoint: DELETE /api/transactions/{uuid}
// Response: 204 No Content
// Error: 404 Not Found if the transaction does not exist
func (h *TransactionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.transactionService.DeleteTransaction(chi.URLParam(r, "uuid"), ownerID(r))
	if err != nil {
		if errors.Is(err, apperrors.ErrTransactionNotFound) {
			response.RespondError(w, http.StatusNotFound, err.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete transaction", err.Error())
		return
	}
	response.RespondJSON(w, http.StatusNoContent, nil)
}
