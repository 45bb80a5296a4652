package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/amhaziq/Net-Worth-Tracker-Backend/internal/api/handlers"
	"github.com/amhaziq/Net-Worth-Tracker-Backend/internal/api/response"
	"github.com/amhaziq/Net-Worth-Tracker-Backend/internal/model"
	"github.com/amhaziq/Net-Worth-Tracker-Backend/internal/testutil"
)

// withUUIDParam attaches a chi route context carrying the uuid path parameter,
// for handlers invoked directly rather than through the router.
func withUUIDParam(req *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("uuid", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

// TestInvestmentHandler_ListEvents tests the GET /api/investments endpoint.
//
// WHY: The event log is the source of truth for every position and valuation
// view. The frontend depends on this returning events in replay order with
// proper HTTP status codes and JSON formatting.
func TestInvestmentHandler_ListEvents(t *testing.T) {
	t.Run("GET /api/investments returns 200 with empty array", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestInvestmentService(t, db)
		handler := handlers.NewInvestmentHandler(svc)

		// Create HTTP request
		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/investments",
			map[string]string{"owner": testutil.TestOwner})
		w := httptest.NewRecorder()

		// Execute
		handler.ListEvents(w, req)

		// Assert HTTP status
		if w.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d", w.Code)
		}

		// Assert Content-Type
		contentType := w.Header().Get("Content-Type")
		if contentType != "application/json" {
			t.Errorf("Expected Content-Type 'application/json', got '%s'", contentType)
		}

		// Assert response body
		var events []model.InvestmentEvent
		if err := json.NewDecoder(w.Body).Decode(&events); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(events) != 0 {
			t.Errorf("Expected empty array, got %d items", len(events))
		}
	})

	t.Run("GET /api/investments returns events in replay order", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestInvestmentService(t, db)
		handler := handlers.NewInvestmentHandler(svc)

		// Create test data out of date order
		testutil.CreateSell(t, db, "AAPL", 5, 120, 0, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
		buy := testutil.CreateBuy(t, db, "AAPL", 10, 100, 1, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))

		// Create HTTP request
		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/investments",
			map[string]string{"owner": testutil.TestOwner})
		w := httptest.NewRecorder()

		// Execute
		handler.ListEvents(w, req)

		// Assert
		if w.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d", w.Code)
		}

		var events []model.InvestmentEvent
		if err := json.NewDecoder(w.Body).Decode(&events); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(events) != 2 {
			t.Fatalf("Expected 2 events, got %d", len(events))
		}
		if events[0].ID != buy.ID {
			t.Errorf("Expected the earlier Buy first, got event %s", events[0].ID)
		}
		if events[1].Type != model.EventSell {
			t.Errorf("Expected Sell second, got '%s'", events[1].Type)
		}
	})

	t.Run("GET /api/investments scopes events to the requested owner", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestInvestmentService(t, db)
		handler := handlers.NewInvestmentHandler(svc)

		testutil.NewInvestmentEvent().WithOwner("someone-else").Build(t, db)

		// Create HTTP request
		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/investments",
			map[string]string{"owner": testutil.TestOwner})
		w := httptest.NewRecorder()

		// Execute
		handler.ListEvents(w, req)

		// Assert
		var events []model.InvestmentEvent
		if err := json.NewDecoder(w.Body).Decode(&events); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(events) != 0 {
			t.Errorf("Expected no events for %s, got %d", testutil.TestOwner, len(events))
		}
	})
}

// TestInvestmentHandler_CreateEvent tests the POST /api/investments endpoint.
//
// WHY: Event creation is the only write path into the position ledger.
// Validation failures must be rejected with field details before anything
// reaches the database.
func TestInvestmentHandler_CreateEvent(t *testing.T) {
	t.Run("POST /api/investments returns 201 with the stored event", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestInvestmentService(t, db)
		handler := handlers.NewInvestmentHandler(svc)

		body := `{"date":"2024-01-02","type":"Buy","symbol":"AAPL","market":"US","brokerage":"Test Brokerage","quantity":10,"unitPrice":100,"fees":1,"currency":"USD"}`
		req := httptest.NewRequest(http.MethodPost, "/api/investments?owner="+testutil.TestOwner, strings.NewReader(body))
		w := httptest.NewRecorder()

		// Execute
		handler.CreateEvent(w, req)

		// Assert
		if w.Code != http.StatusCreated {
			t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
		}

		var ev model.InvestmentEvent
		if err := json.NewDecoder(w.Body).Decode(&ev); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if ev.ID == "" {
			t.Error("Expected a generated event ID")
		}
		if ev.OwnerID != testutil.TestOwner {
			t.Errorf("Expected owner '%s', got '%s'", testutil.TestOwner, ev.OwnerID)
		}
		if ev.Symbol != "AAPL" || ev.Quantity != 10 || ev.UnitPrice != 100 {
			t.Errorf("Stored event does not match request: %+v", ev)
		}
	})

	t.Run("POST /api/investments returns 400 on validation failure", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestInvestmentService(t, db)
		handler := handlers.NewInvestmentHandler(svc)

		// Missing symbol and an unknown event type
		body := `{"date":"2024-01-02","type":"Gift","symbol":"","quantity":10,"unitPrice":100,"currency":"USD"}`
		req := httptest.NewRequest(http.MethodPost, "/api/investments", strings.NewReader(body))
		w := httptest.NewRecorder()

		// Execute
		handler.CreateEvent(w, req)

		// Assert
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}

		var errResp response.ErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&errResp); err != nil {
			t.Fatalf("Failed to decode error response: %v", err)
		}
		if errResp.Error != "validation failed" {
			t.Errorf("Expected error 'validation failed', got '%s'", errResp.Error)
		}
	})

	t.Run("POST /api/investments returns 400 on unknown fields", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestInvestmentService(t, db)
		handler := handlers.NewInvestmentHandler(svc)

		body := `{"date":"2024-01-02","type":"Buy","symbol":"AAPL","quantity":10,"unitPrice":100,"currency":"USD","bogus":true}`
		req := httptest.NewRequest(http.MethodPost, "/api/investments", strings.NewReader(body))
		w := httptest.NewRecorder()

		// Execute
		handler.CreateEvent(w, req)

		// Assert
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})
}

// TestInvestmentHandler_DeleteEvent tests the DELETE /api/investments/{uuid} endpoint.
//
// WHY: Deleting an event rewrites position history, so the handler must only
// remove events belonging to the requesting owner and report unknown IDs.
func TestInvestmentHandler_DeleteEvent(t *testing.T) {
	t.Run("DELETE /api/investments/{uuid} returns 204", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestInvestmentService(t, db)
		handler := handlers.NewInvestmentHandler(svc)

		ev := testutil.NewInvestmentEvent().Build(t, db)

		req := withUUIDParam(httptest.NewRequest(http.MethodDelete,
			"/api/investments/"+ev.ID+"?owner="+testutil.TestOwner, nil), ev.ID)
		w := httptest.NewRecorder()

		// Execute
		handler.DeleteEvent(w, req)

		// Assert
		if w.Code != http.StatusNoContent {
			t.Errorf("Expected status 204, got %d", w.Code)
		}
	})

	t.Run("DELETE /api/investments/{uuid} returns 404 for unknown event", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestInvestmentService(t, db)
		handler := handlers.NewInvestmentHandler(svc)

		id := testutil.MakeID()
		req := withUUIDParam(httptest.NewRequest(http.MethodDelete,
			"/api/investments/"+id+"?owner="+testutil.TestOwner, nil), id)
		w := httptest.NewRecorder()

		// Execute
		handler.DeleteEvent(w, req)

		// Assert
		if w.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", w.Code)
		}
	})
}

// TestInvestmentHandler_Prices tests the manual price store endpoints.
//
// WHY: Market values come from the manually maintained price store. The PUT
// endpoint must overwrite in place and reject negative prices.
func TestInvestmentHandler_Prices(t *testing.T) {
	t.Run("PUT then GET /api/prices round-trips a price", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestInvestmentService(t, db)
		handler := handlers.NewInvestmentHandler(svc)

		// Execute upsert
		req := httptest.NewRequest(http.MethodPut, "/api/prices", strings.NewReader(`{"symbol":"AAPL","price":110.5}`))
		w := httptest.NewRecorder()
		handler.UpsertPrice(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		// Execute list
		req = httptest.NewRequest(http.MethodGet, "/api/prices", nil)
		w = httptest.NewRecorder()
		handler.ListPrices(w, req)

		// Assert
		if w.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d", w.Code)
		}

		var prices []model.StockPrice
		if err := json.NewDecoder(w.Body).Decode(&prices); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(prices) != 1 {
			t.Fatalf("Expected 1 price, got %d", len(prices))
		}
		if prices[0].Symbol != "AAPL" || prices[0].Price != 110.5 {
			t.Errorf("Expected AAPL at 110.5, got %s at %v", prices[0].Symbol, prices[0].Price)
		}
	})

	t.Run("PUT /api/prices returns 400 for a negative price", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestInvestmentService(t, db)
		handler := handlers.NewInvestmentHandler(svc)

		req := httptest.NewRequest(http.MethodPut, "/api/prices", strings.NewReader(`{"symbol":"AAPL","price":-1}`))
		w := httptest.NewRecorder()

		// Execute
		handler.UpsertPrice(w, req)

		// Assert
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})
}
