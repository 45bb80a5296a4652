package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/amhaziq/Net-Worth-Tracker-Backend/internal/api/handlers"
	"github.com/amhaziq/Net-Worth-Tracker-Backend/internal/model"
	"github.com/amhaziq/Net-Worth-Tracker-Backend/internal/testutil"
)

// TestPortfolioHandler_Overview tests the GET /api/portfolio/overview endpoint.
//
// WHY: The overview is the landing page of the application. It must convert
// through the forex layer, honor the filter and currency query parameters,
// and keep the counts stable across filters.
func TestPortfolioHandler_Overview(t *testing.T) {
	t.Run("GET /api/portfolio/overview returns converted totals", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		handler := handlers.NewPortfolioHandler(
			testutil.NewTestValuationService(t, db),
			testutil.NewTestSnapshotService(t, db),
		)

		// One open USD position, valued at the default 4.5 rate
		testutil.CreateBuy(t, db, "AAPL", 10, 100, 0, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))
		testutil.SetStockPrice(t, db, "AAPL", 120)

		// Create HTTP request
		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/portfolio/overview",
			map[string]string{"owner": testutil.TestOwner, "asOf": "2024-06-01"})
		w := httptest.NewRecorder()

		// Execute
		handler.Overview(w, req)

		// Assert HTTP status
		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		// Assert Content-Type
		contentType := w.Header().Get("Content-Type")
		if contentType != "application/json" {
			t.Errorf("Expected Content-Type 'application/json', got '%s'", contentType)
		}

		// Assert response body
		var overview model.PortfolioOverview
		if err := json.NewDecoder(w.Body).Decode(&overview); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if overview.DisplayCurrency != model.CurrencyDomestic {
			t.Errorf("Expected default display currency MYR, got '%s'", overview.DisplayCurrency)
		}
		if overview.TotalInvested != 4500 {
			t.Errorf("Expected invested 4500, got %v", overview.TotalInvested)
		}
		if overview.TotalMarketValue != 5400 {
			t.Errorf("Expected market value 5400, got %v", overview.TotalMarketValue)
		}
		if overview.HoldingsCount != 1 || overview.SoldCount != 0 {
			t.Errorf("Expected 1 holding and 0 sold, got %d/%d", overview.HoldingsCount, overview.SoldCount)
		}
		if len(overview.Items) != 1 || overview.Items[0].Symbol != "AAPL" {
			t.Errorf("Expected a single AAPL item, got %+v", overview.Items)
		}
	})

	t.Run("GET /api/portfolio/overview narrows items by filter but keeps counts", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		handler := handlers.NewPortfolioHandler(
			testutil.NewTestValuationService(t, db),
			testutil.NewTestSnapshotService(t, db),
		)

		testutil.CreateBuy(t, db, "AAPL", 10, 100, 0, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))
		testutil.SetStockPrice(t, db, "AAPL", 120)
		testutil.CreateBuy(t, db, "TSLA", 5, 100, 0, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))
		testutil.CreateSell(t, db, "TSLA", 5, 120, 0, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))

		// Create HTTP request
		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/portfolio/overview",
			map[string]string{"owner": testutil.TestOwner, "filter": "sold", "asOf": "2024-06-01"})
		w := httptest.NewRecorder()

		// Execute
		handler.Overview(w, req)

		// Assert
		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var overview model.PortfolioOverview
		if err := json.NewDecoder(w.Body).Decode(&overview); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(overview.Items) != 1 || overview.Items[0].Symbol != "TSLA" {
			t.Errorf("Expected only the sold TSLA item, got %+v", overview.Items)
		}
		if overview.HoldingsCount != 1 || overview.SoldCount != 1 {
			t.Errorf("Expected counts 1/1 regardless of filter, got %d/%d", overview.HoldingsCount, overview.SoldCount)
		}
	})
}

// TestPortfolioHandler_Holdings tests the GET /api/portfolio/holdings endpoint.
//
// WHY: The holdings page supports a user-supplied spot rate for what-if
// valuation; the customRate query parameter must persist as the new current
// rate.
func TestPortfolioHandler_Holdings(t *testing.T) {
	t.Run("GET /api/portfolio/holdings returns open positions per brokerage", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		handler := handlers.NewPortfolioHandler(
			testutil.NewTestValuationService(t, db),
			testutil.NewTestSnapshotService(t, db),
		)

		testutil.CreateBuy(t, db, "AAPL", 10, 100, 0, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))
		testutil.SetStockPrice(t, db, "AAPL", 120)

		// Create HTTP request
		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/portfolio/holdings",
			map[string]string{"owner": testutil.TestOwner, "currency": "USD", "asOf": "2024-06-01"})
		w := httptest.NewRecorder()

		// Execute
		handler.Holdings(w, req)

		// Assert
		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var view model.HoldingsView
		if err := json.NewDecoder(w.Body).Decode(&view); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if view.ViewCurrency != model.CurrencyForeign {
			t.Errorf("Expected view currency USD, got '%s'", view.ViewCurrency)
		}
		if len(view.Holdings) != 1 || view.Holdings[0].Symbol != "AAPL" {
			t.Errorf("Expected a single AAPL holding, got %+v", view.Holdings)
		}
	})

	t.Run("GET /api/portfolio/holdings persists a custom spot rate", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		handler := handlers.NewPortfolioHandler(
			testutil.NewTestValuationService(t, db),
			testutil.NewTestSnapshotService(t, db),
		)

		testutil.CreateBuy(t, db, "AAPL", 10, 100, 0, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))

		// Execute with a custom rate
		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/portfolio/holdings",
			map[string]string{"owner": testutil.TestOwner, "customRate": "4.7", "asOf": "2024-06-01"})
		w := httptest.NewRecorder()
		handler.Holdings(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var view model.HoldingsView
		if err := json.NewDecoder(w.Body).Decode(&view); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if view.CurrentRate != 4.7 {
			t.Errorf("Expected current rate 4.7, got %v", view.CurrentRate)
		}

		// Execute again without the parameter: the rate sticks
		req = testutil.NewRequestWithQueryParams(http.MethodGet, "/api/portfolio/holdings",
			map[string]string{"owner": testutil.TestOwner, "asOf": "2024-06-01"})
		w = httptest.NewRecorder()
		handler.Holdings(w, req)

		// Assert
		if err := json.NewDecoder(w.Body).Decode(&view); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if view.CurrentRate != 4.7 {
			t.Errorf("Expected persisted rate 4.7, got %v", view.CurrentRate)
		}
	})
}

// TestPortfolioHandler_Snapshots tests the GET /api/portfolio/snapshots endpoint.
//
// WHY: Snapshots back the net-worth chart; the from/to range parameters must
// bound what the endpoint returns.
func TestPortfolioHandler_Snapshots(t *testing.T) {
	t.Run("GET /api/portfolio/snapshots honors the date range", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		snapshotSvc := testutil.NewTestSnapshotService(t, db)
		handler := handlers.NewPortfolioHandler(
			testutil.NewTestValuationService(t, db),
			snapshotSvc,
		)

		testutil.CreateBuy(t, db, "AAPL", 10, 100, 0, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))
		testutil.SetStockPrice(t, db, "AAPL", 110)

		if _, err := snapshotSvc.RecordSnapshot(testutil.TestOwner, time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)); err != nil {
			t.Fatalf("Failed to record snapshot: %v", err)
		}
		if _, err := snapshotSvc.RecordSnapshot(testutil.TestOwner, time.Date(2024, 6, 2, 12, 0, 0, 0, time.UTC)); err != nil {
			t.Fatalf("Failed to record snapshot: %v", err)
		}

		// Create HTTP request bounded to the second day
		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/portfolio/snapshots",
			map[string]string{"owner": testutil.TestOwner, "from": "2024-06-02", "to": "2024-06-02"})
		w := httptest.NewRecorder()

		// Execute
		handler.Snapshots(w, req)

		// Assert
		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var snapshots []model.PortfolioSnapshot
		if err := json.NewDecoder(w.Body).Decode(&snapshots); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(snapshots) != 1 {
			t.Fatalf("Expected 1 snapshot in range, got %d", len(snapshots))
		}
		if !snapshots[0].Date.Equal(time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("Expected snapshot date 2024-06-02, got %v", snapshots[0].Date)
		}
	})
}
