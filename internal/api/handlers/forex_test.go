package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/amhaziq/Net-Worth-Tracker-Backend/internal/api/handlers"
	"github.com/amhaziq/Net-Worth-Tracker-Backend/internal/model"
	"github.com/amhaziq/Net-Worth-Tracker-Backend/internal/testutil"
)

// TestForexHandler_Observations tests the currency exchange record endpoints.
//
// WHY: Exchange records feed the weighted average rate every valuation view
// converts through. Recording must derive the foreign amount when omitted.
func TestForexHandler_Observations(t *testing.T) {
	t.Run("POST /api/forex derives the foreign amount", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		handler := handlers.NewForexHandler(testutil.NewTestForexService(t, db))

		body := `{"date":"2024-01-10","domesticAmount":900,"rate":4.5}`
		req := httptest.NewRequest(http.MethodPost, "/api/forex?owner="+testutil.TestOwner, strings.NewReader(body))
		w := httptest.NewRecorder()

		// Execute
		handler.CreateObservation(w, req)

		// Assert
		if w.Code != http.StatusCreated {
			t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
		}

		var obs model.ForexObservation
		if err := json.NewDecoder(w.Body).Decode(&obs); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if obs.ID == "" {
			t.Error("Expected a generated observation ID")
		}
		if obs.ForeignAmount != 200 {
			t.Errorf("Expected derived foreign amount 200, got %v", obs.ForeignAmount)
		}
	})

	t.Run("GET /api/forex lists the owner's observations", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		handler := handlers.NewForexHandler(testutil.NewTestForexService(t, db))

		testutil.CreateForexObservation(t, db, 450, 4.5, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC))

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/forex",
			map[string]string{"owner": testutil.TestOwner})
		w := httptest.NewRecorder()

		// Execute
		handler.ListObservations(w, req)

		// Assert
		if w.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d", w.Code)
		}

		var observations []model.ForexObservation
		if err := json.NewDecoder(w.Body).Decode(&observations); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(observations) != 1 {
			t.Errorf("Expected 1 observation, got %d", len(observations))
		}
	})
}

// TestForexHandler_Rates tests the GET and PUT /api/forex/rates endpoints.
//
// WHY: The average rate values cost and the spot rate values market prices;
// the override endpoint must move only the spot rate.
func TestForexHandler_Rates(t *testing.T) {
	t.Run("GET /api/forex/rates falls back to the default rate", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		handler := handlers.NewForexHandler(testutil.NewTestForexService(t, db))

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/forex/rates",
			map[string]string{"owner": testutil.TestOwner})
		w := httptest.NewRecorder()

		// Execute
		handler.Rates(w, req)

		// Assert
		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var rates model.ForexRates
		if err := json.NewDecoder(w.Body).Decode(&rates); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if rates.AverageRate != 4.5 || rates.CurrentRate != 4.5 {
			t.Errorf("Expected default rates 4.5/4.5, got %v/%v", rates.AverageRate, rates.CurrentRate)
		}
	})

	t.Run("PUT /api/forex/rates overrides the spot rate only", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		handler := handlers.NewForexHandler(testutil.NewTestForexService(t, db))

		testutil.CreateForexObservation(t, db, 450, 4.5, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC))

		// Execute override
		req := httptest.NewRequest(http.MethodPut, "/api/forex/rates", strings.NewReader(`{"rate":4.7}`))
		w := httptest.NewRecorder()
		handler.SetSpotRate(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		// Execute read-back
		req = testutil.NewRequestWithQueryParams(http.MethodGet, "/api/forex/rates",
			map[string]string{"owner": testutil.TestOwner})
		w = httptest.NewRecorder()
		handler.Rates(w, req)

		// Assert
		var rates model.ForexRates
		if err := json.NewDecoder(w.Body).Decode(&rates); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if rates.CurrentRate != 4.7 {
			t.Errorf("Expected spot rate 4.7, got %v", rates.CurrentRate)
		}
		if rates.AverageRate != 4.5 {
			t.Errorf("Expected average rate to stay 4.5, got %v", rates.AverageRate)
		}
	})

	t.Run("PUT /api/forex/rates returns 400 for a non-positive rate", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		handler := handlers.NewForexHandler(testutil.NewTestForexService(t, db))

		req := httptest.NewRequest(http.MethodPut, "/api/forex/rates", strings.NewReader(`{"rate":0}`))
		w := httptest.NewRecorder()

		// Execute
		handler.SetSpotRate(w, req)

		// Assert
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})
}
