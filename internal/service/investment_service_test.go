package service_test

import (
	"errors"
	"testing"

	"github.com/amhaziq/Net-Worth-Tracker-Backend/internal/apperrors"
	"github.com/amhaziq/Net-Worth-Tracker-Backend/internal/model"
	"github.com/amhaziq/Net-Worth-Tracker-Backend/internal/testutil"
)

// TestInvestmentService_Events tests event creation and retrieval order.
func TestInvestmentService_Events(t *testing.T) {
	t.Run("events come back in replay order", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestInvestmentService(t, db)

		// Inserted out of date order on purpose.
		testutil.CreateBuy(t, db, "AAPL", 10, 100, 0, day(2024, 3, 1))
		testutil.CreateBuy(t, db, "AAPL", 10, 90, 0, day(2024, 1, 2))

		events, err := svc.Events(testutil.TestOwner)
		if err != nil {
			t.Fatalf("Events() returned unexpected error: %v", err)
		}

		if len(events) != 2 {
			t.Fatalf("Expected 2 events, got %d", len(events))
		}
		if !events[0].Date.Before(events[1].Date) {
			t.Errorf("Expected date-ascending order, got %v then %v", events[0].Date, events[1].Date)
		}
	})

	t.Run("create fills ID and creation time", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestInvestmentService(t, db)

		created, err := svc.CreateEvent(model.InvestmentEvent{
			OwnerID:   testutil.TestOwner,
			Date:      day(2024, 1, 2),
			Type:      model.EventBuy,
			Symbol:    "AAPL",
			Market:    model.MarketUS,
			Currency:  model.CurrencyForeign,
			Quantity:  10,
			UnitPrice: 100,
		})
		if err != nil {
			t.Fatalf("CreateEvent() returned unexpected error: %v", err)
		}

		if created.ID == "" {
			t.Error("Expected a generated ID")
		}
		if created.CreatedAt.IsZero() {
			t.Error("Expected a creation timestamp")
		}
	})

	t.Run("delete is scoped to the owner", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestInvestmentService(t, db)

		ev := testutil.CreateBuy(t, db, "AAPL", 10, 100, 0, day(2024, 1, 2))

		if err := svc.DeleteEvent(ev.ID, "someone-else"); !errors.Is(err, apperrors.ErrInvestmentEventNotFound) {
			t.Errorf("Expected ErrInvestmentEventNotFound for foreign owner, got %v", err)
		}

		if err := svc.DeleteEvent(ev.ID, testutil.TestOwner); err != nil {
			t.Fatalf("DeleteEvent() returned unexpected error: %v", err)
		}

		events, err := svc.Events(testutil.TestOwner)
		if err != nil {
			t.Fatalf("Events() returned unexpected error: %v", err)
		}
		if len(events) != 0 {
			t.Errorf("Expected no events after delete, got %d", len(events))
		}
	})
}

// TestInvestmentService_Prices tests the manual price store.
func TestInvestmentService_Prices(t *testing.T) {
	t.Run("set then list round-trips the price", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestInvestmentService(t, db)

		if err := svc.SetPrice("AAPL", 110, day(2024, 6, 1)); err != nil {
			t.Fatalf("SetPrice() returned unexpected error: %v", err)
		}

		prices, err := svc.Prices()
		if err != nil {
			t.Fatalf("Prices() returned unexpected error: %v", err)
		}
		if len(prices) != 1 {
			t.Fatalf("Expected 1 price, got %d", len(prices))
		}
		if prices[0].Symbol != "AAPL" || prices[0].Price != 110 {
			t.Errorf("Unexpected price row: %+v", prices[0])
		}
	})

	t.Run("setting a price again overwrites it", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestInvestmentService(t, db)

		if err := svc.SetPrice("AAPL", 110, day(2024, 6, 1)); err != nil {
			t.Fatalf("SetPrice() returned unexpected error: %v", err)
		}
		if err := svc.SetPrice("AAPL", 120, day(2024, 6, 2)); err != nil {
			t.Fatalf("SetPrice() returned unexpected error: %v", err)
		}

		prices, err := svc.Prices()
		if err != nil {
			t.Fatalf("Prices() returned unexpected error: %v", err)
		}
		if len(prices) != 1 {
			t.Fatalf("Expected 1 price after overwrite, got %d", len(prices))
		}
		if prices[0].Price != 120 {
			t.Errorf("Expected overwritten price 120, got %v", prices[0].Price)
		}
	})
}
