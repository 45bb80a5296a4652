package repository_test

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amhaziq/Net-Worth-Tracker-Backend/internal/model"
	"github.com/amhaziq/Net-Worth-Tracker-Backend/internal/repository"
	"github.com/amhaziq/Net-Worth-Tracker-Backend/internal/testutil"
)

// TestFormatTimestamp tests the stored DATETIME representation.
//
// WHY: Replay order ties break on created_at with a plain string ORDER BY,
// so the stored form has to sort lexically in chronological order. A
// variable-width fraction does not: "...00.5Z" compares greater than
// "...00.52Z" because 'Z' outranks '2'.
func TestFormatTimestamp(t *testing.T) {
	t.Run("stored strings sort lexically in chronological order", func(t *testing.T) {
		base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
		times := []time.Time{
			base.Add(500 * time.Millisecond),
			base.Add(520 * time.Millisecond),
			base.Add(time.Second),
			base.Add(time.Second + 7*time.Nanosecond),
		}

		stored := make([]string, len(times))
		for i, tm := range times {
			stored[i] = repository.FormatTimestamp(tm)
		}

		assert.True(t, sort.StringsAreSorted(stored), "stored timestamps not in lexical order: %v", stored)
	})

	t.Run("round-trips through ParseTime", func(t *testing.T) {
		tm := time.Date(2024, 3, 1, 10, 0, 0, 520000000, time.UTC)

		parsed, err := repository.ParseTime(repository.FormatTimestamp(tm))

		require.NoError(t, err)
		assert.True(t, parsed.Equal(tm))
	})

	t.Run("normalizes non-UTC times", func(t *testing.T) {
		loc := time.FixedZone("MYT", 8*3600)
		tm := time.Date(2024, 3, 1, 18, 0, 0, 0, loc)

		assert.Equal(t, "2024-03-01T10:00:00.000000000Z", repository.FormatTimestamp(tm))
	})
}

// TestGetEventsReplayOrder tests same-day tie-breaking on created_at.
//
// WHY: A sell recorded a fraction of a second after its buy must replay
// after it, or position reconstruction sees a sell against nothing.
func TestGetEventsReplayOrder(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewInvestmentRepository(db)

	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	buy := model.InvestmentEvent{
		ID:        testutil.MakeID(),
		OwnerID:   testutil.TestOwner,
		Date:      date,
		Type:      model.EventBuy,
		Symbol:    "MAYBANK",
		Market:    model.MarketMY,
		Quantity:  100,
		UnitPrice: 9,
		Currency:  model.CurrencyDomestic,
		CreatedAt: created.Add(500 * time.Millisecond),
	}
	sell := model.InvestmentEvent{
		ID:        testutil.MakeID(),
		OwnerID:   testutil.TestOwner,
		Date:      date,
		Type:      model.EventSell,
		Symbol:    "MAYBANK",
		Market:    model.MarketMY,
		Quantity:  100,
		UnitPrice: 10,
		Currency:  model.CurrencyDomestic,
		CreatedAt: created.Add(520 * time.Millisecond),
	}

	// Insert the later event first; ordering must come from the columns,
	// not insertion order.
	require.NoError(t, repo.CreateEvent(sell))
	require.NoError(t, repo.CreateEvent(buy))

	events, err := repo.GetEvents(testutil.TestOwner)
	require.NoError(t, err)

	require.Len(t, events, 2)
	assert.Equal(t, model.EventBuy, events[0].Type)
	assert.Equal(t, model.EventSell, events[1].Type)
}
