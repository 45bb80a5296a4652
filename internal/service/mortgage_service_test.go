package service_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amhaziq/Net-Worth-Tracker-Backend/internal/apperrors"
	"github.com/amhaziq/Net-Worth-Tracker-Backend/internal/model"
	"github.com/amhaziq/Net-Worth-Tracker-Backend/internal/service"
	"github.com/amhaziq/Net-Worth-Tracker-Backend/internal/testutil"
)

func floatPtr(v float64) *float64 { return &v }

// TestCurrentBalance tests outstanding-principal reconstruction from the
// event log.
func TestCurrentBalance(t *testing.T) {
	m := model.Mortgage{OriginalPrincipal: 500000}

	t.Run("no events returns the original principal", func(t *testing.T) {
		assert.Equal(t, 500000.0, service.CurrentBalance(m, nil))
	})

	t.Run("latest recorded payment balance wins", func(t *testing.T) {
		events := []model.MortgageEvent{
			{Type: model.MortgageEventPayment, Date: day(2024, 2, 1), Value: 2000, BalanceAfter: floatPtr(498000)},
			{Type: model.MortgageEventPayment, Date: day(2024, 3, 1), Value: 2000, BalanceAfter: floatPtr(496000)},
		}
		assert.Equal(t, 496000.0, service.CurrentBalance(m, events))
	})

	t.Run("payments without a recorded balance are skipped", func(t *testing.T) {
		events := []model.MortgageEvent{
			{Type: model.MortgageEventPayment, Date: day(2024, 2, 1), Value: 2000, BalanceAfter: floatPtr(498000)},
			{Type: model.MortgageEventPayment, Date: day(2024, 3, 1), Value: 2000},
			{Type: model.MortgageEventRateChange, Date: day(2024, 4, 1), Value: 4.5},
		}
		assert.Equal(t, 498000.0, service.CurrentBalance(m, events))
	})
}

// TestGenerateSchedule tests the hybrid history/projection schedule.
//
// WHY: The schedule mixes recorded reality with forward projection; the
// boundary between the two, the annuity arithmetic, and the running MRTA
// coverage all have to line up or the exposure numbers drift.
func TestGenerateSchedule(t *testing.T) {
	t.Run("zero principal terminates at the opening row", func(t *testing.T) {
		m := model.Mortgage{
			StartDate:         day(2024, 1, 15),
			OriginalPrincipal: 0,
			TermYears:         30,
		}

		schedule := service.GenerateSchedule(m, nil, day(2024, 6, 1))

		require.Len(t, schedule, 1)
		assert.Equal(t, 0, schedule[0].Period)
		assert.Equal(t, 0.0, schedule[0].Balance)
	})

	t.Run("projects the standard annuity payment", func(t *testing.T) {
		m := model.Mortgage{
			StartDate:         day(2024, 1, 15),
			OriginalPrincipal: 500000,
			TermYears:         30,
		}
		events := []model.MortgageEvent{
			{Type: model.MortgageEventRateChange, Date: day(2024, 1, 15), Value: 4},
		}

		schedule := service.GenerateSchedule(m, events, day(2024, 1, 31))

		require.Greater(t, len(schedule), 2)

		// Period 0 is the opening history row at full principal.
		assert.Equal(t, model.PeriodHistory, schedule[0].Type)
		assert.Equal(t, 500000.0, schedule[0].Balance)

		// Period 1 is the first projected month: 500k over 30 years at 4%.
		first := schedule[1]
		assert.Equal(t, model.PeriodProjected, first.Type)
		assert.Equal(t, 4.0, first.Rate)
		assert.InDelta(t, 2387.08, first.Payment, 0.5)
		assert.InDelta(t, 1666.67, first.InterestPaid, 0.5)
		assert.InDelta(t, first.Payment-first.InterestPaid, first.PrincipalPaid, 0.01)
		assert.InDelta(t, 500000-first.PrincipalPaid, first.Balance, 0.01)
	})

	t.Run("amortizes to zero by the end of the term", func(t *testing.T) {
		m := model.Mortgage{
			StartDate:         day(2024, 1, 15),
			OriginalPrincipal: 500000,
			TermYears:         30,
		}
		events := []model.MortgageEvent{
			{Type: model.MortgageEventRateChange, Date: day(2024, 1, 15), Value: 4},
		}

		schedule := service.GenerateSchedule(m, events, day(2024, 1, 31))

		last := schedule[len(schedule)-1]
		assert.Equal(t, 0.0, last.Balance)
		assert.LessOrEqual(t, len(schedule), 30*12+1)
	})

	t.Run("history rows resync to recorded payment balances", func(t *testing.T) {
		m := model.Mortgage{
			StartDate:         day(2024, 1, 10),
			OriginalPrincipal: 300000,
			TermYears:         30,
		}
		events := []model.MortgageEvent{
			{Type: model.MortgageEventRateChange, Date: day(2024, 1, 10), Value: 3},
			{Type: model.MortgageEventPayment, Date: day(2024, 3, 5), Value: 1500, BalanceAfter: floatPtr(298800)},
		}

		schedule := service.GenerateSchedule(m, events, day(2024, 6, 30))

		// Months before the payment keep the opening balance.
		assert.Equal(t, model.PeriodHistory, schedule[1].Type)
		assert.Equal(t, 0.0, schedule[1].Payment)
		assert.Equal(t, 300000.0, schedule[1].Balance)

		// The March row picks up the payment recorded in that month.
		march := schedule[2]
		assert.Equal(t, model.PeriodHistory, march.Type)
		assert.Equal(t, 1500.0, march.Payment)
		assert.Equal(t, 298800.0, march.Balance)

		// Later history months carry the resynced balance forward.
		assert.Equal(t, 298800.0, schedule[4].Balance)

		// Projection resumes from the resynced balance.
		july := schedule[6]
		assert.Equal(t, model.PeriodProjected, july.Type)
		assert.Less(t, july.Balance, 298800.0)
	})

	t.Run("payments dated before the start date resync the opening balance", func(t *testing.T) {
		m := model.Mortgage{
			StartDate:         day(2024, 2, 15),
			OriginalPrincipal: 500000,
			TermYears:         30,
		}
		events := []model.MortgageEvent{
			{Type: model.MortgageEventPayment, Date: day(2024, 1, 20), Value: 400000, BalanceAfter: floatPtr(100000)},
		}

		schedule := service.GenerateSchedule(m, events, day(2024, 2, 28))

		// The lump sum predates period 0, so the opening row already
		// carries its recorded balance and agrees with CurrentBalance.
		require.NotEmpty(t, schedule)
		assert.Equal(t, 100000.0, schedule[0].Balance)
		assert.Equal(t, 100000.0, service.CurrentBalance(m, events))
	})

	t.Run("rate changes apply from their effective month", func(t *testing.T) {
		m := model.Mortgage{
			StartDate:         day(2024, 1, 15),
			OriginalPrincipal: 500000,
			TermYears:         30,
		}
		events := []model.MortgageEvent{
			{Type: model.MortgageEventRateChange, Date: day(2024, 1, 15), Value: 4},
			{Type: model.MortgageEventRateChange, Date: day(2024, 4, 1), Value: 5},
		}

		schedule := service.GenerateSchedule(m, events, day(2024, 1, 31))

		assert.Equal(t, 4.0, schedule[1].Rate)
		assert.Equal(t, 4.0, schedule[2].Rate)
		// Period 3 falls on 2024-04-15, after the reset.
		assert.Equal(t, 5.0, schedule[3].Rate)
		assert.Greater(t, schedule[3].InterestPaid, schedule[2].InterestPaid)
	})

	t.Run("MRTA coverage amortizes on its own fixed schedule", func(t *testing.T) {
		m := model.Mortgage{
			StartDate:          day(2024, 1, 15),
			OriginalPrincipal:  500000,
			TermYears:          30,
			HasMRTA:            true,
			MRTAOriginalAmount: 400000,
			MRTARate:           3,
		}
		events := []model.MortgageEvent{
			{Type: model.MortgageEventRateChange, Date: day(2024, 1, 15), Value: 4},
		}

		schedule := service.GenerateSchedule(m, events, day(2024, 1, 31))

		assert.Equal(t, 400000.0, schedule[0].MRTACoverage)
		assert.Equal(t, 100000.0, schedule[0].NetExposure)
		assert.Less(t, schedule[1].MRTACoverage, 400000.0)
		assert.GreaterOrEqual(t, schedule[1].MRTACoverage, 0.0)

		for _, row := range schedule {
			want := row.Balance - row.MRTACoverage
			if want < 0 {
				want = 0
			}
			assert.InDelta(t, want, row.NetExposure, 0.01)
		}
	})
}

// TestMortgageService_Lifecycle tests the persisted mortgage operations.
func TestMortgageService_Lifecycle(t *testing.T) {
	t.Run("create zeroes MRTA fields when coverage is absent", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestMortgageService(t, db)

		created, err := svc.CreateMortgage(model.Mortgage{
			OwnerID:            testutil.TestOwner,
			Name:               "Home Loan",
			StartDate:          day(2024, 1, 15),
			OriginalPrincipal:  500000,
			TermYears:          30,
			HasMRTA:            false,
			MRTAOriginalAmount: 400000,
			MRTARate:           3,
		})
		require.NoError(t, err)

		assert.Equal(t, 0.0, created.MRTAOriginalAmount)
		assert.Equal(t, 0.0, created.MRTARate)
	})

	t.Run("payments fix the post-payment balance at recording time", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestMortgageService(t, db)

		m := testutil.NewMortgage().WithPrincipal(500000).Build(t, db)

		first, err := svc.AddPayment(m.ID, testutil.TestOwner, 2000, day(2024, 2, 1))
		require.NoError(t, err)
		require.NotNil(t, first.BalanceAfter)
		assert.Equal(t, 498000.0, *first.BalanceAfter)

		second, err := svc.AddPayment(m.ID, testutil.TestOwner, 1500, day(2024, 3, 1))
		require.NoError(t, err)
		require.NotNil(t, second.BalanceAfter)
		assert.Equal(t, 496500.0, *second.BalanceAfter)
	})

	t.Run("detail assembles balance, rate, and schedule", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestMortgageService(t, db)

		m := testutil.NewMortgage().
			WithStartDate(day(2024, 1, 15)).
			WithPrincipal(500000).
			WithMRTA(400000, 3).
			Build(t, db)

		_, err := svc.AddRateChange(m.ID, testutil.TestOwner, 4, day(2024, 1, 15))
		require.NoError(t, err)
		_, err = svc.AddPayment(m.ID, testutil.TestOwner, 2387, day(2024, 2, 1))
		require.NoError(t, err)

		detail, err := svc.Detail(m.ID, testutil.TestOwner, day(2024, 2, 15))
		require.NoError(t, err)

		assert.Equal(t, 497613.0, detail.CurrentBalance)
		assert.Equal(t, 4.0, detail.CurrentRate)
		assert.Len(t, detail.Events, 2)
		require.NotEmpty(t, detail.Schedule)
		assert.Greater(t, detail.CurrentMRTA, 0.0)
		assert.InDelta(t, detail.CurrentBalance-detail.CurrentMRTA, detail.NetExposure, 0.01)
	})

	t.Run("deleting an unknown mortgage returns not found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestMortgageService(t, db)

		err := svc.DeleteMortgage(testutil.MakeID(), testutil.TestOwner)
		assert.True(t, errors.Is(err, apperrors.ErrMortgageNotFound))
	})

	t.Run("delete removes the mortgage and its events", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestMortgageService(t, db)

		m := testutil.NewMortgage().Build(t, db)
		_, err := svc.AddPayment(m.ID, testutil.TestOwner, 2000, day(2024, 2, 1))
		require.NoError(t, err)

		require.NoError(t, svc.DeleteMortgage(m.ID, testutil.TestOwner))

		mortgages, err := svc.Mortgages(testutil.TestOwner)
		require.NoError(t, err)
		assert.Empty(t, mortgages)
	})
}
