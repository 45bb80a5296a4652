package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/amhaziq/Net-Worth-Tracker-Backend/internal/apperrors"
	"github.com/amhaziq/Net-Worth-Tracker-Backend/internal/model"
	"github.com/amhaziq/Net-Worth-Tracker-Backend/internal/repository"
)

// MortgageService reconstructs mortgage balances from recorded events and
// projects forward amortization schedules.
//
// The schedule is a hybrid: months up to the as-of date replay recorded
// payments (which may deviate from textbook amortization due to partial
// payments or rate resets), while months after it are projected under
// standard fixed-payment amortization at the last known rate.
type MortgageService struct {
	mortgageRepo *repository.MortgageRepository
}

// NewMortgageService creates a new MortgageService with the provided repository dependency.
func NewMortgageService(mortgageRepo *repository.MortgageRepository) *MortgageService {
	return &MortgageService{mortgageRepo: mortgageRepo}
}

// CurrentBalance returns the outstanding principal: the balance recorded on
// the latest payment event, or the original principal when no payment has
// been recorded. Payment events without a recorded balance are skipped.
// Events must be in date order.
func CurrentBalance(m model.Mortgage, events []model.MortgageEvent) float64 {
	balance := m.OriginalPrincipal
	for _, ev := range events {
		if ev.Type == model.MortgageEventPayment && ev.BalanceAfter != nil {
			balance = *ev.BalanceAfter
		}
	}
	return balance
}

// CurrentRate returns the rate set by the latest rate-change event, or 0.
func CurrentRate(events []model.MortgageEvent) float64 {
	rate := 0.0
	for _, ev := range events {
		if ev.Type == model.MortgageEventRateChange {
			rate = ev.Value
		}
	}
	return rate
}

// GenerateSchedule produces the month-by-month schedule: termYears*12 + 1
// periods from the start date (period 0 is the opening row), classified as
// History up to asOf and Projected after.
//
// History rows take their payment and balance from the payment event recorded
// in the same calendar month, resyncing the running balance; months with no
// recorded payment repeat the last known balance. Projected rows amortize the
// running balance with the annuity payment over the remaining term, picking
// up rate changes as their dates are reached. The MRTA coverage runs on its
// own fixed schedule computed once at generation time. Generation stops as
// soon as the balance reaches zero.
//
// Events must be in date order; they are consumed once via advancing cursors,
// never re-scanned.
func GenerateSchedule(m model.Mortgage, events []model.MortgageEvent, asOf time.Time) []model.ScheduleRow {
	totalMonths := m.TermYears * 12

	currBalance := m.OriginalPrincipal
	currRate := 0.0
	for _, ev := range events {
		if ev.Type == model.MortgageEventRateChange {
			currRate = ev.Value
			break
		}
	}

	mrtaBalance := 0.0
	mrtaRate := 0.0
	mrtaPMT := 0.0
	if m.HasMRTA {
		mrtaBalance = m.MRTAOriginalAmount
		mrtaRate = m.MRTARate
		mrtaPMT = annuityPayment(mrtaBalance, mrtaRate, totalMonths)
	}

	schedule := make([]model.ScheduleRow, 0, totalMonths+1)
	eventCursor := 0
	paymentCursor := 0

	for i := 0; i <= totalMonths; i++ {
		date := addMonths(m.StartDate, i)

		// Consume events dated at or before this period. Rate changes update
		// the projection rate; payments are applied through the calendar-month
		// match below.
		for eventCursor < len(events) && !events[eventCursor].Date.After(date) {
			if events[eventCursor].Type == model.MortgageEventRateChange {
				currRate = events[eventCursor].Value
			}
			eventCursor++
		}

		if i > 0 && m.HasMRTA {
			interest := mrtaBalance * (mrtaRate / 100 / 12)
			mrtaBalance -= mrtaPMT - interest
			if mrtaBalance < 0 {
				mrtaBalance = 0
			}
		}

		row := model.ScheduleRow{
			Period:       i,
			Date:         date,
			Rate:         currRate,
			MRTACoverage: round(mrtaBalance),
		}

		if !date.After(asOf) {
			row.Type = model.PeriodHistory
			row.Payment = 0
			row.Balance = currBalance

			// Match the payment recorded in this calendar month, if any.
			// Payments from earlier months (including any dated before the
			// start date) still move the running balance as they are consumed.
			for paymentCursor < len(events) {
				ev := events[paymentCursor]
				if ev.Type != model.MortgageEventPayment ||
					ev.Date.Year() < date.Year() ||
					(ev.Date.Year() == date.Year() && ev.Date.Month() < date.Month()) {
					if ev.Type == model.MortgageEventPayment && ev.BalanceAfter != nil {
						currBalance = *ev.BalanceAfter
						row.Balance = currBalance
					}
					paymentCursor++
					continue
				}
				if ev.Date.Year() == date.Year() && ev.Date.Month() == date.Month() {
					row.Payment = ev.Value
					if ev.BalanceAfter != nil {
						currBalance = *ev.BalanceAfter
					}
					row.Balance = currBalance
					paymentCursor++
				}
				break
			}
		} else {
			row.Type = model.PeriodProjected
			remaining := totalMonths - i + 1
			if remaining <= 0 {
				break
			}

			pmt := annuityPayment(currBalance, currRate, remaining)
			interest := currBalance * (currRate / 100 / 12)
			principal := pmt - interest
			currBalance -= principal
			if currBalance < 0 {
				currBalance = 0
			}

			row.Payment = round(pmt)
			row.InterestPaid = round(interest)
			row.PrincipalPaid = round(principal)
			row.Balance = currBalance
		}

		row.Balance = round(row.Balance)
		exposure := row.Balance - row.MRTACoverage
		if exposure < 0 {
			exposure = 0
		}
		row.NetExposure = round(exposure)

		schedule = append(schedule, row)
		if currBalance <= 0 {
			break
		}
	}

	return schedule
}

// Mortgages lists the owner's mortgages.
func (s *MortgageService) Mortgages(ownerID string) ([]model.Mortgage, error) {
	return s.mortgageRepo.GetMortgages(ownerID)
}

// CreateMortgage creates a mortgage.
func (s *MortgageService) CreateMortgage(m model.Mortgage) (model.Mortgage, error) {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	if !m.HasMRTA {
		m.MRTAOriginalAmount = 0
		m.MRTARate = 0
	}
	if err := s.mortgageRepo.CreateMortgage(m); err != nil {
		return model.Mortgage{}, err
	}
	return m, nil
}

// DeleteMortgage removes a mortgage and its events.
func (s *MortgageService) DeleteMortgage(id, ownerID string) error {
	affected, err := s.mortgageRepo.DeleteMortgage(id, ownerID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperrors.ErrMortgageNotFound
	}
	return nil
}

// AddPayment records a payment. The post-payment principal balance is fixed
// at recording time as the current balance minus the amount, and never
// recomputed afterwards.
func (s *MortgageService) AddPayment(mortgageID, ownerID string, amount float64, date time.Time) (model.MortgageEvent, error) {
	m, err := s.mortgageRepo.GetMortgage(mortgageID, ownerID)
	if err != nil {
		return model.MortgageEvent{}, err
	}
	events, err := s.mortgageRepo.GetEvents(mortgageID)
	if err != nil {
		return model.MortgageEvent{}, err
	}

	balanceAfter := CurrentBalance(m, events) - amount
	ev := model.MortgageEvent{
		ID:           uuid.New().String(),
		MortgageID:   mortgageID,
		Date:         date,
		Type:         model.MortgageEventPayment,
		Value:        amount,
		BalanceAfter: &balanceAfter,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.mortgageRepo.CreateEvent(ev); err != nil {
		return model.MortgageEvent{}, err
	}
	return ev, nil
}

// AddRateChange records a rate change effective from the given date.
func (s *MortgageService) AddRateChange(mortgageID, ownerID string, rate float64, date time.Time) (model.MortgageEvent, error) {
	if _, err := s.mortgageRepo.GetMortgage(mortgageID, ownerID); err != nil {
		return model.MortgageEvent{}, err
	}

	ev := model.MortgageEvent{
		ID:         uuid.New().String(),
		MortgageID: mortgageID,
		Date:       date,
		Type:       model.MortgageEventRateChange,
		Value:      rate,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.mortgageRepo.CreateEvent(ev); err != nil {
		return model.MortgageEvent{}, err
	}
	return ev, nil
}

// Detail assembles the full state of one mortgage: current snapshot values,
// the raw event log, and the generated schedule.
func (s *MortgageService) Detail(id, ownerID string, asOf time.Time) (model.MortgageDetail, error) {
	m, err := s.mortgageRepo.GetMortgage(id, ownerID)
	if err != nil {
		return model.MortgageDetail{}, err
	}
	events, err := s.mortgageRepo.GetEvents(id)
	if err != nil {
		return model.MortgageDetail{}, err
	}

	schedule := GenerateSchedule(m, events, asOf)
	balance := CurrentBalance(m, events)

	// Current MRTA coverage is read off the schedule: the first row after
	// asOf, or the final row when the schedule is fully in the past.
	currentMRTA := 0.0
	if m.HasMRTA && len(schedule) > 0 {
		currentMRTA = schedule[len(schedule)-1].MRTACoverage
		for _, row := range schedule {
			if row.Date.After(asOf) {
				currentMRTA = row.MRTACoverage
				break
			}
		}
	}

	exposure := balance - currentMRTA
	if exposure < 0 {
		exposure = 0
	}

	return model.MortgageDetail{
		Mortgage:       m,
		CurrentBalance: balance,
		CurrentRate:    CurrentRate(events),
		CurrentMRTA:    currentMRTA,
		NetExposure:    round(exposure),
		Events:         events,
		Schedule:       schedule,
	}, nil
}
