package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/amhaziq/Net-Worth-Tracker-Backend/internal/apperrors"
	"github.com/amhaziq/Net-Worth-Tracker-Backend/internal/model"
	"github.com/amhaziq/Net-Worth-Tracker-Backend/internal/repository"
)

// InvestmentService manages the investment event log and the manual stock
// price store. Events are append-only; corrections are made by deleting and
// re-recording.
type InvestmentService struct {
	investmentRepo *repository.InvestmentRepository
	priceRepo      *repository.PriceRepository
}

// NewInvestmentService creates a new InvestmentService with the provided repository dependencies.
func NewInvestmentService(investmentRepo *repository.InvestmentRepository, priceRepo *repository.PriceRepository) *InvestmentService {
	return &InvestmentService{investmentRepo: investmentRepo, priceRepo: priceRepo}
}

// Events returns the owner's event log in replay order.
func (s *InvestmentService) Events(ownerID string) ([]model.InvestmentEvent, error) {
	return s.investmentRepo.GetEvents(ownerID)
}

// CreateEvent appends an investment event to the log.
func (s *InvestmentService) CreateEvent(ev model.InvestmentEvent) (model.InvestmentEvent, error) {
	if ev.ID == "" {
		ev.ID = uuid.New().String()
	}
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now().UTC()
	}
	if err := s.investmentRepo.CreateEvent(ev); err != nil {
		return model.InvestmentEvent{}, err
	}
	return ev, nil
}

// DeleteEvent removes an investment event from the log.
func (s *InvestmentService) DeleteEvent(id, ownerID string) error {
	affected, err := s.investmentRepo.DeleteEvent(id, ownerID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperrors.ErrInvestmentEventNotFound
	}
	return nil
}

// Prices lists all stored stock prices.
func (s *InvestmentService) Prices() ([]model.StockPrice, error) {
	return s.priceRepo.ListPrices()
}

// SetPrice upserts the current price for a symbol.
func (s *InvestmentService) SetPrice(symbol string, price float64, asOf time.Time) error {
	return s.priceRepo.UpsertPrice(symbol, price, asOf)
}
