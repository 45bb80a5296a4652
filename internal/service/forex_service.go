package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/amhaziq/Net-Worth-Tracker-Backend/internal/model"
	"github.com/amhaziq/Net-Worth-Tracker-Backend/internal/repository"
)

// DefaultAverageRate is the domestic-per-foreign rate assumed before any
// exchange has been recorded.
const DefaultAverageRate = 4.5

// ForexPairSymbol is the price-store symbol whose price is read as the
// current spot rate.
const ForexPairSymbol = "USDMYR"

// ForexService derives exchange rates from recorded currency exchanges and
// the manually maintained spot rate.
type ForexService struct {
	forexRepo *repository.ForexRepository
	priceRepo *repository.PriceRepository
}

// NewForexService creates a new ForexService with the provided repository dependencies.
func NewForexService(forexRepo *repository.ForexRepository, priceRepo *repository.PriceRepository) *ForexService {
	return &ForexService{forexRepo: forexRepo, priceRepo: priceRepo}
}

// AverageRate returns the owner's volume-weighted historical exchange rate:
// the total domestic amount paid divided by the total foreign amount
// received, across every recorded exchange. With no observations (or a zero
// foreign total) it falls back to DefaultAverageRate.
func (s *ForexService) AverageRate(ownerID string) (float64, error) {
	observations, err := s.forexRepo.GetObservations(ownerID)
	if err != nil {
		return 0, err
	}
	return AverageRateOf(observations), nil
}

// AverageRateOf computes the volume-weighted average rate over a pre-loaded
// observation list. Individual per-exchange rates are ignored; only the
// amount totals matter, so large exchanges weigh more than small ones.
func AverageRateOf(observations []model.ForexObservation) float64 {
	var domestic, foreign float64
	for _, obs := range observations {
		domestic += obs.DomesticAmount
		foreign += obs.ForeignAmount
	}
	return safeDiv(domestic, foreign, DefaultAverageRate)
}

// CurrentRate returns the spot rate from the price store, falling back to the
// owner's average rate when no spot rate has been set.
func (s *ForexService) CurrentRate(ownerID string) (float64, error) {
	price, ok, err := s.priceRepo.GetPrice(ForexPairSymbol)
	if err != nil {
		return 0, err
	}
	if ok && price > 0 {
		return price, nil
	}
	return s.AverageRate(ownerID)
}

// Rates loads both valuation rates in one call.
func (s *ForexService) Rates(ownerID string) (model.ForexRates, error) {
	avg, err := s.AverageRate(ownerID)
	if err != nil {
		return model.ForexRates{}, err
	}

	current := avg
	price, ok, err := s.priceRepo.GetPrice(ForexPairSymbol)
	if err != nil {
		return model.ForexRates{}, err
	}
	if ok && price > 0 {
		current = price
	}

	return model.ForexRates{AverageRate: avg, CurrentRate: current}, nil
}

// SetCurrentRate stores the spot rate as the ForexPairSymbol price row.
func (s *ForexService) SetCurrentRate(rate float64, asOf time.Time) error {
	return s.priceRepo.UpsertPrice(ForexPairSymbol, rate, asOf)
}

// RecordObservation records a currency exchange. The foreign amount is
// derived from the domestic amount and the per-exchange rate when the caller
// leaves it zero.
func (s *ForexService) RecordObservation(obs model.ForexObservation) (model.ForexObservation, error) {
	if obs.ID == "" {
		obs.ID = uuid.New().String()
	}
	if obs.ForeignAmount == 0 && obs.Rate != 0 {
		obs.ForeignAmount = obs.DomesticAmount / obs.Rate
	}
	if obs.CreatedAt.IsZero() {
		obs.CreatedAt = time.Now().UTC()
	}
	if err := s.forexRepo.CreateObservation(obs); err != nil {
		return model.ForexObservation{}, err
	}
	return obs, nil
}

// Observations returns the owner's recorded exchanges.
func (s *ForexService) Observations(ownerID string) ([]model.ForexObservation, error) {
	return s.forexRepo.GetObservations(ownerID)
}
