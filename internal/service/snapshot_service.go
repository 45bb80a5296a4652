package service

import (
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/amhaziq/Net-Worth-Tracker-Backend/internal/model"
	"github.com/amhaziq/Net-Worth-Tracker-Backend/internal/repository"
)

// snapshotWorkers caps the per-owner fan-out of the daily snapshot job.
const snapshotWorkers = 4

// SnapshotService records daily portfolio snapshots per owner: invested
// capital and spot-rate market value, one row per calendar day. Re-running a
// day replaces that day's row.
type SnapshotService struct {
	snapshotRepo   *repository.SnapshotRepository
	investmentRepo *repository.InvestmentRepository
	priceRepo      *repository.PriceRepository
	forexService   *ForexService
	logger         zerolog.Logger
}

// NewSnapshotService creates a new SnapshotService with the provided dependencies.
func NewSnapshotService(
	snapshotRepo *repository.SnapshotRepository,
	investmentRepo *repository.InvestmentRepository,
	priceRepo *repository.PriceRepository,
	forexService *ForexService,
	logger zerolog.Logger,
) *SnapshotService {
	return &SnapshotService{
		snapshotRepo:   snapshotRepo,
		investmentRepo: investmentRepo,
		priceRepo:      priceRepo,
		forexService:   forexService,
		logger:         logger,
	}
}

// RecordSnapshot computes and stores one owner's snapshot for the given day.
func (s *SnapshotService) RecordSnapshot(ownerID string, asOf time.Time) (model.PortfolioSnapshot, error) {
	events, err := s.investmentRepo.GetEvents(ownerID)
	if err != nil {
		return model.PortfolioSnapshot{}, err
	}
	prices, err := s.priceRepo.GetPrices()
	if err != nil {
		return model.PortfolioSnapshot{}, err
	}
	rates, err := s.forexService.Rates(ownerID)
	if err != nil {
		return model.PortfolioSnapshot{}, err
	}

	snapshot := model.PortfolioSnapshot{
		OwnerID:     ownerID,
		Date:        asOf.UTC().Truncate(24 * time.Hour),
		Invested:    round(InvestedCapital(events, rates.AverageRate)),
		MarketValue: PortfolioMarketValue(events, prices, rates.CurrentRate).Total,
	}

	if err := s.snapshotRepo.UpsertSnapshot(snapshot); err != nil {
		return model.PortfolioSnapshot{}, err
	}
	return snapshot, nil
}

// RecordDailySnapshots runs the snapshot for every owner with recorded
// events. Owners are processed concurrently; one owner's failure doesn't
// stop the others, but the first error is returned after all finish.
func (s *SnapshotService) RecordDailySnapshots(asOf time.Time) error {
	owners, err := s.investmentRepo.DistinctOwners()
	if err != nil {
		return err
	}

	var g errgroup.Group
	g.SetLimit(snapshotWorkers)
	for _, ownerID := range owners {
		ownerID := ownerID
		g.Go(func() error {
			snap, err := s.RecordSnapshot(ownerID, asOf)
			if err != nil {
				s.logger.Error().Err(err).Str("owner", ownerID).Msg("snapshot failed")
				return err
			}
			s.logger.Info().
				Str("owner", ownerID).
				Float64("invested", snap.Invested).
				Float64("market_value", snap.MarketValue).
				Msg("snapshot recorded")
			return nil
		})
	}
	return g.Wait()
}

// Snapshots returns the owner's snapshots in date order, optionally bounded
// by from/to dates in "2006-01-02" form.
func (s *SnapshotService) Snapshots(ownerID, from, to string) ([]model.PortfolioSnapshot, error) {
	return s.snapshotRepo.GetSnapshots(ownerID, from, to)
}
