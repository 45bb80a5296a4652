package service

import (
	"github.com/amhaziq/Net-Worth-Tracker-Backend/internal/model"
	"github.com/amhaziq/Net-Worth-Tracker-Backend/internal/repository"
)

// PositionService replays investment events into per-holding positions.
// Positions are never persisted; every read rebuilds them from the event log.
type PositionService struct {
	investmentRepo *repository.InvestmentRepository
}

// NewPositionService creates a new PositionService with the provided repository dependency.
func NewPositionService(investmentRepo *repository.InvestmentRepository) *PositionService {
	return &PositionService{investmentRepo: investmentRepo}
}

// LoadPositions reads the owner's full event log and replays it. byBrokerage
// controls the grouping key: true keeps each brokerage's lot separate (the
// holdings page), false merges across brokerages (the overview).
func (s *PositionService) LoadPositions(ownerID string, byBrokerage bool) (map[model.HoldingKey]*model.Position, error) {
	events, err := s.investmentRepo.GetEvents(ownerID)
	if err != nil {
		return nil, err
	}
	return BuildPositions(events, byBrokerage), nil
}

// BuildPositions replays an event list into positions. Events must already be
// ordered by date with ties in insertion order; replay order determines both
// the first-buy date and the average-cost arithmetic.
//
// Replay rules per event type:
//   - Buy adds quantity and cost (price times quantity plus fees).
//   - Sell removes cost proportionally at the running average cost per unit
//     and realizes the difference against net proceeds. A sell against an
//     empty position leaves quantity and cost untouched.
//   - Bonus and Split add quantity at zero cost.
//   - Dividend adds UnitPrice to the dividend total (UnitPrice is the total
//     cash received for dividend events).
func BuildPositions(events []model.InvestmentEvent, byBrokerage bool) map[model.HoldingKey]*model.Position {
	positions := make(map[model.HoldingKey]*model.Position)

	for _, ev := range events {
		key := model.HoldingKey{Symbol: ev.Symbol}
		if byBrokerage {
			key.Brokerage = ev.Brokerage
		}

		pos, ok := positions[key]
		if !ok {
			pos = &model.Position{Market: ev.Market, Currency: ev.Currency}
			positions[key] = pos
		}

		switch ev.Type {
		case model.EventBuy:
			cost := ev.Quantity*ev.UnitPrice + ev.Fees
			pos.Quantity += ev.Quantity
			pos.CostBasis += cost
			pos.TotalBought += ev.Quantity
			pos.BuyCost += cost
			if pos.FirstBuyDate.IsZero() {
				pos.FirstBuyDate = ev.Date
			}

		case model.EventSell:
			proceeds := ev.Quantity*ev.UnitPrice - ev.Fees
			if pos.Quantity > 0 {
				avgCost := pos.CostBasis / pos.Quantity
				soldQty := ev.Quantity
				if soldQty > pos.Quantity {
					soldQty = pos.Quantity
				}
				costRemoved := avgCost * soldQty
				pos.RealizedPnL += proceeds - costRemoved
				pos.CostBasis -= costRemoved
				pos.Quantity -= ev.Quantity
				if pos.Quantity < 0 {
					pos.Quantity = 0
				}
			} else {
				// Nothing held; realize the full proceeds without touching
				// quantity or cost.
				pos.RealizedPnL += proceeds
			}
			pos.TotalSold += ev.Quantity
			pos.SellProceeds += proceeds
			pos.LastSellDate = ev.Date

		case model.EventBonus, model.EventSplit:
			pos.Quantity += ev.Quantity
			pos.TotalBought += ev.Quantity

		case model.EventDividend:
			pos.TotalDividends += ev.UnitPrice
		}
	}

	for _, pos := range positions {
		pos.AvgBuyPrice = safeDiv(pos.BuyCost, pos.TotalBought, 0)
		pos.AvgSellPrice = safeDiv(pos.SellProceeds, pos.TotalSold, 0)
	}

	return positions
}
