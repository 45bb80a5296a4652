package service

import (
	"fmt"
	"math"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/amhaziq/Net-Worth-Tracker-Backend/internal/model"
	"github.com/amhaziq/Net-Worth-Tracker-Backend/internal/repository"
)

// ValuationService assembles the cross-subsystem views: the balance sheet,
// the cash-flow summary, and the portfolio overview and holdings pages. It
// loads each subsystem's data concurrently and runs the pure folds over the
// results.
type ValuationService struct {
	investmentRepo  *repository.InvestmentRepository
	priceRepo       *repository.PriceRepository
	mortgageRepo    *repository.MortgageRepository
	balanceRepo     *repository.BalanceRepository
	transactionRepo *repository.TransactionRepository
	forexService    *ForexService
}

// NewValuationService creates a new ValuationService with the provided dependencies.
func NewValuationService(
	investmentRepo *repository.InvestmentRepository,
	priceRepo *repository.PriceRepository,
	mortgageRepo *repository.MortgageRepository,
	balanceRepo *repository.BalanceRepository,
	transactionRepo *repository.TransactionRepository,
	forexService *ForexService,
) *ValuationService {
	return &ValuationService{
		investmentRepo:  investmentRepo,
		priceRepo:       priceRepo,
		mortgageRepo:    mortgageRepo,
		balanceRepo:     balanceRepo,
		transactionRepo: transactionRepo,
		forexService:    forexService,
	}
}

// PortfolioMarketValue computes the portfolio's market value in the domestic
// currency with a per-market breakdown, from pre-loaded inputs. Only open
// positions count; foreign-currency values convert at the spot rate.
func PortfolioMarketValue(events []model.InvestmentEvent, prices map[string]float64, spotRate float64) model.PortfolioAsset {
	positions := BuildPositions(events, false)

	marketTotals := map[string]float64{
		model.MarketUS:     0,
		model.MarketMY:     0,
		model.MarketCrypto: 0,
		model.MarketMMF:    0,
	}

	total := 0.0
	for key, pos := range positions {
		if pos.Quantity <= 0 {
			continue
		}
		value := pos.Quantity * prices[key.Symbol]
		if pos.Currency == model.CurrencyForeign {
			value *= spotRate
		}
		total += value
		if _, ok := marketTotals[pos.Market]; ok {
			marketTotals[pos.Market] += value
		}
	}

	return model.PortfolioAsset{
		Total: round(total),
		Breakdown: []model.BalanceSheetEntry{
			{Name: "US Stocks", Value: round(marketTotals[model.MarketUS]), IsAuto: true},
			{Name: "MY Stocks", Value: round(marketTotals[model.MarketMY]), IsAuto: true},
			{Name: "Crypto", Value: round(marketTotals[model.MarketCrypto]), IsAuto: true},
			{Name: "MMF", Value: round(marketTotals[model.MarketMMF]), IsAuto: true},
		},
	}
}

// InvestedCapital is the domestic-currency capital currently deployed in the
// portfolio: buys add cost, sells subtract proceeds, both converted at the
// average historical rate for foreign-currency events. Dividends, bonuses
// and splits do not move invested capital.
func InvestedCapital(events []model.InvestmentEvent, avgRate float64) float64 {
	total := 0.0
	for _, ev := range events {
		rate := 1.0
		if ev.Currency == model.CurrencyForeign {
			rate = avgRate
		}
		switch ev.Type {
		case model.EventBuy:
			total += (ev.Quantity*ev.UnitPrice + ev.Fees) * rate
		case model.EventSell:
			total -= (ev.Quantity*ev.UnitPrice - ev.Fees) * rate
		}
	}
	return total
}

type valuationInputs struct {
	events      []model.InvestmentEvent
	prices      map[string]float64
	rates       model.ForexRates
	mortgages   []model.Mortgage
	mortgageEvs map[string][]model.MortgageEvent
	accounts    []model.BalanceAccount
	accountSums map[string]float64
	unallocated float64
}

// loadInputs fetches every subsystem's data for one owner, fanning the
// independent reads out concurrently.
func (s *ValuationService) loadInputs(ownerID string) (valuationInputs, error) {
	var in valuationInputs
	var g errgroup.Group

	g.Go(func() error {
		var err error
		in.events, err = s.investmentRepo.GetEvents(ownerID)
		return err
	})
	g.Go(func() error {
		var err error
		in.prices, err = s.priceRepo.GetPrices()
		return err
	})
	g.Go(func() error {
		var err error
		in.rates, err = s.forexService.Rates(ownerID)
		return err
	})
	g.Go(func() error {
		mortgages, err := s.mortgageRepo.GetMortgages(ownerID)
		if err != nil {
			return err
		}
		evs := make(map[string][]model.MortgageEvent, len(mortgages))
		for _, m := range mortgages {
			evs[m.ID], err = s.mortgageRepo.GetEvents(m.ID)
			if err != nil {
				return err
			}
		}
		in.mortgages, in.mortgageEvs = mortgages, evs
		return nil
	})
	g.Go(func() error {
		var err error
		in.accounts, err = s.balanceRepo.GetAccounts(ownerID)
		return err
	})
	g.Go(func() error {
		var err error
		in.accountSums, err = s.transactionRepo.SumByAccount(ownerID)
		return err
	})
	g.Go(func() error {
		var err error
		in.unallocated, err = s.transactionRepo.SumUnallocated(ownerID)
		return err
	})

	if err := g.Wait(); err != nil {
		return valuationInputs{}, err
	}
	return in, nil
}

// displayedValue is an account's base value plus its linked transaction sum.
func displayedValue(acc model.BalanceAccount, sums map[string]float64) float64 {
	return acc.BaseValue + sums[acc.ID]
}

// BalanceSheet builds the owner's statement of financial position: manual
// accounts at displayed values, unallocated cash, the investment portfolio
// at spot-rate market value, and mortgage balances as non-current
// liabilities.
func (s *ValuationService) BalanceSheet(ownerID string) (model.BalanceSheet, error) {
	in, err := s.loadInputs(ownerID)
	if err != nil {
		return model.BalanceSheet{}, err
	}

	sheet := model.BalanceSheet{
		CurrentAssets:       map[string]model.EntryGroup{},
		InvestmentPortfolio: PortfolioMarketValue(in.events, in.prices, in.rates.CurrentRate),
	}

	var currentAssets []model.BalanceSheetEntry
	for _, acc := range in.accounts {
		entry := model.BalanceSheetEntry{
			ID:             acc.ID,
			Name:           acc.Name,
			Value:          round(displayedValue(acc, in.accountSums)),
			AssetType:      acc.AssetType,
			LiquidityTier:  acc.LiquidityTier,
			ObligationType: acc.ObligationType,
		}
		switch acc.Classification {
		case model.ClassCurrentAsset:
			currentAssets = append(currentAssets, entry)
		case model.ClassNonCurrentAsset:
			sheet.NonCurrentAssets = append(sheet.NonCurrentAssets, entry)
		case model.ClassCurrentLiability:
			sheet.CurrentLiabilities = append(sheet.CurrentLiabilities, entry)
		case model.ClassNonCurrentLiability:
			sheet.NonCurrentLiabilities = append(sheet.NonCurrentLiabilities, entry)
		}
	}

	if in.unallocated > 0 {
		currentAssets = append(currentAssets, model.BalanceSheetEntry{
			Name:      "Unallocated Cash",
			Value:     round(in.unallocated),
			IsAuto:    true,
			AssetType: model.AssetTypeCash,
		})
	}

	for _, m := range in.mortgages {
		sheet.NonCurrentLiabilities = append(sheet.NonCurrentLiabilities, model.BalanceSheetEntry{
			ID:     m.ID,
			Name:   fmt.Sprintf("%s (Mortgage)", m.Name),
			Value:  round(CurrentBalance(m, in.mortgageEvs[m.ID])),
			IsAuto: true,
			Link:   fmt.Sprintf("/api/mortgages/%s", m.ID),
		})
	}

	sheet.CurrentAssets = groupByType(currentAssets, func(e model.BalanceSheetEntry) string {
		if e.AssetType == "" {
			return model.AssetTypeOther
		}
		return e.AssetType
	})

	for _, e := range currentAssets {
		sheet.TotalCurrentAssets += e.Value
	}
	sheet.TotalNonCurrentAssets = sheet.InvestmentPortfolio.Total
	for _, e := range sheet.NonCurrentAssets {
		sheet.TotalNonCurrentAssets += e.Value
	}
	for _, e := range sheet.CurrentLiabilities {
		sheet.TotalCurrentLiabilities += e.Value
	}
	for _, e := range sheet.NonCurrentLiabilities {
		sheet.TotalNonCurrentLiabilities += e.Value
	}

	sheet.TotalCurrentAssets = round(sheet.TotalCurrentAssets)
	sheet.TotalNonCurrentAssets = round(sheet.TotalNonCurrentAssets)
	sheet.TotalAssets = round(sheet.TotalCurrentAssets + sheet.TotalNonCurrentAssets)
	sheet.TotalCurrentLiabilities = round(sheet.TotalCurrentLiabilities)
	sheet.TotalNonCurrentLiabilities = round(sheet.TotalNonCurrentLiabilities)
	sheet.TotalLiabilities = round(sheet.TotalCurrentLiabilities + sheet.TotalNonCurrentLiabilities)
	sheet.NetWorth = round(sheet.TotalAssets - sheet.TotalLiabilities)

	return sheet, nil
}

func groupByType(entries []model.BalanceSheetEntry, keyOf func(model.BalanceSheetEntry) string) map[string]model.EntryGroup {
	grouped := make(map[string]model.EntryGroup)
	for _, e := range entries {
		key := keyOf(e)
		g := grouped[key]
		g.Items = append(g.Items, e)
		g.Total = round(g.Total + e.Value)
		grouped[key] = g
	}
	return grouped
}

// CashFlow builds the short-term liquidity view from current accounts and
// unallocated cash. Available cash is total cash minus all current
// obligations; expected cash adds receivables on top.
func (s *ValuationService) CashFlow(ownerID string) (model.CashFlowSummary, error) {
	var accounts []model.BalanceAccount
	var accountSums map[string]float64
	var unallocated float64

	var g errgroup.Group
	g.Go(func() error {
		var err error
		accounts, err = s.balanceRepo.GetAccounts(ownerID)
		return err
	})
	g.Go(func() error {
		var err error
		accountSums, err = s.transactionRepo.SumByAccount(ownerID)
		return err
	})
	g.Go(func() error {
		var err error
		unallocated, err = s.transactionRepo.SumUnallocated(ownerID)
		return err
	})
	if err := g.Wait(); err != nil {
		return model.CashFlowSummary{}, err
	}

	var currentAssets, currentLiabilities []model.BalanceSheetEntry
	for _, acc := range accounts {
		obligationType := acc.ObligationType
		if obligationType == "" {
			obligationType = model.ObligationStandard
		}
		entry := model.BalanceSheetEntry{
			ID:             acc.ID,
			Name:           acc.Name,
			Value:          round(displayedValue(acc, accountSums)),
			AssetType:      acc.AssetType,
			LiquidityTier:  acc.LiquidityTier,
			ObligationType: obligationType,
		}
		switch acc.Classification {
		case model.ClassCurrentAsset:
			currentAssets = append(currentAssets, entry)
		case model.ClassCurrentLiability:
			currentLiabilities = append(currentLiabilities, entry)
		}
	}

	if unallocated > 0 {
		currentAssets = append(currentAssets, model.BalanceSheetEntry{
			Name:      "Unallocated Cash",
			Value:     round(unallocated),
			IsAuto:    true,
			AssetType: model.AssetTypeCash,
		})
	}

	summary := model.CashFlowSummary{
		CashGroups: groupByType(currentAssets, func(e model.BalanceSheetEntry) string {
			if e.AssetType == "" {
				return model.AssetTypeOther
			}
			return e.AssetType
		}),
		ObligationGroups: groupByType(currentLiabilities, func(e model.BalanceSheetEntry) string {
			return e.ObligationType
		}),
	}

	summary.TotalCash = summary.CashGroups[model.AssetTypeCash].Total
	summary.TotalAR = summary.CashGroups[model.AssetTypeAR].Total
	for _, e := range currentLiabilities {
		summary.TotalObligations += e.Value
	}
	summary.TotalObligations = round(summary.TotalObligations)

	summary.HeldOnBehalf = summary.ObligationGroups[model.ObligationHeldOnBehalf].Total
	summary.OnHold = summary.ObligationGroups[model.ObligationOnHold].Total
	summary.StandardObligations = summary.ObligationGroups[model.ObligationStandard].Total

	summary.AvailableCash = round(summary.TotalCash - summary.TotalObligations)
	summary.ExpectedCash = round(summary.AvailableCash + summary.TotalAR)

	return summary, nil
}

// Overview filter values.
const (
	FilterOverall  = "overall"
	FilterHoldings = "holdings"
	FilterSold     = "sold"
)

// PortfolioOverview builds the aggregate performance view. Positions are
// keyed by symbol across brokerages and filtered to open, sold, or all.
// Summary totals and allocations are computed in the domestic currency and
// converted to the view currency at the end; per-item figures convert
// individually. Items come back sorted by absolute P&L, largest first.
func (s *ValuationService) PortfolioOverview(ownerID, filter, viewCurrency string, asOf time.Time) (model.PortfolioOverview, error) {
	var events []model.InvestmentEvent
	var prices map[string]float64
	var rates model.ForexRates

	var g errgroup.Group
	g.Go(func() error {
		var err error
		events, err = s.investmentRepo.GetEvents(ownerID)
		return err
	})
	g.Go(func() error {
		var err error
		prices, err = s.priceRepo.GetPrices()
		return err
	})
	g.Go(func() error {
		var err error
		rates, err = s.forexService.Rates(ownerID)
		return err
	})
	if err := g.Wait(); err != nil {
		return model.PortfolioOverview{}, err
	}

	positions := BuildPositions(events, false)

	overview := model.PortfolioOverview{
		MarketAllocation: map[string]float64{},
		CurrencyAllocation: map[string]float64{
			model.CurrencyDomestic: 0,
			model.CurrencyForeign:  0,
		},
	}

	var totalInvested, totalMarketValue, totalDividends, totalRealized float64

	for key, pos := range positions {
		isHolding := pos.Quantity > 0
		isSold := pos.Quantity == 0 && pos.TotalSold > 0
		if isHolding {
			overview.HoldingsCount++
		}
		if isSold {
			overview.SoldCount++
		}

		switch filter {
		case FilterHoldings:
			if !isHolding {
				continue
			}
		case FilterSold:
			if !isSold {
				continue
			}
		}

		m := ValueHolding(key, pos, prices[key.Symbol], rates.AverageRate, rates.CurrentRate, viewCurrency, asOf)

		// Sold positions measure return against the original buy cost, since
		// the remaining cost basis is zero by then.
		if pos.Quantity == 0 {
			origCost := convertDisplay(pos.BuyCost, pos.Currency, viewCurrency, rates.AverageRate)
			m.PnLPercent = round(pctOf(m.RealizedPnL+m.Dividends, origCost))
		}

		// Domestic-currency figures for the summary and allocations.
		costMYR := pos.CostBasis
		valueMYR := pos.Quantity * prices[key.Symbol]
		divMYR := pos.TotalDividends
		realizedMYR := pos.RealizedPnL
		if pos.Currency == model.CurrencyForeign {
			costMYR *= rates.AverageRate
			valueMYR *= rates.CurrentRate
			divMYR *= rates.AverageRate
			realizedMYR *= rates.AverageRate
		}
		totalInvested += costMYR
		totalMarketValue += valueMYR
		totalDividends += divMYR
		totalRealized += realizedMYR

		if isHolding {
			overview.MarketAllocation[pos.Market] += valueMYR
			if pos.Currency == model.CurrencyForeign {
				overview.CurrencyAllocation[model.CurrencyForeign] += valueMYR
			} else {
				overview.CurrencyAllocation[model.CurrencyDomestic] += valueMYR
			}
		}

		overview.Items = append(overview.Items, m)
	}

	slices.SortFunc(overview.Items, func(a, b model.HoldingMetrics) int {
		switch {
		case math.Abs(a.PnLValue) > math.Abs(b.PnLValue):
			return -1
		case math.Abs(a.PnLValue) < math.Abs(b.PnLValue):
			return 1
		default:
			return 0
		}
	})

	totalPnL := totalMarketValue - totalInvested + totalRealized
	overview.TotalPnLPercent = round(pctOf(totalPnL, totalInvested+totalRealized))

	// Summary totals convert as domestic amounts; the Original view reports
	// them in the domestic currency since a mixed portfolio has no single
	// original currency.
	summaryRate := 1.0
	overview.DisplayCurrency = model.CurrencyDomestic
	if viewCurrency == ViewForeign {
		summaryRate = 1.0
		if rates.AverageRate > 0 {
			summaryRate = 1 / rates.AverageRate
		}
		overview.DisplayCurrency = model.CurrencyForeign
	}
	overview.TotalInvested = round(totalInvested * summaryRate)
	overview.TotalMarketValue = round(totalMarketValue * summaryRate)
	overview.TotalDividends = round(totalDividends * summaryRate)
	overview.TotalRealizedPnL = round(totalRealized * summaryRate)
	overview.TotalPnL = round(totalPnL * summaryRate)

	for market, v := range overview.MarketAllocation {
		overview.MarketAllocation[market] = round(v)
	}
	for currency, v := range overview.CurrencyAllocation {
		overview.CurrencyAllocation[currency] = round(v)
	}

	return overview, nil
}

// convertDisplay converts a native-currency amount into the view currency
// using the average historical rate.
func convertDisplay(amount float64, currency, viewCurrency string, avgRate float64) float64 {
	switch {
	case currency == model.CurrencyForeign && viewCurrency == ViewDomestic:
		return amount * avgRate
	case currency == model.CurrencyDomestic && viewCurrency == ViewForeign:
		if avgRate > 0 {
			return amount / avgRate
		}
		return amount
	default:
		return amount
	}
}

// Holdings builds the per-brokerage holdings page: open positions valued in
// the view currency, the invested-capital total, and the rates in effect.
// A non-nil customRate persists a new spot rate before valuation.
func (s *ValuationService) Holdings(ownerID, viewCurrency string, customRate *float64, asOf time.Time) (model.HoldingsView, error) {
	if customRate != nil && *customRate > 0 {
		if err := s.forexService.SetCurrentRate(*customRate, asOf); err != nil {
			return model.HoldingsView{}, err
		}
	}

	var events []model.InvestmentEvent
	var prices map[string]float64
	var rates model.ForexRates

	var g errgroup.Group
	g.Go(func() error {
		var err error
		events, err = s.investmentRepo.GetEvents(ownerID)
		return err
	})
	g.Go(func() error {
		var err error
		prices, err = s.priceRepo.GetPrices()
		return err
	})
	g.Go(func() error {
		var err error
		rates, err = s.forexService.Rates(ownerID)
		return err
	})
	if err := g.Wait(); err != nil {
		return model.HoldingsView{}, err
	}

	positions := BuildPositions(events, true)

	view := model.HoldingsView{
		Holdings:     []model.HoldingMetrics{},
		AverageRate:  rates.AverageRate,
		CurrentRate:  rates.CurrentRate,
		ViewCurrency: viewCurrency,
	}

	for key, pos := range positions {
		if pos.Quantity <= 0 {
			continue
		}
		m := ValueHolding(key, pos, prices[key.Symbol], rates.AverageRate, rates.CurrentRate, viewCurrency, asOf)

		// This page measures the open position only: realized P&L from
		// earlier partial sells is reported on the overview, not here.
		m.PnLValue = m.UnrealizedPnL
		m.PnLPercent = round(pctOf(m.UnrealizedPnL, m.Cost))

		view.Holdings = append(view.Holdings, m)
	}

	slices.SortFunc(view.Holdings, func(a, b model.HoldingMetrics) int {
		switch {
		case a.Symbol < b.Symbol:
			return -1
		case a.Symbol > b.Symbol:
			return 1
		case a.Brokerage < b.Brokerage:
			return -1
		case a.Brokerage > b.Brokerage:
			return 1
		default:
			return 0
		}
	})

	invested := InvestedCapital(events, rates.AverageRate)
	if viewCurrency == ViewForeign {
		view.TotalInvested = round(safeDiv(invested, rates.AverageRate, 0))
		view.TotalCurrency = model.CurrencyForeign
	} else {
		view.TotalInvested = round(invested)
		view.TotalCurrency = model.CurrencyDomestic
	}

	return view, nil
}
