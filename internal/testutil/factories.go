package testutil

import (
	"database/sql"
	"sync/atomic"
	"testing"
	"time"

	"github.com/amhaziq/Net-Worth-Tracker-Backend/internal/model"
	"github.com/amhaziq/Net-Worth-Tracker-Backend/internal/repository"
)

// createdAtSeq makes created_at strictly increasing across factory calls so
// same-day events replay in insertion order.
var createdAtSeq int64

func nextCreatedAt() time.Time {
	n := atomic.AddInt64(&createdAtSeq, 1)
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(n) * time.Millisecond)
}

// InvestmentEventBuilder provides a fluent interface for creating test
// investment events.
//
// Example usage:
//
//	// Simple creation with defaults (a Buy of 10 AAPL at 100)
//	ev := testutil.NewInvestmentEvent().Build(t, db)
//
//	// Customized event
//	ev := testutil.NewInvestmentEvent().
//	    WithType(model.EventSell).
//	    WithQuantity(5).
//	    WithUnitPrice(120).
//	    Build(t, db)
type InvestmentEventBuilder struct {
	ID        string
	OwnerID   string
	Date      time.Time
	Type      string
	Symbol    string
	Market    string
	Brokerage string
	Quantity  float64
	UnitPrice float64
	Fees      float64
	Currency  string
	Note      string
}

// NewInvestmentEvent creates an InvestmentEventBuilder with sensible defaults.
func NewInvestmentEvent() *InvestmentEventBuilder {
	return &InvestmentEventBuilder{
		ID:        MakeID(),
		OwnerID:   TestOwner,
		Date:      time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		Type:      model.EventBuy,
		Symbol:    "AAPL",
		Market:    model.MarketUS,
		Brokerage: "Test Brokerage",
		Quantity:  10,
		UnitPrice: 100,
		Fees:      0,
		Currency:  model.CurrencyForeign,
	}
}

// WithOwner sets a custom owner.
func (b *InvestmentEventBuilder) WithOwner(ownerID string) *InvestmentEventBuilder {
	b.OwnerID = ownerID
	return b
}

// WithDate sets a custom event date.
func (b *InvestmentEventBuilder) WithDate(date time.Time) *InvestmentEventBuilder {
	b.Date = date
	return b
}

// WithType sets a custom event type.
func (b *InvestmentEventBuilder) WithType(eventType string) *InvestmentEventBuilder {
	b.Type = eventType
	return b
}

// WithSymbol sets a custom symbol.
func (b *InvestmentEventBuilder) WithSymbol(symbol string) *InvestmentEventBuilder {
	b.Symbol = symbol
	return b
}

// WithMarket sets a custom market.
func (b *InvestmentEventBuilder) WithMarket(market string) *InvestmentEventBuilder {
	b.Market = market
	return b
}

// WithBrokerage sets a custom brokerage.
func (b *InvestmentEventBuilder) WithBrokerage(brokerage string) *InvestmentEventBuilder {
	b.Brokerage = brokerage
	return b
}

// WithQuantity sets a custom quantity.
func (b *InvestmentEventBuilder) WithQuantity(qty float64) *InvestmentEventBuilder {
	b.Quantity = qty
	return b
}

// WithUnitPrice sets a custom unit price. For Dividend events this is the
// total cash received.
func (b *InvestmentEventBuilder) WithUnitPrice(price float64) *InvestmentEventBuilder {
	b.UnitPrice = price
	return b
}

// WithFees sets custom fees.
func (b *InvestmentEventBuilder) WithFees(fees float64) *InvestmentEventBuilder {
	b.Fees = fees
	return b
}

// WithCurrency sets a custom currency.
func (b *InvestmentEventBuilder) WithCurrency(currency string) *InvestmentEventBuilder {
	b.Currency = currency
	return b
}

// Build inserts the event and returns the resulting model.
func (b *InvestmentEventBuilder) Build(t *testing.T, db *sql.DB) model.InvestmentEvent {
	t.Helper()

	ev := model.InvestmentEvent{
		ID:        b.ID,
		OwnerID:   b.OwnerID,
		Date:      b.Date,
		Type:      b.Type,
		Symbol:    b.Symbol,
		Market:    b.Market,
		Brokerage: b.Brokerage,
		Quantity:  b.Quantity,
		UnitPrice: b.UnitPrice,
		Fees:      b.Fees,
		Currency:  b.Currency,
		Note:      b.Note,
		CreatedAt: nextCreatedAt(),
	}

	if err := repository.NewInvestmentRepository(db).CreateEvent(ev); err != nil {
		t.Fatalf("Failed to create test investment event: %v", err)
	}

	return ev
}

// Convenience functions

// CreateBuy records a Buy event for the default owner.
func CreateBuy(t *testing.T, db *sql.DB, symbol string, qty, price, fees float64, date time.Time) model.InvestmentEvent {
	t.Helper()
	return NewInvestmentEvent().
		WithType(model.EventBuy).
		WithSymbol(symbol).
		WithQuantity(qty).
		WithUnitPrice(price).
		WithFees(fees).
		WithDate(date).
		Build(t, db)
}

// CreateSell records a Sell event for the default owner.
func CreateSell(t *testing.T, db *sql.DB, symbol string, qty, price, fees float64, date time.Time) model.InvestmentEvent {
	t.Helper()
	return NewInvestmentEvent().
		WithType(model.EventSell).
		WithSymbol(symbol).
		WithQuantity(qty).
		WithUnitPrice(price).
		WithFees(fees).
		WithDate(date).
		Build(t, db)
}

// CreateDividend records a Dividend event. The cash argument is the total
// amount received, carried in the unit price column.
func CreateDividend(t *testing.T, db *sql.DB, symbol string, cash float64, date time.Time) model.InvestmentEvent {
	t.Helper()
	return NewInvestmentEvent().
		WithType(model.EventDividend).
		WithSymbol(symbol).
		WithQuantity(0).
		WithUnitPrice(cash).
		WithFees(0).
		WithDate(date).
		Build(t, db)
}

// SetStockPrice upserts a current price for a symbol.
func SetStockPrice(t *testing.T, db *sql.DB, symbol string, price float64) {
	t.Helper()

	if err := repository.NewPriceRepository(db).UpsertPrice(symbol, price, nextCreatedAt()); err != nil {
		t.Fatalf("Failed to set test stock price: %v", err)
	}
}

// CreateForexObservation records a currency exchange for the default owner.
// The foreign amount is derived from the domestic amount and rate.
func CreateForexObservation(t *testing.T, db *sql.DB, domestic, rate float64, date time.Time) model.ForexObservation {
	t.Helper()

	obs := model.ForexObservation{
		ID:             MakeID(),
		OwnerID:        TestOwner,
		Date:           date,
		DomesticAmount: domestic,
		Rate:           rate,
		ForeignAmount:  domestic / rate,
		CreatedAt:      nextCreatedAt(),
	}

	if err := repository.NewForexRepository(db).CreateObservation(obs); err != nil {
		t.Fatalf("Failed to create test forex observation: %v", err)
	}

	return obs
}

// MortgageBuilder provides a fluent interface for creating test mortgages.
//
// Example usage:
//
//	m := testutil.NewMortgage().
//	    WithPrincipal(500000).
//	    WithTermYears(30).
//	    Build(t, db)
type MortgageBuilder struct {
	ID                 string
	OwnerID            string
	Name               string
	StartDate          time.Time
	OriginalPrincipal  float64
	TermYears          int
	HasMRTA            bool
	MRTAOriginalAmount float64
	MRTARate           float64
}

// NewMortgage creates a MortgageBuilder with sensible defaults.
func NewMortgage() *MortgageBuilder {
	return &MortgageBuilder{
		ID:                MakeID(),
		OwnerID:           TestOwner,
		Name:              "Test Mortgage " + randomAlphanumeric(6),
		StartDate:         time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		OriginalPrincipal: 500000,
		TermYears:         30,
	}
}

// WithOwner sets a custom owner.
func (b *MortgageBuilder) WithOwner(ownerID string) *MortgageBuilder {
	b.OwnerID = ownerID
	return b
}

// WithName sets a custom name.
func (b *MortgageBuilder) WithName(name string) *MortgageBuilder {
	b.Name = name
	return b
}

// WithStartDate sets a custom start date.
func (b *MortgageBuilder) WithStartDate(date time.Time) *MortgageBuilder {
	b.StartDate = date
	return b
}

// WithPrincipal sets a custom original principal.
func (b *MortgageBuilder) WithPrincipal(principal float64) *MortgageBuilder {
	b.OriginalPrincipal = principal
	return b
}

// WithTermYears sets a custom loan term.
func (b *MortgageBuilder) WithTermYears(years int) *MortgageBuilder {
	b.TermYears = years
	return b
}

// WithMRTA attaches a decreasing-term insurance schedule.
func (b *MortgageBuilder) WithMRTA(amount, rate float64) *MortgageBuilder {
	b.HasMRTA = true
	b.MRTAOriginalAmount = amount
	b.MRTARate = rate
	return b
}

// Build inserts the mortgage and returns the resulting model.
func (b *MortgageBuilder) Build(t *testing.T, db *sql.DB) model.Mortgage {
	t.Helper()

	m := model.Mortgage{
		ID:                 b.ID,
		OwnerID:            b.OwnerID,
		Name:               b.Name,
		StartDate:          b.StartDate,
		OriginalPrincipal:  b.OriginalPrincipal,
		TermYears:          b.TermYears,
		HasMRTA:            b.HasMRTA,
		MRTAOriginalAmount: b.MRTAOriginalAmount,
		MRTARate:           b.MRTARate,
		CreatedAt:          nextCreatedAt(),
	}

	if err := repository.NewMortgageRepository(db).CreateMortgage(m); err != nil {
		t.Fatalf("Failed to create test mortgage: %v", err)
	}

	return m
}

// CreateMortgageEvent records a payment or rate change on a mortgage.
// balanceAfter is nil for rate changes.
func CreateMortgageEvent(t *testing.T, db *sql.DB, mortgageID, eventType string, value float64, balanceAfter *float64, date time.Time) model.MortgageEvent {
	t.Helper()

	ev := model.MortgageEvent{
		ID:           MakeID(),
		MortgageID:   mortgageID,
		Date:         date,
		Type:         eventType,
		Value:        value,
		BalanceAfter: balanceAfter,
		CreatedAt:    nextCreatedAt(),
	}

	if err := repository.NewMortgageRepository(db).CreateEvent(ev); err != nil {
		t.Fatalf("Failed to create test mortgage event: %v", err)
	}

	return ev
}

// BalanceAccountBuilder provides a fluent interface for creating test
// balance-sheet accounts.
//
// Example usage:
//
//	acc := testutil.NewBalanceAccount().
//	    WithClassification(model.ClassCurrentLiability).
//	    WithBaseValue(2000).
//	    Build(t, db)
type BalanceAccountBuilder struct {
	ID             string
	OwnerID        string
	Classification string
	Name           string
	BaseValue      float64
	AssetType      string
	LiquidityTier  string
	ObligationType string
}

// NewBalanceAccount creates a BalanceAccountBuilder with sensible defaults:
// a current-asset cash account.
func NewBalanceAccount() *BalanceAccountBuilder {
	return &BalanceAccountBuilder{
		ID:             MakeID(),
		OwnerID:        TestOwner,
		Classification: model.ClassCurrentAsset,
		Name:           "Test Account " + randomAlphanumeric(6),
		BaseValue:      1000,
		AssetType:      model.AssetTypeCash,
		LiquidityTier:  model.LiquidityHigh,
		ObligationType: model.ObligationStandard,
	}
}

// WithOwner sets a custom owner.
func (b *BalanceAccountBuilder) WithOwner(ownerID string) *BalanceAccountBuilder {
	b.OwnerID = ownerID
	return b
}

// WithClassification sets a custom classification.
func (b *BalanceAccountBuilder) WithClassification(classification string) *BalanceAccountBuilder {
	b.Classification = classification
	return b
}

// WithName sets a custom name.
func (b *BalanceAccountBuilder) WithName(name string) *BalanceAccountBuilder {
	b.Name = name
	return b
}

// WithBaseValue sets a custom base value.
func (b *BalanceAccountBuilder) WithBaseValue(value float64) *BalanceAccountBuilder {
	b.BaseValue = value
	return b
}

// WithAssetType sets a custom asset type.
func (b *BalanceAccountBuilder) WithAssetType(assetType string) *BalanceAccountBuilder {
	b.AssetType = assetType
	return b
}

// WithLiquidityTier sets a custom liquidity tier.
func (b *BalanceAccountBuilder) WithLiquidityTier(tier string) *BalanceAccountBuilder {
	b.LiquidityTier = tier
	return b
}

// WithObligationType sets a custom obligation type.
func (b *BalanceAccountBuilder) WithObligationType(obligationType string) *BalanceAccountBuilder {
	b.ObligationType = obligationType
	return b
}

// Build inserts the account and returns the resulting model.
func (b *BalanceAccountBuilder) Build(t *testing.T, db *sql.DB) model.BalanceAccount {
	t.Helper()

	acc := model.BalanceAccount{
		ID:             b.ID,
		OwnerID:        b.OwnerID,
		Classification: b.Classification,
		Name:           b.Name,
		BaseValue:      b.BaseValue,
		AssetType:      b.AssetType,
		LiquidityTier:  b.LiquidityTier,
		ObligationType: b.ObligationType,
		CreatedAt:      nextCreatedAt(),
	}

	if err := repository.NewBalanceRepository(db).CreateAccount(acc); err != nil {
		t.Fatalf("Failed to create test balance account: %v", err)
	}

	return acc
}

// CreateTransaction records a cash transaction for the default owner.
// accountID may be empty for an unallocated entry.
func CreateTransaction(t *testing.T, db *sql.DB, accountID string, amount float64, date time.Time) model.Transaction {
	t.Helper()

	txn := model.Transaction{
		ID:          MakeID(),
		OwnerID:     TestOwner,
		Date:        date,
		Category:    "General",
		Description: "Test transaction",
		Amount:      amount,
		AccountID:   accountID,
		CreatedAt:   nextCreatedAt(),
	}

	if err := repository.NewTransactionRepository(db).CreateTransaction(txn); err != nil {
		t.Fatalf("Failed to create test transaction: %v", err)
	}

	return txn
}
