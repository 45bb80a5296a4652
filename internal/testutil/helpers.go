package testutil

import (
	"database/sql"
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/amhaziq/Net-Worth-Tracker-Backend/internal/repository"
	"github.com/amhaziq/Net-Worth-Tracker-Backend/internal/service"
)

// TestOwner is the owner all factories record data under unless overridden.
const TestOwner = "owner-1"

func NewTestInvestmentService(t *testing.T, db *sql.DB) *service.InvestmentService {
	t.Helper()

	investmentRepo := repository.NewInvestmentRepository(db)
	priceRepo := repository.NewPriceRepository(db)

	return service.NewInvestmentService(investmentRepo, priceRepo)
}

func NewTestPositionService(t *testing.T, db *sql.DB) *service.PositionService {
	t.Helper()

	investmentRepo := repository.NewInvestmentRepository(db)

	return service.NewPositionService(investmentRepo)
}

func NewTestForexService(t *testing.T, db *sql.DB) *service.ForexService {
	t.Helper()

	forexRepo := repository.NewForexRepository(db)
	priceRepo := repository.NewPriceRepository(db)

	return service.NewForexService(forexRepo, priceRepo)
}

func NewTestMortgageService(t *testing.T, db *sql.DB) *service.MortgageService {
	t.Helper()

	mortgageRepo := repository.NewMortgageRepository(db)

	return service.NewMortgageService(mortgageRepo)
}

func NewTestBalanceService(t *testing.T, db *sql.DB) *service.BalanceService {
	t.Helper()

	balanceRepo := repository.NewBalanceRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)

	return service.NewBalanceService(balanceRepo, transactionRepo)
}

func NewTestTransactionService(t *testing.T, db *sql.DB) *service.TransactionService {
	t.Helper()

	transactionRepo := repository.NewTransactionRepository(db)
	balanceRepo := repository.NewBalanceRepository(db)

	return service.NewTransactionService(transactionRepo, balanceRepo)
}

func NewTestValuationService(t *testing.T, db *sql.DB) *service.ValuationService {
	t.Helper()

	return service.NewValuationService(
		repository.NewInvestmentRepository(db),
		repository.NewPriceRepository(db),
		repository.NewMortgageRepository(db),
		repository.NewBalanceRepository(db),
		repository.NewTransactionRepository(db),
		NewTestForexService(t, db),
	)
}

func NewTestSnapshotService(t *testing.T, db *sql.DB) *service.SnapshotService {
	t.Helper()

	return service.NewSnapshotService(
		repository.NewSnapshotRepository(db),
		repository.NewInvestmentRepository(db),
		repository.NewPriceRepository(db),
		NewTestForexService(t, db),
		zerolog.Nop(),
	)
}

// MakeID generates a unique UUID string for testing.
func MakeID() string {
	return uuid.New().String()
}

// randomAlphanumeric generates a random alphanumeric string of specified length.
func randomAlphanumeric(length int) string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, length)
	for i := range result {
		//nolint:gosec // G404: Using math/rand for test data generation is acceptable
		result[i] = charset[rand.Intn(len(charset))]
	}
	return string(result)
}
