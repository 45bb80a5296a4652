package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/amhaziq/Net-Worth-Tracker-Backend/internal/model"
)

// PriceRepository provides data access methods for the stock_price table.
// Prices are global: one current price per symbol, maintained manually.
type PriceRepository struct {
	db *sql.DB
}

// NewPriceRepository creates a new PriceRepository with the provided database connection.
func NewPriceRepository(db *sql.DB) *PriceRepository {
	return &PriceRepository{db: db}
}

// GetPrices retrieves all current prices as a symbol -> price map.
func (r *PriceRepository) GetPrices() (map[string]float64, error) {
	rows, err := r.db.Query(`SELECT symbol, price FROM stock_price`)
	if err != nil {
		return nil, fmt.Errorf("failed to query stock_price table: %w", err)
	}
	defer rows.Close()

	prices := make(map[string]float64)
	for rows.Next() {
		var symbol string
		var price float64
		if err := rows.Scan(&symbol, &price); err != nil {
			return nil, fmt.Errorf("failed to scan stock_price row: %w", err)
		}
		prices[symbol] = price
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stock_price table: %w", err)
	}

	return prices, nil
}

// GetPrice retrieves the current price for one symbol. The second return
// value reports whether a price row exists.
func (r *PriceRepository) GetPrice(symbol string) (float64, bool, error) {
	var price float64
	err := r.db.QueryRow(`SELECT price FROM stock_price WHERE symbol = ?`, symbol).Scan(&price)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to query stock_price table: %w", err)
	}
	return price, true, nil
}

// ListPrices retrieves all price rows with their update timestamps.
func (r *PriceRepository) ListPrices() ([]model.StockPrice, error) {
	rows, err := r.db.Query(`SELECT symbol, price, last_updated FROM stock_price ORDER BY symbol ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query stock_price table: %w", err)
	}
	defer rows.Close()

	prices := []model.StockPrice{}
	for rows.Next() {
		var p model.StockPrice
		var updatedStr string
		if err := rows.Scan(&p.Symbol, &p.Price, &updatedStr); err != nil {
			return nil, fmt.Errorf("failed to scan stock_price row: %w", err)
		}
		p.LastUpdated, err = ParseTime(updatedStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}
		prices = append(prices, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stock_price table: %w", err)
	}

	return prices, nil
}

// UpsertPrice inserts or replaces the current price for a symbol.
func (r *PriceRepository) UpsertPrice(symbol string, price float64, updatedAt time.Time) error {
	query := `
		INSERT INTO stock_price (symbol, price, last_updated)
		VALUES (?, ?, ?)
		ON CONFLICT (symbol) DO UPDATE SET price = excluded.price, last_updated = excluded.last_updated
	`

	_, err := r.db.Exec(query, symbol, price, FormatTimestamp(updatedAt))
	if err != nil {
		return fmt.Errorf("failed to upsert stock price: %w", err)
	}
	return nil
}
