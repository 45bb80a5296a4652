package repository

import (
	"database/sql"
	"fmt"

	"github.com/amhaziq/Net-Worth-Tracker-Backend/internal/model"
)

// ForexRepository provides data access methods for the forex_observation table.
type ForexRepository struct {
	db *sql.DB
}

// NewForexRepository creates a new ForexRepository with the provided database connection.
func NewForexRepository(db *sql.DB) *ForexRepository {
	return &ForexRepository{db: db}
}

// GetObservations retrieves all currency-exchange observations for the owner,
// oldest first.
func (r *ForexRepository) GetObservations(ownerID string) ([]model.ForexObservation, error) {
	query := `
		SELECT id, owner_id, date, domestic_amount, rate, foreign_amount, created_at
		FROM forex_observation
		WHERE owner_id = ?
		ORDER BY date ASC, created_at ASC
	`

	rows, err := r.db.Query(query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query forex_observation table: %w", err)
	}
	defer rows.Close()

	observations := []model.ForexObservation{}
	for rows.Next() {
		var obs model.ForexObservation
		var dateStr, createdAtStr string

		err := rows.Scan(
			&obs.ID,
			&obs.OwnerID,
			&dateStr,
			&obs.DomesticAmount,
			&obs.Rate,
			&obs.ForeignAmount,
			&createdAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan forex_observation row: %w", err)
		}

		obs.Date, err = ParseTime(dateStr)
		if err != nil || obs.Date.IsZero() {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}

		obs.CreatedAt, err = ParseTime(createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}

		observations = append(observations, obs)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating forex_observation table: %w", err)
	}

	return observations, nil
}

// CreateObservation inserts a new currency-exchange observation.
func (r *ForexRepository) CreateObservation(obs model.ForexObservation) error {
	query := `
		INSERT INTO forex_observation (id, owner_id, date, domestic_amount, rate, foreign_amount, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		obs.ID,
		obs.OwnerID,
		FormatDate(obs.Date),
		obs.DomesticAmount,
		obs.Rate,
		obs.ForeignAmount,
		FormatTimestamp(obs.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert forex observation: %w", err)
	}
	return nil
}
