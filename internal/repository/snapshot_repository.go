package repository

import (
	"database/sql"
	"fmt"

	"github.com/amhaziq/Net-Worth-Tracker-Backend/internal/model"
)

// SnapshotRepository provides data access methods for the
// portfolio_snapshot table.
type SnapshotRepository struct {
	db *sql.DB
}

// NewSnapshotRepository creates a new SnapshotRepository with the provided database connection.
func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// UpsertSnapshot inserts the snapshot, replacing any existing row for the
// same owner and date. Re-running the daily job is idempotent.
func (r *SnapshotRepository) UpsertSnapshot(s model.PortfolioSnapshot) error {
	query := `
		INSERT INTO portfolio_snapshot (owner_id, date, invested, market_value)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (owner_id, date) DO UPDATE SET
			invested = excluded.invested,
			market_value = excluded.market_value
	`

	_, err := r.db.Exec(query, s.OwnerID, FormatDate(s.Date), s.Invested, s.MarketValue)
	if err != nil {
		return fmt.Errorf("failed to upsert portfolio snapshot: %w", err)
	}
	return nil
}

// GetSnapshots retrieves the owner's snapshots in ascending date order,
// optionally bounded to [from, to] (inclusive, "2006-01-02" strings; empty
// bounds are open).
func (r *SnapshotRepository) GetSnapshots(ownerID, from, to string) ([]model.PortfolioSnapshot, error) {
	query := `
		SELECT owner_id, date, invested, market_value
		FROM portfolio_snapshot
		WHERE owner_id = ?
	`
	args := []any{ownerID}

	if from != "" {
		query += ` AND date >= ?`
		args = append(args, from)
	}
	if to != "" {
		query += ` AND date <= ?`
		args = append(args, to)
	}
	query += ` ORDER BY date ASC`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query portfolio_snapshot table: %w", err)
	}
	defer rows.Close()

	snapshots := []model.PortfolioSnapshot{}
	for rows.Next() {
		var s model.PortfolioSnapshot
		var dateStr string
		if err := rows.Scan(&s.OwnerID, &dateStr, &s.Invested, &s.MarketValue); err != nil {
			return nil, fmt.Errorf("failed to scan portfolio_snapshot row: %w", err)
		}
		s.Date, err = ParseTime(dateStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}
		snapshots = append(snapshots, s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating portfolio_snapshot table: %w", err)
	}

	return snapshots, nil
}
