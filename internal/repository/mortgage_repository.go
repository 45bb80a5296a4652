package repository

import (
	"database/sql"
	"fmt"

	"github.com/amhaziq/Net-Worth-Tracker-Backend/internal/model"
)

// MortgageRepository provides data access methods for the mortgage and
// mortgage_event tables. Events are always returned sorted by date with
// creation time as the tie-breaker, which is the order the amortization
// engine replays them in.
type MortgageRepository struct {
	db *sql.DB
}

// NewMortgageRepository creates a new MortgageRepository with the provided database connection.
func NewMortgageRepository(db *sql.DB) *MortgageRepository {
	return &MortgageRepository{db: db}
}

const mortgageColumns = `id, owner_id, name, start_date, original_principal, term_years, has_mrta, mrta_original_amount, mrta_rate, created_at`

// GetMortgages retrieves all mortgages for the owner.
func (r *MortgageRepository) GetMortgages(ownerID string) ([]model.Mortgage, error) {
	query := `
		SELECT ` + mortgageColumns + `
		FROM mortgage
		WHERE owner_id = ?
		ORDER BY created_at ASC
	`

	rows, err := r.db.Query(query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query mortgage table: %w", err)
	}
	defer rows.Close()

	mortgages := []model.Mortgage{}
	for rows.Next() {
		m, err := scanMortgage(rows)
		if err != nil {
			return nil, err
		}
		mortgages = append(mortgages, m)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating mortgage table: %w", err)
	}

	return mortgages, nil
}

// GetMortgage retrieves a single mortgage by ID, scoped to the owner.
// Returns sql.ErrNoRows when no such mortgage exists.
func (r *MortgageRepository) GetMortgage(id, ownerID string) (model.Mortgage, error) {
	query := `
		SELECT ` + mortgageColumns + `
		FROM mortgage
		WHERE id = ? AND owner_id = ?
	`

	return scanMortgage(r.db.QueryRow(query, id, ownerID))
}

// CreateMortgage inserts a new mortgage.
func (r *MortgageRepository) CreateMortgage(m model.Mortgage) error {
	query := `
		INSERT INTO mortgage (` + mortgageColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		m.ID,
		m.OwnerID,
		m.Name,
		FormatDate(m.StartDate),
		m.OriginalPrincipal,
		m.TermYears,
		m.HasMRTA,
		m.MRTAOriginalAmount,
		m.MRTARate,
		FormatTimestamp(m.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert mortgage: %w", err)
	}
	return nil
}

// DeleteMortgage removes a mortgage and, through the FK cascade, its events.
// Returns the number of mortgage rows deleted.
func (r *MortgageRepository) DeleteMortgage(id, ownerID string) (int64, error) {
	result, err := r.db.Exec(`DELETE FROM mortgage WHERE id = ? AND owner_id = ?`, id, ownerID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete mortgage: %w", err)
	}
	return result.RowsAffected()
}

// GetEvents retrieves all events for a mortgage in replay order.
func (r *MortgageRepository) GetEvents(mortgageID string) ([]model.MortgageEvent, error) {
	query := `
		SELECT id, mortgage_id, date, type, value, balance_after, created_at
		FROM mortgage_event
		WHERE mortgage_id = ?
		ORDER BY date ASC, created_at ASC
	`

	rows, err := r.db.Query(query, mortgageID)
	if err != nil {
		return nil, fmt.Errorf("failed to query mortgage_event table: %w", err)
	}
	defer rows.Close()

	events := []model.MortgageEvent{}
	for rows.Next() {
		var ev model.MortgageEvent
		var dateStr, createdAtStr string
		var balanceAfter sql.NullFloat64

		err := rows.Scan(
			&ev.ID,
			&ev.MortgageID,
			&dateStr,
			&ev.Type,
			&ev.Value,
			&balanceAfter,
			&createdAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan mortgage_event row: %w", err)
		}

		ev.Date, err = ParseTime(dateStr)
		if err != nil || ev.Date.IsZero() {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}

		ev.CreatedAt, err = ParseTime(createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}

		if balanceAfter.Valid {
			v := balanceAfter.Float64
			ev.BalanceAfter = &v
		}

		events = append(events, ev)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating mortgage_event table: %w", err)
	}

	return events, nil
}

// CreateEvent inserts a new mortgage event.
func (r *MortgageRepository) CreateEvent(ev model.MortgageEvent) error {
	query := `
		INSERT INTO mortgage_event (id, mortgage_id, date, type, value, balance_after, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	var balanceAfter any
	if ev.BalanceAfter != nil {
		balanceAfter = *ev.BalanceAfter
	}

	_, err := r.db.Exec(query,
		ev.ID,
		ev.MortgageID,
		FormatDate(ev.Date),
		ev.Type,
		ev.Value,
		balanceAfter,
		FormatTimestamp(ev.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert mortgage event: %w", err)
	}
	return nil
}

func scanMortgage(s scanner) (model.Mortgage, error) {
	var m model.Mortgage
	var startDateStr, createdAtStr string
	var mrtaAmount, mrtaRate sql.NullFloat64

	err := s.Scan(
		&m.ID,
		&m.OwnerID,
		&m.Name,
		&startDateStr,
		&m.OriginalPrincipal,
		&m.TermYears,
		&m.HasMRTA,
		&mrtaAmount,
		&mrtaRate,
		&createdAtStr,
	)
	if err == sql.ErrNoRows {
		return model.Mortgage{}, err
	}
	if err != nil {
		return model.Mortgage{}, fmt.Errorf("failed to scan mortgage row: %w", err)
	}

	m.StartDate, err = ParseTime(startDateStr)
	if err != nil || m.StartDate.IsZero() {
		return model.Mortgage{}, fmt.Errorf("failed to parse date: %w", err)
	}

	m.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.Mortgage{}, fmt.Errorf("failed to parse date: %w", err)
	}

	m.MRTAOriginalAmount = mrtaAmount.Float64
	m.MRTARate = mrtaRate.Float64

	return m, nil
}
