package repository

import (
	"database/sql"
	"fmt"

	"github.com/amhaziq/Net-Worth-Tracker-Backend/internal/model"
)

// InvestmentRepository provides data access methods for the investment_event
// table. Events are always returned in replay order: date ascending with
// creation time as the tie-breaker, so same-day events replay in the order
// they were recorded.
type InvestmentRepository struct {
	db *sql.DB
}

// NewInvestmentRepository creates a new InvestmentRepository with the provided database connection.
func NewInvestmentRepository(db *sql.DB) *InvestmentRepository {
	return &InvestmentRepository{db: db}
}

const investmentEventColumns = `id, owner_id, date, type, symbol, market, brokerage, quantity, unit_price, fees, currency, note, created_at`

// GetEvents retrieves all investment events for the owner in replay order.
func (r *InvestmentRepository) GetEvents(ownerID string) ([]model.InvestmentEvent, error) {
	query := `
		SELECT ` + investmentEventColumns + `
		FROM investment_event
		WHERE owner_id = ?
		ORDER BY date ASC, created_at ASC
	`

	rows, err := r.db.Query(query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query investment_event table: %w", err)
	}
	defer rows.Close()

	events := []model.InvestmentEvent{}
	for rows.Next() {
		ev, err := scanInvestmentEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating investment_event table: %w", err)
	}

	return events, nil
}

// GetEvent retrieves a single investment event by ID, scoped to the owner.
// Returns sql.ErrNoRows when no such event exists.
func (r *InvestmentRepository) GetEvent(id, ownerID string) (model.InvestmentEvent, error) {
	query := `
		SELECT ` + investmentEventColumns + `
		FROM investment_event
		WHERE id = ? AND owner_id = ?
	`

	row := r.db.QueryRow(query, id, ownerID)
	ev, err := scanInvestmentEvent(row)
	if err != nil {
		return model.InvestmentEvent{}, err
	}
	return ev, nil
}

// CreateEvent inserts a new investment event.
func (r *InvestmentRepository) CreateEvent(ev model.InvestmentEvent) error {
	query := `
		INSERT INTO investment_event (` + investmentEventColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		ev.ID,
		ev.OwnerID,
		FormatDate(ev.Date),
		ev.Type,
		ev.Symbol,
		ev.Market,
		ev.Brokerage,
		ev.Quantity,
		ev.UnitPrice,
		ev.Fees,
		ev.Currency,
		ev.Note,
		FormatTimestamp(ev.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert investment event: %w", err)
	}
	return nil
}

// DeleteEvent removes an investment event, scoped to the owner.
// Returns the number of rows deleted.
func (r *InvestmentRepository) DeleteEvent(id, ownerID string) (int64, error) {
	result, err := r.db.Exec(`DELETE FROM investment_event WHERE id = ? AND owner_id = ?`, id, ownerID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete investment event: %w", err)
	}
	return result.RowsAffected()
}

// DistinctOwners returns the owner IDs that have at least one investment
// event. Used by the snapshot job to fan out per owner.
func (r *InvestmentRepository) DistinctOwners() ([]string, error) {
	rows, err := r.db.Query(`SELECT DISTINCT owner_id FROM investment_event`)
	if err != nil {
		return nil, fmt.Errorf("failed to query investment_event owners: %w", err)
	}
	defer rows.Close()

	owners := []string{}
	for rows.Next() {
		var owner string
		if err := rows.Scan(&owner); err != nil {
			return nil, fmt.Errorf("failed to scan owner_id: %w", err)
		}
		owners = append(owners, owner)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating investment_event owners: %w", err)
	}

	return owners, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanInvestmentEvent(s scanner) (model.InvestmentEvent, error) {
	var ev model.InvestmentEvent
	var dateStr, createdAtStr string
	var brokerage, note sql.NullString

	err := s.Scan(
		&ev.ID,
		&ev.OwnerID,
		&dateStr,
		&ev.Type,
		&ev.Symbol,
		&ev.Market,
		&brokerage,
		&ev.Quantity,
		&ev.UnitPrice,
		&ev.Fees,
		&ev.Currency,
		&note,
		&createdAtStr,
	)
	if err == sql.ErrNoRows {
		return model.InvestmentEvent{}, err
	}
	if err != nil {
		return model.InvestmentEvent{}, fmt.Errorf("failed to scan investment_event row: %w", err)
	}

	ev.Date, err = ParseTime(dateStr)
	if err != nil || ev.Date.IsZero() {
		return model.InvestmentEvent{}, fmt.Errorf("failed to parse date: %w", err)
	}

	ev.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.InvestmentEvent{}, fmt.Errorf("failed to parse date: %w", err)
	}

	ev.Brokerage = brokerage.String
	ev.Note = note.String

	return ev, nil
}
