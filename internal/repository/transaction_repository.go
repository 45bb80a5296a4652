package repository

import (
	"database/sql"
	"fmt"

	"github.com/amhaziq/Net-Worth-Tracker-Backend/internal/model"
)

// TransactionRepository provides data access methods for the
// cash_transaction table.
type TransactionRepository struct {
	db *sql.DB
}

// NewTransactionRepository creates a new TransactionRepository with the provided database connection.
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

const transactionColumns = `id, owner_id, date, category, description, amount, account_id, created_at`

// GetTransactions retrieves all cash transactions for the owner, newest first.
func (r *TransactionRepository) GetTransactions(ownerID string) ([]model.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM cash_transaction
		WHERE owner_id = ?
		ORDER BY date DESC, created_at DESC
	`

	rows, err := r.db.Query(query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query cash_transaction table: %w", err)
	}
	defer rows.Close()

	transactions := []model.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cash_transaction table: %w", err)
	}

	return transactions, nil
}

// GetTransaction retrieves a single cash transaction by ID, scoped to the owner.
// Returns sql.ErrNoRows when no such transaction exists.
func (r *TransactionRepository) GetTransaction(id, ownerID string) (model.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM cash_transaction
		WHERE id = ? AND owner_id = ?
	`

	return scanTransaction(r.db.QueryRow(query, id, ownerID))
}

// SumUnallocated returns the sum of transaction amounts not linked to any
// balance account. This is the "Unallocated Cash" line of the balance sheet.
func (r *TransactionRepository) SumUnallocated(ownerID string) (float64, error) {
	var sum sql.NullFloat64
	err := r.db.QueryRow(
		`SELECT SUM(amount) FROM cash_transaction WHERE owner_id = ? AND account_id IS NULL`,
		ownerID,
	).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("failed to sum unallocated transactions: %w", err)
	}
	return sum.Float64, nil
}

// SumByAccount returns the per-account sums of linked transaction amounts.
// These sums are the additive overlay on top of each account's base value.
func (r *TransactionRepository) SumByAccount(ownerID string) (map[string]float64, error) {
	query := `
		SELECT account_id, SUM(amount)
		FROM cash_transaction
		WHERE owner_id = ? AND account_id IS NOT NULL
		GROUP BY account_id
	`

	rows, err := r.db.Query(query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum transactions per account: %w", err)
	}
	defer rows.Close()

	sums := make(map[string]float64)
	for rows.Next() {
		var accountID string
		var sum float64
		if err := rows.Scan(&accountID, &sum); err != nil {
			return nil, fmt.Errorf("failed to scan transaction sum: %w", err)
		}
		sums[accountID] = sum
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction sums: %w", err)
	}

	return sums, nil
}

// SumForAccount returns the sum of transaction amounts linked to one account.
func (r *TransactionRepository) SumForAccount(accountID string) (float64, error) {
	var sum sql.NullFloat64
	err := r.db.QueryRow(
		`SELECT SUM(amount) FROM cash_transaction WHERE account_id = ?`,
		accountID,
	).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("failed to sum transactions for account: %w", err)
	}
	return sum.Float64, nil
}

// CreateTransaction inserts a new cash transaction.
func (r *TransactionRepository) CreateTransaction(t model.Transaction) error {
	query := `
		INSERT INTO cash_transaction (` + transactionColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		t.ID,
		t.OwnerID,
		FormatDate(t.Date),
		t.Category,
		t.Description,
		t.Amount,
		nullable(t.AccountID),
		FormatTimestamp(t.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert cash transaction: %w", err)
	}
	return nil
}

// UpdateTransaction updates the mutable fields of a cash transaction.
func (r *TransactionRepository) UpdateTransaction(t model.Transaction) error {
	query := `
		UPDATE cash_transaction
		SET date = ?, category = ?, description = ?, amount = ?, account_id = ?
		WHERE id = ? AND owner_id = ?
	`

	_, err := r.db.Exec(query,
		FormatDate(t.Date),
		t.Category,
		t.Description,
		t.Amount,
		nullable(t.AccountID),
		t.ID,
		t.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("failed to update cash transaction: %w", err)
	}
	return nil
}

// DeleteTransaction removes a cash transaction, scoped to the owner.
// Returns the number of rows deleted.
func (r *TransactionRepository) DeleteTransaction(id, ownerID string) (int64, error) {
	result, err := r.db.Exec(`DELETE FROM cash_transaction WHERE id = ? AND owner_id = ?`, id, ownerID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete cash transaction: %w", err)
	}
	return result.RowsAffected()
}

func scanTransaction(s scanner) (model.Transaction, error) {
	var t model.Transaction
	var dateStr, createdAtStr string
	var accountID sql.NullString

	err := s.Scan(
		&t.ID,
		&t.OwnerID,
		&dateStr,
		&t.Category,
		&t.Description,
		&t.Amount,
		&accountID,
		&createdAtStr,
	)
	if err == sql.ErrNoRows {
		return model.Transaction{}, err
	}
	if err != nil {
		return model.Transaction{}, fmt.Errorf("failed to scan cash_transaction row: %w", err)
	}

	t.Date, err = ParseTime(dateStr)
	if err != nil || t.Date.IsZero() {
		return model.Transaction{}, fmt.Errorf("failed to parse date: %w", err)
	}

	t.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("failed to parse date: %w", err)
	}

	t.AccountID = accountID.String

	return t, nil
}
