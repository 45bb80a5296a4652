package repository

import (
	"database/sql"
	"fmt"

	"github.com/amhaziq/Net-Worth-Tracker-Backend/internal/model"
)

// BalanceRepository provides data access methods for the balance_account and
// balance_history tables. History rows are append-only; the only mutation
// ever applied to an account after creation is its base value (and display
// metadata on edit).
type BalanceRepository struct {
	db *sql.DB
}

// NewBalanceRepository creates a new BalanceRepository with the provided database connection.
func NewBalanceRepository(db *sql.DB) *BalanceRepository {
	return &BalanceRepository{db: db}
}

const balanceAccountColumns = `id, owner_id, classification, name, base_value, asset_type, liquidity_tier, obligation_type, created_at`

// GetAccounts retrieves all balance accounts for the owner.
func (r *BalanceRepository) GetAccounts(ownerID string) ([]model.BalanceAccount, error) {
	query := `
		SELECT ` + balanceAccountColumns + `
		FROM balance_account
		WHERE owner_id = ?
		ORDER BY created_at ASC
	`

	rows, err := r.db.Query(query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query balance_account table: %w", err)
	}
	defer rows.Close()

	accounts := []model.BalanceAccount{}
	for rows.Next() {
		acc, err := scanBalanceAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, acc)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating balance_account table: %w", err)
	}

	return accounts, nil
}

// GetAccount retrieves a single balance account by ID, scoped to the owner.
// Returns sql.ErrNoRows when no such account exists.
func (r *BalanceRepository) GetAccount(id, ownerID string) (model.BalanceAccount, error) {
	query := `
		SELECT ` + balanceAccountColumns + `
		FROM balance_account
		WHERE id = ? AND owner_id = ?
	`

	return scanBalanceAccount(r.db.QueryRow(query, id, ownerID))
}

// CreateAccount inserts a new balance account.
func (r *BalanceRepository) CreateAccount(acc model.BalanceAccount) error {
	query := `
		INSERT INTO balance_account (` + balanceAccountColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		acc.ID,
		acc.OwnerID,
		acc.Classification,
		acc.Name,
		acc.BaseValue,
		nullable(acc.AssetType),
		nullable(acc.LiquidityTier),
		nullable(acc.ObligationType),
		FormatTimestamp(acc.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert balance account: %w", err)
	}
	return nil
}

// ApplyEdit persists the outcome of a balance edit atomically: the edited
// account's new state, the contra account's new base value when one was
// used, and the history entry. A partial update would desynchronise net
// worth, so everything goes in one transaction.
func (r *BalanceRepository) ApplyEdit(account model.BalanceAccount, contra *model.BalanceAccount, entry model.BalanceHistoryEntry) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	updateQuery := `
		UPDATE balance_account
		SET name = ?, base_value = ?, asset_type = ?, liquidity_tier = ?, obligation_type = ?
		WHERE id = ? AND owner_id = ?
	`
	_, err = tx.Exec(updateQuery,
		account.Name,
		account.BaseValue,
		nullable(account.AssetType),
		nullable(account.LiquidityTier),
		nullable(account.ObligationType),
		account.ID,
		account.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("failed to update balance account: %w", err)
	}

	if contra != nil {
		_, err = tx.Exec(`UPDATE balance_account SET base_value = ? WHERE id = ? AND owner_id = ?`,
			contra.BaseValue, contra.ID, contra.OwnerID)
		if err != nil {
			return fmt.Errorf("failed to update contra account: %w", err)
		}
	}

	if err := insertHistory(tx, entry); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit balance edit: %w", err)
	}
	return nil
}

// ApplyAdjustment persists an additive adjustment and its history entry in
// one transaction.
func (r *BalanceRepository) ApplyAdjustment(account model.BalanceAccount, entry model.BalanceHistoryEntry) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`UPDATE balance_account SET base_value = ? WHERE id = ? AND owner_id = ?`,
		account.BaseValue, account.ID, account.OwnerID)
	if err != nil {
		return fmt.Errorf("failed to update balance account: %w", err)
	}

	if err := insertHistory(tx, entry); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit balance adjustment: %w", err)
	}
	return nil
}

// DeleteAccount unlinks all cash transactions referencing the account and
// then deletes it, in one transaction. Transactions are never deleted with
// the account; history rows go with it via the FK cascade.
func (r *BalanceRepository) DeleteAccount(id, ownerID string) (int64, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`UPDATE cash_transaction SET account_id = NULL WHERE account_id = ?`, id); err != nil {
		return 0, fmt.Errorf("failed to unlink transactions: %w", err)
	}

	result, err := tx.Exec(`DELETE FROM balance_account WHERE id = ? AND owner_id = ?`, id, ownerID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete balance account: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit account deletion: %w", err)
	}
	return deleted, nil
}

// GetHistory retrieves the audit trail for an account, newest first.
func (r *BalanceRepository) GetHistory(accountID string) ([]model.BalanceHistoryEntry, error) {
	query := `
		SELECT id, account_id, date, old_value, new_value, adjustment, contra_account_id, contra_account_name, description
		FROM balance_history
		WHERE account_id = ?
		ORDER BY date DESC
	`

	rows, err := r.db.Query(query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query balance_history table: %w", err)
	}
	defer rows.Close()

	entries := []model.BalanceHistoryEntry{}
	for rows.Next() {
		var e model.BalanceHistoryEntry
		var dateStr string
		var contraID, contraName, description sql.NullString

		err := rows.Scan(
			&e.ID,
			&e.AccountID,
			&dateStr,
			&e.OldValue,
			&e.NewValue,
			&e.Adjustment,
			&contraID,
			&contraName,
			&description,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan balance_history row: %w", err)
		}

		e.Date, err = ParseTime(dateStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}

		e.ContraAccountID = contraID.String
		e.ContraAccountName = contraName.String
		e.Description = description.String

		entries = append(entries, e)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating balance_history table: %w", err)
	}

	return entries, nil
}

func insertHistory(tx *sql.Tx, entry model.BalanceHistoryEntry) error {
	query := `
		INSERT INTO balance_history (id, account_id, date, old_value, new_value, adjustment, contra_account_id, contra_account_name, description)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := tx.Exec(query,
		entry.ID,
		entry.AccountID,
		FormatTimestamp(entry.Date),
		entry.OldValue,
		entry.NewValue,
		entry.Adjustment,
		nullable(entry.ContraAccountID),
		nullable(entry.ContraAccountName),
		nullable(entry.Description),
	)
	if err != nil {
		return fmt.Errorf("failed to insert balance history entry: %w", err)
	}
	return nil
}

func scanBalanceAccount(s scanner) (model.BalanceAccount, error) {
	var acc model.BalanceAccount
	var createdAtStr string
	var assetType, liquidityTier, obligationType sql.NullString

	err := s.Scan(
		&acc.ID,
		&acc.OwnerID,
		&acc.Classification,
		&acc.Name,
		&acc.BaseValue,
		&assetType,
		&liquidityTier,
		&obligationType,
		&createdAtStr,
	)
	if err == sql.ErrNoRows {
		return model.BalanceAccount{}, err
	}
	if err != nil {
		return model.BalanceAccount{}, fmt.Errorf("failed to scan balance_account row: %w", err)
	}

	acc.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.BalanceAccount{}, fmt.Errorf("failed to parse date: %w", err)
	}

	acc.AssetType = assetType.String
	acc.LiquidityTier = liquidityTier.String
	acc.ObligationType = obligationType.String

	return acc, nil
}

// nullable maps an empty string to NULL so optional columns stay NULL
// instead of storing empty strings.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
