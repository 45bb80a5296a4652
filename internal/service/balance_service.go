package service

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/amhaziq/Net-Worth-Tracker-Backend/internal/apperrors"
	"github.com/amhaziq/Net-Worth-Tracker-Backend/internal/model"
	"github.com/amhaziq/Net-Worth-Tracker-Backend/internal/repository"
)

// BalanceService maintains manually tracked balance-sheet accounts. An
// account's displayed value is its stored base value plus the sum of cash
// transactions linked to it, so edits that target a displayed value have to
// back-solve the base. Every edit appends an audit entry; the entry list is
// the definitive history of an account.
type BalanceService struct {
	balanceRepo     *repository.BalanceRepository
	transactionRepo *repository.TransactionRepository
}

// NewBalanceService creates a new BalanceService with the provided repository dependencies.
func NewBalanceService(balanceRepo *repository.BalanceRepository, transactionRepo *repository.TransactionRepository) *BalanceService {
	return &BalanceService{balanceRepo: balanceRepo, transactionRepo: transactionRepo}
}

// isAssetLike classifies an account by its classification string. Anything
// containing "Asset" or "Receivable" sits on the asset side; everything else
// is liability-like.
func isAssetLike(classification string) bool {
	return strings.Contains(classification, "Asset") || strings.Contains(classification, "Receivable")
}

// EditResult is the output of applying an edit: the updated account, the
// updated contra account when a transfer was requested, and the audit entry
// to append. Nothing is persisted by ApplyEdit itself.
type EditResult struct {
	Account model.BalanceAccount
	Contra  *model.BalanceAccount
	Entry   model.BalanceHistoryEntry
}

// ApplyEdit computes the state changes for setting an account's displayed
// value to newDisplayed. txnSum is the current sum of transactions linked to
// the account; the new base value back-solves to newDisplayed minus txnSum.
//
// When a contra account is given the difference moves double-entry style:
// if both accounts sit on the same side of the balance sheet the contra
// absorbs the opposite movement (its value decreases by the difference, money
// moved between pools), and if they sit on opposite sides the contra moves in
// the same direction (an asset drawdown against a liability, or vice versa).
// priorDisplayed overrides the derived old displayed value to allow
// back-dated corrections.
func ApplyEdit(account model.BalanceAccount, newDisplayed, txnSum float64, contra *model.BalanceAccount, priorDisplayed *float64, date time.Time, description string) EditResult {
	oldDisplayed := account.BaseValue + txnSum
	if priorDisplayed != nil {
		oldDisplayed = *priorDisplayed
	}
	diff := newDisplayed - oldDisplayed

	account.BaseValue = newDisplayed - txnSum

	entry := model.BalanceHistoryEntry{
		ID:          uuid.New().String(),
		AccountID:   account.ID,
		Date:        date,
		OldValue:    oldDisplayed,
		NewValue:    newDisplayed,
		Adjustment:  diff,
		Description: description,
	}

	var updatedContra *model.BalanceAccount
	if contra != nil {
		c := *contra
		if isAssetLike(account.Classification) == isAssetLike(c.Classification) {
			c.BaseValue -= diff
		} else {
			c.BaseValue += diff
		}
		updatedContra = &c
		entry.ContraAccountID = c.ID
		entry.ContraAccountName = c.Name
	}

	return EditResult{Account: account, Contra: updatedContra, Entry: entry}
}

// Accounts lists the owner's balance accounts.
func (s *BalanceService) Accounts(ownerID string) ([]model.BalanceAccount, error) {
	return s.balanceRepo.GetAccounts(ownerID)
}

// Account retrieves one balance account.
func (s *BalanceService) Account(id, ownerID string) (model.BalanceAccount, error) {
	return s.balanceRepo.GetAccount(id, ownerID)
}

// CreateAccount creates a balance account.
func (s *BalanceService) CreateAccount(acc model.BalanceAccount) (model.BalanceAccount, error) {
	if acc.ID == "" {
		acc.ID = uuid.New().String()
	}
	if acc.CreatedAt.IsZero() {
		acc.CreatedAt = time.Now().UTC()
	}
	if err := s.balanceRepo.CreateAccount(acc); err != nil {
		return model.BalanceAccount{}, err
	}
	return acc, nil
}

// EditAccount sets the account's displayed value, optionally transferring the
// difference against a contra account, and persists the account, contra, and
// audit entry in one transaction.
func (s *BalanceService) EditAccount(id, ownerID string, newDisplayed float64, contraID string, priorDisplayed *float64, date time.Time, description string) (EditResult, error) {
	account, err := s.balanceRepo.GetAccount(id, ownerID)
	if err != nil {
		return EditResult{}, err
	}

	txnSum, err := s.transactionRepo.SumForAccount(id)
	if err != nil {
		return EditResult{}, err
	}

	var contra *model.BalanceAccount
	if contraID != "" {
		c, err := s.balanceRepo.GetAccount(contraID, ownerID)
		if err != nil {
			return EditResult{}, apperrors.ErrContraAccountNotFound
		}
		contra = &c
	}

	result := ApplyEdit(account, newDisplayed, txnSum, contra, priorDisplayed, date, description)
	if err := s.balanceRepo.ApplyEdit(result.Account, result.Contra, result.Entry); err != nil {
		return EditResult{}, err
	}
	return result, nil
}

// AdjustAccount shifts the account's base value by amount and records the
// displayed-value movement in the audit history.
func (s *BalanceService) AdjustAccount(id, ownerID string, amount float64, date time.Time, description string) (model.BalanceAccount, error) {
	account, err := s.balanceRepo.GetAccount(id, ownerID)
	if err != nil {
		return model.BalanceAccount{}, err
	}

	txnSum, err := s.transactionRepo.SumForAccount(id)
	if err != nil {
		return model.BalanceAccount{}, err
	}

	oldDisplayed := account.BaseValue + txnSum
	account.BaseValue += amount

	entry := model.BalanceHistoryEntry{
		ID:          uuid.New().String(),
		AccountID:   account.ID,
		Date:        date,
		OldValue:    oldDisplayed,
		NewValue:    oldDisplayed + amount,
		Adjustment:  amount,
		Description: description,
	}

	if err := s.balanceRepo.ApplyAdjustment(account, entry); err != nil {
		return model.BalanceAccount{}, err
	}
	return account, nil
}

// History returns the account's audit entries, newest first.
func (s *BalanceService) History(accountID, ownerID string) ([]model.BalanceHistoryEntry, error) {
	if _, err := s.balanceRepo.GetAccount(accountID, ownerID); err != nil {
		return nil, err
	}
	return s.balanceRepo.GetHistory(accountID)
}

// DeleteAccount removes an account. Transactions linked to it are unlinked,
// never deleted; audit entries go with the account.
func (s *BalanceService) DeleteAccount(id, ownerID string) error {
	affected, err := s.balanceRepo.DeleteAccount(id, ownerID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperrors.ErrBalanceAccountNotFound
	}
	return nil
}
