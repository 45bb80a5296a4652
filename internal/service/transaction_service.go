package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/amhaziq/Net-Worth-Tracker-Backend/internal/apperrors"
	"github.com/amhaziq/Net-Worth-Tracker-Backend/internal/model"
	"github.com/amhaziq/Net-Worth-Tracker-Backend/internal/repository"
)

// TransactionService manages the cash ledger. Transactions linked to a
// balance account overlay its displayed value; unlinked ones roll up into
// unallocated cash.
type TransactionService struct {
	transactionRepo *repository.TransactionRepository
	balanceRepo     *repository.BalanceRepository
}

// NewTransactionService creates a new TransactionService with the provided repository dependencies.
func NewTransactionService(transactionRepo *repository.TransactionRepository, balanceRepo *repository.BalanceRepository) *TransactionService {
	return &TransactionService{transactionRepo: transactionRepo, balanceRepo: balanceRepo}
}

// Transactions lists the owner's cash transactions, newest first.
func (s *TransactionService) Transactions(ownerID string) ([]model.Transaction, error) {
	return s.transactionRepo.GetTransactions(ownerID)
}

// CreateTransaction records a cash transaction. A linked account must exist
// and belong to the same owner.
func (s *TransactionService) CreateTransaction(t model.Transaction) (model.Transaction, error) {
	if t.AccountID != "" {
		if _, err := s.balanceRepo.GetAccount(t.AccountID, t.OwnerID); err != nil {
			return model.Transaction{}, apperrors.ErrBalanceAccountNotFound
		}
	}

	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	if err := s.transactionRepo.CreateTransaction(t); err != nil {
		return model.Transaction{}, err
	}
	return t, nil
}

// UpdateTransaction replaces the mutable fields of a cash transaction.
func (s *TransactionService) UpdateTransaction(t model.Transaction) (model.Transaction, error) {
	existing, err := s.transactionRepo.GetTransaction(t.ID, t.OwnerID)
	if err != nil {
		return model.Transaction{}, apperrors.ErrTransactionNotFound
	}

	if t.AccountID != "" && t.AccountID != existing.AccountID {
		if _, err := s.balanceRepo.GetAccount(t.AccountID, t.OwnerID); err != nil {
			return model.Transaction{}, apperrors.ErrBalanceAccountNotFound
		}
	}

	t.CreatedAt = existing.CreatedAt
	if err := s.transactionRepo.UpdateTransaction(t); err != nil {
		return model.Transaction{}, err
	}
	return t, nil
}

// DeleteTransaction removes a cash transaction.
func (s *TransactionService) DeleteTransaction(id, ownerID string) error {
	affected, err := s.transactionRepo.DeleteTransaction(id, ownerID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperrors.ErrTransactionNotFound
	}
	return nil
}
