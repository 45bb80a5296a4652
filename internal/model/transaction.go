package model

import "time"

// Transaction is a cash ledger entry. When AccountID is set the amount
// contributes to that balance account's displayed value; unlinked amounts
// roll up into the Unallocated Cash line of the balance sheet.
type Transaction struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"ownerId"`
	Date        time.Time `json:"date"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	AccountID   string    `json:"accountId,omitempty"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
}
