package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrInvestmentEventNotFound indicates that an investment event with the given ID does not exist.
	ErrInvestmentEventNotFound = errors.New("investment event not found")

	// ErrMortgageNotFound indicates that a mortgage with the given ID does not exist.
	ErrMortgageNotFound = errors.New("mortgage not found")

	// ErrBalanceAccountNotFound indicates that a balance account with the given ID does not exist.
	ErrBalanceAccountNotFound = errors.New("balance account not found")

	// ErrTransactionNotFound indicates that a cash transaction with the given ID does not exist.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrContraAccountNotFound indicates that the contra account named in an
	// edit does not exist for the owner.
	ErrContraAccountNotFound = errors.New("contra account not found")
)

// Business logic errors represent validation failures or constraint violations.
var (
	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrEmptyID indicates that a required ID parameter is empty or missing.
	ErrEmptyID = errors.New("ID cannot be empty")

	// ErrMissingOwner indicates that a request did not identify an owner.
	ErrMissingOwner = errors.New("owner is required")

	// ErrInvalidDateRange indicates that the provided date range is invalid
	// (e.g., start date is after end date).
	ErrInvalidDateRange = errors.New("invalid date range")
)
