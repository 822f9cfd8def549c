package services

import "errors"

// Domain errors returned by the core services. Controllers map these onto
// HTTP status codes; the scheduler treats ErrConcurrencyConflict as
// retryable on the next tick.
var (
	// ErrNotFound indicates an unknown record id or user
	ErrNotFound = errors.New("record not found")
	// ErrInvalidStateTransition indicates an operation on a terminal or
	// out-of-order state
	ErrInvalidStateTransition = errors.New("invalid state transition")
	// ErrInsufficientBalance indicates a debit exceeding the ledger balance
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrValidation indicates malformed input
	ErrValidation = errors.New("validation failed")
	// ErrConcurrencyConflict indicates a lost race on an investment's
	// accrual checkpoint
	ErrConcurrencyConflict = errors.New("concurrent modification detected")
)
