package domain

import "errors"

// Sentinel errors for the trade service. errhttp maps these onto
// HTTP statuses at the edge.
var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrSelfDeal            = errors.New("cannot open a transaction on your own listing")
	ErrMissingOffer        = errors.New("sale transactions require an offered price")
	ErrInvalidOffer        = errors.New("offered price must not be negative")
	ErrInvalidTransition   = errors.New("invalid transaction status transition")
	ErrNotParticipant      = errors.New("user is not a participant of this transaction")
	ErrNotSeller           = errors.New("only the seller may decide this transaction")
)
