package payments

import "errors"

var (
	// ErrEmptyRecordID indicates a record without an identifier.
	ErrEmptyRecordID = errors.New("payments: empty record id")
	// ErrEmptyProductRef indicates a record without a product reference.
	ErrEmptyProductRef = errors.New("payments: empty product reference")
	// ErrEmptyAdvisor indicates a record without an advisor.
	ErrEmptyAdvisor = errors.New("payments: empty advisor")
	// ErrZeroDate indicates a record without a calendar date.
	ErrZeroDate = errors.New("payments: zero date")
	// ErrNegativeAPE indicates a negative APE amount.
	ErrNegativeAPE = errors.New("payments: negative ape")
	// ErrNegativeReceipts indicates a negative receipts amount.
	ErrNegativeReceipts = errors.New("payments: negative receipts")
	// ErrInvalidStatus indicates an unknown status value.
	ErrInvalidStatus = errors.New("payments: invalid status")
	// ErrRecordNotFound indicates a lookup missed.
	ErrRecordNotFound = errors.New("payments: record not found")
)
