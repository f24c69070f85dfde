package payments

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status is the lifecycle status of a payment record.
type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusPaid      Status = "paid"
	StatusException Status = "exception"
)

// NormalizeStatus validates and normalizes a status string.
func NormalizeStatus(value string) (Status, bool) {
	switch Status(value) {
	case StatusPending, StatusApproved, StatusPaid, StatusException:
		return Status(value), true
	default:
		return "", false
	}
}

// Record is a raw premium/receipt record for a sold product.
// Immutable once created except for Status and ExceptionReason.
type Record struct {
	ID              string
	ProductID       string
	Advisor         string
	Introducer      string
	Date            time.Time
	APE             decimal.Decimal
	Receipts        decimal.Decimal
	Status          Status
	ExceptionReason string
}

// Validate rejects malformed records at ingestion, never coercing values.
func (r Record) Validate() error {
	if r.ID == "" {
		return ErrEmptyRecordID
	}
	if r.ProductID == "" {
		return ErrEmptyProductRef
	}
	if r.Advisor == "" {
		return ErrEmptyAdvisor
	}
	if r.Date.IsZero() {
		return ErrZeroDate
	}
	if r.APE.IsNegative() {
		return ErrNegativeAPE
	}
	if r.Receipts.IsNegative() {
		return ErrNegativeReceipts
	}
	if _, ok := NormalizeStatus(string(r.Status)); !ok {
		return ErrInvalidStatus
	}
	return nil
}
