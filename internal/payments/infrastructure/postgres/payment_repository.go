package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	payments "advisory-portal/internal/payments/domain"
)

const defaultPaymentsTable = "payment_records"

// PaymentRepository is a Postgres implementation of the payments feed.
type PaymentRepository struct {
	db    *sql.DB
	table string
}

// PaymentOption configures the repository.
type PaymentOption func(*PaymentRepository)

// WithPaymentsTable overrides the table name.
func WithPaymentsTable(table string) PaymentOption {
	return func(repo *PaymentRepository) {
		if table != "" {
			repo.table = table
		}
	}
}

// NewPaymentRepository constructs a repository.
func NewPaymentRepository(db *sql.DB, opts ...PaymentOption) *PaymentRepository {
	repo := &PaymentRepository{db: db, table: defaultPaymentsTable}
	for _, opt := range opts {
		opt(repo)
	}
	return repo
}

// ListByWindow returns records with from <= record_date <= to, ordered by date.
// A zero bound leaves that side of the window open.
func (r *PaymentRepository) ListByWindow(ctx context.Context, from, to time.Time) ([]payments.Record, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("payment repo: nil db")
	}

	query := fmt.Sprintf(`
SELECT id, product_id, advisor_email, introducer, record_date, ape, receipts, status, exception_reason
FROM %s
WHERE ($1::timestamptz IS NULL OR record_date >= $1)
	AND ($2::timestamptz IS NULL OR record_date <= $2)
ORDER BY record_date ASC, id ASC`, r.table)

	rows, err := r.db.QueryContext(ctx, query, nullableTime(from), nullableTime(to))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []payments.Record
	for rows.Next() {
		var record payments.Record
		var ape, receipts, status string
		var introducer, exceptionReason sql.NullString
		if err := rows.Scan(
			&record.ID,
			&record.ProductID,
			&record.Advisor,
			&introducer,
			&record.Date,
			&ape,
			&receipts,
			&status,
			&exceptionReason,
		); err != nil {
			return nil, err
		}
		record.Date = record.Date.UTC()
		record.Introducer = introducer.String
		record.ExceptionReason = exceptionReason.String
		if record.APE, err = decimal.NewFromString(ape); err != nil {
			return nil, fmt.Errorf("payment repo: bad ape for %s: %w", record.ID, err)
		}
		if record.Receipts, err = decimal.NewFromString(receipts); err != nil {
			return nil, fmt.Errorf("payment repo: bad receipts for %s: %w", record.ID, err)
		}
		normalized, ok := payments.NormalizeStatus(status)
		if !ok {
			return nil, fmt.Errorf("payment repo: bad status %q for %s", status, record.ID)
		}
		record.Status = normalized
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

func nullableTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC()
}

// UpdateStatus mutates the status and exception reason of a record.
func (r *PaymentRepository) UpdateStatus(ctx context.Context, id string, status payments.Status, exceptionReason string) error {
	if r == nil || r.db == nil {
		return errors.New("payment repo: nil db")
	}
	if id == "" {
		return payments.ErrEmptyRecordID
	}
	if _, ok := payments.NormalizeStatus(string(status)); !ok {
		return payments.ErrInvalidStatus
	}

	query := fmt.Sprintf(`
UPDATE %s
SET status = $1, exception_reason = $2, updated_at = NOW()
WHERE id = $3`, r.table)

	result, err := r.db.ExecContext(ctx, query, string(status), exceptionReason, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return payments.ErrRecordNotFound
	}
	return nil
}
