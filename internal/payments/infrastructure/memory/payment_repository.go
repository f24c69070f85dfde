package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	payments "advisory-portal/internal/payments/domain"
)

// PaymentRepository is an in-memory, seed-backed payments feed.
type PaymentRepository struct {
	mu   sync.RWMutex
	data map[string]payments.Record
}

// NewPaymentRepository constructs an empty repository.
func NewPaymentRepository() *PaymentRepository {
	return &PaymentRepository{data: make(map[string]payments.Record)}
}

// Seed loads records, validating each before accepting it.
func (r *PaymentRepository) Seed(records ...payments.Record) error {
	for _, record := range records {
		if err := record.Validate(); err != nil {
			return err
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, record := range records {
		r.data[record.ID] = record
	}
	return nil
}

// ListByWindow returns records with from <= date <= to, ordered by date.
// A zero bound leaves that side of the window open.
func (r *PaymentRepository) ListByWindow(ctx context.Context, from, to time.Time) ([]payments.Record, error) {
	_ = ctx
	r.mu.RLock()
	var records []payments.Record
	for _, record := range r.data {
		if !from.IsZero() && record.Date.Before(from) {
			continue
		}
		if !to.IsZero() && record.Date.After(to) {
			continue
		}
		records = append(records, record)
	}
	r.mu.RUnlock()

	sort.Slice(records, func(i, j int) bool {
		if !records[i].Date.Equal(records[j].Date) {
			return records[i].Date.Before(records[j].Date)
		}
		return records[i].ID < records[j].ID
	})
	return records, nil
}

// UpdateStatus mutates the status and exception reason of a record.
func (r *PaymentRepository) UpdateStatus(ctx context.Context, id string, status payments.Status, exceptionReason string) error {
	_ = ctx
	if _, ok := payments.NormalizeStatus(string(status)); !ok {
		return payments.ErrInvalidStatus
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.data[id]
	if !ok {
		return payments.ErrRecordNotFound
	}
	record.Status = status
	record.ExceptionReason = exceptionReason
	r.data[id] = record
	return nil
}
