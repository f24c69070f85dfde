package application

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	catalog "advisory-portal/internal/catalog/domain"
	commission "advisory-portal/internal/commission/domain"
	"advisory-portal/internal/observability/metrics"
	payments "advisory-portal/internal/payments/domain"
)

// CommissionComputed is emitted after a payment window has been derived
// into commission detail rows.
type CommissionComputed struct {
	From       time.Time
	To         time.Time
	Rows       int
	TotalPool  string
	OccurredAt time.Time
}

// EventPublisher emits commission computed events.
type EventPublisher interface {
	PublishCommissionComputed(ctx context.Context, event CommissionComputed) error
}

// Clock returns the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock uses time.Now.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Service derives commission detail rows from the payments feed.
type Service struct {
	feed      payments.Feed
	catalog   catalog.Repository
	table     commission.RoleTable
	publisher EventPublisher
	clock     Clock
}

// NewService constructs the commission computation service.
func NewService(
	feed payments.Feed,
	products catalog.Repository,
	table commission.RoleTable,
	publisher EventPublisher,
	clock Clock,
) (*Service, error) {
	if feed == nil {
		return nil, errors.New("commission service: nil payments feed")
	}
	if products == nil {
		return nil, errors.New("commission service: nil product catalog")
	}
	if err := table.Validate(); err != nil {
		return nil, err
	}
	if clock == nil {
		clock = SystemClock{}
	}

	return &Service{
		feed:      feed,
		catalog:   products,
		table:     table,
		publisher: publisher,
		clock:     clock,
	}, nil
}

// ComputeRows derives one detail row per payment record in the window.
// Cumulative APE is tracked per advisor in date order across the window and
// includes the payment being rated, so a payment that carries an advisor
// over a band threshold earns that band's bonus.
func (s *Service) ComputeRows(ctx context.Context, from, to time.Time) ([]commission.DetailRow, error) {
	started := time.Now()
	rows, err := s.computeRows(ctx, from, to)
	if err != nil {
		metrics.ObserveCommissionCompute(metrics.ResultError, 0, time.Since(started))
		return nil, err
	}
	metrics.ObserveCommissionCompute(metrics.ResultSuccess, len(rows), time.Since(started))
	return rows, nil
}

func (s *Service) computeRows(ctx context.Context, from, to time.Time) ([]commission.DetailRow, error) {
	records, err := s.feed.ListByWindow(ctx, from, to)
	if err != nil {
		return nil, err
	}

	// Cumulative tracking depends on date order regardless of feed backend.
	sort.SliceStable(records, func(i, j int) bool {
		if !records[i].Date.Equal(records[j].Date) {
			return records[i].Date.Before(records[j].Date)
		}
		return records[i].ID < records[j].ID
	})

	products := make(map[string]catalog.Product, 8)
	cumulative := make(map[string]decimal.Decimal, 8)
	totalPool := decimal.Zero
	rows := make([]commission.DetailRow, 0, len(records))

	for _, record := range records {
		if err := record.Validate(); err != nil {
			return nil, err
		}

		product, ok := products[record.ProductID]
		if !ok {
			loaded, err := s.catalog.Get(ctx, record.ProductID)
			if err != nil {
				return nil, err
			}
			product = *loaded
			products[record.ProductID] = product
		}

		volume := cumulative[record.Advisor].Add(record.APE)
		cumulative[record.Advisor] = volume

		rate, err := commission.ResolveRate(product, volume)
		if err != nil {
			return nil, err
		}

		computation, err := commission.Compute(record, rate, product.Margin)
		if err != nil {
			return nil, err
		}

		var absent []commission.ShareRole
		if record.Introducer == "" {
			absent = append(absent, commission.ShareIntroducer)
		}
		shares, err := commission.Distribute(computation.Pool, s.table, absent...)
		if err != nil {
			return nil, err
		}

		rows = append(rows, commission.DetailRow{
			PaymentID:     record.ID,
			Date:          record.Date,
			Provider:      product.Provider,
			ProductID:     product.ID,
			ProductName:   product.Name,
			Advisor:       record.Advisor,
			Introducer:    record.Introducer,
			Method:        computation.Method,
			RatePercent:   rate.Mul(decimal.NewFromInt(100)),
			MarginPercent: product.Margin.Mul(decimal.NewFromInt(100)),
			APE:           record.APE,
			Receipts:      record.Receipts,
			Base:          computation.Base,
			Pool:          computation.Pool,
			Status:        record.Status,
			Shares:        shares,
		})
		totalPool = totalPool.Add(computation.Pool)
	}

	if s.publisher != nil && len(rows) > 0 {
		event := CommissionComputed{
			From:       from,
			To:         to,
			Rows:       len(rows),
			TotalPool:  totalPool.RoundBank(2).StringFixed(2),
			OccurredAt: s.clock.Now(),
		}
		if err := s.publisher.PublishCommissionComputed(ctx, event); err != nil {
			return nil, err
		}
	}

	return rows, nil
}

// RoleTable exposes the configured distribution table.
func (s *Service) RoleTable() commission.RoleTable {
	return s.table
}
