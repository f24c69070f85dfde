package application

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	catalog "advisory-portal/internal/catalog/domain"
	catalogmem "advisory-portal/internal/catalog/infrastructure/memory"
	commission "advisory-portal/internal/commission/domain"
	payments "advisory-portal/internal/payments/domain"
	paymentsmem "advisory-portal/internal/payments/infrastructure/memory"
)

type capturedEvents struct {
	events []CommissionComputed
}

func (p *capturedEvents) PublishCommissionComputed(ctx context.Context, event CommissionComputed) error {
	p.events = append(p.events, event)
	return nil
}

func seedFixture(t *testing.T, records ...payments.Record) (*paymentsmem.PaymentRepository, *catalogmem.ProductRepository) {
	t.Helper()

	products := catalogmem.NewProductRepository()
	if err := products.Seed(catalog.Product{
		ID:       "prod-term",
		Name:     "Term Assurance",
		Provider: "Aviva",
		Rate:     decimal.RequireFromString("0.03"),
		Margin:   decimal.RequireFromString("0.10"),
		Bands: []catalog.Band{
			{Threshold: decimal.NewFromInt(50000), Bonus: decimal.RequireFromString("0.005")},
		},
	}); err != nil {
		t.Fatalf("seed products: %v", err)
	}

	feed := paymentsmem.NewPaymentRepository()
	if err := feed.Seed(records...); err != nil {
		t.Fatalf("seed payments: %v", err)
	}
	return feed, products
}

func paymentOn(id, advisor string, day int, ape string) payments.Record {
	return payments.Record{
		ID:        id,
		ProductID: "prod-term",
		Advisor:   advisor,
		Date:      time.Date(2026, time.March, day, 0, 0, 0, 0, time.UTC),
		APE:       decimal.RequireFromString(ape),
		Receipts:  decimal.Zero,
		Status:    payments.StatusApproved,
	}
}

func window() (time.Time, time.Time) {
	return time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.March, 31, 0, 0, 0, 0, time.UTC)
}

func TestComputeRows_CumulativeBandCrossing(t *testing.T) {
	// Two payments of 30,000 each: the first rates at the 3% base, the
	// second carries cumulative APE to 60,000 and earns the band bonus.
	feed, products := seedFixture(t,
		paymentOn("pay-1", "amy@firm", 5, "30000"),
		paymentOn("pay-2", "amy@firm", 20, "30000"),
	)
	service, err := NewService(feed, products, commission.DefaultRoleTable(), nil, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	from, to := window()
	rows, err := service.ComputeRows(context.Background(), from, to)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if !rows[0].RatePercent.Equal(decimal.NewFromInt(3)) {
		t.Fatalf("first rate = %s%%, want 3", rows[0].RatePercent)
	}
	if !rows[1].RatePercent.Equal(decimal.RequireFromString("3.5")) {
		t.Fatalf("second rate = %s%%, want 3.5", rows[1].RatePercent)
	}
}

func TestComputeRows_CumulativeIsPerAdvisor(t *testing.T) {
	feed, products := seedFixture(t,
		paymentOn("pay-1", "amy@firm", 5, "45000"),
		paymentOn("pay-2", "bob@firm", 10, "45000"),
	)
	service, err := NewService(feed, products, commission.DefaultRoleTable(), nil, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	from, to := window()
	rows, err := service.ComputeRows(context.Background(), from, to)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	for _, row := range rows {
		if !row.RatePercent.Equal(decimal.NewFromInt(3)) {
			t.Fatalf("advisor %s rate = %s%%, want 3: volumes never pool across advisors", row.Advisor, row.RatePercent)
		}
	}
}

func TestComputeRows_SharesConserveRowPool(t *testing.T) {
	feed, products := seedFixture(t,
		paymentOn("pay-1", "amy@firm", 5, "60000"),
	)
	service, err := NewService(feed, products, commission.DefaultRoleTable(), nil, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	from, to := window()
	rows, err := service.ComputeRows(context.Background(), from, to)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}

	row := rows[0]
	shareSum := decimal.Zero
	for _, share := range row.Shares {
		shareSum = shareSum.Add(share.Amount)
	}
	if !shareSum.Equal(row.Pool.RoundBank(2)) {
		t.Fatalf("share sum %s != rounded pool %s", shareSum, row.Pool.RoundBank(2))
	}
	if !row.Share(commission.ShareIntroducer).IsZero() {
		t.Fatal("introducer got a share on a payment without one")
	}
}

func TestComputeRows_PublishesBatchEvent(t *testing.T) {
	feed, products := seedFixture(t,
		paymentOn("pay-1", "amy@firm", 5, "10000"),
		paymentOn("pay-2", "amy@firm", 8, "10000"),
	)
	publisher := &capturedEvents{}
	service, err := NewService(feed, products, commission.DefaultRoleTable(), publisher, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	from, to := window()
	if _, err := service.ComputeRows(context.Background(), from, to); err != nil {
		t.Fatalf("compute: %v", err)
	}
	if len(publisher.events) != 1 {
		t.Fatalf("events = %d, want 1", len(publisher.events))
	}
	if publisher.events[0].Rows != 2 {
		t.Fatalf("event rows = %d, want 2", publisher.events[0].Rows)
	}
}

func TestComputeRows_EmptyWindowPublishesNothing(t *testing.T) {
	feed, products := seedFixture(t)
	publisher := &capturedEvents{}
	service, err := NewService(feed, products, commission.DefaultRoleTable(), publisher, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	from, to := window()
	rows, err := service.ComputeRows(context.Background(), from, to)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if len(rows) != 0 || len(publisher.events) != 0 {
		t.Fatalf("rows = %d, events = %d, want 0/0", len(rows), len(publisher.events))
	}
}
