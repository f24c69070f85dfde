package integration_test

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	payments "advisory-portal/internal/payments/domain"
	paypostgres "advisory-portal/internal/payments/infrastructure/postgres"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func TestPaymentFeed_Postgres(t *testing.T) {
	dsn := os.Getenv("PG_DSN")
	if dsn == "" {
		t.Skip("PG_DSN not set")
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if !tableExists(db, "payment_records") {
		t.Skip("payment_records missing; run migrations")
	}

	ctx := context.Background()
	advisor := "it-advisor@firm.test"
	january := time.Date(2026, time.January, 12, 0, 0, 0, 0, time.UTC)
	february := time.Date(2026, time.February, 9, 0, 0, 0, 0, time.UTC)

	_, _ = db.ExecContext(ctx, "DELETE FROM payment_records WHERE advisor_email = $1", advisor)

	insert := `
INSERT INTO payment_records (id, product_id, advisor_email, introducer, record_date, ape, receipts, status, exception_reason)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	if _, err := db.ExecContext(ctx, insert, "pay-it-1", "prod-it", advisor, "", january, "60000", "55000", "approved", ""); err != nil {
		t.Fatalf("insert pay-it-1: %v", err)
	}
	if _, err := db.ExecContext(ctx, insert, "pay-it-2", "prod-it", advisor, "intro@firm.test", february, "20000", "18000", "pending", ""); err != nil {
		t.Fatalf("insert pay-it-2: %v", err)
	}

	repo := paypostgres.NewPaymentRepository(db)

	records, err := repo.ListByWindow(ctx, january, january.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("list january: %v", err)
	}
	records = keepAdvisor(records, advisor)
	if len(records) != 1 || records[0].ID != "pay-it-1" {
		t.Fatalf("expected only pay-it-1 in january window, got %+v", records)
	}
	if records[0].APE.String() != "60000" {
		t.Fatalf("ape mismatch: got=%s", records[0].APE)
	}

	records, err = repo.ListByWindow(ctx, time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("list open window: %v", err)
	}
	if len(keepAdvisor(records, advisor)) != 2 {
		t.Fatalf("expected both records with open window bounds")
	}

	if err := repo.UpdateStatus(ctx, "pay-it-2", payments.StatusException, "chargeback under review"); err != nil {
		t.Fatalf("update status: %v", err)
	}
	records, err = repo.ListByWindow(ctx, february, february)
	if err != nil {
		t.Fatalf("list february: %v", err)
	}
	records = keepAdvisor(records, advisor)
	if len(records) != 1 || records[0].Status != payments.StatusException {
		t.Fatalf("expected pay-it-2 flagged as exception, got %+v", records)
	}
	if records[0].ExceptionReason != "chargeback under review" {
		t.Fatalf("exception reason not persisted: %q", records[0].ExceptionReason)
	}

	if err := repo.UpdateStatus(ctx, "pay-it-missing", payments.StatusPaid, ""); err != payments.ErrRecordNotFound {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func keepAdvisor(records []payments.Record, advisor string) []payments.Record {
	var kept []payments.Record
	for _, record := range records {
		if record.Advisor == advisor {
			kept = append(kept, record)
		}
	}
	return kept
}

func tableExists(db *sql.DB, table string) bool {
	var exists bool
	err := db.QueryRow(`
SELECT EXISTS (
	SELECT 1
	FROM information_schema.tables
	WHERE table_schema = 'public' AND table_name = $1
)`, table).Scan(&exists)
	if err != nil {
		return false
	}
	return exists
}
