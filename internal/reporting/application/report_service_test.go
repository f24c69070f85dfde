package application

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"advisory-portal/internal/auth"
	commission "advisory-portal/internal/commission/domain"
	payments "advisory-portal/internal/payments/domain"
	reporting "advisory-portal/internal/reporting/domain"
)

type staticRows struct {
	rows []commission.DetailRow
	err  error
}

func (s staticRows) ComputeRows(ctx context.Context, from, to time.Time) ([]commission.DetailRow, error) {
	return s.rows, s.err
}

func detailRow(id, productID, advisor string, date time.Time, pool string) commission.DetailRow {
	return commission.DetailRow{
		PaymentID:   id,
		Date:        date,
		ProductID:   productID,
		ProductName: "Product " + productID,
		Advisor:     advisor,
		Method:      commission.MethodAPE,
		APE:         decimal.RequireFromString(pool).Mul(decimal.NewFromInt(10)),
		Pool:        decimal.RequireFromString(pool),
		Status:      payments.StatusApproved,
	}
}

func on(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func executive() auth.Identity {
	return auth.Identity{FirmID: "firm-1", Role: auth.RoleExecutive, Subject: "exec@firm"}
}

func testRows() []commission.DetailRow {
	return []commission.DetailRow{
		detailRow("p1", "term", "amy@firm", on(2026, time.January, 5), "100"),
		detailRow("p2", "pension", "amy@firm", on(2026, time.February, 10), "200"),
		detailRow("p3", "term", "bob@firm", on(2026, time.March, 15), "300"),
	}
}

func TestComputeReport_AggregatesAgreeWithRows(t *testing.T) {
	service, err := NewReportService(staticRows{rows: testRows()}, nil, 0)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	report, err := service.ComputeReport(context.Background(), reporting.Query{}, executive())
	if err != nil {
		t.Fatalf("compute: %v", err)
	}

	rowSum := decimal.Zero
	for _, row := range report.Rows {
		rowSum = rowSum.Add(row.Pool)
	}
	if !report.Total.Equal(rowSum) {
		t.Fatalf("total %s != row sum %s", report.Total, rowSum)
	}

	seriesSum := decimal.Zero
	for _, point := range report.Series {
		seriesSum = seriesSum.Add(point.Total)
	}
	if !seriesSum.Equal(rowSum) {
		t.Fatalf("series sum %s != row sum %s", seriesSum, rowSum)
	}

	mixSum := decimal.Zero
	for _, slice := range report.Mix {
		mixSum = mixSum.Add(slice.Total)
	}
	if !mixSum.Equal(rowSum) {
		t.Fatalf("mix sum %s != row sum %s", mixSum, rowSum)
	}
}

func TestComputeReport_AdvisorSeesOnlyOwnRows(t *testing.T) {
	service, err := NewReportService(staticRows{rows: testRows()}, nil, 0)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	identity := auth.Identity{FirmID: "firm-1", Role: auth.RoleAdvisor, Subject: "amy@firm"}
	report, err := service.ComputeReport(context.Background(), reporting.Query{}, identity)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if len(report.Rows) != 2 {
		t.Fatalf("advisor sees %d rows, want 2", len(report.Rows))
	}
	for _, row := range report.Rows {
		if row.Advisor != "amy@firm" {
			t.Fatalf("advisor scope leaked row for %s", row.Advisor)
		}
	}
}

func TestComputeReport_RowCap(t *testing.T) {
	service, err := NewReportService(staticRows{rows: testRows()}, nil, 2)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	if _, err := service.ComputeReport(context.Background(), reporting.Query{}, executive()); !errors.Is(err, reporting.ErrReportTooLarge) {
		t.Fatalf("expected ErrReportTooLarge, got %v", err)
	}
}

func TestComputeReport_PropagatesSourceError(t *testing.T) {
	boom := errors.New("feed unavailable")
	service, err := NewReportService(staticRows{err: boom}, nil, 0)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	if _, err := service.ComputeReport(context.Background(), reporting.Query{}, executive()); !errors.Is(err, boom) {
		t.Fatalf("expected source error, got %v", err)
	}
}

func TestProject(t *testing.T) {
	all, err := Project(nil)
	if err != nil {
		t.Fatalf("project all: %v", err)
	}
	if len(all) != len(Columns) {
		t.Fatalf("empty selection projects %d columns, want all %d", len(all), len(Columns))
	}

	// The selection order is the output order, so saved templates reload
	// with the columns exactly as the user arranged them.
	subset, err := Project([]string{"pool", "date", "advisor"})
	if err != nil {
		t.Fatalf("project subset: %v", err)
	}
	keys := make([]string, len(subset))
	for i, column := range subset {
		keys[i] = column.Key
	}
	if strings.Join(keys, ",") != "pool,date,advisor" {
		t.Fatalf("projected order = %v, want pool,date,advisor", keys)
	}

	deduped, err := Project([]string{"advisor", "pool", "advisor"})
	if err != nil {
		t.Fatalf("project duplicate keys: %v", err)
	}
	if len(deduped) != 2 || deduped[0].Key != "advisor" || deduped[1].Key != "pool" {
		t.Fatalf("duplicate keys not collapsed to first occurrence: %v", deduped)
	}

	if _, err := Project([]string{"pool", "nonsense"}); !errors.Is(err, reporting.ErrUnknownColumn) {
		t.Fatalf("expected ErrUnknownColumn, got %v", err)
	}
}

func TestColumnCells(t *testing.T) {
	row := detailRow("p1", "term", "amy@firm", on(2026, time.January, 5), "1890")
	row.RatePercent = decimal.RequireFromString("3.5")
	row.MarginPercent = decimal.RequireFromString("10")
	row.Shares = []commission.RoleShare{
		{Role: commission.ShareAdvisor, Amount: decimal.RequireFromString("1228.5")},
	}

	byKey := make(map[string]Column, len(Columns))
	for _, column := range Columns {
		byKey[column.Key] = column
	}

	if got := byKey["date"].Cell(row); got != "2026-01-05" {
		t.Errorf("date cell = %s", got)
	}
	if got := byKey["pool"].Cell(row); got != "1890.00" {
		t.Errorf("pool cell = %s, want 1890.00", got)
	}
	if got := byKey["rate_percent"].Cell(row); got != "3.50" {
		t.Errorf("rate cell = %s, want 3.50", got)
	}
	if got := byKey["margin_percent"].Cell(row); got != "10.00" {
		t.Errorf("margin cell = %s, want 10.00", got)
	}
	if got := byKey["share_advisor"].Cell(row); got != "1228.50" {
		t.Errorf("advisor share cell = %s, want 1228.50", got)
	}
	if got := byKey["share_introducer"].Cell(row); got != "0.00" {
		t.Errorf("absent introducer share cell = %s, want 0.00", got)
	}
}
