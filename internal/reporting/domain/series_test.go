package reporting

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	commission "advisory-portal/internal/commission/domain"
	payments "advisory-portal/internal/payments/domain"
)

func row(id, productID, advisor string, date time.Time, pool string) commission.DetailRow {
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

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func TestTimeSeries_SparseSkipsEmptyMonths(t *testing.T) {
	rows := []commission.DetailRow{
		row("p1", "term", "amy@firm", day(2026, time.January, 5), "100"),
		row("p2", "term", "amy@firm", day(2026, time.January, 20), "50"),
		row("p3", "term", "amy@firm", day(2026, time.April, 1), "200"),
	}

	series, err := TimeSeries(rows, MetricPool, false, time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("series: %v", err)
	}
	if len(series) != 2 {
		t.Fatalf("sparse series has %d points, want 2", len(series))
	}
	if !series[0].Total.Equal(decimal.NewFromInt(150)) {
		t.Fatalf("january total = %s, want 150", series[0].Total)
	}
	if got := series[1].Month.Format("2006-01"); got != "2026-04" {
		t.Fatalf("second point month = %s, want 2026-04", got)
	}
}

func TestTimeSeries_DenseZeroFillsGaps(t *testing.T) {
	rows := []commission.DetailRow{
		row("p1", "term", "amy@firm", day(2026, time.January, 5), "100"),
		row("p2", "term", "amy@firm", day(2026, time.April, 1), "200"),
	}

	series, err := TimeSeries(rows, MetricPool, true, time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("series: %v", err)
	}
	if len(series) != 4 {
		t.Fatalf("dense series has %d points, want 4 (jan..apr)", len(series))
	}
	for _, i := range []int{1, 2} {
		if !series[i].Total.IsZero() {
			t.Errorf("gap month %s total = %s, want 0", series[i].Month.Format("2006-01"), series[i].Total)
		}
	}
}

func TestTimeSeries_DenseCoversQueriedWindow(t *testing.T) {
	rows := []commission.DetailRow{
		row("p1", "term", "amy@firm", day(2026, time.March, 5), "100"),
		row("p2", "term", "amy@firm", day(2026, time.May, 1), "200"),
	}

	series, err := TimeSeries(rows, MetricPool, true, day(2026, time.January, 1), day(2026, time.December, 31))
	if err != nil {
		t.Fatalf("series: %v", err)
	}
	if len(series) != 12 {
		t.Fatalf("dense series has %d points, want 12 (jan..dec)", len(series))
	}
	if got := series[0].Month.Format("2006-01"); got != "2026-01" {
		t.Fatalf("first point month = %s, want 2026-01", got)
	}
	if got := series[11].Month.Format("2006-01"); got != "2026-12" {
		t.Fatalf("last point month = %s, want 2026-12", got)
	}
	if !series[2].Total.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("march total = %s, want 100", series[2].Total)
	}
	for _, i := range []int{0, 1, 3, 5, 6, 7, 8, 9, 10, 11} {
		if !series[i].Total.IsZero() {
			t.Errorf("month %s total = %s, want 0", series[i].Month.Format("2006-01"), series[i].Total)
		}
	}
}

func TestTimeSeries_EmptyInput(t *testing.T) {
	series, err := TimeSeries(nil, MetricPool, true, time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("series: %v", err)
	}
	if len(series) != 0 {
		t.Fatalf("empty input produced %d points", len(series))
	}
}

func TestProductMix_PercentagesAgainstGrandTotal(t *testing.T) {
	rows := []commission.DetailRow{
		row("p1", "term", "amy@firm", day(2026, time.January, 5), "600"),
		row("p2", "pension", "amy@firm", day(2026, time.January, 6), "300"),
		row("p3", "pension", "bob@firm", day(2026, time.February, 1), "100"),
	}

	mix, err := ProductMix(rows, MetricPool)
	if err != nil {
		t.Fatalf("mix: %v", err)
	}
	if len(mix) != 2 {
		t.Fatalf("mix has %d slices, want 2", len(mix))
	}
	if mix[0].ProductID != "term" {
		t.Fatalf("slices not ordered by total: first is %s", mix[0].ProductID)
	}
	if !mix[0].Percent.Equal(decimal.NewFromInt(60)) {
		t.Fatalf("term percent = %s, want 60", mix[0].Percent)
	}

	// Mix totals must add up to the same figure detail rows sum to.
	sliceSum := decimal.Zero
	for _, slice := range mix {
		sliceSum = sliceSum.Add(slice.Total)
	}
	rowSum := decimal.Zero
	for _, r := range rows {
		rowSum = rowSum.Add(r.Pool)
	}
	if !sliceSum.Equal(rowSum) {
		t.Fatalf("mix sum %s != row sum %s", sliceSum, rowSum)
	}
}

func TestProductMix_ZeroGrandTotal(t *testing.T) {
	rows := []commission.DetailRow{
		row("p1", "term", "amy@firm", day(2026, time.January, 5), "0"),
		row("p2", "pension", "amy@firm", day(2026, time.January, 6), "0"),
	}

	mix, err := ProductMix(rows, MetricPool)
	if err != nil {
		t.Fatalf("mix: %v", err)
	}
	for _, slice := range mix {
		if !slice.Percent.IsZero() {
			t.Fatalf("slice %s percent = %s, want 0 on zero grand total", slice.ProductID, slice.Percent)
		}
	}
}

func TestProductMix_EmptyInput(t *testing.T) {
	mix, err := ProductMix(nil, MetricPool)
	if err != nil {
		t.Fatalf("mix: %v", err)
	}
	if len(mix) != 0 {
		t.Fatalf("empty input produced %d slices", len(mix))
	}
}

func TestGrowthRate(t *testing.T) {
	point := func(total string) SeriesPoint {
		return SeriesPoint{Total: decimal.RequireFromString(total)}
	}

	cases := []struct {
		name   string
		series []SeriesPoint
		want   string
	}{
		{"last over first", []SeriesPoint{point("100"), point("40"), point("150")}, "50"},
		{"decline", []SeriesPoint{point("200"), point("150")}, "-25"},
		{"single point", []SeriesPoint{point("100")}, "0"},
		{"empty", nil, "0"},
		{"zero first point", []SeriesPoint{point("0"), point("500")}, "0"},
	}
	for _, tc := range cases {
		if got := GrowthRate(tc.series); !got.Equal(decimal.RequireFromString(tc.want)) {
			t.Errorf("%s: growth = %s, want %s", tc.name, got, tc.want)
		}
	}
}

func TestMetricValue_Unknown(t *testing.T) {
	if _, err := MetricValue(commission.DetailRow{}, Metric("median")); err == nil {
		t.Fatal("expected error for unknown metric")
	}
}
