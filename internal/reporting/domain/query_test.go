package reporting

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"advisory-portal/internal/auth"
	commission "advisory-portal/internal/commission/domain"
	payments "advisory-portal/internal/payments/domain"
)

var allRows = auth.Scope{All: true}

func sampleRows() []commission.DetailRow {
	rows := []commission.DetailRow{
		row("p1", "term", "amy@firm", day(2026, time.January, 5), "100"),
		row("p2", "pension", "amy@firm", day(2026, time.February, 10), "200"),
		row("p3", "term", "bob@firm", day(2026, time.March, 15), "300"),
		row("p4", "pension", "bob@firm", day(2026, time.April, 20), "400"),
	}
	rows[2].Status = payments.StatusPending
	return rows
}

func TestQueryNormalize(t *testing.T) {
	q := Query{}
	if err := q.Normalize(); err != nil {
		t.Fatalf("normalize empty query: %v", err)
	}
	if q.Metric != MetricPool {
		t.Fatalf("default metric = %s, want pool", q.Metric)
	}

	bad := Query{From: day(2026, time.March, 1), To: day(2026, time.January, 1)}
	if err := bad.Normalize(); !errors.Is(err, ErrInvalidWindow) {
		t.Fatalf("expected ErrInvalidWindow, got %v", err)
	}

	unknown := Query{Metric: Metric("median")}
	if err := unknown.Normalize(); !errors.Is(err, ErrUnknownMetric) {
		t.Fatalf("expected ErrUnknownMetric, got %v", err)
	}
}

func TestFilter_EmptyDimensionsMatchEverything(t *testing.T) {
	rows := sampleRows()
	kept := Query{}.Filter(rows, allRows)
	if len(kept) != len(rows) {
		t.Fatalf("kept %d rows, want %d", len(kept), len(rows))
	}
}

func TestFilter_DimensionsAreConjunctive(t *testing.T) {
	q := Query{
		Products: []string{"pension"},
		Advisors: []string{"bob@firm"},
		Statuses: []payments.Status{payments.StatusApproved},
	}
	kept := q.Filter(sampleRows(), allRows)
	if len(kept) != 1 || kept[0].PaymentID != "p4" {
		t.Fatalf("kept = %+v, want only p4", kept)
	}
}

func TestFilter_WindowBoundsInclusive(t *testing.T) {
	q := Query{From: day(2026, time.February, 10), To: day(2026, time.March, 15)}
	kept := q.Filter(sampleRows(), allRows)
	if len(kept) != 2 || kept[0].PaymentID != "p2" || kept[1].PaymentID != "p3" {
		t.Fatalf("kept = %+v, want p2 and p3", kept)
	}
}

func TestFilter_ScopeRestrictsAdvisors(t *testing.T) {
	scope := auth.Scope{Advisors: map[string]struct{}{"amy@firm": {}}}
	kept := Query{}.Filter(sampleRows(), scope)
	for _, r := range kept {
		if r.Advisor != "amy@firm" {
			t.Fatalf("scope leaked row for %s", r.Advisor)
		}
	}
	if len(kept) != 2 {
		t.Fatalf("kept %d rows, want 2", len(kept))
	}
}

func TestFilter_Idempotent(t *testing.T) {
	q := Query{
		Products: []string{"term", "pension"},
		Statuses: []payments.Status{payments.StatusApproved},
		From:     day(2026, time.January, 1),
		To:       day(2026, time.December, 31),
	}
	once := q.Filter(sampleRows(), allRows)
	twice := q.Filter(once, allRows)
	if !reflect.DeepEqual(once, twice) {
		t.Fatal("filtering its own output changed the result")
	}
}
