package reporting

import (
	"time"

	"advisory-portal/internal/auth"
	commission "advisory-portal/internal/commission/domain"
	payments "advisory-portal/internal/payments/domain"
)

// Metric selects which monetary figure aggregations sum over.
type Metric string

const (
	MetricPool     Metric = "pool"
	MetricBase     Metric = "base"
	MetricAPE      Metric = "ape"
	MetricReceipts Metric = "receipts"
)

// Valid reports whether the metric is supported.
func (m Metric) Valid() bool {
	switch m {
	case MetricPool, MetricBase, MetricAPE, MetricReceipts:
		return true
	}
	return false
}

// Query is a report request. All filter dimensions combine conjunctively;
// an empty dimension means "no constraint on that dimension", never "match
// nothing". Columns and Dense only affect presentation, not which rows match.
type Query struct {
	From     time.Time
	To       time.Time
	Products []string
	Advisors []string
	Statuses []payments.Status
	Columns  []string
	Metric   Metric
	Dense    bool
}

// Normalize fills defaults and validates the query shape.
func (q *Query) Normalize() error {
	if !q.From.IsZero() && !q.To.IsZero() && q.From.After(q.To) {
		return ErrInvalidWindow
	}
	if q.Metric == "" {
		q.Metric = MetricPool
	}
	if !q.Metric.Valid() {
		return ErrUnknownMetric
	}
	return nil
}

// Filter keeps the rows matching every populated dimension of the query and
// visible under the caller's scope. Filtering is idempotent: applying the
// same query to its own output returns the output unchanged.
func (q Query) Filter(rows []commission.DetailRow, scope auth.Scope) []commission.DetailRow {
	products := toSet(q.Products)
	advisors := toSet(q.Advisors)
	statuses := make(map[payments.Status]struct{}, len(q.Statuses))
	for _, status := range q.Statuses {
		statuses[status] = struct{}{}
	}

	kept := make([]commission.DetailRow, 0, len(rows))
	for _, row := range rows {
		if !scope.Allows(row.Advisor) {
			continue
		}
		if !q.From.IsZero() && row.Date.Before(q.From) {
			continue
		}
		if !q.To.IsZero() && row.Date.After(q.To) {
			continue
		}
		if len(products) > 0 {
			if _, ok := products[row.ProductID]; !ok {
				continue
			}
		}
		if len(advisors) > 0 {
			if _, ok := advisors[row.Advisor]; !ok {
				continue
			}
		}
		if len(statuses) > 0 {
			if _, ok := statuses[row.Status]; !ok {
				continue
			}
		}
		kept = append(kept, row)
	}
	return kept
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		if v != "" {
			set[v] = struct{}{}
		}
	}
	return set
}
