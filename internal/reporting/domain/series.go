package reporting

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	commission "advisory-portal/internal/commission/domain"
)

// SeriesPoint is one calendar-month bucket of a time series.
type SeriesPoint struct {
	Month time.Time // first day of the month, UTC
	Total decimal.Decimal
}

// MixSlice is one product's contribution to the filtered total.
type MixSlice struct {
	ProductID   string
	ProductName string
	Total       decimal.Decimal
	Percent     decimal.Decimal
}

// MetricValue extracts the queried figure from a row.
func MetricValue(row commission.DetailRow, metric Metric) (decimal.Decimal, error) {
	switch metric {
	case MetricPool:
		return row.Pool, nil
	case MetricBase:
		return row.Base, nil
	case MetricAPE:
		return row.APE, nil
	case MetricReceipts:
		return row.Receipts, nil
	}
	return decimal.Zero, ErrUnknownMetric
}

// TimeSeries buckets rows by calendar month and sums the metric per bucket.
// With dense false only months with at least one row appear; with dense true
// every month of the queried window is present, zero-filled. A zero from/to
// bound falls back to the earliest/latest occupied bucket. An empty input
// yields an empty series either way.
func TimeSeries(rows []commission.DetailRow, metric Metric, dense bool, from, to time.Time) ([]SeriesPoint, error) {
	totals := make(map[time.Time]decimal.Decimal)
	for _, row := range rows {
		value, err := MetricValue(row, metric)
		if err != nil {
			return nil, err
		}
		month := monthStart(row.Date)
		totals[month] = totals[month].Add(value)
	}
	if len(totals) == 0 {
		return []SeriesPoint{}, nil
	}

	months := make([]time.Time, 0, len(totals))
	for month := range totals {
		months = append(months, month)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })

	if dense {
		start, end := months[0], months[len(months)-1]
		if !from.IsZero() {
			start = monthStart(from)
		}
		if !to.IsZero() {
			end = monthStart(to)
		}
		filled := make([]time.Time, 0, len(months))
		for month := start; !month.After(end); month = month.AddDate(0, 1, 0) {
			filled = append(filled, month)
		}
		months = filled
	}

	series := make([]SeriesPoint, len(months))
	for i, month := range months {
		series[i] = SeriesPoint{Month: month, Total: totals[month]}
	}
	return series, nil
}

// ProductMix sums the metric per product and expresses each product's total
// as a percentage of the grand total, rounded to 2 places. When the grand
// total is zero every slice reports 0%, never a division error. Slices are
// ordered by descending total, ties broken by product id.
func ProductMix(rows []commission.DetailRow, metric Metric) ([]MixSlice, error) {
	totals := make(map[string]decimal.Decimal)
	names := make(map[string]string)
	for _, row := range rows {
		value, err := MetricValue(row, metric)
		if err != nil {
			return nil, err
		}
		totals[row.ProductID] = totals[row.ProductID].Add(value)
		names[row.ProductID] = row.ProductName
	}
	if len(totals) == 0 {
		return []MixSlice{}, nil
	}

	grand := decimal.Zero
	for _, total := range totals {
		grand = grand.Add(total)
	}

	slices := make([]MixSlice, 0, len(totals))
	for productID, total := range totals {
		percent := decimal.Zero
		if !grand.IsZero() {
			percent = total.Mul(hundred).DivRound(grand, 2)
		}
		slices = append(slices, MixSlice{
			ProductID:   productID,
			ProductName: names[productID],
			Total:       total,
			Percent:     percent,
		})
	}
	sort.Slice(slices, func(i, j int) bool {
		if !slices[i].Total.Equal(slices[j].Total) {
			return slices[i].Total.GreaterThan(slices[j].Total)
		}
		return slices[i].ProductID < slices[j].ProductID
	})
	return slices, nil
}

// GrowthRate is the percentage change from the first to the last point of a
// series, rounded to 2 places. Series shorter than two points grow 0%, and
// a zero first point also reports 0% rather than an undefined ratio.
func GrowthRate(series []SeriesPoint) decimal.Decimal {
	if len(series) < 2 {
		return decimal.Zero
	}
	first := series[0].Total
	if first.IsZero() {
		return decimal.Zero
	}
	last := series[len(series)-1].Total
	return last.Sub(first).Mul(hundred).DivRound(first, 2)
}

var hundred = decimal.NewFromInt(100)

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
