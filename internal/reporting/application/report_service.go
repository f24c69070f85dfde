package application

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"advisory-portal/internal/auth"
	commission "advisory-portal/internal/commission/domain"
	reporting "advisory-portal/internal/reporting/domain"
)

// DefaultMaxRows caps report result sets when no override is configured.
const DefaultMaxRows = 10000

// RowSource produces commission detail rows for a payment window.
type RowSource interface {
	ComputeRows(ctx context.Context, from, to time.Time) ([]commission.DetailRow, error)
}

// Report is the full answer to one report query: the visible detail rows
// plus every aggregate derived from exactly those rows. Screen, export and
// aggregate views all read from the same filtered set, so their totals
// cannot disagree.
type Report struct {
	Rows   []commission.DetailRow
	Total  decimal.Decimal
	Series []reporting.SeriesPoint
	Mix    []reporting.MixSlice
	Growth decimal.Decimal
}

// ReportService computes scoped, filtered reports over commission rows.
type ReportService struct {
	source  RowSource
	teams   auth.TeamMembershipChecker
	maxRows int
}

// NewReportService constructs a ReportService. A nil teams checker widens
// manager visibility to the whole firm; maxRows <= 0 uses DefaultMaxRows.
func NewReportService(source RowSource, teams auth.TeamMembershipChecker, maxRows int) (*ReportService, error) {
	if source == nil {
		return nil, errors.New("report service: nil row source")
	}
	if maxRows <= 0 {
		maxRows = DefaultMaxRows
	}
	return &ReportService{source: source, teams: teams, maxRows: maxRows}, nil
}

// ComputeReport is the single entry point for report queries. The caller's
// visibility scope is folded into the filter step, then every aggregate is
// derived from the filtered rows.
func (s *ReportService) ComputeReport(ctx context.Context, query reporting.Query, identity auth.Identity) (*Report, error) {
	if err := query.Normalize(); err != nil {
		return nil, err
	}

	scope, err := auth.VisibilityFor(ctx, identity, s.teams)
	if err != nil {
		return nil, err
	}

	rows, err := s.source.ComputeRows(ctx, query.From, query.To)
	if err != nil {
		return nil, err
	}
	rows = query.Filter(rows, scope)
	if len(rows) > s.maxRows {
		return nil, reporting.ErrReportTooLarge
	}

	total := decimal.Zero
	for _, row := range rows {
		value, err := reporting.MetricValue(row, query.Metric)
		if err != nil {
			return nil, err
		}
		total = total.Add(value)
	}

	series, err := reporting.TimeSeries(rows, query.Metric, query.Dense, query.From, query.To)
	if err != nil {
		return nil, err
	}
	mix, err := reporting.ProductMix(rows, query.Metric)
	if err != nil {
		return nil, err
	}

	return &Report{
		Rows:   rows,
		Total:  total,
		Series: series,
		Mix:    mix,
		Growth: reporting.GrowthRate(series),
	}, nil
}
