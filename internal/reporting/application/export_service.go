package application

import (
	"context"
	"errors"
	"time"

	"advisory-portal/internal/auth"
	reporting "advisory-portal/internal/reporting/domain"
)

// Format identifies an export rendering.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

// Valid reports whether the format is supported.
func (f Format) Valid() bool {
	switch f {
	case FormatCSV, FormatXLSX, FormatPDF:
		return true
	}
	return false
}

// ErrUnknownFormat indicates an unsupported export format.
var ErrUnknownFormat = errors.New("reporting: unknown export format")

// ReportExported is emitted after a successful export rendering.
type ReportExported struct {
	Subject    string
	Role       auth.Role
	Format     Format
	Rows       int
	OccurredAt time.Time
}

// ExportPublisher emits report exported events.
type ExportPublisher interface {
	PublishReportExported(ctx context.Context, event ReportExported) error
}

// Renderer turns a projected report into bytes for one format.
type Renderer interface {
	Render(report *Report, columns []Column, format Format) ([]byte, string, error)
}

// ExportService gates and renders report exports. It reuses ReportService
// for the data so an export always matches what the same caller sees on
// screen for the same query.
type ExportService struct {
	reports   *ReportService
	renderer  Renderer
	publisher ExportPublisher
	clock     Clock
}

// Clock returns the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock uses time.Now.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// NewExportService constructs an ExportService.
func NewExportService(reports *ReportService, renderer Renderer, publisher ExportPublisher, clock Clock) (*ExportService, error) {
	if reports == nil {
		return nil, errors.New("export service: nil report service")
	}
	if renderer == nil {
		return nil, errors.New("export service: nil renderer")
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &ExportService{reports: reports, renderer: renderer, publisher: publisher, clock: clock}, nil
}

// Export computes the caller's report and renders it in the requested
// format with the requested column projection. Roles without export
// permission are refused before any rows are computed.
func (s *ExportService) Export(ctx context.Context, query reporting.Query, identity auth.Identity, format Format) ([]byte, string, error) {
	if !auth.CanExport(identity.Role) {
		return nil, "", reporting.ErrExportDenied
	}
	if !format.Valid() {
		return nil, "", ErrUnknownFormat
	}

	columns, err := Project(query.Columns)
	if err != nil {
		return nil, "", err
	}

	report, err := s.reports.ComputeReport(ctx, query, identity)
	if err != nil {
		return nil, "", err
	}

	payload, contentType, err := s.renderer.Render(report, columns, format)
	if err != nil {
		return nil, "", err
	}

	if s.publisher != nil {
		event := ReportExported{
			Subject:    identity.Subject,
			Role:       identity.Role,
			Format:     format,
			Rows:       len(report.Rows),
			OccurredAt: s.clock.Now(),
		}
		if err := s.publisher.PublishReportExported(ctx, event); err != nil {
			return nil, "", err
		}
	}

	return payload, contentType, nil
}
