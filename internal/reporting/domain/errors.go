package reporting

import "errors"

var (
	// ErrInvalidWindow indicates a query whose from date is after its to date.
	ErrInvalidWindow = errors.New("reporting: from date after to date")
	// ErrUnknownMetric indicates an unsupported aggregation metric.
	ErrUnknownMetric = errors.New("reporting: unknown metric")
	// ErrUnknownColumn indicates a projection column with no registered definition.
	ErrUnknownColumn = errors.New("reporting: unknown column")
	// ErrReportTooLarge indicates a result set over the configured row cap.
	ErrReportTooLarge = errors.New("reporting: result exceeds row cap")
	// ErrExportDenied indicates a caller whose role may not export.
	ErrExportDenied = errors.New("reporting: export not permitted for role")
)
