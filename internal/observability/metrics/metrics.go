package metrics

import (
	"database/sql"
	"log"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "portal_"

	resultSuccess = "success"
	resultError   = "error"
	resultDenied  = "denied"
)

var (
	registerOnce sync.Once

	commissionComputeTotal   *prometheus.CounterVec
	commissionComputeLatency *prometheus.HistogramVec
	commissionRowsComputed   prometheus.Counter

	reportComputeTotal   *prometheus.CounterVec
	reportComputeLatency *prometheus.HistogramVec

	reportExportTotal   *prometheus.CounterVec
	reportExportLatency *prometheus.HistogramVec

	templateOpsTotal *prometheus.CounterVec

	paymentStatusTotal *prometheus.CounterVec
)

// Init registers portal metrics and DB-backed gauges.
func Init(db *sql.DB, logger *log.Logger) {
	registerOnce.Do(func() {
		commissionComputeTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "commission_compute_total",
				Help: "Total commission window computations by result",
			},
			[]string{"result"},
		)
		commissionComputeLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "commission_compute_latency_seconds",
				Help:    "Commission window computation latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		)
		commissionRowsComputed = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "commission_rows_computed_total",
				Help: "Total commission detail rows derived",
			},
		)

		reportComputeTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "report_compute_total",
				Help: "Total report computations by result",
			},
			[]string{"result"},
		)
		reportComputeLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "report_compute_latency_seconds",
				Help:    "Report computation latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		)

		reportExportTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "report_export_total",
				Help: "Total report export operations by format and result",
			},
			[]string{"format", "result"},
		)
		reportExportLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "report_export_latency_seconds",
				Help:    "Report export latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"format", "result"},
		)

		templateOpsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "template_operations_total",
				Help: "Total report template operations by type and result",
			},
			[]string{"operation", "result"},
		)

		paymentStatusTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "payment_status_updates_total",
				Help: "Total payment status updates by result",
			},
			[]string{"result"},
		)

		prometheus.MustRegister(
			commissionComputeTotal,
			commissionComputeLatency,
			commissionRowsComputed,
			reportComputeTotal,
			reportComputeLatency,
			reportExportTotal,
			reportExportLatency,
			templateOpsTotal,
			paymentStatusTotal,
		)

		if db != nil {
			registerDBMetrics(db, logger)
		}
	})
}

// ObserveCommissionCompute records one window computation.
func ObserveCommissionCompute(result string, rows int, duration time.Duration) {
	if result == "" {
		result = resultSuccess
	}
	if commissionComputeTotal != nil {
		commissionComputeTotal.WithLabelValues(result).Inc()
	}
	if commissionComputeLatency != nil {
		commissionComputeLatency.WithLabelValues(result).Observe(duration.Seconds())
	}
	if commissionRowsComputed != nil && rows > 0 {
		commissionRowsComputed.Add(float64(rows))
	}
}

// ObserveReportCompute records report computation latency and result.
func ObserveReportCompute(result string, duration time.Duration) {
	if result == "" {
		result = resultSuccess
	}
	if reportComputeTotal != nil {
		reportComputeTotal.WithLabelValues(result).Inc()
	}
	if reportComputeLatency != nil {
		reportComputeLatency.WithLabelValues(result).Observe(duration.Seconds())
	}
}

// ObserveReportExport records export latency and result.
func ObserveReportExport(format, result string, duration time.Duration) {
	if format == "" {
		format = "unknown"
	}
	if result == "" {
		result = resultSuccess
	}
	if reportExportTotal != nil {
		reportExportTotal.WithLabelValues(format, result).Inc()
	}
	if reportExportLatency != nil {
		reportExportLatency.WithLabelValues(format, result).Observe(duration.Seconds())
	}
}

// IncTemplateOp increments template operation counters.
func IncTemplateOp(operation, result string) {
	if operation == "" {
		operation = "unknown"
	}
	if result == "" {
		result = resultSuccess
	}
	if templateOpsTotal != nil {
		templateOpsTotal.WithLabelValues(operation, result).Inc()
	}
}

// IncPaymentStatusUpdate increments payment status update counters.
func IncPaymentStatusUpdate(result string) {
	if result == "" {
		result = resultSuccess
	}
	if paymentStatusTotal != nil {
		paymentStatusTotal.WithLabelValues(result).Inc()
	}
}

// Exported constants for callers.
const (
	ResultSuccess = resultSuccess
	ResultError   = resultError
	ResultDenied  = resultDenied
)
