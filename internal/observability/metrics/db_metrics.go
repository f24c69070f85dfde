package metrics

import (
	"database/sql"
	"log"

	"github.com/prometheus/client_golang/prometheus"
)

func registerDBMetrics(db *sql.DB, logger *log.Logger) {
	prometheus.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: metricPrefix + "payment_records_total",
			Help: "Payment records in the feed",
		},
		func() float64 {
			return queryCount(db, logger, "SELECT COUNT(*) FROM payment_records")
		},
	))

	prometheus.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: metricPrefix + "payment_exceptions_pending",
			Help: "Payment records currently in exception status",
		},
		func() float64 {
			return queryCount(db, logger, "SELECT COUNT(*) FROM payment_records WHERE status = 'exception'")
		},
	))

	prometheus.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: metricPrefix + "report_templates_total",
			Help: "Saved report templates",
		},
		func() float64 {
			return queryCount(db, logger, "SELECT COUNT(*) FROM report_templates")
		},
	))
}

func queryCount(db *sql.DB, logger *log.Logger, query string) float64 {
	if db == nil {
		return 0
	}
	var count int64
	if err := db.QueryRow(query).Scan(&count); err != nil {
		if logger != nil {
			logger.Printf("metrics query failed: %v", err)
		}
		return 0
	}
	if count < 0 {
		return 0
	}
	return float64(count)
}
