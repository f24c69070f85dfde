package apihttp

import (
	"errors"
	"net/http"
	"strings"
	"time"

	payments "advisory-portal/internal/payments/domain"
	reporting "advisory-portal/internal/reporting/domain"
)

const timeLayout = time.RFC3339

// parseReportQuery builds a report query from request parameters. Dates
// accept RFC3339 or plain YYYY-MM-DD; list parameters are comma separated.
func parseReportQuery(r *http.Request) (reporting.Query, error) {
	var query reporting.Query
	var err error

	if query.From, err = parseTimeQuery(r, "from"); err != nil {
		return reporting.Query{}, err
	}
	if query.To, err = parseTimeQuery(r, "to"); err != nil {
		return reporting.Query{}, err
	}

	query.Products = splitList(r.URL.Query().Get("products"))
	query.Advisors = splitList(r.URL.Query().Get("advisors"))
	for _, value := range splitList(r.URL.Query().Get("statuses")) {
		status, ok := payments.NormalizeStatus(value)
		if !ok {
			return reporting.Query{}, errors.New("unknown status: " + value)
		}
		query.Statuses = append(query.Statuses, status)
	}

	query.Columns = splitList(r.URL.Query().Get("columns"))
	query.Metric = reporting.Metric(r.URL.Query().Get("metric"))
	query.Dense = r.URL.Query().Get("dense") == "true"

	if err := query.Normalize(); err != nil {
		return reporting.Query{}, err
	}
	return query, nil
}

func parseTimeQuery(r *http.Request, key string) (time.Time, error) {
	value := r.URL.Query().Get(key)
	if value == "" {
		return time.Time{}, nil
	}
	if parsed, err := time.Parse(timeLayout, value); err == nil {
		return parsed.UTC(), nil
	}
	if parsed, err := time.Parse("2006-01-02", value); err == nil {
		return parsed.UTC(), nil
	}
	return time.Time{}, errors.New(key + " must be RFC3339 or YYYY-MM-DD")
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
