package apihttp

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"advisory-portal/internal/audit"
	"advisory-portal/internal/auth"
	commission "advisory-portal/internal/commission/domain"
	"advisory-portal/internal/observability/metrics"
	"advisory-portal/internal/reporting/application"
	reporting "advisory-portal/internal/reporting/domain"
)

// ReportsHandler serves commission report queries.
type ReportsHandler struct {
	reports *application.ReportService
	auditor audit.Logger
}

// NewReportsHandler constructs a ReportsHandler.
func NewReportsHandler(reports *application.ReportService, auditor audit.Logger) *ReportsHandler {
	return &ReportsHandler{reports: reports, auditor: auditor}
}

type reportRow struct {
	PaymentID     string            `json:"payment_id"`
	Date          string            `json:"date"`
	Provider      string            `json:"provider"`
	ProductID     string            `json:"product_id"`
	ProductName   string            `json:"product_name"`
	Advisor       string            `json:"advisor"`
	Introducer    string            `json:"introducer,omitempty"`
	Method        string            `json:"method"`
	RatePercent   string            `json:"rate_percent"`
	MarginPercent string            `json:"margin_percent"`
	APE           string            `json:"ape"`
	Receipts      string            `json:"receipts"`
	Base          string            `json:"base"`
	Pool          string            `json:"pool"`
	Status        string            `json:"status"`
	Shares        map[string]string `json:"shares"`
}

type seriesPoint struct {
	Month string `json:"month"`
	Total string `json:"total"`
}

type mixSlice struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Total       string `json:"total"`
	Percent     string `json:"percent"`
}

type reportResponse struct {
	Rows          []reportRow   `json:"rows"`
	Total         string        `json:"total"`
	Series        []seriesPoint `json:"series"`
	Mix           []mixSlice    `json:"mix"`
	GrowthPercent string        `json:"growth_percent"`
}

// ServeHTTP handles GET /api/v1/reports.
func (h *ReportsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if h == nil || h.reports == nil {
		http.Error(w, "server not ready", http.StatusServiceUnavailable)
		return
	}

	query, err := parseReportQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	identity := auth.IdentityFromContext(r.Context())
	started := time.Now()
	report, err := h.reports.ComputeReport(r.Context(), query, identity)
	if err != nil {
		metrics.ObserveReportCompute(metrics.ResultError, time.Since(started))
		writeReportError(w, err)
		return
	}
	metrics.ObserveReportCompute(metrics.ResultSuccess, time.Since(started))

	h.logAudit(r, identity, len(report.Rows))

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(buildReportResponse(report))
}

func (h *ReportsHandler) logAudit(r *http.Request, identity auth.Identity, rows int) {
	if h.auditor == nil {
		return
	}
	meta, _ := json.Marshal(map[string]any{"rows": rows, "query": r.URL.RawQuery})
	_ = h.auditor.Log(r.Context(), audit.Entry{
		FirmID:       identity.FirmID,
		Actor:        identity.Subject,
		Role:         string(identity.Role),
		Action:       "report.view",
		ResourceType: audit.ResourceReport,
		Metadata:     meta,
		IP:           r.RemoteAddr,
		UserAgent:    r.UserAgent(),
	})
}

func buildReportResponse(report *application.Report) reportResponse {
	response := reportResponse{
		Rows:          make([]reportRow, len(report.Rows)),
		Total:         report.Total.RoundBank(2).StringFixed(2),
		Series:        make([]seriesPoint, len(report.Series)),
		Mix:           make([]mixSlice, len(report.Mix)),
		GrowthPercent: report.Growth.RoundBank(2).StringFixed(2),
	}
	for i, row := range report.Rows {
		shares := make(map[string]string, len(row.Shares))
		for _, share := range row.Shares {
			shares[string(share.Role)] = share.Amount.StringFixed(2)
		}
		response.Rows[i] = reportRow{
			PaymentID:     row.PaymentID,
			Date:          row.Date.Format("2006-01-02"),
			Provider:      row.Provider,
			ProductID:     row.ProductID,
			ProductName:   row.ProductName,
			Advisor:       row.Advisor,
			Introducer:    row.Introducer,
			Method:        string(row.Method),
			RatePercent:   row.RatePercent.RoundBank(2).StringFixed(2),
			MarginPercent: row.MarginPercent.RoundBank(2).StringFixed(2),
			APE:           row.APE.RoundBank(2).StringFixed(2),
			Receipts:      row.Receipts.RoundBank(2).StringFixed(2),
			Base:          row.Base.RoundBank(2).StringFixed(2),
			Pool:          row.Pool.RoundBank(2).StringFixed(2),
			Status:        string(row.Status),
			Shares:        shares,
		}
	}
	for i, point := range report.Series {
		response.Series[i] = seriesPoint{
			Month: point.Month.Format("2006-01"),
			Total: point.Total.RoundBank(2).StringFixed(2),
		}
	}
	for i, slice := range report.Mix {
		response.Mix[i] = mixSlice{
			ProductID:   slice.ProductID,
			ProductName: slice.ProductName,
			Total:       slice.Total.RoundBank(2).StringFixed(2),
			Percent:     slice.Percent.RoundBank(2).StringFixed(2),
		}
	}
	return response
}

// ExportHandler serves report exports in CSV, XLSX and PDF.
type ExportHandler struct {
	exports *application.ExportService
	format  application.Format
	auditor audit.Logger
}

// NewExportHandler constructs an ExportHandler for one format.
func NewExportHandler(exports *application.ExportService, format application.Format, auditor audit.Logger) *ExportHandler {
	return &ExportHandler{exports: exports, format: format, auditor: auditor}
}

// ServeHTTP handles GET /api/v1/exports/report.{csv,xlsx,pdf}.
func (h *ExportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if h == nil || h.exports == nil {
		http.Error(w, "server not ready", http.StatusServiceUnavailable)
		return
	}

	query, err := parseReportQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	identity := auth.IdentityFromContext(r.Context())
	started := time.Now()
	payload, contentType, err := h.exports.Export(r.Context(), query, identity, h.format)
	if err != nil {
		result := metrics.ResultError
		if errors.Is(err, reporting.ErrExportDenied) {
			result = metrics.ResultDenied
		}
		metrics.ObserveReportExport(string(h.format), result, time.Since(started))
		writeReportError(w, err)
		return
	}
	metrics.ObserveReportExport(string(h.format), metrics.ResultSuccess, time.Since(started))

	if h.auditor != nil {
		meta, _ := json.Marshal(map[string]any{"format": h.format, "query": r.URL.RawQuery})
		_ = h.auditor.Log(r.Context(), audit.Entry{
			FirmID:       identity.FirmID,
			Actor:        identity.Subject,
			Role:         string(identity.Role),
			Action:       "report.export",
			ResourceType: audit.ResourceExport,
			Metadata:     meta,
			IP:           r.RemoteAddr,
			UserAgent:    r.UserAgent(),
		})
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="report.`+string(h.format)+`"`)
	_, _ = w.Write(payload)
}

func writeReportError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, reporting.ErrExportDenied):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, reporting.ErrReportTooLarge):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, reporting.ErrInvalidWindow),
		errors.Is(err, reporting.ErrUnknownMetric),
		errors.Is(err, reporting.ErrUnknownColumn),
		errors.Is(err, application.ErrUnknownFormat):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, commission.ErrNoApplicableRoles):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		http.Error(w, "report computation failed", http.StatusInternalServerError)
	}
}
