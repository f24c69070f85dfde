package apihttp

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"advisory-portal/internal/audit"
	"advisory-portal/internal/auth"
	"advisory-portal/internal/observability/metrics"
	payments "advisory-portal/internal/payments/domain"
)

// PaymentsHandler serves the raw payment feed and status updates.
// GET /api/v1/payments lists records in a window; POST
// /api/v1/payments/{id}/status moves a record through its lifecycle.
type PaymentsHandler struct {
	feed    payments.Feed
	updater payments.StatusUpdater
	teams   auth.TeamMembershipChecker
	auditor audit.Logger
}

// NewPaymentsHandler constructs a PaymentsHandler.
func NewPaymentsHandler(feed payments.Feed, updater payments.StatusUpdater, teams auth.TeamMembershipChecker, auditor audit.Logger) *PaymentsHandler {
	return &PaymentsHandler{feed: feed, updater: updater, teams: teams, auditor: auditor}
}

type paymentRow struct {
	ID              string `json:"id"`
	ProductID       string `json:"product_id"`
	Advisor         string `json:"advisor"`
	Introducer      string `json:"introducer,omitempty"`
	Date            string `json:"date"`
	APE             string `json:"ape"`
	Receipts        string `json:"receipts"`
	Status          string `json:"status"`
	ExceptionReason string `json:"exception_reason,omitempty"`
}

type statusRequest struct {
	Status          string `json:"status"`
	ExceptionReason string `json:"exception_reason"`
}

// ServeHTTP dispatches payment requests.
func (h *PaymentsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.feed == nil {
		http.Error(w, "server not ready", http.StatusServiceUnavailable)
		return
	}

	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/v1/payments"), "/")
	switch {
	case r.Method == http.MethodGet && rest == "":
		h.list(w, r)
	case r.Method == http.MethodPost && strings.HasSuffix(rest, "/status"):
		h.updateStatus(w, r, strings.TrimSuffix(rest, "/status"))
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *PaymentsHandler) list(w http.ResponseWriter, r *http.Request) {
	from, err := parseTimeQuery(r, "from")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	to, err := parseTimeQuery(r, "to")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	records, err := h.feed.ListByWindow(r.Context(), from, to)
	if err != nil {
		http.Error(w, "list payments failed", http.StatusInternalServerError)
		return
	}

	// The raw feed obeys the same row visibility as reports.
	identity := auth.IdentityFromContext(r.Context())
	scope, err := auth.VisibilityFor(r.Context(), identity, h.teams)
	if err != nil {
		http.Error(w, "resolve visibility failed", http.StatusInternalServerError)
		return
	}

	rows := make([]paymentRow, 0, len(records))
	for _, record := range records {
		if !scope.Allows(record.Advisor) {
			continue
		}
		rows = append(rows, paymentRow{
			ID:              record.ID,
			ProductID:       record.ProductID,
			Advisor:         record.Advisor,
			Introducer:      record.Introducer,
			Date:            record.Date.Format("2006-01-02"),
			APE:             record.APE.RoundBank(2).StringFixed(2),
			Receipts:        record.Receipts.RoundBank(2).StringFixed(2),
			Status:          string(record.Status),
			ExceptionReason: record.ExceptionReason,
		})
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(rows)
}

func (h *PaymentsHandler) updateStatus(w http.ResponseWriter, r *http.Request, id string) {
	if h.updater == nil {
		http.Error(w, "status updates not available", http.StatusServiceUnavailable)
		return
	}
	if id == "" {
		http.Error(w, "payment id is required", http.StatusBadRequest)
		return
	}

	var request statusRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "invalid status payload", http.StatusBadRequest)
		return
	}
	status, ok := payments.NormalizeStatus(request.Status)
	if !ok {
		http.Error(w, "unknown status: "+request.Status, http.StatusBadRequest)
		return
	}
	if status == payments.StatusException && request.ExceptionReason == "" {
		http.Error(w, "exception_reason is required for exception status", http.StatusBadRequest)
		return
	}

	if err := h.updater.UpdateStatus(r.Context(), id, status, request.ExceptionReason); err != nil {
		if errors.Is(err, payments.ErrRecordNotFound) {
			metrics.IncPaymentStatusUpdate(metrics.ResultError)
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		metrics.IncPaymentStatusUpdate(metrics.ResultError)
		http.Error(w, "status update failed", http.StatusInternalServerError)
		return
	}
	metrics.IncPaymentStatusUpdate(metrics.ResultSuccess)

	identity := auth.IdentityFromContext(r.Context())
	if h.auditor != nil {
		meta, _ := json.Marshal(map[string]any{"status": status, "reason": request.ExceptionReason})
		_ = h.auditor.Log(r.Context(), audit.Entry{
			FirmID:       identity.FirmID,
			Actor:        identity.Subject,
			Role:         string(identity.Role),
			Action:       "payment.status",
			ResourceType: audit.ResourcePayment,
			ResourceID:   id,
			Metadata:     meta,
			IP:           r.RemoteAddr,
			UserAgent:    r.UserAgent(),
		})
	}

	w.WriteHeader(http.StatusNoContent)
}
