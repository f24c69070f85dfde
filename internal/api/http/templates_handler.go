package apihttp

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"advisory-portal/internal/audit"
	"advisory-portal/internal/auth"
	"advisory-portal/internal/observability/metrics"
	tmplapp "advisory-portal/internal/templates/application"
	templates "advisory-portal/internal/templates/domain"
)

// TemplatesHandler serves saved report template CRUD.
// GET /api/v1/templates lists the caller's templates, POST creates one, and
// DELETE /api/v1/templates/{id} removes one.
type TemplatesHandler struct {
	templates *tmplapp.Service
	auditor   audit.Logger
}

// NewTemplatesHandler constructs a TemplatesHandler.
func NewTemplatesHandler(service *tmplapp.Service, auditor audit.Logger) *TemplatesHandler {
	return &TemplatesHandler{templates: service, auditor: auditor}
}

type templateRequest struct {
	Name    string            `json:"name"`
	Columns []string          `json:"columns"`
	Filters templates.Filters `json:"filters"`
}

type templateResponse struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	CreatedBy string            `json:"created_by"`
	Columns   []string          `json:"columns"`
	Filters   templates.Filters `json:"filters"`
	CreatedAt string            `json:"created_at"`
}

// ServeHTTP dispatches template requests.
func (h *TemplatesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.templates == nil {
		http.Error(w, "server not ready", http.StatusServiceUnavailable)
		return
	}

	identity := auth.IdentityFromContext(r.Context())
	id := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/v1/templates"), "/")

	switch {
	case r.Method == http.MethodGet && id == "":
		h.list(w, r, identity)
	case r.Method == http.MethodPost && id == "":
		h.create(w, r, identity)
	case r.Method == http.MethodDelete && id != "":
		h.delete(w, r, identity, id)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *TemplatesHandler) list(w http.ResponseWriter, r *http.Request, identity auth.Identity) {
	owned, err := h.templates.List(r.Context(), identity)
	if err != nil {
		metrics.IncTemplateOp("list", metrics.ResultError)
		http.Error(w, "list templates failed", http.StatusInternalServerError)
		return
	}
	metrics.IncTemplateOp("list", metrics.ResultSuccess)

	response := make([]templateResponse, len(owned))
	for i, template := range owned {
		response[i] = buildTemplateResponse(template)
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(response)
}

func (h *TemplatesHandler) create(w http.ResponseWriter, r *http.Request, identity auth.Identity) {
	var request templateRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "invalid template payload", http.StatusBadRequest)
		return
	}

	created, err := h.templates.Create(r.Context(), identity, request.Name, request.Columns, request.Filters)
	if err != nil {
		metrics.IncTemplateOp("create", metrics.ResultError)
		writeTemplateError(w, err)
		return
	}
	metrics.IncTemplateOp("create", metrics.ResultSuccess)
	h.logAudit(r, identity, "template.create", created.ID)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(buildTemplateResponse(*created))
}

func (h *TemplatesHandler) delete(w http.ResponseWriter, r *http.Request, identity auth.Identity, id string) {
	if err := h.templates.Delete(r.Context(), identity, id); err != nil {
		metrics.IncTemplateOp("delete", metrics.ResultError)
		writeTemplateError(w, err)
		return
	}
	metrics.IncTemplateOp("delete", metrics.ResultSuccess)
	h.logAudit(r, identity, "template.delete", id)

	w.WriteHeader(http.StatusNoContent)
}

func (h *TemplatesHandler) logAudit(r *http.Request, identity auth.Identity, action, id string) {
	if h.auditor == nil {
		return
	}
	_ = h.auditor.Log(r.Context(), audit.Entry{
		FirmID:       identity.FirmID,
		Actor:        identity.Subject,
		Role:         string(identity.Role),
		Action:       action,
		ResourceType: audit.ResourceTemplate,
		ResourceID:   id,
		IP:           r.RemoteAddr,
		UserAgent:    r.UserAgent(),
	})
}

func buildTemplateResponse(template templates.ReportTemplate) templateResponse {
	return templateResponse{
		ID:        template.ID,
		Name:      template.Name,
		CreatedBy: template.CreatedBy,
		Columns:   template.Columns,
		Filters:   template.Filters,
		CreatedAt: template.CreatedAt.UTC().Format(timeLayout),
	}
}

func writeTemplateError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, templates.ErrTemplateNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, templates.ErrNotTemplateOwner):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, templates.ErrEmptyTemplateName):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "template operation failed", http.StatusInternalServerError)
	}
}
