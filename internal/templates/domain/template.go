package templates

import (
	"context"
	"time"

	payments "advisory-portal/internal/payments/domain"
)

// Filters is the saved filter state of a report template. Fields mirror the
// report query's filter dimensions; empty fields stay unconstrained when
// the template is applied.
type Filters struct {
	From     time.Time         `json:"from,omitempty"`
	To       time.Time         `json:"to,omitempty"`
	Products []string          `json:"products,omitempty"`
	Advisors []string          `json:"advisors,omitempty"`
	Statuses []payments.Status `json:"statuses,omitempty"`
}

// ReportTemplate is a named, per-user saved report configuration.
type ReportTemplate struct {
	ID        string
	Name      string
	CreatedBy string
	Columns   []string
	Filters   Filters
	CreatedAt time.Time
}

// Validate checks required fields.
func (t ReportTemplate) Validate() error {
	if t.ID == "" {
		return ErrEmptyTemplateID
	}
	if t.Name == "" {
		return ErrEmptyTemplateName
	}
	if t.CreatedBy == "" {
		return ErrEmptyTemplateOwner
	}
	return nil
}

// Repository stores report templates per owner.
type Repository interface {
	Save(ctx context.Context, template ReportTemplate) error
	ListByOwner(ctx context.Context, owner string) ([]ReportTemplate, error)
	Get(ctx context.Context, id string) (*ReportTemplate, error)
	Delete(ctx context.Context, id string) error
}
