package memory

import (
	"context"
	"sort"
	"sync"

	payments "advisory-portal/internal/payments/domain"
	templates "advisory-portal/internal/templates/domain"
)

// TemplateRepository is an in-memory template store for tests and
// database-less deployments.
type TemplateRepository struct {
	mu   sync.RWMutex
	byID map[string]templates.ReportTemplate
}

// NewTemplateRepository constructs an empty repository.
func NewTemplateRepository() *TemplateRepository {
	return &TemplateRepository{byID: make(map[string]templates.ReportTemplate)}
}

// Save stores or replaces a template.
func (r *TemplateRepository) Save(ctx context.Context, template templates.ReportTemplate) error {
	if err := template.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[template.ID] = cloneTemplate(template)
	return nil
}

// ListByOwner returns the owner's templates sorted by creation time then id.
func (r *TemplateRepository) ListByOwner(ctx context.Context, owner string) ([]templates.ReportTemplate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var owned []templates.ReportTemplate
	for _, template := range r.byID {
		if template.CreatedBy == owner {
			owned = append(owned, cloneTemplate(template))
		}
	}
	sort.Slice(owned, func(i, j int) bool {
		if !owned[i].CreatedAt.Equal(owned[j].CreatedAt) {
			return owned[i].CreatedAt.Before(owned[j].CreatedAt)
		}
		return owned[i].ID < owned[j].ID
	})
	return owned, nil
}

// Get loads a template by id.
func (r *TemplateRepository) Get(ctx context.Context, id string) (*templates.ReportTemplate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	template, ok := r.byID[id]
	if !ok {
		return nil, templates.ErrTemplateNotFound
	}
	clone := cloneTemplate(template)
	return &clone, nil
}

// Delete removes a template by id.
func (r *TemplateRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return templates.ErrTemplateNotFound
	}
	delete(r.byID, id)
	return nil
}

func cloneTemplate(template templates.ReportTemplate) templates.ReportTemplate {
	clone := template
	clone.Columns = append([]string(nil), template.Columns...)
	clone.Filters.Products = append([]string(nil), template.Filters.Products...)
	clone.Filters.Advisors = append([]string(nil), template.Filters.Advisors...)
	clone.Filters.Statuses = append([]payments.Status(nil), template.Filters.Statuses...)
	return clone
}
