package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"advisory-portal/internal/auth"
	templates "advisory-portal/internal/templates/domain"
)

// Clock returns the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock uses time.Now.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Service manages per-user saved report templates. Templates are private:
// listing is always owner-scoped and deletion checks ownership, with admin
// allowed to delete anyone's.
type Service struct {
	repo  templates.Repository
	clock Clock
}

// NewService constructs a template service.
func NewService(repo templates.Repository, clock Clock) (*Service, error) {
	if repo == nil {
		return nil, errors.New("template service: nil repository")
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &Service{repo: repo, clock: clock}, nil
}

// Create saves a new template owned by the caller and returns it.
func (s *Service) Create(ctx context.Context, identity auth.Identity, name string, columns []string, filters templates.Filters) (*templates.ReportTemplate, error) {
	template := templates.ReportTemplate{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedBy: identity.Subject,
		Columns:   columns,
		Filters:   filters,
		CreatedAt: s.clock.Now(),
	}
	if err := template.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, template); err != nil {
		return nil, err
	}
	return &template, nil
}

// List returns the caller's templates.
func (s *Service) List(ctx context.Context, identity auth.Identity) ([]templates.ReportTemplate, error) {
	return s.repo.ListByOwner(ctx, identity.Subject)
}

// Delete removes one of the caller's templates.
func (s *Service) Delete(ctx context.Context, identity auth.Identity, id string) error {
	template, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if template.CreatedBy != identity.Subject && identity.Role != auth.RoleAdmin {
		return templates.ErrNotTemplateOwner
	}
	return s.repo.Delete(ctx, id)
}
