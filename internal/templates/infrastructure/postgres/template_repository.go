package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	templates "advisory-portal/internal/templates/domain"
)

const defaultTemplatesTable = "report_templates"

// TemplateRepository is a Postgres implementation of the template store.
// Columns are stored comma-joined and filters as a JSON document.
type TemplateRepository struct {
	db    *sql.DB
	table string
}

// TemplateOption configures the repository.
type TemplateOption func(*TemplateRepository)

// WithTemplatesTable overrides the templates table name.
func WithTemplatesTable(table string) TemplateOption {
	return func(repo *TemplateRepository) {
		if table != "" {
			repo.table = table
		}
	}
}

// NewTemplateRepository constructs a repository.
func NewTemplateRepository(db *sql.DB, opts ...TemplateOption) *TemplateRepository {
	repo := &TemplateRepository{db: db, table: defaultTemplatesTable}
	for _, opt := range opts {
		opt(repo)
	}
	return repo
}

// Save upserts a template by id.
func (r *TemplateRepository) Save(ctx context.Context, template templates.ReportTemplate) error {
	if r == nil || r.db == nil {
		return errors.New("template repo: nil db")
	}
	if err := template.Validate(); err != nil {
		return err
	}

	filters, err := json.Marshal(template.Filters)
	if err != nil {
		return fmt.Errorf("template repo: encode filters for %s: %w", template.ID, err)
	}

	query := fmt.Sprintf(`
INSERT INTO %s (id, name, created_by, columns, filters, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (id) DO UPDATE SET
  name = EXCLUDED.name,
  columns = EXCLUDED.columns,
  filters = EXCLUDED.filters`, r.table)

	_, err = r.db.ExecContext(ctx, query,
		template.ID,
		template.Name,
		template.CreatedBy,
		strings.Join(template.Columns, ","),
		string(filters),
		template.CreatedAt,
	)
	return err
}

// ListByOwner returns the owner's templates ordered by creation time.
func (r *TemplateRepository) ListByOwner(ctx context.Context, owner string) ([]templates.ReportTemplate, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("template repo: nil db")
	}

	query := fmt.Sprintf(`
SELECT id, name, created_by, columns, filters, created_at
FROM %s
WHERE created_by = $1
ORDER BY created_at ASC, id ASC`, r.table)

	rows, err := r.db.QueryContext(ctx, query, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var owned []templates.ReportTemplate
	for rows.Next() {
		template, err := scanTemplate(rows.Scan)
		if err != nil {
			return nil, err
		}
		owned = append(owned, template)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return owned, nil
}

// Get loads a template by id.
func (r *TemplateRepository) Get(ctx context.Context, id string) (*templates.ReportTemplate, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("template repo: nil db")
	}

	query := fmt.Sprintf(`
SELECT id, name, created_by, columns, filters, created_at
FROM %s
WHERE id = $1
LIMIT 1`, r.table)

	template, err := scanTemplate(r.db.QueryRowContext(ctx, query, id).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, templates.ErrTemplateNotFound
		}
		return nil, err
	}
	return &template, nil
}

// Delete removes a template by id.
func (r *TemplateRepository) Delete(ctx context.Context, id string) error {
	if r == nil || r.db == nil {
		return errors.New("template repo: nil db")
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.table)
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return templates.ErrTemplateNotFound
	}
	return nil
}

func scanTemplate(scan func(...any) error) (templates.ReportTemplate, error) {
	var template templates.ReportTemplate
	var columns, filters string
	if err := scan(
		&template.ID,
		&template.Name,
		&template.CreatedBy,
		&columns,
		&filters,
		&template.CreatedAt,
	); err != nil {
		return templates.ReportTemplate{}, err
	}
	if columns != "" {
		template.Columns = strings.Split(columns, ",")
	}
	if filters != "" {
		if err := json.Unmarshal([]byte(filters), &template.Filters); err != nil {
			return templates.ReportTemplate{}, fmt.Errorf("template repo: bad filters for %s: %w", template.ID, err)
		}
	}
	return template, nil
}
