package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

const defaultTeamMembersTable = "team_members"

// TeamChecker resolves team membership from the database.
type TeamChecker struct {
	db    *sql.DB
	table string
}

// TeamCheckerOption configures the checker.
type TeamCheckerOption func(*TeamChecker)

// WithTeamMembersTable overrides the table name.
func WithTeamMembersTable(table string) TeamCheckerOption {
	return func(c *TeamChecker) {
		if table != "" {
			c.table = table
		}
	}
}

// NewTeamChecker constructs a TeamChecker.
func NewTeamChecker(db *sql.DB, opts ...TeamCheckerOption) *TeamChecker {
	if db == nil {
		return nil
	}
	checker := &TeamChecker{db: db, table: defaultTeamMembersTable}
	for _, opt := range opts {
		opt(checker)
	}
	return checker
}

// TeamAdvisors returns the advisor identifiers on the manager's team.
func (c *TeamChecker) TeamAdvisors(ctx context.Context, manager string) ([]string, error) {
	if c == nil || c.db == nil {
		return nil, errors.New("team checker: nil db")
	}
	if manager == "" {
		return nil, errors.New("team checker: empty manager")
	}

	query := fmt.Sprintf(`
SELECT advisor_email
FROM %s
WHERE manager_email = $1`, c.table)

	rows, err := c.db.QueryContext(ctx, query, manager)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var advisors []string
	for rows.Next() {
		var advisor string
		if err := rows.Scan(&advisor); err != nil {
			return nil, err
		}
		advisors = append(advisors, advisor)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return advisors, nil
}
