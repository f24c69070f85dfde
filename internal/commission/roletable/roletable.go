package roletable

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	commission "advisory-portal/internal/commission/domain"
)

// ShareConfig defines one role's cut in the config file.
type ShareConfig struct {
	Role    string `yaml:"role"`
	Percent string `yaml:"percent"`
}

// Config defines the deployment role distribution table.
type Config struct {
	Shares []ShareConfig `yaml:"shares"`
}

// Load reads a role table from a yaml file, falling back to the stock table
// when path is empty. The loaded table must sum to exactly 100 percent.
func Load(path string) (commission.RoleTable, error) {
	if path == "" {
		return commission.DefaultRoleTable(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	table := make(commission.RoleTable, 0, len(cfg.Shares))
	for _, share := range cfg.Shares {
		role, ok := commission.NormalizeShareRole(share.Role)
		if !ok {
			return nil, fmt.Errorf("roletable: unknown role %q", share.Role)
		}
		percent, err := decimal.NewFromString(share.Percent)
		if err != nil {
			return nil, fmt.Errorf("roletable: bad percent for %s: %w", share.Role, err)
		}
		table = append(table, commission.TableEntry{Role: role, Percent: percent})
	}

	if err := table.Validate(); err != nil {
		return nil, err
	}
	return table, nil
}
