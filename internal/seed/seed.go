// Package seed loads a chart of accounts from YAML and creates the accounts
// that are missing from the ledger.
package seed

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"ledgerbook/internal/accounting"
	"ledgerbook/internal/logger"
	"ledgerbook/internal/models"
)

//go:embed chart_of_accounts.yaml
var defaultChart []byte

// AccountSpec is one account in a chart file.
type AccountSpec struct {
	Name           string                 `yaml:"name"`
	Type           accounting.AccountType `yaml:"type"`
	Default        bool                   `yaml:"default,omitempty"`
	AdjustmentOnly bool                   `yaml:"adjustment_only,omitempty"`
}

// Chart is a chart-of-accounts file.
type Chart struct {
	Accounts []AccountSpec `yaml:"accounts"`
}

// Default returns the embedded chart of accounts.
func Default() (*Chart, error) {
	return Parse(defaultChart)
}

// LoadFile reads a chart of accounts from disk.
func LoadFile(path string) (*Chart, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading chart: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a chart of accounts.
func Parse(data []byte) (*Chart, error) {
	var chart Chart
	if err := yaml.Unmarshal(data, &chart); err != nil {
		return nil, fmt.Errorf("parsing chart: %w", err)
	}

	seen := make(map[string]bool, len(chart.Accounts))
	for i, a := range chart.Accounts {
		name := strings.TrimSpace(a.Name)
		if name == "" {
			return nil, fmt.Errorf("account %d: name is required", i+1)
		}
		if !a.Type.Valid() {
			return nil, fmt.Errorf("account %q: unknown type %q", name, a.Type)
		}
		if seen[name] {
			return nil, fmt.Errorf("account %q is listed twice", name)
		}
		seen[name] = true
		chart.Accounts[i].Name = name
	}
	return &chart, nil
}

// Apply creates every account of the chart that does not exist yet and
// returns how many were created. Existing accounts are left untouched.
func Apply(db *gorm.DB, chart *Chart) (int, error) {
	created := 0
	err := db.Transaction(func(tx *gorm.DB) error {
		for _, want := range chart.Accounts {
			var existing models.Account
			err := tx.Where("name = ?", want.Name).First(&existing).Error
			if err == nil {
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}

			account := models.Account{
				Name:             want.Name,
				Type:             want.Type,
				IsDefault:        want.Default,
				IsAdjustmentOnly: want.AdjustmentOnly,
			}
			if err := tx.Create(&account).Error; err != nil {
				return fmt.Errorf("creating account %q: %w", want.Name, err)
			}
			created++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	logger.Named("seed").Infow("chart of accounts applied",
		"accounts", len(chart.Accounts),
		"created", created,
	)
	return created, nil
}
