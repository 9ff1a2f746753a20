package common

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v2"
)

type SeedAccount struct {
	Owner          string `yaml:"owner"`
	OpeningDeposit string `yaml:"opening_deposit"`
}

type SeedAccountsConfig struct {
	Accounts []SeedAccount `yaml:"accounts"`
}

// Deposit returns the parsed opening deposit; an empty value means zero
func (a SeedAccount) Deposit() (decimal.Decimal, error) {
	if strings.TrimSpace(a.OpeningDeposit) == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(strings.TrimSpace(a.OpeningDeposit))
}

func LoadSeedAccounts(seedFile string) ([]SeedAccount, error) {
	var seedPath string
	if filepath.IsAbs(seedFile) {
		seedPath = seedFile
	} else {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		seedPath = filepath.Join(wd, seedFile)
	}

	data, err := os.ReadFile(seedPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read %s: %w", seedFile, err)
	}

	var config SeedAccountsConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("unable to parse %s: %w", seedFile, err)
	}

	for i, account := range config.Accounts {
		if strings.TrimSpace(account.Owner) == "" {
			return nil, fmt.Errorf("account at index %d missing owner", i)
		}
		deposit, err := account.Deposit()
		if err != nil {
			return nil, fmt.Errorf("account at index %d has invalid opening_deposit %q: %w", i, account.OpeningDeposit, err)
		}
		if deposit.IsNegative() {
			return nil, fmt.Errorf("account at index %d has negative opening_deposit %s", i, deposit.String())
		}
	}

	return config.Accounts, nil
}
