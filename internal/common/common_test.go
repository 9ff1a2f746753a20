package common

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"bank-ledger-go/internal/store"

	"github.com/shopspring/decimal"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"100", "100"},
		{" 100.50 ", "100.5"},
		{"1,250.75", "1250.75"},
		{"₹42", "42"},
		{"₹ 1,000", "1000"},
		{"$3.14", "3.14"},
		{"10.005", "10.01"},
		{"10.004", "10"},
		{"0.005", "0.01"},
	}
	for _, tt := range tests {
		got, err := ParseAmount(tt.input)
		if err != nil {
			t.Errorf("ParseAmount(%q) failed: %v", tt.input, err)
			continue
		}
		if !got.Equal(decimal.RequireFromString(tt.want)) {
			t.Errorf("ParseAmount(%q) = %s, want %s", tt.input, got.String(), tt.want)
		}
	}
}

func TestParseAmount_Rejects(t *testing.T) {
	for _, input := range []string{"", "   ", "abc", "0", "-5", "0.004", "₹", "12abc"} {
		if _, err := ParseAmount(input); !errors.Is(err, store.ErrValidation) {
			t.Errorf("ParseAmount(%q): expected ErrValidation, got %v", input, err)
		}
	}
}

func TestFormatAmount(t *testing.T) {
	if got := FormatAmount(decimal.RequireFromString("60")); got != "₹60.00" {
		t.Errorf("Expected ₹60.00, got %s", got)
	}
	if got := FormatAmount(decimal.RequireFromString("0.5")); got != "₹0.50" {
		t.Errorf("Expected ₹0.50, got %s", got)
	}
}

func TestLoadSeedAccounts(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "accounts.yaml")
	content := `accounts:
  - owner: Alice
    opening_deposit: "100.00"
  - owner: Bob
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	accounts, err := LoadSeedAccounts(path)
	if err != nil {
		t.Fatalf("LoadSeedAccounts failed: %v", err)
	}
	if len(accounts) != 2 {
		t.Fatalf("Expected 2 accounts, got %d", len(accounts))
	}
	if accounts[0].Owner != "Alice" {
		t.Errorf("Expected Alice, got %s", accounts[0].Owner)
	}
	deposit, err := accounts[0].Deposit()
	if err != nil || !deposit.Equal(decimal.RequireFromString("100")) {
		t.Errorf("Expected deposit 100, got %s (%v)", deposit.String(), err)
	}
	if deposit, _ := accounts[1].Deposit(); !deposit.IsZero() {
		t.Errorf("Expected zero deposit for Bob, got %s", deposit.String())
	}
}

func TestLoadSeedAccounts_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing owner", "accounts:\n  - opening_deposit: \"5\"\n"},
		{"bad deposit", "accounts:\n  - owner: Alice\n    opening_deposit: lots\n"},
		{"negative deposit", "accounts:\n  - owner: Alice\n    opening_deposit: \"-1\"\n"},
		{"not yaml", "accounts: [\n"},
	}
	for _, tt := range tests {
		path := filepath.Join(t.TempDir(), "accounts.yaml")
		if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}
		if _, err := LoadSeedAccounts(path); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}

	if _, err := LoadSeedAccounts(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for missing file")
	}
}
