package config

import (
	"testing"
	"time"

	"bank-ledger-go/internal/models"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"LEDGER_BACKEND", "LOG_LEVEL", "DATABASE_PATH", "DB_MAX_OPEN_CONNS", "DB_MAX_IDLE_CONNS",
		"DB_CONN_MAX_LIFETIME", "DB_CONN_MAX_IDLE_TIME", "DB_PING_TIMEOUT",
		"EXPORT_DIR", "HISTORY_LIMIT", "SEED_FILE",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Backend != models.BackendSQLite {
		t.Errorf("Expected backend %s, got %s", models.BackendSQLite, cfg.Backend)
	}
	if cfg.Database.Path != "bank.db" {
		t.Errorf("Expected database path bank.db, got %s", cfg.Database.Path)
	}
	if cfg.Database.MaxOpenConns != 25 || cfg.Database.MaxIdleConns != 5 {
		t.Errorf("Unexpected pool sizes %d/%d", cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns)
	}
	if cfg.Database.PingTimeout != 5*time.Second {
		t.Errorf("Expected ping timeout 5s, got %s", cfg.Database.PingTimeout)
	}
	if cfg.Console.ExportDir != "." || cfg.Console.HistoryLimit != 20 || cfg.Console.SeedFile != "accounts.yaml" {
		t.Errorf("Unexpected console config %+v", cfg.Console)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("Expected log level info, got %s", cfg.LogLevel)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("LEDGER_BACKEND", "Memory")
	t.Setenv("DATABASE_PATH", "/tmp/other.db")
	t.Setenv("DB_MAX_OPEN_CONNS", "3")
	t.Setenv("DB_CONN_MAX_LIFETIME", "90s")
	t.Setenv("HISTORY_LIMIT", "7")
	t.Setenv("EXPORT_DIR", "/tmp/exports")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Backend != models.BackendMemory {
		t.Errorf("Expected backend memory, got %s", cfg.Backend)
	}
	if cfg.Database.Path != "/tmp/other.db" || cfg.Database.MaxOpenConns != 3 {
		t.Errorf("Unexpected database config %+v", cfg.Database)
	}
	if cfg.Database.ConnMaxLifetime != 90*time.Second {
		t.Errorf("Expected 90s lifetime, got %s", cfg.Database.ConnMaxLifetime)
	}
	if cfg.Console.HistoryLimit != 7 || cfg.Console.ExportDir != "/tmp/exports" {
		t.Errorf("Unexpected console config %+v", cfg.Console)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("Expected log level debug, got %s", cfg.LogLevel)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unknown backend", "LEDGER_BACKEND", "postgres"},
		{"bad duration", "DB_PING_TIMEOUT", "soon"},
		{"zero history limit", "HISTORY_LIMIT", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Errorf("Expected error for %s=%q", tt.key, tt.value)
			}
		})
	}
}
