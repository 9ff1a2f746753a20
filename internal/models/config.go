package models

import "time"

const (
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Config represents the application configuration
type Config struct {
	Backend  string
	LogLevel string
	Database DatabaseConfig
	Console  ConsoleConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Path            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	PingTimeout     time.Duration
}

// ConsoleConfig holds settings for the interactive tools
type ConsoleConfig struct {
	ExportDir    string
	HistoryLimit int
	SeedFile     string
}
