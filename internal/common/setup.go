package common

import (
	"context"
	"fmt"
	"log"
	"strings"

	"bank-ledger-go/internal/bank"
	"bank-ledger-go/internal/database"
	"bank-ledger-go/internal/memory"
	"bank-ledger-go/internal/models"
	"bank-ledger-go/internal/store"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// init loads environment variables from .env file if it exists
func init() {
	// Environment variables can also be set via shell export, docker, etc.
	if err := godotenv.Load(); err != nil {
		log.Printf("Note: No .env file found or unable to load it: %v\n", err)
		log.Println("Make sure to set environment variables via export or other means")
	} else {
		log.Println("✓ Loaded environment variables from .env file")
	}
}

type Services struct {
	Ledger store.LedgerStore
	Bank   *bank.Service
}

// InitializeLogger builds the global logger. "debug" selects the development
// encoder; any other valid level tunes the production logger.
func InitializeLogger(level string) (*zap.Logger, func()) {
	var (
		logger *zap.Logger
		err    error
	)

	if strings.EqualFold(level, "debug") {
		logger, err = zap.NewDevelopment()
	} else {
		cfg := zap.NewProductionConfig()
		if level != "" {
			atomicLevel, parseErr := zap.ParseAtomicLevel(level)
			if parseErr != nil {
				log.Printf("Unknown LOG_LEVEL %q, using info\n", level)
			} else {
				cfg.Level = atomicLevel
			}
		}
		logger, err = cfg.Build()
	}
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	zap.ReplaceGlobals(logger)

	cleanup := func() {
		if err := logger.Sync(); err != nil {
			if !isIgnorableSyncError(err) {
				log.Printf("Failed to sync logger: %v\n", err)
			}
		}
	}

	return logger, cleanup
}

// OpenLedger opens the store selected by cfg.Backend
func OpenLedger(ctx context.Context, cfg *models.Config) (store.LedgerStore, error) {
	switch cfg.Backend {
	case models.BackendMemory:
		return memory.NewLedger(), nil
	case models.BackendSQLite, "":
		dbService, err := database.NewService(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		return dbService, nil
	default:
		return nil, fmt.Errorf("unknown ledger backend %q", cfg.Backend)
	}
}

func InitializeServices(ctx context.Context, cfg *models.Config) (*Services, error) {
	ledger, err := OpenLedger(ctx, cfg)
	if err != nil {
		return nil, err
	}

	zap.L().Info("Ledger store ready", zap.String("backend", cfg.Backend))

	return &Services{
		Ledger: ledger,
		Bank:   bank.NewService(ledger),
	}, nil
}

func (cs *Services) Close() {
	if cs.Ledger != nil {
		if err := cs.Ledger.Close(); err != nil {
			zap.L().Warn("Failed to close ledger store", zap.Error(err))
		}
	}
}

func isIgnorableSyncError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "sync /dev/stderr: inappropriate ioctl for device") ||
		strings.Contains(msg, "sync /dev/stdout: inappropriate ioctl for device")
}
