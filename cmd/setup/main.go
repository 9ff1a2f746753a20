package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"bank-ledger-go/internal/common"
	"bank-ledger-go/internal/config"
	"bank-ledger-go/internal/models"

	"go.uber.org/zap"
)

type seedStats struct {
	created  int
	skipped  int
	failed   int
	failures []string
}

// seedAccount opens one account and credits its opening deposit. Owners that
// already have an account are skipped so setup can be re-run.
func seedAccount(ctx context.Context, services *common.Services, existing map[string]bool, seed common.SeedAccount) (bool, error) {
	owner := strings.TrimSpace(seed.Owner)
	if existing[strings.ToLower(owner)] {
		zap.L().Info("Account already exists for owner, skipping", zap.String("owner_name", owner))
		return false, nil
	}

	account, err := services.Bank.CreateAccount(ctx, owner)
	if err != nil {
		return false, fmt.Errorf("error creating account: %w", err)
	}
	existing[strings.ToLower(owner)] = true

	deposit, err := seed.Deposit()
	if err != nil {
		return true, fmt.Errorf("error parsing opening deposit: %w", err)
	}
	if deposit.IsPositive() {
		if _, err := services.Bank.Deposit(ctx, account.Id, deposit, "opening deposit"); err != nil {
			return true, fmt.Errorf("error crediting opening deposit: %w", err)
		}
	}

	fmt.Printf("✓ %-20s %s  %s\n", owner, account.Id, common.FormatAmount(deposit))
	return true, nil
}

func seedAccounts(ctx context.Context, services *common.Services, seeds []common.SeedAccount) seedStats {
	stats := seedStats{}

	accounts, err := services.Bank.ListAccounts(ctx)
	if err != nil {
		zap.L().Fatal("Failed to read accounts", zap.Error(err))
	}
	existing := make(map[string]bool, len(accounts))
	for _, account := range accounts {
		existing[strings.ToLower(account.OwnerName)] = true
	}

	for _, seed := range seeds {
		created, err := seedAccount(ctx, services, existing, seed)
		switch {
		case err != nil:
			zap.L().Error("Failed to seed account", zap.String("owner_name", seed.Owner), zap.Error(err))
			stats.failed++
			stats.failures = append(stats.failures, seed.Owner)
		case created:
			stats.created++
		default:
			stats.skipped++
		}
	}

	return stats
}

func main() {
	ctx := context.Background()

	seedFlag := flag.String("seed", "", "Seed file (default: SEED_FILE or accounts.yaml)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	_, loggerCleanup := common.InitializeLogger(cfg.LogLevel)
	defer loggerCleanup()

	if cfg.Backend == models.BackendMemory {
		zap.L().Warn("Seeding the in-memory ledger has no lasting effect")
	}

	seedFile := cfg.Console.SeedFile
	if *seedFlag != "" {
		seedFile = *seedFlag
	}

	zap.L().Info("Loading seed accounts", zap.String("file", seedFile))
	seeds, err := common.LoadSeedAccounts(seedFile)
	if err != nil {
		zap.L().Fatal("Failed to load seed accounts", zap.Error(err))
	}
	zap.L().Info("Seed accounts loaded", zap.Int("count", len(seeds)))

	services, err := common.InitializeServices(ctx, cfg)
	if err != nil {
		zap.L().Fatal("Failed to initialize services", zap.Error(err))
	}
	defer services.Close()

	common.PrintHeader(os.Stdout, "SEEDING ACCOUNTS", common.DefaultWidth)
	stats := seedAccounts(ctx, services, seeds)

	summary := fmt.Sprintf("Created: %d  Skipped: %d  Failed: %d", stats.created, stats.skipped, stats.failed)
	common.PrintFooter(os.Stdout, summary, common.DefaultWidth)

	if stats.failed > 0 {
		zap.L().Warn("Setup completed with some failures",
			zap.Int("created", stats.created),
			zap.Int("failed", stats.failed),
			zap.Strings("failed_owners", stats.failures))
	} else {
		zap.L().Info("Setup completed successfully",
			zap.Int("created", stats.created),
			zap.Int("skipped", stats.skipped))
	}
}
