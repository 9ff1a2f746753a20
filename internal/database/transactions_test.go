package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"bank-ledger-go/internal/models"
	"bank-ledger-go/internal/store"

	"github.com/shopspring/decimal"
)

func setupTestDb(t *testing.T) (*Service, func()) {
	t.Helper()

	cfg := models.DatabaseConfig{
		Path:            filepath.Join(t.TempDir(), "bank.db"),
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Minute,
		ConnMaxIdleTime: time.Minute,
		PingTimeout:     time.Second,
	}

	service, err := NewService(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	cleanup := func() {
		service.Close()
	}

	return service, cleanup
}

func TestNewService_InvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  models.DatabaseConfig
	}{
		{"empty path", models.DatabaseConfig{MaxOpenConns: 1, PingTimeout: time.Second}},
		{"no connections", models.DatabaseConfig{Path: "x.db", PingTimeout: time.Second}},
		{"negative idle", models.DatabaseConfig{Path: "x.db", MaxOpenConns: 1, MaxIdleConns: -1, PingTimeout: time.Second}},
		{"no ping timeout", models.DatabaseConfig{Path: "x.db", MaxOpenConns: 1}},
	}
	for _, tt := range tests {
		if _, err := NewService(context.Background(), tt.cfg); err == nil {
			t.Errorf("%s: expected error, got nil", tt.name)
		}
	}
}

func TestCreateAccount(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	ctx := context.Background()

	account, err := service.CreateAccount(ctx, "  Alice Johnson  ")
	if err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}
	if len(account.Id) != store.AccountNumberDigits {
		t.Errorf("Expected %d digit account number, got %q", store.AccountNumberDigits, account.Id)
	}
	if account.OwnerName != "Alice Johnson" {
		t.Errorf("Expected trimmed owner name, got %q", account.OwnerName)
	}
	if !account.Balance.IsZero() {
		t.Errorf("Expected zero balance, got %s", account.Balance.String())
	}

	stored, err := service.GetAccount(ctx, account.Id)
	if err != nil {
		t.Fatalf("GetAccount failed: %v", err)
	}
	if stored.OwnerName != account.OwnerName || !stored.Balance.Equal(decimal.Zero) {
		t.Errorf("Stored account mismatch: %+v", stored)
	}

	if _, err := service.CreateAccount(ctx, "   "); !errors.Is(err, store.ErrValidation) {
		t.Errorf("Expected ErrValidation for blank name, got %v", err)
	}
}

func TestGetAccount_NotFound(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	_, err := service.GetAccount(context.Background(), "000000000000")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestListAccounts(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	ctx := context.Background()
	for _, name := range []string{"Alice", "Bob", "Carol"} {
		if _, err := service.CreateAccount(ctx, name); err != nil {
			t.Fatalf("CreateAccount(%s) failed: %v", name, err)
		}
	}

	accounts, err := service.ListAccounts(ctx)
	if err != nil {
		t.Fatalf("ListAccounts failed: %v", err)
	}
	if len(accounts) != 3 {
		t.Fatalf("Expected 3 accounts, got %d", len(accounts))
	}
}

func TestTx_CommitPersistsBalanceAndRecord(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	ctx := context.Background()
	account, err := service.CreateAccount(ctx, "Alice")
	if err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}

	amount := decimal.RequireFromString("150.25")
	err = store.WithTx(ctx, service, func(tx store.Tx) error {
		if err := tx.UpdateBalance(ctx, account.Id, amount); err != nil {
			return err
		}
		_, err := tx.RecordTransaction(ctx, store.RecordTransactionParams{
			AccountId:    account.Id,
			Type:         models.TransactionDeposit,
			Amount:       amount,
			BalanceAfter: amount,
			Note:         "salary",
		})
		return err
	})
	if err != nil {
		t.Fatalf("WithTx failed: %v", err)
	}

	stored, err := service.GetAccount(ctx, account.Id)
	if err != nil {
		t.Fatalf("GetAccount failed: %v", err)
	}
	if !stored.Balance.Equal(amount) {
		t.Errorf("Expected balance %s, got %s", amount.String(), stored.Balance.String())
	}

	history, err := service.ListTransactions(ctx, account.Id)
	if err != nil {
		t.Fatalf("ListTransactions failed: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("Expected 1 transaction, got %d", len(history))
	}
	if history[0].Type != models.TransactionDeposit || !history[0].Amount.Equal(amount) || history[0].Note != "salary" {
		t.Errorf("Unexpected transaction: %+v", history[0])
	}
}

func TestTx_RollbackDiscardsEverything(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	ctx := context.Background()
	account, err := service.CreateAccount(ctx, "Alice")
	if err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}

	forced := errors.New("forced failure")
	err = store.WithTx(ctx, service, func(tx store.Tx) error {
		if err := tx.UpdateBalance(ctx, account.Id, decimal.NewFromInt(99)); err != nil {
			return err
		}
		if _, err := tx.RecordTransaction(ctx, store.RecordTransactionParams{
			AccountId:    account.Id,
			Type:         models.TransactionDeposit,
			Amount:       decimal.NewFromInt(99),
			BalanceAfter: decimal.NewFromInt(99),
		}); err != nil {
			return err
		}
		return forced
	})
	if !errors.Is(err, forced) {
		t.Fatalf("Expected forced error, got %v", err)
	}

	stored, err := service.GetAccount(ctx, account.Id)
	if err != nil {
		t.Fatalf("GetAccount failed: %v", err)
	}
	if !stored.Balance.IsZero() {
		t.Errorf("Expected balance unchanged at 0, got %s", stored.Balance.String())
	}

	history, err := service.ListTransactions(ctx, account.Id)
	if err != nil {
		t.Fatalf("ListTransactions failed: %v", err)
	}
	if len(history) != 0 {
		t.Errorf("Expected no transactions after rollback, got %d", len(history))
	}
}

func TestTx_UpdateBalanceErrors(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	ctx := context.Background()
	account, err := service.CreateAccount(ctx, "Alice")
	if err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}

	err = store.WithTx(ctx, service, func(tx store.Tx) error {
		return tx.UpdateBalance(ctx, "999999999999", decimal.NewFromInt(1))
	})
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for missing account, got %v", err)
	}

	err = store.WithTx(ctx, service, func(tx store.Tx) error {
		return tx.UpdateBalance(ctx, account.Id, decimal.NewFromInt(-1))
	})
	if !errors.Is(err, store.ErrValidation) {
		t.Errorf("Expected ErrValidation for negative balance, got %v", err)
	}
}

func TestRecordTransaction_ForeignKeyEnforced(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	ctx := context.Background()
	err := store.WithTx(ctx, service, func(tx store.Tx) error {
		_, err := tx.RecordTransaction(ctx, store.RecordTransactionParams{
			AccountId:    "does-not-exist",
			Type:         models.TransactionDeposit,
			Amount:       decimal.NewFromInt(1),
			BalanceAfter: decimal.NewFromInt(1),
		})
		return err
	})
	if !errors.Is(err, store.ErrStorage) {
		t.Errorf("Expected ErrStorage for orphan transaction, got %v", err)
	}
}

func TestListTransactions_AscendingIds(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	ctx := context.Background()
	account, err := service.CreateAccount(ctx, "Alice")
	if err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}

	balance := decimal.Zero
	for i := 1; i <= 5; i++ {
		amount := decimal.NewFromInt(int64(i))
		balance = balance.Add(amount)
		err := store.WithTx(ctx, service, func(tx store.Tx) error {
			if err := tx.UpdateBalance(ctx, account.Id, balance); err != nil {
				return err
			}
			_, err := tx.RecordTransaction(ctx, store.RecordTransactionParams{
				AccountId:    account.Id,
				Type:         models.TransactionDeposit,
				Amount:       amount,
				BalanceAfter: balance,
			})
			return err
		})
		if err != nil {
			t.Fatalf("Deposit %d failed: %v", i, err)
		}
	}

	history, err := service.ListTransactions(ctx, account.Id)
	if err != nil {
		t.Fatalf("ListTransactions failed: %v", err)
	}
	if len(history) != 5 {
		t.Fatalf("Expected 5 transactions, got %d", len(history))
	}
	for i := 1; i < len(history); i++ {
		if history[i].Id <= history[i-1].Id {
			t.Errorf("Transaction ids not ascending: %d then %d", history[i-1].Id, history[i].Id)
		}
		if history[i].CreatedAt.Before(history[i-1].CreatedAt) {
			t.Errorf("Transactions not in chronological order at index %d", i)
		}
	}
	if !history[4].BalanceAfter.Equal(decimal.NewFromInt(15)) {
		t.Errorf("Expected final balance_after 15, got %s", history[4].BalanceAfter.String())
	}
}
