package store

import (
	"context"
	"errors"
	"testing"

	"bank-ledger-go/internal/models"

	"github.com/shopspring/decimal"
)

type fakeTx struct {
	commitErr error
	commits   int
	rollbacks int
}

func (f *fakeTx) GetAccount(context.Context, string) (*models.Account, error) {
	return nil, ErrNotFound
}

func (f *fakeTx) UpdateBalance(context.Context, string, decimal.Decimal) error { return nil }

func (f *fakeTx) RecordTransaction(context.Context, RecordTransactionParams) (*models.Transaction, error) {
	return &models.Transaction{}, nil
}

func (f *fakeTx) Commit() error {
	f.commits++
	return f.commitErr
}

func (f *fakeTx) Rollback() error {
	f.rollbacks++
	return nil
}

type fakeStore struct {
	tx       *fakeTx
	beginErr error
}

func (s *fakeStore) CreateAccount(context.Context, string) (*models.Account, error) { return nil, nil }
func (s *fakeStore) GetAccount(context.Context, string) (*models.Account, error) { return nil, nil }
func (s *fakeStore) ListAccounts(context.Context) ([]models.Account, error) { return nil, nil }
func (s *fakeStore) ListTransactions(context.Context, string) ([]models.Transaction, error) {
	return nil, nil
}
func (s *fakeStore) Close() error { return nil }

func (s *fakeStore) Begin(context.Context) (Tx, error) {
	if s.beginErr != nil {
		return nil, s.beginErr
	}
	return s.tx, nil
}

func TestWithTx_CommitsOnSuccess(t *testing.T) {
	s := &fakeStore{tx: &fakeTx{}}

	if err := WithTx(context.Background(), s, func(Tx) error { return nil }); err != nil {
		t.Fatalf("WithTx failed: %v", err)
	}
	if s.tx.commits != 1 {
		t.Errorf("Expected 1 commit, got %d", s.tx.commits)
	}
	if s.tx.rollbacks != 0 {
		t.Errorf("Expected no rollback, got %d", s.tx.rollbacks)
	}
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	s := &fakeStore{tx: &fakeTx{}}

	err := WithTx(context.Background(), s, func(Tx) error { return ErrInsufficientFunds })
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("Expected ErrInsufficientFunds, got %v", err)
	}
	if s.tx.commits != 0 {
		t.Errorf("Expected no commit, got %d", s.tx.commits)
	}
	if s.tx.rollbacks != 1 {
		t.Errorf("Expected 1 rollback, got %d", s.tx.rollbacks)
	}
}

func TestWithTx_RollsBackOnPanic(t *testing.T) {
	s := &fakeStore{tx: &fakeTx{}}

	defer func() {
		if recover() == nil {
			t.Fatal("Expected panic to propagate")
		}
		if s.tx.rollbacks != 1 {
			t.Errorf("Expected 1 rollback, got %d", s.tx.rollbacks)
		}
	}()

	_ = WithTx(context.Background(), s, func(Tx) error { panic("boom") })
}

func TestWithTx_StorageErrors(t *testing.T) {
	beginFailure := &fakeStore{beginErr: errors.New("database is locked")}
	err := WithTx(context.Background(), beginFailure, func(Tx) error { return nil })
	if !errors.Is(err, ErrStorage) {
		t.Errorf("Expected ErrStorage on begin failure, got %v", err)
	}

	commitFailure := &fakeStore{tx: &fakeTx{commitErr: errors.New("disk I/O error")}}
	err = WithTx(context.Background(), commitFailure, func(Tx) error { return nil })
	if !errors.Is(err, ErrStorage) {
		t.Errorf("Expected ErrStorage on commit failure, got %v", err)
	}
	if commitFailure.tx.rollbacks != 1 {
		t.Errorf("Expected rollback after failed commit, got %d", commitFailure.tx.rollbacks)
	}
}
