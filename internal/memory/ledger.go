package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"bank-ledger-go/internal/models"
	"bank-ledger-go/internal/store"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Compile-time check: *Ledger must satisfy store.LedgerStore.
var _ store.LedgerStore = (*Ledger)(nil)

// Ledger is an in-process store.LedgerStore. Nothing survives Close.
//
// Units of work are serialised by txMu, which a Tx holds from Begin until
// Commit or Rollback. mu guards the published state and is only held briefly,
// so plain reads never block on an open Tx.
type Ledger struct {
	txMu sync.Mutex

	mu           sync.RWMutex
	accounts     map[string]models.Account
	transactions map[string][]models.Transaction

	nextTxId atomic.Int64
	now      func() time.Time
}

// NewLedger creates an empty in-memory ledger.
func NewLedger() *Ledger {
	zap.L().Info("Using in-memory ledger; state is discarded on exit")
	return &Ledger{
		accounts:     make(map[string]models.Account),
		transactions: make(map[string][]models.Transaction),
		now:          time.Now,
	}
}

func (l *Ledger) CreateAccount(_ context.Context, ownerName string) (*models.Account, error) {
	name, err := store.NormalizeOwnerName(ownerName)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	for attempt := 0; attempt < store.MaxAccountNumberAttempts; attempt++ {
		id, err := store.NewAccountNumber()
		if err != nil {
			return nil, err
		}
		if _, exists := l.accounts[id]; exists {
			continue
		}

		account := models.Account{
			Id:        id,
			OwnerName: name,
			Balance:   decimal.Zero,
			OpenedAt:  l.now().UTC(),
		}
		l.accounts[id] = account

		zap.L().Info("Account created", zap.String("account_id", id), zap.String("owner_name", name))
		return &account, nil
	}
	return nil, fmt.Errorf("%w: no free account number after %d attempts", store.ErrStorage, store.MaxAccountNumberAttempts)
}

func (l *Ledger) GetAccount(_ context.Context, accountId string) (*models.Account, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	account, ok := l.accounts[accountId]
	if !ok {
		return nil, fmt.Errorf("%w: %s", store.ErrNotFound, accountId)
	}
	return &account, nil
}

func (l *Ledger) ListAccounts(_ context.Context) ([]models.Account, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	accounts := make([]models.Account, 0, len(l.accounts))
	for _, account := range l.accounts {
		accounts = append(accounts, account)
	}
	sort.Slice(accounts, func(i, j int) bool {
		if accounts[i].OpenedAt.Equal(accounts[j].OpenedAt) {
			return accounts[i].Id < accounts[j].Id
		}
		return accounts[i].OpenedAt.Before(accounts[j].OpenedAt)
	})
	return accounts, nil
}

// ListTransactions returns a copy of the account's history in ascending time order
func (l *Ledger) ListTransactions(_ context.Context, accountId string) ([]models.Transaction, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	history := l.transactions[accountId]
	out := make([]models.Transaction, len(history))
	copy(out, history)
	return out, nil
}

// Begin blocks until no other unit of work is open.
func (l *Ledger) Begin(ctx context.Context) (store.Tx, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l.txMu.Lock()
	return &memoryTx{
		ledger:  l,
		working: make(map[string]models.Account),
	}, nil
}

// Close drops all state.
func (l *Ledger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.accounts = make(map[string]models.Account)
	l.transactions = make(map[string][]models.Transaction)
	return nil
}

// memoryTx works on a copy of every account it touches. Commit publishes the
// copies and the pending records; Rollback throws them away.
type memoryTx struct {
	ledger  *Ledger
	working map[string]models.Account
	pending []models.Transaction
	done    bool
}

func (t *memoryTx) account(accountId string) (models.Account, error) {
	if account, ok := t.working[accountId]; ok {
		return account, nil
	}

	t.ledger.mu.RLock()
	account, ok := t.ledger.accounts[accountId]
	t.ledger.mu.RUnlock()
	if !ok {
		return models.Account{}, fmt.Errorf("%w: %s", store.ErrNotFound, accountId)
	}
	t.working[accountId] = account
	return account, nil
}

func (t *memoryTx) GetAccount(_ context.Context, accountId string) (*models.Account, error) {
	if t.done {
		return nil, fmt.Errorf("%w: transaction already finished", store.ErrStorage)
	}
	account, err := t.account(accountId)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (t *memoryTx) UpdateBalance(_ context.Context, accountId string, balance decimal.Decimal) error {
	if t.done {
		return fmt.Errorf("%w: transaction already finished", store.ErrStorage)
	}
	if balance.IsNegative() {
		return fmt.Errorf("%w: balance cannot be negative (%s)", store.ErrValidation, balance.String())
	}
	account, err := t.account(accountId)
	if err != nil {
		return err
	}
	account.Balance = balance
	t.working[accountId] = account
	return nil
}

func (t *memoryTx) RecordTransaction(_ context.Context, params store.RecordTransactionParams) (*models.Transaction, error) {
	if t.done {
		return nil, fmt.Errorf("%w: transaction already finished", store.ErrStorage)
	}
	if !params.Type.Valid() {
		return nil, fmt.Errorf("%w: unknown transaction type %q", store.ErrValidation, params.Type)
	}
	if !params.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", store.ErrValidation)
	}
	if _, err := t.account(params.AccountId); err != nil {
		return nil, err
	}

	transaction := models.Transaction{
		Id:             t.ledger.nextTxId.Add(1),
		AccountId:      params.AccountId,
		Type:           params.Type,
		Amount:         params.Amount,
		BalanceAfter:   params.BalanceAfter,
		CounterpartyId: params.CounterpartyId,
		TransferId:     params.TransferId,
		Note:           params.Note,
		CreatedAt:      t.ledger.now().UTC(),
	}
	t.pending = append(t.pending, transaction)
	return &transaction, nil
}

func (t *memoryTx) Commit() error {
	if t.done {
		return fmt.Errorf("transaction already finished")
	}
	t.done = true
	defer t.ledger.txMu.Unlock()

	t.ledger.mu.Lock()
	defer t.ledger.mu.Unlock()

	for id, account := range t.working {
		t.ledger.accounts[id] = account
	}
	for _, transaction := range t.pending {
		t.ledger.transactions[transaction.AccountId] = append(t.ledger.transactions[transaction.AccountId], transaction)
	}
	return nil
}

func (t *memoryTx) Rollback() error {
	if t.done {
		return nil
	}
	t.done = true
	t.working = nil
	t.pending = nil
	t.ledger.txMu.Unlock()
	return nil
}
