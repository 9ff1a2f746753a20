/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AmountPlaces is the number of decimal places money is kept to
const AmountPlaces = 2

// TransactionType is the kind of ledger entry recorded against an account
type TransactionType string

const (
	TransactionDeposit     TransactionType = "DEPOSIT"
	TransactionWithdraw    TransactionType = "WITHDRAW"
	TransactionTransferOut TransactionType = "TRANSFER_OUT"
	TransactionTransferIn  TransactionType = "TRANSFER_IN"
)

// Valid reports whether t is one of the known transaction types
func (t TransactionType) Valid() bool {
	switch t {
	case TransactionDeposit, TransactionWithdraw, TransactionTransferOut, TransactionTransferIn:
		return true
	}
	return false
}

// IsCredit reports whether the entry increases the account balance
func (t TransactionType) IsCredit() bool {
	return t == TransactionDeposit || t == TransactionTransferIn
}

// SignedAmount returns amount with the sign the entry applies to the balance
func (t TransactionType) SignedAmount(amount decimal.Decimal) decimal.Decimal {
	if t.IsCredit() {
		return amount
	}
	return amount.Neg()
}

// Account represents a bank account (hot data)
type Account struct {
	Id        string          `db:"id"`
	OwnerName string          `db:"owner_name"`
	Balance   decimal.Decimal `db:"balance"`
	OpenedAt  time.Time       `db:"opened_at"`
}

// Transaction represents immutable transaction history (cold data)
type Transaction struct {
	Id             int64           `db:"id"`
	AccountId      string          `db:"account_id"`
	Type           TransactionType `db:"type"`
	Amount         decimal.Decimal `db:"amount"`
	BalanceAfter   decimal.Decimal `db:"balance_after"`
	CounterpartyId string          `db:"counterparty_id"`
	TransferId     string          `db:"transfer_id"`
	Note           string          `db:"note"`
	CreatedAt      time.Time       `db:"created_at"`
}
