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

package database

import (
	"context"
	"fmt"
	"time"
)

// timeLayout is fixed width so that created_at sorts lexically in time order.
const timeLayout = "2006-01-02 15:04:05.000000000"

// Amounts are kept as TEXT decimal strings; REAL would drift.
const schema = `
	-- Accounts Table (Current State - Hot Data)
	CREATE TABLE IF NOT EXISTS accounts (
		id TEXT PRIMARY KEY,
		owner_name TEXT NOT NULL,
		balance TEXT NOT NULL DEFAULT '0',
		opened_at TEXT NOT NULL
	);

	-- Transactions Table (Audit Trail - Cold Data)
	CREATE TABLE IF NOT EXISTS transactions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		account_id TEXT NOT NULL REFERENCES accounts(id),
		type TEXT NOT NULL CHECK (type IN ('DEPOSIT', 'WITHDRAW', 'TRANSFER_IN', 'TRANSFER_OUT')),
		amount TEXT NOT NULL,
		balance_after TEXT NOT NULL,
		counterparty_id TEXT NOT NULL DEFAULT '',
		transfer_id TEXT NOT NULL DEFAULT '',
		note TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_accounts_opened_at ON accounts(opened_at);
	CREATE INDEX IF NOT EXISTS idx_transactions_account_created ON transactions(account_id, created_at, id);
	CREATE INDEX IF NOT EXISTS idx_transactions_transfer_id ON transactions(transfer_id);
	`

func (s *Service) initSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return err
	}
	return nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(value string) (time.Time, error) {
	t, err := time.ParseInLocation(timeLayout, value, time.UTC)
	if err != nil {
		// Fall back to RFC3339 for rows written by hand
		t, err = time.Parse(time.RFC3339Nano, value)
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to parse timestamp %q: %w", value, err)
		}
	}
	return t.UTC(), nil
}
