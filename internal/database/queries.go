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

const (
	// Account queries
	queryAccountExists = `
		SELECT 1 FROM accounts WHERE id = ? LIMIT 1`

	queryInsertAccount = `
		INSERT INTO accounts (id, owner_name, balance, opened_at) VALUES (?, ?, ?, ?)`

	queryGetAccount = `
		SELECT id, owner_name, balance, opened_at
		FROM accounts
		WHERE id = ?`

	queryListAccounts = `
		SELECT id, owner_name, balance, opened_at
		FROM accounts
		ORDER BY opened_at, id`

	queryUpdateBalance = `
		UPDATE accounts
		SET balance = ?
		WHERE id = ?`

	// Transaction queries
	queryInsertTransaction = `
		INSERT INTO transactions (
			account_id, type, amount, balance_after, counterparty_id, transfer_id, note, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`

	queryListTransactions = `
		SELECT id, account_id, type, amount, balance_after, counterparty_id, transfer_id, note, created_at
		FROM transactions
		WHERE account_id = ?
		ORDER BY created_at, id`
)
