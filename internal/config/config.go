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

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"bank-ledger-go/internal/models"
)

func Load() (*models.Config, error) {
	backend := strings.ToLower(getEnvString("LEDGER_BACKEND", models.BackendSQLite))
	if backend != models.BackendSQLite && backend != models.BackendMemory {
		return nil, fmt.Errorf("invalid LEDGER_BACKEND %q: must be %s or %s", backend, models.BackendSQLite, models.BackendMemory)
	}

	connMaxLifetime, err := getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute)
	if err != nil {
		return nil, err
	}

	connMaxIdleTime, err := getEnvDuration("DB_CONN_MAX_IDLE_TIME", 30*time.Second)
	if err != nil {
		return nil, err
	}

	pingTimeout, err := getEnvDuration("DB_PING_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, err
	}

	historyLimit := getEnvInt("HISTORY_LIMIT", 20)
	if historyLimit <= 0 {
		return nil, fmt.Errorf("invalid HISTORY_LIMIT %d: must be positive", historyLimit)
	}

	return &models.Config{
		Backend:  backend,
		LogLevel: strings.ToLower(getEnvString("LOG_LEVEL", "info")),
		Database: models.DatabaseConfig{
			Path:            getEnvString("DATABASE_PATH", "bank.db"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: connMaxLifetime,
			ConnMaxIdleTime: connMaxIdleTime,
			PingTimeout:     pingTimeout,
		},
		Console: models.ConsoleConfig{
			ExportDir:    getEnvString("EXPORT_DIR", "."),
			HistoryLimit: historyLimit,
			SeedFile:     getEnvString("SEED_FILE", "accounts.yaml"),
		},
	}, nil
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	if value := os.Getenv(key); value != "" {
		duration, err := time.ParseDuration(value)
		if err != nil {
			return 0, fmt.Errorf("invalid duration for %s: %q (%w)", key, value, err)
		}
		return duration, nil
	}
	return defaultValue, nil
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
