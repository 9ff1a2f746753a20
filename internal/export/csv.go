package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"bank-ledger-go/internal/models"
	"bank-ledger-go/internal/store"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Header is the first row of every export
var Header = []string{"transaction_id", "type", "amount", "timestamp"}

// TimestampLayout is used for the timestamp column
const TimestampLayout = time.RFC3339Nano

// Row is one parsed line of an export
type Row struct {
	TransactionId int64
	Type          models.TransactionType
	Amount        decimal.Decimal
	Timestamp     time.Time
}

// RowFromTransaction projects a transaction onto the exported columns
func RowFromTransaction(tx models.Transaction) Row {
	return Row{
		TransactionId: tx.Id,
		Type:          tx.Type,
		Amount:        tx.Amount,
		Timestamp:     tx.CreatedAt.UTC(),
	}
}

func (r Row) record() []string {
	return []string{
		strconv.FormatInt(r.TransactionId, 10),
		string(r.Type),
		r.Amount.StringFixed(models.AmountPlaces),
		r.Timestamp.UTC().Format(TimestampLayout),
	}
}

// WriteTransactions writes the header and one row per transaction to w
func WriteTransactions(w io.Writer, transactions []models.Transaction) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(Header); err != nil {
		return err
	}
	for _, tx := range transactions {
		if err := writer.Write(RowFromTransaction(tx).record()); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteFile writes transactions to path. The file is written next to the
// destination under a temporary name and renamed into place, so a failed
// export never leaves a truncated file behind.
func WriteFile(path string, transactions []models.Transaction) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".export-*.csv.tmp")
	if err != nil {
		return fmt.Errorf("%w: unable to create %s: %w", store.ErrIO, path, err)
	}
	tmpName := tmp.Name()

	cleanup := func() {
		if err := os.Remove(tmpName); err != nil && !errors.Is(err, os.ErrNotExist) {
			zap.L().Warn("Failed to remove temporary export file", zap.String("file", tmpName), zap.Error(err))
		}
	}

	if err := WriteTransactions(tmp, transactions); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("%w: unable to write %s: %w", store.ErrIO, path, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("%w: unable to close %s: %w", store.ErrIO, path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return fmt.Errorf("%w: unable to move export into %s: %w", store.ErrIO, path, err)
	}

	zap.L().Info("Transactions exported", zap.String("file", path), zap.Int("rows", len(transactions)))
	return nil
}

// ReadTransactions parses an export produced by WriteTransactions
func ReadTransactions(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(Header)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("unable to read header: %w", err)
	}
	for i, name := range Header {
		if header[i] != name {
			return nil, fmt.Errorf("unexpected header column %d: %q, want %q", i, header[i], name)
		}
	}

	var rows []Row
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		row, err := parseRecord(record)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseRecord(record []string) (Row, error) {
	id, err := strconv.ParseInt(record[0], 10, 64)
	if err != nil {
		return Row{}, fmt.Errorf("invalid transaction_id %q: %w", record[0], err)
	}

	txType := models.TransactionType(record[1])
	if !txType.Valid() {
		return Row{}, fmt.Errorf("invalid type %q", record[1])
	}

	amount, err := decimal.NewFromString(record[2])
	if err != nil {
		return Row{}, fmt.Errorf("invalid amount %q: %w", record[2], err)
	}

	timestamp, err := time.Parse(TimestampLayout, record[3])
	if err != nil {
		return Row{}, fmt.Errorf("invalid timestamp %q: %w", record[3], err)
	}

	return Row{
		TransactionId: id,
		Type:          txType,
		Amount:        amount,
		Timestamp:     timestamp.UTC(),
	}, nil
}

// DefaultFileName returns transactions_<account>_<YYYYMMDD_HHMMSS>.csv
func DefaultFileName(accountId string, now time.Time) string {
	return fmt.Sprintf("transactions_%s_%s.csv", accountId, now.Format("20060102_150405"))
}
