package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"bank-ledger-go/internal/bank"
	"bank-ledger-go/internal/common"
	"bank-ledger-go/internal/export"
	"bank-ledger-go/internal/models"
	"bank-ledger-go/internal/store"

	"github.com/olekukonko/tablewriter"
	"go.uber.org/zap"
)

const title = "BANK ACCOUNT MANAGEMENT SYSTEM"

// Menu drives the bank service from a line-oriented terminal session
type Menu struct {
	bank         *bank.Service
	in           *bufio.Scanner
	out          io.Writer
	exportDir    string
	historyLimit int
	now          func() time.Time
}

func NewMenu(service *bank.Service, in io.Reader, out io.Writer, cfg models.ConsoleConfig) *Menu {
	historyLimit := cfg.HistoryLimit
	if historyLimit <= 0 {
		historyLimit = 20
	}
	exportDir := cfg.ExportDir
	if exportDir == "" {
		exportDir = "."
	}
	return &Menu{
		bank:         service,
		in:           bufio.NewScanner(in),
		out:          out,
		exportDir:    exportDir,
		historyLimit: historyLimit,
		now:          time.Now,
	}
}

// Run shows the menu until the user exits or input ends
func (m *Menu) Run(ctx context.Context) error {
	common.PrintHeader(m.out, title, common.DefaultWidth)

	for {
		m.printMenu()
		choice, err := m.prompt("Enter choice: ")
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(m.out, "\nGoodbye!")
			return nil
		}
		if err != nil {
			return err
		}

		cmd, err := ParseCommand(choice)
		if err != nil {
			fmt.Fprintf(m.out, "Please enter a valid choice (0-%d).\n", int(CmdBalance))
			continue
		}
		if cmd == CmdExit {
			fmt.Fprintln(m.out, "Goodbye!")
			return nil
		}

		if err := m.Execute(ctx, cmd); err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(m.out, "\nGoodbye!")
				return nil
			}
			m.printError(cmd, err)
		}
	}
}

// Execute prompts for the command's arguments and runs it
func (m *Menu) Execute(ctx context.Context, cmd Command) error {
	zap.L().Debug("Executing command", zap.String("command", cmd.String()))

	switch cmd {
	case CmdCreateAccount:
		return m.createAccount(ctx)
	case CmdDeposit:
		return m.deposit(ctx)
	case CmdWithdraw:
		return m.withdraw(ctx)
	case CmdTransfer:
		return m.transfer(ctx)
	case CmdHistory:
		return m.history(ctx)
	case CmdExport:
		return m.export(ctx)
	case CmdBalance:
		return m.balance(ctx)
	case CmdExit:
		return nil
	default:
		return fmt.Errorf("%w: %d", ErrUnknownCommand, int(cmd))
	}
}

func (m *Menu) printMenu() {
	fmt.Fprintln(m.out, "\nChoose an option:")
	for _, cmd := range menuOrder {
		fmt.Fprintf(m.out, " %d) %s\n", int(cmd), cmd)
	}
}

func (m *Menu) prompt(msg string) (string, error) {
	fmt.Fprint(m.out, msg)
	if !m.in.Scan() {
		if err := m.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(m.in.Text()), nil
}

func (m *Menu) promptAmount() (string, error) {
	return m.prompt("Enter amount (e.g., 100 or 100.50): ")
}

func (m *Menu) printError(cmd Command, err error) {
	zap.L().Debug("Command failed", zap.String("command", cmd.String()), zap.Error(err))

	switch {
	case errors.Is(err, store.ErrInsufficientFunds):
		fmt.Fprintln(m.out, "❌ Insufficient funds.")
	case errors.Is(err, store.ErrNotFound):
		fmt.Fprintln(m.out, "❌ Account not found.")
	case errors.Is(err, store.ErrValidation):
		fmt.Fprintf(m.out, "❌ Invalid input: %v\n", err)
	case errors.Is(err, store.ErrIO):
		fmt.Fprintf(m.out, "❌ Failed to export: %v\n", err)
	default:
		fmt.Fprintf(m.out, "❌ Error: %v\n", err)
	}
}

func (m *Menu) createAccount(ctx context.Context) error {
	name, err := m.prompt("Enter account holder name: ")
	if err != nil {
		return err
	}
	account, err := m.bank.CreateAccount(ctx, name)
	if err != nil {
		return err
	}
	fmt.Fprintf(m.out, "✅ Account created. Account No: %s\n", account.Id)
	return nil
}

func (m *Menu) deposit(ctx context.Context) error {
	accountId, err := m.prompt("Enter account no: ")
	if err != nil {
		return err
	}
	raw, err := m.promptAmount()
	if err != nil {
		return err
	}
	amount, err := common.ParseAmount(raw)
	if err != nil {
		return err
	}
	note, err := m.prompt("Optional note: ")
	if err != nil {
		return err
	}

	newBalance, err := m.bank.Deposit(ctx, accountId, amount, note)
	if err != nil {
		return err
	}
	fmt.Fprintf(m.out, "✅ Deposited %s. New Balance: %s\n", common.FormatAmount(amount), common.FormatAmount(newBalance))
	return nil
}

func (m *Menu) withdraw(ctx context.Context) error {
	accountId, err := m.prompt("Enter account no: ")
	if err != nil {
		return err
	}
	raw, err := m.promptAmount()
	if err != nil {
		return err
	}
	amount, err := common.ParseAmount(raw)
	if err != nil {
		return err
	}
	note, err := m.prompt("Optional note: ")
	if err != nil {
		return err
	}

	newBalance, err := m.bank.Withdraw(ctx, accountId, amount, note)
	if err != nil {
		return err
	}
	fmt.Fprintf(m.out, "✅ Withdrew %s. New Balance: %s\n", common.FormatAmount(amount), common.FormatAmount(newBalance))
	return nil
}

func (m *Menu) transfer(ctx context.Context) error {
	fromId, err := m.prompt("From account no: ")
	if err != nil {
		return err
	}
	toId, err := m.prompt("To account no: ")
	if err != nil {
		return err
	}
	raw, err := m.promptAmount()
	if err != nil {
		return err
	}
	amount, err := common.ParseAmount(raw)
	if err != nil {
		return err
	}
	note, err := m.prompt("Optional note: ")
	if err != nil {
		return err
	}

	result, err := m.bank.Transfer(ctx, fromId, toId, amount, note)
	if err != nil {
		return err
	}
	fmt.Fprintf(m.out, "✅ Transferred %s from %s to %s.\n", common.FormatAmount(result.Amount), result.FromId, result.ToId)
	fmt.Fprintf(m.out, "   New Balance (From): %s\n", common.FormatAmount(result.FromBalance))
	fmt.Fprintf(m.out, "   New Balance (To)  : %s\n", common.FormatAmount(result.ToBalance))
	return nil
}

func (m *Menu) history(ctx context.Context) error {
	accountId, err := m.prompt("Enter account no: ")
	if err != nil {
		return err
	}
	raw, err := m.prompt(fmt.Sprintf("How many recent transactions? (default %d): ", m.historyLimit))
	if err != nil {
		return err
	}
	limit := m.historyLimit
	if n, convErr := strconv.Atoi(raw); convErr == nil && n > 0 {
		limit = n
	}

	transactions, err := m.bank.RecentTransactions(ctx, accountId, limit)
	if err != nil {
		return err
	}
	if len(transactions) == 0 {
		fmt.Fprintln(m.out, "No transactions found.")
		return nil
	}

	fmt.Fprintln(m.out, "\nRecent Transactions:")
	table := tablewriter.NewWriter(m.out)
	table.SetHeader([]string{"ID", "Time", "Type", "Amount", "Balance", "With", "Note"})
	for _, tx := range transactions {
		table.Append([]string{
			strconv.FormatInt(tx.Id, 10),
			tx.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			string(tx.Type),
			common.FormatAmount(tx.Amount),
			common.FormatAmount(tx.BalanceAfter),
			tx.CounterpartyId,
			tx.Note,
		})
	}
	table.Render()
	return nil
}

func (m *Menu) export(ctx context.Context) error {
	accountId, err := m.prompt("Enter account no: ")
	if err != nil {
		return err
	}

	path := filepath.Join(m.exportDir, export.DefaultFileName(accountId, m.now()))
	rows, err := m.bank.ExportCSV(ctx, accountId, path)
	if err != nil {
		return err
	}
	fmt.Fprintf(m.out, "✅ Exported %d transactions to %s\n", rows, path)
	return nil
}

func (m *Menu) balance(ctx context.Context) error {
	accountId, err := m.prompt("Enter account no: ")
	if err != nil {
		return err
	}
	account, err := m.bank.GetAccount(ctx, accountId)
	if err != nil {
		return err
	}
	fmt.Fprintf(m.out, "Account %s (%s): %s\n", account.Id, account.OwnerName, common.FormatAmount(account.Balance))
	return nil
}
