package console

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Command is one entry of the main menu
type Command int

const (
	CmdExit Command = iota
	CmdCreateAccount
	CmdDeposit
	CmdWithdraw
	CmdTransfer
	CmdHistory
	CmdExport
	CmdBalance
)

var ErrUnknownCommand = errors.New("unknown command")

var commandLabels = map[Command]string{
	CmdExit:          "Exit",
	CmdCreateAccount: "Create Account",
	CmdDeposit:       "Deposit",
	CmdWithdraw:      "Withdraw",
	CmdTransfer:      "Transfer",
	CmdHistory:       "View Transactions",
	CmdExport:        "Export Transactions to CSV",
	CmdBalance:       "Check Balance",
}

// menuOrder lists commands as they appear on screen, Exit last
var menuOrder = []Command{
	CmdCreateAccount, CmdDeposit, CmdWithdraw, CmdTransfer,
	CmdHistory, CmdExport, CmdBalance, CmdExit,
}

func (c Command) String() string {
	if label, ok := commandLabels[c]; ok {
		return label
	}
	return fmt.Sprintf("Command(%d)", int(c))
}

// ParseCommand maps a menu choice such as "4" to its Command
func ParseCommand(input string) (Command, error) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnknownCommand, input)
	}
	cmd := Command(n)
	if _, ok := commandLabels[cmd]; !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownCommand, input)
	}
	return cmd, nil
}
