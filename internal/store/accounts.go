package store

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

// AccountNumberDigits is the length of generated account numbers.
const AccountNumberDigits = 12

// MaxAccountNumberAttempts bounds the collision retry loop in CreateAccount.
const MaxAccountNumberAttempts = 32

// NewAccountNumber returns a random account number of AccountNumberDigits
// decimal digits. Leading zeros are kept.
func NewAccountNumber() (string, error) {
	var b strings.Builder
	b.Grow(AccountNumberDigits)
	ten := big.NewInt(10)
	for i := 0; i < AccountNumberDigits; i++ {
		n, err := rand.Int(rand.Reader, ten)
		if err != nil {
			return "", fmt.Errorf("failed to generate account number: %w", err)
		}
		b.WriteByte(byte('0' + n.Int64()))
	}
	return b.String(), nil
}

// NormalizeOwnerName trims the name and rejects it when empty.
func NormalizeOwnerName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: owner name cannot be empty", ErrValidation)
	}
	return name, nil
}
