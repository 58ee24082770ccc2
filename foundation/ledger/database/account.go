package database

import (
	"errors"
	"strings"
)

// AccountID represents an account in the settlement ledger. User accounts
// and system sink accounts, such as per token pool accounts, share the
// same namespace.
type AccountID string

// ToAccountID constructs an account id from a string and validates it
// carries a usable value.
func ToAccountID(value string) (AccountID, error) {
	id := AccountID(strings.TrimSpace(value))
	if err := id.Validate(); err != nil {
		return "", err
	}

	return id, nil
}

// Validate verifies the account id is not empty and has no embedded
// whitespace.
func (id AccountID) Validate() error {
	if id == "" {
		return errors.New("account id is empty")
	}

	if strings.ContainsAny(string(id), " \t\n") {
		return errors.New("account id contains whitespace")
	}

	return nil
}

// =============================================================================

// Account represents information stored in the ledger for an individual
// account. Balances are in the base settlement currency.
type Account struct {
	AccountID AccountID
	Balance   float64
}

// newAccount constructs a new account value.
func newAccount(accountID AccountID, balance float64) Account {
	return Account{
		AccountID: accountID,
		Balance:   balance,
	}
}
