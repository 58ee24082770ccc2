package database

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Tx represents a transfer of base currency between two ledger accounts.
// There are no signatures in this simulated ledger; the node trusts its
// callers and the memo records what the transfer settled.
type Tx struct {
	ID        string    `json:"id"`
	FromID    AccountID `json:"from"`
	ToID      AccountID `json:"to"`
	Amount    float64   `json:"amount"`
	Memo      string    `json:"memo"`
	TimeStamp uint64    `json:"timestamp"`
}

// NewTx constructs a new transaction with a unique id and the current time.
func NewTx(fromID AccountID, toID AccountID, amount float64, memo string) (Tx, error) {
	if err := fromID.Validate(); err != nil {
		return Tx{}, err
	}

	if err := toID.Validate(); err != nil {
		return Tx{}, err
	}

	if fromID == toID {
		return Tx{}, errors.New("transaction from and to accounts are the same")
	}

	if amount <= 0 {
		return Tx{}, errors.New("transaction amount must be positive")
	}

	tx := Tx{
		ID:        uuid.NewString(),
		FromID:    fromID,
		ToID:      toID,
		Amount:    amount,
		Memo:      memo,
		TimeStamp: uint64(time.Now().UTC().Unix()),
	}

	return tx, nil
}
