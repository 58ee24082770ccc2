// Package holding maintains the per-user token positions with their
// volume-weighted average cost basis.
package holding

import (
	"fmt"
	"sync"
	"time"
)

// Holding represents a user's position in one token. AveragePrice is the
// volume-weighted average unit price across all acquisitions and is not
// affected by sells. AcquiredAt is the time of the first acquisition.
type Holding struct {
	Symbol       string
	Amount       float64
	AcquiredAt   time.Time
	AveragePrice float64
}

// InsufficientHoldingsError is returned when a debit asks for more tokens
// than the user holds.
type InsufficientHoldingsError struct {
	Symbol string
	Have   float64
	Want   float64
}

// Error implements the error interface.
func (e *InsufficientHoldingsError) Error() string {
	return fmt.Sprintf("insufficient %s holdings, have %g, want %g", e.Symbol, e.Have, e.Want)
}

// =============================================================================

// Ledger manages the holdings for every user keyed by user then symbol. An
// entry only exists while its amount is positive; debiting a holding to zero
// removes it, and its cost basis with it.
type Ledger struct {
	mu       sync.RWMutex
	holdings map[string]map[string]Holding
}

// NewLedger constructs a ledger for holdings management.
func NewLedger() *Ledger {
	return &Ledger{
		holdings: make(map[string]map[string]Holding),
	}
}

// Credit adds the specified amount at the specified unit price to the
// user's holding, recomputing the volume-weighted average price. The bool
// reports whether this was the user's first acquisition of the symbol.
func (l *Ledger) Credit(user string, symbol string, amount float64, unitPrice float64, now time.Time) (Holding, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	userHoldings, exists := l.holdings[user]
	if !exists {
		userHoldings = make(map[string]Holding)
		l.holdings[user] = userHoldings
	}

	h, exists := userHoldings[symbol]
	if !exists {
		h = Holding{
			Symbol:       symbol,
			Amount:       amount,
			AcquiredAt:   now,
			AveragePrice: unitPrice,
		}
		userHoldings[symbol] = h

		return h, true
	}

	totalValue := (h.Amount * h.AveragePrice) + (amount * unitPrice)
	h.Amount += amount
	h.AveragePrice = totalValue / h.Amount
	userHoldings[symbol] = h

	return h, false
}

// Debit removes the specified amount from the user's holding. If the
// remainder is zero or below the entry is removed entirely and a later buy
// starts a fresh cost basis. The remaining holding is returned.
func (l *Ledger) Debit(user string, symbol string, amount float64) (Holding, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	userHoldings, exists := l.holdings[user]
	if !exists {
		return Holding{}, &InsufficientHoldingsError{Symbol: symbol, Have: 0, Want: amount}
	}

	h, exists := userHoldings[symbol]
	if !exists {
		return Holding{}, &InsufficientHoldingsError{Symbol: symbol, Have: 0, Want: amount}
	}

	if h.Amount < amount {
		return Holding{}, &InsufficientHoldingsError{Symbol: symbol, Have: h.Amount, Want: amount}
	}

	h.Amount -= amount
	if h.Amount <= 0 {
		delete(userHoldings, symbol)
		h.Amount = 0
		return h, nil
	}

	userHoldings[symbol] = h

	return h, nil
}

// Amount returns the user's current amount of the specified symbol.
func (l *Ledger) Amount(user string, symbol string) float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.holdings[user][symbol].Amount
}

// HoldingsOf returns a copy of all the user's holdings keyed by symbol.
func (l *Ledger) HoldingsOf(user string) map[string]Holding {
	l.mu.RLock()
	defer l.mu.RUnlock()

	cpy := make(map[string]Holding, len(l.holdings[user]))
	for symbol, h := range l.holdings[user] {
		cpy[symbol] = h
	}

	return cpy
}

// TotalAmount returns the sum of all outstanding holdings for the
// specified symbol across every user.
func (l *Ledger) TotalAmount(symbol string) float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var total float64
	for _, userHoldings := range l.holdings {
		total += userHoldings[symbol].Amount
	}

	return total
}
