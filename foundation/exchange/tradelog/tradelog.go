// Package tradelog maintains the append-only history of executed trades.
package tradelog

import (
	"sync"
	"time"
)

// Set of trade directions.
const (
	DirectionBuy  = Direction("BUY")
	DirectionSell = Direction("SELL")
)

// Direction represents the side of an executed trade.
type Direction string

// Trade represents an immutable record of one executed trade. Amount is in
// tokens, BaseAmount in the settlement currency, Price in base per token.
type Trade struct {
	ID          string
	Symbol      string
	Trader      string
	Direction   Direction
	Amount      float64
	Price       float64
	BaseAmount  float64
	Timestamp   time.Time
	SlippagePct float64
}

// Log manages the history of executed trades. The log grows without bound,
// which is acceptable at single-node simulation scale; pruning, if ever
// needed, is an external concern.
type Log struct {
	mu     sync.RWMutex
	trades []Trade
}

// NewLog constructs a log for trade history management.
func NewLog() *Log {
	return &Log{}
}

// Append adds a trade to the history.
func (l *Log) Append(t Trade) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.trades = append(l.trades, t)
}

// Recent returns up to limit trades, most recent first.
func (l *Log) Recent(limit int) []Trade {
	l.mu.RLock()
	defer l.mu.RUnlock()

	n := len(l.trades)
	if limit > 0 && limit < n {
		n = limit
	}

	trades := make([]Trade, 0, n)
	for i := len(l.trades) - 1; i >= 0 && len(trades) < n; i-- {
		trades = append(trades, l.trades[i])
	}

	return trades
}

// Count returns the total number of trades recorded.
func (l *Log) Count() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return len(l.trades)
}
