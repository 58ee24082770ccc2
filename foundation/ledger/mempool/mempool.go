// Package mempool maintains the pool of transactions waiting to be mined
// into a block. Transactions are selected first in, first out.
package mempool

import (
	"sync"

	"github.com/launchlab/launchpad/foundation/ledger/database"
)

// Mempool represents a cache of transactions ordered by arrival.
type Mempool struct {
	mu   sync.RWMutex
	pool []database.Tx
}

// New constructs a new mempool for transaction management.
func New() *Mempool {
	return &Mempool{}
}

// Count returns the current number of transactions in the pool.
func (mp *Mempool) Count() int {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	return len(mp.pool)
}

// Upsert adds a transaction to the pool. A transaction with an id already
// in the pool replaces the existing one.
func (mp *Mempool) Upsert(tx database.Tx) int {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	for i, existing := range mp.pool {
		if existing.ID == tx.ID {
			mp.pool[i] = tx
			return len(mp.pool)
		}
	}

	mp.pool = append(mp.pool, tx)

	return len(mp.pool)
}

// PickBest returns up to howMany transactions in arrival order. Pass a
// value less than 1 for all the transactions in the pool.
func (mp *Mempool) PickBest(howMany int) []database.Tx {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	n := len(mp.pool)
	if howMany > 0 && howMany < n {
		n = howMany
	}

	txs := make([]database.Tx, n)
	copy(txs, mp.pool[:n])

	return txs
}

// Delete removes the specified transaction from the pool.
func (mp *Mempool) Delete(tx database.Tx) {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	for i, existing := range mp.pool {
		if existing.ID == tx.ID {
			mp.pool = append(mp.pool[:i], mp.pool[i+1:]...)
			return
		}
	}
}

// Truncate clears all the transactions from the pool.
func (mp *Mempool) Truncate() {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	mp.pool = []database.Tx{}
}

// PendingOutgoing returns the total amount of base currency the specified
// account would spend if every pooled transaction mined.
func (mp *Mempool) PendingOutgoing(accountID database.AccountID) float64 {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	var total float64
	for _, tx := range mp.pool {
		if tx.FromID == accountID {
			total += tx.Amount
		}
	}

	return total
}
