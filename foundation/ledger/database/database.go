// Package database handles all the lower level support for maintaining the
// block history and the in memory account balances of the settlement ledger.
package database

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/launchlab/launchpad/foundation/ledger/genesis"
)

// ErrAccountNotFound is returned when an account does not exist.
var ErrAccountNotFound = errors.New("account not found")

// Serializer interface represents the behavior required to be implemented
// by any package providing support for storing and reading blocks.
type Serializer interface {
	Write(blockData BlockData) error
	GetBlock(num uint64) (BlockData, error)
	ForEach() Iterator
	Close() error
	Reset() error
}

// Iterator interface represents the behavior required to be implemented
// by any package providing support to iterate over the blocks.
type Iterator interface {
	Next() (BlockData, error)
	Done() bool
}

// =============================================================================

// Database manages the accounts that have transacted on the ledger and the
// block history behind them.
type Database struct {
	mu sync.RWMutex

	genesis     genesis.Genesis
	latestBlock Block
	accounts    map[AccountID]Account

	serializer Serializer
}

// New constructs a new database, applies the genesis balances and replays
// any blocks already held by the serializer.
func New(genesis genesis.Genesis, serializer Serializer, evHandler func(v string, args ...any)) (*Database, error) {
	db := Database{
		genesis:    genesis,
		accounts:   make(map[AccountID]Account),
		serializer: serializer,
	}

	for accountStr, balance := range genesis.Balances {
		accountID, err := ToAccountID(accountStr)
		if err != nil {
			return nil, err
		}
		db.accounts[accountID] = newAccount(accountID, balance)
	}

	// Replay all the blocks the serializer already holds.
	iter := serializer.ForEach()
	for blockData, err := iter.Next(); !iter.Done(); blockData, err = iter.Next() {
		if err != nil {
			return nil, err
		}

		block := ToBlock(blockData)
		if err := block.ValidateBlock(db.latestBlock, evHandler); err != nil {
			return nil, err
		}

		for _, tx := range block.Trans {
			if err := db.ApplyTransaction(tx); err != nil {
				return nil, err
			}
		}
		db.ApplyMiningReward(block)

		db.latestBlock = block
	}

	return &db, nil
}

// Close closes the underlying block storage.
func (db *Database) Close() {
	db.serializer.Close()
}

// Reset re-initializes the database back to the genesis state.
func (db *Database) Reset() error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if err := db.serializer.Reset(); err != nil {
		return err
	}

	db.latestBlock = Block{}
	db.accounts = make(map[AccountID]Account)
	for accountStr, balance := range db.genesis.Balances {
		accountID, err := ToAccountID(accountStr)
		if err != nil {
			return err
		}
		db.accounts[accountID] = newAccount(accountID, balance)
	}

	return nil
}

// Query returns the account for the specified account id.
func (db *Database) Query(accountID AccountID) (Account, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	account, exists := db.accounts[accountID]
	if !exists {
		return Account{}, ErrAccountNotFound
	}

	return account, nil
}

// Balance returns the current balance for the specified account id. An
// unknown account reads as zero, matching how a first credit creates it.
func (db *Database) Balance(accountID AccountID) float64 {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return db.accounts[accountID].Balance
}

// CopyAccounts makes a copy of the current accounts in the database.
func (db *Database) CopyAccounts() map[AccountID]Account {
	db.mu.RLock()
	defer db.mu.RUnlock()

	accounts := make(map[AccountID]Account, len(db.accounts))
	for accountID, account := range db.accounts {
		accounts[accountID] = account
	}

	return accounts
}

// AllAccounts returns every account ordered by account id.
func (db *Database) AllAccounts() []Account {
	accounts := db.CopyAccounts()

	all := make([]Account, 0, len(accounts))
	for _, account := range accounts {
		all = append(all, account)
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].AccountID < all[j].AccountID
	})

	return all
}

// ApplyMiningReward gives the specified account the mining reward.
func (db *Database) ApplyMiningReward(block Block) {
	db.mu.Lock()
	defer db.mu.Unlock()

	account := db.accounts[block.Header.BeneficiaryID]
	account.AccountID = block.Header.BeneficiaryID
	account.Balance += block.Header.MiningReward

	db.accounts[block.Header.BeneficiaryID] = account
}

// ApplyTransaction performs the business logic for applying a transaction
// to the database.
func (db *Database) ApplyTransaction(tx Tx) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	from := db.accounts[tx.FromID]
	to := db.accounts[tx.ToID]

	if tx.FromID == tx.ToID {
		return fmt.Errorf("transaction invalid, sending money to yourself, from %s, to %s", tx.FromID, tx.ToID)
	}

	if tx.Amount <= 0 {
		return fmt.Errorf("transaction invalid, amount must be positive, got %g", tx.Amount)
	}

	if from.Balance < tx.Amount {
		return fmt.Errorf("transaction invalid, insufficient funds, bal %g, needed %g", from.Balance, tx.Amount)
	}

	from.AccountID = tx.FromID
	to.AccountID = tx.ToID
	from.Balance -= tx.Amount
	to.Balance += tx.Amount

	db.accounts[tx.FromID] = from
	db.accounts[tx.ToID] = to

	return nil
}

// UpdateLatestBlock provides safe access to update the latest block.
func (db *Database) UpdateLatestBlock(block Block) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.latestBlock = block
}

// LatestBlock returns the latest block.
func (db *Database) LatestBlock() Block {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return db.latestBlock
}

// Write adds a new block to the chain.
func (db *Database) Write(block Block) error {
	return db.serializer.Write(NewBlockData(block))
}

// GetBlock returns the contents of the specified block by number.
func (db *Database) GetBlock(num uint64) (Block, error) {
	blockData, err := db.serializer.GetBlock(num)
	if err != nil {
		return Block{}, err
	}

	return ToBlock(blockData), nil
}

// ForEach returns an iterator to walk through all the blocks starting with
// block number 1.
func (db *Database) ForEach() DatabaseIterator {
	return DatabaseIterator{iterator: db.serializer.ForEach()}
}

// =============================================================================

// DatabaseIterator provides iteration over database blocks.
type DatabaseIterator struct {
	iterator Iterator
}

// Next retrieves the next block from storage.
func (di *DatabaseIterator) Next() (Block, error) {
	blockData, err := di.iterator.Next()
	if err != nil {
		return Block{}, err
	}

	return ToBlock(blockData), nil
}

// Done returns the end of chain value.
func (di *DatabaseIterator) Done() bool {
	return di.iterator.Done()
}
