package state

import (
	"github.com/launchlab/launchpad/foundation/ledger/database"
	"github.com/launchlab/launchpad/foundation/ledger/genesis"
)

// Genesis returns a copy of the genesis information.
func (s *State) Genesis() genesis.Genesis {
	return s.genesis
}

// QueryAccount returns a copy of the account from the database.
func (s *State) QueryAccount(accountID database.AccountID) (database.Account, error) {
	return s.db.Query(accountID)
}

// QueryBalance returns the balance for the specified account. Unknown
// accounts read as zero.
func (s *State) QueryBalance(accountID database.AccountID) float64 {
	return s.db.Balance(accountID)
}

// Accounts returns a copy of the database accounts.
func (s *State) Accounts() map[database.AccountID]database.Account {
	return s.db.CopyAccounts()
}

// AllAccounts returns every account ordered by account id.
func (s *State) AllAccounts() []database.Account {
	return s.db.AllAccounts()
}

// MempoolLength returns the current length of the mempool.
func (s *State) MempoolLength() int {
	return s.mempool.Count()
}

// Mempool returns a copy of the mempool.
func (s *State) Mempool() []database.Tx {
	return s.mempool.PickBest(0)
}

// LatestBlock returns a copy of the current latest block.
func (s *State) LatestBlock() database.Block {
	return s.db.LatestBlock()
}

// QueryBlocksByNumber returns the set of blocks for the inclusive range.
// Pass 1 and the latest block number for the whole chain.
func (s *State) QueryBlocksByNumber(from uint64, to uint64) []database.Block {
	latest := s.db.LatestBlock().Header.Number
	if to > latest {
		to = latest
	}

	var blocks []database.Block
	for num := from; num <= to; num++ {
		block, err := s.db.GetBlock(num)
		if err != nil {
			break
		}
		blocks = append(blocks, block)
	}

	return blocks
}
