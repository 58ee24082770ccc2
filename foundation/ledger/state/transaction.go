package state

import (
	"context"
	"errors"
	"fmt"

	"github.com/launchlab/launchpad/foundation/ledger/database"
)

// ErrNoTransactions is returned from MineNewBlock when the mempool is empty.
var ErrNoTransactions = errors.New("no transactions in mempool")

// SubmitTransaction validates the transaction against the current balances
// and adds it to the mempool. Mining is signaled so the transaction settles
// into a block.
func (s *State) SubmitTransaction(tx database.Tx) error {
	s.evHandler("state: SubmitTransaction: started: tx[%s] %s -> %s amount[%.2f] memo[%s]", tx.ID, tx.FromID, tx.ToID, tx.Amount, tx.Memo)
	defer s.evHandler("state: SubmitTransaction: completed")

	if err := s.validateTransaction(tx); err != nil {
		return err
	}

	n := s.mempool.Upsert(tx)
	s.evHandler("state: SubmitTransaction: mempool[%d]", n)

	s.Worker.SignalStartMining()

	return nil
}

// validateTransaction checks the transaction can settle given the current
// balance minus everything already pending in the mempool.
func (s *State) validateTransaction(tx database.Tx) error {
	if err := tx.FromID.Validate(); err != nil {
		return err
	}

	if err := tx.ToID.Validate(); err != nil {
		return err
	}

	if tx.FromID == tx.ToID {
		return fmt.Errorf("transaction invalid, sending money to yourself, from %s, to %s", tx.FromID, tx.ToID)
	}

	if tx.Amount <= 0 {
		return fmt.Errorf("transaction invalid, amount must be positive, got %g", tx.Amount)
	}

	available := s.db.Balance(tx.FromID) - s.mempool.PendingOutgoing(tx.FromID)
	if available < tx.Amount {
		return fmt.Errorf("transaction invalid, insufficient funds, available %g, needed %g", available, tx.Amount)
	}

	return nil
}

// MineNewBlock attempts to create a new block with a proper hash that can
// become the next block in the chain.
func (s *State) MineNewBlock(ctx context.Context) (database.Block, error) {
	defer s.evHandler("state: MineNewBlock: MINING: completed")

	s.evHandler("state: MineNewBlock: MINING: check mempool count")

	if s.mempool.Count() == 0 {
		return database.Block{}, ErrNoTransactions
	}

	trans := s.mempool.PickBest(int(s.genesis.TransPerBlock))

	s.evHandler("state: MineNewBlock: MINING: perform POW")

	block, err := database.POW(ctx, s.beneficiaryID, s.genesis.Difficulty, s.genesis.MiningReward, s.db.LatestBlock(), trans, s.evHandler)
	if err != nil {
		return database.Block{}, err
	}

	// Just check one more time we were not cancelled.
	if ctx.Err() != nil {
		return database.Block{}, ctx.Err()
	}

	s.evHandler("state: MineNewBlock: MINING: update local state")

	if err := s.validateUpdateLocalState(block); err != nil {
		return database.Block{}, err
	}

	return block, nil
}

// validateUpdateLocalState validates the mined block against the chain,
// writes it to storage and applies its transactions to the balances.
func (s *State) validateUpdateLocalState(block database.Block) error {
	if err := block.ValidateBlock(s.db.LatestBlock(), s.evHandler); err != nil {
		return err
	}

	if err := s.db.Write(block); err != nil {
		return err
	}
	s.db.UpdateLatestBlock(block)

	// Process the transactions and update the balances. A transaction that
	// fails here was valid on submission and raced another spend; it is
	// dropped from the block's effects but stays recorded.
	for _, tx := range block.Trans {
		s.evHandler("state: validateUpdateLocalState: settle: tx[%s]", tx.ID)

		if err := s.db.ApplyTransaction(tx); err != nil {
			s.evHandler("state: validateUpdateLocalState: WARNING: %s", err)
		}

		// Mined transactions leave the mempool whether they settled or not.
		s.mempool.Delete(tx)
	}

	s.db.ApplyMiningReward(block)

	return nil
}
