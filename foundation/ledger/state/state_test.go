package state_test

import (
	"context"
	"testing"

	"github.com/launchlab/launchpad/foundation/ledger/database"
	"github.com/launchlab/launchpad/foundation/ledger/genesis"
	"github.com/launchlab/launchpad/foundation/ledger/state"
	"github.com/launchlab/launchpad/foundation/ledger/storage/memory"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

// nopWorker satisfies the state.Worker interface so tests can drive mining
// directly through MineNewBlock.
type nopWorker struct{}

func (nopWorker) Shutdown()          {}
func (nopWorker) SignalStartMining() {}

func newState(t *testing.T) *state.State {
	gen := genesis.Genesis{
		ChainID:       1,
		TransPerBlock: 10,
		Difficulty:    1,
		MiningReward:  10,
		Balances: map[string]float64{
			"alice":  1000,
			"bob":    500,
			"miner1": 0,
		},
	}

	strg, err := memory.New()
	if err != nil {
		t.Fatalf("\t%s\tShould be able to construct storage: %v", failed, err)
	}

	st, err := state.New(state.Config{
		BeneficiaryID: "miner1",
		Genesis:       gen,
		Storage:       strg,
	})
	if err != nil {
		t.Fatalf("\t%s\tShould be able to construct the state: %v", failed, err)
	}
	st.Worker = nopWorker{}

	return st
}

func TestSubmitTransaction(t *testing.T) {
	t.Log("Given the need to validate submitting transactions.")
	{
		t.Logf("\tTest 0:\tWhen submitting within the available balance.")
		{
			st := newState(t)

			tx, err := database.NewTx("alice", "bob", 600, "first")
			if err != nil {
				t.Fatalf("\t%s\tShould be able to create a transaction: %v", failed, err)
			}

			if err := st.SubmitTransaction(tx); err != nil {
				t.Fatalf("\t%s\tShould accept the transaction: %v", failed, err)
			}
			t.Logf("\t%s\tShould accept the transaction.", success)

			if st.MempoolLength() != 1 {
				t.Errorf("\t%s\tShould see 1 transaction in the mempool, got %d.", failed, st.MempoolLength())
			} else {
				t.Logf("\t%s\tShould see 1 transaction in the mempool.", success)
			}
		}

		t.Logf("\tTest 1:\tWhen the pending spend exceeds the balance.")
		{
			st := newState(t)

			tx1, err := database.NewTx("alice", "bob", 600, "first")
			if err != nil {
				t.Fatalf("\t%s\tShould be able to create a transaction: %v", failed, err)
			}
			if err := st.SubmitTransaction(tx1); err != nil {
				t.Fatalf("\t%s\tShould accept the first transaction: %v", failed, err)
			}

			// Alice has 1000 with 600 already pending, so 500 must fail.
			tx2, err := database.NewTx("alice", "bob", 500, "second")
			if err != nil {
				t.Fatalf("\t%s\tShould be able to create a transaction: %v", failed, err)
			}
			if err := st.SubmitTransaction(tx2); err == nil {
				t.Errorf("\t%s\tShould reject a spend past the pending balance.", failed)
			} else {
				t.Logf("\t%s\tShould reject a spend past the pending balance.", success)
			}
		}
	}
}

func TestMineNewBlock(t *testing.T) {
	t.Log("Given the need to validate mining mempool transactions into a block.")
	{
		t.Logf("\tTest 0:\tWhen mining a submitted transaction.")
		{
			st := newState(t)

			tx, err := database.NewTx("alice", "bob", 250, "test transfer")
			if err != nil {
				t.Fatalf("\t%s\tShould be able to create a transaction: %v", failed, err)
			}
			if err := st.SubmitTransaction(tx); err != nil {
				t.Fatalf("\t%s\tShould accept the transaction: %v", failed, err)
			}

			block, err := st.MineNewBlock(context.Background())
			if err != nil {
				t.Fatalf("\t%s\tShould be able to mine a block: %v", failed, err)
			}
			t.Logf("\t%s\tShould be able to mine a block.", success)

			if block.Header.Number != 1 {
				t.Errorf("\t%s\tShould see block number 1, got %d.", failed, block.Header.Number)
			} else {
				t.Logf("\t%s\tShould see block number 1.", success)
			}

			if st.MempoolLength() != 0 {
				t.Errorf("\t%s\tShould see an empty mempool, got %d.", failed, st.MempoolLength())
			} else {
				t.Logf("\t%s\tShould see an empty mempool.", success)
			}

			if got := st.QueryBalance("alice"); got != 750 {
				t.Errorf("\t%s\tShould see 750 for alice, got %g.", failed, got)
			} else {
				t.Logf("\t%s\tShould see 750 for alice.", success)
			}

			if got := st.QueryBalance("miner1"); got != 10 {
				t.Errorf("\t%s\tShould see the mining reward for miner1, got %g.", failed, got)
			} else {
				t.Logf("\t%s\tShould see the mining reward for miner1.", success)
			}

			if st.LatestBlock().Header.Number != 1 {
				t.Errorf("\t%s\tShould see block 1 as latest.", failed)
			} else {
				t.Logf("\t%s\tShould see block 1 as latest.", success)
			}
		}

		t.Logf("\tTest 1:\tWhen mining with an empty mempool.")
		{
			st := newState(t)

			if _, err := st.MineNewBlock(context.Background()); err != state.ErrNoTransactions {
				t.Errorf("\t%s\tShould see ErrNoTransactions, got %v.", failed, err)
			} else {
				t.Logf("\t%s\tShould see ErrNoTransactions.", success)
			}
		}

		t.Logf("\tTest 2:\tWhen querying mined blocks by number.")
		{
			st := newState(t)

			tx, err := database.NewTx("alice", "bob", 100, "test transfer")
			if err != nil {
				t.Fatalf("\t%s\tShould be able to create a transaction: %v", failed, err)
			}
			if err := st.SubmitTransaction(tx); err != nil {
				t.Fatalf("\t%s\tShould accept the transaction: %v", failed, err)
			}
			if _, err := st.MineNewBlock(context.Background()); err != nil {
				t.Fatalf("\t%s\tShould be able to mine a block: %v", failed, err)
			}

			blocks := st.QueryBlocksByNumber(1, 1)
			if len(blocks) != 1 {
				t.Fatalf("\t%s\tShould retrieve 1 block, got %d.", failed, len(blocks))
			}
			t.Logf("\t%s\tShould retrieve 1 block.", success)

			if len(blocks[0].Trans) != 1 || blocks[0].Trans[0].ID != tx.ID {
				t.Errorf("\t%s\tShould see the submitted transaction in the block.", failed)
			} else {
				t.Logf("\t%s\tShould see the submitted transaction in the block.", success)
			}
		}
	}
}
