package database_test

import (
	"context"
	"testing"

	"github.com/launchlab/launchpad/foundation/ledger/database"
	"github.com/launchlab/launchpad/foundation/ledger/genesis"
	"github.com/launchlab/launchpad/foundation/ledger/storage/memory"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

func newGenesis() genesis.Genesis {
	return genesis.Genesis{
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
}

func newDatabase(t *testing.T) *database.Database {
	strg, err := memory.New()
	if err != nil {
		t.Fatalf("\t%s\tShould be able to construct storage: %v", failed, err)
	}

	db, err := database.New(newGenesis(), strg, func(v string, args ...any) {})
	if err != nil {
		t.Fatalf("\t%s\tShould be able to construct the database: %v", failed, err)
	}

	return db
}

func TestTransactions(t *testing.T) {
	t.Log("Given the need to validate applying transactions to accounts.")
	{
		t.Logf("\tTest 0:\tWhen handling a valid transfer.")
		{
			db := newDatabase(t)

			tx, err := database.NewTx("alice", "bob", 250, "test transfer")
			if err != nil {
				t.Fatalf("\t%s\tShould be able to create a transaction: %v", failed, err)
			}
			t.Logf("\t%s\tShould be able to create a transaction.", success)

			if err := db.ApplyTransaction(tx); err != nil {
				t.Fatalf("\t%s\tShould be able to apply the transaction: %v", failed, err)
			}
			t.Logf("\t%s\tShould be able to apply the transaction.", success)

			if got := db.Balance("alice"); got != 750 {
				t.Errorf("\t%s\tShould see 750 for alice, got %g.", failed, got)
			} else {
				t.Logf("\t%s\tShould see 750 for alice.", success)
			}

			if got := db.Balance("bob"); got != 750 {
				t.Errorf("\t%s\tShould see 750 for bob, got %g.", failed, got)
			} else {
				t.Logf("\t%s\tShould see 750 for bob.", success)
			}
		}

		t.Logf("\tTest 1:\tWhen handling an overdraft.")
		{
			db := newDatabase(t)

			tx, err := database.NewTx("bob", "alice", 501, "too much")
			if err != nil {
				t.Fatalf("\t%s\tShould be able to create a transaction: %v", failed, err)
			}

			if err := db.ApplyTransaction(tx); err == nil {
				t.Errorf("\t%s\tShould reject an overdraft.", failed)
			} else {
				t.Logf("\t%s\tShould reject an overdraft.", success)
			}

			if got := db.Balance("bob"); got != 500 {
				t.Errorf("\t%s\tShould leave bob untouched, got %g.", failed, got)
			} else {
				t.Logf("\t%s\tShould leave bob untouched.", success)
			}
		}

		t.Logf("\tTest 2:\tWhen creating invalid transactions.")
		{
			if _, err := database.NewTx("alice", "alice", 10, "self"); err == nil {
				t.Errorf("\t%s\tShould reject sending to yourself.", failed)
			} else {
				t.Logf("\t%s\tShould reject sending to yourself.", success)
			}

			if _, err := database.NewTx("alice", "bob", 0, "zero"); err == nil {
				t.Errorf("\t%s\tShould reject a zero amount.", failed)
			} else {
				t.Logf("\t%s\tShould reject a zero amount.", success)
			}

			if _, err := database.NewTx("", "bob", 10, "empty"); err == nil {
				t.Errorf("\t%s\tShould reject an empty from account.", failed)
			} else {
				t.Logf("\t%s\tShould reject an empty from account.", success)
			}
		}

		t.Logf("\tTest 3:\tWhen crediting a previously unknown account.")
		{
			db := newDatabase(t)

			tx, err := database.NewTx("alice", "token_pool_TEST", 100, "buy TEST")
			if err != nil {
				t.Fatalf("\t%s\tShould be able to create a transaction: %v", failed, err)
			}

			if err := db.ApplyTransaction(tx); err != nil {
				t.Fatalf("\t%s\tShould be able to apply the transaction: %v", failed, err)
			}
			t.Logf("\t%s\tShould be able to apply the transaction.", success)

			if got := db.Balance("token_pool_TEST"); got != 100 {
				t.Errorf("\t%s\tShould see 100 in the pool account, got %g.", failed, got)
			} else {
				t.Logf("\t%s\tShould see 100 in the pool account.", success)
			}
		}
	}
}

func TestMining(t *testing.T) {
	t.Log("Given the need to validate mining blocks.")
	{
		t.Logf("\tTest 0:\tWhen mining a block with a low difficulty.")
		{
			db := newDatabase(t)
			ev := func(v string, args ...any) {}

			tx, err := database.NewTx("alice", "bob", 100, "test transfer")
			if err != nil {
				t.Fatalf("\t%s\tShould be able to create a transaction: %v", failed, err)
			}

			block, err := database.POW(context.Background(), "miner1", 1, 10, db.LatestBlock(), []database.Tx{tx}, ev)
			if err != nil {
				t.Fatalf("\t%s\tShould be able to mine a block: %v", failed, err)
			}
			t.Logf("\t%s\tShould be able to mine a block.", success)

			if block.Header.Number != 1 {
				t.Errorf("\t%s\tShould see block number 1, got %d.", failed, block.Header.Number)
			} else {
				t.Logf("\t%s\tShould see block number 1.", success)
			}

			if block.Hash()[:1] != "0" {
				t.Errorf("\t%s\tShould see a solved hash, got %s.", failed, block.Hash())
			} else {
				t.Logf("\t%s\tShould see a solved hash.", success)
			}

			if err := block.ValidateBlock(db.LatestBlock(), ev); err != nil {
				t.Errorf("\t%s\tShould validate against the chain: %v", failed, err)
			} else {
				t.Logf("\t%s\tShould validate against the chain.", success)
			}

			if err := db.Write(block); err != nil {
				t.Fatalf("\t%s\tShould be able to write the block: %v", failed, err)
			}
			db.UpdateLatestBlock(block)

			db.ApplyMiningReward(block)
			if got := db.Balance("miner1"); got != 10 {
				t.Errorf("\t%s\tShould see the mining reward, got %g.", failed, got)
			} else {
				t.Logf("\t%s\tShould see the mining reward.", success)
			}
		}

		t.Logf("\tTest 1:\tWhen tampering with a mined block.")
		{
			db := newDatabase(t)
			ev := func(v string, args ...any) {}

			tx, err := database.NewTx("alice", "bob", 100, "test transfer")
			if err != nil {
				t.Fatalf("\t%s\tShould be able to create a transaction: %v", failed, err)
			}

			block, err := database.POW(context.Background(), "miner1", 1, 10, db.LatestBlock(), []database.Tx{tx}, ev)
			if err != nil {
				t.Fatalf("\t%s\tShould be able to mine a block: %v", failed, err)
			}

			block.Trans[0].Amount = 1_000_000
			if err := block.ValidateBlock(db.LatestBlock(), ev); err == nil {
				t.Errorf("\t%s\tShould reject tampered transactions.", failed)
			} else {
				t.Logf("\t%s\tShould reject tampered transactions.", success)
			}
		}
	}
}

func TestReplay(t *testing.T) {
	t.Log("Given the need to rebuild balances from stored blocks.")
	{
		t.Logf("\tTest 0:\tWhen reopening a database against existing storage.")
		{
			strg, err := memory.New()
			if err != nil {
				t.Fatalf("\t%s\tShould be able to construct storage: %v", failed, err)
			}

			ev := func(v string, args ...any) {}

			db, err := database.New(newGenesis(), strg, ev)
			if err != nil {
				t.Fatalf("\t%s\tShould be able to construct the database: %v", failed, err)
			}

			tx, err := database.NewTx("alice", "bob", 100, "test transfer")
			if err != nil {
				t.Fatalf("\t%s\tShould be able to create a transaction: %v", failed, err)
			}

			block, err := database.POW(context.Background(), "miner1", 1, 10, db.LatestBlock(), []database.Tx{tx}, ev)
			if err != nil {
				t.Fatalf("\t%s\tShould be able to mine a block: %v", failed, err)
			}

			if err := db.Write(block); err != nil {
				t.Fatalf("\t%s\tShould be able to write the block: %v", failed, err)
			}

			reopened, err := database.New(newGenesis(), strg, ev)
			if err != nil {
				t.Fatalf("\t%s\tShould be able to replay the database: %v", failed, err)
			}
			t.Logf("\t%s\tShould be able to replay the database.", success)

			if got := reopened.Balance("alice"); got != 900 {
				t.Errorf("\t%s\tShould see 900 for alice after replay, got %g.", failed, got)
			} else {
				t.Logf("\t%s\tShould see 900 for alice after replay.", success)
			}

			if got := reopened.Balance("miner1"); got != 10 {
				t.Errorf("\t%s\tShould see the reward for miner1 after replay, got %g.", failed, got)
			} else {
				t.Logf("\t%s\tShould see the reward for miner1 after replay.", success)
			}

			if reopened.LatestBlock().Header.Number != 1 {
				t.Errorf("\t%s\tShould see block 1 as latest after replay.", failed)
			} else {
				t.Logf("\t%s\tShould see block 1 as latest after replay.", success)
			}
		}
	}
}
