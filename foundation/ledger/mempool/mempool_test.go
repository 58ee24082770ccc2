package mempool_test

import (
	"testing"

	"github.com/launchlab/launchpad/foundation/ledger/database"
	"github.com/launchlab/launchpad/foundation/ledger/mempool"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

func newTx(t *testing.T, from string, to string, amount float64) database.Tx {
	tx, err := database.NewTx(database.AccountID(from), database.AccountID(to), amount, "")
	if err != nil {
		t.Fatalf("\t%s\tShould be able to create a transaction: %v", failed, err)
	}
	return tx
}

func TestMempool(t *testing.T) {
	t.Log("Given the need to validate mempool ordering and accounting.")
	{
		t.Logf("\tTest 0:\tWhen adding and picking transactions.")
		{
			mp := mempool.New()

			tx1 := newTx(t, "alice", "bob", 100)
			tx2 := newTx(t, "bob", "alice", 50)
			tx3 := newTx(t, "alice", "carol", 25)

			mp.Upsert(tx1)
			mp.Upsert(tx2)
			mp.Upsert(tx3)

			if mp.Count() != 3 {
				t.Fatalf("\t%s\tShould see 3 transactions, got %d.", failed, mp.Count())
			}
			t.Logf("\t%s\tShould see 3 transactions.", success)

			picked := mp.PickBest(2)
			if len(picked) != 2 || picked[0].ID != tx1.ID || picked[1].ID != tx2.ID {
				t.Errorf("\t%s\tShould pick the first two in arrival order.", failed)
			} else {
				t.Logf("\t%s\tShould pick the first two in arrival order.", success)
			}

			all := mp.PickBest(0)
			if len(all) != 3 {
				t.Errorf("\t%s\tShould pick everything for a non positive count.", failed)
			} else {
				t.Logf("\t%s\tShould pick everything for a non positive count.", success)
			}
		}

		t.Logf("\tTest 1:\tWhen tracking pending outgoing amounts.")
		{
			mp := mempool.New()

			mp.Upsert(newTx(t, "alice", "bob", 100))
			mp.Upsert(newTx(t, "alice", "carol", 25))
			mp.Upsert(newTx(t, "bob", "alice", 50))

			if got := mp.PendingOutgoing("alice"); got != 125 {
				t.Errorf("\t%s\tShould see 125 pending for alice, got %g.", failed, got)
			} else {
				t.Logf("\t%s\tShould see 125 pending for alice.", success)
			}

			if got := mp.PendingOutgoing("carol"); got != 0 {
				t.Errorf("\t%s\tShould see 0 pending for carol, got %g.", failed, got)
			} else {
				t.Logf("\t%s\tShould see 0 pending for carol.", success)
			}
		}

		t.Logf("\tTest 2:\tWhen deleting and replacing transactions.")
		{
			mp := mempool.New()

			tx1 := newTx(t, "alice", "bob", 100)
			mp.Upsert(tx1)

			// Upserting the same id replaces, not appends.
			tx1.Amount = 200
			mp.Upsert(tx1)
			if mp.Count() != 1 {
				t.Errorf("\t%s\tShould still see 1 transaction after replacing, got %d.", failed, mp.Count())
			} else {
				t.Logf("\t%s\tShould still see 1 transaction after replacing.", success)
			}
			if got := mp.PendingOutgoing("alice"); got != 200 {
				t.Errorf("\t%s\tShould see the replaced amount, got %g.", failed, got)
			} else {
				t.Logf("\t%s\tShould see the replaced amount.", success)
			}

			mp.Delete(tx1)
			if mp.Count() != 0 {
				t.Errorf("\t%s\tShould see an empty pool after deleting, got %d.", failed, mp.Count())
			} else {
				t.Logf("\t%s\tShould see an empty pool after deleting.", success)
			}
		}
	}
}
