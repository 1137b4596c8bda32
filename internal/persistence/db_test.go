package persistence

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/talgya/tradewinds/internal/entropy"
	"github.com/talgya/tradewinds/internal/resources"
	"github.com/talgya/tradewinds/internal/settlement"
	"github.com/talgya/tradewinds/internal/trade"
	"github.com/talgya/tradewinds/internal/world"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOpenCreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deep", "world.db")
	db, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	if _, err := os.Stat(filepath.Dir(path)); err != nil {
		t.Fatalf("parent directory missing: %v", err)
	}
}

func buildWorld(t *testing.T) *world.World {
	t.Helper()
	w := world.New(resources.Default(), entropy.NewSeeded(1))

	a := settlement.New(1, "Briarhold", 5000)
	a.Player = true
	a.TradingPost = true
	a.Coins = 1200
	a.ReligionID = 1
	a.AddToStorage("wood", 40)
	a.RaiseInfluence(2, 6)
	a.RaisePrestige(4)
	a.RaiseFame(100)
	a.SetLedger(&settlement.Ledger{
		Imports: map[string]int{"salt": 12},
		Exports: map[string]int{"wood": 30},
	})
	w.Add(a)

	b := settlement.New(2, "Saltmere", 4000)
	b.Coins = 800
	w.Add(b)

	w.Market.Add("iron", 5, 10)
	w.Market.Add("wood", 2, 4)
	return w
}

func TestSaveAndRestoreWorld(t *testing.T) {
	db := openTestDB(t)
	w := buildWorld(t)
	w.Cycle = 7

	if err := db.SaveWorld(w); err != nil {
		t.Fatalf("save: %v", err)
	}
	if !db.HasWorldState() {
		t.Fatalf("HasWorldState() = false after save")
	}

	restored := world.New(resources.Default(), entropy.NewSeeded(1))
	if err := db.RestoreWorld(restored); err != nil {
		t.Fatalf("restore: %v", err)
	}

	if restored.Cycle != 7 {
		t.Fatalf("cycle = %d, want 7", restored.Cycle)
	}
	if len(restored.Settlements) != 2 {
		t.Fatalf("settlements = %d, want 2", len(restored.Settlements))
	}

	a, ok := restored.ByID(1)
	if !ok {
		t.Fatalf("settlement 1 missing after restore")
	}
	if a.Name != "Briarhold" || !a.Player || !a.TradingPost || a.Coins != 1200 {
		t.Fatalf("settlement fields lost: %+v", a)
	}
	if a.Stock["wood"] != 40 || a.Influence[2] != 6 || a.Prestige != 4 || a.Fame != 100 {
		t.Fatalf("stock/reputation lost: %+v", a)
	}
	if a.Trades == nil || a.Trades.Exports["wood"] != 30 || a.Trades.Imports["salt"] != 12 {
		t.Fatalf("ledger lost: %+v", a.Trades)
	}

	b, _ := restored.ByID(2)
	if b.Trades != nil {
		t.Fatalf("non-trading settlement gained a ledger: %+v", b.Trades)
	}

	entry, ok := restored.Market.Entry("iron")
	if !ok || entry.Amount != 5 || entry.Price != 10 {
		t.Fatalf("black market lost: %+v", entry)
	}
}

func TestReceiptLog(t *testing.T) {
	db := openTestDB(t)

	receipts := []*trade.Receipt{
		{ID: "r1", Kind: trade.KindImport, Buyer: "Briarhold", Seller: "Saltmere",
			Goods: "wood", Amount: 10, UnitPrice: 6, TotalPrice: 60},
		{ID: "r2", Kind: trade.KindBlackMarket, Seller: "Briarhold",
			Goods: "iron", Amount: 5, TotalPrice: 10, Discount: 8},
	}
	if err := db.SaveReceipts(receipts); err != nil {
		t.Fatalf("save receipts: %v", err)
	}
	// Saving the same batch again must not duplicate.
	if err := db.SaveReceipts(receipts); err != nil {
		t.Fatalf("re-save receipts: %v", err)
	}

	got, err := db.RecentReceipts(10)
	if err != nil {
		t.Fatalf("load receipts: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("receipts = %d, want 2", len(got))
	}
	// Most recent first.
	if got[0].ID != "r2" || got[0].TotalPrice != 10 || got[0].Discount != 8 {
		t.Fatalf("receipt = %+v", got[0])
	}
	if got[1].Buyer != "Briarhold" || got[1].UnitPrice != 6 {
		t.Fatalf("receipt = %+v", got[1])
	}
}

func TestMeta(t *testing.T) {
	db := openTestDB(t)

	if err := db.SaveMeta("cycle", "12"); err != nil {
		t.Fatalf("save meta: %v", err)
	}
	if err := db.SaveMeta("cycle", "13"); err != nil {
		t.Fatalf("overwrite meta: %v", err)
	}
	v, err := db.GetMeta("cycle")
	if err != nil || v != "13" {
		t.Fatalf("GetMeta = %q (err %v), want 13", v, err)
	}
}
