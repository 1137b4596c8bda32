// Package persistence provides SQLite-based storage for the trade world:
// settlements with their ledgers, the black-market ledger, and the receipt
// log.
package persistence

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/tradewinds/internal/blackmarket"
	"github.com/talgya/tradewinds/internal/settlement"
	"github.com/talgya/tradewinds/internal/trade"
	"github.com/talgya/tradewinds/internal/world"
)

// DB wraps a SQLite connection for world state persistence.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path, creating parent
// directories as needed.
func Open(path string) (*DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS settlements (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		player INTEGER NOT NULL,
		coins INTEGER NOT NULL,
		storage_cap INTEGER NOT NULL,
		trading_post INTEGER NOT NULL,
		religion INTEGER NOT NULL,
		prestige INTEGER NOT NULL,
		fame INTEGER NOT NULL,
		stock_json TEXT NOT NULL,
		influence_json TEXT NOT NULL,
		ledger_json TEXT
	);

	CREATE TABLE IF NOT EXISTS black_market (
		resource TEXT PRIMARY KEY,
		amount INTEGER NOT NULL,
		price INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS receipts (
		id TEXT PRIMARY KEY,
		kind TEXT NOT NULL,
		buyer TEXT,
		seller TEXT,
		goods TEXT NOT NULL,
		amount INTEGER NOT NULL,
		unit_price INTEGER NOT NULL,
		total_price INTEGER NOT NULL,
		discount INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS world_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_receipts_kind ON receipts(kind);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveSettlements writes all settlements to the database (full replace).
func (db *DB) SaveSettlements(settlements []*settlement.Settlement) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM settlements"); err != nil {
		return err
	}

	stmt, err := tx.Preparex(`INSERT INTO settlements
		(id, name, player, coins, storage_cap, trading_post, religion,
		 prestige, fame, stock_json, influence_json, ledger_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, s := range settlements {
		stockJSON, _ := json.Marshal(s.Stock)
		influenceJSON, _ := json.Marshal(s.Influence)

		var ledgerJSON *string
		if s.Trades != nil {
			raw, _ := json.Marshal(s.Trades)
			v := string(raw)
			ledgerJSON = &v
		}

		_, err := stmt.Exec(
			s.ID, s.Name, boolInt(s.Player), s.Coins, s.StorageCap,
			boolInt(s.TradingPost), s.ReligionID, s.Prestige, s.Fame,
			string(stockJSON), string(influenceJSON), ledgerJSON,
		)
		if err != nil {
			return fmt.Errorf("insert settlement %d: %w", s.ID, err)
		}
	}

	return tx.Commit()
}

// LoadSettlements reads all settlements back from the database.
func (db *DB) LoadSettlements() ([]*settlement.Settlement, error) {
	type row struct {
		ID            uint64  `db:"id"`
		Name          string  `db:"name"`
		Player        int     `db:"player"`
		Coins         int     `db:"coins"`
		StorageCap    int     `db:"storage_cap"`
		TradingPost   int     `db:"trading_post"`
		Religion      uint8   `db:"religion"`
		Prestige      int     `db:"prestige"`
		Fame          int     `db:"fame"`
		StockJSON     string  `db:"stock_json"`
		InfluenceJSON string  `db:"influence_json"`
		LedgerJSON    *string `db:"ledger_json"`
	}

	var rows []row
	if err := db.conn.Select(&rows, "SELECT * FROM settlements ORDER BY id"); err != nil {
		return nil, err
	}

	out := make([]*settlement.Settlement, 0, len(rows))
	for _, r := range rows {
		s := settlement.New(r.ID, r.Name, r.StorageCap)
		s.Player = r.Player != 0
		s.Coins = r.Coins
		s.TradingPost = r.TradingPost != 0
		s.ReligionID = r.Religion
		s.Prestige = r.Prestige
		s.Fame = r.Fame

		if err := json.Unmarshal([]byte(r.StockJSON), &s.Stock); err != nil {
			return nil, fmt.Errorf("settlement %d stock: %w", r.ID, err)
		}
		if err := json.Unmarshal([]byte(r.InfluenceJSON), &s.Influence); err != nil {
			return nil, fmt.Errorf("settlement %d influence: %w", r.ID, err)
		}
		if r.LedgerJSON != nil {
			var l settlement.Ledger
			if err := json.Unmarshal([]byte(*r.LedgerJSON), &l); err != nil {
				return nil, fmt.Errorf("settlement %d ledger: %w", r.ID, err)
			}
			s.Trades = &l
		}
		out = append(out, s)
	}
	return out, nil
}

// SaveBlackMarket writes the black-market ledger (full replace).
func (db *DB) SaveBlackMarket(ledger *blackmarket.Ledger) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM black_market"); err != nil {
		return err
	}

	for _, e := range ledger.Entries() {
		_, err := tx.Exec(
			"INSERT INTO black_market (resource, amount, price) VALUES (?, ?, ?)",
			e.Resource, e.Amount, e.Price,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// LoadBlackMarket reads the black-market ledger back from the database.
func (db *DB) LoadBlackMarket() (*blackmarket.Ledger, error) {
	type row struct {
		Resource string `db:"resource"`
		Amount   int    `db:"amount"`
		Price    int    `db:"price"`
	}

	var rows []row
	if err := db.conn.Select(&rows, "SELECT * FROM black_market"); err != nil {
		return nil, err
	}

	ledger := blackmarket.NewLedger()
	for _, r := range rows {
		ledger.Add(r.Resource, r.Amount, r.Price)
	}
	return ledger, nil
}

// SaveReceipts appends transaction receipts to the log. Already-saved
// receipts are skipped.
func (db *DB) SaveReceipts(receipts []*trade.Receipt) error {
	if len(receipts) == 0 {
		return nil
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, r := range receipts {
		_, err := tx.Exec(`INSERT OR IGNORE INTO receipts
			(id, kind, buyer, seller, goods, amount, unit_price, total_price, discount)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			r.ID, r.Kind, r.Buyer, r.Seller, r.Goods, r.Amount,
			r.UnitPrice, r.TotalPrice, r.Discount,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// RecentReceipts returns the most recent N receipts.
func (db *DB) RecentReceipts(limit int) ([]*trade.Receipt, error) {
	var out []*trade.Receipt
	err := db.conn.Select(&out, `SELECT
		id, kind, buyer, seller, goods, amount,
		unit_price AS unitprice, total_price AS totalprice, discount
		FROM receipts ORDER BY rowid DESC LIMIT ?`, limit)
	return out, err
}

// SaveMeta stores a key-value pair in world metadata.
func (db *DB) SaveMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO world_meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM world_meta WHERE key = ?", key)
	return value, err
}

// HasWorldState reports whether a saved world exists.
func (db *DB) HasWorldState() bool {
	var count int
	if err := db.conn.Get(&count, "SELECT COUNT(*) FROM settlements"); err != nil {
		return false
	}
	return count > 0
}

// SaveWorld performs a full save of the world state.
func (db *DB) SaveWorld(w *world.World) error {
	slog.Info("saving world state", "settlements", len(w.Settlements), "cycle", w.Cycle)

	if err := db.SaveSettlements(w.Settlements); err != nil {
		return fmt.Errorf("save settlements: %w", err)
	}
	if err := db.SaveBlackMarket(w.Market); err != nil {
		return fmt.Errorf("save black market: %w", err)
	}
	if err := db.SaveReceipts(w.Engine().History()); err != nil {
		return fmt.Errorf("save receipts: %w", err)
	}
	if err := db.SaveMeta("cycle", strconv.FormatUint(w.Cycle, 10)); err != nil {
		return fmt.Errorf("save meta: %w", err)
	}

	return nil
}

// RestoreWorld loads settlements, black market, and cycle into a world.
func (db *DB) RestoreWorld(w *world.World) error {
	settlements, err := db.LoadSettlements()
	if err != nil {
		return fmt.Errorf("load settlements: %w", err)
	}
	for _, s := range settlements {
		w.Add(s)
	}

	market, err := db.LoadBlackMarket()
	if err != nil {
		return fmt.Errorf("load black market: %w", err)
	}
	for _, e := range market.Entries() {
		w.Market.Add(e.Resource, e.Amount, e.Price)
	}

	if raw, err := db.GetMeta("cycle"); err == nil {
		if c, err := strconv.ParseUint(raw, 10, 64); err == nil {
			w.Cycle = c
		}
	}

	slog.Info("world state restored", "settlements", len(settlements), "cycle", w.Cycle)
	return nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
