// Command tradesim runs the inter-settlement trade simulation.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/talgya/tradewinds/internal/api"
	"github.com/talgya/tradewinds/internal/engine"
	"github.com/talgya/tradewinds/internal/entropy"
	"github.com/talgya/tradewinds/internal/persistence"
	"github.com/talgya/tradewinds/internal/resources"
	"github.com/talgya/tradewinds/internal/settlement"
	"github.com/talgya/tradewinds/internal/trade"
	"github.com/talgya/tradewinds/internal/world"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	var (
		seed        = flag.Int64("seed", 42, "world seed")
		dbPath      = flag.String("db", "data/tradewinds.db", "sqlite database path")
		apiPort     = flag.Int("port", 8080, "HTTP API port")
		catalogPath = flag.String("catalog", "", "resource catalog YAML (empty = built-in)")
		profilePath = flag.String("profiles", "", "trade propensity YAML (empty = built-in demo)")
		speed       = flag.Float64("speed", 1.0, "tick speed multiplier")
	)
	flag.Parse()

	// ── Catalog ───────────────────────────────────────────────────────
	catalog := resources.Default()
	if *catalogPath != "" {
		loaded, err := resources.Load(*catalogPath)
		if err != nil {
			slog.Error("failed to load catalog", "path", *catalogPath, "error", err)
			os.Exit(1)
		}
		catalog = loaded
	}
	slog.Info("resource catalog ready", "resources", catalog.Len())

	// ── Database ──────────────────────────────────────────────────────
	db, err := persistence.Open(*dbPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("database opened", "path", *dbPath)

	// ── World ─────────────────────────────────────────────────────────
	rnd := entropy.NewSeeded(*seed)
	w := world.New(catalog, rnd)

	if *profilePath != "" {
		profiles, err := world.LoadPropensities(*profilePath)
		if err != nil {
			slog.Error("failed to load trade profiles", "path", *profilePath, "error", err)
			os.Exit(1)
		}
		w.ApplyPropensities(profiles)
	} else {
		w.ApplyPropensities(demoProfiles())
	}

	if db.HasWorldState() {
		slog.Info("found saved world state, loading...")
		if err := db.RestoreWorld(w); err != nil {
			slog.Error("failed to restore world", "error", err)
			os.Exit(1)
		}
	} else {
		slog.Info("no saved state found, seeding new world...")
		for _, s := range demoSettlements() {
			w.Add(s)
		}
		if err := db.SaveWorld(w); err != nil {
			slog.Error("initial save failed", "error", err)
		}
	}
	slog.Info("world ready", "settlements", len(w.Settlements), "cycle", w.Cycle)

	// ── Engine ────────────────────────────────────────────────────────
	eng := engine.NewEngine()
	eng.Speed = *speed
	eng.OnTick = func(tick uint64) {
		aiTrades(w, rnd)
	}
	eng.OnCycle = func(tick uint64) {
		w.AdvanceCycle()
		if err := db.SaveWorld(w); err != nil {
			slog.Error("cycle save failed", "error", err)
		}
	}

	// ── HTTP API ──────────────────────────────────────────────────────
	apiServer := &api.Server{World: w, Eng: eng, Receipts: db, Port: *apiPort}
	apiServer.Start()

	// ── Start ─────────────────────────────────────────────────────────
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("received signal, shutting down", "signal", sig)
		eng.Stop()
	}()

	fmt.Printf("\nTradewinds: %d settlements trading, cycle %d.\n", len(w.Settlements), w.Cycle)
	fmt.Printf("API: http://localhost:%d/api/v1/status\n", *apiPort)
	fmt.Println("Starting simulation... (Ctrl+C to stop)")

	eng.Run()

	slog.Info("final save...")
	if err := db.SaveWorld(w); err != nil {
		slog.Error("final save failed", "error", err)
	}

	fmt.Println("Simulation stopped. World state saved.")
}

// aiTrades runs one round of AI-driven trades: each trading settlement looks
// at a random counterpart and buys one of its exports if it can pay.
func aiTrades(w *world.World, rnd *entropy.Seeded) {
	n := len(w.Settlements)
	if n < 2 {
		return
	}

	eng := w.Engine()
	for _, actor := range w.Settlements {
		if !actor.CanTrade() {
			continue
		}
		other := w.Settlements[rnd.IntBetween(0, n-1)]
		if other.ID == actor.ID || other.Trades == nil {
			continue
		}

		for res, listed := range other.Trades.Exports {
			if listed <= 0 {
				continue
			}
			amount := rnd.IntBetween(1, listed)
			_, err := eng.BuyFromSettlement(actor, trade.ByID(other.ID), res, amount)
			if err != nil && !errors.Is(err, trade.ErrInsufficientFunds) &&
				!errors.Is(err, trade.ErrInsufficientStorage) {
				slog.Debug("ai trade failed", "actor", actor.Name, "resource", res, "error", err)
			}
			break
		}
	}
}

// demoSettlements seeds a small starting world.
func demoSettlements() []*settlement.Settlement {
	mkSettlement := func(id uint64, name string, coins int, religion uint8, player bool) *settlement.Settlement {
		s := settlement.New(id, name, 5000)
		s.Coins = coins
		s.ReligionID = religion
		s.TradingPost = true
		s.Player = player
		return s
	}

	return []*settlement.Settlement{
		mkSettlement(1, "Briarhold", 2500, 1, true),
		mkSettlement(2, "Saltmere", 1800, 1, false),
		mkSettlement(3, "Duskwell", 1200, 2, false),
		mkSettlement(4, "Redford", 900, 2, false),
	}
}

// demoProfiles gives each demo settlement a trade personality.
func demoProfiles() map[settlement.ID]trade.Propensity {
	return map[settlement.ID]trade.Propensity{
		1: {
			Imports: map[string]int{"salt": 2, "cloth": 1},
			Exports: map[string]int{"wood": 3, "grain": 2},
		},
		2: {
			Imports: map[string]int{"wood": 2, "grain": 3},
			Exports: map[string]int{"salt": 3, "fish": 4},
		},
		3: {
			Imports: map[string]int{"fish": 2, "tools": 1},
			Exports: map[string]int{"iron": 2, "coal": 3},
		},
		4: {
			Imports: map[string]int{"iron": 2, "coal": 2},
			Exports: map[string]int{"tools": 2, "cloth": 2},
		},
	}
}
