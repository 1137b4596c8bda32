// Package world owns the game state the trade core operates on: the
// settlements, the black-market ledger, and the cycle clock. It implements
// the resolver and propensity interfaces the trade engine consumes.
package world

import (
	"fmt"
	"log/slog"

	"github.com/talgya/tradewinds/internal/blackmarket"
	"github.com/talgya/tradewinds/internal/entropy"
	"github.com/talgya/tradewinds/internal/resources"
	"github.com/talgya/tradewinds/internal/settlement"
	"github.com/talgya/tradewinds/internal/trade"
)

// World is the game-state container. All access is single-threaded from the
// simulation loop.
type World struct {
	Settlements []*settlement.Settlement
	Market      *blackmarket.Ledger
	Cycle       uint64

	index      map[settlement.ID]*settlement.Settlement
	propensity map[settlement.ID]trade.Propensity
	engine     *trade.Engine
}

// New creates an empty world wired to a trade engine.
func New(catalog *resources.Catalog, rnd entropy.Source) *World {
	w := &World{
		Market:     blackmarket.NewLedger(),
		index:      make(map[settlement.ID]*settlement.Settlement),
		propensity: make(map[settlement.ID]trade.Propensity),
	}
	w.engine = &trade.Engine{
		Catalog:    catalog,
		Resolver:   w,
		Propensity: w,
		Market:     w.Market,
		Rand:       rnd,
		Notifier:   slogNotifier{},
	}
	return w
}

// Engine returns the world's trade engine.
func (w *World) Engine() *trade.Engine {
	return w.engine
}

// Add places a settlement into the world. A settlement arriving without a
// ledger gets its first one when a propensity profile is registered for it;
// restored settlements keep the ledger they were saved with.
func (w *World) Add(s *settlement.Settlement) {
	w.Settlements = append(w.Settlements, s)
	w.index[s.ID] = s
	if s.Trades == nil {
		if _, ok := w.propensity[s.ID]; ok {
			w.engine.ResetTrades(s, w.Cycle)
		}
	}
}

// Remove destroys a settlement and its ledger.
func (w *World) Remove(id settlement.ID) {
	delete(w.index, id)
	delete(w.propensity, id)
	for i, s := range w.Settlements {
		if s.ID == id {
			w.Settlements = append(w.Settlements[:i], w.Settlements[i+1:]...)
			return
		}
	}
}

// Settlement resolves a trade reference to a live settlement.
func (w *World) Settlement(ref trade.Ref) (*settlement.Settlement, bool) {
	if id, ok := ref.ID(); ok {
		s, found := w.index[id]
		return s, found
	}
	if i, ok := ref.Index(); ok {
		if i < 0 || i >= len(w.Settlements) {
			return nil, false
		}
		return w.Settlements[i], true
	}
	return ref.Resolve(nil)
}

// ByID looks a settlement up directly.
func (w *World) ByID(id settlement.ID) (*settlement.Settlement, bool) {
	s, ok := w.index[id]
	return s, ok
}

// Player returns the player-controlled settlement, nil when there is none.
func (w *World) Player() *settlement.Settlement {
	for _, s := range w.Settlements {
		if s.Player {
			return s
		}
	}
	return nil
}

// Propensity returns the reference trade profile for a settlement.
func (w *World) Propensity(id settlement.ID) (trade.Propensity, bool) {
	p, ok := w.propensity[id]
	return p, ok
}

// SetPropensity registers the reference trade profile for a settlement.
func (w *World) SetPropensity(id settlement.ID, p trade.Propensity) {
	w.propensity[id] = p
}

// AdvanceCycle starts a new trade cycle: the black market pays out and
// clears, then every settlement's ledger is regenerated.
func (w *World) AdvanceCycle() {
	w.Cycle++

	if payout := w.Market.Settle(); payout > 0 {
		if p := w.Player(); p != nil {
			p.IncCoins(payout)
			w.engine.Notifier.Notify(
				fmt.Sprintf("The Black Market paid %s %d coins for last cycle's goods.", p.Name, payout),
				"Black Market")
		}
	}

	reset := 0
	for _, s := range w.Settlements {
		if w.engine.ResetTrades(s, w.Cycle) {
			reset++
		}
	}
	slog.Info("trade cycle advanced", "cycle", w.Cycle, "settlements", len(w.Settlements), "ledgers_reset", reset)
}

// slogNotifier is the default notification sink: player messages go to the
// structured log until a UI replaces it.
type slogNotifier struct{}

func (slogNotifier) Notify(message, category string) {
	slog.Info(message, "category", category)
}

func (slogNotifier) Error(message string) {
	slog.Warn(message)
}
