// Package api provides the read-only HTTP API for observing the trade world.
// All endpoints are GET; the simulation is driven elsewhere.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/talgya/tradewinds/internal/engine"
	"github.com/talgya/tradewinds/internal/trade"
	"github.com/talgya/tradewinds/internal/world"
)

// ReceiptStore provides the persisted trade receipt log, newest first.
type ReceiptStore interface {
	RecentReceipts(limit int) ([]*trade.Receipt, error)
}

// Server serves the world state over HTTP.
type Server struct {
	World    *world.World
	Eng      *engine.Engine
	Receipts ReceiptStore // optional; nil falls back to the in-memory history
	Port     int
}

// Start begins serving the HTTP API in a goroutine.
func (s *Server) Start() {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/v1/status", s.handleStatus)
	mux.HandleFunc("/api/v1/settlements", s.handleSettlements)
	mux.HandleFunc("/api/v1/settlement/", s.handleSettlementDetail)
	mux.HandleFunc("/api/v1/blackmarket", s.handleBlackMarket)
	mux.HandleFunc("/api/v1/receipts", s.handleReceipts)

	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr)

	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Debug("write response failed", "error", err)
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"tick":               s.Eng.Tick,
		"cycle":              s.World.Cycle,
		"settlements":        len(s.World.Settlements),
		"black_market_goods": s.World.Market.Len(),
		"speed":              s.Eng.Speed,
	})
}

func (s *Server) handleSettlements(w http.ResponseWriter, r *http.Request) {
	type entry struct {
		ID       uint64 `json:"id"`
		Name     string `json:"name"`
		Player   bool   `json:"player"`
		Coins    int    `json:"coins"`
		Stock    int    `json:"stock"`
		Prestige int    `json:"prestige"`
		Fame     int    `json:"fame"`
		Trades   bool   `json:"trades"`
	}

	out := make([]entry, 0, len(s.World.Settlements))
	for _, st := range s.World.Settlements {
		out = append(out, entry{
			ID:       st.ID,
			Name:     st.Name,
			Player:   st.Player,
			Coins:    st.Coins,
			Stock:    st.TotalStock(),
			Prestige: st.Prestige,
			Fame:     st.Fame,
			Trades:   st.Trades != nil,
		})
	}
	writeJSON(w, out)
}

// handleSettlementDetail returns one settlement with its full stock, ledger,
// and reputation (GET /api/v1/settlement/:id).
func (s *Server) handleSettlementDetail(w http.ResponseWriter, r *http.Request) {
	raw := strings.TrimPrefix(r.URL.Path, "/api/v1/settlement/")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		http.Error(w, "bad settlement id", http.StatusBadRequest)
		return
	}

	st, ok := s.World.ByID(id)
	if !ok {
		http.Error(w, "settlement not found", http.StatusNotFound)
		return
	}
	writeJSON(w, st)
}

func (s *Server) handleBlackMarket(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.World.Market.Entries())
}

// handleReceipts returns the receipt log. The persisted store survives
// restarts; without one the in-memory session history is served instead.
func (s *Server) handleReceipts(w http.ResponseWriter, r *http.Request) {
	if s.Receipts == nil {
		writeJSON(w, s.World.Engine().History())
		return
	}

	limit := 100
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			http.Error(w, "bad limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	receipts, err := s.Receipts.RecentReceipts(limit)
	if err != nil {
		slog.Error("receipt log query failed", "error", err)
		http.Error(w, "receipt log unavailable", http.StatusInternalServerError)
		return
	}
	writeJSON(w, receipts)
}
