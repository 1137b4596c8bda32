// Package settlement provides the settlement entity: coins, resource stock,
// storage, reputation, and the per-cycle trade ledger.
package settlement

// ID is a unique identifier for a settlement.
type ID = uint64

// Settlement is a game-world actor that holds coins and goods and may trade
// with other settlements. The world container owns all settlements; trade
// operations borrow mutable access to the two parties of a transaction.
type Settlement struct {
	ID     ID     `json:"id"`
	Name   string `json:"name"`
	Player bool   `json:"player"` // Human-controlled — only the player sees notifications.

	Coins      int            `json:"coins"`
	Stock      map[string]int `json:"stock"`
	StorageCap int            `json:"storage_cap"`

	// TradingPost gates all inter-settlement trade. A settlement without
	// one can still be traded with, but cannot initiate trades.
	TradingPost bool  `json:"trading_post"`
	ReligionID  uint8 `json:"religion_id"`

	// Reputation accumulators, raised as side effects of successful trades.
	Influence map[ID]int `json:"influence"` // Per counterpart settlement.
	Prestige  int        `json:"prestige"`
	Fame      int        `json:"fame"`

	// Trades is the current trade ledger, nil when the settlement does not
	// trade this cycle.
	Trades *Ledger `json:"trades,omitempty"`
}

// New creates a settlement with empty stock and reputation.
func New(id ID, name string, storageCap int) *Settlement {
	return &Settlement{
		ID:         id,
		Name:       name,
		StorageCap: storageCap,
		Stock:      make(map[string]int),
		Influence:  make(map[ID]int),
	}
}

// CanTrade reports whether the settlement has the building that enables
// inter-settlement trading.
func (s *Settlement) CanTrade() bool {
	return s.TradingPost
}

// IncCoins credits the settlement's coin balance.
func (s *Settlement) IncCoins(amount int) {
	s.Coins += amount
}

// DecCoins debits the coin balance. Returns false, without mutating, when the
// balance is insufficient.
func (s *Settlement) DecCoins(amount int) bool {
	if amount > s.Coins {
		return false
	}
	s.Coins -= amount
	return true
}

// CanAfford reports whether the balance covers the given amount.
func (s *Settlement) CanAfford(amount int) bool {
	return amount <= s.Coins
}

// HasResource reports whether the stock holds at least amount of resource.
func (s *Settlement) HasResource(resource string, amount int) bool {
	return s.Stock[resource] >= amount
}

// RemoveResource takes amount of resource out of stock. Returns false,
// without mutating, when the stock is insufficient.
func (s *Settlement) RemoveResource(resource string, amount int) bool {
	if s.Stock[resource] < amount {
		return false
	}
	s.Stock[resource] -= amount
	return true
}

// AddToStorage puts amount of resource into stock.
func (s *Settlement) AddToStorage(resource string, amount int) {
	if s.Stock == nil {
		s.Stock = make(map[string]int)
	}
	s.Stock[resource] += amount
}

// TotalStock returns the total number of units held across all resources.
func (s *Settlement) TotalStock() int {
	total := 0
	for _, n := range s.Stock {
		total += n
	}
	return total
}

// HasStorageSpaceFor reports whether amount more units fit in storage.
func (s *Settlement) HasStorageSpaceFor(amount int) bool {
	return s.TotalStock()+amount <= s.StorageCap
}

// RaiseInfluence raises influence toward the given counterpart settlement.
// Influence is capped at 100 per counterpart.
func (s *Settlement) RaiseInfluence(counterpart ID, amount int) {
	if s.Influence == nil {
		s.Influence = make(map[ID]int)
	}
	v := s.Influence[counterpart] + amount
	if v > 100 {
		v = 100
	}
	s.Influence[counterpart] = v
}

// RaisePrestige raises the settlement's prestige.
func (s *Settlement) RaisePrestige(amount int) {
	s.Prestige += amount
}

// RaiseFame raises the settlement's fame.
func (s *Settlement) RaiseFame(amount int) {
	s.Fame += amount
}
