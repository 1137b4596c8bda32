package settlement

// Ledger holds the amounts a settlement currently offers for sale (exports)
// and wishes to buy (imports). Amounts are consumed by trades and regenerated
// wholesale each cycle.
type Ledger struct {
	Imports map[string]int `json:"imports"`
	Exports map[string]int `json:"exports"`
}

// EmptyLedger returns a ledger with no imports and no exports.
func EmptyLedger() *Ledger {
	return &Ledger{
		Imports: make(map[string]int),
		Exports: make(map[string]int),
	}
}

// Ledger returns the settlement's current trade ledger, nil when the
// settlement does not trade.
func (s *Settlement) Ledger() *Ledger {
	return s.Trades
}

// SetLedger replaces the settlement's trade ledger.
func (s *Settlement) SetLedger(l *Ledger) {
	s.Trades = l
}

// RemoveFromExports consumes amount of the listed export for a resource.
func (s *Settlement) RemoveFromExports(resource string, amount int) {
	if s.Trades == nil || s.Trades.Exports == nil {
		return
	}
	s.Trades.Exports[resource] -= amount
}

// RemoveFromImports consumes amount of the listed import for a resource.
func (s *Settlement) RemoveFromImports(resource string, amount int) {
	if s.Trades == nil || s.Trades.Imports == nil {
		return
	}
	s.Trades.Imports[resource] -= amount
}
