// Package blackmarket provides the ledger that absorbs goods listed on the
// black market for deferred settlement at the start of the next cycle.
package blackmarket

import "sort"

// Entry is the accumulated state for one resource on the black market.
type Entry struct {
	Resource string `json:"resource"`
	Amount   int    `json:"amount"`
	Price    int    `json:"price"` // Total coins owed to sellers.
}

// Ledger accumulates black-market listings between cycles. It is owned by the
// world container and passed to the trade engine by reference.
type Ledger struct {
	entries map[string]Entry
}

// NewLedger creates an empty black-market ledger.
func NewLedger() *Ledger {
	return &Ledger{entries: make(map[string]Entry)}
}

// Add accumulates a listing into the entry for a resource and returns the
// updated entry. Amount and price add onto whatever is already listed.
func (l *Ledger) Add(resource string, amount, price int) Entry {
	e := l.entries[resource]
	e.Resource = resource
	e.Amount += amount
	e.Price += price
	l.entries[resource] = e
	return e
}

// Entry returns the accumulated entry for a resource.
func (l *Ledger) Entry(resource string) (Entry, bool) {
	e, ok := l.entries[resource]
	return e, ok
}

// Entries returns all entries sorted by resource key.
func (l *Ledger) Entries() []Entry {
	out := make([]Entry, 0, len(l.entries))
	for _, e := range l.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Resource < out[j].Resource })
	return out
}

// Len returns the number of resources with pending listings.
func (l *Ledger) Len() int {
	return len(l.entries)
}

// Settle clears the ledger and returns the total payout owed for everything
// that was listed. Called by the world at the start of a new cycle.
func (l *Ledger) Settle() int {
	total := 0
	for _, e := range l.entries {
		total += e.Price
	}
	l.entries = make(map[string]Entry)
	return total
}
