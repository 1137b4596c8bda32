package trade

import (
	"fmt"
	"sort"

	"github.com/talgya/tradewinds/internal/entropy"
	"github.com/talgya/tradewinds/internal/pricing"
	"github.com/talgya/tradewinds/internal/settlement"
)

// ListBlackMarket removes amount units of resource from the actor's stock and
// lists them on the black market at the deep black-market markdown. The
// payout accumulates in the ledger and is settled at the start of the next
// cycle; no counterpart settlement is involved.
func (e *Engine) ListBlackMarket(actor *settlement.Settlement, resource string, amount int) (*Receipt, error) {
	if !e.Catalog.Exists(resource) {
		return nil, e.fail(actor, ErrUnknownResource, "The resource you specified does not exist.")
	}
	if amount <= 0 {
		return nil, e.fail(actor, ErrInsufficientStock,
			fmt.Sprintf("%s cannot list a non-positive amount.", actor.Name))
	}
	if !actor.HasResource(resource, amount) {
		return nil, e.fail(actor, ErrInsufficientStock,
			fmt.Sprintf("%s does not have enough resources of this type.", actor.Name))
	}

	base, err := e.Catalog.BasePrice(resource)
	if err != nil {
		return nil, err
	}
	discount := pricing.UnitDiscount(base, pricing.BlackMarketRate)
	price := pricing.WithMarkdown(amount, base, discount)

	actor.RemoveResource(resource, amount)
	e.Market.Add(resource, amount, price)

	e.refresh()
	e.notify(actor, fmt.Sprintf("%s placed %d %s on the Black Market and will receive %s coins next cycle.",
		actor.Name, amount, resource, coins(price)), "Black Market")

	r := newReceipt(KindBlackMarket)
	r.Seller = actor.Name
	r.Goods = resource
	r.Amount = amount
	r.TotalPrice = price
	r.Discount = discount
	return e.record(r), nil
}

// ResetTrades regenerates a settlement's trade ledger for a new cycle from
// its reference propensity profile. Exports restock the settlement up to the
// drawn amount; imports record demand without touching stock. Returns false
// when the settlement has no propensity data, in which case the ledger is set
// empty.
func (e *Engine) ResetTrades(s *settlement.Settlement, cycle uint64) bool {
	prop, ok := e.Propensity.Propensity(s.ID)
	if !ok {
		s.SetLedger(settlement.EmptyLedger())
		return false
	}

	if s.Stock == nil {
		s.Stock = make(map[string]int)
	}
	ledger := settlement.EmptyLedger()
	for _, res := range sortedKeys(prop.Exports) {
		n := e.draw(prop.Exports[res], cycle, res)
		if s.Stock[res] < n {
			s.Stock[res] = n
		}
		ledger.Exports[res] = n
	}
	for _, res := range sortedKeys(prop.Imports) {
		ledger.Imports[res] = e.draw(prop.Imports[res], cycle, res)
	}

	s.SetLedger(ledger)
	return true
}

// draw produces one regenerated ledger amount: an importance-weighted draw
// scaled by the cycle's abundance drift for that resource.
func (e *Engine) draw(importance int, cycle uint64, resource string) int {
	n := entropy.ByImportance(e.Rand, importance)
	n = int(float64(n) * e.Rand.Abundance(cycle, resource))
	if n < 1 {
		n = 1
	}
	return n
}

// sortedKeys keeps draw order stable so a seeded Source regenerates the same
// ledger every time.
func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
