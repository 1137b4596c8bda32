// Package trade implements inter-settlement trade and black-market listings:
// ordered precondition checks, price computation, coin and stock transfer,
// ledger bookkeeping, and reputation side effects.
package trade

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/talgya/tradewinds/internal/blackmarket"
	"github.com/talgya/tradewinds/internal/entropy"
	"github.com/talgya/tradewinds/internal/pricing"
	"github.com/talgya/tradewinds/internal/resources"
	"github.com/talgya/tradewinds/internal/settlement"
)

// Reputation gained per successful trade. Influence and prestige are doubled
// when both parties share a religion; fame is flat.
const (
	ImportInfluence = 2
	ImportPrestige  = 2
	ExportInfluence = 1
	ExportPrestige  = 1
	TradeFame       = 50
)

// Notifier receives player-facing messages. Only trades acted by the player
// settlement produce notifications; AI trades are silent.
type Notifier interface {
	Notify(message, category string)
	Error(message string)
}

// PropensitySource supplies the reference trade profile used to regenerate a
// settlement's ledger each cycle. The world container implements it.
type PropensitySource interface {
	Propensity(id settlement.ID) (Propensity, bool)
}

// Propensity holds importance weights per resource and direction. A higher
// weight yields larger regenerated amounts.
type Propensity struct {
	Imports map[string]int `yaml:"imports" json:"imports"`
	Exports map[string]int `yaml:"exports" json:"exports"`
}

// Engine orchestrates trade transactions. All calls run on the single
// simulation goroutine; the engine holds no locks.
type Engine struct {
	Catalog    *resources.Catalog
	Resolver   Resolver
	Propensity PropensitySource
	Market     *blackmarket.Ledger
	Rand       entropy.Source

	// Notifier and Refresh are optional collaborator hooks. Refresh fires
	// once per successful transaction.
	Notifier Notifier
	Refresh  func()

	history []*Receipt
}

const historyCap = 256

func (e *Engine) record(r *Receipt) *Receipt {
	e.history = append(e.history, r)
	if len(e.history) > historyCap {
		e.history = e.history[len(e.history)-historyCap:]
	}
	return r
}

// History returns the most recent transaction receipts, oldest first.
func (e *Engine) History() []*Receipt {
	return e.history
}

func (e *Engine) refresh() {
	if e.Refresh != nil {
		e.Refresh()
	}
}

// notify routes a message to the sink when the actor is the player.
func (e *Engine) notify(actor *settlement.Settlement, message, category string) {
	if e.Notifier != nil && actor.Player {
		e.Notifier.Notify(message, category)
	}
}

func (e *Engine) fail(actor *settlement.Settlement, err error, message string) error {
	if e.Notifier != nil && actor != nil && actor.Player && message != "" {
		e.Notifier.Error(message)
	}
	return err
}

func coins(n int) string {
	return humanize.Comma(int64(n))
}

// BuyFromSettlement buys amount units of resource from the counterpart,
// importing them into the actor. An amount of zero or less means "the full
// listed export amount". All preconditions are validated before any state is
// touched; a failed check aborts with no partial mutation.
func (e *Engine) BuyFromSettlement(actor *settlement.Settlement, from Ref, resource string, amount int) (*Receipt, error) {
	if !e.Catalog.Exists(resource) {
		return nil, e.fail(actor, ErrUnknownResource, "The resource you specified does not exist.")
	}
	if !actor.CanTrade() {
		return nil, ErrTradingDisabled
	}
	seller, ok := from.Resolve(e.Resolver)
	if !ok {
		return nil, e.fail(actor, ErrUnknownSettlement, fmt.Sprintf("%s does not exist.", from))
	}
	trades := seller.Ledger()
	if trades == nil {
		return nil, e.fail(actor, ErrNoTradeData, fmt.Sprintf("%s does not trade any goods.", seller.Name))
	}
	if trades.Exports == nil {
		return nil, e.fail(actor, ErrNoTradeData, fmt.Sprintf("%s does not export any goods.", seller.Name))
	}
	listed, ok := trades.Exports[resource]
	if !ok {
		return nil, e.fail(actor, ErrNotExported, fmt.Sprintf("%s does not export the requested goods.", seller.Name))
	}
	if amount <= 0 {
		amount = listed
	}

	base, err := e.Catalog.BasePrice(resource)
	if err != nil {
		return nil, err
	}
	discount := pricing.UnitDiscount(base, pricing.TradeMarkupRate)
	price := pricing.WithMarkup(amount, base, discount)
	sellerPrice := pricing.Gross(amount, base)
	unitPrice := base + discount

	if !actor.HasStorageSpaceFor(amount) {
		return nil, e.fail(actor, ErrInsufficientStorage,
			fmt.Sprintf("%s does not have enough storage space for %d %s.", actor.Name, amount, resource))
	}
	if !actor.CanAfford(price) {
		return nil, e.fail(actor, ErrInsufficientFunds,
			fmt.Sprintf("%s does not have enough coins.", actor.Name))
	}
	// The listed export amount gates the trade, not the raw stock, so the
	// ledger entry can never be driven negative.
	if amount > listed || !seller.HasResource(resource, amount) {
		return nil, e.fail(actor, ErrInsufficientStock,
			fmt.Sprintf("%s does not have %d %s in stock.", seller.Name, amount, resource))
	}

	actor.DecCoins(price)
	seller.RemoveResource(resource, amount)
	seller.IncCoins(sellerPrice)
	actor.AddToStorage(resource, amount)
	seller.RemoveFromExports(resource, amount)

	double := actor.ReligionID == seller.ReligionID
	actor.RaiseInfluence(seller.ID, doubled(ImportInfluence, double))
	actor.RaisePrestige(doubled(ImportPrestige, double))
	actor.RaiseFame(TradeFame)

	e.refresh()
	e.notify(actor, fmt.Sprintf("%s bought %d %s from %s for %s coins each, a total of %s coins.",
		actor.Name, amount, resource, seller.Name, coins(unitPrice), coins(price)), "World Market")

	r := newReceipt(KindImport)
	r.Buyer = actor.Name
	r.Seller = seller.Name
	r.Goods = resource
	r.Amount = amount
	r.UnitPrice = unitPrice
	r.TotalPrice = price
	return e.record(r), nil
}

// SellToSettlement sells amount units of resource to the counterpart,
// exporting them from the actor. An amount of zero or less means "the full
// listed import amount". Mirrors BuyFromSettlement with the roles reversed
// and a markdown price paid to the actor.
func (e *Engine) SellToSettlement(actor *settlement.Settlement, to Ref, resource string, amount int) (*Receipt, error) {
	if !e.Catalog.Exists(resource) {
		return nil, e.fail(actor, ErrUnknownResource, "The resource you specified does not exist.")
	}
	if !actor.CanTrade() {
		return nil, ErrTradingDisabled
	}
	buyer, ok := to.Resolve(e.Resolver)
	if !ok {
		return nil, e.fail(actor, ErrUnknownSettlement, fmt.Sprintf("%s does not exist.", to))
	}
	trades := buyer.Ledger()
	if trades == nil {
		return nil, e.fail(actor, ErrNoTradeData, fmt.Sprintf("%s does not trade any goods.", buyer.Name))
	}
	if trades.Imports == nil {
		return nil, e.fail(actor, ErrNoTradeData, fmt.Sprintf("%s does not import any goods.", buyer.Name))
	}
	listed, ok := trades.Imports[resource]
	if !ok {
		return nil, e.fail(actor, ErrNotImported, fmt.Sprintf("%s does not import the specified goods.", buyer.Name))
	}
	if amount <= 0 {
		amount = listed
	}

	base, err := e.Catalog.BasePrice(resource)
	if err != nil {
		return nil, err
	}
	discount := pricing.UnitDiscount(base, pricing.TradeMarkdownRate)
	price := pricing.WithMarkdown(amount, base, discount)
	buyerPrice := pricing.Gross(amount, base)
	unitPrice := base - discount

	if amount > listed || !actor.HasResource(resource, amount) {
		return nil, e.fail(actor, ErrInsufficientStock,
			fmt.Sprintf("%s does not have enough %s to sell.", actor.Name, resource))
	}
	if !buyer.CanAfford(buyerPrice) {
		return nil, e.fail(actor, ErrInsufficientFunds,
			fmt.Sprintf("%s does not have enough coins.", buyer.Name))
	}

	actor.RemoveResource(resource, amount)
	actor.IncCoins(price)
	buyer.DecCoins(buyerPrice)
	buyer.AddToStorage(resource, amount)
	buyer.RemoveFromImports(resource, amount)

	double := actor.ReligionID == buyer.ReligionID
	actor.RaiseInfluence(buyer.ID, doubled(ExportInfluence, double))
	actor.RaisePrestige(doubled(ExportPrestige, double))
	actor.RaiseFame(TradeFame)

	e.refresh()
	e.notify(actor, fmt.Sprintf("%s sold %d %s to %s for %s coins each, a total of %s coins.",
		actor.Name, amount, resource, buyer.Name, coins(unitPrice), coins(price)), "World Market")

	r := newReceipt(KindExport)
	r.Seller = actor.Name
	r.Buyer = buyer.Name
	r.Goods = resource
	r.Amount = amount
	r.UnitPrice = unitPrice
	r.TotalPrice = price
	return e.record(r), nil
}

func doubled(base int, double bool) int {
	if double {
		return base * 2
	}
	return base
}
