package trade

import (
	"errors"

	"github.com/talgya/tradewinds/internal/resources"
)

// The closed set of trade failure kinds. Every precondition failure maps to
// exactly one of these; no other errors cross the trade boundary.
var (
	// ErrUnknownResource: the resource is not in the catalog.
	ErrUnknownResource = resources.ErrUnknownResource

	// ErrTradingDisabled: the acting settlement has no trading post.
	ErrTradingDisabled = errors.New("trading disabled")

	// ErrUnknownSettlement: the counterpart reference resolved to nothing.
	ErrUnknownSettlement = errors.New("unknown settlement")

	// ErrNoTradeData: the counterpart has no trade ledger for this cycle,
	// or its ledger lacks the required direction.
	ErrNoTradeData = errors.New("no trade data")

	// ErrNotExported / ErrNotImported: the ledger direction exists but does
	// not list the requested resource.
	ErrNotExported = errors.New("resource not exported")
	ErrNotImported = errors.New("resource not imported")

	// ErrInsufficientStorage: the receiving settlement lacks storage space.
	ErrInsufficientStorage = errors.New("insufficient storage")

	// ErrInsufficientFunds: the paying settlement cannot cover the price.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInsufficientStock: the listed amount or the raw stock does not
	// cover the requested amount.
	ErrInsufficientStock = errors.New("insufficient stock")
)
