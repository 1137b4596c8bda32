// Package pricing computes trade prices. All functions are pure integer
// arithmetic so repeated calls with the same inputs give the same result.
package pricing

// Per-unit adjustment rates, as a percentage of a resource's base price.
// Buying from another settlement pays a markup (trade-route cost); selling
// accepts a markdown; black-market listings take a much deeper cut.
const (
	TradeMarkupRate   = 10
	TradeMarkdownRate = 20
	BlackMarketRate   = 80
)

// UnitDiscount returns the per-unit price adjustment for a resource with the
// given base price at the given percentage rate, rounded up.
func UnitDiscount(basePrice, rate int) int {
	return (basePrice*rate + 99) / 100
}

// Gross returns the plain price of amount units at the base price.
func Gross(amount, basePrice int) int {
	return amount * basePrice
}

// WithMarkup returns the price of amount units with the per-unit discount
// added on top of the base price.
func WithMarkup(amount, basePrice, discount int) int {
	return amount * (basePrice + discount)
}

// WithMarkdown returns the price of amount units with the per-unit discount
// subtracted from the base price.
func WithMarkdown(amount, basePrice, discount int) int {
	return amount * (basePrice - discount)
}
