package trade

import "github.com/google/uuid"

// Receipt records a completed transaction. Buy and sell receipts carry both
// parties and the per-unit price; black-market receipts carry the seller and
// the per-unit discount taken by the market.
type Receipt struct {
	ID         string `json:"id"`
	Kind       string `json:"kind"` // "import", "export", or "black-market"
	Buyer      string `json:"buyer,omitempty"`
	Seller     string `json:"seller,omitempty"`
	Goods      string `json:"goods"`
	Amount     int    `json:"amount"`
	UnitPrice  int    `json:"unit_price,omitempty"`
	TotalPrice int    `json:"total_price"`
	Discount   int    `json:"discount,omitempty"`
}

func newReceipt(kind string) *Receipt {
	return &Receipt{ID: uuid.NewString(), Kind: kind}
}

// Receipt kinds.
const (
	KindImport      = "import"
	KindExport      = "export"
	KindBlackMarket = "black-market"
)
