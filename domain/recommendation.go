package domain

type StockTier string

const (
	TierLargeStock    StockTier = "LARGE_STOCK"
	TierNormalStock   StockTier = "NORMAL_STOCK"
	TierCautiousStock StockTier = "CAUTIOUS_STOCK"
	TierNoStock       StockTier = "NO_STOCK"
)

func (t StockTier) String() string {
	return string(t)
}

// OrderQuantity is a suggested initial order in pieces. A single quantity has
// Min == Max.
type OrderQuantity struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

func (q OrderQuantity) IsRange() bool {
	return q.Min != q.Max
}

type Recommendation struct {
	Tier           StockTier     `json:"tier"`
	SuggestedOrder OrderQuantity `json:"suggested_order"`
	Strategy       string        `json:"strategy"`
	Rationale      string        `json:"rationale"`
}
