// Package decision turns a repurchase estimate into a stock-ordering
// recommendation. Thresholds are inclusive on the lower bound.
package decision

import "smartStock/domain"

const (
	LargeStockThreshold    = 5000
	NormalStockThreshold   = 1000
	CautiousStockThreshold = 200

	largeStockBuffer   = 1000
	noStockMaxPreorder = 50
	normalStockNumer   = 6 // floor(q * 1.2) == q * 6 / 5 for q >= 0
	normalStockDenom   = 5
)

// Decide maps a clamped repurchase estimate to exactly one tier. Negative
// values are treated like zero.
func Decide(q int64) domain.Recommendation {
	switch {
	case q >= LargeStockThreshold:
		return domain.Recommendation{
			Tier:           domain.TierLargeStock,
			SuggestedOrder: single(q + largeStockBuffer),
			Strategy:       "Aggressive Stock",
			Rationale:      "Demand is predicted to be very high (viral/legend). Stock-out risk is high if supply is short.",
		}
	case q >= NormalStockThreshold:
		return domain.Recommendation{
			Tier:           domain.TierNormalStock,
			SuggestedOrder: single(q * normalStockNumer / normalStockDenom),
			Strategy:       "Safe Stock",
			Rationale:      "Sales performance is healthy and stable.",
		}
	case q >= CautiousStockThreshold:
		return domain.Recommendation{
			Tier:           domain.TierCautiousStock,
			SuggestedOrder: single(q),
			Strategy:       "Conservative",
			Rationale:      "There is demand, but it is not yet massive. Test the market before scaling up.",
		}
	default:
		return domain.Recommendation{
			Tier:           domain.TierNoStock,
			SuggestedOrder: domain.OrderQuantity{Min: 0, Max: noStockMaxPreorder},
			Strategy:       "Minimize Risk",
			Rationale:      "Predicted demand is very low. Dead-stock risk; take pre-orders only.",
		}
	}
}

func single(n int64) domain.OrderQuantity {
	return domain.OrderQuantity{Min: n, Max: n}
}
