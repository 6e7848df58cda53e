package domain

// ProductSpec is the user-supplied description of a (possibly unreleased) product.
type ProductSpec struct {
	Name         string  `json:"product_name"`
	Category     string  `json:"category"`
	Price        float64 `json:"price"`
	TargetRating float64 `json:"target_rating"`
}

// MarketScenario is an assumption about market conditions. It is only used to
// place a new product into a segment and is never treated as ground truth.
type MarketScenario struct {
	EstimatedReviews              int64 `json:"estimated_reviews"`
	EstimatedRepurchaseHistorical int64 `json:"estimated_repurchase_historical"`
	BeautyPointsEarned            int64 `json:"beauty_points_earned"`
}

type ClusterAssignment struct {
	ClusterID    int    `json:"cluster_id"`
	ClusterLabel string `json:"cluster_label"`
}

type Prediction struct {
	RepurchaseEstimate int64   `json:"repurchase_estimate"`
	Raw                float64 `json:"raw"` // unclamped regression output
}

// RegressionInput is the mixed-type record scored by the regression pipeline.
// Field names follow the columns the pipeline was fit on.
type RegressionInput struct {
	PriceClean      float64 `json:"price_clean"`
	AverageRating   float64 `json:"average_rating"`
	DefaultCategory string  `json:"default_category"`
	Cluster         int     `json:"Cluster"`
}

const (
	ColumnPriceClean      = "price_clean"
	ColumnAverageRating   = "average_rating"
	ColumnDefaultCategory = "default_category"
	ColumnCluster         = "Cluster"
)

// Numeric returns the numeric column with the given name.
func (r RegressionInput) Numeric(column string) (float64, bool) {
	switch column {
	case ColumnPriceClean:
		return r.PriceClean, true
	case ColumnAverageRating:
		return r.AverageRating, true
	case ColumnCluster:
		return float64(r.Cluster), true
	default:
		return 0, false
	}
}

// Categorical returns the categorical column with the given name.
func (r RegressionInput) Categorical(column string) (string, bool) {
	if column == ColumnDefaultCategory {
		return r.DefaultCategory, true
	}
	return "", false
}

// InferenceResult is the output of one run of the two-stage pipeline.
type InferenceResult struct {
	Segment    ClusterAssignment `json:"segment"`
	Prediction Prediction        `json:"prediction"`
	// SegmentMap is the 2-D projection of the scaled clustering vector, only
	// present when a projector artifact is loaded.
	SegmentMap []float64 `json:"segment_map,omitempty"`
}

// StockDecision is the full answer returned for one analyzed product.
type StockDecision struct {
	TraceID         string            `json:"trace_id"`
	ArtifactVersion string            `json:"artifact_version,omitempty"`
	ProductName     string            `json:"product_name"`
	Category        string            `json:"category"`
	Segment         ClusterAssignment `json:"segment"`
	Prediction      Prediction        `json:"prediction"`
	Recommendation  Recommendation    `json:"recommendation"`
	SegmentMap      []float64         `json:"segment_map,omitempty"`
}
