package inference

import "smartStock/domain"

// ClusteringFeatureNames is the column order the scaler and clustering model
// were fit on. Reordering silently assigns weights to the wrong dimension.
var ClusteringFeatureNames = [...]string{
	"price_clean",
	"average_rating",
	"total_reviews",
	"repurchase_count",
	"beauty_points",
}

const NumClusteringFeatures = len(ClusteringFeatureNames)

// ClusteringVector assembles the fixed-order clustering input. It does not
// check bounds; the models accept anything finite.
func ClusteringVector(spec domain.ProductSpec, scenario domain.MarketScenario) []float64 {
	return []float64{
		spec.Price,
		spec.TargetRating,
		float64(scenario.EstimatedReviews),
		float64(scenario.EstimatedRepurchaseHistorical),
		float64(scenario.BeautyPointsEarned),
	}
}

// RegressionRecord assembles the regression input for the cluster assigned in
// the same request. price_clean is the raw, unscaled price.
func RegressionRecord(spec domain.ProductSpec, clusterID int) domain.RegressionInput {
	return domain.RegressionInput{
		PriceClean:      spec.Price,
		AverageRating:   spec.TargetRating,
		DefaultCategory: spec.Category,
		Cluster:         clusterID,
	}
}
