package artifact

import (
	"errors"
	"fmt"
	"math"

	"smartStock/domain"
)

// KMeans re-hosts a fitted k-means model as its centroids. Prediction picks
// the nearest centroid by squared Euclidean distance; ties go to the lower label.
type KMeans struct {
	Centroids [][]float64 `json:"centroids"`
}

func (k *KMeans) validate() error {
	if len(k.Centroids) == 0 {
		return errors.New("clustering model has no centroids")
	}
	dim := len(k.Centroids[0])
	if dim == 0 {
		return errors.New("clustering centroids are empty")
	}
	for i, c := range k.Centroids {
		if len(c) != dim {
			return fmt.Errorf("centroid %d has %d dimensions, want %d", i, len(c), dim)
		}
		if !allFinite(c) {
			return fmt.Errorf("centroid %d is not finite", i)
		}
	}
	return nil
}

func (k *KMeans) NumClusters() int {
	return len(k.Centroids)
}

func (k *KMeans) Predict(x []float64) (int, error) {
	if len(k.Centroids) == 0 {
		return 0, fmt.Errorf("%w: clustering model has no centroids", domain.ErrModel)
	}
	if len(x) != len(k.Centroids[0]) {
		return 0, fmt.Errorf("%w: clustering model expects %d features, got %d", domain.ErrModel, len(k.Centroids[0]), len(x))
	}
	if !allFinite(x) {
		return 0, fmt.Errorf("%w: clustering input is not finite", domain.ErrModel)
	}

	best := 0
	bestDist := math.Inf(1)
	for label, c := range k.Centroids {
		d := 0.0
		for i := range c {
			diff := x[i] - c[i]
			d += diff * diff
		}
		if d < bestDist {
			best = label
			bestDist = d
		}
	}
	return best, nil
}
