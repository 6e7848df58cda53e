package artifact

import (
	"errors"
	"fmt"

	"smartStock/domain"
)

// StandardScaler re-hosts a fitted standardization transform: (x - mean) / scale.
type StandardScaler struct {
	FeatureNames []string  `json:"feature_names"`
	Mean         []float64 `json:"mean"`
	Scale        []float64 `json:"scale"`
}

func (s *StandardScaler) validate() error {
	if len(s.Mean) == 0 {
		return errors.New("scaler has no features")
	}
	if len(s.Mean) != len(s.Scale) {
		return fmt.Errorf("scaler mean has %d entries, scale has %d", len(s.Mean), len(s.Scale))
	}
	if len(s.FeatureNames) > 0 && len(s.FeatureNames) != len(s.Mean) {
		return fmt.Errorf("scaler names %d features, parameters cover %d", len(s.FeatureNames), len(s.Mean))
	}
	if !allFinite(s.Mean) || !allFinite(s.Scale) {
		return errors.New("scaler parameters are not finite")
	}
	return nil
}

// NumFeatures is the vector length the scaler was fit on.
func (s *StandardScaler) NumFeatures() int {
	return len(s.Mean)
}

// Transform standardizes x. A zero scale is treated as 1 (constant feature).
func (s *StandardScaler) Transform(x []float64) ([]float64, error) {
	if len(x) != len(s.Mean) {
		return nil, fmt.Errorf("%w: scaler expects %d features, got %d", domain.ErrConfiguration, len(s.Mean), len(x))
	}

	out := make([]float64, len(x))
	for i, v := range x {
		scale := s.Scale[i]
		if scale == 0 {
			scale = 1
		}
		out[i] = (v - s.Mean[i]) / scale
	}
	return out, nil
}
