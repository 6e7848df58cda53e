package artifact

import (
	"errors"
	"fmt"

	"smartStock/domain"
)

// PCA re-hosts a fitted linear projection used to place products on the
// segment map. Only used for visualization.
type PCA struct {
	Mean       []float64   `json:"mean"`
	Components [][]float64 `json:"components"`
}

func (p *PCA) validate() error {
	if len(p.Mean) == 0 || len(p.Components) == 0 {
		return errors.New("projector has no parameters")
	}
	for i, c := range p.Components {
		if len(c) != len(p.Mean) {
			return fmt.Errorf("component %d has %d dimensions, want %d", i, len(c), len(p.Mean))
		}
		if !allFinite(c) {
			return fmt.Errorf("component %d is not finite", i)
		}
	}
	return nil
}

func (p *PCA) Project(x []float64) ([]float64, error) {
	if len(x) != len(p.Mean) {
		return nil, fmt.Errorf("%w: projector expects %d features, got %d", domain.ErrConfiguration, len(p.Mean), len(x))
	}

	out := make([]float64, len(p.Components))
	for i, comp := range p.Components {
		sum := 0.0
		for j, w := range comp {
			sum += w * (x[j] - p.Mean[j])
		}
		out[i] = sum
	}
	return out, nil
}
