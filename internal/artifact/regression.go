package artifact

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"smartStock/domain"
)

const (
	FeatureNumeric     = "numeric"
	FeatureCategorical = "categorical"

	HandleUnknownError  = "error"
	HandleUnknownIgnore = "ignore"
)

// FeatureSpec is one input column of the regression pipeline, in the order the
// encoded row is laid out. Categorical columns expand to one slot per category.
type FeatureSpec struct {
	Name       string   `json:"name"`
	Type       string   `json:"type"`
	Categories []string `json:"categories,omitempty"`
	// HandleUnknown is "error" (default) or "ignore"; ignore encodes an
	// unseen category as an all-zero block.
	HandleUnknown string `json:"handle_unknown,omitempty"`
}

// TreeNode follows the flat XGBoost dump layout. A node with Leaf set is
// terminal; otherwise row[Split] < SplitCondition goes to Yes, NaN to Missing.
type TreeNode struct {
	Split          int      `json:"split"`
	SplitCondition float64  `json:"split_condition"`
	Yes            int      `json:"yes"`
	No             int      `json:"no"`
	Missing        int      `json:"missing"`
	Leaf           *float64 `json:"leaf,omitempty"`
}

type Tree struct {
	Nodes []TreeNode `json:"nodes"`
}

type Booster struct {
	BaseScore float64 `json:"base_score"`
	Trees     []Tree  `json:"trees"`
}

// RegressionPipeline re-hosts the fitted encoder + gradient boosted trees that
// predict the repurchase count.
type RegressionPipeline struct {
	Features []FeatureSpec `json:"features"`
	Booster  Booster       `json:"booster"`

	width int
}

func (p *RegressionPipeline) validate() error {
	if len(p.Features) == 0 {
		return errors.New("regression pipeline has no features")
	}

	var probe domain.RegressionInput
	width := 0
	for i := range p.Features {
		f := &p.Features[i]
		switch f.Type {
		case FeatureNumeric:
			if _, ok := probe.Numeric(f.Name); !ok {
				return fmt.Errorf("unknown numeric column %q", f.Name)
			}
			width++
		case FeatureCategorical:
			if _, ok := probe.Categorical(f.Name); !ok {
				return fmt.Errorf("unknown categorical column %q", f.Name)
			}
			if len(f.Categories) == 0 {
				return fmt.Errorf("categorical column %q has no categories", f.Name)
			}
			if f.HandleUnknown == "" {
				f.HandleUnknown = HandleUnknownError
			}
			if f.HandleUnknown != HandleUnknownError && f.HandleUnknown != HandleUnknownIgnore {
				return fmt.Errorf("column %q: unsupported handle_unknown %q", f.Name, f.HandleUnknown)
			}
			width += len(f.Categories)
		default:
			return fmt.Errorf("column %q: unsupported type %q", f.Name, f.Type)
		}
	}

	for t, tree := range p.Booster.Trees {
		if len(tree.Nodes) == 0 {
			return fmt.Errorf("tree %d is empty", t)
		}
		for n, node := range tree.Nodes {
			if node.Leaf != nil {
				continue
			}
			if node.Split < 0 || node.Split >= width {
				return fmt.Errorf("tree %d node %d splits on column %d, row has %d", t, n, node.Split, width)
			}
			// children always come after their parent, so walks terminate
			for _, child := range []int{node.Yes, node.No, node.Missing} {
				if child <= n || child >= len(tree.Nodes) {
					return fmt.Errorf("tree %d node %d has invalid child %d", t, n, child)
				}
			}
		}
	}

	p.width = width
	return nil
}

// Categories returns the category vocabulary of the first categorical column.
func (p *RegressionPipeline) Categories() []string {
	for _, f := range p.Features {
		if f.Type == FeatureCategorical {
			return slices.Clone(f.Categories)
		}
	}
	return nil
}

// Encode lays the record out as the numeric row the trees were trained on.
func (p *RegressionPipeline) Encode(in domain.RegressionInput) ([]float64, error) {
	row := make([]float64, 0, p.width)

	for _, f := range p.Features {
		switch f.Type {
		case FeatureNumeric:
			v, ok := in.Numeric(f.Name)
			if !ok {
				return nil, fmt.Errorf("%w: missing column %q", domain.ErrModel, f.Name)
			}
			row = append(row, v)
		case FeatureCategorical:
			v, ok := in.Categorical(f.Name)
			if !ok || v == "" {
				return nil, fmt.Errorf("%w: missing column %q", domain.ErrModel, f.Name)
			}
			idx := slices.Index(f.Categories, v)
			if idx < 0 && f.HandleUnknown != HandleUnknownIgnore {
				return nil, fmt.Errorf("%w: %q in column %q", domain.ErrUnknownCategory, v, f.Name)
			}
			for i := range f.Categories {
				if i == idx {
					row = append(row, 1)
				} else {
					row = append(row, 0)
				}
			}
		}
	}

	return row, nil
}

func (p *RegressionPipeline) Predict(in domain.RegressionInput) (float64, error) {
	row, err := p.Encode(in)
	if err != nil {
		return 0, err
	}

	out := p.Booster.BaseScore
	for _, tree := range p.Booster.Trees {
		out += tree.leafValue(row)
	}

	if math.IsNaN(out) || math.IsInf(out, 0) {
		return 0, fmt.Errorf("%w: regression output is not finite", domain.ErrModel)
	}
	return out, nil
}

func (t Tree) leafValue(row []float64) float64 {
	i := 0
	for {
		node := t.Nodes[i]
		if node.Leaf != nil {
			return *node.Leaf
		}

		v := row[node.Split]
		switch {
		case math.IsNaN(v):
			i = node.Missing
		case v < node.SplitCondition:
			i = node.Yes
		default:
			i = node.No
		}
	}
}
