package inference

import (
	"context"
	"errors"
	"math"
	"testing"

	"smartStock/domain"
	"smartStock/internal/artifact"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- fakes ----

type identityScaler struct {
	err error
}

func (s identityScaler) Transform(x []float64) ([]float64, error) {
	if s.err != nil {
		return nil, s.err
	}
	return append([]float64(nil), x...), nil
}

type sequenceClusterer struct {
	ids   []int
	calls int
	err   error
}

func (c *sequenceClusterer) Predict(x []float64) (int, error) {
	if c.err != nil {
		return 0, c.err
	}
	id := c.ids[c.calls%len(c.ids)]
	c.calls++
	return id, nil
}

type recordingRegressor struct {
	out  float64
	err  error
	seen []domain.RegressionInput
}

func (r *recordingRegressor) Predict(in domain.RegressionInput) (float64, error) {
	r.seen = append(r.seen, in)
	return r.out, r.err
}

type fixedProjector struct {
	err error
}

func (p fixedProjector) Project(x []float64) ([]float64, error) {
	if p.err != nil {
		return nil, p.err
	}
	return []float64{x[0], x[1]}, nil
}

func sampleInput() (domain.ProductSpec, domain.MarketScenario) {
	return domain.ProductSpec{Name: "Super Glow Serum Viral", Category: "Serum", Price: 120000, TargetRating: 4.7},
		domain.MarketScenario{EstimatedReviews: 50, EstimatedRepurchaseHistorical: 2000, BeautyPointsEarned: 20}
}

// ---- tests ----

func TestPipeline_Run(t *testing.T) {
	reg := &recordingRegressor{out: 1650.8}
	p := NewPipeline(Models{
		Scaler:    identityScaler{},
		Clusterer: &sequenceClusterer{ids: []int{2}},
		Regressor: reg,
		Version:   "v1",
	})

	spec, scenario := sampleInput()
	got, err := p.Run(context.Background(), spec, scenario)
	require.NoError(t, err)

	assert.Equal(t, 2, got.Segment.ClusterID)
	assert.Equal(t, "The Popular One (Best Seller)", got.Segment.ClusterLabel)
	assert.Equal(t, int64(1650), got.Prediction.RepurchaseEstimate)
	assert.Equal(t, 1650.8, got.Prediction.Raw)
	assert.Nil(t, got.SegmentMap)
	assert.Equal(t, "v1", p.ArtifactVersion())

	require.Len(t, reg.seen, 1)
	assert.Equal(t, 2, reg.seen[0].Cluster)
	assert.Equal(t, 120000.0, reg.seen[0].PriceClean, "regression takes the raw price")
	assert.Equal(t, "Serum", reg.seen[0].DefaultCategory)
}

func TestPipeline_ClampsNegativePrediction(t *testing.T) {
	p := NewPipeline(Models{
		Scaler:    identityScaler{},
		Clusterer: &sequenceClusterer{ids: []int{1}},
		Regressor: &recordingRegressor{out: -312.4},
	})

	spec, scenario := sampleInput()
	got, err := p.Run(context.Background(), spec, scenario)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.Prediction.RepurchaseEstimate)
	assert.Equal(t, -312.4, got.Prediction.Raw)
}

func TestPipeline_EachRequestUsesItsOwnCluster(t *testing.T) {
	reg := &recordingRegressor{out: 10}
	p := NewPipeline(Models{
		Scaler:    identityScaler{},
		Clusterer: &sequenceClusterer{ids: []int{2, 4}},
		Regressor: reg,
	})

	spec, scenario := sampleInput()
	first, err := p.Run(context.Background(), spec, scenario)
	require.NoError(t, err)
	second, err := p.Run(context.Background(), spec, scenario)
	require.NoError(t, err)

	assert.Equal(t, 2, first.Segment.ClusterID)
	assert.Equal(t, 4, second.Segment.ClusterID)
	require.Len(t, reg.seen, 2)
	assert.Equal(t, 2, reg.seen[0].Cluster)
	assert.Equal(t, 4, reg.seen[1].Cluster)
}

func TestPipeline_Idempotent(t *testing.T) {
	p := NewPipeline(Models{
		Scaler:    identityScaler{},
		Clusterer: &sequenceClusterer{ids: []int{3}},
		Projector: fixedProjector{},
		Regressor: &recordingRegressor{out: 742.2},
	})

	spec, scenario := sampleInput()
	first, err := p.Run(context.Background(), spec, scenario)
	require.NoError(t, err)
	second, err := p.Run(context.Background(), spec, scenario)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestPipeline_Errors(t *testing.T) {
	spec, scenario := sampleInput()
	boom := errors.New("boom")

	tests := []struct {
		name      string
		models    Models
		wantKind  error
		wantExact error
	}{
		{
			name: "scaler failure is a configuration error",
			models: Models{
				Scaler:    identityScaler{err: boom},
				Clusterer: &sequenceClusterer{ids: []int{0}},
				Regressor: &recordingRegressor{},
			},
			wantKind: domain.ErrConfiguration,
		},
		{
			name: "clusterer failure is a model error",
			models: Models{
				Scaler:    identityScaler{},
				Clusterer: &sequenceClusterer{err: boom},
				Regressor: &recordingRegressor{},
			},
			wantKind: domain.ErrModel,
		},
		{
			name: "cluster outside the segment table is a data error",
			models: Models{
				Scaler:    identityScaler{},
				Clusterer: &sequenceClusterer{ids: []int{5}},
				Regressor: &recordingRegressor{},
			},
			wantKind:  domain.ErrData,
			wantExact: domain.ErrUnknownCluster,
		},
		{
			name: "negative cluster id is a data error",
			models: Models{
				Scaler:    identityScaler{},
				Clusterer: &sequenceClusterer{ids: []int{-1}},
				Regressor: &recordingRegressor{},
			},
			wantKind: domain.ErrData,
		},
		{
			name: "unknown category keeps its classification",
			models: Models{
				Scaler:    identityScaler{},
				Clusterer: &sequenceClusterer{ids: []int{0}},
				Regressor: &recordingRegressor{err: domain.ErrUnknownCategory},
			},
			wantKind:  domain.ErrModel,
			wantExact: domain.ErrUnknownCategory,
		},
		{
			name: "non finite regression output is a model error",
			models: Models{
				Scaler:    identityScaler{},
				Clusterer: &sequenceClusterer{ids: []int{0}},
				Regressor: &recordingRegressor{out: math.NaN()},
			},
			wantKind: domain.ErrModel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPipeline(tt.models).Run(context.Background(), spec, scenario)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantKind)
			if tt.wantExact != nil {
				assert.ErrorIs(t, err, tt.wantExact)
			}
		})
	}
}

func TestPipeline_RegressorNotCalledWhenLabelLookupFails(t *testing.T) {
	reg := &recordingRegressor{out: 1}
	p := NewPipeline(Models{
		Scaler:    identityScaler{},
		Clusterer: &sequenceClusterer{ids: []int{7}},
		Regressor: reg,
	})

	spec, scenario := sampleInput()
	_, err := p.Run(context.Background(), spec, scenario)
	require.ErrorIs(t, err, domain.ErrData)
	assert.Empty(t, reg.seen)
}

func TestPipeline_ProjectorFailureDoesNotAbort(t *testing.T) {
	p := NewPipeline(Models{
		Scaler:    identityScaler{},
		Clusterer: &sequenceClusterer{ids: []int{0}},
		Projector: fixedProjector{err: errors.New("bad shape")},
		Regressor: &recordingRegressor{out: 300},
	})

	spec, scenario := sampleInput()
	got, err := p.Run(context.Background(), spec, scenario)
	require.NoError(t, err)
	assert.Nil(t, got.SegmentMap)
	assert.Equal(t, int64(300), got.Prediction.RepurchaseEstimate)
}

func TestPipeline_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewPipeline(Models{
		Scaler:    identityScaler{},
		Clusterer: &sequenceClusterer{ids: []int{0}},
		Regressor: &recordingRegressor{},
	})

	spec, scenario := sampleInput()
	_, err := p.Run(ctx, spec, scenario)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClampEstimate(t *testing.T) {
	tests := []struct {
		raw     float64
		want    int64
		wantErr bool
	}{
		{raw: -5000.2, want: 0},
		{raw: -0.0001, want: 0},
		{raw: 0, want: 0},
		{raw: 0.99, want: 0},
		{raw: 199.999, want: 199},
		{raw: 5000, want: 5000},
		{raw: math.NaN(), wantErr: true},
		{raw: math.Inf(1), wantErr: true},
		{raw: math.Inf(-1), wantErr: true},
	}

	for _, tt := range tests {
		got, err := clampEstimate(tt.raw)
		if tt.wantErr {
			assert.ErrorIs(t, err, domain.ErrModel, "raw=%v", tt.raw)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "raw=%v", tt.raw)
	}
}

// Each centroid sits on one axis, so swapping two positions of an axis-aligned
// input moves it to the other axis' cluster.
func TestPipeline_FeatureOrderMatters(t *testing.T) {
	scaler := &artifact.StandardScaler{
		Mean:  []float64{0, 0, 0, 0, 0},
		Scale: []float64{1, 1, 1, 1, 1},
	}
	clusterer := &artifact.KMeans{Centroids: [][]float64{
		{1, 0, 0, 0, 0},
		{0, 1, 0, 0, 0},
		{0, 0, 1, 0, 0},
		{0, 0, 0, 1, 0},
		{0, 0, 0, 0, 1},
	}}

	for i := 0; i < NumClusteringFeatures; i++ {
		x := make([]float64, NumClusteringFeatures)
		x[i] = 1

		scaled, err := scaler.Transform(x)
		require.NoError(t, err)
		original, err := clusterer.Predict(scaled)
		require.NoError(t, err)
		require.Equal(t, i, original)

		for j := i + 1; j < NumClusteringFeatures; j++ {
			swapped := append([]float64(nil), x...)
			swapped[i], swapped[j] = swapped[j], swapped[i]

			scaledSwapped, err := scaler.Transform(swapped)
			require.NoError(t, err)
			got, err := clusterer.Predict(scaledSwapped)
			require.NoError(t, err)
			assert.NotEqual(t, original, got, "swap %s<->%s", ClusteringFeatureNames[i], ClusteringFeatureNames[j])
		}
	}
}
