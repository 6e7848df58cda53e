package inference

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"smartStock/domain"
	"smartStock/pkg/logger"
)

// ---- model interfaces ----

type Scaler interface {
	Transform(x []float64) ([]float64, error)
}

type Clusterer interface {
	Predict(x []float64) (int, error)
}

type Projector interface {
	Project(x []float64) ([]float64, error)
}

type Regressor interface {
	Predict(in domain.RegressionInput) (float64, error)
}

// Models groups the pre-fitted artifacts the pipeline runs on. Projector may be nil.
type Models struct {
	Scaler    Scaler
	Clusterer Clusterer
	Projector Projector
	Regressor Regressor
	Version   string
}

// Pipeline runs scale -> cluster -> label -> regress -> clamp. It holds no
// per-request state; concurrent calls share the read-only models.
type Pipeline struct {
	models Models
}

func NewPipeline(models Models) *Pipeline {
	return &Pipeline{models: models}
}

func (p *Pipeline) ArtifactVersion() string {
	return p.models.Version
}

func (p *Pipeline) Run(
	ctx context.Context,
	spec domain.ProductSpec,
	scenario domain.MarketScenario,
) (domain.InferenceResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.InferenceResult{}, fmt.Errorf("context error: %w", err)
	}

	start := time.Now()
	result, err := p.run(ctx, spec, scenario)
	PipelineDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		outcome := domain.ErrorKind(err)
		if outcome == "" {
			outcome = "unknown"
		}
		PipelineRunsTotal.WithLabelValues(outcome).Inc()
		logger.Warn("stock_pipeline_failed",
			"trace_id", TraceIDFromContext(ctx),
			"kind", outcome,
			"error", err,
		)
		return domain.InferenceResult{}, err
	}

	PipelineRunsTotal.WithLabelValues("ok").Inc()
	ClusterAssignmentsTotal.WithLabelValues(strconv.Itoa(result.Segment.ClusterID)).Inc()
	return result, nil
}

func (p *Pipeline) run(
	ctx context.Context,
	spec domain.ProductSpec,
	scenario domain.MarketScenario,
) (domain.InferenceResult, error) {
	// 1) scale
	x := ClusteringVector(spec, scenario)
	scaled, err := p.models.Scaler.Transform(x)
	if err != nil {
		return domain.InferenceResult{}, classify(err, domain.ErrConfiguration, "scale")
	}
	if len(scaled) != len(x) {
		return domain.InferenceResult{}, fmt.Errorf("%w: scaler returned %d features, want %d",
			domain.ErrConfiguration, len(scaled), len(x))
	}

	// 2) cluster
	clusterID, err := p.models.Clusterer.Predict(scaled)
	if err != nil {
		return domain.InferenceResult{}, classify(err, domain.ErrModel, "cluster")
	}

	// 3) label; an unknown id means model and table disagree
	label, err := domain.SegmentLabel(clusterID)
	if err != nil {
		return domain.InferenceResult{}, err
	}

	// 4) regress with the cluster from step 2
	raw, err := p.models.Regressor.Predict(RegressionRecord(spec, clusterID))
	if err != nil {
		return domain.InferenceResult{}, classify(err, domain.ErrModel, "regress")
	}

	// 5) clamp
	estimate, err := clampEstimate(raw)
	if err != nil {
		return domain.InferenceResult{}, err
	}

	result := domain.InferenceResult{
		Segment:    domain.ClusterAssignment{ClusterID: clusterID, ClusterLabel: label},
		Prediction: domain.Prediction{RepurchaseEstimate: estimate, Raw: raw},
	}

	// visualization only, never fails the request
	if p.models.Projector != nil {
		point, err := p.models.Projector.Project(scaled)
		if err != nil {
			logger.Warn("segment_map_projection_failed",
				"trace_id", TraceIDFromContext(ctx),
				"error", err,
			)
		} else {
			result.SegmentMap = point
		}
	}

	logger.Debug("stock_pipeline",
		"trace_id", TraceIDFromContext(ctx),
		"cluster_id", clusterID,
		"raw_prediction", raw,
		"repurchase_estimate", estimate,
	)

	return result, nil
}

// clampEstimate floors the raw regression output at zero and truncates it.
func clampEstimate(raw float64) (int64, error) {
	if math.IsNaN(raw) || math.IsInf(raw, 0) {
		return 0, fmt.Errorf("%w: regression output is not finite", domain.ErrModel)
	}
	if raw <= 0 {
		return 0, nil
	}
	if raw >= math.MaxInt64 {
		return 0, fmt.Errorf("%w: regression output %g overflows", domain.ErrModel, raw)
	}
	return int64(raw), nil
}

var errorKinds = []error{
	domain.ErrStartup,
	domain.ErrConfiguration,
	domain.ErrModel,
	domain.ErrData,
}

// classify keeps an already classified error and otherwise files it under
// the stage's kind.
func classify(err error, kind error, stage string) error {
	for _, k := range errorKinds {
		if errors.Is(err, k) {
			return fmt.Errorf("%s: %w", stage, err)
		}
	}
	return fmt.Errorf("%w: %s: %v", kind, stage, err)
}
