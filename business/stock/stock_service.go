package stock

import (
	"context"
	"fmt"
	"math"
	"strings"

	"smartStock/business/decision"
	"smartStock/business/inference"
	"smartStock/domain"
	"smartStock/pkg/logger"

	"github.com/prometheus/client_golang/prometheus"
)

var RecommendationsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "stock_recommendations_total",
		Help: "Count of stock recommendations by tier.",
	},
	[]string{"tier"},
)

func init() {
	prometheus.MustRegister(RecommendationsTotal)
}

// Pipeline is the two-stage inference run.
type Pipeline interface {
	Run(ctx context.Context, spec domain.ProductSpec, scenario domain.MarketScenario) (domain.InferenceResult, error)
	ArtifactVersion() string
}

// CategoryVocabulary lists the categories the regression encoder was fit on.
type CategoryVocabulary interface {
	Categories() []string
}

type stockService struct {
	pipeline   Pipeline
	vocabulary CategoryVocabulary
}

func NewStockService(pipeline Pipeline, vocabulary CategoryVocabulary) *stockService {
	return &stockService{
		pipeline:   pipeline,
		vocabulary: vocabulary,
	}
}

// Analyze segments the product, predicts repurchase demand and recommends an
// initial stock order.
func (s *stockService) Analyze(
	ctx context.Context,
	spec domain.ProductSpec,
	scenario domain.MarketScenario,
) (*domain.StockDecision, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	spec.Name = strings.TrimSpace(spec.Name)
	spec.Category = strings.TrimSpace(spec.Category)

	if err := validateInput(spec, scenario); err != nil {
		logger.Info("rejected stock analysis input", "trace_id", inference.TraceIDFromContext(ctx), "error", err)
		return nil, err
	}

	result, err := s.pipeline.Run(ctx, spec, scenario)
	if err != nil {
		return nil, fmt.Errorf("analyze %q: %w", spec.Name, err)
	}

	rec := decision.Decide(result.Prediction.RepurchaseEstimate)
	RecommendationsTotal.WithLabelValues(rec.Tier.String()).Inc()

	out := &domain.StockDecision{
		TraceID:         inference.TraceIDFromContext(ctx),
		ArtifactVersion: s.pipeline.ArtifactVersion(),
		ProductName:     spec.Name,
		Category:        spec.Category,
		Segment:         result.Segment,
		Prediction:      result.Prediction,
		Recommendation:  rec,
		SegmentMap:      result.SegmentMap,
	}

	logger.Info("stock_decision",
		"trace_id", out.TraceID,
		"product_name", out.ProductName,
		"category", out.Category,
		"cluster_id", out.Segment.ClusterID,
		"repurchase_estimate", out.Prediction.RepurchaseEstimate,
		"tier", rec.Tier,
		"suggested_min", rec.SuggestedOrder.Min,
		"suggested_max", rec.SuggestedOrder.Max,
	)

	return out, nil
}

func (s *stockService) Segments(ctx context.Context) ([]domain.ClusterAssignment, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	return domain.Segments(), nil
}

func (s *stockService) Categories(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if s.vocabulary == nil {
		return []string{}, nil
	}
	return s.vocabulary.Categories(), nil
}

// validateInput enforces the bounds the models themselves do not check.
func validateInput(spec domain.ProductSpec, scenario domain.MarketScenario) error {
	switch {
	case spec.Name == "":
		return fmt.Errorf("%w: product name is required", domain.ErrInvalidInput)
	case spec.Category == "":
		return fmt.Errorf("%w: category is required", domain.ErrInvalidInput)
	case !isFinite(spec.Price) || spec.Price <= 0:
		return fmt.Errorf("%w: price must be a positive number", domain.ErrInvalidInput)
	case !isFinite(spec.TargetRating) || spec.TargetRating < 1 || spec.TargetRating > 5:
		return fmt.Errorf("%w: target rating must be between 1.0 and 5.0", domain.ErrInvalidInput)
	case scenario.EstimatedReviews < 0:
		return fmt.Errorf("%w: estimated reviews cannot be negative", domain.ErrInvalidInput)
	case scenario.EstimatedRepurchaseHistorical < 0:
		return fmt.Errorf("%w: estimated historical repurchase cannot be negative", domain.ErrInvalidInput)
	case scenario.BeautyPointsEarned < 0:
		return fmt.Errorf("%w: beauty points cannot be negative", domain.ErrInvalidInput)
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
