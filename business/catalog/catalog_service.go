package catalog

import (
	"context"
	"fmt"

	"smartStock/domain"
	"smartStock/pkg/logger"
)

// ReferenceProductRepository contract interface
type ReferenceProductRepository interface {
	FindAll(ctx context.Context) ([]domain.ReferenceProduct, error)
	FindByCluster(ctx context.Context, cluster int) ([]domain.ReferenceProduct, error)
	DistinctCategories(ctx context.Context) ([]string, error)
}

type catalogService struct {
	referenceRepo ReferenceProductRepository
}

func NewCatalogService(referenceRepo ReferenceProductRepository) *catalogService {
	return &catalogService{
		referenceRepo: referenceRepo,
	}
}

// GetReferenceProducts lists the pre-segmented reference table, optionally
// restricted to one cluster.
func (s *catalogService) GetReferenceProducts(ctx context.Context, cluster *int) ([]domain.ReferenceProduct, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get reference products")
		return nil, fmt.Errorf("context error: %w", err)
	}

	if cluster == nil {
		products, err := s.referenceRepo.FindAll(ctx)
		if err != nil {
			logger.Error("failed to find reference products", "error", err)
			return nil, err
		}
		return products, nil
	}

	if _, err := domain.SegmentLabel(*cluster); err != nil {
		return nil, fmt.Errorf("%w: cluster %d", domain.ErrInvalidInput, *cluster)
	}

	products, err := s.referenceRepo.FindByCluster(ctx, *cluster)
	if err != nil {
		logger.Error("failed to find reference products by cluster", "cluster", *cluster, "error", err)
		return nil, err
	}

	return products, nil
}

func (s *catalogService) GetCategories(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get reference categories")
		return nil, fmt.Errorf("context error: %w", err)
	}

	categories, err := s.referenceRepo.DistinctCategories(ctx)
	if err != nil {
		logger.Error("failed to find reference categories", "error", err)
		return nil, err
	}

	return categories, nil
}

// SegmentSummary returns one row per segment, including segments with no
// reference products.
func (s *catalogService) SegmentSummary(ctx context.Context) ([]domain.SegmentSummary, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when summarizing segments")
		return nil, fmt.Errorf("context error: %w", err)
	}

	products, err := s.referenceRepo.FindAll(ctx)
	if err != nil {
		logger.Error("failed to find reference products", "error", err)
		return nil, err
	}

	summary := make([]domain.SegmentSummary, 0, domain.NumSegments)
	for _, seg := range domain.Segments() {
		summary = append(summary, domain.SegmentSummary{ClusterAssignment: seg})
	}

	skipped := 0
	for _, p := range products {
		if p.Cluster < 0 || p.Cluster >= domain.NumSegments {
			skipped++
			continue
		}
		row := &summary[p.Cluster]
		row.ProductCount++
		row.AvgPrice += p.PriceClean
		row.AvgRating += p.AverageRating
		row.AvgRepurchase += float64(p.RepurchaseCount)
	}

	for i := range summary {
		if n := float64(summary[i].ProductCount); n > 0 {
			summary[i].AvgPrice /= n
			summary[i].AvgRating /= n
			summary[i].AvgRepurchase /= n
		}
	}

	if skipped > 0 {
		logger.Warn("reference products outside the segment table", "count", skipped)
	}

	return summary, nil
}
