package postgres

import (
	"context"
	"fmt"

	"smartStock/domain"

	"gorm.io/gorm"
)

// ReferenceProductRepository reads the segmented_products table. It never writes.
type ReferenceProductRepository struct {
	DB *gorm.DB
}

func NewReferenceProductRepository(db *gorm.DB) *ReferenceProductRepository {
	return &ReferenceProductRepository{
		DB: db,
	}
}

func (r *ReferenceProductRepository) FindAll(ctx context.Context) ([]domain.ReferenceProduct, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var products []domain.ReferenceProduct
	err := r.DB.WithContext(ctx).Order("id ASC").Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("%w: failed to find reference products: %v", domain.ErrData, err)
	}

	return products, nil
}

func (r *ReferenceProductRepository) FindByCluster(ctx context.Context, cluster int) ([]domain.ReferenceProduct, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var products []domain.ReferenceProduct
	err := r.DB.WithContext(ctx).
		Where("cluster = ?", cluster).
		Order("id ASC").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("%w: failed to find reference products by cluster: %v", domain.ErrData, err)
	}

	return products, nil
}

func (r *ReferenceProductRepository) DistinctCategories(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var categories []string
	err := r.DB.WithContext(ctx).
		Model(&domain.ReferenceProduct{}).
		Distinct("default_category").
		Where("default_category <> ''").
		Order("default_category ASC").
		Pluck("default_category", &categories).Error
	if err != nil {
		return nil, fmt.Errorf("%w: failed to find reference categories: %v", domain.ErrData, err)
	}

	return categories, nil
}
