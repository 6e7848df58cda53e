package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"smartStock/domain"
)

var requiredColumns = []string{
	"product_name",
	"default_category",
	"price_clean",
	"average_rating",
	"cluster",
}

// ReferenceProductRepository serves the pre-segmented reference table from a
// CSV export. The file is read once at construction.
type ReferenceProductRepository struct {
	products []domain.ReferenceProduct
}

func NewReferenceProductRepository(path string) (*ReferenceProductRepository, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open reference table %s: %v", domain.ErrData, path, err)
	}
	defer f.Close()

	products, err := parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &ReferenceProductRepository{products: products}, nil
}

func parse(r io.Reader) ([]domain.ReferenceProduct, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: read header: %v", domain.ErrData, err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", domain.ErrData, col)
		}
	}

	var products []domain.ReferenceProduct
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", domain.ErrData, line, err)
		}

		row := row{rec: rec, index: index}
		p := domain.ReferenceProduct{
			ID:              uint64(len(products) + 1),
			ProductName:     row.str("product_name"),
			Brand:           row.str("brand"),
			DefaultCategory: row.str("default_category"),
			PriceClean:      row.float("price_clean"),
			AverageRating:   row.float("average_rating"),
			TotalReviews:    row.int("total_reviews"),
			RepurchaseCount: row.int("repurchase_count"),
			BeautyPoints:    row.int("beauty_points"),
			Cluster:         int(row.int("cluster")),
		}
		if row.err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", domain.ErrData, line, row.err)
		}
		products = append(products, p)
	}

	return products, nil
}

type row struct {
	rec   []string
	index map[string]int
	err   error
}

func (r *row) str(col string) string {
	i, ok := r.index[col]
	if !ok || i >= len(r.rec) {
		return ""
	}
	return strings.TrimSpace(r.rec[i])
}

func (r *row) float(col string) float64 {
	s := r.str(col)
	if s == "" || r.err != nil {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		r.err = fmt.Errorf("column %s: %w", col, err)
	}
	return v
}

// int accepts pandas-style float exports such as "3.0".
func (r *row) int(col string) int64 {
	s := r.str(col)
	if s == "" || r.err != nil {
		return 0
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		r.err = fmt.Errorf("column %s: %w", col, err)
		return 0
	}
	return int64(f)
}

func (r *ReferenceProductRepository) FindAll(ctx context.Context) ([]domain.ReferenceProduct, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	out := make([]domain.ReferenceProduct, len(r.products))
	copy(out, r.products)
	return out, nil
}

func (r *ReferenceProductRepository) FindByCluster(ctx context.Context, cluster int) ([]domain.ReferenceProduct, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	out := make([]domain.ReferenceProduct, 0)
	for _, p := range r.products {
		if p.Cluster == cluster {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *ReferenceProductRepository) DistinctCategories(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	seen := make(map[string]struct{})
	for _, p := range r.products {
		if p.DefaultCategory != "" {
			seen[p.DefaultCategory] = struct{}{}
		}
	}

	out := make([]string, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Strings(out)
	return out, nil
}
