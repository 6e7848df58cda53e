package rest

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"smartStock/domain"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStockService struct {
	err      error
	lastSpec domain.ProductSpec
	lastScen domain.MarketScenario
}

func (f *fakeStockService) Analyze(ctx context.Context, spec domain.ProductSpec, scenario domain.MarketScenario) (*domain.StockDecision, error) {
	f.lastSpec, f.lastScen = spec, scenario
	if f.err != nil {
		return nil, f.err
	}
	return &domain.StockDecision{
		ProductName: spec.Name,
		Category:    spec.Category,
		Segment:     domain.ClusterAssignment{ClusterID: 0, ClusterLabel: "Reliable Daily Drivers (Standard)"},
		Prediction:  domain.Prediction{RepurchaseEstimate: 1650, Raw: 1650},
		Recommendation: domain.Recommendation{
			Tier:           domain.TierNormalStock,
			SuggestedOrder: domain.OrderQuantity{Min: 1980, Max: 1980},
			Strategy:       "Safe Stock",
		},
	}, nil
}

func (f *fakeStockService) Segments(ctx context.Context) ([]domain.ClusterAssignment, error) {
	return domain.Segments(), nil
}

func (f *fakeStockService) Categories(ctx context.Context) ([]string, error) {
	return []string{"Serum", "Toner"}, nil
}

const validBody = `{"product_name":"Super Glow Serum Viral","category":"Serum","price":120000,"target_rating":4.7,"estimated_reviews":50,"estimated_repurchase_historical":2000,"beauty_points_earned":20}`

func postAnalyze(t *testing.T, h *StockHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/stock-decisions", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	require.NoError(t, h.Analyze(e.NewContext(req, rec)))
	return rec
}

func TestStockHandler_Analyze(t *testing.T) {
	svc := &fakeStockService{}
	rec := postAnalyze(t, NewStockHandler(svc), validBody)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"NORMAL_STOCK"`)
	assert.Contains(t, rec.Body.String(), `"repurchase_estimate":1650`)

	assert.Equal(t, "Super Glow Serum Viral", svc.lastSpec.Name)
	assert.InDelta(t, 120000, svc.lastSpec.Price, 1e-9)
	assert.InDelta(t, 4.7, svc.lastSpec.TargetRating, 1e-9)
	assert.Equal(t, domain.MarketScenario{EstimatedReviews: 50, EstimatedRepurchaseHistorical: 2000, BeautyPointsEarned: 20}, svc.lastScen)
}

func TestStockHandler_AnalyzeRejectsBadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"product_name":`},
		{"missing name", `{"category":"Serum","price":1,"target_rating":4}`},
		{"rating out of range", `{"product_name":"x","category":"Serum","price":1,"target_rating":6}`},
		{"negative price", `{"product_name":"x","category":"Serum","price":-5,"target_rating":4}`},
		{"negative reviews", `{"product_name":"x","category":"Serum","price":1,"target_rating":4,"estimated_reviews":-1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postAnalyze(t, NewStockHandler(&fakeStockService{}), tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestStockHandler_AnalyzeMapsErrors(t *testing.T) {
	tests := []struct {
		err  error
		want int
		kind string
	}{
		{fmt.Errorf("wrap: %w", domain.ErrInvalidInput), http.StatusBadRequest, "invalid_input"},
		{fmt.Errorf("wrap: %w", domain.ErrUnknownCategory), http.StatusUnprocessableEntity, "model"},
		{fmt.Errorf("wrap: %w", domain.ErrUnknownCluster), http.StatusInternalServerError, "data"},
		{fmt.Errorf("wrap: %w", domain.ErrConfiguration), http.StatusInternalServerError, "configuration"},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			rec := postAnalyze(t, NewStockHandler(&fakeStockService{err: tt.err}), validBody)
			assert.Equal(t, tt.want, rec.Code)
			assert.Contains(t, rec.Body.String(), `"kind":"`+tt.kind+`"`)
		})
	}
}

func TestStockHandler_SegmentsAndCategories(t *testing.T) {
	h := NewStockHandler(&fakeStockService{})
	e := echo.New()

	rec := httptest.NewRecorder()
	require.NoError(t, h.GetSegments(e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "The Legends (Viral)")

	rec = httptest.NewRecorder()
	require.NoError(t, h.GetCategories(e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Toner")
}

type fakeCatalogService struct {
	cluster *int
	err     error
}

func (f *fakeCatalogService) GetReferenceProducts(ctx context.Context, cluster *int) ([]domain.ReferenceProduct, error) {
	f.cluster = cluster
	if f.err != nil {
		return nil, f.err
	}
	return []domain.ReferenceProduct{{ProductName: "Niacinamide Serum", Cluster: 4}}, nil
}

func (f *fakeCatalogService) GetCategories(ctx context.Context) ([]string, error) {
	return []string{"Serum"}, f.err
}

func (f *fakeCatalogService) SegmentSummary(ctx context.Context) ([]domain.SegmentSummary, error) {
	return []domain.SegmentSummary{{ProductCount: 3}}, f.err
}

func TestCatalogHandler_GetReferenceProducts(t *testing.T) {
	svc := &fakeCatalogService{}
	h := NewCatalogHandler(svc)
	e := echo.New()

	rec := httptest.NewRecorder()
	require.NoError(t, h.GetReferenceProducts(e.NewContext(httptest.NewRequest(http.MethodGet, "/?cluster=4", nil), rec)))
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.cluster)
	assert.Equal(t, 4, *svc.cluster)
	assert.Contains(t, rec.Body.String(), "Niacinamide Serum")

	rec = httptest.NewRecorder()
	require.NoError(t, h.GetReferenceProducts(e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, svc.cluster)

	rec = httptest.NewRecorder()
	require.NoError(t, h.GetReferenceProducts(e.NewContext(httptest.NewRequest(http.MethodGet, "/?cluster=abc", nil), rec)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCatalogHandler_Errors(t *testing.T) {
	h := NewCatalogHandler(&fakeCatalogService{err: fmt.Errorf("wrap: %w", domain.ErrData)})
	e := echo.New()

	rec := httptest.NewRecorder()
	require.NoError(t, h.GetSummary(e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = httptest.NewRecorder()
	require.NoError(t, h.GetCategories(e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
