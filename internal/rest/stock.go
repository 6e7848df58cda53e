package rest

import (
	"context"
	"net/http"
	"time"

	"smartStock/business/inference"
	"smartStock/domain"
	"smartStock/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	StockHandler struct {
		validate     *validator.Validate
		stockService StockService
		timeout      time.Duration
	}

	StockService interface {
		Analyze(ctx context.Context, spec domain.ProductSpec, scenario domain.MarketScenario) (*domain.StockDecision, error)
		Segments(ctx context.Context) ([]domain.ClusterAssignment, error)
		Categories(ctx context.Context) ([]string, error)
	}

	AnalyzeRequest struct {
		ProductName                   string  `json:"product_name" validate:"required,max=200"`
		Category                      string  `json:"category" validate:"required"`
		Price                         float64 `json:"price" validate:"required,gt=0"`
		TargetRating                  float64 `json:"target_rating" validate:"required,gte=1,lte=5"`
		EstimatedReviews              int64   `json:"estimated_reviews" validate:"gte=0"`
		EstimatedRepurchaseHistorical int64   `json:"estimated_repurchase_historical" validate:"gte=0"`
		BeautyPointsEarned            int64   `json:"beauty_points_earned" validate:"gte=0"`
	}
)

func NewStockHandler(stockService StockService) *StockHandler {
	return &StockHandler{
		validate:     validator.New(),
		stockService: stockService,
		timeout:      10 * time.Second,
	}
}

func (h *StockHandler) Analyze(c echo.Context) error {
	var request AnalyzeRequest

	if err := c.Bind(&request); err != nil {
		logger.Warn("Invalid request body", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid request body", Kind: "invalid_input"})
	}

	if err := h.validate.Struct(&request); err != nil {
		logger.Warn("Failed to validate stock decision request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error(), Kind: "invalid_input"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	result, err := h.stockService.Analyze(ctx,
		domain.ProductSpec{
			Name:         request.ProductName,
			Category:     request.Category,
			Price:        request.Price,
			TargetRating: request.TargetRating,
		},
		domain.MarketScenario{
			EstimatedReviews:              request.EstimatedReviews,
			EstimatedRepurchaseHistorical: request.EstimatedRepurchaseHistorical,
			BeautyPointsEarned:            request.BeautyPointsEarned,
		},
	)
	if err != nil {
		status := statusFromError(err)
		if status >= http.StatusInternalServerError {
			logger.Error("Failed to analyze product", "trace_id", inference.TraceIDFromContext(ctx), "error", err)
		}
		return c.JSON(status, errorResponse(err))
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(result))
}

func (h *StockHandler) GetSegments(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	segments, err := h.stockService.Segments(ctx)
	if err != nil {
		return c.JSON(statusFromError(err), errorResponse(err))
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(segments))
}

func (h *StockHandler) GetCategories(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	categories, err := h.stockService.Categories(ctx)
	if err != nil {
		return c.JSON(statusFromError(err), errorResponse(err))
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(categories))
}
