package rest

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"smartStock/domain"
	"smartStock/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

type CatalogService interface {
	GetReferenceProducts(ctx context.Context, cluster *int) ([]domain.ReferenceProduct, error)
	GetCategories(ctx context.Context) ([]string, error)
	SegmentSummary(ctx context.Context) ([]domain.SegmentSummary, error)
}

type CatalogHandler struct {
	catalogService CatalogService
	timeout        time.Duration
}

func NewCatalogHandler(catalogService CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		timeout:        10 * time.Second,
	}
}

func (h *CatalogHandler) GetReferenceProducts(c echo.Context) error {
	var cluster *int
	if raw := c.QueryParam("cluster"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid cluster", Kind: "invalid_input"})
		}
		cluster = &id
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	products, err := h.catalogService.GetReferenceProducts(ctx, cluster)
	if err != nil {
		status := statusFromError(err)
		if status >= http.StatusInternalServerError {
			logger.Error("Failed to find reference products", "error", err)
		}
		return c.JSON(status, errorResponse(err))
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(products))
}

func (h *CatalogHandler) GetCategories(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	categories, err := h.catalogService.GetCategories(ctx)
	if err != nil {
		status := statusFromError(err)
		if status >= http.StatusInternalServerError {
			logger.Error("Failed to find reference categories", "error", err)
		}
		return c.JSON(status, errorResponse(err))
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(categories))
}

func (h *CatalogHandler) GetSummary(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	summary, err := h.catalogService.SegmentSummary(ctx)
	if err != nil {
		status := statusFromError(err)
		if status >= http.StatusInternalServerError {
			logger.Error("Failed to summarize segments", "error", err)
		}
		return c.JSON(status, errorResponse(err))
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(summary))
}
