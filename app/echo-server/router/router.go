package router

import (
	"smartStock/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupStockRoutes(api *echo.Group, handler *rest.StockHandler, authRequired echo.MiddlewareFunc) {
	api.POST("/stock-decisions", handler.Analyze, authRequired)
	api.GET("/segments", handler.GetSegments, authRequired)
	api.GET("/categories", handler.GetCategories, authRequired)
}

func SetupCatalogRoutes(api *echo.Group, handler *rest.CatalogHandler, authRequired echo.MiddlewareFunc) {
	reference := api.Group("/reference-products", authRequired)

	reference.GET("", handler.GetReferenceProducts)
	reference.GET("/categories", handler.GetCategories)
	reference.GET("/summary", handler.GetSummary)
}
