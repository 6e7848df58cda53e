package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"smartStock/app/echo-server/metrics"
	"smartStock/app/echo-server/router"
	"smartStock/business/catalog"
	"smartStock/business/inference"
	"smartStock/business/stock"
	"smartStock/internal/artifact"
	"smartStock/internal/middleware"
	"smartStock/internal/repository/csvfile"
	psqlRepo "smartStock/internal/repository/postgres"
	"smartStock/internal/rest"
	"smartStock/pkg/config"
	"smartStock/pkg/database"
	"smartStock/pkg/logger"
	pkgmetrics "smartStock/pkg/metrics"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	defer logger.Sync()
	logger.Info("Starting Smart Stock", "version", cfg.App.Version, "artifact_dir", cfg.Artifacts.Dir)

	metrics.Init()
	pkgmetrics.Init()

	// Models load once before serving; a missing artifact stops the process.
	bundle, err := artifact.NewStore(cfg.Artifacts.Dir).Get()
	if err != nil {
		logger.Fatal("Failed to load model artifacts", "error", err)
	}
	pkgmetrics.SetArtifactVersion(bundle.Version())
	logger.Info("Model artifacts loaded",
		"version", bundle.Version(),
		"clusters", bundle.Clustering.NumClusters(),
		"projector", bundle.Projector != nil,
	)

	pipeline := inference.NewPipeline(modelsFromBundle(bundle))

	// Init service
	stockService := stock.NewStockService(pipeline, bundle.Regression)

	// Init handler
	stockHandler := rest.NewStockHandler(stockService)

	var catalogHandler *rest.CatalogHandler
	referenceRepo, err := newReferenceRepository(cfg)
	if err != nil {
		logger.Fatal("Failed to open reference catalog", "source", cfg.Reference.Source, "error", err)
	}
	if referenceRepo != nil {
		if all, err := referenceRepo.FindAll(context.Background()); err == nil {
			pkgmetrics.ReferenceProducts.Set(float64(len(all)))
			logger.Info("Reference catalog ready", "source", cfg.Reference.Source, "products", len(all))
		}
		catalogHandler = rest.NewCatalogHandler(catalog.NewCatalogService(referenceRepo))
	}

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(middleware.TraceID())
	e.Use(metrics.Middleware())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, echo.HeaderXRequestID},
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"status":           "ok",
			"artifact_version": bundle.Version(),
		})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Auth middleware, disabled when JWT_SECRET is empty
	authRequired := middleware.AuthMiddleware(cfg.JWT.SecretKey)
	if cfg.JWT.SecretKey == "" {
		logger.Warn("JWT_SECRET not set, API is unauthenticated")
	}

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupStockRoutes(api, stockHandler, authRequired)
	if catalogHandler != nil {
		router.SetupCatalogRoutes(api, catalogHandler, authRequired)
	}

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}

func modelsFromBundle(b *artifact.Bundle) inference.Models {
	m := inference.Models{
		Scaler:    b.Scaler,
		Clusterer: b.Clustering,
		Regressor: b.Regression,
		Version:   b.Version(),
	}
	// a nil *PCA must stay a nil interface
	if b.Projector != nil {
		m.Projector = b.Projector
	}
	return m
}

func newReferenceRepository(cfg *config.Config) (catalog.ReferenceProductRepository, error) {
	switch cfg.Reference.Source {
	case config.ReferenceSourcePostgres:
		db, err := database.InitPostgres(cfg)
		if err != nil {
			return nil, err
		}
		logger.Info("Database connected successfully")
		return psqlRepo.NewReferenceProductRepository(db), nil
	case config.ReferenceSourceCSV:
		repo, err := csvfile.NewReferenceProductRepository(cfg.Reference.CSVPath)
		if err != nil {
			return nil, err
		}
		return repo, nil
	default:
		return nil, nil
	}
}
