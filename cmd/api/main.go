package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/application/catalog"
	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/application/procurement"
	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/application/reorder"
	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/application/reporting"
	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/application/sales"
	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/application/stock"
	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/application/valuation"
	infraevent "github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/infrastructure/event"
	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/infrastructure/postgres"
	httpRouter "github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/interfaces/http"
	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/pkg/config"
	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("chargement de la configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("démarrage de l'application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("connexion à PostgreSQL")
	}
	defer pool.Close()

	productRepo := postgres.NewProductRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	receptionRepo := postgres.NewReceptionRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Bus d'événements in-process: alertes de stock bas vers les logs
	bus := infraevent.NewBus()
	bus.Subscribe(infraevent.NewLowStockLogger())

	ledgerUC := stock.NewLedgerUseCase(txRunner, productRepo, movementRepo, bus)
	valuationUC := valuation.NewUseCase(movementRepo, productRepo)
	estimator := reorder.NewEstimator(productRepo, saleRepo)
	reportingFacade := reporting.NewFacade(analyticsRepo, valuationUC)
	receptionUC := procurement.NewReceptionUseCase(receptionRepo, supplierRepo, ledgerUC)
	saleUC := sales.NewSaleUseCase(saleRepo, clientRepo, valuationUC, ledgerUC)
	productUC := catalog.NewProductUseCase(productRepo, categoryRepo)
	categoryUC := catalog.NewCategoryUseCase(categoryRepo)
	supplierUC := catalog.NewSupplierUseCase(supplierRepo)
	clientUC := catalog.NewClientUseCase(clientRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "GSFA API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Ledger:     ledgerUC,
		Valuation:  valuationUC,
		Estimator:  estimator,
		Reporting:  reportingFacade,
		Receptions: receptionUC,
		Sales:      saleUC,
		ProductUC:  productUC,
		CategoryUC: categoryUC,
		SupplierUC: supplierUC,
		ClientUC:   clientUC,
		JWTSecret:  cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("serveur HTTP arrêté")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("signal d'arrêt reçu, fermeture du serveur...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("arrêt du serveur")
	}

	log.Info().Msg("application arrêtée")
}
