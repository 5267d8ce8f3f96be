package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/application/catalog"
	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/application/procurement"
	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/application/reorder"
	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/application/reporting"
	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/application/sales"
	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/application/stock"
	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/application/valuation"
)

// RouterDeps dépendances du router.
type RouterDeps struct {
	Ledger     *stock.LedgerUseCase
	Valuation  *valuation.UseCase
	Estimator  *reorder.Estimator
	Reporting  *reporting.Facade
	Receptions *procurement.ReceptionUseCase
	Sales      *sales.SaleUseCase
	ProductUC  *catalog.ProductUseCase
	CategoryUC *catalog.CategoryUseCase
	SupplierUC *catalog.SupplierUseCase
	ClientUC   *catalog.ClientUseCase
	JWTSecret  string
}

// Router enregistre les routes de l'API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Routes protégées (Bearer token requis)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Registre des mouvements de stock (protégé)
	stockGroup := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.Ledger, deps.Estimator)
	stockGroup.Post("/entries", RequireRole("gestionnaire", "magasinier"), stockHandler.RecordEntry)
	stockGroup.Post("/exits", RequireRole("gestionnaire", "magasinier"), stockHandler.RecordExit)
	stockGroup.Get("/movements", stockHandler.ListMovements)
	stockGroup.Get("/products/:id/state", stockHandler.GetState)
	stockGroup.Get("/products/:id/reorder-point", stockHandler.GetReorderPoint)

	// Valorisation de l'inventaire (protégé)
	inventory := protected.Group("/inventory")
	valuationHandler := NewValuationHandler(deps.Valuation)
	reportingHandler := NewReportingHandler(deps.Reporting)
	inventory.Get("/", valuationHandler.GetInventory)
	inventory.Get("/value", valuationHandler.GetTotalValue)
	inventory.Get("/value/history", valuationHandler.GetValueAtDate)
	inventory.Get("/analytics", reportingHandler.GetInventoryAnalytics)
	inventory.Get("/:id", valuationHandler.GetProductValuation)

	// Rapports (protégé)
	reports := protected.Group("/reports")
	reports.Get("/margins", reportingHandler.GetMarginReport)
	reports.Get("/margins/categories", reportingHandler.GetMarginByCategory)
	reports.Get("/top-products", reportingHandler.GetTopProducts)
	reports.Get("/monthly-comparison", reportingHandler.GetMonthlyComparison)

	// Réceptions et ventes (protégé)
	flowHandler := NewFlowHandler(deps.Receptions, deps.Sales)
	receptions := protected.Group("/receptions")
	receptions.Post("/", flowHandler.CreateReception)
	receptions.Get("/", flowHandler.ListReceptions)
	receptions.Get("/:id", flowHandler.GetReception)
	receptions.Post("/:id/confirm", RequireRole("gestionnaire", "magasinier"), flowHandler.ConfirmReception)

	salesGroup := protected.Group("/sales")
	salesGroup.Post("/", flowHandler.CreateSale)
	salesGroup.Get("/", flowHandler.ListSales)
	salesGroup.Get("/:id", flowHandler.GetSale)
	salesGroup.Post("/:id/validate", RequireRole("gestionnaire", "vendeur"), flowHandler.ValidateSale)

	// Données de référence (protégé)
	catalogHandler := NewCatalogHandler(deps.ProductUC, deps.CategoryUC, deps.SupplierUC, deps.ClientUC)
	products := protected.Group("/products")
	products.Post("/", catalogHandler.CreateProduct)
	products.Get("/", catalogHandler.ListProducts)
	products.Get("/:id", catalogHandler.GetProduct)
	products.Put("/:id", catalogHandler.UpdateProduct)
	products.Delete("/:id", RequireRole("gestionnaire"), catalogHandler.DeactivateProduct)

	categories := protected.Group("/categories")
	categories.Post("/", catalogHandler.CreateCategory)
	categories.Get("/", catalogHandler.ListCategories)
	categories.Get("/:id", catalogHandler.GetCategory)

	suppliers := protected.Group("/suppliers")
	suppliers.Post("/", catalogHandler.CreateSupplier)
	suppliers.Get("/", catalogHandler.ListSuppliers)
	suppliers.Get("/:id", catalogHandler.GetSupplier)

	clients := protected.Group("/clients")
	clients.Post("/", catalogHandler.CreateClient)
	clients.Get("/", catalogHandler.ListClients)
	clients.Get("/:id", catalogHandler.GetClient)
}
