package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/application/catalog"
	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/application/dto"
)

// CatalogHandler requêtes HTTP des données de référence: produits, catégories,
// fournisseurs, clients (protégé).
type CatalogHandler struct {
	products   *catalog.ProductUseCase
	categories *catalog.CategoryUseCase
	suppliers  *catalog.SupplierUseCase
	clients    *catalog.ClientUseCase
}

// NewCatalogHandler construit le handler.
func NewCatalogHandler(
	products *catalog.ProductUseCase,
	categories *catalog.CategoryUseCase,
	suppliers *catalog.SupplierUseCase,
	clients *catalog.ClientUseCase,
) *CatalogHandler {
	return &CatalogHandler{
		products:   products,
		categories: categories,
		suppliers:  suppliers,
		clients:    clients,
	}
}

func parsePage(c *fiber.Ctx) dto.PageRequest {
	return dto.PageRequest{
		Limit:  c.QueryInt("limit", 0),
		Offset: c.QueryInt("offset", 0),
	}
}

// ── Produits ─────────────────────────────────────────────────────────────────

// CreateProduct godoc
// @Summary      Créer un produit
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Produit à créer"
// @Success      201   {object}  dto.ProductDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *CatalogHandler) CreateProduct(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return writeBadBody(c)
	}
	if err := validate.Struct(in); err != nil {
		return writeValidation(c, err)
	}
	p, err := h.products.Create(c.Context(), in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(p)
}

// GetProduct godoc
// @Summary      Détail d'un produit
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID du produit"
// @Success      200  {object}  dto.ProductDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *CatalogHandler) GetProduct(c *fiber.Ctx) error {
	p, err := h.products.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(p)
}

// UpdateProduct godoc
// @Summary      Modifier un produit (le CMUP n'est pas modifiable ici)
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID du produit"
// @Param        body  body  dto.UpdateProductRequest  true  "Champs à modifier"
// @Success      200   {object}  dto.ProductDTO
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *CatalogHandler) UpdateProduct(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return writeBadBody(c)
	}
	if err := validate.Struct(in); err != nil {
		return writeValidation(c, err)
	}
	p, err := h.products.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(p)
}

// ListProducts godoc
// @Summary      Lister les produits
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Taille de page"
// @Param        offset  query  int  false  "Décalage"
// @Success      200     {object}  map[string]interface{}
// @Router       /api/products [get]
func (h *CatalogHandler) ListProducts(c *fiber.Ctx) error {
	list, err := h.products.List(c.Context(), parsePage(c))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(fiber.Map{
		"total":    len(list),
		"products": list,
	})
}

// DeactivateProduct godoc
// @Summary      Désactiver un produit (désactivation logique, jamais de suppression)
// @Tags         catalog
// @Security     Bearer
// @Param        id   path  string  true  "ID du produit"
// @Success      204  "Produit désactivé"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [delete]
func (h *CatalogHandler) DeactivateProduct(c *fiber.Ctx) error {
	if err := h.products.Deactivate(c.Context(), c.Params("id")); err != nil {
		return writeDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ── Catégories ───────────────────────────────────────────────────────────────

// CreateCategory godoc
// @Summary      Créer une catégorie
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCategoryRequest  true  "Catégorie à créer"
// @Success      201   {object}  entity.Category
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/categories [post]
func (h *CatalogHandler) CreateCategory(c *fiber.Ctx) error {
	var in dto.CreateCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return writeBadBody(c)
	}
	if err := validate.Struct(in); err != nil {
		return writeValidation(c, err)
	}
	cat, err := h.categories.Create(c.Context(), in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(cat)
}

// GetCategory godoc
// @Summary      Détail d'une catégorie
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la catégorie"
// @Success      200  {object}  entity.Category
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [get]
func (h *CatalogHandler) GetCategory(c *fiber.Ctx) error {
	cat, err := h.categories.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(cat)
}

// ListCategories godoc
// @Summary      Lister les catégories
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/categories [get]
func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	list, err := h.categories.List(c.Context(), parsePage(c))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(fiber.Map{
		"total":      len(list),
		"categories": list,
	})
}

// ── Fournisseurs ─────────────────────────────────────────────────────────────

// CreateSupplier godoc
// @Summary      Créer un fournisseur
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PartyRequest  true  "Fournisseur à créer"
// @Success      201   {object}  entity.Supplier
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/suppliers [post]
func (h *CatalogHandler) CreateSupplier(c *fiber.Ctx) error {
	var in dto.PartyRequest
	if err := c.BodyParser(&in); err != nil {
		return writeBadBody(c)
	}
	if err := validate.Struct(in); err != nil {
		return writeValidation(c, err)
	}
	s, err := h.suppliers.Create(c.Context(), in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(s)
}

// GetSupplier godoc
// @Summary      Détail d'un fournisseur
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID du fournisseur"
// @Success      200  {object}  entity.Supplier
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/suppliers/{id} [get]
func (h *CatalogHandler) GetSupplier(c *fiber.Ctx) error {
	s, err := h.suppliers.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(s)
}

// ListSuppliers godoc
// @Summary      Lister les fournisseurs
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/suppliers [get]
func (h *CatalogHandler) ListSuppliers(c *fiber.Ctx) error {
	list, err := h.suppliers.List(c.Context(), parsePage(c))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(fiber.Map{
		"total":     len(list),
		"suppliers": list,
	})
}

// ── Clients ──────────────────────────────────────────────────────────────────

// CreateClient godoc
// @Summary      Créer un client
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PartyRequest  true  "Client à créer"
// @Success      201   {object}  entity.Client
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/clients [post]
func (h *CatalogHandler) CreateClient(c *fiber.Ctx) error {
	var in dto.PartyRequest
	if err := c.BodyParser(&in); err != nil {
		return writeBadBody(c)
	}
	if err := validate.Struct(in); err != nil {
		return writeValidation(c, err)
	}
	cl, err := h.clients.Create(c.Context(), in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(cl)
}

// GetClient godoc
// @Summary      Détail d'un client
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID du client"
// @Success      200  {object}  entity.Client
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/clients/{id} [get]
func (h *CatalogHandler) GetClient(c *fiber.Ctx) error {
	cl, err := h.clients.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(cl)
}

// ListClients godoc
// @Summary      Lister les clients
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/clients [get]
func (h *CatalogHandler) ListClients(c *fiber.Ctx) error {
	list, err := h.clients.List(c.Context(), parsePage(c))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(fiber.Map{
		"total":   len(list),
		"clients": list,
	})
}
