package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/application/dto"
	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/application/procurement"
	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/application/sales"
	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/domain/entity"
)

// FlowHandler requêtes HTTP des flux d'approvisionnement et de vente.
type FlowHandler struct {
	receptions *procurement.ReceptionUseCase
	sales      *sales.SaleUseCase
}

// NewFlowHandler construit le handler.
func NewFlowHandler(receptions *procurement.ReceptionUseCase, salesUC *sales.SaleUseCase) *FlowHandler {
	return &FlowHandler{receptions: receptions, sales: salesUC}
}

// ── Réceptions ───────────────────────────────────────────────────────────────

// CreateReception godoc
// @Summary      Créer une réception en attente (aucune écriture au grand livre)
// @Tags         receptions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateReceptionRequest  true  "Réception à créer"
// @Success      201   {object}  entity.Reception
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/receptions [post]
func (h *FlowHandler) CreateReception(c *fiber.Ctx) error {
	var in dto.CreateReceptionRequest
	if err := c.BodyParser(&in); err != nil {
		return writeBadBody(c)
	}
	if err := validate.Struct(in); err != nil {
		return writeValidation(c, err)
	}
	r, err := h.receptions.Create(c.Context(), in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(r)
}

// ConfirmReception godoc
// @Summary      Confirmer une réception: entrées en stock et recalcul du CMUP (idempotent)
// @Tags         receptions
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la réception"
// @Success      200  {object}  dto.FlowStatusDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/receptions/{id}/confirm [post]
func (h *FlowHandler) ConfirmReception(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.receptions.Confirm(c.Context(), id, GetUserID(c)); err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(dto.FlowStatusDTO{ID: id, Status: entity.ReceptionStatusConfirmed})
}

// GetReception godoc
// @Summary      Détail d'une réception avec ses lignes
// @Tags         receptions
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la réception"
// @Success      200  {object}  entity.Reception
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/receptions/{id} [get]
func (h *FlowHandler) GetReception(c *fiber.Ctx) error {
	r, err := h.receptions.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(r)
}

// ListReceptions godoc
// @Summary      Lister les réceptions
// @Tags         receptions
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/receptions [get]
func (h *FlowHandler) ListReceptions(c *fiber.Ctx) error {
	list, err := h.receptions.List(c.Context(), parsePage(c))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(fiber.Map{
		"total":      len(list),
		"receptions": list,
	})
}

// ── Ventes ───────────────────────────────────────────────────────────────────

// CreateSale godoc
// @Summary      Créer une vente en brouillon (le stock n'est pas touché)
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "Vente à créer"
// @Success      201   {object}  entity.Sale
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *FlowHandler) CreateSale(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return writeBadBody(c)
	}
	if err := validate.Struct(in); err != nil {
		return writeValidation(c, err)
	}
	s, err := h.sales.Create(c.Context(), in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(s)
}

// ValidateSale godoc
// @Summary      Valider une vente: sorties au CMUP courant, refusée si stock insuffisant
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la vente"
// @Success      200  {object}  dto.FlowStatusDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/validate [post]
func (h *FlowHandler) ValidateSale(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.sales.Validate(c.Context(), id, GetUserID(c)); err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(dto.FlowStatusDTO{ID: id, Status: entity.SaleStatusValidated})
}

// GetSale godoc
// @Summary      Détail d'une vente avec ses lignes
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la vente"
// @Success      200  {object}  entity.Sale
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *FlowHandler) GetSale(c *fiber.Ctx) error {
	s, err := h.sales.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(s)
}

// ListSales godoc
// @Summary      Lister les ventes
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/sales [get]
func (h *FlowHandler) ListSales(c *fiber.Ctx) error {
	list, err := h.sales.List(c.Context(), parsePage(c))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(fiber.Map{
		"total": len(list),
		"sales": list,
	})
}
