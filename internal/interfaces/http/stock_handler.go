package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/application/dto"
	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/application/reorder"
	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/application/stock"
	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/domain/entity"
)

// StockHandler requêtes HTTP du grand livre de stock (protégé).
type StockHandler struct {
	ledger    *stock.LedgerUseCase
	estimator *reorder.Estimator
}

// NewStockHandler construit le handler.
func NewStockHandler(ledger *stock.LedgerUseCase, estimator *reorder.Estimator) *StockHandler {
	return &StockHandler{ledger: ledger, estimator: estimator}
}

// RecordEntry godoc
// @Summary      Enregistrer une entrée de stock
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordEntryRequest  true  "Entrée à enregistrer"
// @Success      201   {object}  dto.MovementDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/entries [post]
func (h *StockHandler) RecordEntry(c *fiber.Ctx) error {
	var in dto.RecordEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return writeBadBody(c)
	}
	if err := validate.Struct(in); err != nil {
		return writeValidation(c, err)
	}
	input := stock.EntryInput{
		ProductID:  in.ProductID,
		Quantity:   in.Quantity,
		UnitCost:   in.UnitCost,
		SupplierID: in.SupplierID,
		Reference:  in.Reference,
		CreatedBy:  GetUserID(c),
	}
	if in.At != nil {
		input.At = *in.At
	}
	mov, err := h.ledger.RecordEntry(c.Context(), input)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(movementToDTO(mov))
}

// RecordExit godoc
// @Summary      Enregistrer une sortie de stock au CMUP courant
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordExitRequest  true  "Sortie à enregistrer"
// @Success      201   {object}  dto.MovementDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/exits [post]
func (h *StockHandler) RecordExit(c *fiber.Ctx) error {
	var in dto.RecordExitRequest
	if err := c.BodyParser(&in); err != nil {
		return writeBadBody(c)
	}
	if err := validate.Struct(in); err != nil {
		return writeValidation(c, err)
	}
	input := stock.ExitInput{
		ProductID:     in.ProductID,
		Quantity:      in.Quantity,
		ClientID:      in.ClientID,
		Reference:     in.Reference,
		AllowNegative: in.AllowNegative,
		CreatedBy:     GetUserID(c),
	}
	if in.At != nil {
		input.At = *in.At
	}
	mov, err := h.ledger.RecordExit(c.Context(), input)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(movementToDTO(mov))
}

// ListMovements godoc
// @Summary      Historique chronologique des mouvements d'un produit
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  true   "ID du produit"
// @Param        from        query  string  false  "Date de début (RFC 3339)"
// @Param        to          query  string  false  "Date de fin (RFC 3339)"
// @Param        limit       query  int     false  "Taille de page"
// @Param        offset      query  int     false  "Décalage"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/movements [get]
func (h *StockHandler) ListMovements(c *fiber.Ctx) error {
	var in dto.ListMovementsRequest
	if err := c.QueryParser(&in); err != nil {
		return writeBadBody(c)
	}
	if err := validate.Struct(in); err != nil {
		return writeValidation(c, err)
	}
	movements, err := h.ledger.ListMovements(c.Context(), in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(fiber.Map{
		"total":     len(movements),
		"movements": movements,
	})
}

// GetState godoc
// @Summary      Solde courant et CMUP d'un produit
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID du produit"
// @Success      200  {object}  dto.StockStateDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/products/{id}/state [get]
func (h *StockHandler) GetState(c *fiber.Ctx) error {
	state, err := h.ledger.GetCurrentState(c.Context(), c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(state)
}

// GetReorderPoint godoc
// @Summary      Point de commande estimé sur la vélocité des ventes
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID du produit"
// @Success      200  {object}  dto.ReorderPointDTO
// @Router       /api/stock/products/{id}/reorder-point [get]
func (h *StockHandler) GetReorderPoint(c *fiber.Ctx) error {
	return c.JSON(h.estimator.EstimateROP(c.Context(), c.Params("id")))
}

func movementToDTO(m *entity.StockMovement) dto.MovementDTO {
	return dto.MovementDTO{
		ID:                   m.ID,
		ProductID:            m.ProductID,
		CategoryID:           m.CategoryID,
		Type:                 m.Type,
		QuantityIn:           m.QuantityIn,
		QuantityOut:          m.QuantityOut,
		QuantityOnHandAfter:  m.QuantityOnHandAfter,
		UnitCostIn:           m.UnitCostIn,
		WeightedAvgCostAfter: m.WeightedAvgCostAfter,
		SupplierID:           m.SupplierID,
		ClientID:             m.ClientID,
		Reference:            m.Reference,
		At:                   m.At,
	}
}
