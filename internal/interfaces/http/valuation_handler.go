package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/application/dto"
	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/application/valuation"
)

// ValuationHandler requêtes HTTP de valorisation d'inventaire (protégé).
type ValuationHandler struct {
	uc *valuation.UseCase
}

// NewValuationHandler construit le handler.
func NewValuationHandler(uc *valuation.UseCase) *ValuationHandler {
	return &ValuationHandler{uc: uc}
}

// GetProductValuation godoc
// @Summary      Valorisation d'un produit (solde, CMUP, valeur, statut)
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID du produit"
// @Success      200  {object}  dto.ValuationSnapshotDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{id} [get]
func (h *ValuationHandler) GetProductValuation(c *fiber.Ctx) error {
	snap, err := h.uc.GetValuation(c.Context(), c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(snap)
}

// GetInventory godoc
// @Summary      Inventaire valorisé complet, trié par libellé
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/inventory [get]
func (h *ValuationHandler) GetInventory(c *fiber.Ctx) error {
	rows, err := h.uc.GetCurrentInventory(c.Context())
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(fiber.Map{
		"total":    len(rows),
		"products": rows,
	})
}

// GetTotalValue godoc
// @Summary      Valeur totale de l'inventaire avec ventilation par produit
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.TotalInventoryValueDTO
// @Router       /api/inventory/value [get]
func (h *ValuationHandler) GetTotalValue(c *fiber.Ctx) error {
	out, err := h.uc.GetTotalInventoryValue(c.Context())
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

// GetValueAtDate godoc
// @Summary      Valeur de l'inventaire reconstruite à une date passée
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        date  query  string  true  "Date (YYYY-MM-DD), fin de journée incluse"
// @Success      200   {object}  dto.InventoryValueAtDateDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/value/history [get]
func (h *ValuationHandler) GetValueAtDate(c *fiber.Ctx) error {
	raw := c.Query("date")
	if raw == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paramètre date requis (YYYY-MM-DD)"})
	}
	at, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "date invalide, format attendu YYYY-MM-DD"})
	}
	// Fin de journée: la valeur "au 30/06" inclut les mouvements du 30/06
	at = at.Add(24*time.Hour - time.Nanosecond)

	total, err := h.uc.GetInventoryValueAtDate(c.Context(), at)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(dto.InventoryValueAtDateDTO{Date: raw, Total: total})
}
