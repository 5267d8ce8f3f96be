package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/application/dto"
	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/application/reporting"
)

// ReportingHandler requêtes HTTP de la façade de reporting (protégé).
type ReportingHandler struct {
	facade *reporting.Facade
}

// NewReportingHandler construit le handler.
func NewReportingHandler(facade *reporting.Facade) *ReportingHandler {
	return &ReportingHandler{facade: facade}
}

// parsePeriod lit from/to (YYYY-MM-DD); défaut: 30 derniers jours. La borne
// `to` est inclusive (fin de journée).
func parsePeriod(c *fiber.Ctx) (from, to time.Time, err error) {
	now := time.Now()
	from = now.AddDate(0, 0, -30)
	to = now
	if raw := c.Query("from"); raw != "" {
		from, err = time.Parse("2006-01-02", raw)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	if raw := c.Query("to"); raw != "" {
		to, err = time.Parse("2006-01-02", raw)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		to = to.Add(24*time.Hour - time.Nanosecond)
	}
	return from, to, nil
}

func writeBadPeriod(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from/to invalides, format attendu YYYY-MM-DD"})
}

// GetMarginReport godoc
// @Summary      Marge brute de la période (revenu, coût des ventes au CMUP)
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "Date de début (YYYY-MM-DD), défaut: 30 derniers jours"
// @Param        to    query  string  false  "Date de fin (YYYY-MM-DD)"
// @Success      200   {object}  dto.MarginReportDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/reports/margins [get]
func (h *ReportingHandler) GetMarginReport(c *fiber.Ctx) error {
	from, to, err := parsePeriod(c)
	if err != nil {
		return writeBadPeriod(c)
	}
	report, err := h.facade.GetMarginReport(c.Context(), from, to)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(report)
}

// GetMarginByCategory godoc
// @Summary      Marge ventilée par catégorie
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "Date de début (YYYY-MM-DD)"
// @Param        to    query  string  false  "Date de fin (YYYY-MM-DD)"
// @Success      200   {object}  map[string]interface{}
// @Router       /api/reports/margins/categories [get]
func (h *ReportingHandler) GetMarginByCategory(c *fiber.Ctx) error {
	from, to, err := parsePeriod(c)
	if err != nil {
		return writeBadPeriod(c)
	}
	rows, err := h.facade.GetMarginByCategory(c.Context(), from, to)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(fiber.Map{
		"total":      len(rows),
		"categories": rows,
	})
}

// GetTopProducts godoc
// @Summary      Produits les plus profitables de la période
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Taille du classement (défaut 10)"
// @Success      200    {object}  map[string]interface{}
// @Router       /api/reports/top-products [get]
func (h *ReportingHandler) GetTopProducts(c *fiber.Ctx) error {
	from, to, err := parsePeriod(c)
	if err != nil {
		return writeBadPeriod(c)
	}
	rows, err := h.facade.GetTopProfitProducts(c.Context(), from, to, c.QueryInt("limit", 10))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(fiber.Map{
		"total":    len(rows),
		"products": rows,
	})
}

// GetInventoryAnalytics godoc
// @Summary      Série mensuelle achats/ventes et répartition par catégorie
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "Date de début (YYYY-MM-DD)"
// @Param        to    query  string  false  "Date de fin (YYYY-MM-DD)"
// @Success      200   {object}  dto.InventoryAnalyticsDTO
// @Router       /api/inventory/analytics [get]
func (h *ReportingHandler) GetInventoryAnalytics(c *fiber.Ctx) error {
	from, to, err := parsePeriod(c)
	if err != nil {
		return writeBadPeriod(c)
	}
	out, err := h.facade.GetInventoryAnalytics(c.Context(), from, to)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

// GetMonthlyComparison godoc
// @Summary      Comparaison mois courant vs mois précédent
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MonthlyComparisonDTO
// @Router       /api/reports/monthly-comparison [get]
func (h *ReportingHandler) GetMonthlyComparison(c *fiber.Ctx) error {
	out, err := h.facade.GetMonthlyComparison(c.Context())
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}
