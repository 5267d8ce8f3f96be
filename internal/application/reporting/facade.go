// Package reporting compose le grand livre, les ventes et les réceptions pour
// produire marges, COGS, séries mensuelles et comparaisons mois à mois.
package reporting

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/application/dto"
	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/application/valuation"
	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/domain/repository"
)

var hundred = decimal.NewFromInt(100)

// Facade façade de reporting, read-only sur le grand livre et les flux.
type Facade struct {
	analyticsRepo repository.AnalyticsRepository
	valuationUC   *valuation.UseCase
	now           func() time.Time
}

// NewFacade construit la façade.
func NewFacade(analyticsRepo repository.AnalyticsRepository, valuationUC *valuation.UseCase) *Facade {
	return &Facade{analyticsRepo: analyticsRepo, valuationUC: valuationUC, now: time.Now}
}

// WithClock fixe l'horloge (tests).
func (f *Facade) WithClock(now func() time.Time) *Facade {
	f.now = now
	return f
}

// GetMarginReport renvoie la marge brute d'une période: ventes - réceptions.
// Montants arrondis à l'unité, pourcentage à 1 décimale.
func (f *Facade) GetMarginReport(ctx context.Context, from, to time.Time) (dto.MarginReportDTO, error) {
	sales, err := f.analyticsRepo.GetSalesTotal(ctx, from, to)
	if err != nil {
		return dto.MarginReportDTO{}, err
	}
	receipts, err := f.analyticsRepo.GetReceiptsTotal(ctx, from, to)
	if err != nil {
		return dto.MarginReportDTO{}, err
	}
	margin := sales.Sub(receipts)
	pct := decimal.Zero
	if sales.GreaterThan(decimal.Zero) {
		pct = margin.Div(sales).Mul(hundred).Round(1)
	}
	return dto.MarginReportDTO{
		SalesTotal:    sales.Round(0),
		ReceiptsTotal: receipts.Round(0),
		GrossMargin:   margin.Round(0),
		MarginPct:     pct,
	}, nil
}

// GetMarginByCategory renvoie revenu, coût, profit et marge% par catégorie.
// Une ligne malformée est ignorée avec un warning: un produit corrompu ne doit
// pas faire échouer tout le rapport.
func (f *Facade) GetMarginByCategory(ctx context.Context, from, to time.Time) ([]dto.CategoryMarginDTO, error) {
	rows, err := f.analyticsRepo.GetMarginByCategory(ctx, from, to)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryMarginDTO, 0, len(rows))
	for _, r := range rows {
		if r.CategoryID == "" {
			log.Warn().Str("category_name", r.CategoryName).
				Msg("marge par catégorie: ligne sans catégorie ignorée")
			continue
		}
		pct := decimal.Zero
		if r.Revenue.GreaterThan(decimal.Zero) {
			pct = r.Profit.Div(r.Revenue).Mul(hundred).Round(1)
		}
		out = append(out, dto.CategoryMarginDTO{
			CategoryID: r.CategoryID,
			Category:   r.CategoryName,
			Revenue:    r.Revenue.Round(0),
			Cost:       r.Cost.Round(0),
			Profit:     r.Profit.Round(0),
			MarginPct:  pct,
		})
	}
	return out, nil
}

// GetTopProfitProducts renvoie les produits classés par profit décroissant
// (égalité départagée par id croissant, garanti par la requête).
func (f *Facade) GetTopProfitProducts(ctx context.Context, from, to time.Time, limit int) ([]dto.TopProductDTO, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := f.analyticsRepo.GetTopProfitProducts(ctx, from, to, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TopProductDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.TopProductDTO{
			ProductID: r.ProductID,
			Label:     r.Label,
			Revenue:   r.Revenue.Round(0),
			Cost:      r.Cost.Round(0),
			Profit:    r.Profit.Round(0),
		})
	}
	return out, nil
}

// GetInventoryAnalytics renvoie la série mensuelle achats/ventes/marge et la
// répartition de la valeur de stock par catégorie.
func (f *Facade) GetInventoryAnalytics(ctx context.Context, from, to time.Time) (dto.InventoryAnalyticsDTO, error) {
	flows, err := f.analyticsRepo.GetMonthlyFlows(ctx, from, to)
	if err != nil {
		return dto.InventoryAnalyticsDTO{}, err
	}
	dist, err := f.analyticsRepo.GetCategoryDistribution(ctx)
	if err != nil {
		return dto.InventoryAnalyticsDTO{}, err
	}

	out := dto.InventoryAnalyticsDTO{
		MonthlySeries:        make([]dto.MonthlyPointDTO, 0, len(flows)),
		CategoryDistribution: make([]dto.CategoryValueDTO, 0, len(dist)),
	}
	for _, fl := range flows {
		out.MonthlySeries = append(out.MonthlySeries, dto.MonthlyPointDTO{
			Period:    fl.Period,
			Purchases: fl.Purchases.Round(0),
			Sales:     fl.Sales.Round(0),
			Margin:    fl.Sales.Sub(fl.Purchases).Round(0),
		})
	}
	for _, d := range dist {
		out.CategoryDistribution = append(out.CategoryDistribution, dto.CategoryValueDTO{
			CategoryID: d.CategoryID,
			Category:   d.CategoryName,
			Value:      d.Value.Round(0),
		})
	}
	return out, nil
}

// GetMonthlyComparison compare mois en cours et mois précédent: ventes,
// réceptions, marge brute et valeur de stock (reconstruite aux deux bornes via
// le grand livre).
func (f *Facade) GetMonthlyComparison(ctx context.Context) (dto.MonthlyComparisonDTO, error) {
	now := f.now()
	curStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	prevStart := curStart.AddDate(0, -1, 0)
	prevEnd := curStart.Add(-time.Nanosecond)

	curSales, err := f.analyticsRepo.GetSalesTotal(ctx, curStart, now)
	if err != nil {
		return dto.MonthlyComparisonDTO{}, err
	}
	prevSales, err := f.analyticsRepo.GetSalesTotal(ctx, prevStart, prevEnd)
	if err != nil {
		return dto.MonthlyComparisonDTO{}, err
	}
	curReceipts, err := f.analyticsRepo.GetReceiptsTotal(ctx, curStart, now)
	if err != nil {
		return dto.MonthlyComparisonDTO{}, err
	}
	prevReceipts, err := f.analyticsRepo.GetReceiptsTotal(ctx, prevStart, prevEnd)
	if err != nil {
		return dto.MonthlyComparisonDTO{}, err
	}
	curStock, err := f.valuationUC.GetInventoryValueAtDate(ctx, now)
	if err != nil {
		return dto.MonthlyComparisonDTO{}, err
	}
	prevStock, err := f.valuationUC.GetInventoryValueAtDate(ctx, prevEnd)
	if err != nil {
		return dto.MonthlyComparisonDTO{}, err
	}

	return dto.MonthlyComparisonDTO{
		Sales:       compare(curSales, prevSales),
		Receipts:    compare(curReceipts, prevReceipts),
		GrossMargin: compare(curSales.Sub(curReceipts), prevSales.Sub(prevReceipts)),
		StockValue:  compare(curStock, prevStock),
	}, nil
}

// compare construit l'indicateur comparé avec son évolution en pourcentage:
// (current - previous) / previous * 100, 0 si previous est nul.
func compare(current, previous decimal.Decimal) dto.ComparisonDTO {
	pct := decimal.Zero
	if !previous.IsZero() {
		pct = current.Sub(previous).Div(previous).Mul(hundred).Round(1)
	}
	return dto.ComparisonDTO{
		Current:      current.Round(0),
		Previous:     previous.Round(0),
		EvolutionPct: pct,
	}
}
