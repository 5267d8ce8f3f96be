// Package reorder estime le point de commande (ROP) d'un produit à partir de
// la vélocité des ventes validées des 90 derniers jours.
package reorder

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/application/dto"
	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/domain/repository"
	domstock "github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/domain/stock"
)

// trailingWindowDays fenêtre glissante d'observation des ventes.
const trailingWindowDays = 90

// Estimator calcule le point de commande. Heuristique best-effort: ne renvoie
// jamais d'erreur; toute défaillance interne dégrade vers la valeur plancher 1
// avec un warning, jamais une erreur API.
type Estimator struct {
	productRepo repository.ProductRepository
	saleRepo    repository.SaleRepository
	now         func() time.Time
}

// NewEstimator construit l'estimateur.
func NewEstimator(productRepo repository.ProductRepository, saleRepo repository.SaleRepository) *Estimator {
	return &Estimator{productRepo: productRepo, saleRepo: saleRepo, now: time.Now}
}

// WithClock fixe l'horloge (tests).
func (e *Estimator) WithClock(now func() time.Time) *Estimator {
	e.now = now
	return e
}

// EstimateROP renvoie le point de commande du produit.
//
//	demande_journaliere = quantite_vendue_90j / jours_distincts_avec_vente
//	ROP = max(1, ceil(demande * 7 + demande * 0.5))
//
// Sans historique de ventes: repli sur max(1, seuil * 0.1).
func (e *Estimator) EstimateROP(ctx context.Context, productID string) dto.ReorderPointDTO {
	out := dto.ReorderPointDTO{
		ProductID:          productID,
		LeadTimeDays:       domstock.LeadTimeDays,
		AverageDailyDemand: decimal.Zero,
		ReorderPoint:       1,
	}

	product, err := e.productRepo.GetByID(ctx, productID)
	if err != nil || product == nil {
		log.Warn().Str("product_id", productID).Err(err).
			Msg("estimation ROP dégradée: produit illisible, repli sur 1")
		return out
	}

	end := e.now()
	start := end.AddDate(0, 0, -trailingWindowDays)
	velocity, err := e.saleRepo.GetSalesVelocity(ctx, productID, start, end)
	if err != nil {
		log.Warn().Str("product_id", productID).Err(err).
			Msg("estimation ROP dégradée: vélocité illisible, repli sur le seuil")
		out.ReorderPoint = domstock.FallbackDemandROP(product.MinStockThreshold)
		return out
	}

	if velocity.DistinctSaleDays == 0 {
		out.ReorderPoint = domstock.FallbackDemandROP(product.MinStockThreshold)
		return out
	}

	avgDaily := velocity.TotalQuantitySold.Div(decimal.NewFromInt(int64(velocity.DistinctSaleDays)))
	out.AverageDailyDemand = avgDaily
	out.ReorderPoint = domstock.ReorderPoint(avgDaily)
	return out
}
