// Package valuation dérive la valorisation de l'inventaire (quantités, CMUP,
// statuts, valeur totale) depuis le grand livre. Tout est calculé à la lecture
// du dernier mouvement par produit: aucun champ dérivé persistant à maintenir.
package valuation

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/application/dto"
	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/domain"
	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/domain/repository"
	domstock "github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/domain/stock"
)

// UseCase calcule les valorisations et statuts de stock.
type UseCase struct {
	movRepo     repository.StockMovementRepository
	productRepo repository.ProductRepository
}

// NewUseCase construit le cas d'usage.
func NewUseCase(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
) *UseCase {
	return &UseCase{movRepo: movRepo, productRepo: productRepo}
}

// GetValuation renvoie le snapshot de valorisation d'un produit. Un produit
// sans mouvement donne un snapshot à zéro (statut RUPTURE), pas une erreur.
func (uc *UseCase) GetValuation(ctx context.Context, productID string) (dto.ValuationSnapshotDTO, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return dto.ValuationSnapshotDTO{}, err
	}
	if product == nil {
		return dto.ValuationSnapshotDTO{}, domain.ErrNotFound
	}

	latest, err := uc.movRepo.GetLatest(ctx, productID)
	if err != nil {
		return dto.ValuationSnapshotDTO{}, err
	}

	onHand, cost := decimal.Zero, decimal.Zero
	if latest != nil {
		onHand = latest.QuantityOnHandAfter
		cost = latest.WeightedAvgCostAfter
	}
	return dto.ValuationSnapshotDTO{
		ProductID:       productID,
		Label:           product.Label,
		QuantityOnHand:  onHand,
		WeightedAvgCost: cost,
		StockValue:      onHand.Mul(cost),
		Status:          domstock.ClassifyStatus(onHand, product.MinStockThreshold),
	}, nil
}

// GetCurrentInventory renvoie un snapshot par produit ayant un historique,
// trié par libellé produit.
func (uc *UseCase) GetCurrentInventory(ctx context.Context) ([]dto.ValuationSnapshotDTO, error) {
	rows, err := uc.movRepo.LatestStates(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ValuationSnapshotDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ValuationSnapshotDTO{
			ProductID:       r.ProductID,
			Label:           r.Label,
			QuantityOnHand:  r.OnHand,
			WeightedAvgCost: r.WeightedAvgCost,
			StockValue:      r.OnHand.Mul(r.WeightedAvgCost),
			Status:          domstock.ClassifyStatus(r.OnHand, r.Threshold),
		})
	}
	return out, nil
}

// GetTotalInventoryValue somme la valeur de stock des produits à quantité
// positive, avec détail par produit. Un seul parcours du dernier mouvement par
// produit: sommer tout l'historique compterait double.
func (uc *UseCase) GetTotalInventoryValue(ctx context.Context) (dto.TotalInventoryValueDTO, error) {
	rows, err := uc.movRepo.LatestStates(ctx)
	if err != nil {
		return dto.TotalInventoryValueDTO{}, err
	}
	return sumStates(rows), nil
}

// GetInventoryValueAtDate reconstruit la valeur totale de l'inventaire à une
// date passée en rejouant le grand livre: dernier mouvement par produit avec
// At <= date. Identique à GetTotalInventoryValue quand date est maintenant.
func (uc *UseCase) GetInventoryValueAtDate(ctx context.Context, at time.Time) (decimal.Decimal, error) {
	rows, err := uc.movRepo.LatestStatesAt(ctx, at)
	if err != nil {
		return decimal.Zero, err
	}
	return sumStates(rows).Total, nil
}

// sumStates agrège les états par produit; seules les quantités strictement
// positives contribuent (un solde négatif forcé ne fait pas une valeur
// négative d'inventaire).
func sumStates(rows []repository.ProductStateRow) dto.TotalInventoryValueDTO {
	out := dto.TotalInventoryValueDTO{
		Total:     decimal.Zero,
		Breakdown: make([]dto.InventoryBreakdownItem, 0, len(rows)),
	}
	for _, r := range rows {
		if !r.OnHand.GreaterThan(decimal.Zero) {
			continue
		}
		value := r.OnHand.Mul(r.WeightedAvgCost)
		out.Total = out.Total.Add(value)
		out.Breakdown = append(out.Breakdown, dto.InventoryBreakdownItem{
			ProductID:       r.ProductID,
			Label:           r.Label,
			Quantity:        r.OnHand,
			WeightedAvgCost: r.WeightedAvgCost,
			Value:           value,
		})
	}
	return out
}
