package stock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/application/dto"
	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/domain"
	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/domain/entity"
	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/domain/event"
	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/domain/repository"
	domstock "github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/domain/stock"
)

// LedgerUseCase enregistre les mouvements du grand livre de stock de façon
// transactionnelle: verrou de la ligne produit (SELECT FOR UPDATE), lecture du
// dernier mouvement, calcul du CMUP, append immuable, miroir du coût sur le
// produit. Deux écritures concurrentes sur le même produit sont sérialisées;
// des produits distincts sont indépendants.
type LedgerUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	movRepo     repository.StockMovementRepository // lectures hors transaction
	events      event.Publisher
}

// NewLedgerUseCase construit le cas d'usage.
func NewLedgerUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
	events event.Publisher,
) *LedgerUseCase {
	return &LedgerUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		movRepo:     movRepo,
		events:      events,
	}
}

// EntryInput entrée de stock (réception fournisseur, correction positive).
// UnitCost est obligatoire: une entrée sans coût est invalide.
type EntryInput struct {
	ProductID  string
	Quantity   decimal.Decimal
	UnitCost   *decimal.Decimal
	SupplierID *string
	Reference  string // clé d'idempotence optionnelle
	At         time.Time
	CreatedBy  string
}

// ExitInput sortie de stock (vente validée, correction négative).
// AllowNegative autorise un solde négatif pour les corrections antidatées;
// par défaut la sortie est rejetée si elle dépasse le disponible.
type ExitInput struct {
	ProductID     string
	Quantity      decimal.Decimal
	ClientID      *string
	Reference     string
	At            time.Time
	AllowNegative bool
	CreatedBy     string
}

// RecordEntry valide l'entrée, sérialise le read-modify-write du produit dans
// une transaction, recalcule le CMUP et appende le mouvement. Renvoie le
// mouvement créé (ou le mouvement existant si la référence a déjà été
// enregistrée: rejouer une écriture est un no-op).
func (uc *LedgerUseCase) RecordEntry(ctx context.Context, in EntryInput) (*entity.StockMovement, error) {
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if in.UnitCost == nil || in.UnitCost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	product, err := uc.productRepo.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	at := in.At
	if at.IsZero() {
		at = time.Now()
	}

	var result *entity.StockMovement
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		prev, err := movRepo.GetLatestForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if in.Reference != "" {
			existing, err := movRepo.GetByReference(ctx, in.ProductID, in.Reference)
			if err != nil {
				return err
			}
			if existing != nil {
				result = existing
				return nil
			}
		}
		if err := verifyBalance(ctx, movRepo, in.ProductID, prev); err != nil {
			return err
		}

		prevQty, prevCost := priorState(prev)
		newQty := prevQty.Add(in.Quantity)
		newCost := domstock.CMUP(prevQty, prevCost, in.Quantity, *in.UnitCost)

		mov := &entity.StockMovement{
			ID:                   uuid.New().String(),
			ProductID:            in.ProductID,
			CategoryID:           product.CategoryID,
			Type:                 entity.MovementTypeEntry,
			QuantityIn:           in.Quantity,
			QuantityOut:          decimal.Zero,
			QuantityOnHandAfter:  newQty,
			UnitCostIn:           *in.UnitCost,
			WeightedAvgCostAfter: newCost,
			SupplierID:           in.SupplierID,
			Reference:            in.Reference,
			MinStockThreshold:    product.MinStockThreshold,
			At:                   at,
			CreatedAt:            time.Now(),
			CreatedBy:            in.CreatedBy,
		}
		if err := movRepo.Create(ctx, mov); err != nil {
			return err
		}
		// Miroir du CMUP sur le produit (cache invalidé à chaque écriture)
		if err := productRepo.UpdateCost(ctx, in.ProductID, newCost); err != nil {
			return err
		}
		result = mov
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.publishLowStock(ctx, result)
	return result, nil
}

// RecordExit vérifie le disponible sous verrou et appende la sortie. Le CMUP
// est recopié inchangé du mouvement précédent: une sortie ne modifie jamais le
// coût moyen.
func (uc *LedgerUseCase) RecordExit(ctx context.Context, in ExitInput) (*entity.StockMovement, error) {
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	product, err := uc.productRepo.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	at := in.At
	if at.IsZero() {
		at = time.Now()
	}

	var result *entity.StockMovement
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		prev, err := movRepo.GetLatestForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if in.Reference != "" {
			existing, err := movRepo.GetByReference(ctx, in.ProductID, in.Reference)
			if err != nil {
				return err
			}
			if existing != nil {
				result = existing
				return nil
			}
		}
		if err := verifyBalance(ctx, movRepo, in.ProductID, prev); err != nil {
			return err
		}

		prevQty, prevCost := priorState(prev)
		if prevQty.LessThan(in.Quantity) {
			if !in.AllowNegative {
				return &domain.InsufficientStockError{
					ProductID: in.ProductID,
					Available: prevQty,
					Requested: in.Quantity,
				}
			}
			log.Warn().
				Str("product_id", in.ProductID).
				Str("available", prevQty.String()).
				Str("requested", in.Quantity.String()).
				Msg("sortie forcée sous le disponible (correction antidatée)")
		}
		newQty := prevQty.Sub(in.Quantity)

		mov := &entity.StockMovement{
			ID:                   uuid.New().String(),
			ProductID:            in.ProductID,
			CategoryID:           product.CategoryID,
			Type:                 entity.MovementTypeExit,
			QuantityIn:           decimal.Zero,
			QuantityOut:          in.Quantity,
			QuantityOnHandAfter:  newQty,
			UnitCostIn:           prevCost, // valorisation de la sortie au CMUP courant
			WeightedAvgCostAfter: prevCost,
			ClientID:             in.ClientID,
			Reference:            in.Reference,
			MinStockThreshold:    product.MinStockThreshold,
			At:                   at,
			CreatedAt:            time.Now(),
			CreatedBy:            in.CreatedBy,
		}
		if err := movRepo.Create(ctx, mov); err != nil {
			return err
		}
		result = mov
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.publishLowStock(ctx, result)
	return result, nil
}

// GetCurrentState renvoie le solde courant et le CMUP du produit. Un produit
// sans mouvement donne un état à zéro, pas une erreur.
func (uc *LedgerUseCase) GetCurrentState(ctx context.Context, productID string) (dto.StockStateDTO, error) {
	latest, err := uc.movRepo.GetLatest(ctx, productID)
	if err != nil {
		return dto.StockStateDTO{}, err
	}
	state := dto.StockStateDTO{
		ProductID:       productID,
		QuantityOnHand:  decimal.Zero,
		WeightedAvgCost: decimal.Zero,
	}
	if latest != nil {
		state.QuantityOnHand = latest.QuantityOnHandAfter
		state.WeightedAvgCost = latest.WeightedAvgCostAfter
	}
	return state, nil
}

// ListMovements liste les mouvements d'un produit (séquence chronologique).
func (uc *LedgerUseCase) ListMovements(ctx context.Context, in dto.ListMovementsRequest) ([]dto.MovementDTO, error) {
	in.DefaultPage()
	movements, err := uc.movRepo.ListByProduct(ctx, in.ProductID, in.From, in.To, in.Limit, in.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementDTO, 0, len(movements))
	for _, m := range movements {
		out = append(out, toMovementDTO(m))
	}
	return out, nil
}

// priorState extrait (quantité, CMUP) du dernier mouvement; zéro si aucun.
func priorState(prev *entity.StockMovement) (qty, cost decimal.Decimal) {
	if prev == nil {
		return decimal.Zero, decimal.Zero
	}
	return prev.QuantityOnHandAfter, prev.WeightedAvgCostAfter
}

// verifyBalance recoupe le snapshot du dernier mouvement avec la somme des
// quantités signées. Un désaccord signifie une corruption du grand livre:
// l'opération échoue fermée, jamais de réparation silencieuse.
func verifyBalance(
	ctx context.Context,
	movRepo repository.StockMovementRepository,
	productID string,
	prev *entity.StockMovement,
) error {
	if prev == nil {
		return nil
	}
	sum, err := movRepo.SumSignedQuantities(ctx, productID)
	if err != nil {
		return err
	}
	if !sum.Equal(prev.QuantityOnHandAfter) {
		cerr := &domain.ConsistencyError{
			ProductID:  productID,
			MovementID: prev.ID,
			Stored:     prev.QuantityOnHandAfter,
			Recomputed: sum,
		}
		log.Error().
			Str("product_id", productID).
			Str("movement_id", prev.ID).
			Str("stored", prev.QuantityOnHandAfter.String()).
			Str("recomputed", sum.String()).
			Msg("incohérence du grand livre détectée")
		return cerr
	}
	return nil
}

// publishLowStock émet LowStockDetected si le mouvement laisse le solde sous
// le seuil d'alerte du produit. Publication hors transaction, après commit.
func (uc *LedgerUseCase) publishLowStock(ctx context.Context, mov *entity.StockMovement) {
	if uc.events == nil || mov == nil {
		return
	}
	if mov.MinStockThreshold.GreaterThan(decimal.Zero) &&
		mov.QuantityOnHandAfter.LessThan(mov.MinStockThreshold) {
		uc.events.Publish(ctx, event.LowStockDetected{
			ProductID: mov.ProductID,
			OnHand:    mov.QuantityOnHandAfter,
			Threshold: mov.MinStockThreshold,
			At:        mov.At,
		})
	}
}

func toMovementDTO(m *entity.StockMovement) dto.MovementDTO {
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
