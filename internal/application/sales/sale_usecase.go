// Package sales gère la validation des ventes: second point d'écriture du
// grand livre de stock (une sortie par ligne, après contrôle du disponible).
package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/application/dto"
	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/application/stock"
	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/application/valuation"
	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/domain"
	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/domain/entity"
	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/domain/repository"
)

const statusUpdateRetries = 3

// SaleUseCase crée et valide les ventes.
type SaleUseCase struct {
	saleRepo    repository.SaleRepository
	clientRepo  repository.ClientRepository
	valuationUC *valuation.UseCase
	ledger      *stock.LedgerUseCase
}

// NewSaleUseCase construit le cas d'usage.
func NewSaleUseCase(
	saleRepo repository.SaleRepository,
	clientRepo repository.ClientRepository,
	valuationUC *valuation.UseCase,
	ledger *stock.LedgerUseCase,
) *SaleUseCase {
	return &SaleUseCase{
		saleRepo:    saleRepo,
		clientRepo:  clientRepo,
		valuationUC: valuationUC,
		ledger:      ledger,
	}
}

// Create enregistre une vente en brouillon.
func (uc *SaleUseCase) Create(ctx context.Context, in dto.CreateSaleRequest) (*entity.Sale, error) {
	client, err := uc.clientRepo.GetByID(ctx, in.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	soldAt := now
	if in.SoldAt != nil {
		soldAt = *in.SoldAt
	}
	s := &entity.Sale{
		ID:        uuid.New().String(),
		ClientID:  in.ClientID,
		Reference: in.Reference,
		Status:    entity.SaleStatusDraft,
		SoldAt:    soldAt,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, l := range in.Lines {
		s.Lines = append(s.Lines, entity.SaleLine{
			ID:        uuid.New().String(),
			SaleID:    s.ID,
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
		})
	}
	if err := uc.saleRepo.Create(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate contrôle le disponible de chaque ligne puis enregistre les sorties
// de stock et passe la vente en VALIDEE. Le contrôle préalable remonte
// InsufficientStockError avant toute écriture; la course résiduelle entre
// contrôle et écriture reste couverte par le rejet du grand livre lui-même.
func (uc *SaleUseCase) Validate(ctx context.Context, saleID, userID string) error {
	s, err := uc.saleRepo.GetByID(ctx, saleID)
	if err != nil {
		return err
	}
	if s == nil {
		return domain.ErrNotFound
	}
	if s.Status == entity.SaleStatusValidated {
		return nil
	}

	for _, line := range s.Lines {
		snap, err := uc.valuationUC.GetValuation(ctx, line.ProductID)
		if err != nil {
			return err
		}
		if snap.QuantityOnHand.LessThan(line.Quantity) {
			return &domain.InsufficientStockError{
				ProductID: line.ProductID,
				Available: snap.QuantityOnHand,
				Requested: line.Quantity,
			}
		}
	}

	for _, line := range s.Lines {
		_, err := uc.ledger.RecordExit(ctx, stock.ExitInput{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			ClientID:  &s.ClientID,
			Reference: fmt.Sprintf("VTE-%s-%s", s.Reference, line.ID),
			At:        s.SoldAt,
			CreatedBy: userID,
		})
		if err != nil {
			return fmt.Errorf("valider vente %s, ligne %s: %w", s.ID, line.ID, err)
		}
	}

	return uc.updateStatusWithRetry(ctx, s.ID, entity.SaleStatusValidated)
}

func (uc *SaleUseCase) updateStatusWithRetry(ctx context.Context, id, status string) error {
	var err error
	for attempt := 1; attempt <= statusUpdateRetries; attempt++ {
		err = uc.saleRepo.UpdateStatus(ctx, id, status)
		if err == nil {
			return nil
		}
		log.Warn().Str("sale_id", id).Int("attempt", attempt).Err(err).
			Msg("mise à jour du statut de vente échouée, nouvelle tentative")
	}
	return fmt.Errorf("statut de vente %s non mis à jour (sorties de stock durables): %w", id, err)
}

// GetByID renvoie la vente avec ses lignes.
func (uc *SaleUseCase) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	s, err := uc.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

// List liste les ventes.
func (uc *SaleUseCase) List(ctx context.Context, page dto.PageRequest) ([]*entity.Sale, error) {
	page.DefaultPage()
	return uc.saleRepo.List(ctx, page.Limit, page.Offset)
}
