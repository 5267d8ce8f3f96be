// Package procurement gère la réception de marchandises: premier point
// d'écriture du grand livre de stock (une entrée par ligne confirmée).
package procurement

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/application/dto"
	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/application/stock"
	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/domain"
	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/domain/entity"
	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/domain/repository"
)

// statusUpdateRetries tentatives de mise à jour du statut après que les
// écritures du grand livre sont durables.
const statusUpdateRetries = 3

// ReceptionUseCase crée et confirme les réceptions.
type ReceptionUseCase struct {
	receptionRepo repository.ReceptionRepository
	supplierRepo  repository.SupplierRepository
	ledger        *stock.LedgerUseCase
}

// NewReceptionUseCase construit le cas d'usage.
func NewReceptionUseCase(
	receptionRepo repository.ReceptionRepository,
	supplierRepo repository.SupplierRepository,
	ledger *stock.LedgerUseCase,
) *ReceptionUseCase {
	return &ReceptionUseCase{
		receptionRepo: receptionRepo,
		supplierRepo:  supplierRepo,
		ledger:        ledger,
	}
}

// Create enregistre une réception en attente.
func (uc *ReceptionUseCase) Create(ctx context.Context, in dto.CreateReceptionRequest) (*entity.Reception, error) {
	supplier, err := uc.supplierRepo.GetByID(ctx, in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	receivedAt := now
	if in.ReceivedAt != nil {
		receivedAt = *in.ReceivedAt
	}
	r := &entity.Reception{
		ID:         uuid.New().String(),
		SupplierID: in.SupplierID,
		Reference:  in.Reference,
		Status:     entity.ReceptionStatusPending,
		ReceivedAt: receivedAt,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, l := range in.Lines {
		r.Lines = append(r.Lines, entity.ReceptionLine{
			ID:          uuid.New().String(),
			ReceptionID: r.ID,
			ProductID:   l.ProductID,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
		})
	}
	if err := uc.receptionRepo.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// Confirm enregistre une entrée de stock par ligne puis passe la réception en
// CONFIRMEE. Chaque ligne porte une clé d'idempotence: rejouer une
// confirmation partiellement appliquée ne double-compte rien. Les appends du
// grand livre, une fois durables, ne sont jamais annulés; si la mise à jour du
// statut échoue, elle est retentée (at-least-once).
func (uc *ReceptionUseCase) Confirm(ctx context.Context, receptionID, userID string) error {
	r, err := uc.receptionRepo.GetByID(ctx, receptionID)
	if err != nil {
		return err
	}
	if r == nil {
		return domain.ErrNotFound
	}
	if r.Status == entity.ReceptionStatusConfirmed {
		return nil
	}

	for _, line := range r.Lines {
		unitCost := line.UnitPrice
		_, err := uc.ledger.RecordEntry(ctx, stock.EntryInput{
			ProductID:  line.ProductID,
			Quantity:   line.Quantity,
			UnitCost:   &unitCost,
			SupplierID: &r.SupplierID,
			Reference:  fmt.Sprintf("REC-%s-%s", r.Reference, line.ID),
			At:         r.ReceivedAt,
			CreatedBy:  userID,
		})
		if err != nil {
			return fmt.Errorf("confirmer réception %s, ligne %s: %w", r.ID, line.ID, err)
		}
	}

	return uc.updateStatusWithRetry(ctx, r.ID, entity.ReceptionStatusConfirmed)
}

// updateStatusWithRetry retente la mise à jour du statut: le grand livre est
// déjà durable, l'incohérence est récupérable, pas de rollback.
func (uc *ReceptionUseCase) updateStatusWithRetry(ctx context.Context, id, status string) error {
	var err error
	for attempt := 1; attempt <= statusUpdateRetries; attempt++ {
		err = uc.receptionRepo.UpdateStatus(ctx, id, status)
		if err == nil {
			return nil
		}
		log.Warn().Str("reception_id", id).Int("attempt", attempt).Err(err).
			Msg("mise à jour du statut de réception échouée, nouvelle tentative")
	}
	return fmt.Errorf("statut de réception %s non mis à jour (entrées de stock durables): %w", id, err)
}

// GetByID renvoie la réception avec ses lignes.
func (uc *ReceptionUseCase) GetByID(ctx context.Context, id string) (*entity.Reception, error) {
	r, err := uc.receptionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}
	return r, nil
}

// List liste les réceptions.
func (uc *ReceptionUseCase) List(ctx context.Context, page dto.PageRequest) ([]*entity.Reception, error) {
	page.DefaultPage()
	return uc.receptionRepo.List(ctx, page.Limit, page.Offset)
}
