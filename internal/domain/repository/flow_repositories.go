package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/domain/entity"
)

// SalesVelocityResult résultat brut de la requête de vélocité des ventes
// validées d'un produit (estimation du point de commande).
type SalesVelocityResult struct {
	TotalQuantitySold decimal.Decimal
	DistinctSaleDays  int
}

// ReceptionRepository définit le port de persistance pour Reception.
type ReceptionRepository interface {
	Create(ctx context.Context, r *entity.Reception) error
	// GetByID renvoie la réception avec ses lignes (nil si introuvable).
	GetByID(ctx context.Context, id string) (*entity.Reception, error)
	UpdateStatus(ctx context.Context, id, status string) error
	List(ctx context.Context, limit, offset int) ([]*entity.Reception, error)
}

// SaleRepository définit le port de persistance pour Sale.
type SaleRepository interface {
	Create(ctx context.Context, s *entity.Sale) error
	// GetByID renvoie la vente avec ses lignes (nil si introuvable).
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	UpdateStatus(ctx context.Context, id, status string) error
	List(ctx context.Context, limit, offset int) ([]*entity.Sale, error)

	// GetSalesVelocity renvoie la quantité totale vendue et le nombre de jours
	// distincts avec au moins une vente validée du produit sur l'intervalle.
	GetSalesVelocity(ctx context.Context, productID string, from, to time.Time) (SalesVelocityResult, error)
}
