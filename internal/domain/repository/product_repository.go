package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/domain/entity"
)

// ProductRepository définit le port de persistance pour Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByLabel(ctx context.Context, label string) (*entity.Product, error)
	Update(ctx context.Context, p *entity.Product) error
	// UpdateCost recopie le CMUP dérivé du grand livre sur le produit (cache).
	UpdateCost(ctx context.Context, productID string, cost decimal.Decimal) error
	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)
	// Deactivate désactive le produit sans le supprimer (cycle de vie souple:
	// jamais de suppression physique tant que des mouvements le référencent).
	Deactivate(ctx context.Context, id string) error
}
