package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/domain/entity"
)

// ProductStateRow est l'état courant (ou historique) d'un produit, dérivé du
// dernier mouvement du grand livre. Résultat brut produit par la base; les cas
// d'usage le convertissent en DTO.
type ProductStateRow struct {
	ProductID       string
	Label           string
	OnHand          decimal.Decimal
	WeightedAvgCost decimal.Decimal
	Threshold       decimal.Decimal
}

// StockMovementRepository définit le port de persistance du grand livre de
// stock (append-only). Aucune méthode de mise à jour ni de suppression: une
// erreur se corrige par un mouvement compensatoire.
type StockMovementRepository interface {
	Create(ctx context.Context, m *entity.StockMovement) error

	// GetLatest renvoie le dernier mouvement du produit (nil si aucun).
	GetLatest(ctx context.Context, productID string) (*entity.StockMovement, error)

	// GetLatestForUpdate verrouille le produit (SELECT ... FOR UPDATE sur la
	// ligne produit) puis renvoie son dernier mouvement, pour sérialiser le
	// read-modify-write du solde courant — y compris le tout premier
	// mouvement, qui n'a encore aucune ligne côté grand livre. À n'appeler
	// que dans une transaction. Nil si aucun mouvement.
	GetLatestForUpdate(ctx context.Context, productID string) (*entity.StockMovement, error)

	// SumSignedQuantities renvoie la somme (entrées - sorties) de tous les
	// mouvements du produit. Garde de cohérence sous verrou: doit coïncider
	// avec le snapshot du dernier mouvement.
	SumSignedQuantities(ctx context.Context, productID string) (decimal.Decimal, error)

	// GetByReference renvoie le mouvement existant pour une clé d'idempotence
	// (nil si aucun). Permet le retry at-least-once des écritures.
	GetByReference(ctx context.Context, productID, reference string) (*entity.StockMovement, error)

	// ListByProduct liste les mouvements d'un produit dans un intervalle de
	// dates, ordonnés par date croissante (séquence rejouable).
	ListByProduct(ctx context.Context, productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)

	// LatestStates renvoie, pour chaque produit ayant un historique, l'état
	// dérivé de son dernier mouvement, trié par libellé produit. Un seul
	// parcours du dernier mouvement par produit: jamais de somme de tout
	// l'historique (double comptage).
	LatestStates(ctx context.Context) ([]ProductStateRow, error)

	// LatestStatesAt reconstruit l'état de chaque produit à une date passée:
	// dernier mouvement avec At <= at. Produits sans historique à cette date
	// absents du résultat.
	LatestStatesAt(ctx context.Context, at time.Time) ([]ProductStateRow, error)
}
