package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Erreurs de domaine (sans dépendances externes).
var (
	ErrNotFound          = errors.New("ressource introuvable")
	ErrInvalidInput      = errors.New("entrée invalide")
	ErrDuplicate         = errors.New("ressource dupliquée")
	ErrUnauthorized      = errors.New("non autorisé")
	ErrForbidden         = errors.New("accès refusé")
	ErrConflict          = errors.New("conflit avec l'état actuel")
	ErrInsufficientStock = errors.New("stock insuffisant")
	ErrConsistency       = errors.New("incohérence du grand livre de stock")
)

// InsufficientStockError porte les quantités disponible/demandée pour que
// l'appelant (validation de vente, API) puisse les renvoyer au client.
// Se déballe vers ErrInsufficientStock pour errors.Is.
type InsufficientStockError struct {
	ProductID string
	Available decimal.Decimal
	Requested decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuffisant pour le produit %s: disponible %s, demandé %s",
		e.ProductID, e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// ConsistencyError signale qu'un solde recalculé ne correspond pas au snapshot
// stocké. L'opération échoue fermée; on ne « répare » jamais le grand livre en
// devinant. Contexte suffisant pour une réconciliation manuelle.
type ConsistencyError struct {
	ProductID  string
	MovementID string
	Stored     decimal.Decimal
	Recomputed decimal.Decimal
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("incohérence du grand livre: produit %s, mouvement %s, snapshot %s vs recalcul %s",
		e.ProductID, e.MovementID, e.Stored, e.Recomputed)
}

func (e *ConsistencyError) Unwrap() error { return ErrConsistency }
