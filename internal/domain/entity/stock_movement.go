package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Types de mouvement de stock.
const (
	MovementTypeEntry = "ENTREE" // entrée (réception fournisseur, correction +)
	MovementTypeExit  = "SORTIE" // sortie (vente, correction -)
)

// StockMovement est l'unité du grand livre de stock: un enregistrement immuable
// par entrée ou sortie, avec snapshot du solde et du CMUP après application.
//
// Invariants:
//   - QuantityOnHandAfter = somme courante (entrées - sorties) du produit,
//     ordonnée par At.
//   - WeightedAvgCostAfter ne change que sur une ENTREE; une SORTIE recopie le
//     CMUP du mouvement précédent.
//
// Un mouvement n'est jamais modifié ni supprimé après création; une erreur se
// corrige par un mouvement compensatoire.
type StockMovement struct {
	ID                   string
	ProductID            string
	CategoryID           string // copie dénormalisée de la catégorie du produit au moment du mouvement
	Type                 string // ENTREE, SORTIE
	QuantityIn           decimal.Decimal
	QuantityOut          decimal.Decimal
	QuantityOnHandAfter  decimal.Decimal
	UnitCostIn           decimal.Decimal // prix d'achat sur une ENTREE, CMUP courant sur une SORTIE
	WeightedAvgCostAfter decimal.Decimal // CMUP après ce mouvement
	SupplierID           *string         // contrepartie d'une ENTREE (optionnelle)
	ClientID             *string         // contrepartie d'une SORTIE (optionnelle)
	Reference            string          // clé d'idempotence (réception, vente, note de correction)
	MinStockThreshold    decimal.Decimal // seuil du produit au moment du mouvement
	At                   time.Time       // date métier du mouvement
	CreatedAt            time.Time
	CreatedBy            string
}

// SignedQuantity renvoie la quantité signée du mouvement (+entrée, -sortie).
func (m *StockMovement) SignedQuantity() decimal.Decimal {
	return m.QuantityIn.Sub(m.QuantityOut)
}
