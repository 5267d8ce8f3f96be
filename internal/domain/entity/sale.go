package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Statuts d'une vente.
const (
	SaleStatusDraft     = "BROUILLON"
	SaleStatusValidated = "VALIDEE"
)

// Sale représente une vente. Sa validation est le second point d'écriture du
// grand livre de stock (une SORTIE par ligne, après contrôle du disponible).
type Sale struct {
	ID        string
	ClientID  string
	Reference string // numéro de vente, sert de clé d'idempotence
	Status    string
	SoldAt    time.Time
	Lines     []SaleLine
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SaleLine est une ligne de vente (produit, quantité, prix de vente).
type SaleLine struct {
	ID        string
	SaleID    string
	ProductID string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
}

// Total renvoie le montant total de la vente (somme quantité × prix).
func (s *Sale) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range s.Lines {
		total = total.Add(l.Quantity.Mul(l.UnitPrice))
	}
	return total
}
