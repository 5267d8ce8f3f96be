package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product représente un produit du catalogue.
// WeightedAvgCost est le CMUP (coût moyen unitaire pondéré) recalculé par le
// moteur de valorisation à chaque entrée de stock; il démarre à 0 et ne se
// modifie jamais à la main. Un produit référencé par des mouvements n'est
// jamais supprimé physiquement (désactivation logique via Active).
type Product struct {
	ID                string
	Label             string // libellé unique
	Barcode           string
	CategoryID        string
	PurchasePrice     decimal.Decimal // prix d'achat catalogue
	SalePrice         decimal.Decimal // prix de vente
	WeightedAvgCost   decimal.Decimal // CMUP, miroir du dernier mouvement
	MinStockThreshold decimal.Decimal // seuil d'alerte stock bas
	Active            bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
