package stock

import "github.com/shopspring/decimal"

// Statuts de stock d'un produit.
const (
	StatusAvailable  = "DISPONIBLE"
	StatusLowStock   = "STOCK_BAS"
	StatusOutOfStock = "RUPTURE"
)

// ClassifyStatus détermine le statut de stock d'un produit à partir de la
// quantité en main et du seuil d'alerte.
func ClassifyStatus(onHand, threshold decimal.Decimal) string {
	if onHand.LessThanOrEqual(decimal.Zero) {
		return StatusOutOfStock
	}
	if onHand.LessThan(threshold) {
		return StatusLowStock
	}
	return StatusAvailable
}
