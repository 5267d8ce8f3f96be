package stock

import "github.com/shopspring/decimal"

// Paramètres du point de commande (ROP).
const (
	// LeadTimeDays délai de réapprovisionnement fournisseur, constant.
	LeadTimeDays = 7
	// safetyFactor demi-journée de demande en stock de sécurité.
	safetyFactor = 0.5
)

// ReorderPoint calcule le point de commande à partir de la demande journalière
// moyenne: ceil(demande * délai + demande * 0.5), plancher 1.
// Fonction pure; l'estimation de la demande appartient à l'appelant.
func ReorderPoint(avgDailyDemand decimal.Decimal) int64 {
	lead := decimal.NewFromInt(LeadTimeDays)
	safety := decimal.NewFromFloat(safetyFactor)
	rop := avgDailyDemand.Mul(lead).Add(avgDailyDemand.Mul(safety)).Ceil().IntPart()
	if rop < 1 {
		return 1
	}
	return rop
}

// FallbackDemandROP renvoie le point de commande de repli pour un produit sans
// historique de ventes: max(1, seuil * 0.1), arrondi au supérieur.
func FallbackDemandROP(threshold decimal.Decimal) int64 {
	rop := threshold.Mul(decimal.NewFromFloat(0.1)).Ceil().IntPart()
	if rop < 1 {
		return 1
	}
	return rop
}
