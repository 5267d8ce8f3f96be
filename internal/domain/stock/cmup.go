package stock

import "github.com/shopspring/decimal"

// CMUP calcule le coût moyen unitaire pondéré après une entrée de stock
// (service de domaine, fonction pure).
//
//	NouveauCout = ((QtePrecedente * CoutPrecedent) + (QteEntree * CoutEntree)) / (QtePrecedente + QteEntree)
//
// Convention: si la quantité résultante est nulle ou négative (stock épuisé),
// le coût repart au prix de la dernière entrée. Les sorties n'appellent jamais
// cette fonction: elles recopient le CMUP du mouvement précédent.
func CMUP(prevQty, prevCost, inQty, inCost decimal.Decimal) decimal.Decimal {
	sum := prevQty.Add(inQty)
	if sum.LessThanOrEqual(decimal.Zero) {
		return inCost
	}
	num := prevQty.Mul(prevCost).Add(inQty.Mul(inCost))
	return num.Div(sum)
}
