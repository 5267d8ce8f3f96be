package stock_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/domain/stock"
)

// TestCMUP_ScenarioCanonique est le scénario de référence du moteur de coût:
// stock 100 à 10, entrée de 50 à 16 → (100*10 + 50*16) / 150 = 12.
func TestCMUP_ScenarioCanonique(t *testing.T) {
	got := stock.CMUP(
		decimal.NewFromInt(100), decimal.NewFromInt(10),
		decimal.NewFromInt(50), decimal.NewFromInt(16),
	)
	assert.True(t, got.Equal(decimal.NewFromInt(12)), "CMUP attendu 12, obtenu %s", got)
}

// TestCMUP_StockInitialZero vérifie la convention de division par zéro: une
// entrée sur un produit sans stock prend exactement le prix d'entrée.
func TestCMUP_StockInitialZero(t *testing.T) {
	cost := decimal.RequireFromString("16.35")
	got := stock.CMUP(decimal.Zero, decimal.Zero, decimal.NewFromInt(40), cost)
	assert.True(t, got.Equal(cost), "le coût doit repartir au prix d'entrée, obtenu %s", got)
}

// TestCMUP_StockEpuise vérifie que le coût repart au dernier prix quand la
// somme des quantités est nulle (stock épuisé, quantité précédente négative).
func TestCMUP_StockEpuise(t *testing.T) {
	got := stock.CMUP(
		decimal.NewFromInt(-5), decimal.NewFromInt(10),
		decimal.NewFromInt(5), decimal.NewFromInt(14),
	)
	assert.True(t, got.Equal(decimal.NewFromInt(14)))
}

// TestCMUP_Pure même entrée → même sortie, aucun état caché.
func TestCMUP_Pure(t *testing.T) {
	a := stock.CMUP(decimal.NewFromInt(7), decimal.RequireFromString("3.33"),
		decimal.NewFromInt(3), decimal.RequireFromString("5.55"))
	b := stock.CMUP(decimal.NewFromInt(7), decimal.RequireFromString("3.33"),
		decimal.NewFromInt(3), decimal.RequireFromString("5.55"))
	assert.True(t, a.Equal(b))
}

func TestCMUP_TableGenerale(t *testing.T) {
	cases := []struct {
		name                           string
		prevQty, prevCost, qty, cost   string
		want                           string
	}{
		{"entree identique au cout courant", "10", "5", "10", "5", "5"},
		{"dilution vers le bas", "90", "20", "10", "10", "19"},
		{"petites quantites decimales", "1.5", "2", "0.5", "4", "2.5"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := stock.CMUP(
				decimal.RequireFromString(tc.prevQty), decimal.RequireFromString(tc.prevCost),
				decimal.RequireFromString(tc.qty), decimal.RequireFromString(tc.cost),
			)
			assert.True(t, got.Equal(decimal.RequireFromString(tc.want)),
				"attendu %s, obtenu %s", tc.want, got)
		})
	}
}
