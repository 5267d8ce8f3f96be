package stock_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/domain/stock"
)

func TestReorderPoint(t *testing.T) {
	cases := []struct {
		name   string
		demand string
		want   int64
	}{
		{"demande nominale", "4", 30},               // 4*7 + 4*0.5 = 30
		{"arrondi au supérieur", "3.1", 24},         // 23.25 -> 24
		{"demande fractionnaire faible", "0.2", 2},  // 1.5 -> 2
		{"demande nulle: plancher 1", "0", 1},
		{"demande négative: plancher 1", "-3", 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := stock.ReorderPoint(decimal.RequireFromString(tc.demand))
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestFallbackDemandROP(t *testing.T) {
	cases := []struct {
		name      string
		threshold string
		want      int64
	}{
		{"seuil 100", "100", 10},
		{"seuil 40", "40", 4},
		{"seuil 3: arrondi", "3", 1},
		{"seuil 0: plancher 1", "0", 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := stock.FallbackDemandROP(decimal.RequireFromString(tc.threshold))
			assert.Equal(t, tc.want, got)
		})
	}
}
