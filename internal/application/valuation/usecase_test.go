package valuation_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/application/stock"
	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/application/valuation"
	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/domain"
	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/domain/entity"
	domstock "github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/domain/stock"
	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/infrastructure/memory"
)

const (
	cimentID  = "7f1aa273-9d1e-4d0a-a9fd-3e94f3cf3a46"
	sableID   = "b45a45cf-6a32-4a54-8727-73d5d9c7a8e0"
	briquesID = "d6e9a5e1-1bb0-4c6e-8b5e-9a0f4d1c2b3a"
)

func newValuationFixture(t *testing.T) (*valuation.UseCase, *stock.LedgerUseCase, *memory.Ledger) {
	t.Helper()
	ledger := memory.NewLedger()
	ledger.AddProduct(&entity.Product{
		ID: cimentID, Label: "Ciment 50kg",
		MinStockThreshold: decimal.NewFromInt(10), Active: true,
	})
	ledger.AddProduct(&entity.Product{
		ID: sableID, Label: "Sable fin m3",
		MinStockThreshold: decimal.NewFromInt(5), Active: true,
	})
	ledger.AddProduct(&entity.Product{
		ID: briquesID, Label: "Briques creuses",
		MinStockThreshold: decimal.NewFromInt(50), Active: true,
	})
	ledgerUC := stock.NewLedgerUseCase(ledger, ledger.ProductRepo(), ledger.MovementRepo(), nil)
	uc := valuation.NewUseCase(ledger.MovementRepo(), ledger.ProductRepo())
	return uc, ledgerUC, ledger
}

func entry(t *testing.T, uc *stock.LedgerUseCase, productID string, qty, cost int64, at time.Time) {
	t.Helper()
	c := decimal.NewFromInt(cost)
	_, err := uc.RecordEntry(context.Background(), stock.EntryInput{
		ProductID: productID,
		Quantity:  decimal.NewFromInt(qty),
		UnitCost:  &c,
		At:        at,
	})
	require.NoError(t, err)
}

func exit(t *testing.T, uc *stock.LedgerUseCase, productID string, qty int64, at time.Time, force bool) {
	t.Helper()
	_, err := uc.RecordExit(context.Background(), stock.ExitInput{
		ProductID:     productID,
		Quantity:      decimal.NewFromInt(qty),
		At:            at,
		AllowNegative: force,
	})
	require.NoError(t, err)
}

func TestValuation_SnapshotProduit(t *testing.T) {
	uc, ledgerUC, _ := newValuationFixture(t)
	ctx := context.Background()
	now := time.Now()

	entry(t, ledgerUC, cimentID, 100, 10, now.Add(-2*time.Hour))
	entry(t, ledgerUC, cimentID, 50, 16, now.Add(-time.Hour))

	snap, err := uc.GetValuation(ctx, cimentID)
	require.NoError(t, err)
	assert.Equal(t, "Ciment 50kg", snap.Label)
	assert.True(t, snap.QuantityOnHand.Equal(decimal.NewFromInt(150)))
	assert.True(t, snap.WeightedAvgCost.Equal(decimal.NewFromInt(12)))
	assert.True(t, snap.StockValue.Equal(decimal.NewFromInt(1800)))
	assert.Equal(t, domstock.StatusAvailable, snap.Status)
}

func TestValuation_SnapshotSansMouvement(t *testing.T) {
	uc, _, _ := newValuationFixture(t)

	snap, err := uc.GetValuation(context.Background(), cimentID)
	require.NoError(t, err)
	assert.True(t, snap.QuantityOnHand.IsZero())
	assert.True(t, snap.StockValue.IsZero())
	assert.Equal(t, domstock.StatusOutOfStock, snap.Status)
}

func TestValuation_ProduitInconnu(t *testing.T) {
	uc, _, _ := newValuationFixture(t)
	_, err := uc.GetValuation(context.Background(), "1f9f7a9e-0000-4000-8000-000000000000")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// TestValuation_InventaireCourant les snapshots sont triés par libellé et le
// statut suit le seuil du produit.
func TestValuation_InventaireCourant(t *testing.T) {
	uc, ledgerUC, _ := newValuationFixture(t)
	ctx := context.Background()
	now := time.Now()

	entry(t, ledgerUC, cimentID, 100, 10, now.Add(-3*time.Hour))
	entry(t, ledgerUC, sableID, 4, 25, now.Add(-2*time.Hour))
	entry(t, ledgerUC, briquesID, 80, 1, now.Add(-time.Hour))
	exit(t, ledgerUC, briquesID, 80, now.Add(-30*time.Minute), false)

	rows, err := uc.GetCurrentInventory(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Briques creuses", rows[0].Label)
	assert.Equal(t, domstock.StatusOutOfStock, rows[0].Status)
	assert.Equal(t, "Ciment 50kg", rows[1].Label)
	assert.Equal(t, domstock.StatusAvailable, rows[1].Status)
	assert.Equal(t, "Sable fin m3", rows[2].Label)
	assert.Equal(t, domstock.StatusLowStock, rows[2].Status)
}

// TestValuation_ValeurTotale seules les quantités positives contribuent; un
// solde négatif forcé est exclu du total et du détail.
func TestValuation_ValeurTotale(t *testing.T) {
	uc, ledgerUC, _ := newValuationFixture(t)
	ctx := context.Background()
	now := time.Now()

	entry(t, ledgerUC, cimentID, 100, 10, now.Add(-3*time.Hour))
	entry(t, ledgerUC, cimentID, 50, 16, now.Add(-2*time.Hour)) // CMUP 12, valeur 1800
	entry(t, ledgerUC, sableID, 10, 25, now.Add(-2*time.Hour))  // valeur 250
	entry(t, ledgerUC, briquesID, 5, 2, now.Add(-time.Hour))
	exit(t, ledgerUC, briquesID, 8, now.Add(-30*time.Minute), true) // solde -3, exclu

	total, err := uc.GetTotalInventoryValue(ctx)
	require.NoError(t, err)
	assert.True(t, total.Total.Equal(decimal.NewFromInt(2050)),
		"total %s", total.Total)
	require.Len(t, total.Breakdown, 2)
	assert.Equal(t, "Ciment 50kg", total.Breakdown[0].Label)
	assert.True(t, total.Breakdown[0].Value.Equal(decimal.NewFromInt(1800)))
	assert.Equal(t, "Sable fin m3", total.Breakdown[1].Label)
}

// TestValuation_ReconstructionHistorique la valeur à une date passée rejoue le
// grand livre et ignore les mouvements postérieurs.
func TestValuation_ReconstructionHistorique(t *testing.T) {
	uc, ledgerUC, _ := newValuationFixture(t)
	ctx := context.Background()
	now := time.Now()

	entry(t, ledgerUC, cimentID, 100, 10, now.Add(-72*time.Hour)) // J-3: valeur 1000
	entry(t, ledgerUC, cimentID, 50, 16, now.Add(-24*time.Hour))  // J-1: valeur 1800
	exit(t, ledgerUC, cimentID, 30, now.Add(-time.Hour), false)   // aujourd'hui

	avant, err := uc.GetInventoryValueAtDate(ctx, now.Add(-96*time.Hour))
	require.NoError(t, err)
	assert.True(t, avant.IsZero(), "aucun mouvement avant J-4")

	j2, err := uc.GetInventoryValueAtDate(ctx, now.Add(-48*time.Hour))
	require.NoError(t, err)
	assert.True(t, j2.Equal(decimal.NewFromInt(1000)))

	j0, err := uc.GetInventoryValueAtDate(ctx, now)
	require.NoError(t, err)
	assert.True(t, j0.Equal(decimal.NewFromInt(1440)), "120 x CMUP 12")
}

// TestValuation_CoherenceHistoriqueCourant propriété de cohérence: la valeur
// reconstruite à maintenant égale la valeur totale courante.
func TestValuation_CoherenceHistoriqueCourant(t *testing.T) {
	uc, ledgerUC, _ := newValuationFixture(t)
	ctx := context.Background()
	now := time.Now()

	entry(t, ledgerUC, cimentID, 100, 10, now.Add(-3*time.Hour))
	entry(t, ledgerUC, sableID, 7, 25, now.Add(-2*time.Hour))
	exit(t, ledgerUC, cimentID, 40, now.Add(-time.Hour), false)
	entry(t, ledgerUC, briquesID, 12, 3, now.Add(-30*time.Minute))
	exit(t, ledgerUC, briquesID, 14, now.Add(-10*time.Minute), true)

	total, err := uc.GetTotalInventoryValue(ctx)
	require.NoError(t, err)
	atNow, err := uc.GetInventoryValueAtDate(ctx, now)
	require.NoError(t, err)
	assert.True(t, atNow.Equal(total.Total),
		"reconstruit %s, courant %s", atNow, total.Total)
}
