package sales_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/application/dto"
	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/application/sales"
	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/application/stock"
	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/application/valuation"
	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/domain"
	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/domain/entity"
	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/domain/repository"
	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/infrastructure/memory"
)

const (
	productID = "7f1aa273-9d1e-4d0a-a9fd-3e94f3cf3a46"
	clientID  = "5d8a2b1c-4e6f-4a9b-8c7d-1e2f3a4b5c6d"
)

type fakeSaleRepo struct{ sales map[string]*entity.Sale }

func newFakeSaleRepo() *fakeSaleRepo { return &fakeSaleRepo{sales: make(map[string]*entity.Sale)} }

func (f *fakeSaleRepo) Create(_ context.Context, s *entity.Sale) error {
	cp := *s
	f.sales[s.ID] = &cp
	return nil
}

func (f *fakeSaleRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	s, ok := f.sales[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSaleRepo) UpdateStatus(_ context.Context, id, status string) error {
	s, ok := f.sales[id]
	if !ok {
		return domain.ErrNotFound
	}
	s.Status = status
	return nil
}

func (f *fakeSaleRepo) List(context.Context, int, int) ([]*entity.Sale, error) { return nil, nil }

func (f *fakeSaleRepo) GetSalesVelocity(context.Context, string, time.Time, time.Time) (repository.SalesVelocityResult, error) {
	return repository.SalesVelocityResult{}, nil
}

type fakeClientRepo struct{ clients map[string]*entity.Client }

func (f *fakeClientRepo) Create(_ context.Context, c *entity.Client) error {
	f.clients[c.ID] = c
	return nil
}
func (f *fakeClientRepo) GetByID(_ context.Context, id string) (*entity.Client, error) {
	return f.clients[id], nil
}
func (f *fakeClientRepo) List(context.Context, int, int) ([]*entity.Client, error) {
	return nil, nil
}
func (f *fakeClientRepo) Update(context.Context, *entity.Client) error { return nil }

type saleFixture struct {
	uc       *sales.SaleUseCase
	ledger   *memory.Ledger
	ledgerUC *stock.LedgerUseCase
	saleRepo *fakeSaleRepo
}

func newSaleFixture(t *testing.T, initialStock int64) *saleFixture {
	t.Helper()
	ledger := memory.NewLedger()
	ledger.AddProduct(&entity.Product{
		ID: productID, Label: "Ciment 50kg",
		MinStockThreshold: decimal.NewFromInt(5), Active: true,
	})
	ledgerUC := stock.NewLedgerUseCase(ledger, ledger.ProductRepo(), ledger.MovementRepo(), nil)
	if initialStock > 0 {
		cost := decimal.NewFromInt(10)
		_, err := ledgerUC.RecordEntry(context.Background(), stock.EntryInput{
			ProductID: productID,
			Quantity:  decimal.NewFromInt(initialStock),
			UnitCost:  &cost,
		})
		require.NoError(t, err)
	}
	valuationUC := valuation.NewUseCase(ledger.MovementRepo(), ledger.ProductRepo())
	saleRepo := newFakeSaleRepo()
	clientRepo := &fakeClientRepo{clients: map[string]*entity.Client{
		clientID: {ID: clientID, Name: "Chantier Nord SARL"},
	}}
	return &saleFixture{
		uc:       sales.NewSaleUseCase(saleRepo, clientRepo, valuationUC, ledgerUC),
		ledger:   ledger,
		ledgerUC: ledgerUC,
		saleRepo: saleRepo,
	}
}

func createSale(t *testing.T, fx *saleFixture, qty int64) *entity.Sale {
	t.Helper()
	s, err := fx.uc.Create(context.Background(), dto.CreateSaleRequest{
		ClientID:  clientID,
		Reference: "2026-0117",
		Lines: []dto.SaleLineRequest{
			{ProductID: productID, Quantity: decimal.NewFromInt(qty), UnitPrice: decimal.NewFromInt(15)},
		},
	})
	require.NoError(t, err)
	return s
}

func TestSale_Create(t *testing.T) {
	fx := newSaleFixture(t, 100)

	s := createSale(t, fx, 30)
	assert.Equal(t, entity.SaleStatusDraft, s.Status)
	require.Len(t, s.Lines, 1)
	assert.True(t, s.Total().Equal(decimal.NewFromInt(450)))
	assert.Equal(t, 1, fx.ledger.MovementCount(productID),
		"le brouillon n'écrit pas le grand livre")
}

func TestSale_CreateClientInconnu(t *testing.T) {
	fx := newSaleFixture(t, 100)
	_, err := fx.uc.Create(context.Background(), dto.CreateSaleRequest{
		ClientID:  "0e0477f4-4d3c-4f2e-9f5e-b79969f3b7be",
		Reference: "2026-0001",
		Lines: []dto.SaleLineRequest{
			{ProductID: productID, Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(1)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// TestSale_Validate la validation écrit une sortie par ligne au CMUP courant
// et passe la vente en VALIDEE.
func TestSale_Validate(t *testing.T) {
	fx := newSaleFixture(t, 100)
	ctx := context.Background()
	s := createSale(t, fx, 30)

	require.NoError(t, fx.uc.Validate(ctx, s.ID, "vendeur"))

	got, err := fx.uc.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.SaleStatusValidated, got.Status)

	state, err := fx.ledgerUC.GetCurrentState(ctx, productID)
	require.NoError(t, err)
	assert.True(t, state.QuantityOnHand.Equal(decimal.NewFromInt(70)))
	assert.True(t, state.WeightedAvgCost.Equal(decimal.NewFromInt(10)),
		"une vente ne modifie jamais le CMUP")
}

// TestSale_ValidateStockInsuffisant le contrôle préalable rejette avant toute
// écriture: pas de sortie partielle, la vente reste en brouillon.
func TestSale_ValidateStockInsuffisant(t *testing.T) {
	fx := newSaleFixture(t, 20)
	ctx := context.Background()
	s := createSale(t, fx, 30)
	before := fx.ledger.MovementCount(productID)

	err := fx.uc.Validate(ctx, s.ID, "vendeur")
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	var insufficientErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficientErr)
	assert.True(t, insufficientErr.Available.Equal(decimal.NewFromInt(20)))
	assert.True(t, insufficientErr.Requested.Equal(decimal.NewFromInt(30)))

	assert.Equal(t, before, fx.ledger.MovementCount(productID))
	got, err := fx.uc.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.SaleStatusDraft, got.Status)
}

// TestSale_ValidateDejaValidee revalider est un no-op.
func TestSale_ValidateDejaValidee(t *testing.T) {
	fx := newSaleFixture(t, 100)
	ctx := context.Background()
	s := createSale(t, fx, 30)

	require.NoError(t, fx.uc.Validate(ctx, s.ID, "vendeur"))
	before := fx.ledger.MovementCount(productID)
	require.NoError(t, fx.uc.Validate(ctx, s.ID, "vendeur"))
	assert.Equal(t, before, fx.ledger.MovementCount(productID))
}

func TestSale_ValidateIntrouvable(t *testing.T) {
	fx := newSaleFixture(t, 100)
	err := fx.uc.Validate(context.Background(), "0e0477f4-4d3c-4f2e-9f5e-b79969f3b7be", "vendeur")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
