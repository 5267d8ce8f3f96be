package procurement_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/application/dto"
	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/application/procurement"
	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/application/stock"
	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/domain"
	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/domain/entity"
	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/infrastructure/memory"
)

const (
	productID  = "7f1aa273-9d1e-4d0a-a9fd-3e94f3cf3a46"
	supplierID = "3c7e1d2a-8b4f-4e6c-9a1d-5f2e7b8c9d0e"
)

type fakeReceptionRepo struct {
	receptions map[string]*entity.Reception
	// failStatusUpdates fait échouer les N prochaines mises à jour de statut.
	failStatusUpdates int
	statusAttempts    int
}

func newFakeReceptionRepo() *fakeReceptionRepo {
	return &fakeReceptionRepo{receptions: make(map[string]*entity.Reception)}
}

func (f *fakeReceptionRepo) Create(_ context.Context, r *entity.Reception) error {
	cp := *r
	f.receptions[r.ID] = &cp
	return nil
}

func (f *fakeReceptionRepo) GetByID(_ context.Context, id string) (*entity.Reception, error) {
	r, ok := f.receptions[id]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (f *fakeReceptionRepo) UpdateStatus(_ context.Context, id, status string) error {
	f.statusAttempts++
	if f.failStatusUpdates > 0 {
		f.failStatusUpdates--
		return errors.New("connexion perdue")
	}
	r, ok := f.receptions[id]
	if !ok {
		return domain.ErrNotFound
	}
	r.Status = status
	return nil
}

func (f *fakeReceptionRepo) List(_ context.Context, _, _ int) ([]*entity.Reception, error) {
	var out []*entity.Reception
	for _, r := range f.receptions {
		cp := *r
		out = append(out, &cp)
	}
	return out, nil
}

type fakeSupplierRepo struct{ suppliers map[string]*entity.Supplier }

func (f *fakeSupplierRepo) Create(_ context.Context, s *entity.Supplier) error {
	f.suppliers[s.ID] = s
	return nil
}
func (f *fakeSupplierRepo) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	return f.suppliers[id], nil
}
func (f *fakeSupplierRepo) List(context.Context, int, int) ([]*entity.Supplier, error) {
	return nil, nil
}
func (f *fakeSupplierRepo) Update(context.Context, *entity.Supplier) error { return nil }

type receptionFixture struct {
	uc            *procurement.ReceptionUseCase
	ledger        *memory.Ledger
	ledgerUC      *stock.LedgerUseCase
	receptionRepo *fakeReceptionRepo
}

func newReceptionFixture(t *testing.T) *receptionFixture {
	t.Helper()
	ledger := memory.NewLedger()
	ledger.AddProduct(&entity.Product{
		ID: productID, Label: "Ciment 50kg",
		MinStockThreshold: decimal.NewFromInt(5), Active: true,
	})
	ledgerUC := stock.NewLedgerUseCase(ledger, ledger.ProductRepo(), ledger.MovementRepo(), nil)
	receptionRepo := newFakeReceptionRepo()
	supplierRepo := &fakeSupplierRepo{suppliers: map[string]*entity.Supplier{
		supplierID: {ID: supplierID, Name: "BTP Distribution"},
	}}
	return &receptionFixture{
		uc:            procurement.NewReceptionUseCase(receptionRepo, supplierRepo, ledgerUC),
		ledger:        ledger,
		ledgerUC:      ledgerUC,
		receptionRepo: receptionRepo,
	}
}

func createReception(t *testing.T, fx *receptionFixture, qty, price int64) *entity.Reception {
	t.Helper()
	r, err := fx.uc.Create(context.Background(), dto.CreateReceptionRequest{
		SupplierID: supplierID,
		Reference:  "2026-0042",
		Lines: []dto.ReceptionLineRequest{
			{ProductID: productID, Quantity: decimal.NewFromInt(qty), UnitPrice: decimal.NewFromInt(price)},
		},
	})
	require.NoError(t, err)
	return r
}

func TestReception_Create(t *testing.T) {
	fx := newReceptionFixture(t)

	r := createReception(t, fx, 100, 10)
	assert.Equal(t, entity.ReceptionStatusPending, r.Status)
	require.Len(t, r.Lines, 1)
	assert.NotEmpty(t, r.Lines[0].ID)
	assert.Equal(t, 0, fx.ledger.MovementCount(productID),
		"la création n'écrit pas le grand livre")
}

func TestReception_CreateFournisseurInconnu(t *testing.T) {
	fx := newReceptionFixture(t)
	_, err := fx.uc.Create(context.Background(), dto.CreateReceptionRequest{
		SupplierID: "0e0477f4-4d3c-4f2e-9f5e-b79969f3b7be",
		Reference:  "2026-0001",
		Lines: []dto.ReceptionLineRequest{
			{ProductID: productID, Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(1)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// TestReception_Confirm la confirmation écrit une entrée par ligne au prix
// d'achat de la ligne et passe la réception en CONFIRMEE.
func TestReception_Confirm(t *testing.T) {
	fx := newReceptionFixture(t)
	ctx := context.Background()
	r := createReception(t, fx, 100, 10)

	require.NoError(t, fx.uc.Confirm(ctx, r.ID, "magasinier"))

	got, err := fx.uc.GetByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ReceptionStatusConfirmed, got.Status)

	state, err := fx.ledgerUC.GetCurrentState(ctx, productID)
	require.NoError(t, err)
	assert.True(t, state.QuantityOnHand.Equal(decimal.NewFromInt(100)))
	assert.True(t, state.WeightedAvgCost.Equal(decimal.NewFromInt(10)))
}

// TestReception_ConfirmDejaConfirmee reconfirmer est un no-op.
func TestReception_ConfirmDejaConfirmee(t *testing.T) {
	fx := newReceptionFixture(t)
	ctx := context.Background()
	r := createReception(t, fx, 100, 10)

	require.NoError(t, fx.uc.Confirm(ctx, r.ID, "magasinier"))
	require.NoError(t, fx.uc.Confirm(ctx, r.ID, "magasinier"))
	assert.Equal(t, 1, fx.ledger.MovementCount(productID))
}

// TestReception_ConfirmRejoueeApresPanne si la mise à jour du statut échoue
// après les écritures du grand livre, la relecture de la confirmation aboutit
// sans double-compter (clé d'idempotence par ligne).
func TestReception_ConfirmRejoueeApresPanne(t *testing.T) {
	fx := newReceptionFixture(t)
	ctx := context.Background()
	r := createReception(t, fx, 100, 10)

	fx.receptionRepo.failStatusUpdates = 10 // épuise les tentatives
	err := fx.uc.Confirm(ctx, r.ID, "magasinier")
	require.Error(t, err)
	assert.Equal(t, 1, fx.ledger.MovementCount(productID), "l'entrée est durable")

	got, err := fx.uc.GetByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ReceptionStatusPending, got.Status)

	// Rejeu: l'idempotence absorbe la ligne déjà appliquée
	fx.receptionRepo.failStatusUpdates = 0
	require.NoError(t, fx.uc.Confirm(ctx, r.ID, "magasinier"))
	assert.Equal(t, 1, fx.ledger.MovementCount(productID), "aucun double-comptage")

	got, err = fx.uc.GetByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ReceptionStatusConfirmed, got.Status)
}

func TestReception_ConfirmIntrouvable(t *testing.T) {
	fx := newReceptionFixture(t)
	err := fx.uc.Confirm(context.Background(), "0e0477f4-4d3c-4f2e-9f5e-b79969f3b7be", "magasinier")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// TestReception_DateMetier l'entrée du grand livre porte la date de réception,
// pas la date de confirmation.
func TestReception_DateMetier(t *testing.T) {
	fx := newReceptionFixture(t)
	ctx := context.Background()
	receivedAt := time.Date(2026, 8, 12, 9, 0, 0, 0, time.UTC)

	r, err := fx.uc.Create(ctx, dto.CreateReceptionRequest{
		SupplierID: supplierID,
		Reference:  "2026-0043",
		ReceivedAt: &receivedAt,
		Lines: []dto.ReceptionLineRequest{
			{ProductID: productID, Quantity: decimal.NewFromInt(10), UnitPrice: decimal.NewFromInt(4)},
		},
	})
	require.NoError(t, err)
	require.NoError(t, fx.uc.Confirm(ctx, r.ID, "magasinier"))

	movements, err := fx.ledger.MovementRepo().ListByProduct(ctx, productID, nil, nil, 10, 0)
	require.NoError(t, err)
	require.Len(t, movements, 1)
	assert.True(t, movements[0].At.Equal(receivedAt))
	require.NotNil(t, movements[0].SupplierID)
	assert.Equal(t, supplierID, *movements[0].SupplierID)
}
