// Package memory fournit une implémentation en mémoire des ports du grand
// livre, utilisée par les tests unitaires et les environnements de démo sans
// base de données.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/domain"
	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/domain/entity"
	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/domain/repository"
)

// Ledger est un grand livre en mémoire. MovementRepo et ProductRepo exposent
// les ports de persistance; Run sérialise les écritures sous mutex global,
// équivalent fonctionnel du verrou de ligne PostgreSQL.
type Ledger struct {
	mu        sync.Mutex
	movements map[string][]*entity.StockMovement // par produit, ordre d'append
	products  map[string]*entity.Product
}

// NewLedger construit un grand livre vide.
func NewLedger() *Ledger {
	return &Ledger{
		movements: make(map[string][]*entity.StockMovement),
		products:  make(map[string]*entity.Product),
	}
}

// Run implémente stock.TxRunner: le callback reçoit des vues non verrouillantes
// (le mutex est déjà tenu pour toute la « transaction »).
func (l *Ledger) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return fn(&movementView{l: l}, &productView{l: l})
}

// MovementRepo renvoie le port mouvements pour les lectures hors transaction.
func (l *Ledger) MovementRepo() repository.StockMovementRepository {
	return &movementView{l: l, lock: true}
}

// ProductRepo renvoie le port produits pour les accès hors transaction.
func (l *Ledger) ProductRepo() repository.ProductRepository {
	return &productView{l: l, lock: true}
}

// AddProduct insère un produit de test/démo.
func (l *Ledger) AddProduct(p *entity.Product) {
	l.mu.Lock()
	defer l.mu.Unlock()
	cp := *p
	l.products[p.ID] = &cp
}

// MovementCount renvoie le nombre de mouvements du produit (assertions de
// tests: un rejet ne doit laisser aucune trace).
func (l *Ledger) MovementCount(productID string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.movements[productID])
}

// Tamper écrase le snapshot du dernier mouvement (simulation de corruption
// pour les tests de la garde de cohérence).
func (l *Ledger) Tamper(productID string, onHandAfter decimal.Decimal) {
	l.mu.Lock()
	defer l.mu.Unlock()
	list := l.movements[productID]
	if len(list) > 0 {
		list[len(list)-1].QuantityOnHandAfter = onHandAfter
	}
}

// ── Port mouvements ──────────────────────────────────────────────────────────

type movementView struct {
	l    *Ledger
	lock bool
}

var _ repository.StockMovementRepository = (*movementView)(nil)

func (v *movementView) acquire() func() {
	if !v.lock {
		return func() {}
	}
	v.l.mu.Lock()
	return v.l.mu.Unlock
}

func (v *movementView) Create(_ context.Context, m *entity.StockMovement) error {
	defer v.acquire()()
	cp := *m
	v.l.movements[m.ProductID] = append(v.l.movements[m.ProductID], &cp)
	return nil
}

func (v *movementView) GetLatest(_ context.Context, productID string) (*entity.StockMovement, error) {
	defer v.acquire()()
	list := v.l.movements[productID]
	if len(list) == 0 {
		return nil, nil
	}
	cp := *list[len(list)-1]
	return &cp, nil
}

// GetLatestForUpdate équivaut à GetLatest: le mutex du Run tient lieu de
// verrou de la ligne produit.
func (v *movementView) GetLatestForUpdate(ctx context.Context, productID string) (*entity.StockMovement, error) {
	return v.GetLatest(ctx, productID)
}

func (v *movementView) SumSignedQuantities(_ context.Context, productID string) (decimal.Decimal, error) {
	defer v.acquire()()
	sum := decimal.Zero
	for _, m := range v.l.movements[productID] {
		sum = sum.Add(m.SignedQuantity())
	}
	return sum, nil
}

func (v *movementView) GetByReference(_ context.Context, productID, reference string) (*entity.StockMovement, error) {
	defer v.acquire()()
	for _, m := range v.l.movements[productID] {
		if m.Reference == reference {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (v *movementView) ListByProduct(_ context.Context, productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	defer v.acquire()()
	var out []*entity.StockMovement
	for _, m := range v.l.movements[productID] {
		if from != nil && m.At.Before(*from) {
			continue
		}
		if to != nil && m.At.After(*to) {
			continue
		}
		cp := *m
		out = append(out, &cp)
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (v *movementView) LatestStates(_ context.Context) ([]repository.ProductStateRow, error) {
	defer v.acquire()()
	var rows []repository.ProductStateRow
	for productID, list := range v.l.movements {
		if len(list) == 0 {
			continue
		}
		rows = append(rows, v.stateRow(productID, list[len(list)-1]))
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Label < rows[j].Label })
	return rows, nil
}

func (v *movementView) LatestStatesAt(_ context.Context, at time.Time) ([]repository.ProductStateRow, error) {
	defer v.acquire()()
	var rows []repository.ProductStateRow
	for productID, list := range v.l.movements {
		var last *entity.StockMovement
		for _, m := range list {
			if !m.At.After(at) {
				last = m
			}
		}
		if last == nil {
			continue
		}
		rows = append(rows, v.stateRow(productID, last))
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Label < rows[j].Label })
	return rows, nil
}

func (v *movementView) stateRow(productID string, last *entity.StockMovement) repository.ProductStateRow {
	row := repository.ProductStateRow{
		ProductID:       productID,
		OnHand:          last.QuantityOnHandAfter,
		WeightedAvgCost: last.WeightedAvgCostAfter,
		Threshold:       last.MinStockThreshold,
	}
	if p, ok := v.l.products[productID]; ok {
		row.Label = p.Label
		row.Threshold = p.MinStockThreshold
	}
	return row
}

// ── Port produits ────────────────────────────────────────────────────────────

type productView struct {
	l    *Ledger
	lock bool
}

var _ repository.ProductRepository = (*productView)(nil)

func (v *productView) acquire() func() {
	if !v.lock {
		return func() {}
	}
	v.l.mu.Lock()
	return v.l.mu.Unlock
}

func (v *productView) Create(_ context.Context, p *entity.Product) error {
	defer v.acquire()()
	if _, ok := v.l.products[p.ID]; ok {
		return domain.ErrDuplicate
	}
	cp := *p
	v.l.products[p.ID] = &cp
	return nil
}

func (v *productView) GetByID(_ context.Context, id string) (*entity.Product, error) {
	defer v.acquire()()
	p, ok := v.l.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (v *productView) GetByLabel(_ context.Context, label string) (*entity.Product, error) {
	defer v.acquire()()
	for _, p := range v.l.products {
		if p.Label == label {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (v *productView) Update(_ context.Context, p *entity.Product) error {
	defer v.acquire()()
	if _, ok := v.l.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *p
	v.l.products[p.ID] = &cp
	return nil
}

func (v *productView) UpdateCost(_ context.Context, productID string, cost decimal.Decimal) error {
	defer v.acquire()()
	p, ok := v.l.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.WeightedAvgCost = cost
	return nil
}

func (v *productView) List(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	defer v.acquire()()
	var out []*entity.Product
	for _, p := range v.l.products {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (v *productView) Deactivate(_ context.Context, id string) error {
	defer v.acquire()()
	p, ok := v.l.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Active = false
	return nil
}
