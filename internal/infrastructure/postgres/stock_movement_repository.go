package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/domain"
	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/domain/entity"
	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// movementColumns colonnes sélectionnées pour un mouvement (ordre de scan).
const movementColumns = `id, product_id, category_id, type, quantity_in, quantity_out,
	quantity_on_hand_after, unit_cost_in, weighted_avg_cost_after,
	supplier_id, client_id, reference, min_stock_threshold, at, created_at, created_by`

// StockMovementRepo adaptateur PostgreSQL du grand livre (utilisable avec pool
// ou tx).
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construit l'adaptateur. Passer pool ou tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create appende un mouvement. La contrainte unique (product_id, reference)
// matérialise la clé d'idempotence côté base.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, product_id, category_id, type, quantity_in, quantity_out,
			quantity_on_hand_after, unit_cost_in, weighted_avg_cost_after,
			supplier_id, client_id, reference, min_stock_threshold, at, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	reference := (*string)(nil)
	if m.Reference != "" {
		reference = &m.Reference
	}
	createdBy := (*string)(nil)
	if m.CreatedBy != "" {
		createdBy = &m.CreatedBy
	}
	_, err := r.q.Exec(ctx, query,
		m.ID, m.ProductID, m.CategoryID, m.Type, m.QuantityIn, m.QuantityOut,
		m.QuantityOnHandAfter, m.UnitCostIn, m.WeightedAvgCostAfter,
		m.SupplierID, m.ClientID, reference, m.MinStockThreshold, m.At, m.CreatedAt, createdBy,
	)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// GetLatest renvoie le dernier mouvement du produit (nil si aucun).
func (r *StockMovementRepo) GetLatest(ctx context.Context, productID string) (*entity.StockMovement, error) {
	return r.getLatest(ctx, productID)
}

// GetLatestForUpdate verrouille la ligne produit (SELECT ... FOR UPDATE sur
// products) puis lit le dernier mouvement. Le verrou doit porter sur une ligne
// persistante: un premier mouvement n'a encore aucune ligne à verrouiller côté
// mouvements, et une transaction réveillée après attente doit relire
// l'historique commité par le gagnant. À n'appeler que dans une transaction.
func (r *StockMovementRepo) GetLatestForUpdate(ctx context.Context, productID string) (*entity.StockMovement, error) {
	var locked string
	err := r.q.QueryRow(ctx,
		`SELECT id FROM products WHERE id = $1 FOR UPDATE`, productID,
	).Scan(&locked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("lock product row: %w", err)
	}
	return r.getLatest(ctx, productID)
}

func (r *StockMovementRepo) getLatest(ctx context.Context, productID string) (*entity.StockMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM stock_movements WHERE product_id = $1
		ORDER BY at DESC, created_at DESC LIMIT 1`
	m, err := scanMovement(r.q.QueryRow(ctx, query, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get latest movement: %w", err)
	}
	return m, nil
}

// SumSignedQuantities somme (entrées - sorties) de tout l'historique du
// produit (garde de cohérence).
func (r *StockMovementRepo) SumSignedQuantities(ctx context.Context, productID string) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(quantity_in - quantity_out), 0) FROM stock_movements WHERE product_id = $1`,
		productID,
	).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum signed quantities: %w", err)
	}
	return sum, nil
}

// GetByReference renvoie le mouvement portant la clé d'idempotence (nil si
// aucun).
func (r *StockMovementRepo) GetByReference(ctx context.Context, productID, reference string) (*entity.StockMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM stock_movements WHERE product_id = $1 AND reference = $2`
	m, err := scanMovement(r.q.QueryRow(ctx, query, productID, reference))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement by reference: %w", err)
	}
	return m, nil
}

// ListByProduct liste les mouvements d'un produit dans un intervalle de dates,
// par date croissante.
func (r *StockMovementRepo) ListByProduct(ctx context.Context, productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM stock_movements WHERE product_id = $1`
	args := []any{productID}
	pos := 2
	if from != nil {
		query += fmt.Sprintf(" AND at >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND at <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY at ASC, created_at ASC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// LatestStates état courant de chaque produit ayant un historique: dernier
// mouvement par produit (DISTINCT ON), jamais de somme de tout l'historique.
func (r *StockMovementRepo) LatestStates(ctx context.Context) ([]repository.ProductStateRow, error) {
	const query = `
		SELECT m.product_id, p.label, m.quantity_on_hand_after, m.weighted_avg_cost_after, p.min_stock_threshold
		FROM (
			SELECT DISTINCT ON (product_id) product_id, quantity_on_hand_after, weighted_avg_cost_after
			FROM stock_movements
			ORDER BY product_id, at DESC, created_at DESC
		) m
		JOIN products p ON p.id = m.product_id
		ORDER BY p.label ASC`
	return r.queryStates(ctx, query)
}

// LatestStatesAt reconstruit l'état de chaque produit à une date passée:
// dernier mouvement avec at <= $1.
func (r *StockMovementRepo) LatestStatesAt(ctx context.Context, at time.Time) ([]repository.ProductStateRow, error) {
	const query = `
		SELECT m.product_id, p.label, m.quantity_on_hand_after, m.weighted_avg_cost_after, p.min_stock_threshold
		FROM (
			SELECT DISTINCT ON (product_id) product_id, quantity_on_hand_after, weighted_avg_cost_after
			FROM stock_movements
			WHERE at <= $1
			ORDER BY product_id, at DESC, created_at DESC
		) m
		JOIN products p ON p.id = m.product_id
		ORDER BY p.label ASC`
	return r.queryStates(ctx, query, at)
}

func (r *StockMovementRepo) queryStates(ctx context.Context, query string, args ...any) ([]repository.ProductStateRow, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("latest states: %w", err)
	}
	defer rows.Close()
	var list []repository.ProductStateRow
	for rows.Next() {
		var row repository.ProductStateRow
		if err := rows.Scan(&row.ProductID, &row.Label, &row.OnHand, &row.WeightedAvgCost, &row.Threshold); err != nil {
			return nil, fmt.Errorf("scan state: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// scanMovement lit un mouvement depuis une ligne (pgx.Row ou pgx.Rows).
func scanMovement(row pgx.Row) (*entity.StockMovement, error) {
	var m entity.StockMovement
	var reference, createdBy *string
	err := row.Scan(
		&m.ID, &m.ProductID, &m.CategoryID, &m.Type, &m.QuantityIn, &m.QuantityOut,
		&m.QuantityOnHandAfter, &m.UnitCostIn, &m.WeightedAvgCostAfter,
		&m.SupplierID, &m.ClientID, &reference, &m.MinStockThreshold, &m.At, &m.CreatedAt, &createdBy,
	)
	if err != nil {
		return nil, err
	}
	if reference != nil {
		m.Reference = *reference
	}
	if createdBy != nil {
		m.CreatedBy = *createdBy
	}
	return &m, nil
}
