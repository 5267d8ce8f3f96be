package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/domain"
	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/domain/entity"
	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo adaptateur PostgreSQL des ventes (en-tête + lignes).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construit l'adaptateur.
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste l'en-tête puis les lignes.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO sales (id, client_id, reference, status, sold_at, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		s.ID, s.ClientID, s.Reference, s.Status, s.SoldAt, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	for _, l := range s.Lines {
		_, err := r.q.Exec(ctx,
			`INSERT INTO sale_lines (id, sale_id, product_id, quantity, unit_price)
			 VALUES ($1, $2, $3, $4, $5)`,
			l.ID, l.SaleID, l.ProductID, l.Quantity, l.UnitPrice,
		)
		if err != nil {
			return fmt.Errorf("insert sale line: %w", err)
		}
	}
	return nil
}

// GetByID renvoie la vente avec ses lignes (nil si introuvable).
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	var s entity.Sale
	err := r.q.QueryRow(ctx,
		`SELECT id, client_id, reference, status, sold_at, created_at, updated_at
		 FROM sales WHERE id = $1`, id,
	).Scan(&s.ID, &s.ClientID, &s.Reference, &s.Status, &s.SoldAt, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}

	rows, err := r.q.Query(ctx,
		`SELECT id, sale_id, product_id, quantity, unit_price
		 FROM sale_lines WHERE sale_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("get sale lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.SaleLine
		if err := rows.Scan(&l.ID, &l.SaleID, &l.ProductID, &l.Quantity, &l.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan sale line: %w", err)
		}
		s.Lines = append(s.Lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &s, nil
}

// UpdateStatus met à jour le statut de la vente.
func (r *SaleRepo) UpdateStatus(ctx context.Context, id, status string) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE sales SET status = $2, updated_at = $3 WHERE id = $1`,
		id, status, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("update sale status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List liste les ventes (en-têtes seuls) par date de vente décroissante.
func (r *SaleRepo) List(ctx context.Context, limit, offset int) ([]*entity.Sale, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, client_id, reference, status, sold_at, created_at, updated_at
		 FROM sales ORDER BY sold_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(&s.ID, &s.ClientID, &s.Reference, &s.Status,
			&s.SoldAt, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// GetSalesVelocity quantité totale vendue et jours distincts avec vente
// validée du produit sur l'intervalle (estimation du point de commande).
func (r *SaleRepo) GetSalesVelocity(ctx context.Context, productID string, from, to time.Time) (repository.SalesVelocityResult, error) {
	const query = `
		SELECT
		    COALESCE(SUM(l.quantity), 0)        AS total_quantity,
		    COUNT(DISTINCT s.sold_at::date)     AS distinct_days
		FROM sales s
		JOIN sale_lines l ON l.sale_id = s.id
		WHERE l.product_id = $1
		  AND s.status = 'VALIDEE'
		  AND s.sold_at BETWEEN $2 AND $3`
	var out repository.SalesVelocityResult
	err := r.q.QueryRow(ctx, query, productID, from, to).
		Scan(&out.TotalQuantitySold, &out.DistinctSaleDays)
	if err != nil {
		return repository.SalesVelocityResult{}, fmt.Errorf("sales velocity: %w", err)
	}
	return out, nil
}
