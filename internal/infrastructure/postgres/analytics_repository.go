package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo requêtes de lecture seule pour la façade de reporting. Le COGS
// d'une vente est lu dans le grand livre: quantité sortie × CMUP au moment de
// la sortie, jamais le prix d'achat catalogue.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construit l'adaptateur.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// GetSalesTotal chiffre d'affaires des ventes validées de l'intervalle
// (COALESCE à zéro si aucune vente).
func (r *AnalyticsRepo) GetSalesTotal(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	const query = `
		SELECT COALESCE(SUM(l.quantity * l.unit_price), 0)
		FROM sales s
		JOIN sale_lines l ON l.sale_id = s.id
		WHERE s.status = 'VALIDEE'
		  AND s.sold_at BETWEEN $1 AND $2`
	var total decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, from, to).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("analytics.GetSalesTotal: %w", err)
	}
	return total, nil
}

// GetReceiptsTotal montant des réceptions confirmées de l'intervalle.
func (r *AnalyticsRepo) GetReceiptsTotal(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	const query = `
		SELECT COALESCE(SUM(l.quantity * l.unit_price), 0)
		FROM receptions rec
		JOIN reception_lines l ON l.reception_id = rec.id
		WHERE rec.status = 'CONFIRMEE'
		  AND rec.received_at BETWEEN $1 AND $2`
	var total decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, from, to).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("analytics.GetReceiptsTotal: %w", err)
	}
	return total, nil
}

// GetMarginByCategory revenu, COGS et profit par catégorie sur l'intervalle,
// par profit décroissant. Le COGS vient des SORTIE du grand livre
// (unit_cost_in y porte le CMUP au moment de la sortie).
func (r *AnalyticsRepo) GetMarginByCategory(ctx context.Context, from, to time.Time) ([]repository.CategoryMarginResult, error) {
	const query = `
		SELECT
		    COALESCE(c.id::TEXT, '')                                       AS category_id,
		    COALESCE(c.name, '')                                           AS category_name,
		    COALESCE(SUM(l.quantity * l.unit_price), 0)                    AS revenue,
		    COALESCE(SUM(m.quantity_out * m.unit_cost_in), 0)              AS cost,
		    COALESCE(SUM(l.quantity * l.unit_price), 0)
		      - COALESCE(SUM(m.quantity_out * m.unit_cost_in), 0)         AS profit
		FROM sales s
		JOIN sale_lines l       ON l.sale_id = s.id
		JOIN stock_movements m  ON m.reference = 'VTE-' || s.reference || '-' || l.id
		LEFT JOIN categories c  ON c.id = m.category_id
		WHERE s.status = 'VALIDEE'
		  AND s.sold_at BETWEEN $1 AND $2
		GROUP BY c.id, c.name
		ORDER BY profit DESC`
	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetMarginByCategory: %w", err)
	}
	defer rows.Close()

	var results []repository.CategoryMarginResult
	for rows.Next() {
		var row repository.CategoryMarginResult
		if err := rows.Scan(&row.CategoryID, &row.CategoryName, &row.Revenue, &row.Cost, &row.Profit); err != nil {
			return nil, fmt.Errorf("analytics.GetMarginByCategory scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetTopProfitProducts les `limit` produits au meilleur profit de l'intervalle
// (profit décroissant, égalité départagée par id produit croissant).
func (r *AnalyticsRepo) GetTopProfitProducts(ctx context.Context, from, to time.Time, limit int) ([]repository.ProductProfitResult, error) {
	const query = `
		SELECT
		    p.id,
		    p.label,
		    COALESCE(SUM(l.quantity * l.unit_price), 0)                    AS revenue,
		    COALESCE(SUM(m.quantity_out * m.unit_cost_in), 0)              AS cost,
		    COALESCE(SUM(l.quantity * l.unit_price), 0)
		      - COALESCE(SUM(m.quantity_out * m.unit_cost_in), 0)         AS profit
		FROM sales s
		JOIN sale_lines l       ON l.sale_id = s.id
		JOIN stock_movements m  ON m.reference = 'VTE-' || s.reference || '-' || l.id
		JOIN products p         ON p.id = l.product_id
		WHERE s.status = 'VALIDEE'
		  AND s.sold_at BETWEEN $1 AND $2
		GROUP BY p.id, p.label
		ORDER BY profit DESC, p.id ASC
		LIMIT $3`
	rows, err := r.pool.Query(ctx, query, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetTopProfitProducts: %w", err)
	}
	defer rows.Close()

	var results []repository.ProductProfitResult
	for rows.Next() {
		var row repository.ProductProfitResult
		if err := rows.Scan(&row.ProductID, &row.Label, &row.Revenue, &row.Cost, &row.Profit); err != nil {
			return nil, fmt.Errorf("analytics.GetTopProfitProducts scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetMonthlyFlows série mensuelle achats (réceptions confirmées) / ventes
// validées de l'intervalle.
func (r *AnalyticsRepo) GetMonthlyFlows(ctx context.Context, from, to time.Time) ([]repository.MonthlyFlowResult, error) {
	const query = `
		WITH achats AS (
		    SELECT to_char(date_trunc('month', rec.received_at), 'YYYY-MM') AS period,
		           SUM(l.quantity * l.unit_price)                           AS total
		    FROM receptions rec
		    JOIN reception_lines l ON l.reception_id = rec.id
		    WHERE rec.status = 'CONFIRMEE' AND rec.received_at BETWEEN $1 AND $2
		    GROUP BY 1
		), ventes AS (
		    SELECT to_char(date_trunc('month', s.sold_at), 'YYYY-MM') AS period,
		           SUM(l.quantity * l.unit_price)                     AS total
		    FROM sales s
		    JOIN sale_lines l ON l.sale_id = s.id
		    WHERE s.status = 'VALIDEE' AND s.sold_at BETWEEN $1 AND $2
		    GROUP BY 1
		)
		SELECT COALESCE(a.period, v.period) AS period,
		       COALESCE(a.total, 0)         AS purchases,
		       COALESCE(v.total, 0)         AS sales
		FROM achats a
		FULL OUTER JOIN ventes v ON v.period = a.period
		ORDER BY period ASC`
	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetMonthlyFlows: %w", err)
	}
	defer rows.Close()

	var results []repository.MonthlyFlowResult
	for rows.Next() {
		var row repository.MonthlyFlowResult
		if err := rows.Scan(&row.Period, &row.Purchases, &row.Sales); err != nil {
			return nil, fmt.Errorf("analytics.GetMonthlyFlows scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetCategoryDistribution valeur de stock courante par catégorie: dernier
// mouvement par produit, quantités strictement positives.
func (r *AnalyticsRepo) GetCategoryDistribution(ctx context.Context) ([]repository.CategoryValueResult, error) {
	const query = `
		SELECT
		    c.id,
		    c.name,
		    SUM(m.quantity_on_hand_after * m.weighted_avg_cost_after) AS value
		FROM (
		    SELECT DISTINCT ON (product_id) product_id, quantity_on_hand_after, weighted_avg_cost_after
		    FROM stock_movements
		    ORDER BY product_id, at DESC, created_at DESC
		) m
		JOIN products p   ON p.id = m.product_id
		JOIN categories c ON c.id = p.category_id
		WHERE m.quantity_on_hand_after > 0
		GROUP BY c.id, c.name
		ORDER BY value DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetCategoryDistribution: %w", err)
	}
	defer rows.Close()

	var results []repository.CategoryValueResult
	for rows.Next() {
		var row repository.CategoryValueResult
		if err := rows.Scan(&row.CategoryID, &row.CategoryName, &row.Value); err != nil {
			return nil, fmt.Errorf("analytics.GetCategoryDistribution scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
