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

var _ repository.ReceptionRepository = (*ReceptionRepo)(nil)

// ReceptionRepo adaptateur PostgreSQL des réceptions (en-tête + lignes).
type ReceptionRepo struct {
	q Querier
}

// NewReceptionRepository construit l'adaptateur.
func NewReceptionRepository(q Querier) *ReceptionRepo {
	return &ReceptionRepo{q: q}
}

// Create persiste l'en-tête puis les lignes.
func (r *ReceptionRepo) Create(ctx context.Context, rec *entity.Reception) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO receptions (id, supplier_id, reference, status, received_at, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		rec.ID, rec.SupplierID, rec.Reference, rec.Status, rec.ReceivedAt, rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert reception: %w", err)
	}
	for _, l := range rec.Lines {
		_, err := r.q.Exec(ctx,
			`INSERT INTO reception_lines (id, reception_id, product_id, quantity, unit_price)
			 VALUES ($1, $2, $3, $4, $5)`,
			l.ID, l.ReceptionID, l.ProductID, l.Quantity, l.UnitPrice,
		)
		if err != nil {
			return fmt.Errorf("insert reception line: %w", err)
		}
	}
	return nil
}

// GetByID renvoie la réception avec ses lignes (nil si introuvable).
func (r *ReceptionRepo) GetByID(ctx context.Context, id string) (*entity.Reception, error) {
	var rec entity.Reception
	err := r.q.QueryRow(ctx,
		`SELECT id, supplier_id, reference, status, received_at, created_at, updated_at
		 FROM receptions WHERE id = $1`, id,
	).Scan(&rec.ID, &rec.SupplierID, &rec.Reference, &rec.Status, &rec.ReceivedAt, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get reception: %w", err)
	}

	rows, err := r.q.Query(ctx,
		`SELECT id, reception_id, product_id, quantity, unit_price
		 FROM reception_lines WHERE reception_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("get reception lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.ReceptionLine
		if err := rows.Scan(&l.ID, &l.ReceptionID, &l.ProductID, &l.Quantity, &l.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan reception line: %w", err)
		}
		rec.Lines = append(rec.Lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &rec, nil
}

// UpdateStatus met à jour le statut de la réception.
func (r *ReceptionRepo) UpdateStatus(ctx context.Context, id, status string) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE receptions SET status = $2, updated_at = $3 WHERE id = $1`,
		id, status, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("update reception status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List liste les réceptions (en-têtes seuls) par date de réception décroissante.
func (r *ReceptionRepo) List(ctx context.Context, limit, offset int) ([]*entity.Reception, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, supplier_id, reference, status, received_at, created_at, updated_at
		 FROM receptions ORDER BY received_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list receptions: %w", err)
	}
	defer rows.Close()
	var list []*entity.Reception
	for rows.Next() {
		var rec entity.Reception
		if err := rows.Scan(&rec.ID, &rec.SupplierID, &rec.Reference, &rec.Status,
			&rec.ReceivedAt, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan reception: %w", err)
		}
		list = append(list, &rec)
	}
	return list, rows.Err()
}
