package postgres_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/domain"
	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/infrastructure/postgres"
)

// scriptRow rejoue un Scan scripté.
type scriptRow struct {
	scan func(dest ...any) error
}

func (r scriptRow) Scan(dest ...any) error { return r.scan(dest...) }

// recordingQuerier enregistre le SQL émis et sert les lignes scriptées dans
// l'ordre des appels QueryRow.
type recordingQuerier struct {
	queries []string
	rows    []scriptRow
}

func (q *recordingQuerier) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (q *recordingQuerier) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, errors.New("appel Query inattendu")
}

func (q *recordingQuerier) QueryRow(_ context.Context, sql string, _ ...any) pgx.Row {
	q.queries = append(q.queries, sql)
	i := len(q.queries) - 1
	if i < len(q.rows) {
		return q.rows[i]
	}
	return scriptRow{scan: func(...any) error { return pgx.ErrNoRows }}
}

// Le verrou de sérialisation doit porter sur la ligne produit, pas sur le
// dernier mouvement: pour un premier mouvement il n'existe encore aucune ligne
// côté grand livre, et deux premières entrées concurrentes s'écriraient toutes
// les deux sans se voir.
func TestGetLatestForUpdate_VerrouilleLaLigneProduit(t *testing.T) {
	const productID = "11111111-1111-1111-1111-111111111111"
	q := &recordingQuerier{rows: []scriptRow{
		{scan: func(dest ...any) error {
			*(dest[0].(*string)) = productID
			return nil
		}},
		{scan: func(...any) error { return pgx.ErrNoRows }},
	}}
	repo := postgres.NewStockMovementRepository(q)

	m, err := repo.GetLatestForUpdate(context.Background(), productID)
	require.NoError(t, err)
	assert.Nil(t, m, "aucun mouvement: renvoie nil sans erreur")

	require.Len(t, q.queries, 2)
	assert.Contains(t, q.queries[0], "FROM products",
		"le premier ordre SQL doit viser la ligne produit")
	assert.Contains(t, q.queries[0], "FOR UPDATE",
		"la ligne produit doit être verrouillée")
	assert.Contains(t, q.queries[1], "FROM stock_movements",
		"la lecture du dernier mouvement vient après le verrou")
	assert.NotContains(t, q.queries[1], "FOR UPDATE",
		"le verrou porte sur products, pas sur le grand livre")
}

// Un produit sans ligne à verrouiller est une erreur: écrire un mouvement pour
// un produit inconnu est interdit.
func TestGetLatestForUpdate_ProduitInconnu(t *testing.T) {
	q := &recordingQuerier{rows: []scriptRow{
		{scan: func(...any) error { return pgx.ErrNoRows }},
	}}
	repo := postgres.NewStockMovementRepository(q)

	_, err := repo.GetLatestForUpdate(context.Background(), "22222222-2222-2222-2222-222222222222")
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Len(t, q.queries, 1, "pas de lecture du grand livre sans verrou acquis")
}
