package stock

import (
	"context"

	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/domain/repository"
)

// TxRunner exécute une fonction dans une transaction de base de données, en
// passant des repositories liés à cette transaction. Garantit l'atomicité du
// read-modify-write du grand livre (verrou de ligne + append + miroir CMUP).
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error) error
}
