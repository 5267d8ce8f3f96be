package event

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/domain/event"
)

var _ event.Handler = (*LowStockLogger)(nil)

// LowStockLogger abonné d'alerte: trace chaque passage sous le seuil en
// warning structuré (exploité par l'agrégation de logs). Point d'accueil
// naturel d'une notification métier future.
type LowStockLogger struct{}

// NewLowStockLogger construit l'abonné.
func NewLowStockLogger() *LowStockLogger {
	return &LowStockLogger{}
}

func (l *LowStockLogger) EventTypes() []string {
	return []string{event.LowStockTopic}
}

func (l *LowStockLogger) Handle(_ context.Context, e event.DomainEvent) error {
	low, ok := e.(event.LowStockDetected)
	if !ok {
		return nil
	}
	log.Warn().
		Str("product_id", low.ProductID).
		Str("on_hand", low.OnHand.String()).
		Str("threshold", low.Threshold.String()).
		Time("at", low.At).
		Msg("stock sous le seuil d'alerte")
	return nil
}
